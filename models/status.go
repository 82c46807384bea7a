package models

// SyncStatus is the externally observable state of the sync engine.
//
// Transitions: StatusIdle → StatusSyncing → {StatusSynced, StatusError},
// and from either terminal value back to StatusSyncing on the next
// trigger. There is no final state.
type SyncStatus int32

const (
	StatusIdle SyncStatus = iota
	StatusSyncing
	StatusSynced
	StatusError
)

func (s SyncStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSyncing:
		return "syncing"
	case StatusSynced:
		return "synced"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}
