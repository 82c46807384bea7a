package models

import "time"

// HistoryItem is one entry of the user's video watch history.
//
// VideoID is the natural key: a user has at most one history entry per
// video. WatchedAt is required and serves as the merge clock for this
// collection.
type HistoryItem struct {
	ID string `json:"id,omitempty"`

	VideoID string `json:"video_id"`
	Title   string `json:"title,omitempty"`

	Thumbnail *string `json:"thumbnail,omitempty"`
	Channel   *string `json:"channel,omitempty"`
	// Duration is the video length in seconds, when known.
	Duration *int64 `json:"duration,omitempty"`

	Language Language `json:"language"`

	WatchedAt time.Time `json:"watched_at"`
	// Progress is the fractional watch position in [0, 1].
	Progress   float64 `json:"progress"`
	IsFavorite bool    `json:"is_favorite"`
}

// NaturalKey returns the video id, the uniqueness key for history entries.
func (h HistoryItem) NaturalKey() string { return h.VideoID }

// ClockTime returns the merge clock for the entry.
func (h HistoryItem) ClockTime() time.Time { return h.WatchedAt }

// HistoryRecord is the remote wire shape of a history entry.
type HistoryRecord struct {
	HistoryItem
	User string `json:"user,omitempty"`
}
