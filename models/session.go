package models

import "time"

// Session is the locally persisted remote identity. It lets the client
// resume syncing after a restart without asking the user to sign in again.
type Session struct {
	UserID  string    `json:"user_id"`
	Token   string    `json:"token"`
	SavedAt time.Time `json:"saved_at"`
}
