package domain

import "time"

// Like marks that a pseudonymous visitor favorited a session. The
// (SessionID, UserID) pair is unique; the user identifier is generated
// client-side and never verified across devices.
type Like struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
