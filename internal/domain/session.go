package domain

import "time"

// Session statuses. New submissions always enter as pending; only a
// moderation action moves them to approved.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// Disciplines a session can be listed under.
const (
	DisciplineJJB       = "JJB"
	DisciplineLutaLivre = "Luta Livre"
	DisciplineMixte     = "Mixte"
)

// Coordinates are stored for future map display but not consumed by any
// core logic. Defaults point at Paris.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
}

type Session struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Club        string      `json:"club"`
	City        string      `json:"city"`
	Address     string      `json:"address"`
	Date        string      `json:"date"` // "2025-01-01", "2025-01-01 | 2025-01-08", or "RÉCURRENT"
	Time        string      `json:"time"` // free-text range, e.g. "10:00 - 12:00"
	Price       string      `json:"price"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Status      string      `json:"status"`
	Photo       string      `json:"photo,omitempty"`
	LikesCount  int         `json:"likes_count"`
	Coordinates Coordinates `json:"coordinates"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// SessionUpdate carries a partial update. Nil fields are left untouched.
type SessionUpdate struct {
	Title       *string
	Club        *string
	City        *string
	Address     *string
	Date        *string
	Time        *string
	Price       *string
	Type        *string
	Description *string
	Photo       *string
}

// IsZero reports whether the update contains no fields at all, in which
// case applying it is a no-op rather than an error.
func (u SessionUpdate) IsZero() bool {
	return u.Title == nil && u.Club == nil && u.City == nil && u.Address == nil &&
		u.Date == nil && u.Time == nil && u.Price == nil && u.Type == nil &&
		u.Description == nil && u.Photo == nil
}

// SystemStats is the back-office dashboard summary.
type SystemStats struct {
	TotalSessions    int64 `json:"total_sessions"`
	ApprovedSessions int64 `json:"approved_sessions"`
	PendingSessions  int64 `json:"pending_sessions"`
	WithPhotos       int64 `json:"with_photos"`
	TotalAdmins      int64 `json:"total_admins"`
}
