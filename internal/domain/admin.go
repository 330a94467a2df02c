package domain

import "time"

// Back-office roles, ordered viewer < moderator < admin.
const (
	RoleViewer    = "viewer"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

var roleLevels = map[string]int{
	RoleViewer:    0,
	RoleModerator: 1,
	RoleAdmin:     2,
}

// RoleLevel returns the rank of a role in the hierarchy, or -1 for an
// unknown role so that unknown never satisfies any requirement.
func RoleLevel(role string) int {
	level, ok := roleLevels[role]
	if !ok {
		return -1
	}
	return level
}

// RoleSatisfies reports whether a user holding `role` meets `required`.
func RoleSatisfies(role, required string) bool {
	have := RoleLevel(role)
	want := RoleLevel(required)
	if have < 0 || want < 0 {
		return false
	}
	return have >= want
}

type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
