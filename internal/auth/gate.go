// Package auth is the client-side operator gate: it mirrors the token the
// historical web client kept in a cookie and localStorage. The token is a
// plain base64 JSON blob with no signature, so everything here is
// display-only gating; the API enforces roles server-side on every
// mutating call.
package auth

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/openmat-france/openmat-api/internal/domain"
	"github.com/openmat-france/openmat-api/internal/localstore"
)

// tokenTTL bounds how long a decoded token is trusted for display.
const tokenTTL = 24 * time.Hour

// User is the operator identity the gate exposes to the UI.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type tokenPayload struct {
	User
	Timestamp int64 `json:"timestamp"` // unix milliseconds, issue time
}

type Gate struct {
	store localstore.Store
	now   func() time.Time
}

func NewGate(store localstore.Store) *Gate {
	return &Gate{
		store: store,
		now:   time.Now,
	}
}

// NewGateWithClock injects the clock, for expiry tests.
func NewGateWithClock(store localstore.Store, now func() time.Time) *Gate {
	return &Gate{
		store: store,
		now:   now,
	}
}

// Login stores the token and a user mirror under the historical keys.
func (g *Gate) Login(user User) error {
	token, err := g.encodeToken(user)
	if err != nil {
		return err
	}

	if err = g.store.Set(localstore.KeyAdminToken, token); err != nil {
		return err
	}

	mirror, err := json.Marshal(user)
	if err != nil {
		return err
	}

	return g.store.Set(localstore.KeyAdminUser, string(mirror))
}

func (g *Gate) Logout() {
	_ = g.store.Delete(localstore.KeyAdminToken)
	_ = g.store.Delete(localstore.KeyAdminUser)
}

// IsAuthenticated reports whether a decodable, unexpired token is present.
// An invalid token is cleared as a side effect, as the web client did.
func (g *Gate) IsAuthenticated() bool {
	return g.CurrentUser() != nil
}

// CurrentUser decodes the stored token, or returns nil when it is absent,
// undecodable or older than 24 hours.
func (g *Gate) CurrentUser() *User {
	token, ok := g.store.Get(localstore.KeyAdminToken)
	if !ok || token == "" {
		return nil
	}

	user, ok := g.decodeToken(token)
	if !ok {
		g.Logout()
		return nil
	}

	return &user
}

// HasRole reports whether the current user's role meets the requirement,
// with viewer < moderator < admin.
func (g *Gate) HasRole(required string) bool {
	user := g.CurrentUser()
	if user == nil {
		return false
	}

	return domain.RoleSatisfies(user.Role, required)
}

func (g *Gate) encodeToken(user User) (string, error) {
	payload, err := json.Marshal(tokenPayload{
		User:      user,
		Timestamp: g.now().UnixMilli(),
	})
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(payload), nil
}

func (g *Gate) decodeToken(token string) (User, bool) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return User{}, false
	}

	var payload tokenPayload
	if err = json.Unmarshal(raw, &payload); err != nil {
		return User{}, false
	}

	age := g.now().UnixMilli() - payload.Timestamp
	if age > tokenTTL.Milliseconds() {
		return User{}, false
	}

	return payload.User, true
}
