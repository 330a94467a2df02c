// Package likes implements the client-side like/favorite state: an
// in-memory liked set and count cache, persisted to a local store for
// instant display and reconciled against the remote store with optimistic
// updates.
package likes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/openmat-france/openmat-api/internal/localstore"
)

var (
	// ErrAlreadyLiked mirrors the store's uniqueness constraint on the
	// (session, user) pair.
	ErrAlreadyLiked = errors.New("session already liked")
	// ErrNotLiked is returned when removing a like that was never recorded.
	ErrNotLiked = errors.New("session not liked")
)

// RemoteStore is the remote side of the synchronization protocol. Add and
// Remove return the authoritative count after the mutation, which may
// differ from the local ±1 when other users toggled concurrently.
type RemoteStore interface {
	AddLike(ctx context.Context, sessionID, userID string) (int, error)
	RemoveLike(ctx context.Context, sessionID, userID string) (int, error)
	LikesCount(ctx context.Context, sessionID string) (int, error)
	LikedSessions(ctx context.Context, userID string) ([]string, error)
}

// Engine tracks which sessions the local pseudonymous user has liked,
// plus a per-session count cache.
//
// Toggles are optimistic: the flag and count move immediately and are
// rolled back if the remote mutation fails. Two rapid toggles on the same
// session are not debounced; each reconciles independently and the cache
// reflects whichever response lands last.
type Engine struct {
	remote RemoteStore
	local  localstore.Store

	mu     sync.Mutex
	userID string
	liked  map[string]bool
	counts map[string]int
}

// NewEngine builds an engine from local state only: the pseudonymous user
// id is loaded or generated, and the cached liked list gives instant
// answers before any network round-trip. Call Refresh to reconcile with
// the remote store.
func NewEngine(remote RemoteStore, local localstore.Store) *Engine {
	e := &Engine{
		remote: remote,
		local:  local,
		liked:  make(map[string]bool),
		counts: make(map[string]int),
	}

	e.userID = loadOrCreateUserID(local)

	if raw, ok := local.Get(localstore.KeyLikes); ok {
		var ids []string
		if err := json.Unmarshal([]byte(raw), &ids); err == nil {
			for _, id := range ids {
				e.liked[id] = true
			}
		}
	}

	return e
}

// UserID returns the pseudonymous identifier this client likes under.
func (e *Engine) UserID() string {
	return e.userID
}

// Refresh replaces the cached liked set with the remote store's view and
// persists it. On failure the local cache stays as-is.
func (e *Engine) Refresh(ctx context.Context) error {
	ids, err := e.remote.LikedSessions(ctx, e.userID)
	if err != nil {
		return fmt.Errorf("e.remote.LikedSessions -> %w", err)
	}

	e.mu.Lock()
	e.liked = make(map[string]bool, len(ids))
	for _, id := range ids {
		e.liked[id] = true
	}
	e.persistLocked()
	e.mu.Unlock()

	return nil
}

// Toggle flips the liked state of a session. The flag and cached count
// change before the remote call; on success the count is overwritten with
// the authoritative value, on failure both are rolled back so the caller
// never sees a state the store did not reach. Returns the resulting liked
// flag and count.
func (e *Engine) Toggle(ctx context.Context, sessionID string) (bool, int, error) {
	e.mu.Lock()
	wasLiked := e.liked[sessionID]
	delta := 1
	if wasLiked {
		delta = -1
	}

	e.liked[sessionID] = !wasLiked
	e.counts[sessionID] += delta
	e.persistLocked()
	e.mu.Unlock()

	var count int
	var err error
	if wasLiked {
		count, err = e.remote.RemoveLike(ctx, sessionID, e.userID)
	} else {
		count, err = e.remote.AddLike(ctx, sessionID, e.userID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		// Rollback to the pre-toggle state.
		e.liked[sessionID] = wasLiked
		e.counts[sessionID] -= delta
		e.persistLocked()

		return wasLiked, e.counts[sessionID], fmt.Errorf("e.remote toggle -> %w", err)
	}

	e.counts[sessionID] = count

	return !wasLiked, count, nil
}

// IsLiked reads the in-memory liked set.
func (e *Engine) IsLiked(sessionID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.liked[sessionID]
}

// Count reads the in-memory count cache. A session whose count was never
// fetched reads as 0; there is no separate "unknown" value, so callers
// wanting a real number must LoadCount first.
func (e *Engine) Count(sessionID string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.counts[sessionID]
}

// LoadCount fetches the authoritative count for one session into the
// cache.
func (e *Engine) LoadCount(ctx context.Context, sessionID string) (int, error) {
	count, err := e.remote.LikesCount(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("e.remote.LikesCount -> %w", err)
	}

	e.mu.Lock()
	e.counts[sessionID] = count
	e.mu.Unlock()

	return count, nil
}

// LoadCounts populates the cache for a batch of sessions, as a listing
// page does on load. Sessions that fail to load keep their cached value.
func (e *Engine) LoadCounts(ctx context.Context, sessionIDs []string) error {
	var firstErr error
	for _, id := range sessionIDs {
		if _, err := e.LoadCount(ctx, id); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// LikedSessions returns a snapshot of the liked session ids.
func (e *Engine) LikedSessions() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	ids := make([]string, 0, len(e.liked))
	for id, liked := range e.liked {
		if liked {
			ids = append(ids, id)
		}
	}

	return ids
}

// persistLocked writes the liked list to the local store, best-effort.
// Callers must hold e.mu.
func (e *Engine) persistLocked() {
	ids := make([]string, 0, len(e.liked))
	for id, liked := range e.liked {
		if liked {
			ids = append(ids, id)
		}
	}

	if raw, err := json.Marshal(ids); err == nil {
		_ = e.local.Set(localstore.KeyLikes, string(raw))
	}
}

const userIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// loadOrCreateUserID returns the persisted pseudonymous id, generating a
// "user_<millis>_<random>" one on first use, as the web client did.
func loadOrCreateUserID(local localstore.Store) string {
	if id, ok := local.Get(localstore.KeyUserID); ok && id != "" {
		return id
	}

	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = userIDAlphabet[rand.Intn(len(userIDAlphabet))]
	}

	id := fmt.Sprintf("user_%d_%s", time.Now().UnixMilli(), suffix)
	_ = local.Set(localstore.KeyUserID, id)

	return id
}
