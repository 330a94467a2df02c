package likes

import (
	"encoding/json"
	"sync"

	"github.com/openmat-france/openmat-api/internal/localstore"
)

// Favorites is the purely local bookmark list. Unlike likes it never
// touches the remote store and carries no counter.
type Favorites struct {
	local localstore.Store

	mu  sync.Mutex
	ids []string
}

func NewFavorites(local localstore.Store) *Favorites {
	f := &Favorites{
		local: local,
	}

	if raw, ok := local.Get(localstore.KeyFavorites); ok {
		_ = json.Unmarshal([]byte(raw), &f.ids)
	}

	return f
}

// Toggle adds or removes a session from the favorites and reports the
// resulting state.
func (f *Favorites) Toggle(sessionID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, id := range f.ids {
		if id == sessionID {
			f.ids = append(f.ids[:i], f.ids[i+1:]...)
			f.persistLocked()
			return false
		}
	}

	f.ids = append(f.ids, sessionID)
	f.persistLocked()

	return true
}

func (f *Favorites) IsFavorite(sessionID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, id := range f.ids {
		if id == sessionID {
			return true
		}
	}

	return false
}

func (f *Favorites) All() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, len(f.ids))
	copy(out, f.ids)

	return out
}

func (f *Favorites) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.ids)
}

func (f *Favorites) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ids = nil
	f.persistLocked()
}

func (f *Favorites) persistLocked() {
	ids := f.ids
	if ids == nil {
		ids = []string{}
	}

	if raw, err := json.Marshal(ids); err == nil {
		_ = f.local.Set(localstore.KeyFavorites, string(raw))
	}
}
