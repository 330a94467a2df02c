package likes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIStoreAddLike(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/sessions/s1/likes", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "u1", body["user_id"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]int{"likes_count": 4})
	}))
	defer srv.Close()

	count, err := NewAPIStore(srv.URL).AddLike(context.Background(), "s1", "u1")

	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestAPIStoreAddLikeConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	_, err := NewAPIStore(srv.URL).AddLike(context.Background(), "s1", "u1")

	assert.ErrorIs(t, err, ErrAlreadyLiked)
}

func TestAPIStoreRemoveLike(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/sessions/s1/likes/u1", r.URL.Path)

		_ = json.NewEncoder(w).Encode(map[string]int{"likes_count": 3})
	}))
	defer srv.Close()

	count, err := NewAPIStore(srv.URL).RemoveLike(context.Background(), "s1", "u1")

	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestAPIStoreRemoveLikeNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewAPIStore(srv.URL).RemoveLike(context.Background(), "s1", "u1")

	assert.ErrorIs(t, err, ErrNotLiked)
}

func TestAPIStoreLikesCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/sessions/s1/likes/count", r.URL.Path)

		_ = json.NewEncoder(w).Encode(map[string]int{"likes_count": 7})
	}))
	defer srv.Close()

	count, err := NewAPIStore(srv.URL).LikesCount(context.Background(), "s1")

	require.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestAPIStoreLikedSessions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/u1/likes", r.URL.Path)

		_ = json.NewEncoder(w).Encode(map[string][]string{"session_ids": {"s1", "s2"}})
	}))
	defer srv.Close()

	ids, err := NewAPIStore(srv.URL).LikedSessions(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, ids)
}

func TestAPIStoreUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewAPIStore(srv.URL).LikesCount(context.Background(), "s1")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAlreadyLiked)
	assert.NotErrorIs(t, err, ErrNotLiked)
}

func TestAPIStoreEscapesPathSegments(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()

		_ = json.NewEncoder(w).Encode(map[string]int{"likes_count": 0})
	}))
	defer srv.Close()

	_, err := NewAPIStore(srv.URL).LikesCount(context.Background(), "a/b")

	require.NoError(t, err)
	assert.Equal(t, "/api/v1/sessions/a%2Fb/likes/count", gotPath)
}
