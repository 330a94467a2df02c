package likes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// defaultTimeout bounds every remote call; a timeout counts as a failure
// and takes the rollback path like any other error.
const defaultTimeout = 10 * time.Second

// APIStore is the RemoteStore backed by the HTTP API.
type APIStore struct {
	baseURL string
	client  *http.Client
}

func NewAPIStore(baseURL string) *APIStore {
	return &APIStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

type likeCountResponse struct {
	LikesCount int `json:"likes_count"`
}

type likedSessionsResponse struct {
	SessionIDs []string `json:"session_ids"`
}

func (s *APIStore) AddLike(ctx context.Context, sessionID, userID string) (int, error) {
	body, err := json.Marshal(map[string]string{"user_id": userID})
	if err != nil {
		return 0, err
	}

	endpoint := fmt.Sprintf("%s/api/v1/sessions/%s/likes", s.baseURL, url.PathEscape(sessionID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	var resp likeCountResponse
	if err = s.do(req, &resp, map[int]error{http.StatusConflict: ErrAlreadyLiked}); err != nil {
		return 0, err
	}

	return resp.LikesCount, nil
}

func (s *APIStore) RemoveLike(ctx context.Context, sessionID, userID string) (int, error) {
	endpoint := fmt.Sprintf("%s/api/v1/sessions/%s/likes/%s",
		s.baseURL, url.PathEscape(sessionID), url.PathEscape(userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return 0, err
	}

	var resp likeCountResponse
	if err = s.do(req, &resp, map[int]error{http.StatusNotFound: ErrNotLiked}); err != nil {
		return 0, err
	}

	return resp.LikesCount, nil
}

func (s *APIStore) LikesCount(ctx context.Context, sessionID string) (int, error) {
	endpoint := fmt.Sprintf("%s/api/v1/sessions/%s/likes/count", s.baseURL, url.PathEscape(sessionID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}

	var resp likeCountResponse
	if err = s.do(req, &resp, nil); err != nil {
		return 0, err
	}

	return resp.LikesCount, nil
}

func (s *APIStore) LikedSessions(ctx context.Context, userID string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/api/v1/users/%s/likes", s.baseURL, url.PathEscape(userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var resp likedSessionsResponse
	if err = s.do(req, &resp, nil); err != nil {
		return nil, err
	}

	return resp.SessionIDs, nil
}

// do runs the request, mapping listed status codes to sentinel errors and
// any other non-2xx to a generic failure.
func (s *APIStore) do(req *http.Request, out any, statusErrs map[int]error) error {
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if sentinel, ok := statusErrs[resp.StatusCode]; ok {
		return sentinel
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, req.URL.Path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(body, out)
}
