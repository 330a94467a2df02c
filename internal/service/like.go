package service

import (
	"context"
	"fmt"

	"github.com/openmat-france/openmat-api/internal/cache"
	"github.com/openmat-france/openmat-api/internal/repository"
)

var (
	ErrAlreadyLiked = repository.ErrAlreadyLiked
	ErrLikeNotFound = repository.ErrLikeNotFound
)

type LikeRepository interface {
	Add(ctx context.Context, sessionID, userID string) (int, error)
	Remove(ctx context.Context, sessionID, userID string) (int, error)
	Count(ctx context.Context, sessionID string) (int, error)
	SessionIDsByUser(ctx context.Context, userID string) ([]string, error)
}

// LikeService maintains the per-session like counters. Reads go through
// the Redis cache when one is configured; mutations refresh the cache with
// the authoritative count the store returned.
type LikeService struct {
	repo   LikeRepository
	counts *cache.LikeCountCache
}

func NewLikeService(repo LikeRepository, counts *cache.LikeCountCache) *LikeService {
	return &LikeService{
		repo:   repo,
		counts: counts,
	}
}

// AddLike records a like for the (session, user) pair and returns the new
// count. Liking twice surfaces ErrAlreadyLiked.
func (s *LikeService) AddLike(ctx context.Context, sessionID, userID string) (int, error) {
	count, err := s.repo.Add(ctx, sessionID, userID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.Add -> %w", err)
	}

	s.counts.SetCount(ctx, sessionID, count)

	return count, nil
}

// RemoveLike deletes the like and returns the new count. Removing a like
// that was never recorded surfaces ErrLikeNotFound.
func (s *LikeService) RemoveLike(ctx context.Context, sessionID, userID string) (int, error) {
	count, err := s.repo.Remove(ctx, sessionID, userID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.Remove -> %w", err)
	}

	s.counts.SetCount(ctx, sessionID, count)

	return count, nil
}

func (s *LikeService) LikesCount(ctx context.Context, sessionID string) (int, error) {
	if count, ok := s.counts.GetCount(ctx, sessionID); ok {
		return count, nil
	}

	count, err := s.repo.Count(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.Count -> %w", err)
	}

	s.counts.SetCount(ctx, sessionID, count)

	return count, nil
}

func (s *LikeService) LikedSessions(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.repo.SessionIDsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.SessionIDsByUser -> %w", err)
	}

	return ids, nil
}
