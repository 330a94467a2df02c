package repository

import (
	"context"
	"fmt"

	"github.com/openmat-france/openmat-api/internal/repository/dao"
)

var (
	ErrAlreadyLiked = dao.ErrAlreadyLiked
	ErrLikeNotFound = dao.ErrLikeNotFound
)

type LikeDAO interface {
	Insert(ctx context.Context, sessionID, userID string) (int, error)
	Remove(ctx context.Context, sessionID, userID string) (int, error)
	Count(ctx context.Context, sessionID string) (int, error)
	SessionIDsByUser(ctx context.Context, userID string) ([]string, error)
}

type LikeRepository struct {
	dao LikeDAO
}

func NewLikeRepository(dao LikeDAO) *LikeRepository {
	return &LikeRepository{
		dao: dao,
	}
}

// Add records the like and returns the session's new like count.
func (r *LikeRepository) Add(ctx context.Context, sessionID, userID string) (int, error) {
	count, err := r.dao.Insert(ctx, sessionID, userID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return count, nil
}

// Remove deletes the like and returns the session's new like count.
func (r *LikeRepository) Remove(ctx context.Context, sessionID, userID string) (int, error) {
	count, err := r.dao.Remove(ctx, sessionID, userID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Remove -> %w", err)
	}

	return count, nil
}

func (r *LikeRepository) Count(ctx context.Context, sessionID string) (int, error) {
	count, err := r.dao.Count(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return count, nil
}

func (r *LikeRepository) SessionIDsByUser(ctx context.Context, userID string) ([]string, error) {
	ids, err := r.dao.SessionIDsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.SessionIDsByUser -> %w", err)
	}

	return ids, nil
}
