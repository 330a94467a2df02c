package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrAlreadyLiked = errors.New("session already liked by this user")
	ErrLikeNotFound = errors.New("like not found")
)

type Like struct {
	ID string `gorm:"primaryKey"`

	SessionID string `gorm:"not null;uniqueIndex:idx_likes_session_user"`
	UserID    string `gorm:"not null;uniqueIndex:idx_likes_session_user"`

	CreatedAt time.Time `gorm:"not null"`
}

func (Like) TableName() string {
	return "likes"
}

type LikeDAO struct {
	db *gorm.DB
}

func NewLikeDAO(db *gorm.DB) *LikeDAO {
	return &LikeDAO{
		db: db,
	}
}

// Insert records a like and bumps the denormalized counter, returning the
// counter's new value. A second like from the same user is rejected by the
// unique index.
func (d *LikeDAO) Insert(ctx context.Context, sessionID, userID string) (int, error) {
	var count int

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		like := Like{
			ID:        uuid.NewString(),
			SessionID: sessionID,
			UserID:    userID,
		}

		if result := tx.Create(&like); result.Error != nil {
			var pgErr *pgconn.PgError
			if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return ErrAlreadyLiked
			}

			return result.Error
		}

		result := tx.Model(&Session{}).Where("id = ?", sessionID).
			Update("likes_count", gorm.Expr("likes_count + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSessionNotFound
		}

		return tx.Model(&Session{}).Where("id = ?", sessionID).
			Select("likes_count").Scan(&count).Error
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Remove deletes a like and decrements the counter, floored at zero so a
// drifted counter can never go negative. Returns the counter's new value.
func (d *LikeDAO) Remove(ctx context.Context, sessionID, userID string) (int, error) {
	var count int

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&Like{}, "session_id = ? AND user_id = ?", sessionID, userID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrLikeNotFound
		}

		result = tx.Model(&Session{}).Where("id = ?", sessionID).
			Update("likes_count", gorm.Expr("GREATEST(likes_count - 1, 0)"))
		if result.Error != nil {
			return result.Error
		}

		return tx.Model(&Session{}).Where("id = ?", sessionID).
			Select("likes_count").Scan(&count).Error
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Count returns the number of like rows for a session, the authoritative
// value the denormalized counter caches.
func (d *LikeDAO) Count(ctx context.Context, sessionID string) (int, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Like{}).Where("session_id = ?", sessionID).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return int(count), nil
}

// SessionIDsByUser lists the sessions a user has liked.
func (d *LikeDAO) SessionIDsByUser(ctx context.Context, userID string) ([]string, error) {
	var ids []string

	result := d.db.WithContext(ctx).Model(&Like{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("session_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}

	return ids, nil
}
