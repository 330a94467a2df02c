package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

// Session maps the open_mats table. Column names mirror the historical
// schema: the time range lives in time_range and the discipline in
// discipline.
type Session struct {
	ID string `gorm:"primaryKey"`

	Title       string `gorm:"not null"`
	Club        string `gorm:"not null"`
	City        string `gorm:"not null"`
	Address     string `gorm:"not null"`
	Date        string
	TimeRange   string `gorm:"column:time_range"`
	Price       string
	Discipline  string `gorm:"not null;default:JJB"`
	Description string
	Status      string `gorm:"not null;default:pending;index"`
	Photo       string
	LikesCount  int `gorm:"not null;default:0"`

	Lat float64 `gorm:"default:48.8566"`
	Lng float64 `gorm:"default:2.3522"`
	X   float64 `gorm:"default:50"`
	Y   float64 `gorm:"default:50"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Session) TableName() string {
	return "open_mats"
}

type SessionDAO struct {
	db *gorm.DB
}

func NewSessionDAO(db *gorm.DB) *SessionDAO {
	return &SessionDAO{
		db: db,
	}
}

func (d *SessionDAO) Insert(ctx context.Context, session Session) (Session, error) {
	session.ID = uuid.NewString()
	session.Status = "pending"

	result := d.db.WithContext(ctx).Create(&session)
	if result.Error != nil {
		return Session{}, result.Error
	}

	return session, nil
}

func (d *SessionDAO) FindByID(ctx context.Context, id string) (Session, error) {
	var session Session

	result := d.db.WithContext(ctx).First(&session, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Session{}, ErrSessionNotFound
		}

		return Session{}, result.Error
	}

	return session, nil
}

// List returns every session, or only those in the given status. The
// unfiltered listing is newest-first for the back office; the filtered one
// is soonest-first for the public explorer.
func (d *SessionDAO) List(ctx context.Context, status string) ([]Session, error) {
	var sessions []Session

	query := d.db.WithContext(ctx)
	if status != "" {
		query = query.Where("status = ?", status).Order("date ASC")
	} else {
		query = query.Order("created_at DESC")
	}

	result := query.Find(&sessions)
	if result.Error != nil {
		return nil, result.Error
	}

	return sessions, nil
}

// Update applies only the supplied columns. An empty map is a no-op.
func (d *SessionDAO) Update(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	result := d.db.WithContext(ctx).Model(&Session{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// UpdateStatus moves a session to the given status. Already being there is
// not an error, which makes approve and unapprove idempotent.
func (d *SessionDAO) UpdateStatus(ctx context.Context, id, status string) error {
	result := d.db.WithContext(ctx).Model(&Session{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return d.ensureExists(ctx, id)
	}

	return nil
}

// ApproveWithPhoto stores the photo and flips the status in one
// transaction, so the operator's "attach and approve" acts atomically.
func (d *SessionDAO) ApproveWithPhoto(ctx context.Context, id, photo string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Session{}).Where("id = ?", id).Updates(map[string]any{
			"photo":  photo,
			"status": "approved",
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSessionNotFound
		}

		return nil
	})
}

func (d *SessionDAO) UpdatePhoto(ctx context.Context, id, photo string) error {
	result := d.db.WithContext(ctx).Model(&Session{}).Where("id = ?", id).Update("photo", photo)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return d.ensureExists(ctx, id)
	}

	return nil
}

func (d *SessionDAO) Delete(ctx context.Context, id string) error {
	result := d.db.WithContext(ctx).Delete(&Session{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// CountByStatus counts sessions, optionally restricted to a status.
func (d *SessionDAO) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64

	query := d.db.WithContext(ctx).Model(&Session{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	result := query.Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// CountWithPhotos counts sessions carrying a photo.
func (d *SessionDAO) CountWithPhotos(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Session{}).
		Where("photo IS NOT NULL AND photo <> ''").
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// ensureExists distinguishes "row missing" from "update changed nothing"
// after a zero-row update, keeping idempotent transitions error-free.
func (d *SessionDAO) ensureExists(ctx context.Context, id string) error {
	_, err := d.FindByID(ctx, id)

	return err
}
