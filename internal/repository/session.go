package repository

import (
	"context"
	"fmt"

	"github.com/openmat-france/openmat-api/internal/domain"
	"github.com/openmat-france/openmat-api/internal/repository/dao"
)

var (
	ErrSessionNotFound = dao.ErrSessionNotFound
)

type SessionDAO interface {
	Insert(ctx context.Context, session dao.Session) (dao.Session, error)
	FindByID(ctx context.Context, id string) (dao.Session, error)
	List(ctx context.Context, status string) ([]dao.Session, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	UpdateStatus(ctx context.Context, id, status string) error
	ApproveWithPhoto(ctx context.Context, id, photo string) error
	UpdatePhoto(ctx context.Context, id, photo string) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountWithPhotos(ctx context.Context) (int64, error)
}

type SessionRepository struct {
	dao SessionDAO
}

func NewSessionRepository(dao SessionDAO) *SessionRepository {
	return &SessionRepository{
		dao: dao,
	}
}

func (r *SessionRepository) Create(ctx context.Context, session domain.Session) (domain.Session, error) {
	created, err := r.dao.Insert(ctx, dao.Session{
		Title:       session.Title,
		Club:        session.Club,
		City:        session.City,
		Address:     session.Address,
		Date:        session.Date,
		TimeRange:   session.Time,
		Price:       session.Price,
		Discipline:  session.Type,
		Description: session.Description,
		Photo:       session.Photo,
		Lat:         session.Coordinates.Lat,
		Lng:         session.Coordinates.Lng,
		X:           session.Coordinates.X,
		Y:           session.Coordinates.Y,
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (domain.Session, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Session{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *SessionRepository) List(ctx context.Context, status string) ([]domain.Session, error) {
	found, err := r.dao.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	sessions := make([]domain.Session, 0, len(found))
	for _, s := range found {
		sessions = append(sessions, r.daoToDomain(s))
	}

	return sessions, nil
}

func (r *SessionRepository) Update(ctx context.Context, id string, update domain.SessionUpdate) error {
	fields := map[string]any{}
	setIfPresent(fields, "title", update.Title)
	setIfPresent(fields, "club", update.Club)
	setIfPresent(fields, "city", update.City)
	setIfPresent(fields, "address", update.Address)
	setIfPresent(fields, "date", update.Date)
	setIfPresent(fields, "time_range", update.Time)
	setIfPresent(fields, "price", update.Price)
	setIfPresent(fields, "discipline", update.Type)
	setIfPresent(fields, "description", update.Description)
	setIfPresent(fields, "photo", update.Photo)

	if err := r.dao.Update(ctx, id, fields); err != nil {
		return fmt.Errorf("r.dao.Update -> %w", err)
	}

	return nil
}

func (r *SessionRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if err := r.dao.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *SessionRepository) ApproveWithPhoto(ctx context.Context, id, photo string) error {
	if err := r.dao.ApproveWithPhoto(ctx, id, photo); err != nil {
		return fmt.Errorf("r.dao.ApproveWithPhoto -> %w", err)
	}

	return nil
}

func (r *SessionRepository) UpdatePhoto(ctx context.Context, id, photo string) error {
	if err := r.dao.UpdatePhoto(ctx, id, photo); err != nil {
		return fmt.Errorf("r.dao.UpdatePhoto -> %w", err)
	}

	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *SessionRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	count, err := r.dao.CountByStatus(ctx, status)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByStatus -> %w", err)
	}

	return count, nil
}

func (r *SessionRepository) CountWithPhotos(ctx context.Context) (int64, error) {
	count, err := r.dao.CountWithPhotos(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountWithPhotos -> %w", err)
	}

	return count, nil
}

func (r *SessionRepository) daoToDomain(s dao.Session) domain.Session {
	return domain.Session{
		ID:          s.ID,
		Title:       s.Title,
		Club:        s.Club,
		City:        s.City,
		Address:     s.Address,
		Date:        s.Date,
		Time:        s.TimeRange,
		Price:       s.Price,
		Type:        s.Discipline,
		Description: s.Description,
		Status:      s.Status,
		Photo:       s.Photo,
		LikesCount:  s.LikesCount,
		Coordinates: domain.Coordinates{
			Lat: s.Lat,
			Lng: s.Lng,
			X:   s.X,
			Y:   s.Y,
		},
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func setIfPresent(fields map[string]any, column string, value *string) {
	if value != nil {
		fields[column] = *value
	}
}
