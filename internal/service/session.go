package service

import (
	"context"
	"fmt"

	"github.com/openmat-france/openmat-api/internal/domain"
	"github.com/openmat-france/openmat-api/internal/repository"
)

var (
	ErrSessionNotFound = repository.ErrSessionNotFound
)

type SessionRepository interface {
	Create(ctx context.Context, session domain.Session) (domain.Session, error)
	FindByID(ctx context.Context, id string) (domain.Session, error)
	List(ctx context.Context, status string) ([]domain.Session, error)
	Update(ctx context.Context, id string, update domain.SessionUpdate) error
	UpdateStatus(ctx context.Context, id, status string) error
	ApproveWithPhoto(ctx context.Context, id, photo string) error
	UpdatePhoto(ctx context.Context, id, photo string) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountWithPhotos(ctx context.Context) (int64, error)
}

// SessionService owns the moderation lifecycle. Every transition waits for
// the store to confirm before anything is reported back: moderation is
// deliberately pessimistic, unlike the like engine.
type SessionService struct {
	repo SessionRepository
}

func NewSessionService(repo SessionRepository) *SessionService {
	return &SessionService{
		repo: repo,
	}
}

// Submit creates a new listing. Submissions always enter as pending.
func (s *SessionService) Submit(ctx context.Context, session domain.Session) (domain.Session, error) {
	session.Status = domain.StatusPending

	created, err := s.repo.Create(ctx, session)
	if err != nil {
		return domain.Session{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *SessionService) GetSession(ctx context.Context, id string) (domain.Session, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Session{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return session, nil
}

// ListSessions returns every session when status is empty (newest first),
// or the sessions in that status ordered by date.
func (s *SessionService) ListSessions(ctx context.Context, status string) ([]domain.Session, error) {
	sessions, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return sessions, nil
}

// UpdateSession applies a partial edit without touching the status. An
// empty update is a no-op.
func (s *SessionService) UpdateSession(ctx context.Context, id string, update domain.SessionUpdate) error {
	if update.IsZero() {
		return nil
	}

	if err := s.repo.Update(ctx, id, update); err != nil {
		return fmt.Errorf("s.repo.Update -> %w", err)
	}

	return nil
}

// Approve moves a session to approved. When the operator attaches a photo
// during approval it is stored in the same transaction; an empty photo
// means the operator explicitly skipped, and the session is approved
// without one. Approving an approved session is a no-op.
func (s *SessionService) Approve(ctx context.Context, id, photo string) error {
	if photo != "" {
		if err := s.repo.ApproveWithPhoto(ctx, id, photo); err != nil {
			return fmt.Errorf("s.repo.ApproveWithPhoto -> %w", err)
		}

		return nil
	}

	if err := s.repo.UpdateStatus(ctx, id, domain.StatusApproved); err != nil {
		return fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return nil
}

// Unapprove sends an approved session back to the moderation queue. No
// data is lost; only the status changes.
func (s *SessionService) Unapprove(ctx context.Context, id string) error {
	if err := s.repo.UpdateStatus(ctx, id, domain.StatusPending); err != nil {
		return fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return nil
}

func (s *SessionService) SetPhoto(ctx context.Context, id, photo string) error {
	if err := s.repo.UpdatePhoto(ctx, id, photo); err != nil {
		return fmt.Errorf("s.repo.UpdatePhoto -> %w", err)
	}

	return nil
}

// DeleteSession removes a session permanently. There is no soft delete.
func (s *SessionService) DeleteSession(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// ExportSessions dumps every session, newest first, for backup.
func (s *SessionService) ExportSessions(ctx context.Context) ([]domain.Session, error) {
	sessions, err := s.repo.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return sessions, nil
}
