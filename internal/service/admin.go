package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/openmat-france/openmat-api/internal/auth"
	"github.com/openmat-france/openmat-api/internal/domain"
	"github.com/openmat-france/openmat-api/internal/repository"
)

var (
	ErrAdminUsernameExists = repository.ErrAdminUsernameExists
	ErrAdminNotFound       = repository.ErrAdminNotFound
	ErrWrongPassword       = errors.New("wrong password")
	ErrInvalidRole         = errors.New("invalid role")
)

type AdminRepository interface {
	Create(ctx context.Context, admin domain.Admin) (domain.Admin, error)
	FindByUsername(ctx context.Context, username string) (domain.Admin, error)
	List(ctx context.Context) ([]domain.Admin, error)
	Delete(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, username, passwordHash string) error
	Count(ctx context.Context) (int64, error)
}

// StatsRepository is the slice of the session store the dashboard summary
// needs.
type StatsRepository interface {
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountWithPhotos(ctx context.Context) (int64, error)
}

type AdminService struct {
	repo  AdminRepository
	stats StatsRepository
}

func NewAdminService(repo AdminRepository, stats StatsRepository) *AdminService {
	return &AdminService{
		repo:  repo,
		stats: stats,
	}
}

// Verify checks an operator's credentials. Passwords are stored as bcrypt
// hashes; rows still carrying the legacy reversible encoding are accepted
// once and transparently upgraded to bcrypt.
func (s *AdminService) Verify(ctx context.Context, username, password string) (domain.Admin, error) {
	admin, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return domain.Admin{}, ErrAdminNotFound
		}

		return domain.Admin{}, fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err == nil {
		return admin, nil
	}

	if admin.PasswordHash != auth.LegacyHash(password) {
		return domain.Admin{}, ErrWrongPassword
	}

	// Legacy row: rehash now so the reversible encoding disappears over time.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Admin{}, err
	}
	if err = s.repo.UpdatePassword(ctx, username, string(hash)); err != nil {
		return domain.Admin{}, fmt.Errorf("s.repo.UpdatePassword -> %w", err)
	}
	admin.PasswordHash = string(hash)

	return admin, nil
}

func (s *AdminService) ListAdmins(ctx context.Context) ([]domain.Admin, error) {
	admins, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return admins, nil
}

// AddAdmin creates a back-office account. The role defaults to moderator
// when unset.
func (s *AdminService) AddAdmin(ctx context.Context, admin domain.Admin, password string) (domain.Admin, error) {
	if admin.Role == "" {
		admin.Role = domain.RoleModerator
	}
	if domain.RoleLevel(admin.Role) < 0 {
		return domain.Admin{}, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Admin{}, err
	}
	admin.PasswordHash = string(hash)

	created, err := s.repo.Create(ctx, admin)
	if err != nil {
		return domain.Admin{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AdminService) DeleteAdmin(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// ChangePassword replaces an operator's password after verifying the old
// one through the same legacy-tolerant path as Verify.
func (s *AdminService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	if _, err := s.Verify(ctx, username, oldPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err = s.repo.UpdatePassword(ctx, username, string(hash)); err != nil {
		return fmt.Errorf("s.repo.UpdatePassword -> %w", err)
	}

	return nil
}

// SystemStats aggregates the dashboard counters.
func (s *AdminService) SystemStats(ctx context.Context) (domain.SystemStats, error) {
	total, err := s.stats.CountByStatus(ctx, "")
	if err != nil {
		return domain.SystemStats{}, fmt.Errorf("s.stats.CountByStatus -> %w", err)
	}
	approved, err := s.stats.CountByStatus(ctx, domain.StatusApproved)
	if err != nil {
		return domain.SystemStats{}, fmt.Errorf("s.stats.CountByStatus -> %w", err)
	}
	pending, err := s.stats.CountByStatus(ctx, domain.StatusPending)
	if err != nil {
		return domain.SystemStats{}, fmt.Errorf("s.stats.CountByStatus -> %w", err)
	}
	withPhotos, err := s.stats.CountWithPhotos(ctx)
	if err != nil {
		return domain.SystemStats{}, fmt.Errorf("s.stats.CountWithPhotos -> %w", err)
	}
	admins, err := s.repo.Count(ctx)
	if err != nil {
		return domain.SystemStats{}, fmt.Errorf("s.repo.Count -> %w", err)
	}

	return domain.SystemStats{
		TotalSessions:    total,
		ApprovedSessions: approved,
		PendingSessions:  pending,
		WithPhotos:       withPhotos,
		TotalAdmins:      admins,
	}, nil
}
