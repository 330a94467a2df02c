package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/openmat-france/openmat-api/internal/auth"
	"github.com/openmat-france/openmat-api/internal/domain"
	"github.com/openmat-france/openmat-api/internal/repository"
)

type fakeAdminRepo struct {
	admins   map[string]domain.Admin // keyed by username
	failWith error
}

func newFakeAdminRepo(seed ...domain.Admin) *fakeAdminRepo {
	f := &fakeAdminRepo{
		admins: make(map[string]domain.Admin),
	}
	for _, a := range seed {
		f.admins[a.Username] = a
	}

	return f
}

func (f *fakeAdminRepo) Create(_ context.Context, admin domain.Admin) (domain.Admin, error) {
	if f.failWith != nil {
		return domain.Admin{}, f.failWith
	}

	if _, exists := f.admins[admin.Username]; exists {
		return domain.Admin{}, repository.ErrAdminUsernameExists
	}
	if admin.ID == "" {
		admin.ID = "admin-" + admin.Username
	}
	f.admins[admin.Username] = admin

	return admin, nil
}

func (f *fakeAdminRepo) FindByUsername(_ context.Context, username string) (domain.Admin, error) {
	if f.failWith != nil {
		return domain.Admin{}, f.failWith
	}

	admin, ok := f.admins[username]
	if !ok {
		return domain.Admin{}, repository.ErrAdminNotFound
	}

	return admin, nil
}

func (f *fakeAdminRepo) List(_ context.Context) ([]domain.Admin, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}

	var out []domain.Admin
	for _, a := range f.admins {
		out = append(out, a)
	}

	return out, nil
}

func (f *fakeAdminRepo) Delete(_ context.Context, id string) error {
	if f.failWith != nil {
		return f.failWith
	}

	for username, a := range f.admins {
		if a.ID == id {
			delete(f.admins, username)
			return nil
		}
	}

	return repository.ErrAdminNotFound
}

func (f *fakeAdminRepo) UpdatePassword(_ context.Context, username, passwordHash string) error {
	if f.failWith != nil {
		return f.failWith
	}

	admin, ok := f.admins[username]
	if !ok {
		return repository.ErrAdminNotFound
	}

	admin.PasswordHash = passwordHash
	f.admins[username] = admin

	return nil
}

func (f *fakeAdminRepo) Count(_ context.Context) (int64, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}

	return int64(len(f.admins)), nil
}

func bcryptAdmin(t *testing.T, username, password, role string) domain.Admin {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return domain.Admin{
		ID:           "admin-" + username,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
}

func TestVerifyBcrypt(t *testing.T) {
	repo := newFakeAdminRepo(bcryptAdmin(t, "claire", "secret123", domain.RoleAdmin))
	svc := NewAdminService(repo, newFakeSessionRepo())

	admin, err := svc.Verify(context.Background(), "claire", "secret123")

	require.NoError(t, err)
	assert.Equal(t, "claire", admin.Username)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
}

func TestVerifyWrongPassword(t *testing.T) {
	repo := newFakeAdminRepo(bcryptAdmin(t, "claire", "secret123", domain.RoleAdmin))
	svc := NewAdminService(repo, newFakeSessionRepo())

	_, err := svc.Verify(context.Background(), "claire", "nope")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestVerifyUnknownUsername(t *testing.T) {
	svc := NewAdminService(newFakeAdminRepo(), newFakeSessionRepo())

	_, err := svc.Verify(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, ErrAdminNotFound)
}

func TestVerifyLegacyHashUpgradesToBcrypt(t *testing.T) {
	repo := newFakeAdminRepo(domain.Admin{
		ID:           "admin-old",
		Username:     "old",
		PasswordHash: auth.LegacyHash("secret123"),
		Role:         domain.RoleModerator,
	})
	svc := NewAdminService(repo, newFakeSessionRepo())
	ctx := context.Background()

	admin, err := svc.Verify(ctx, "old", "secret123")
	require.NoError(t, err)

	// The stored row now carries bcrypt, not the reversible encoding.
	stored := repo.admins["old"].PasswordHash
	assert.True(t, strings.HasPrefix(stored, "$2"))
	assert.Equal(t, stored, admin.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("secret123")))

	// And a second login goes through the bcrypt path.
	_, err = svc.Verify(ctx, "old", "secret123")
	assert.NoError(t, err)
}

func TestVerifyLegacyHashWrongPassword(t *testing.T) {
	repo := newFakeAdminRepo(domain.Admin{
		Username:     "old",
		PasswordHash: auth.LegacyHash("secret123"),
	})
	svc := NewAdminService(repo, newFakeSessionRepo())

	_, err := svc.Verify(context.Background(), "old", "nope")

	assert.ErrorIs(t, err, ErrWrongPassword)
	// Upgrade must not happen on a failed attempt.
	assert.Equal(t, auth.LegacyHash("secret123"), repo.admins["old"].PasswordHash)
}

func TestAddAdminDefaultsToModerator(t *testing.T) {
	repo := newFakeAdminRepo()
	svc := NewAdminService(repo, newFakeSessionRepo())

	created, err := svc.AddAdmin(context.Background(), domain.Admin{Username: "new"}, "secret123")

	require.NoError(t, err)
	assert.Equal(t, domain.RoleModerator, created.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret123")))
}

func TestAddAdminRejectsUnknownRole(t *testing.T) {
	svc := NewAdminService(newFakeAdminRepo(), newFakeSessionRepo())

	_, err := svc.AddAdmin(context.Background(), domain.Admin{Username: "new", Role: "intern"}, "secret123")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestAddAdminDuplicateUsername(t *testing.T) {
	repo := newFakeAdminRepo(bcryptAdmin(t, "claire", "secret123", domain.RoleAdmin))
	svc := NewAdminService(repo, newFakeSessionRepo())

	_, err := svc.AddAdmin(context.Background(), domain.Admin{Username: "claire"}, "secret123")
	assert.ErrorIs(t, err, ErrAdminUsernameExists)
}

func TestChangePassword(t *testing.T) {
	repo := newFakeAdminRepo(bcryptAdmin(t, "claire", "old-pass1", domain.RoleAdmin))
	svc := NewAdminService(repo, newFakeSessionRepo())
	ctx := context.Background()

	require.NoError(t, svc.ChangePassword(ctx, "claire", "old-pass1", "new-pass1"))

	_, err := svc.Verify(ctx, "claire", "new-pass1")
	assert.NoError(t, err)
	_, err = svc.Verify(ctx, "claire", "old-pass1")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestChangePasswordRequiresOldPassword(t *testing.T) {
	repo := newFakeAdminRepo(bcryptAdmin(t, "claire", "old-pass1", domain.RoleAdmin))
	svc := NewAdminService(repo, newFakeSessionRepo())

	err := svc.ChangePassword(context.Background(), "claire", "wrong", "new-pass1")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestSystemStats(t *testing.T) {
	sessions := newFakeSessionRepo(
		domain.Session{ID: "s1", Status: domain.StatusApproved, Photo: "p.jpg"},
		domain.Session{ID: "s2", Status: domain.StatusApproved},
		domain.Session{ID: "s3", Status: domain.StatusPending},
	)
	admins := newFakeAdminRepo(bcryptAdmin(t, "claire", "secret123", domain.RoleAdmin))
	svc := NewAdminService(admins, sessions)

	stats, err := svc.SystemStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.SystemStats{
		TotalSessions:    3,
		ApprovedSessions: 2,
		PendingSessions:  1,
		WithPhotos:       1,
		TotalAdmins:      1,
	}, stats)
}
