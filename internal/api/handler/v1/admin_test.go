package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmat-france/openmat-api/internal/api/handler/v1/response"
	"github.com/openmat-france/openmat-api/internal/api/middleware"
	"github.com/openmat-france/openmat-api/internal/config"
	"github.com/openmat-france/openmat-api/internal/domain"
	"github.com/openmat-france/openmat-api/internal/pkg/jwthelper"
	"github.com/openmat-france/openmat-api/internal/service"
)

type stubAdminService struct {
	verifyFn         func(ctx context.Context, username, password string) (domain.Admin, error)
	addFn            func(ctx context.Context, admin domain.Admin, password string) (domain.Admin, error)
	changePasswordFn func(ctx context.Context, username, oldPassword, newPassword string) error
	statsFn          func(ctx context.Context) (domain.SystemStats, error)
}

func (s *stubAdminService) Verify(ctx context.Context, username, password string) (domain.Admin, error) {
	return s.verifyFn(ctx, username, password)
}

func (s *stubAdminService) ListAdmins(context.Context) ([]domain.Admin, error) {
	return nil, nil
}

func (s *stubAdminService) AddAdmin(ctx context.Context, admin domain.Admin, password string) (domain.Admin, error) {
	return s.addFn(ctx, admin, password)
}

func (s *stubAdminService) DeleteAdmin(context.Context, string) error { return nil }

func (s *stubAdminService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	return s.changePasswordFn(ctx, username, oldPassword, newPassword)
}

func (s *stubAdminService) SystemStats(ctx context.Context) (domain.SystemStats, error) {
	return s.statsFn(ctx)
}

const testSigningKey = "test-signing-key"

func newAdminRouter(svc AdminService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewAdminHandler(&config.APIConfig{JWTSigningKey: testSigningKey}, svc)
	router := gin.New()
	router.POST("/api/v1/auth/login", h.HandleLogin)
	router.GET("/api/v1/admin/admins", h.HandleListAdmins)
	router.POST("/api/v1/admin/admins", h.HandleAddAdmin)
	router.POST("/api/v1/admin/admins/password", func(ctx *gin.Context) {
		ctx.Set(middleware.ContextKeyUsername, "claire")
		h.HandleChangePassword(ctx)
	})
	router.GET("/api/v1/admin/stats", h.HandleSystemStats)

	return router
}

func TestHandleLogin(t *testing.T) {
	svc := &stubAdminService{
		verifyFn: func(_ context.Context, username, password string) (domain.Admin, error) {
			assert.Equal(t, "claire", username)
			assert.Equal(t, "secret123", password)

			return domain.Admin{ID: "admin-1", Username: "claire", Role: domain.RoleAdmin}, nil
		},
	}

	resp := serve(newAdminRouter(svc), http.MethodPost, "/api/v1/auth/login",
		`{"username":"claire","password":"secret123"}`)

	require.Equal(t, http.StatusOK, resp.Code)

	var got response.LoginResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, "claire", got.Admin.Username)

	// The issued token carries the operator's identity and role.
	claims, err := jwthelper.ParseToken([]byte(testSigningKey), got.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.AdminID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestHandleLoginWrongCredentials(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"unknown username", service.ErrAdminNotFound},
		{"wrong password", service.ErrWrongPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubAdminService{
				verifyFn: func(context.Context, string, string) (domain.Admin, error) {
					return domain.Admin{}, tt.err
				},
			}

			resp := serve(newAdminRouter(svc), http.MethodPost, "/api/v1/auth/login",
				`{"username":"claire","password":"nope"}`)

			// Both cases collapse to the same answer so usernames cannot be probed.
			assert.Equal(t, http.StatusUnauthorized, resp.Code)
		})
	}
}

func TestHandleAddAdmin(t *testing.T) {
	svc := &stubAdminService{
		addFn: func(_ context.Context, admin domain.Admin, password string) (domain.Admin, error) {
			assert.Equal(t, "secret123", password)
			admin.ID = "admin-2"

			return admin, nil
		},
	}

	resp := serve(newAdminRouter(svc), http.MethodPost, "/api/v1/admin/admins",
		`{"username":"new","email":"new@example.com","password":"secret123","role":"viewer"}`)

	require.Equal(t, http.StatusCreated, resp.Code)

	var got domain.Admin
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, "admin-2", got.ID)
	assert.Equal(t, domain.RoleViewer, got.Role)
}

func TestHandleAddAdminValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"weak password", `{"username":"new","email":"new@example.com","password":"short","role":"viewer"}`},
		{"password without digits", `{"username":"new","email":"new@example.com","password":"onlyletters","role":"viewer"}`},
		{"bad email", `{"username":"new","email":"not-an-email","password":"secret123","role":"viewer"}`},
		{"unknown role", `{"username":"new","email":"new@example.com","password":"secret123","role":"intern"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubAdminService{
				addFn: func(_ context.Context, admin domain.Admin, _ string) (domain.Admin, error) {
					t.Fatal("service must not be reached on invalid input")

					return admin, nil
				},
			}

			resp := serve(newAdminRouter(svc), http.MethodPost, "/api/v1/admin/admins", tt.body)

			assert.Equal(t, http.StatusBadRequest, resp.Code)
		})
	}
}

func TestHandleAddAdminDuplicate(t *testing.T) {
	svc := &stubAdminService{
		addFn: func(context.Context, domain.Admin, string) (domain.Admin, error) {
			return domain.Admin{}, service.ErrAdminUsernameExists
		},
	}

	resp := serve(newAdminRouter(svc), http.MethodPost, "/api/v1/admin/admins",
		`{"username":"claire","email":"claire@example.com","password":"secret123"}`)

	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestHandleChangePassword(t *testing.T) {
	svc := &stubAdminService{
		changePasswordFn: func(_ context.Context, username, oldPassword, newPassword string) error {
			assert.Equal(t, "claire", username)
			assert.Equal(t, "old-pass1", oldPassword)
			assert.Equal(t, "new-pass1", newPassword)

			return nil
		},
	}

	resp := serve(newAdminRouter(svc), http.MethodPost, "/api/v1/admin/admins/password",
		`{"old_password":"old-pass1","new_password":"new-pass1"}`)

	assert.Equal(t, http.StatusNoContent, resp.Code)
}

func TestHandleChangePasswordWrongOldPassword(t *testing.T) {
	svc := &stubAdminService{
		changePasswordFn: func(context.Context, string, string, string) error {
			return service.ErrWrongPassword
		},
	}

	resp := serve(newAdminRouter(svc), http.MethodPost, "/api/v1/admin/admins/password",
		`{"old_password":"wrong","new_password":"new-pass1"}`)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestHandleSystemStats(t *testing.T) {
	svc := &stubAdminService{
		statsFn: func(context.Context) (domain.SystemStats, error) {
			return domain.SystemStats{TotalSessions: 3, PendingSessions: 1}, nil
		},
	}

	resp := serve(newAdminRouter(svc), http.MethodGet, "/api/v1/admin/stats", "")

	require.Equal(t, http.StatusOK, resp.Code)

	var got domain.SystemStats
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, int64(3), got.TotalSessions)
	assert.Equal(t, int64(1), got.PendingSessions)
}

func TestHandleListAdminsEmptyIsArray(t *testing.T) {
	resp := serve(newAdminRouter(&stubAdminService{}), http.MethodGet, "/api/v1/admin/admins", "")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "[]", resp.Body.String())
}
