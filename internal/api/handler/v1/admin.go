package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openmat-france/openmat-api/internal/api/handler/v1/request"
	"github.com/openmat-france/openmat-api/internal/api/handler/v1/response"
	"github.com/openmat-france/openmat-api/internal/api/middleware"
	"github.com/openmat-france/openmat-api/internal/config"
	"github.com/openmat-france/openmat-api/internal/domain"
	"github.com/openmat-france/openmat-api/internal/pkg/jwthelper"
	"github.com/openmat-france/openmat-api/internal/service"
)

type AdminService interface {
	Verify(ctx context.Context, username, password string) (domain.Admin, error)
	ListAdmins(ctx context.Context) ([]domain.Admin, error)
	AddAdmin(ctx context.Context, admin domain.Admin, password string) (domain.Admin, error)
	DeleteAdmin(ctx context.Context, id string) error
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error
	SystemStats(ctx context.Context) (domain.SystemStats, error)
}

type AdminHandler struct {
	conf *config.APIConfig
	svc  AdminService
}

func NewAdminHandler(conf *config.APIConfig, svc AdminService) *AdminHandler {
	return &AdminHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleLogin godoc
// @Summary      Login a back-office operator
// @Tags         auth
// @Produce      json
// @Param        request  body      request.LoginRequest true "request body"
// @Success      200  {object}  response.LoginResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /auth/login [post]
func (h *AdminHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	admin, err := h.svc.Verify(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAdminNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Verify -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey),
		admin.ID, admin.Username, admin.Role, ctx.Request.UserAgent())
	if err != nil {
		err = fmt.Errorf("v1.HandleLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token: token,
		Admin: admin,
	})
}

// HandleListAdmins godoc
// @Summary      List back-office operators
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.Admin
// @Failure      500  {object}  response.Err
// @Router       /admin/admins [get]
// @Security     BearerAuth
func (h *AdminHandler) HandleListAdmins(ctx *gin.Context) {
	admins, err := h.svc.ListAdmins(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListAdmins -> h.svc.ListAdmins -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	if admins == nil {
		admins = []domain.Admin{}
	}

	ctx.JSON(http.StatusOK, admins)
}

// HandleAddAdmin godoc
// @Summary      Create a back-office operator (admin role required)
// @Tags         admin
// @Produce      json
// @Param        request  body      request.AddAdminRequest true "request body"
// @Success      201  {object}  domain.Admin
// @Failure      400  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Router       /admin/admins [post]
// @Security     BearerAuth
func (h *AdminHandler) HandleAddAdmin(ctx *gin.Context) {
	var req request.AddAdminRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	created, err := h.svc.AddAdmin(ctx.Request.Context(), domain.Admin{
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
	}, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAdminUsernameExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrAdminUsernameExists))

			return
		}
		if errors.Is(err, service.ErrInvalidRole) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidRole))

			return
		}

		err = fmt.Errorf("v1.HandleAddAdmin -> h.svc.AddAdmin -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleDeleteAdmin godoc
// @Summary      Delete a back-office operator (admin role required)
// @Tags         admin
// @Produce      json
// @Param        adminID  path  string true "admin ID"
// @Success      204
// @Failure      404  {object}  response.Err
// @Router       /admin/admins/{adminID} [delete]
// @Security     BearerAuth
func (h *AdminHandler) HandleDeleteAdmin(ctx *gin.Context) {
	if err := h.svc.DeleteAdmin(ctx.Request.Context(), ctx.Param("adminID")); err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrAdminNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteAdmin -> h.svc.DeleteAdmin -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleChangePassword godoc
// @Summary      Change the authenticated operator's password
// @Tags         admin
// @Produce      json
// @Param        request  body      request.ChangePasswordRequest true "request body"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Router       /admin/admins/password [post]
// @Security     BearerAuth
func (h *AdminHandler) HandleChangePassword(ctx *gin.Context) {
	var req request.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	username := ctx.GetString(middleware.ContextKeyUsername)
	err := h.svc.ChangePassword(ctx.Request.Context(), username, req.OldPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrWrongPassword) || errors.Is(err, service.ErrAdminNotFound) {
			response.RenderErr(ctx, response.ErrUnauthorized(errors.New("old password incorrect")))

			return
		}

		err = fmt.Errorf("v1.HandleChangePassword -> h.svc.ChangePassword -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleSystemStats godoc
// @Summary      Dashboard counters
// @Tags         admin
// @Produce      json
// @Success      200  {object}  domain.SystemStats
// @Failure      500  {object}  response.Err
// @Router       /admin/stats [get]
// @Security     BearerAuth
func (h *AdminHandler) HandleSystemStats(ctx *gin.Context) {
	stats, err := h.svc.SystemStats(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleSystemStats -> h.svc.SystemStats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, stats)
}
