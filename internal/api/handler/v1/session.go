package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openmat-france/openmat-api/internal/api/handler/v1/request"
	"github.com/openmat-france/openmat-api/internal/api/handler/v1/response"
	"github.com/openmat-france/openmat-api/internal/domain"
	"github.com/openmat-france/openmat-api/internal/schedule"
	"github.com/openmat-france/openmat-api/internal/service"
)

type SessionService interface {
	Submit(ctx context.Context, session domain.Session) (domain.Session, error)
	GetSession(ctx context.Context, id string) (domain.Session, error)
	ListSessions(ctx context.Context, status string) ([]domain.Session, error)
	UpdateSession(ctx context.Context, id string, update domain.SessionUpdate) error
	Approve(ctx context.Context, id, photo string) error
	Unapprove(ctx context.Context, id string) error
	SetPhoto(ctx context.Context, id, photo string) error
	DeleteSession(ctx context.Context, id string) error
	ExportSessions(ctx context.Context) ([]domain.Session, error)
}

type SessionHandler struct {
	svc SessionService
}

func NewSessionHandler(svc SessionService) *SessionHandler {
	return &SessionHandler{
		svc: svc,
	}
}

// HandleListPublicSessions godoc
// @Summary      List approved sessions for the public explorer
// @Tags         sessions
// @Produce      json
// @Param        sort          query     string false "date-asc|date-desc|city-asc|city-desc|price-asc|price-desc"
// @Param        include_expired query   bool   false "keep sessions whose every date is past"
// @Success      200  {array}   domain.Session
// @Failure      500  {object}  response.Err
// @Router       /sessions [get]
func (h *SessionHandler) HandleListPublicSessions(ctx *gin.Context) {
	sortOption := ctx.Query("sort")
	if err := request.ValidateSortOption(sortOption); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	sessions, err := h.svc.ListSessions(ctx.Request.Context(), domain.StatusApproved)
	if err != nil {
		err = fmt.Errorf("v1.HandleListPublicSessions -> h.svc.ListSessions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	if ctx.Query("include_expired") != "true" {
		sessions = schedule.FilterActive(sessions)
	}
	if sortOption != "" {
		sessions = schedule.Sort(sessions, schedule.SortOption(sortOption))
	}
	if sessions == nil {
		sessions = []domain.Session{}
	}

	ctx.JSON(http.StatusOK, sessions)
}

// HandleGetSession godoc
// @Summary      Get one session
// @Tags         sessions
// @Produce      json
// @Param        sessionID  path      string true "session ID"
// @Success      200  {object}  domain.Session
// @Failure      404  {object}  response.Err
// @Router       /sessions/{sessionID} [get]
func (h *SessionHandler) HandleGetSession(ctx *gin.Context) {
	session, err := h.svc.GetSession(ctx.Request.Context(), ctx.Param("sessionID"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrSessionNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleGetSession -> h.svc.GetSession -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, session)
}

// HandleSubmitSession godoc
// @Summary      Submit a new session, entering moderation as pending
// @Tags         sessions
// @Produce      json
// @Param        request  body      request.CreateSessionRequest true "request body"
// @Success      201  {object}  domain.Session
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /sessions [post]
func (h *SessionHandler) HandleSubmitSession(ctx *gin.Context) {
	var req request.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	created, err := h.svc.Submit(ctx.Request.Context(), domain.Session{
		Title:       req.Title,
		Club:        req.Club,
		City:        req.City,
		Address:     req.Address,
		Date:        req.Date,
		Time:        req.Time,
		Price:       req.Price,
		Type:        req.Type,
		Description: req.Description,
		Photo:       req.Photo,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleSubmitSession -> h.svc.Submit -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleListSessions godoc
// @Summary      List sessions for the back office, optionally by status
// @Tags         admin
// @Produce      json
// @Param        status  query     string false "pending or approved"
// @Success      200  {array}   domain.Session
// @Failure      500  {object}  response.Err
// @Router       /admin/sessions [get]
// @Security     BearerAuth
func (h *SessionHandler) HandleListSessions(ctx *gin.Context) {
	status := ctx.Query("status")
	if status != "" && status != domain.StatusPending && status != domain.StatusApproved {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("unknown status")))

		return
	}

	sessions, err := h.svc.ListSessions(ctx.Request.Context(), status)
	if err != nil {
		err = fmt.Errorf("v1.HandleListSessions -> h.svc.ListSessions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	if sessions == nil {
		sessions = []domain.Session{}
	}

	ctx.JSON(http.StatusOK, sessions)
}

// HandleUpdateSession godoc
// @Summary      Partially edit a session without touching its status
// @Tags         admin
// @Produce      json
// @Param        sessionID  path  string true "session ID"
// @Param        request    body  request.UpdateSessionRequest true "fields to change"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /admin/sessions/{sessionID} [patch]
// @Security     BearerAuth
func (h *SessionHandler) HandleUpdateSession(ctx *gin.Context) {
	var req request.UpdateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	err := h.svc.UpdateSession(ctx.Request.Context(), ctx.Param("sessionID"), req.ToUpdate())
	if err != nil {
		h.renderMutationErr(ctx, "HandleUpdateSession", err)

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleApproveSession godoc
// @Summary      Approve a session, optionally attaching a photo atomically
// @Tags         admin
// @Produce      json
// @Param        sessionID  path  string true "session ID"
// @Param        request    body  request.ApproveSessionRequest false "optional photo"
// @Success      204
// @Failure      404  {object}  response.Err
// @Router       /admin/sessions/{sessionID}/approve [post]
// @Security     BearerAuth
func (h *SessionHandler) HandleApproveSession(ctx *gin.Context) {
	var req request.ApproveSessionRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}
	}

	if err := h.svc.Approve(ctx.Request.Context(), ctx.Param("sessionID"), req.Photo); err != nil {
		h.renderMutationErr(ctx, "HandleApproveSession", err)

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleUnapproveSession godoc
// @Summary      Send an approved session back to the moderation queue
// @Tags         admin
// @Produce      json
// @Param        sessionID  path  string true "session ID"
// @Success      204
// @Failure      404  {object}  response.Err
// @Router       /admin/sessions/{sessionID}/unapprove [post]
// @Security     BearerAuth
func (h *SessionHandler) HandleUnapproveSession(ctx *gin.Context) {
	if err := h.svc.Unapprove(ctx.Request.Context(), ctx.Param("sessionID")); err != nil {
		h.renderMutationErr(ctx, "HandleUnapproveSession", err)

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleSetPhoto godoc
// @Summary      Replace a session's photo
// @Tags         admin
// @Produce      json
// @Param        sessionID  path  string true "session ID"
// @Param        request    body  request.SetPhotoRequest true "photo reference"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /admin/sessions/{sessionID}/photo [put]
// @Security     BearerAuth
func (h *SessionHandler) HandleSetPhoto(ctx *gin.Context) {
	var req request.SetPhotoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.SetPhoto(ctx.Request.Context(), ctx.Param("sessionID"), req.Photo); err != nil {
		h.renderMutationErr(ctx, "HandleSetPhoto", err)

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleDeleteSession godoc
// @Summary      Delete a session permanently
// @Tags         admin
// @Produce      json
// @Param        sessionID  path  string true "session ID"
// @Success      204
// @Failure      404  {object}  response.Err
// @Router       /admin/sessions/{sessionID} [delete]
// @Security     BearerAuth
func (h *SessionHandler) HandleDeleteSession(ctx *gin.Context) {
	if err := h.svc.DeleteSession(ctx.Request.Context(), ctx.Param("sessionID")); err != nil {
		h.renderMutationErr(ctx, "HandleDeleteSession", err)

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleExportSessions godoc
// @Summary      Dump every session for backup
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.ExportResponse
// @Failure      500  {object}  response.Err
// @Router       /admin/export [get]
// @Security     BearerAuth
func (h *SessionHandler) HandleExportSessions(ctx *gin.Context) {
	sessions, err := h.svc.ExportSessions(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleExportSessions -> h.svc.ExportSessions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	if sessions == nil {
		sessions = []domain.Session{}
	}

	ctx.JSON(http.StatusOK, response.ExportResponse{Data: sessions})
}

func (h *SessionHandler) renderMutationErr(ctx *gin.Context, op string, err error) {
	if errors.Is(err, service.ErrSessionNotFound) {
		response.RenderErr(ctx, response.ErrNotFound(service.ErrSessionNotFound))

		return
	}

	err = fmt.Errorf("v1.%v -> %w", op, err)
	response.RenderErr(ctx, response.ErrInternalServerError(err))
}
