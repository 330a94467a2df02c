package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openmat-france/openmat-api/internal/api/handler/v1/request"
	"github.com/openmat-france/openmat-api/internal/api/handler/v1/response"
	"github.com/openmat-france/openmat-api/internal/service"
)

type LikeService interface {
	AddLike(ctx context.Context, sessionID, userID string) (int, error)
	RemoveLike(ctx context.Context, sessionID, userID string) (int, error)
	LikesCount(ctx context.Context, sessionID string) (int, error)
	LikedSessions(ctx context.Context, userID string) ([]string, error)
}

type LikeHandler struct {
	svc LikeService
}

func NewLikeHandler(svc LikeService) *LikeHandler {
	return &LikeHandler{
		svc: svc,
	}
}

// HandleAddLike godoc
// @Summary      Like a session for a pseudonymous user
// @Tags         likes
// @Produce      json
// @Param        sessionID  path  string true "session ID"
// @Param        request    body  request.AddLikeRequest true "pseudonymous user id"
// @Success      201  {object}  response.LikeCountResponse
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Router       /sessions/{sessionID}/likes [post]
func (h *LikeHandler) HandleAddLike(ctx *gin.Context) {
	var req request.AddLikeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	count, err := h.svc.AddLike(ctx.Request.Context(), ctx.Param("sessionID"), req.UserID)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyLiked) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyLiked))

			return
		}
		if errors.Is(err, service.ErrSessionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrSessionNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleAddLike -> h.svc.AddLike -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, response.LikeCountResponse{LikesCount: count})
}

// HandleRemoveLike godoc
// @Summary      Remove a pseudonymous user's like from a session
// @Tags         likes
// @Produce      json
// @Param        sessionID  path  string true "session ID"
// @Param        userID     path  string true "pseudonymous user id"
// @Success      200  {object}  response.LikeCountResponse
// @Failure      404  {object}  response.Err
// @Router       /sessions/{sessionID}/likes/{userID} [delete]
func (h *LikeHandler) HandleRemoveLike(ctx *gin.Context) {
	count, err := h.svc.RemoveLike(ctx.Request.Context(), ctx.Param("sessionID"), ctx.Param("userID"))
	if err != nil {
		if errors.Is(err, service.ErrLikeNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrLikeNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleRemoveLike -> h.svc.RemoveLike -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.LikeCountResponse{LikesCount: count})
}

// HandleGetLikeCount godoc
// @Summary      Get a session's like count
// @Tags         likes
// @Produce      json
// @Param        sessionID  path  string true "session ID"
// @Success      200  {object}  response.LikeCountResponse
// @Failure      500  {object}  response.Err
// @Router       /sessions/{sessionID}/likes/count [get]
func (h *LikeHandler) HandleGetLikeCount(ctx *gin.Context) {
	count, err := h.svc.LikesCount(ctx.Request.Context(), ctx.Param("sessionID"))
	if err != nil {
		err = fmt.Errorf("v1.HandleGetLikeCount -> h.svc.LikesCount -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.LikeCountResponse{LikesCount: count})
}

// HandleGetLikedSessions godoc
// @Summary      List the sessions a pseudonymous user has liked
// @Tags         likes
// @Produce      json
// @Param        userID  path  string true "pseudonymous user id"
// @Success      200  {object}  response.LikedSessionsResponse
// @Failure      500  {object}  response.Err
// @Router       /users/{userID}/likes [get]
func (h *LikeHandler) HandleGetLikedSessions(ctx *gin.Context) {
	ids, err := h.svc.LikedSessions(ctx.Request.Context(), ctx.Param("userID"))
	if err != nil {
		err = fmt.Errorf("v1.HandleGetLikedSessions -> h.svc.LikedSessions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	if ids == nil {
		ids = []string{}
	}

	ctx.JSON(http.StatusOK, response.LikedSessionsResponse{SessionIDs: ids})
}
