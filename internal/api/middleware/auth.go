package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/openmat-france/openmat-api/internal/api/handler/v1/response"
	"github.com/openmat-france/openmat-api/internal/domain"
	"github.com/openmat-france/openmat-api/internal/pkg/jwthelper"
)

// Context keys populated by VerifyJWT.
const (
	ContextKeyAdminID  = "adminID"
	ContextKeyUsername = "adminUsername"
	ContextKeyRole     = "adminRole"
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT rejects requests without a valid bearer token and stashes the
// operator identity in the gin context.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errors.New("missing bearer token")))
			ctx.Abort()

			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(errors.New("invalid or expired token")))
			ctx.Abort()

			return
		}

		ctx.Set(ContextKeyAdminID, claims.AdminID)
		ctx.Set(ContextKeyUsername, claims.Username)
		ctx.Set(ContextKeyRole, claims.Role)
		ctx.Next()
	}
}

// RequireRole enforces the viewer < moderator < admin hierarchy on the
// role claim. The token's self-reported role is trusted only because the
// token itself is signed server-side.
func RequireRole(required string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		role := ctx.GetString(ContextKeyRole)
		if !domain.RoleSatisfies(role, required) {
			response.RenderErr(ctx, &response.Err{
				StatusCode: http.StatusForbidden,
				Msg:        "insufficient role",
			})
			ctx.Abort()

			return
		}

		ctx.Next()
	}
}
