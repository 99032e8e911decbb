package serverutils

import (
	"context"
	"strings"

	"smartnotes-be/internal/pkg/apperror"
	"smartnotes-be/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
	userIdLocal        = "user_id"
)

// SubjectExists reports whether the account a token was issued to is still
// present.
type SubjectExists func(ctx context.Context, userId uuid.UUID) (bool, error)

// JwtMiddleware accepts the access token from the accessToken cookie or an
// Authorization: Bearer header and stores the caller id in ctx.Locals.
// Tokens of deleted accounts are rejected when exists is set.
func JwtMiddleware(tokens *token.Manager, exists SubjectExists) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		raw := ctx.Cookies(AccessTokenCookie)
		if raw == "" {
			authHeader := ctx.Get(fiber.HeaderAuthorization)
			if strings.HasPrefix(authHeader, "Bearer ") {
				raw = strings.TrimSpace(authHeader[len("Bearer "):])
			}
		}
		if raw == "" {
			return apperror.Unauthorized("unauthorized request")
		}

		claims, err := tokens.ParseAccessToken(raw)
		if err != nil {
			return apperror.Unauthorized("invalid access token")
		}
		userId, err := uuid.Parse(claims.UserId)
		if err != nil {
			return apperror.Unauthorized("invalid access token")
		}

		if exists != nil {
			ok, err := exists(ctx.UserContext(), userId)
			if err != nil {
				return err
			}
			if !ok {
				return apperror.Unauthorized("invalid access token")
			}
		}

		ctx.Locals(userIdLocal, claims.UserId)
		return ctx.Next()
	}
}

// UserID returns the caller resolved by JwtMiddleware.
func UserID(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := ctx.Locals(userIdLocal).(string)
	if !ok {
		return uuid.Nil, apperror.Unauthorized("unauthorized request")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.Unauthorized("unauthorized request")
	}
	return id, nil
}
