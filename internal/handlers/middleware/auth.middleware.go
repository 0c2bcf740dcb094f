package middleware

import (
	"context"
	"strings"

	"matchly/internal/models"
	"matchly/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

// AuthContextKey is used to store auth info in context
type AuthContextKey string

const (
	UserKey      AuthContextKey = "user"
	UserKeyFiber string         = "User"

	UnauthenticatedMessage = "Unauthenticated."
)

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(types.MessageResponse{
		Message: UnauthenticatedMessage,
	})
}

// RequireAuth validates the bearer token and loads its user.
func (m *Middleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		log := logger.New("middleware").TraceFromContext(ctx).Function("RequireAuth")

		authHeader := c.Get(fiber.HeaderAuthorization)
		scheme, token, found := strings.Cut(strings.TrimSpace(authHeader), " ")
		if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
			log.Debug("missing or malformed authorization header")
			return unauthenticated(c)
		}

		userID, err := m.authService.ValidateToken(ctx, strings.TrimSpace(token))
		if err != nil {
			log.Info("token validation failed", "error", err)
			return unauthenticated(c)
		}

		user, err := m.userRepo.GetByID(ctx, m.DB.SQLWithContext(ctx), userID)
		if err != nil {
			log.Info("token user not found", "userID", userID, "error", err)
			return unauthenticated(c)
		}

		c.Locals(UserKeyFiber, user)
		c.SetUserContext(context.WithValue(ctx, UserKey, user))

		return c.Next()
	}
}

// GetUser extracts user from Fiber context
func GetUser(c *fiber.Ctx) *models.User {
	user, ok := c.Locals(UserKeyFiber).(*models.User)
	if !ok {
		return nil
	}
	return user
}
