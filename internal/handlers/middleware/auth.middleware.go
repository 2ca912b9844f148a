package middleware

import (
	"context"
	"strings"
	"wellness360/internal/models"
	"wellness360/internal/services"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
)

type AuthContextKey string

const (
	UserKey        AuthContextKey = "user"
	UserKeyFiber   string         = "User"
	ClaimsKeyFiber string         = "SessionClaims"
)

// RequireAuth validates the bearer token, confirms the session is live, and
// loads the user into both the Fiber and Go contexts.
func (m *Middleware) RequireAuth(sessionService *services.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := logger.New("middleware").TraceFromContext(c.Context()).Function("RequireAuth")

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
			})
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		claims, err := sessionService.Validate(c.UserContext(), tokenParts[1])
		if err != nil {
			log.Info("token validation failed", "error", err.Error())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		user, err := m.userRepo.GetByID(c.UserContext(), m.DB.SQL, claims.UserID)
		if err != nil {
			log.Info("user not found", "userID", claims.UserID, "error", err.Error())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User not found",
			})
		}

		if !user.IsActive {
			log.Info("inactive user rejected", "userID", user.ID)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Account is disabled",
			})
		}

		c.Locals(UserKeyFiber, user)
		c.Locals(ClaimsKeyFiber, claims)

		ctx := context.WithValue(c.UserContext(), UserKey, user)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// GetUser extracts the authenticated user from Fiber context
func GetUser(c *fiber.Ctx) *models.User {
	user, ok := c.Locals(UserKeyFiber).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetClaims extracts the session claims from Fiber context
func GetClaims(c *fiber.Ctx) *services.SessionClaims {
	claims, ok := c.Locals(ClaimsKeyFiber).(*services.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}
