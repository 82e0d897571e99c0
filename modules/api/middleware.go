package api

import (
	"context"
	"slices"
	"strings"

	"github.com/Dimaschel/FullStack/domain/schedule"
	"github.com/Dimaschel/FullStack/domain/user"
	"github.com/gofiber/fiber/v2"
)

// UserContextKey is the key used to store user claims in the Fiber context.
const UserContextKey = "user"

// tokenValidator is the part of auth.AuthPort the middleware needs.
type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*user.Claims, error)
}

// AuthMiddleware resolves the bearer token into claims stored under
// UserContextKey.
func AuthMiddleware(validator tokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Authorization header is required")
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			return unauthorized(c, "Invalid authorization header format. Use: Bearer <token>")
		}
		if token = strings.TrimSpace(token); token == "" {
			return unauthorized(c, "Token is required")
		}

		claims, err := validator.ValidateToken(c.UserContext(), token)
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}

		c.Locals(UserContextKey, claims)
		return c.Next()
	}
}

// RequireRole rejects callers whose role is not listed. It must run after
// AuthMiddleware.
func RequireRole(roles ...user.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := claimsFrom(c)
		if !ok {
			return unauthorized(c, "User not authenticated")
		}
		if !slices.Contains(roles, claims.Role) {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Error:   "forbidden",
				Message: "Insufficient role for this operation",
			})
		}
		return c.Next()
	}
}

func claimsFrom(c *fiber.Ctx) (*user.Claims, bool) {
	claims, ok := c.Locals(UserContextKey).(*user.Claims)
	return claims, ok && claims != nil
}

// actorFrom turns the authenticated claims into the actor passed to the
// schedule lifecycle.
func actorFrom(c *fiber.Ctx) (schedule.Actor, bool) {
	claims, ok := claimsFrom(c)
	if !ok {
		return schedule.Actor{}, false
	}
	return schedule.Actor{ID: claims.UserID, Role: claims.Role}, true
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error:   "unauthorized",
		Message: message,
	})
}
