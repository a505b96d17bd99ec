package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"sitecms/internal/auth"
)

// ClaimsLocalKey is the key used to store verified token claims in Fiber's
// context locals.
const ClaimsLocalKey = "auth_claims"

// RequireAuth verifies the bearer token on the request and stores its claims
// in context locals. The token comes from the Authorization header or, as a
// fallback, the "token" cookie.
func RequireAuth(tokens *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing credentials")
		}
		claims, err := tokens.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}
		c.Locals(ClaimsLocalKey, claims)
		return c.Next()
	}
}

// RequireRole rejects authenticated requests whose token lacks the role.
// It must run after RequireAuth.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, _ := c.Locals(ClaimsLocalKey).(*auth.Claims)
		if claims == nil || claims.Role != role {
			return fiber.NewError(fiber.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}

// ClaimsFromCtx returns the verified claims stored by RequireAuth, or nil.
func ClaimsFromCtx(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(ClaimsLocalKey).(*auth.Claims)
	return claims
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return c.Cookies("token")
}
