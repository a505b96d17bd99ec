package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"sitecms/internal/http/middleware"
	"sitecms/internal/service"
)

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      any       `json:"user"`
}

// Login handles POST /api/user/login. The token is returned in the body and
// also set as a cookie for the admin console.
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in loginRequest
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed body")
		}
		session, err := svc.Login(c.UserContext(), in.Email, in.Password)
		if err != nil {
			return fail(c, err)
		}
		c.Cookie(&fiber.Cookie{
			Name:     "token",
			Value:    session.Token,
			Expires:  session.ExpiresAt,
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return c.JSON(loginResponse{
			Token:     session.Token,
			ExpiresAt: session.ExpiresAt,
			User:      session.User,
		})
	}
}

type registerRequest struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role"`
}

// Register handles POST /api/user/register. Open by design: it is the only
// way to create the first account on a fresh install.
func Register(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in registerRequest
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed body")
		}
		user, err := svc.Register(c.UserContext(), service.RegisterInput{
			Username: in.Username,
			Email:    in.Email,
			Password: in.Password,
			Role:     in.Role,
		})
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user})
	}
}

// Profile handles GET /api/user/profile for the authenticated user.
func Profile(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := middleware.ClaimsFromCtx(c)
		if claims == nil {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}
		user, err := svc.Profile(c.UserContext(), claims.UserID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"user": user})
	}
}

type profileRequest struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	FullName string `json:"fullName" form:"fullName"`
	Phone    string `json:"phone" form:"phone"`
}

// UpdateProfile handles PUT /api/user/profile.
func UpdateProfile(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := middleware.ClaimsFromCtx(c)
		if claims == nil {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}
		var in profileRequest
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed body")
		}
		user, err := svc.UpdateProfile(c.UserContext(), claims.UserID, service.ProfileInput{
			Username: in.Username,
			Email:    in.Email,
			FullName: in.FullName,
			Phone:    in.Phone,
		})
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"user": user})
	}
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" form:"currentPassword"`
	NewPassword     string `json:"newPassword" form:"newPassword"`
}

// ChangePassword handles PUT /api/user/change-password.
func ChangePassword(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := middleware.ClaimsFromCtx(c)
		if claims == nil {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}
		var in changePasswordRequest
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed body")
		}
		if err := svc.ChangePassword(c.UserContext(), claims.UserID, in.CurrentPassword, in.NewPassword); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"status": "password changed"})
	}
}

// ForgotPassword handles POST /api/user/forgot-password by emailing a
// single-use reset link.
func ForgotPassword(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in struct {
			Email string `json:"email" form:"email"`
		}
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed body")
		}
		if err := svc.ForgotPassword(c.UserContext(), in.Email); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"status": "reset email sent"})
	}
}

// ResetPassword handles POST /api/user/reset-password/:token.
func ResetPassword(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in struct {
			Password string `json:"password" form:"password"`
		}
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed body")
		}
		if err := svc.ResetPassword(c.UserContext(), c.Params("token"), in.Password); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"status": "password reset"})
	}
}

// Logout handles POST /api/user/logout by expiring the token cookie.
func Logout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     "token",
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return c.JSON(fiber.Map{"status": "logged out"})
	}
}
