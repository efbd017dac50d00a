package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/czegarraro/backend/internal/api/dto"
	"github.com/czegarraro/backend/internal/auth"
	"github.com/czegarraro/backend/internal/service"
	apperrors "github.com/czegarraro/backend/pkg/util/errorutil"
)

// AuthHandler exposes login/logout/me endpoints for the demo account.
type AuthHandler struct {
	auth         *service.AuthService
	cookieSecure bool
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: authService, cookieSecure: cookieSecure}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	user, token, expiresAt, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.TokenCookieName,
		Value:    token,
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return c.JSON(fiber.Map{"data": fiber.Map{
		"user": dto.UserResponse{Username: user.Username},
		"auth": dto.AuthResponse{Token: token, ExpiresAt: expiresAt},
	}})
}

// Logout POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	username := ""
	if principal, ok := auth.PrincipalFromContext(c); ok {
		username = principal.Username
	}
	if err := h.auth.Logout(c.UserContext(), username); err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     auth.TokenCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return c.JSON(fiber.Map{"data": nil})
}

// Me GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"user": dto.UserResponse{Username: principal.Username},
	}})
}
