package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/czegarraro/backend/internal/domain"
	apperrors "github.com/czegarraro/backend/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// TokenCookieName is the cookie carrying the session token for browser clients.
const TokenCookieName = "token"

// AuthMiddleware validates session tokens and loads the principal. The token
// is read from the httpOnly cookie or, as a fallback, a Bearer header.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	tokenStr := extractToken(c)
	if tokenStr == "" {
		return apperrors.NewUnauthorized("authentication required")
	}

	claims, err := m.tokens.ParseToken(tokenStr)
	if err != nil {
		return apperrors.NewUnauthorized("invalid or expired token")
	}

	c.Locals(principalKey, &domain.AuthUser{Username: claims.Username})
	return c.Next()
}

// Optional loads the principal when a valid token is present but lets
// anonymous requests through. Used where identity only sets a default, such as
// the comment author name.
func (m *AuthMiddleware) Optional(c *fiber.Ctx) error {
	if tokenStr := extractToken(c); tokenStr != "" {
		if claims, err := m.tokens.ParseToken(tokenStr); err == nil {
			c.Locals(principalKey, &domain.AuthUser{Username: claims.Username})
		}
	}
	return c.Next()
}

func extractToken(c *fiber.Ctx) string {
	if cookie := c.Cookies(TokenCookieName); cookie != "" {
		return cookie
	}
	authHeader := c.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// PrincipalFromContext retrieves the authenticated user, if any.
func PrincipalFromContext(c *fiber.Ctx) (*domain.AuthUser, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.AuthUser)
	return user, ok
}
