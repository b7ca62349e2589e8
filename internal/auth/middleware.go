package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/travel-support-desk/internal/domain"
)

const (
	// SessionCookieName holds the signed admin session.
	SessionCookieName = "admin_session"

	adminKey = "auth_admin"
)

// SessionMiddleware guards dashboard pages. Requests without a valid session
// are redirected to the login page.
type SessionMiddleware struct {
	tokens    *TokenManager
	loginPath string
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(tokens *TokenManager, loginPath string) *SessionMiddleware {
	return &SessionMiddleware{tokens: tokens, loginPath: loginPath}
}

// Handle enforces an admin session.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	raw := c.Cookies(SessionCookieName)
	if raw == "" {
		return c.Redirect(m.loginPath, fiber.StatusSeeOther)
	}
	session, err := m.tokens.ParseToken(raw)
	if err != nil {
		ClearSessionCookie(c)
		return c.Redirect(m.loginPath, fiber.StatusSeeOther)
	}
	c.Locals(adminKey, &domain.Admin{Username: session.Username})
	return c.Next()
}

// AdminFromContext retrieves the authenticated admin.
func AdminFromContext(c *fiber.Ctx) (*domain.Admin, bool) {
	admin, ok := c.Locals(adminKey).(*domain.Admin)
	return admin, ok && admin != nil
}

// SetSessionCookie stores the session token on the response.
func SetSessionCookie(c *fiber.Ctx, token string, expiresAt time.Time, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
