package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) setSessionCookie(c *fiber.Ctx, sessionID string, expiresAt time.Time) error {
	sealed, err := handler.cookieCodec.seal(sessionCookiePurpose, []byte(sessionID))
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    sealed,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  expiresAt,
	})
	return nil
}

func (handler *Handler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

// sessionIDFromCookie returns the session id sealed in the request cookie,
// or "" when the cookie is missing or was not issued by this server.
func (handler *Handler) sessionIDFromCookie(c *fiber.Ctx) string {
	raw := strings.TrimSpace(c.Cookies(sessionCookieName))
	if raw == "" {
		return ""
	}
	plaintext, err := handler.cookieCodec.open(sessionCookiePurpose, raw)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(plaintext))
}
