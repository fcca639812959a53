package api

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var errMissingCredentials = errors.New("missing credentials")

func parseCredentials(c *fiber.Ctx) (credentialsInput, error) {
	credentials := credentialsInput{}
	if err := c.BodyParser(&credentials); err != nil {
		return credentialsInput{}, err
	}

	credentials.Email = normalizeLoginEmail(credentials.Email)
	if credentials.Email == "" || strings.TrimSpace(credentials.Password) == "" {
		return credentials, errMissingCredentials
	}
	if _, err := mail.ParseAddress(credentials.Email); err != nil {
		return credentials, err
	}
	return credentials, nil
}

func normalizeLoginEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if len(email) > 254 {
		return ""
	}
	return email
}

func (handler *Handler) respondAuthError(c *fiber.Ctx, status int, message string, email string) error {
	if acceptsJSON(c) || isHTMX(c) {
		return apiError(c, status, message)
	}
	handler.setFlashCookie(c, FlashPayload{AuthError: message, LoginEmail: email})
	return c.Redirect("/login", fiber.StatusSeeOther)
}
