package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/quitpath/internal/services"
)

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	session, err := handler.authenticateRequest(c)
	if err != nil {
		if !errors.Is(err, errMissingSessionCookie) && !services.IsSessionRejected(err) {
			return apiError(c, fiber.StatusInternalServerError, "session unavailable")
		}
		if strings.HasPrefix(c.Path(), "/api/") || acceptsJSON(c) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}
		return redirectToPath(c, "/login")
	}

	storeSessionLocals(c, session)
	return c.Next()
}
