package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/quitpath/internal/models"
	"github.com/terraincognita07/quitpath/internal/services"
)

func (handler *Handler) redirectAuthenticatedUserIfPresent(c *fiber.Ctx) (bool, error) {
	session := handler.optionalSession(c)
	if session == nil {
		return false, nil
	}
	return true, redirectToPath(c, services.LandingPath(session.User.NormalizedRole()))
}

// loadOptionalSession exposes the visitor's session to templates on public
// pages. It returns nil for guests.
func (handler *Handler) loadOptionalSession(c *fiber.Ctx) *services.ActiveSession {
	session := handler.optionalSession(c)
	if session != nil {
		storeSessionLocals(c, session)
	}
	return session
}

func (handler *Handler) currentPageViewContext(c *fiber.Ctx) (*models.User, map[string]string, time.Time) {
	user, _ := currentUser(c)
	return user, currentMessages(c), handler.now().In(handler.location)
}
