package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) SetLanguage(c *fiber.Ctx) error {
	language := handler.i18n.NormalizeLanguage(c.Params("lang"))
	handler.setLanguageCookie(c, language)
	return redirectToPath(c, sanitizeRedirectPath(c.Query("next"), "/"))
}

// CurrentSession reports the signed-in user without the bearer token.
func (handler *Handler) CurrentSession(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(fiber.Map{
		"user":       session.User,
		"role":       session.User.NormalizedRole(),
		"vip":        session.User.IsVIP(),
		"expires_at": session.ExpiresAt,
	})
}

func (handler *Handler) CurrentSidebar(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	view := buildSidebarView(c, user)
	return c.JSON(fiber.Map{
		"variant": view.Variant,
		"role":    view.RoleLabelKey,
		"links":   view.Links,
	})
}
