package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/quitpath/internal/models"
	"github.com/terraincognita07/quitpath/internal/services"
)

func (handler *Handler) ShowHome(c *fiber.Ctx) error {
	landingPath := "/login"
	if session := handler.loadOptionalSession(c); session != nil {
		landingPath = services.LandingPath(session.User.NormalizedRole())
	}

	return handler.render(c, "home", fiber.Map{
		"Title":       localizedPageTitle(currentMessages(c), "meta.title.home", "QuitPath"),
		"LandingPath": landingPath,
	})
}

// ShowUnauthorized is the standalone access-denied page. The role query
// names the role the visitor would need.
func (handler *Handler) ShowUnauthorized(c *fiber.Ctx) error {
	handler.loadOptionalSession(c)
	return handler.renderUnauthorized(c, c.Query("role"))
}

func (handler *Handler) renderUnauthorized(c *fiber.Ctx, requiredRole string) error {
	required := models.NormalizeRole(requiredRole)
	if required == models.RoleGuest {
		required = models.RoleMemberVIP
	}

	if strings.HasPrefix(c.Path(), "/api/") || acceptsJSON(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden", "required_role": required})
	}

	c.Status(fiber.StatusForbidden)
	return handler.render(c, "unauthorized", fiber.Map{
		"Title":           localizedPageTitle(currentMessages(c), "meta.title.unauthorized", "QuitPath | Access denied"),
		"RequiredRole":    required,
		"RequiredRoleKey": services.RoleLabelKey(required),
		"ShowUpgrade":     required == models.RoleMemberVIP,
	})
}
