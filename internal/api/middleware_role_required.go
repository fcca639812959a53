package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/quitpath/internal/models"
)

// RoleRequired lets the request through only for the listed roles. Anyone
// else gets the unauthorized page naming the first listed role.
func (handler *Handler) RoleRequired(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[models.NormalizeRole(role)] = true
	}
	required := models.RoleMemberVIP
	if len(roles) > 0 {
		required = models.NormalizeRole(roles[0])
	}

	return func(c *fiber.Ctx) error {
		user, ok := currentUser(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}
		role := user.NormalizedRole()
		if allowed[role] {
			return c.Next()
		}
		if role == models.RoleMember && user.IsVIP() && allowed[models.RoleMemberVIP] {
			return c.Next()
		}
		return handler.renderUnauthorized(c, required)
	}
}

// MembersOnly sends admins and coaches back home instead of showing them a
// member page.
func (handler *Handler) MembersOnly(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return redirectToPath(c, "/login")
	}
	switch user.NormalizedRole() {
	case models.RoleMember, models.RoleMemberVIP:
		return c.Next()
	case models.RoleAdmin, models.RoleCoach:
		return redirectToPath(c, "/")
	default:
		return handler.renderUnauthorized(c, models.RoleMember)
	}
}
