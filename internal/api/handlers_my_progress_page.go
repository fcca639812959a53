package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/quitpath/internal/models"
	"github.com/terraincognita07/quitpath/internal/services"
)

type myProgressOverrides struct {
	status   *models.SmokingStatus
	errorMsg string
	code     int
}

func (handler *Handler) ShowMyProgress(c *fiber.Ctx) error {
	return handler.renderMyProgress(c, myProgressOverrides{})
}

func (handler *Handler) renderMyProgress(c *fiber.Ctx, overrides myProgressOverrides) error {
	user, messages, now := handler.currentPageViewContext(c)
	dashboard := handler.dashboards.Load(c.UserContext(), currentToken(c))
	if handled, err := handler.endSessionOnUnauthorized(c, dashboard.ProfileErr); handled {
		return err
	}

	view := buildMyProgressView(dashboard, user, now, handler.location)
	if overrides.status != nil {
		view.Status = *overrides.status
	}

	flash := handler.popFlashCookie(c)
	errorMessage := flash.ProgressError
	if overrides.errorMsg != "" {
		errorMessage = overrides.errorMsg
	}
	if overrides.code != 0 {
		c.Status(overrides.code)
	}

	return handler.render(c, "my_progress", fiber.Map{
		"Title":              localizedPageTitle(messages, "meta.title.my_progress", "QuitPath | My progress"),
		"View":               view,
		"ProgressError":      errorMessage,
		"ProgressSuccess":    flash.ProgressSuccess,
		"BadgeCount":         flash.BadgeCount,
		"SmokingFrequencies": models.SmokingFrequencies,
		"CigaretteTypes":     models.CigaretteTypes,
		"OtherCigaretteType": models.CigaretteTypeOther,
		"HistoryPath":        "/my-progress/history",
		"DefaultPlanDays":    services.SuggestedPlanDurationDays(""),
	})
}
