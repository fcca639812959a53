package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/quitpath/internal/backend"
	"github.com/terraincognita07/quitpath/internal/logger"
	"github.com/terraincognita07/quitpath/internal/models"
	"github.com/terraincognita07/quitpath/internal/services"
)

const myProgressPath = "/my-progress"

var progressErrorKeys = []struct {
	target error
	key    string
}{
	{services.ErrInvalidPlanInput, "progress.error.invalid_plan"},
	{services.ErrUnknownTemplate, "progress.error.unknown_template"},
	{services.ErrNoPlanToUpdate, "progress.error.no_plan"},
	{services.ErrEmptyMilestone, "progress.error.milestone_required"},
	{services.ErrInvalidDailyLog, "progress.error.invalid_daily_log"},
	{services.ErrInvalidPlanRef, "progress.error.invalid_plan_choice"},
	{services.ErrPlanNotAvailable, "progress.error.invalid_plan_choice"},
	{services.ErrCoachPlanNotFound, "progress.error.coach_plan_not_found"},
	{services.ErrCoachPlanResponded, "progress.error.coach_plan_answered"},
	{services.ErrInvalidStatusField, "progress.error.invalid_status"},
	{services.ErrInvalidStatusValue, "progress.error.invalid_status"},
	{services.ErrSmokingStatusUnavailable, "progress.error.status_unavailable"},
}

// progressErrorMessage is a translation key for known failures and the
// backend's own message otherwise.
func progressErrorMessage(err error) string {
	for _, entry := range progressErrorKeys {
		if errors.Is(err, entry.target) {
			return entry.key
		}
	}
	return backend.Message(err, "progress.error.generic")
}

func progressErrorStatus(err error) int {
	if backend.StatusCode(err) != 0 {
		return fiber.StatusBadGateway
	}
	for _, entry := range progressErrorKeys {
		if errors.Is(err, entry.target) {
			return fiber.StatusBadRequest
		}
	}
	return fiber.StatusInternalServerError
}

func (handler *Handler) finishProgressAction(c *fiber.Ctx, err error, successKey string, badgeCount int) error {
	if err != nil {
		if handled, redirectErr := handler.endSessionOnUnauthorized(c, err); handled {
			return redirectErr
		}
		logger.Debug("my-progress: action failed", "path", c.Path(), "err", err)
		if acceptsJSON(c) {
			return apiError(c, progressErrorStatus(err), progressErrorMessage(err))
		}
		handler.setFlashCookie(c, FlashPayload{ProgressError: progressErrorMessage(err)})
		return redirectToPath(c, myProgressPath)
	}

	if acceptsJSON(c) {
		return c.JSON(fiber.Map{"ok": true, "new_badges": badgeCount})
	}
	handler.setFlashCookie(c, FlashPayload{ProgressSuccess: successKey, BadgeCount: badgeCount})
	return redirectToPath(c, myProgressPath)
}

// UpdateSmokingStatus applies either one field or the whole form. A failed
// write re-renders the page with the edited values still in place.
func (handler *Handler) UpdateSmokingStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()
	token := currentToken(c)
	field := strings.TrimSpace(c.FormValue("field"))

	var (
		updated models.SmokingStatus
		err     error
	)
	if field == "all" {
		form, parseErr := parseSmokingStatusForm(c)
		if parseErr != nil {
			return handler.renderMyProgress(c, myProgressOverrides{
				status:   &form,
				errorMsg: progressErrorMessage(parseErr),
				code:     fiber.StatusUnprocessableEntity,
			})
		}
		updated, err = handler.smokingStatus.Replace(ctx, token, form)
	} else {
		updated, err = handler.smokingStatus.UpdateField(ctx, token, field, c.FormValue("value"))
	}

	if err != nil {
		if handled, redirectErr := handler.endSessionOnUnauthorized(c, err); handled {
			return redirectErr
		}
		if acceptsJSON(c) {
			return apiError(c, progressErrorStatus(err), progressErrorMessage(err))
		}
		logger.Debug("my-progress: smoking status update failed", "field", field, "err", err)
		overrides := myProgressOverrides{errorMsg: progressErrorMessage(err)}
		if field == "all" || !errors.Is(err, services.ErrSmokingStatusUnavailable) {
			overrides.status = &updated
		}
		return handler.renderMyProgress(c, overrides)
	}
	return handler.finishProgressAction(c, nil, "progress.status.saved", 0)
}

func parseSmokingStatusForm(c *fiber.Ctx) (models.SmokingStatus, error) {
	form := models.SmokingStatus{
		SmokingFrequency:    c.FormValue("smokingFrequency"),
		HealthStatus:        c.FormValue("healthStatus"),
		CigaretteType:       c.FormValue("cigaretteType"),
		CustomCigaretteType: c.FormValue("customCigaretteType"),
		QuitReason:          c.FormValue("quitReason"),
	}
	status, err := services.ApplySmokingStatusField(form, "cigarettesPerDay", c.FormValue("cigarettesPerDay"))
	if err != nil {
		return form, err
	}
	return services.ApplySmokingStatusField(status, "costPerPack", c.FormValue("costPerPack"))
}

func (handler *Handler) SubmitDailyLog(c *fiber.Ctx) error {
	cigarettes, err := strconv.Atoi(strings.TrimSpace(c.FormValue("cigarettes")))
	if err != nil {
		return handler.finishProgressAction(c, services.ErrInvalidDailyLog, "", 0)
	}

	ctx := c.UserContext()
	token := currentToken(c)
	available := handler.dashboards.Load(ctx, token).AvailableLogPlans()
	result, err := handler.quitPlans.SubmitDailyLog(ctx, token, available, services.DailyLogInput{
		Cigarettes: cigarettes,
		Feeling:    c.FormValue("feeling"),
		Plan:       c.FormValue("plan"),
	}, handler.now())
	return handler.finishProgressAction(c, err, "progress.daily_log.saved", len(result.NewBadges))
}

func parseCustomPlanInput(c *fiber.Ctx) (services.CustomPlanInput, error) {
	input := services.CustomPlanInput{
		StartDate:  c.FormValue("startDate"),
		TargetDate: c.FormValue("targetDate"),
		PlanDetail: c.FormValue("planDetail"),
	}
	initial, err := strconv.Atoi(strings.TrimSpace(c.FormValue("initialCigarettes")))
	if err != nil {
		return input, services.ErrInvalidPlanInput
	}
	input.InitialCigarettes = initial

	if raw := strings.TrimSpace(c.FormValue("dailyReduction")); raw != "" {
		reduction, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return input, services.ErrInvalidPlanInput
		}
		input.DailyReduction = reduction
	}
	return input, nil
}

func (handler *Handler) CreateQuitPlan(c *fiber.Ctx) error {
	input, err := parseCustomPlanInput(c)
	if err == nil {
		err = handler.quitPlans.CreateCustomPlan(c.UserContext(), currentToken(c), input)
	}
	return handler.finishProgressAction(c, err, "progress.plan.created", 0)
}

func (handler *Handler) UpdateQuitPlan(c *fiber.Ctx) error {
	input, err := parseCustomPlanInput(c)
	if err == nil {
		err = handler.quitPlans.UpdateCurrentPlan(c.UserContext(), currentToken(c), input)
	}
	return handler.finishProgressAction(c, err, "progress.plan.updated", 0)
}

func (handler *Handler) CreateSuggestedPlan(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	if !user.IsVIP() {
		return handler.renderUnauthorized(c, models.RoleMemberVIP)
	}

	templateID, ok := parsePositiveID(c.FormValue("templateId"))
	if !ok {
		return handler.finishProgressAction(c, services.ErrUnknownTemplate, "", 0)
	}
	err := handler.quitPlans.CreateFromTemplate(c.UserContext(), currentToken(c), templateID, c.FormValue("startDate"))
	return handler.finishProgressAction(c, err, "progress.plan.created", 0)
}

func (handler *Handler) JoinDefaultPlan(c *fiber.Ctx) error {
	ctx := c.UserContext()
	token := currentToken(c)

	cigarettesPerDay := 0
	profile, err := handler.backend.Profile(ctx, token)
	if err != nil {
		if handled, redirectErr := handler.endSessionOnUnauthorized(c, err); handled {
			return redirectErr
		}
		logger.Warn("my-progress: load profile for default plan failed", "err", err)
	} else {
		cigarettesPerDay = profile.SmokingStatus.CigarettesPerDay
	}

	err = handler.quitPlans.JoinDefaultPlan(ctx, token, cigarettesPerDay, handler.now())
	return handler.finishProgressAction(c, err, "progress.plan.joined", 0)
}

func (handler *Handler) AddMilestone(c *fiber.Ctx) error {
	err := handler.quitPlans.AddMilestone(c.UserContext(), currentToken(c), c.FormValue("title"))
	return handler.finishProgressAction(c, err, "progress.milestone.saved", 0)
}

func (handler *Handler) AcceptCoachPlan(c *fiber.Ctx) error {
	return handler.respondToCoachPlan(c, true)
}

func (handler *Handler) RejectCoachPlan(c *fiber.Ctx) error {
	return handler.respondToCoachPlan(c, false)
}

func (handler *Handler) respondToCoachPlan(c *fiber.Ctx, accept bool) error {
	planID, ok := parsePositiveID(c.Params("planId"))
	if !ok {
		return handler.finishProgressAction(c, services.ErrCoachPlanNotFound, "", 0)
	}
	err := handler.quitPlans.RespondToCoachPlan(c.UserContext(), currentToken(c), planID, accept)
	successKey := "progress.coach_plan.rejected"
	if accept {
		successKey = "progress.coach_plan.accepted"
	}
	return handler.finishProgressAction(c, err, successKey, 0)
}
