package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/quitpath/internal/logger"
	"github.com/terraincognita07/quitpath/internal/models"
	"github.com/terraincognita07/quitpath/internal/services"
)

func (handler *Handler) ShowCoachMembers(c *fiber.Ctx) error {
	members, err := handler.coach.ListMembers(c.UserContext(), currentToken(c))
	errorKey := ""
	if err != nil {
		if handled, redirectErr := handler.endSessionOnUnauthorized(c, err); handled {
			return redirectErr
		}
		logger.Warn("coach: list members failed", "err", err)
		errorKey = "coach.members.load_error"
		members = []models.Member{}
	}

	return handler.render(c, "coach_members", fiber.Map{
		"Title":    localizedPageTitle(currentMessages(c), "meta.title.coach_members", "QuitPath | Members"),
		"Members":  members,
		"ErrorKey": errorKey,
	})
}

func (handler *Handler) ShowCoachMemberProgress(c *fiber.Ctx) error {
	data := fiber.Map{
		"Title": localizedPageTitle(currentMessages(c), "meta.title.coach_member_progress", "QuitPath | Member progress"),
	}

	memberID, ok := parsePositiveID(c.Params("memberId"))
	if !ok {
		data["ErrorKey"] = "coach.progress.invalid_member"
		c.Status(fiber.StatusBadRequest)
		return handler.render(c, "coach_member_progress", data)
	}
	data["MemberID"] = memberID

	view, err := handler.coach.LoadMemberProgress(c.UserContext(), currentToken(c), memberID)
	if err != nil {
		if handled, redirectErr := handler.endSessionOnUnauthorized(c, err); handled {
			return redirectErr
		}
		if errors.Is(err, services.ErrMemberNotAssigned) {
			data["ErrorKey"] = "coach.progress.not_assigned"
		} else {
			logger.Warn("coach: load member progress failed", "member", memberID, "err", err)
			data["ErrorKey"] = "coach.progress.load_error"
		}
		return handler.render(c, "coach_member_progress", data)
	}

	data["View"] = view
	data["Chart"] = newChartView("member-history-chart", services.BuildHistoryChart(view.Progress.History, handler.location))
	return handler.render(c, "coach_member_progress", data)
}

func parsePositiveID(raw string) (uint, bool) {
	parsed, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || parsed == 0 {
		return 0, false
	}
	return uint(parsed), true
}
