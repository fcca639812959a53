package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/quitpath/internal/services"
)

const (
	historyViewWeek  = "week"
	historyViewMonth = "month"
	historyViewPlan  = "plan"
)

type planWeekPage struct {
	Week       services.PlanWeek
	TotalWeeks int
	Chart      chartView
	Stats      services.PlanWeekStats
	PrevHref   string
	NextHref   string
}

func normalizeHistoryView(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case historyViewMonth:
		return historyViewMonth
	case historyViewPlan:
		return historyViewPlan
	default:
		return historyViewWeek
	}
}

func (handler *Handler) ShowProgressHistory(c *fiber.Ctx) error {
	dashboard := handler.dashboards.Load(c.UserContext(), currentToken(c))
	if handled, err := handler.endSessionOnUnauthorized(c, dashboard.ProfileErr); handled {
		return err
	}

	view := normalizeHistoryView(c.Query("view"))
	costPerPack := dashboard.Profile.SmokingStatus.CostPerPack
	data := fiber.Map{
		"Title":         localizedPageTitle(currentMessages(c), "meta.title.progress_history", "QuitPath | History"),
		"View":          view,
		"Views":         []string{historyViewWeek, historyViewMonth, historyViewPlan},
		"CurrentStreak": services.CurrentStreak(dashboard.History),
		"LongestStreak": services.LongestStreak(dashboard.History),
		"HasHistory":    len(dashboard.History) > 0,
	}

	switch view {
	case historyViewWeek:
		data["Buckets"] = services.GroupHistoryByWeek(dashboard.History, costPerPack, handler.location)
	case historyViewMonth:
		data["Buckets"] = services.GroupHistoryByMonth(dashboard.History, costPerPack, handler.location)
	case historyViewPlan:
		if page, ok := handler.buildPlanWeekPage(dashboard, c.Query("week"), costPerPack); ok {
			data["PlanWeek"] = page
		}
	}

	return handler.render(c, "progress_history", data)
}

func (handler *Handler) buildPlanWeekPage(dashboard services.Dashboard, rawWeek string, costPerPack float64) (planWeekPage, bool) {
	plan := dashboard.PrimaryPlan()
	if plan == nil {
		return planWeekPage{}, false
	}
	weeks := services.BuildPlanWeeks(*plan, handler.location)
	if len(weeks) == 0 {
		return planWeekPage{}, false
	}

	number := services.CurrentPlanWeek(weeks, handler.now(), handler.location)
	if requested, err := strconv.Atoi(strings.TrimSpace(rawWeek)); err == nil {
		number = requested
	}
	week, ok := services.FindPlanWeek(weeks, number)
	if !ok {
		week = weeks[0]
	}

	series := services.BuildPlanWeekChart(*plan, week, dashboard.History, handler.location)
	page := planWeekPage{
		Week:       week,
		TotalWeeks: len(weeks),
		Chart:      newChartView("plan-week-chart", series),
		Stats:      services.BuildPlanWeekStats(series, costPerPack),
	}
	if week.Number > 1 {
		page.PrevHref = planWeekHref(week.Number - 1)
	}
	if week.Number < len(weeks) {
		page.NextHref = planWeekHref(week.Number + 1)
	}
	return page, true
}

func planWeekHref(number int) string {
	return "/my-progress/history?view=plan&week=" + strconv.Itoa(number)
}
