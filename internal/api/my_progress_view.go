package api

import (
	"time"

	"github.com/terraincognita07/quitpath/internal/models"
	"github.com/terraincognita07/quitpath/internal/services"
)

const recentHistoryLimit = 14

type planProgressView struct {
	Plan        models.QuitPlan
	Ref         string
	KindKey     string
	StateKey    string
	Progress    services.PlanProgress
	HasProgress bool
}

type logPlanOption struct {
	Value    string
	KindKey  string
	Title    string
	Selected bool
}

type myProgressView struct {
	Profile           models.Profile
	ProfileErrorKey   string
	Status            models.SmokingStatus
	IsVIP             bool
	Plans             []planProgressView
	PrimaryPlan       *models.QuitPlan
	PrimaryChart      chartView
	CurrentPlan       *models.QuitPlan
	PlanOptions       []logPlanOption
	PendingCoachPlans []models.QuitPlan
	LatestCoachPlan   *models.QuitPlan
	Templates         []models.PlanTemplate
	ShowTemplates     bool
	HasPlan           bool
	Badges            []models.Badge
	RecentHistory     []models.DailyLogEntry
	CurrentStreak     int
	LongestStreak     int
	DailySpend        float64
	Today             string
	TemplateDays      map[uint]int
}

func planKindKey(kind models.PlanKind) string {
	switch kind {
	case models.PlanKindCustom:
		return "progress.plan.kind.custom"
	case models.PlanKindSuggested:
		return "progress.plan.kind.suggested"
	case models.PlanKindCoach:
		return "progress.plan.kind.coach"
	default:
		return "progress.plan.kind.unknown"
	}
}

func progressStateKey(state services.ProgressState) string {
	switch state {
	case services.ProgressNotStarted:
		return "progress.state.not_started"
	case services.ProgressFinished:
		return "progress.state.finished"
	default:
		return "progress.state.active"
	}
}

func buildMyProgressView(dashboard services.Dashboard, user *models.User, now time.Time, location *time.Location) myProgressView {
	isVIP := user.IsVIP() || dashboard.Profile.IsMemberVIP
	view := myProgressView{
		Profile:           dashboard.Profile,
		Status:            dashboard.Profile.SmokingStatus,
		IsVIP:             isVIP,
		CurrentPlan:       dashboard.QuitPlan,
		PendingCoachPlans: dashboard.PendingCoachPlans(),
		LatestCoachPlan:   dashboard.LatestCoachPlan(),
		HasPlan:           dashboard.HasAnyPlan(),
		Badges:            dashboard.Badges,
		CurrentStreak:     services.CurrentStreak(dashboard.History),
		LongestStreak:     services.LongestStreak(dashboard.History),
		Today:             services.DateKey(services.DateAtLocation(now, location)),
		TemplateDays:      map[uint]int{},
	}
	if dashboard.ProfileErr != nil {
		view.ProfileErrorKey = "progress.profile.load_error"
	}
	if view.Badges == nil {
		view.Badges = []models.Badge{}
	}

	available := dashboard.AvailableLogPlans()
	defaultRef := services.DefaultLogPlan(available)
	for _, plan := range available {
		item := planProgressView{Plan: plan, Ref: plan.Ref().String(), KindKey: planKindKey(plan.Kind)}
		if progress, ok := services.BuildPlanProgress(plan, dashboard.History, now, location); ok {
			item.Progress = progress
			item.HasProgress = true
			item.StateKey = progressStateKey(progress.State)
		}
		view.Plans = append(view.Plans, item)
		view.PlanOptions = append(view.PlanOptions, logPlanOption{
			Value:    plan.Ref().String(),
			KindKey:  planKindKey(plan.Kind),
			Title:    planTitle(plan),
			Selected: plan.Ref() == defaultRef,
		})
	}

	if primary := dashboard.PrimaryPlan(); primary != nil {
		view.PrimaryPlan = primary
		view.PrimaryChart = newChartView("plan-chart", services.BuildPlanChart(*primary, dashboard.History, location))
	}

	// Plan templates are offered to VIP members only.
	if isVIP && !view.HasPlan {
		view.ShowTemplates = true
		view.Templates = dashboard.Templates
		for _, template := range dashboard.Templates {
			view.TemplateDays[template.ID] = services.SuggestedPlanDurationDays(template.Title)
		}
	}

	sorted := services.SortedHistory(dashboard.History)
	for index := len(sorted) - 1; index >= 0 && len(view.RecentHistory) < recentHistoryLimit; index-- {
		view.RecentHistory = append(view.RecentHistory, sorted[index])
	}

	view.DailySpend = services.MoneyForCigarettes(view.Status.CigarettesPerDay, view.Status.CostPerPack)
	return view
}

func planTitle(plan models.QuitPlan) string {
	if plan.Title != "" {
		return plan.Title
	}
	if plan.PlanDetail != "" {
		return plan.PlanDetail
	}
	return plan.StartDate
}
