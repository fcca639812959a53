package services

import (
	"context"

	"github.com/terraincognita07/quitpath/internal/logger"
	"github.com/terraincognita07/quitpath/internal/models"
	"golang.org/x/sync/errgroup"
)

type DashboardBackend interface {
	Profile(ctx context.Context, token string) (models.Profile, error)
	CustomQuitPlan(ctx context.Context, token string) (*models.QuitPlan, error)
	LegacyQuitPlan(ctx context.Context, token string) (*models.QuitPlan, error)
	Badges(ctx context.Context, token string) ([]models.Badge, error)
	ProgressHistory(ctx context.Context, token string) ([]models.DailyLogEntry, error)
	CoachSuggestedPlans(ctx context.Context, token string) ([]models.QuitPlan, error)
	SuggestedTemplates(ctx context.Context, token string) ([]models.PlanTemplate, error)
}

type DashboardService struct {
	backend DashboardBackend
}

func NewDashboardService(backend DashboardBackend) *DashboardService {
	return &DashboardService{backend: backend}
}

// Dashboard is everything the member progress page shows. Each field is
// loaded independently and left empty when its request fails.
type Dashboard struct {
	Profile    models.Profile
	ProfileErr error
	QuitPlan   *models.QuitPlan
	Badges     []models.Badge
	History    []models.DailyLogEntry
	CoachPlans []models.QuitPlan
	Templates  []models.PlanTemplate
}

func (dashboard Dashboard) SuggestedPlan() *models.QuitPlan {
	return dashboard.Profile.CurrentUserSuggestedPlan
}

func (dashboard Dashboard) PendingCoachPlans() []models.QuitPlan {
	return PendingCoachPlans(dashboard.CoachPlans)
}

func (dashboard Dashboard) LatestCoachPlan() *models.QuitPlan {
	return LatestCoachPlan(dashboard.CoachPlans)
}

func (dashboard Dashboard) AvailableLogPlans() []models.QuitPlan {
	return AvailableLogPlans(dashboard.QuitPlan, dashboard.SuggestedPlan(), dashboard.CoachPlans)
}

// PrimaryPlan is the plan used for the week-by-week view.
func (dashboard Dashboard) PrimaryPlan() *models.QuitPlan {
	for _, plan := range dashboard.AvailableLogPlans() {
		if plan.HasDates() {
			selected := plan
			return &selected
		}
	}
	return nil
}

func (dashboard Dashboard) HasAnyPlan() bool {
	return len(dashboard.AvailableLogPlans()) > 0
}

func (service *DashboardService) Load(ctx context.Context, token string) Dashboard {
	dashboard := Dashboard{}
	var group errgroup.Group

	group.Go(func() error {
		profile, err := service.backend.Profile(ctx, token)
		if err != nil {
			logger.Warn("dashboard: load profile failed", "err", err)
			dashboard.ProfileErr = err
			return nil
		}
		dashboard.Profile = profile
		return nil
	})
	group.Go(func() error {
		plan, err := service.loadQuitPlan(ctx, token)
		if err != nil {
			logger.Warn("dashboard: load quit plan failed", "err", err)
			return nil
		}
		dashboard.QuitPlan = plan
		return nil
	})
	group.Go(func() error {
		badges, err := service.backend.Badges(ctx, token)
		if err != nil {
			logger.Warn("dashboard: load badges failed", "err", err)
			return nil
		}
		dashboard.Badges = badges
		return nil
	})
	group.Go(func() error {
		history, err := service.backend.ProgressHistory(ctx, token)
		if err != nil {
			logger.Warn("dashboard: load history failed", "err", err)
			return nil
		}
		dashboard.History = history
		return nil
	})
	group.Go(func() error {
		plans, err := service.backend.CoachSuggestedPlans(ctx, token)
		if err != nil {
			logger.Warn("dashboard: load coach plans failed", "err", err)
			return nil
		}
		dashboard.CoachPlans = plans
		return nil
	})
	group.Go(func() error {
		templates, err := service.backend.SuggestedTemplates(ctx, token)
		if err != nil {
			logger.Warn("dashboard: load plan templates failed", "err", err)
			return nil
		}
		dashboard.Templates = templates
		return nil
	})

	_ = group.Wait()
	return dashboard
}

func (service *DashboardService) loadQuitPlan(ctx context.Context, token string) (*models.QuitPlan, error) {
	plan, err := service.backend.CustomQuitPlan(ctx, token)
	if err != nil {
		return nil, err
	}
	if plan != nil {
		return plan, nil
	}
	return service.backend.LegacyQuitPlan(ctx, token)
}
