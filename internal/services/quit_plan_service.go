package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/quitpath/internal/backend"
	"github.com/terraincognita07/quitpath/internal/models"
)

var (
	ErrInvalidPlanInput   = errors.New("invalid quit plan input")
	ErrUnknownTemplate    = errors.New("unknown plan template")
	ErrNoPlanToUpdate     = errors.New("no quit plan to update")
	ErrEmptyMilestone     = errors.New("milestone title is required")
	ErrInvalidDailyLog    = errors.New("invalid daily log")
	defaultJoinPlanDetail = "Default quit plan suggested by the system"
)

type QuitPlanBackend interface {
	CustomQuitPlan(ctx context.Context, token string) (*models.QuitPlan, error)
	LegacyQuitPlan(ctx context.Context, token string) (*models.QuitPlan, error)
	CoachSuggestedPlans(ctx context.Context, token string) ([]models.QuitPlan, error)
	SuggestedTemplates(ctx context.Context, token string) ([]models.PlanTemplate, error)
	AcceptCoachPlan(ctx context.Context, token string, planID uint) error
	RejectCoachPlan(ctx context.Context, token string, planID uint) error
	SaveQuitPlan(ctx context.Context, token string, input backend.QuitPlanInput) error
	CreateCustomQuitPlan(ctx context.Context, token string, input backend.QuitPlanInput) error
	CreateUserSuggestedPlan(ctx context.Context, token string, input backend.UserSuggestedPlanInput) error
	AddMilestone(ctx context.Context, token string, title string) error
	AddDailyLog(ctx context.Context, token string, submission models.DailyLogSubmission) (backend.DailyLogResult, error)
}

type QuitPlanService struct {
	backend  QuitPlanBackend
	location *time.Location
}

func NewQuitPlanService(backend QuitPlanBackend, location *time.Location) *QuitPlanService {
	if location == nil {
		location = time.UTC
	}
	return &QuitPlanService{backend: backend, location: location}
}

type CustomPlanInput struct {
	StartDate         string
	TargetDate        string
	InitialCigarettes int
	DailyReduction    float64
	PlanDetail        string
}

func (input CustomPlanInput) validate(location *time.Location) (backend.QuitPlanInput, error) {
	start, ok := ParseDay(input.StartDate, location)
	if !ok {
		return backend.QuitPlanInput{}, fmt.Errorf("%w: start date", ErrInvalidPlanInput)
	}
	target, ok := ParseDay(input.TargetDate, location)
	if !ok || target.Before(start) {
		return backend.QuitPlanInput{}, fmt.Errorf("%w: target date", ErrInvalidPlanInput)
	}
	if input.InitialCigarettes < 0 || input.DailyReduction < 0 {
		return backend.QuitPlanInput{}, fmt.Errorf("%w: negative counts", ErrInvalidPlanInput)
	}
	detail := strings.TrimSpace(input.PlanDetail)
	if detail == "" {
		return backend.QuitPlanInput{}, fmt.Errorf("%w: plan detail", ErrInvalidPlanInput)
	}
	return backend.QuitPlanInput{
		StartDate:         DateKey(start),
		TargetDate:        DateKey(target),
		InitialCigarettes: input.InitialCigarettes,
		DailyReduction:    input.DailyReduction,
		PlanDetail:        detail,
	}, nil
}

func (service *QuitPlanService) CreateCustomPlan(ctx context.Context, token string, input CustomPlanInput) error {
	payload, err := input.validate(service.location)
	if err != nil {
		return err
	}
	return service.backend.CreateCustomQuitPlan(ctx, token, payload)
}

// SuggestedPlanDurationDays reads the plan length from a template title:
// titles mentioning 60 or 90 run that many days, everything else 30.
func SuggestedPlanDurationDays(title string) int {
	switch {
	case strings.Contains(title, "60"):
		return 60
	case strings.Contains(title, "90"):
		return 90
	default:
		return 30
	}
}

func SuggestedPlanTargetDate(start time.Time, title string) time.Time {
	return start.AddDate(0, 0, SuggestedPlanDurationDays(title)-1)
}

func (service *QuitPlanService) CreateFromTemplate(ctx context.Context, token string, templateID uint, startDate string) error {
	start, ok := ParseDay(startDate, service.location)
	if !ok {
		return fmt.Errorf("%w: start date", ErrInvalidPlanInput)
	}

	templates, err := service.backend.SuggestedTemplates(ctx, token)
	if err != nil {
		return fmt.Errorf("load plan templates: %w", err)
	}
	for _, template := range templates {
		if template.ID != templateID {
			continue
		}
		return service.backend.CreateUserSuggestedPlan(ctx, token, backend.UserSuggestedPlanInput{
			SuggestedPlanID: template.ID,
			StartDate:       DateKey(start),
			TargetDate:      DateKey(SuggestedPlanTargetDate(start, template.Title)),
		})
	}
	return ErrUnknownTemplate
}

// JoinDefaultPlan enrolls the member in a one-month plan starting today
// with their current daily count and no scheduled reduction.
func (service *QuitPlanService) JoinDefaultPlan(ctx context.Context, token string, cigarettesPerDay int, now time.Time) error {
	today := DateAtLocation(now, service.location)
	if cigarettesPerDay < 0 {
		cigarettesPerDay = 0
	}
	return service.backend.SaveQuitPlan(ctx, token, backend.QuitPlanInput{
		StartDate:         DateKey(today),
		TargetDate:        DateKey(today.AddDate(0, 1, 0)),
		PlanType:          string(models.PlanKindSuggested),
		InitialCigarettes: cigarettesPerDay,
		DailyReduction:    0,
		PlanDetail:        defaultJoinPlanDetail,
	})
}

// UpdateCurrentPlan re-submits the member's current custom plan with the
// edited fields.
func (service *QuitPlanService) UpdateCurrentPlan(ctx context.Context, token string, input CustomPlanInput) error {
	current, err := service.CurrentPlan(ctx, token)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrNoPlanToUpdate
	}
	payload, err := input.validate(service.location)
	if err != nil {
		return err
	}
	payload.PlanType = current.PlanType
	if payload.PlanType == "" {
		payload.PlanType = string(models.PlanKindCustom)
	}
	return service.backend.SaveQuitPlan(ctx, token, payload)
}

// CurrentPlan prefers the self-authored plan and falls back to the legacy
// single-plan endpoint only when there is none.
func (service *QuitPlanService) CurrentPlan(ctx context.Context, token string) (*models.QuitPlan, error) {
	plan, err := service.backend.CustomQuitPlan(ctx, token)
	if err != nil {
		return nil, err
	}
	if plan != nil {
		return plan, nil
	}
	return service.backend.LegacyQuitPlan(ctx, token)
}

func (service *QuitPlanService) AddMilestone(ctx context.Context, token string, title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return ErrEmptyMilestone
	}
	return service.backend.AddMilestone(ctx, token, trimmed)
}

// RespondToCoachPlan accepts or rejects a pending coach plan. Callers
// reload the plan list afterwards.
func (service *QuitPlanService) RespondToCoachPlan(ctx context.Context, token string, planID uint, accept bool) error {
	plans, err := service.backend.CoachSuggestedPlans(ctx, token)
	if err != nil {
		return fmt.Errorf("load coach plans: %w", err)
	}
	found := false
	for _, plan := range plans {
		if plan.ID != planID {
			continue
		}
		if !plan.IsPendingCoachPlan() {
			return ErrCoachPlanResponded
		}
		found = true
	}
	if !found {
		return ErrCoachPlanNotFound
	}

	if accept {
		return service.backend.AcceptCoachPlan(ctx, token, planID)
	}
	return service.backend.RejectCoachPlan(ctx, token, planID)
}

type DailyLogInput struct {
	Cigarettes int
	Feeling    string
	Plan       string
}

// SubmitDailyLog records today's entry against the chosen plan. The
// choice must be one of the available plans, or empty for the default.
func (service *QuitPlanService) SubmitDailyLog(ctx context.Context, token string, available []models.QuitPlan, input DailyLogInput, now time.Time) (backend.DailyLogResult, error) {
	if input.Cigarettes < 0 {
		return backend.DailyLogResult{}, fmt.Errorf("%w: negative cigarettes", ErrInvalidDailyLog)
	}
	ref, err := ResolveLogPlan(available, input.Plan)
	if err != nil {
		return backend.DailyLogResult{}, err
	}
	return service.backend.AddDailyLog(ctx, token, models.DailyLogSubmission{
		Cigarettes: input.Cigarettes,
		Feeling:    strings.TrimSpace(input.Feeling),
		LogDate:    DateKey(DateAtLocation(now, service.location)),
		Plan:       ref,
	})
}
