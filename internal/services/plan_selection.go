package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/quitpath/internal/models"
)

var (
	ErrInvalidPlanRef     = errors.New("invalid plan reference")
	ErrPlanNotAvailable   = errors.New("plan is not available for logging")
	ErrCoachPlanNotFound  = errors.New("coach plan not found")
	ErrCoachPlanResponded = errors.New("coach plan already answered")
)

func ParsePlanRef(raw string) (models.PlanRef, error) {
	kind, rawID, found := strings.Cut(strings.TrimSpace(raw), "-")
	if !found {
		return models.PlanRef{}, ErrInvalidPlanRef
	}
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || id == 0 {
		return models.PlanRef{}, ErrInvalidPlanRef
	}

	ref := models.PlanRef{Kind: models.PlanKind(kind), ID: uint(id)}
	switch ref.Kind {
	case models.PlanKindCustom, models.PlanKindSuggested, models.PlanKindCoach:
		return ref, nil
	default:
		return models.PlanRef{}, ErrInvalidPlanRef
	}
}

func PendingCoachPlans(plans []models.QuitPlan) []models.QuitPlan {
	pending := make([]models.QuitPlan, 0)
	for _, plan := range plans {
		if plan.IsPendingCoachPlan() {
			pending = append(pending, plan)
		}
	}
	return pending
}

// LatestCoachPlan is the accepted coach plan with the newest creation time.
func LatestCoachPlan(plans []models.QuitPlan) *models.QuitPlan {
	var latest *models.QuitPlan
	var latestAt time.Time
	for index := range plans {
		plan := plans[index]
		if !plan.IsAcceptedCoachPlan() {
			continue
		}
		createdAt := parseCreatedAt(plan.CreatedAt)
		if latest == nil || createdAt.After(latestAt) {
			selected := plan
			latest = &selected
			latestAt = createdAt
		}
	}
	return latest
}

func parseCreatedAt(raw string) time.Time {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", dateLayout} {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// AvailableLogPlans lists the plans a daily log may be attributed to, in
// default-selection order: custom, then suggested, then coach.
func AvailableLogPlans(custom *models.QuitPlan, suggested *models.QuitPlan, coachPlans []models.QuitPlan) []models.QuitPlan {
	available := make([]models.QuitPlan, 0, 3)
	if custom != nil && custom.ID != 0 {
		plan := *custom
		plan.Kind = models.PlanKindCustom
		available = append(available, plan)
	}
	if suggested != nil && suggested.ID != 0 {
		plan := *suggested
		plan.Kind = models.PlanKindSuggested
		available = append(available, plan)
	}
	if latest := LatestCoachPlan(coachPlans); latest != nil && latest.ID != 0 {
		latest.Kind = models.PlanKindCoach
		available = append(available, *latest)
	}
	return available
}

func DefaultLogPlan(available []models.QuitPlan) models.PlanRef {
	if len(available) == 0 {
		return models.PlanRef{}
	}
	return available[0].Ref()
}

// ResolveLogPlan accepts an explicit choice only when it names one of the
// available plans. An empty choice falls back to the default.
func ResolveLogPlan(available []models.QuitPlan, raw string) (models.PlanRef, error) {
	if strings.TrimSpace(raw) == "" {
		return DefaultLogPlan(available), nil
	}
	ref, err := ParsePlanRef(raw)
	if err != nil {
		return models.PlanRef{}, err
	}
	for _, plan := range available {
		if plan.Ref() == ref {
			return ref, nil
		}
	}
	return models.PlanRef{}, ErrPlanNotAvailable
}
