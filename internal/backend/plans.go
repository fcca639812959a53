package backend

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/quitpath/internal/models"
)

type QuitPlanInput struct {
	StartDate         string  `json:"startDate"`
	TargetDate        string  `json:"targetDate"`
	PlanType          string  `json:"planType,omitempty"`
	InitialCigarettes int     `json:"initialCigarettes"`
	DailyReduction    float64 `json:"dailyReduction"`
	PlanDetail        string  `json:"planDetail"`
}

type UserSuggestedPlanInput struct {
	SuggestedPlanID uint   `json:"suggestedPlanId"`
	StartDate       string `json:"startDate"`
	TargetDate      string `json:"targetDate"`
}

type DailyLogResult struct {
	NewBadges []models.Badge `json:"newBadges"`
}

type quitPlanEnvelope struct {
	QuitPlan *models.QuitPlan `json:"quitPlan"`
}

// CustomQuitPlan returns nil when the member has no self-authored plan.
func (client *Client) CustomQuitPlan(ctx context.Context, token string) (*models.QuitPlan, error) {
	return client.quitPlan(ctx, token, "/api/auth/custom-quit-plan", models.PlanKindCustom)
}

func (client *Client) LegacyQuitPlan(ctx context.Context, token string) (*models.QuitPlan, error) {
	return client.quitPlan(ctx, token, "/api/auth/quit-plan", models.PlanKindCustom)
}

func (client *Client) quitPlan(ctx context.Context, token string, path string, kind models.PlanKind) (*models.QuitPlan, error) {
	envelope := quitPlanEnvelope{}
	if err := client.get(ctx, token, path, &envelope); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if envelope.QuitPlan == nil {
		return nil, nil
	}
	envelope.QuitPlan.Kind = kind
	return envelope.QuitPlan, nil
}

func (client *Client) CoachSuggestedPlans(ctx context.Context, token string) ([]models.QuitPlan, error) {
	response := struct {
		Plans []models.QuitPlan `json:"plans"`
	}{}
	if err := client.get(ctx, token, "/api/auth/coach-suggested-plans", &response); err != nil {
		return nil, err
	}
	for index := range response.Plans {
		response.Plans[index].Kind = models.PlanKindCoach
	}
	return response.Plans, nil
}

func (client *Client) SuggestedTemplates(ctx context.Context, token string) ([]models.PlanTemplate, error) {
	templates := make([]models.PlanTemplate, 0)
	if err := client.get(ctx, token, "/api/auth/quit-plan/suggested", &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func (client *Client) AcceptCoachPlan(ctx context.Context, token string, planID uint) error {
	return client.send(ctx, fiber.MethodPost, token, "/api/auth/accept-coach-plan", map[string]uint{"planId": planID}, nil)
}

func (client *Client) RejectCoachPlan(ctx context.Context, token string, planID uint) error {
	return client.send(ctx, fiber.MethodPost, token, "/api/auth/reject-coach-plan", map[string]uint{"planId": planID}, nil)
}

func (client *Client) SaveQuitPlan(ctx context.Context, token string, input QuitPlanInput) error {
	return client.send(ctx, fiber.MethodPost, token, "/api/auth/quit-plan", input, nil)
}

func (client *Client) CreateCustomQuitPlan(ctx context.Context, token string, input QuitPlanInput) error {
	return client.send(ctx, fiber.MethodPost, token, "/api/auth/create-quit-plan", input, nil)
}

func (client *Client) CreateUserSuggestedPlan(ctx context.Context, token string, input UserSuggestedPlanInput) error {
	return client.send(ctx, fiber.MethodPost, token, "/api/auth/user-suggested-quit-plan", input, nil)
}

func (client *Client) AddMilestone(ctx context.Context, token string, title string) error {
	return client.send(ctx, fiber.MethodPost, token, "/api/auth/quit-plan/milestones", map[string]string{"title": title}, nil)
}

func (client *Client) ProgressHistory(ctx context.Context, token string) ([]models.DailyLogEntry, error) {
	response := struct {
		History []models.DailyLogEntry `json:"history"`
	}{}
	if err := client.get(ctx, token, "/api/auth/progress/history", &response); err != nil {
		return nil, err
	}
	return response.History, nil
}

func (client *Client) AddDailyLog(ctx context.Context, token string, submission models.DailyLogSubmission) (DailyLogResult, error) {
	result := DailyLogResult{}
	if err := client.send(ctx, fiber.MethodPost, token, "/api/auth/daily-log", submission, &result); err != nil {
		return DailyLogResult{}, err
	}
	return result, nil
}
