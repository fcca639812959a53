package backend

import (
	"context"
	"fmt"

	"github.com/terraincognita07/quitpath/internal/models"
)

func (client *Client) AssignedMembers(ctx context.Context, token string) ([]models.Member, error) {
	response := struct {
		Members []models.Member `json:"members"`
	}{}
	if err := client.get(ctx, token, "/api/coach/members", &response); err != nil {
		return nil, err
	}
	return response.Members, nil
}

func (client *Client) MemberProgress(ctx context.Context, token string, memberID uint) (models.MemberProgress, error) {
	progress := models.MemberProgress{}
	if err := client.get(ctx, token, fmt.Sprintf("/api/coach/member/%d/progress", memberID), &progress); err != nil {
		return models.MemberProgress{}, err
	}
	if progress.CoachQuitPlan != nil {
		progress.CoachQuitPlan.Kind = models.PlanKindCoach
	}
	if progress.SystemQuitPlan != nil {
		progress.SystemQuitPlan.Kind = models.PlanKindSuggested
	}
	return progress, nil
}
