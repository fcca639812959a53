package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/quitpath/internal/models"
)

var ErrEmptyToken = errors.New("backend returned an empty token")

type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (client *Client) Login(ctx context.Context, email string, password string) (LoginResult, error) {
	payload := map[string]string{
		"email":    strings.TrimSpace(email),
		"password": password,
	}
	result := LoginResult{}
	if err := client.send(ctx, fiber.MethodPost, "", "/api/auth/login", payload, &result); err != nil {
		return LoginResult{}, err
	}
	if strings.TrimSpace(result.Token) == "" {
		return LoginResult{}, ErrEmptyToken
	}
	return result, nil
}

func (client *Client) Profile(ctx context.Context, token string) (models.Profile, error) {
	profile := models.Profile{}
	if err := client.get(ctx, token, "/api/auth/profile", &profile); err != nil {
		return models.Profile{}, err
	}
	if profile.CurrentUserSuggestedPlan != nil {
		profile.CurrentUserSuggestedPlan.Kind = models.PlanKindSuggested
	}
	return profile, nil
}

func (client *Client) UserByID(ctx context.Context, token string, userID uint) (models.User, error) {
	user := models.User{}
	if err := client.get(ctx, token, fmt.Sprintf("/api/user/%d", userID), &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (client *Client) Badges(ctx context.Context, token string) ([]models.Badge, error) {
	response := struct {
		Badges []models.Badge `json:"badges"`
	}{}
	if err := client.get(ctx, token, "/api/auth/badges", &response); err != nil {
		return nil, err
	}
	return response.Badges, nil
}

func (client *Client) UpdateSmokingStatus(ctx context.Context, token string, status models.SmokingStatus) error {
	return client.send(ctx, fiber.MethodPut, token, "/api/auth/smoking-status", status, nil)
}
