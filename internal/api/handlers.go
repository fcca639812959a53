package api

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/quitpath/internal/backend"
	"github.com/terraincognita07/quitpath/internal/services"
)

func NewHandler(config HandlerConfig) (*Handler, error) {
	if config.Backend == nil {
		return nil, errors.New("backend client is required")
	}
	if config.Sessions == nil {
		return nil, errors.New("session service is required")
	}
	if config.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}

	location := config.Location
	if location == nil {
		location = time.Local
	}

	codec, err := newSecureCookieCodec([]byte(config.SecretKey))
	if err != nil {
		return nil, err
	}

	templates, err := parsePageTemplates(config.TemplateDir, newTemplateFuncMap(config.I18n), pageTemplates)
	if err != nil {
		return nil, err
	}

	upgradePath := sanitizeRedirectPath(config.UpgradePath, defaultUpgradePath)
	if strings.HasPrefix(strings.TrimSpace(config.UpgradePath), "https://") {
		upgradePath = strings.TrimSpace(config.UpgradePath)
	}

	handler := &Handler{
		sessions:      config.Sessions,
		cookieCodec:   codec,
		location:      location,
		cookieSecure:  config.CookieSecure,
		upgradePath:   upgradePath,
		i18n:          config.I18n,
		templates:     templates,
		loginThrottle: newLoginThrottle(loginAttemptsLimit, loginAttemptsWindow),
		now:           time.Now,
	}
	return handler.withDependencies(config.Backend), nil
}

func (handler *Handler) withDependencies(client *backend.Client) *Handler {
	handler.backend = client
	handler.dashboards = services.NewDashboardService(client)
	handler.quitPlans = services.NewQuitPlanService(client, handler.location)
	handler.smokingStatus = services.NewSmokingStatusService(client)
	handler.coach = services.NewCoachService(client)
	return handler
}
