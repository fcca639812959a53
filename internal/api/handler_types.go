package api

import (
	"html/template"
	"time"

	"github.com/terraincognita07/quitpath/internal/backend"
	"github.com/terraincognita07/quitpath/internal/i18n"
	"github.com/terraincognita07/quitpath/internal/services"
)

type Handler struct {
	backend       *backend.Client
	sessions      *services.SessionService
	dashboards    *services.DashboardService
	quitPlans     *services.QuitPlanService
	smokingStatus *services.SmokingStatusService
	coach         *services.CoachService
	cookieCodec   *secureCookieCodec
	location      *time.Location
	cookieSecure  bool
	upgradePath   string
	i18n          *i18n.Manager
	templates     map[string]*template.Template
	loginThrottle *loginThrottle
	now           func() time.Time
}

type HandlerConfig struct {
	Backend      *backend.Client
	Sessions     *services.SessionService
	SecretKey    string
	TemplateDir  string
	Location     *time.Location
	I18n         *i18n.Manager
	CookieSecure bool
	UpgradePath  string
}

type FlashPayload struct {
	AuthError       string `json:"auth_error,omitempty"`
	LoginEmail      string `json:"login_email,omitempty"`
	ProgressError   string `json:"progress_error,omitempty"`
	ProgressSuccess string `json:"progress_success,omitempty"`
	BadgeCount      int    `json:"badge_count,omitempty"`
}

type credentialsInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

const (
	defaultUpgradePath   = "/subscribe"
	loginAttemptsLimit   = 8
	loginAttemptsWindow  = 15 * time.Minute
	sessionCookiePurpose = "session"
)
