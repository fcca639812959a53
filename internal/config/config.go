package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/terraincognita07/quitpath/internal/i18n"
)

const minSecretKeyLength = 32

var placeholderSecrets = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type Logging struct {
	Level string `help:"Log level (debug, info, warn, error)." env:"LOG_LEVEL" default:"info"`
	File  string `help:"Rotated log file; empty logs to stderr only." env:"LOG_FILE"`
}

type Storage struct {
	DBPath string `help:"SQLite database holding sessions." env:"DB_PATH" default:"data/quitpath.db" type:"path"`
}

// Server is everything the web frontend needs at startup.
type Server struct {
	Port            int           `help:"HTTP listen port." env:"PORT" default:"8080"`
	SecretKey       string        `help:"Key material for sealed cookies, at least 32 characters." env:"SECRET_KEY"`
	BackendURL      string        `help:"Base URL of the backend API." env:"BACKEND_URL" default:"http://localhost:5000"`
	BackendTimeout  time.Duration `help:"Timeout for one backend call." env:"BACKEND_TIMEOUT" default:"10s"`
	Timezone        string        `help:"Timezone that decides what today is." env:"TZ" default:"Asia/Ho_Chi_Minh"`
	DefaultLanguage string        `help:"Language used when the browser asks for none we support." env:"DEFAULT_LANGUAGE" default:"vi" enum:"vi,en"`
	CookieSecure    bool          `help:"Mark cookies Secure (serve behind HTTPS)." env:"COOKIE_SECURE"`
	UpgradePath     string        `help:"Where the VIP upgrade action leads." env:"UPGRADE_PATH" default:"/subscribe"`
	SessionTTL      time.Duration `help:"Longest lifetime of a session." env:"SESSION_TTL" default:"168h"`
	TemplateDir     string        `help:"Directory with page templates." env:"TEMPLATE_DIR" default:"internal/templates"`
	LocalesDir      string        `help:"Directory with locale files." env:"LOCALES_DIR" default:"internal/i18n/locales"`
}

// Validate is called by kong after flags and env are resolved.
func (server *Server) Validate() error {
	secret, err := ResolveSecretKey(server.SecretKey)
	if err != nil {
		return err
	}
	server.SecretKey = secret

	if server.Port < 1 || server.Port > 65535 {
		return fmt.Errorf("invalid PORT %d: must be between 1 and 65535", server.Port)
	}
	if err := validateBackendURL(server.BackendURL); err != nil {
		return err
	}
	if server.BackendTimeout <= 0 {
		return errors.New("BACKEND_TIMEOUT must be positive")
	}
	if server.SessionTTL < time.Minute {
		return errors.New("SESSION_TTL must be at least one minute")
	}
	switch server.DefaultLanguage {
	case i18n.LangVI, i18n.LangEN:
	default:
		return fmt.Errorf("unsupported DEFAULT_LANGUAGE %q", server.DefaultLanguage)
	}
	return nil
}

func (server Server) ListenAddr() string {
	return fmt.Sprintf(":%d", server.Port)
}

func ResolveSecretKey(raw string) (string, error) {
	secret := strings.TrimSpace(raw)
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, placeholder := placeholderSecrets[strings.ToLower(secret)]; placeholder {
		return "", errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secret) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}

func validateBackendURL(raw string) error {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid BACKEND_URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid BACKEND_URL %q: scheme must be http or https", raw)
	}
	if parsed.Host == "" {
		return fmt.Errorf("invalid BACKEND_URL %q: host is required", raw)
	}
	return nil
}

// LoadLocation falls back to UTC and reports whether it had to.
func LoadLocation(name string) (*time.Location, bool) {
	location, err := time.LoadLocation(strings.TrimSpace(name))
	if err != nil {
		return time.UTC, false
	}
	return location, true
}
