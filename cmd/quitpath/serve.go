package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/terraincognita07/quitpath/internal/api"
	"github.com/terraincognita07/quitpath/internal/backend"
	"github.com/terraincognita07/quitpath/internal/config"
	"github.com/terraincognita07/quitpath/internal/db"
	"github.com/terraincognita07/quitpath/internal/i18n"
	"github.com/terraincognita07/quitpath/internal/logger"
	"github.com/terraincognita07/quitpath/internal/services"
)

const (
	csrfHeaderName       = "X-CSRF-Token"
	shutdownTimeout      = 10 * time.Second
	sessionPruneInterval = time.Hour
)

type ServeCmd struct {
	config.Server  `embed:""`
	config.Storage `embed:""`
}

func (cmd *ServeCmd) Validate() error {
	return cmd.Server.Validate()
}

func (cmd *ServeCmd) Run() error {
	location, ok := config.LoadLocation(cmd.Timezone)
	if !ok {
		logger.Warn("invalid TZ, falling back to UTC", "tz", cmd.Timezone)
	}
	time.Local = location

	database, err := db.OpenSQLite(cmd.DBPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	repos := db.NewRepositories(database)
	sessions := services.NewSessionService(repos.Sessions, cmd.SessionTTL)

	client, err := backend.NewClient(cmd.BackendURL, cmd.BackendTimeout)
	if err != nil {
		return fmt.Errorf("backend client init failed: %w", err)
	}

	i18nManager, err := i18n.NewManager(cmd.DefaultLanguage, cmd.LocalesDir)
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	handler, err := api.NewHandler(api.HandlerConfig{
		Backend:      client,
		Sessions:     sessions,
		SecretKey:    cmd.SecretKey,
		TemplateDir:  cmd.TemplateDir,
		Location:     location,
		I18n:         i18nManager,
		CookieSecure: cmd.CookieSecure,
		UpgradePath:  cmd.UpgradePath,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := newApp(handler, cmd.CookieSecure)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()
	services.NewSessionJanitor(sessions, sessionPruneInterval).Start(lifecycleCtx)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "err", err)
		}
	}()

	logger.Info("quitpath listening",
		"addr", cmd.ListenAddr(),
		"backend", cmd.BackendURL,
		"db", cmd.DBPath,
		"tz", location.String(),
	)
	if err := app.Listen(cmd.ListenAddr()); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func newApp(handler *api.Handler, cookieSecure bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "QuitPath",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Output: logger.Writer(),
		Format: "${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)
	app.Use(csrf.New(csrfMiddlewareConfig(cookieSecure)))

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "form:csrf_token",
		Extractor:      csrfTokenExtractor,
		CookieName:     "quitpath_csrf",
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
		CookieSecure:   cookieSecure,
		ContextKey:     "csrf",
		ErrorHandler:   csrfErrorHandler,
	}
}

// csrfTokenExtractor reads the token from the HTMX header first and then
// from the form field.
func csrfTokenExtractor(c *fiber.Ctx) (string, error) {
	if token := strings.TrimSpace(c.Get(csrfHeaderName)); token != "" {
		return token, nil
	}
	return csrf.CsrfFromForm("csrf_token")(c)
}

func csrfErrorHandler(c *fiber.Ctx, err error) error {
	logger.Standard(charmlog.WarnLevel).Printf("csrf rejected %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "invalid csrf token"})
}
