package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/gofiber/fiber/v2"
)

func newTestParser(t *testing.T) *kong.Kong {
	t.Helper()

	parser, err := kong.New(&CLI, kong.Name("quitpath"), kong.Vars{"version": version}, kong.Exit(func(int) {}))
	if err != nil {
		t.Fatalf("kong.New() unexpected error: %v", err)
	}
	return parser
}

func TestCSRFMiddlewareConfigUsesCookieSecureFlag(t *testing.T) {
	secureConfig := csrfMiddlewareConfig(true)
	if !secureConfig.CookieSecure {
		t.Fatal("expected csrf cookie secure flag to be enabled")
	}
	if !secureConfig.CookieHTTPOnly {
		t.Fatal("expected csrf cookie to be httpOnly")
	}
	if secureConfig.CookieName != "quitpath_csrf" {
		t.Fatalf("expected csrf cookie name quitpath_csrf, got %q", secureConfig.CookieName)
	}
	if secureConfig.KeyLookup != "form:csrf_token" {
		t.Fatalf("expected csrf key lookup form:csrf_token, got %q", secureConfig.KeyLookup)
	}

	insecureConfig := csrfMiddlewareConfig(false)
	if insecureConfig.CookieSecure {
		t.Fatal("expected csrf cookie secure flag to be disabled")
	}
}

func TestCSRFTokenExtractorPrefersHeader(t *testing.T) {
	app := fiber.New()
	app.Post("/token", func(c *fiber.Ctx) error {
		token, err := csrfTokenExtractor(c)
		if err != nil {
			return c.Status(fiber.StatusForbidden).SendString(err.Error())
		}
		return c.SendString(token)
	})

	cases := []struct {
		name       string
		header     string
		form       string
		wantStatus int
		wantBody   string
	}{
		{name: "header", header: "from-header", form: "csrf_token=from-form", wantStatus: http.StatusOK, wantBody: "from-header"},
		{name: "form", form: "csrf_token=from-form", wantStatus: http.StatusOK, wantBody: "from-form"},
		{name: "missing", form: "other=1", wantStatus: http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(tc.form))
			request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if tc.header != "" {
				request.Header.Set(csrfHeaderName, tc.header)
			}

			response, err := app.Test(request, -1)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer response.Body.Close()

			if response.StatusCode != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, response.StatusCode)
			}
			if tc.wantBody == "" {
				return
			}
			body := make([]byte, 64)
			n, _ := response.Body.Read(body)
			if got := string(body[:n]); got != tc.wantBody {
				t.Fatalf("expected token %q, got %q", tc.wantBody, got)
			}
		})
	}
}

func TestServeRejectsWeakSecretKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "change_me_in_production")

	parser := newTestParser(t)
	if _, err := parser.Parse([]string{"serve"}); err == nil {
		t.Fatal("expected serve to reject placeholder SECRET_KEY")
	}
}

func TestServeReadsEnvironment(t *testing.T) {
	t.Setenv("SECRET_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("PORT", "9090")
	t.Setenv("BACKEND_URL", "https://api.example.com")
	t.Setenv("DEFAULT_LANGUAGE", "en")

	parser := newTestParser(t)
	ctx, err := parser.Parse([]string{"serve"})
	if err != nil {
		t.Fatalf("Parse(serve) unexpected error: %v", err)
	}
	if ctx.Command() != "serve" {
		t.Fatalf("expected serve command, got %q", ctx.Command())
	}
	if CLI.Serve.ListenAddr() != ":9090" {
		t.Fatalf("expected listen addr :9090, got %q", CLI.Serve.ListenAddr())
	}
	if CLI.Serve.BackendURL != "https://api.example.com" {
		t.Fatalf("unexpected backend url %q", CLI.Serve.BackendURL)
	}
	if CLI.Serve.DefaultLanguage != "en" {
		t.Fatalf("unexpected default language %q", CLI.Serve.DefaultLanguage)
	}
}

func TestSecretCommandDoesNotNeedServerConfig(t *testing.T) {
	t.Setenv("SECRET_KEY", "")

	parser := newTestParser(t)
	ctx, err := parser.Parse([]string{"secret", "--length", "40"})
	if err != nil {
		t.Fatalf("Parse(secret) unexpected error: %v", err)
	}
	if ctx.Command() != "secret" {
		t.Fatalf("expected secret command, got %q", ctx.Command())
	}
	if CLI.Secret.Length != 40 {
		t.Fatalf("expected length 40, got %d", CLI.Secret.Length)
	}
}
