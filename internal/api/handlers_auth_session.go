package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/quitpath/internal/backend"
	"github.com/terraincognita07/quitpath/internal/logger"
	"github.com/terraincognita07/quitpath/internal/services"
)

func (handler *Handler) ShowLoginPage(c *fiber.Ctx) error {
	if redirected, err := handler.redirectAuthenticatedUserIfPresent(c); redirected {
		return err
	}

	flash := handler.popFlashCookie(c)
	return handler.render(c, "login", fiber.Map{
		"Title":    localizedPageTitle(currentMessages(c), "meta.title.login", "QuitPath | Sign in"),
		"ErrorKey": authErrorTranslationKey(flash.AuthError),
		"Email":    flash.LoginEmail,
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	now := handler.now()
	credentials, parseErr := parseCredentials(c)
	throttleKey := loginThrottleKey(c.IP(), credentials.Email)
	if handler.loginThrottle.blocked(throttleKey, now) {
		return handler.respondAuthError(c, fiber.StatusTooManyRequests, "too many login attempts", credentials.Email)
	}
	if parseErr != nil {
		handler.loginThrottle.fail(throttleKey, now)
		return handler.respondAuthError(c, fiber.StatusBadRequest, "invalid input", credentials.Email)
	}

	result, err := handler.backend.Login(c.UserContext(), credentials.Email, credentials.Password)
	if err != nil {
		status := backend.StatusCode(err)
		if status >= 400 && status < 500 {
			handler.loginThrottle.fail(throttleKey, now)
			return handler.respondAuthError(c, fiber.StatusUnauthorized, "invalid credentials", credentials.Email)
		}
		logger.Warn("login: backend call failed", "err", err)
		return handler.respondAuthError(c, fiber.StatusBadGateway, "login unavailable", credentials.Email)
	}
	handler.loginThrottle.clear(throttleKey)

	session, err := handler.sessions.Start(result.Token, result.User)
	if err != nil {
		if errors.Is(err, services.ErrSessionExpired) {
			return handler.respondAuthError(c, fiber.StatusUnauthorized, "session expired", credentials.Email)
		}
		logger.Error("login: store session failed", "err", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	if err := handler.setSessionCookie(c, session.ID, session.ExpiresAt); err != nil {
		_ = handler.sessions.End(session.ID)
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return redirectOrJSON(c, services.LandingPath(session.User.NormalizedRole()))
}

// Logout never reaches the backend. Calling it without a session is
// harmless.
func (handler *Handler) Logout(c *fiber.Ctx) error {
	if sessionID := handler.sessionIDFromCookie(c); sessionID != "" {
		if err := handler.sessions.End(sessionID); err != nil {
			logger.Warn("logout: delete session failed", "err", err)
		}
	}
	handler.clearSessionCookie(c)
	return redirectOrJSON(c, "/login")
}

// endSessionOnUnauthorized drops the local session when the backend no
// longer accepts its token. It reports whether the request was answered.
func (handler *Handler) endSessionOnUnauthorized(c *fiber.Ctx, err error) (bool, error) {
	if !backend.IsUnauthorized(err) {
		return false, nil
	}
	if session, ok := currentSession(c); ok {
		if endErr := handler.sessions.End(session.ID); endErr != nil {
			logger.Warn("session: delete after backend 401 failed", "err", endErr)
		}
	}
	handler.clearSessionCookie(c)
	handler.setFlashCookie(c, FlashPayload{AuthError: "session expired"})
	return true, redirectToPath(c, "/login")
}
