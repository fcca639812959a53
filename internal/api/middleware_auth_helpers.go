package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/quitpath/internal/logger"
	"github.com/terraincognita07/quitpath/internal/services"
)

var errMissingSessionCookie = errors.New("missing session cookie")

// authenticateRequest resolves the session named by the request cookie.
// A cookie that no longer maps to a live session is cleared. Storage
// failures leave the cookie in place.
func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*services.ActiveSession, error) {
	sessionID := handler.sessionIDFromCookie(c)
	if sessionID == "" {
		if c.Cookies(sessionCookieName) != "" {
			handler.clearSessionCookie(c)
		}
		return nil, errMissingSessionCookie
	}

	session, err := handler.sessions.Resolve(sessionID)
	if err != nil {
		if !services.IsSessionRejected(err) {
			logger.Error("session lookup failed", "err", err)
			return nil, err
		}
		if !errors.Is(err, services.ErrSessionNotFound) {
			logger.Debug("session rejected", "err", err)
		}
		handler.clearSessionCookie(c)
		return nil, err
	}

	if _, expired := handler.tokenExpired(session.Token); expired {
		_ = handler.sessions.End(session.ID)
		handler.clearSessionCookie(c)
		return nil, services.ErrSessionExpired
	}
	return &session, nil
}

func (handler *Handler) tokenExpired(token string) (bool, bool) {
	expiresAt, ok := services.TokenExpiry(token)
	if !ok {
		return false, false
	}
	return true, !expiresAt.After(handler.now())
}

func (handler *Handler) optionalSession(c *fiber.Ctx) *services.ActiveSession {
	if c.Cookies(sessionCookieName) == "" {
		return nil
	}
	session, err := handler.authenticateRequest(c)
	if err != nil {
		return nil
	}
	return session
}

func storeSessionLocals(c *fiber.Ctx, session *services.ActiveSession) {
	user := session.User
	c.Locals(contextSessionKey, session)
	c.Locals(contextUserKey, &user)
}
