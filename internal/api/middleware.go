package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/quitpath/internal/models"
	"github.com/terraincognita07/quitpath/internal/services"
)

const (
	sessionCookieName  = "quitpath_session"
	languageCookieName = "quitpath_lang"
	flashCookieName    = "quitpath_flash"
	contextUserKey     = "current_user"
	contextSessionKey  = "current_session"
	contextLanguageKey = "current_language"
	contextMessagesKey = "current_messages"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok && user != nil
}

func currentSession(c *fiber.Ctx) (*services.ActiveSession, bool) {
	session, ok := c.Locals(contextSessionKey).(*services.ActiveSession)
	return session, ok && session != nil
}

func currentToken(c *fiber.Ctx) string {
	session, ok := currentSession(c)
	if !ok {
		return ""
	}
	return session.Token
}
