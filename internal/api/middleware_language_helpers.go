package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const languageCookieMaxAge = 365 * 24 * 60 * 60

// LanguageMiddleware picks the page language. A ?lang= query wins and is
// remembered, then the stored cookie, then Accept-Language. A guess from
// Accept-Language is not stored so a later browser change still applies.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	language := ""
	if requested := strings.TrimSpace(c.Query("lang")); requested != "" {
		language = handler.i18n.NormalizeLanguage(requested)
		if c.Cookies(languageCookieName) != language {
			handler.setLanguageCookie(c, language)
		}
	} else if stored := c.Cookies(languageCookieName); stored != "" {
		language = handler.i18n.NormalizeLanguage(stored)
		if stored != language {
			handler.setLanguageCookie(c, language)
		}
	} else {
		language = handler.i18n.DetectFromAcceptLanguage(c.Get("Accept-Language"))
	}

	c.Locals(contextLanguageKey, language)
	c.Locals(contextMessagesKey, handler.i18n.Messages(language))
	return c.Next()
}

func (handler *Handler) setLanguageCookie(c *fiber.Ctx, language string) {
	c.Cookie(&fiber.Cookie{
		Name:     languageCookieName,
		Value:    handler.i18n.NormalizeLanguage(language),
		Path:     "/",
		MaxAge:   languageCookieMaxAge,
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
