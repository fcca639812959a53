package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/quitpath/internal/i18n"
	"github.com/terraincognita07/quitpath/internal/services"
)

var authErrorKeys = map[string]string{
	"invalid input":           "auth.error.invalid_input",
	"invalid credentials":     "auth.error.invalid_credentials",
	"too_many_login_attempts": "auth.error.too_many_login_attempts",
	"too many login attempts": "auth.error.too_many_login_attempts",
	"login unavailable":       "auth.error.unavailable",
	"session expired":         "auth.error.session_expired",
	"unauthorized":            "auth.error.unauthorized",
	"forbidden":               "unauthorized.title",
	"not found":               "not_found.title",
}

var monthNames = map[string][]string{
	i18n.LangEN: {"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	i18n.LangVI: {"Tháng 1", "Tháng 2", "Tháng 3", "Tháng 4", "Tháng 5", "Tháng 6", "Tháng 7", "Tháng 8", "Tháng 9", "Tháng 10", "Tháng 11", "Tháng 12"},
}

var weekdayShortNames = map[string][]string{
	i18n.LangEN: {"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	i18n.LangVI: {"CN", "T2", "T3", "T4", "T5", "T6", "T7"},
}

var monthShortNames = map[string][]string{
	i18n.LangEN: {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
}

func translateMessage(messages map[string]string, key string) string {
	if key == "" {
		return ""
	}
	if messages != nil {
		if value, ok := messages[key]; ok && strings.TrimSpace(value) != "" {
			return value
		}
	}
	return key
}

func authErrorTranslationKey(message string) string {
	key, ok := authErrorKeys[strings.ToLower(strings.TrimSpace(message))]
	if !ok {
		return ""
	}
	return key
}

func roleTranslationKey(role string) string {
	return services.RoleLabelKey(role)
}

func currentLanguage(c *fiber.Ctx) string {
	language, ok := c.Locals(contextLanguageKey).(string)
	if !ok || strings.TrimSpace(language) == "" {
		return ""
	}
	return language
}

func currentMessages(c *fiber.Ctx) map[string]string {
	messages, ok := c.Locals(contextMessagesKey).(map[string]string)
	if !ok || messages == nil {
		return map[string]string{}
	}
	return messages
}

func (handler *Handler) withTemplateDefaults(c *fiber.Ctx, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}

	messages := currentMessages(c)
	if _, ok := data["Messages"]; !ok {
		data["Messages"] = messages
	}

	if _, ok := data["Lang"]; !ok {
		language := currentLanguage(c)
		if language == "" {
			language = handler.i18n.DefaultLanguage()
		}
		data["Lang"] = language
	}

	if _, ok := data["CurrentPath"]; !ok {
		data["CurrentPath"] = currentPathWithQuery(c)
	}

	if _, ok := data["CSRFToken"]; !ok {
		data["CSRFToken"] = csrfToken(c)
	}

	if _, ok := data["CurrentUser"]; !ok {
		if user, found := currentUser(c); found {
			data["CurrentUser"] = user
		}
	}

	if _, ok := data["Sidebar"]; !ok {
		user, _ := currentUser(c)
		data["Sidebar"] = buildSidebarView(c, user)
	}

	if _, ok := data["UpgradeModal"]; !ok {
		data["UpgradeModal"] = buildUpgradeModalView(c, handler.upgradePath)
	}

	if _, ok := data["UpgradePath"]; !ok {
		data["UpgradePath"] = handler.upgradePath
	}

	if _, ok := data["VIPBenefitKeys"]; !ok {
		data["VIPBenefitKeys"] = services.VIPBenefitKeys
	}

	if _, ok := data["NoDataLabel"]; !ok {
		noData := translateMessage(messages, "common.not_available")
		if noData == "common.not_available" {
			noData = "-"
		}
		data["NoDataLabel"] = noData
	}

	return data
}

func currentPathWithQuery(c *fiber.Ctx) string {
	path := string(c.Request().URI().RequestURI())
	if path == "" {
		return c.Path()
	}
	return path
}

func localizedMonthYear(language string, value time.Time) string {
	names, ok := monthNames[strings.ToLower(language)]
	if !ok || len(names) < 12 {
		return value.Format("January 2006")
	}
	return fmt.Sprintf("%s %d", names[int(value.Month())-1], value.Year())
}

// localizedDateLabel renders a short weekday and day label such as
// "Mon, Jan 2" or "T2, 2/1".
func localizedDateLabel(language string, value time.Time) string {
	if value.IsZero() {
		return ""
	}
	lang := strings.ToLower(strings.TrimSpace(language))
	weekdays, ok := weekdayShortNames[lang]
	if !ok {
		return value.Format("Mon, Jan 2")
	}
	weekday := weekdays[int(value.Weekday())]
	if lang == i18n.LangVI {
		return fmt.Sprintf("%s, %d/%d", weekday, value.Day(), int(value.Month()))
	}
	months := monthShortNames[lang]
	return fmt.Sprintf("%s, %s %d", weekday, months[int(value.Month())-1], value.Day())
}
