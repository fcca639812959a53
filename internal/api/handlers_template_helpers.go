package api

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/terraincognita07/quitpath/internal/i18n"
	"github.com/terraincognita07/quitpath/internal/models"
)

func newTemplateFuncMap(manager *i18n.Manager) template.FuncMap {
	return template.FuncMap{
		"formatDate":     formatTemplateDate,
		"formatDay":      formatTemplateDay,
		"formatFloat":    formatTemplateFloat,
		"t":              templateTranslate,
		"tf":             templateTranslatef,
		"roleLabel":      templateRoleLabel,
		"cigaretteType":  templateCigaretteType,
		"isActiveRoute":  isActiveTemplateRoute,
		"toJSON":         templateToJSON,
		"dict":           templateDict,
		"add":            func(left int, right int) int { return left + right },
		"money":          func(lang string, amount float64) string { return manager.FormatMoney(lang, amount) },
		"number":         func(lang string, value float64, decimals int) string { return manager.FormatNumber(lang, value, decimals) },
		"localizedDate":  localizedDateLabel,
		"localizedMonth": localizedMonthYear,
	}
}

func formatTemplateDate(value time.Time, layout string) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(layout)
}

// formatTemplateDay shows the calendar part of a backend date string.
func formatTemplateDay(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) > models.DateKeyLength {
		return trimmed[:models.DateKeyLength]
	}
	return trimmed
}

func formatTemplateFloat(value float64) string {
	return fmt.Sprintf("%.1f", value)
}

func templateTranslate(messages map[string]string, key string) string {
	return translateMessage(messages, key)
}

func templateTranslatef(messages map[string]string, key string, args ...any) string {
	return fmt.Sprintf(translateMessage(messages, key), args...)
}

func templateRoleLabel(messages map[string]string, role string) string {
	return translateMessage(messages, roleTranslationKey(role))
}

func templateCigaretteType(messages map[string]string, status models.SmokingStatus) string {
	label := strings.TrimSpace(status.CigaretteTypeLabel())
	if label == "" {
		return translateMessage(messages, "common.not_available")
	}
	return label
}

func isActiveTemplateRoute(currentPath string, route string) bool {
	path := strings.TrimSpace(currentPath)
	if separator := strings.IndexByte(path, '?'); separator >= 0 {
		path = path[:separator]
	}
	if path == "" {
		return route == "/"
	}
	return path == route
}

func templateToJSON(value any) template.JS {
	serialized, err := json.Marshal(value)
	if err != nil {
		return template.JS("null")
	}
	return template.JS(serialized)
}

func templateDict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("dict requires key-value pairs")
	}
	result := make(map[string]any, len(values)/2)
	for index := 0; index < len(values); index += 2 {
		key, ok := values[index].(string)
		if !ok {
			return nil, fmt.Errorf("dict key at index %d is not a string", index)
		}
		result[key] = values[index+1]
	}
	return result, nil
}
