package services

import (
	"sort"
	"strings"
	"time"

	"github.com/terraincognita07/quitpath/internal/models"
)

const dateLayout = "2006-01-02"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// ParseDay reads the calendar date from the first ten characters of a
// backend date or timestamp.
func ParseDay(raw string, location *time.Location) (time.Time, bool) {
	if location == nil {
		location = time.UTC
	}
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < models.DateKeyLength {
		return time.Time{}, false
	}
	parsed, err := time.ParseInLocation(dateLayout, trimmed[:models.DateKeyLength], location)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

func DateKey(value time.Time) string {
	return value.Format(dateLayout)
}

// DaysBetween counts calendar days from start to end, ignoring DST shifts.
func DaysBetween(start time.Time, end time.Time) int {
	startUTC := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endUTC := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(endUTC.Sub(startUTC).Hours() / 24)
}

// IndexHistory keys entries by calendar date. A later entry for the same
// date replaces an earlier one.
func IndexHistory(history []models.DailyLogEntry) map[string]models.DailyLogEntry {
	index := make(map[string]models.DailyLogEntry, len(history))
	for _, entry := range history {
		key := entry.DateKey()
		if len(key) != models.DateKeyLength {
			continue
		}
		index[key] = entry
	}
	return index
}

// SortedHistory returns one entry per date in ascending date order.
func SortedHistory(history []models.DailyLogEntry) []models.DailyLogEntry {
	index := IndexHistory(history)
	keys := make([]string, 0, len(index))
	for key := range index {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	sorted := make([]models.DailyLogEntry, 0, len(keys))
	for _, key := range keys {
		sorted = append(sorted, index[key])
	}
	return sorted
}
