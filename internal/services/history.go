package services

import (
	"time"

	"github.com/terraincognita07/quitpath/internal/models"
)

const cigarettesPerPack = 20

type HistoryBucket struct {
	Key        string
	Start      time.Time
	Cigarettes int
	Days       int
	MoneySaved float64
}

func MoneyForCigarettes(cigarettes int, costPerPack float64) float64 {
	if costPerPack <= 0 {
		return 0
	}
	return float64(cigarettes) * costPerPack / cigarettesPerPack
}

// GroupHistoryByWeek buckets entries into weeks starting on Sunday.
func GroupHistoryByWeek(history []models.DailyLogEntry, costPerPack float64, location *time.Location) []HistoryBucket {
	return groupHistory(history, costPerPack, location, func(day time.Time) time.Time {
		return day.AddDate(0, 0, -int(day.Weekday()))
	}, DateKey)
}

func GroupHistoryByMonth(history []models.DailyLogEntry, costPerPack float64, location *time.Location) []HistoryBucket {
	return groupHistory(history, costPerPack, location, func(day time.Time) time.Time {
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	}, func(start time.Time) string {
		return start.Format("2006-01")
	})
}

func groupHistory(
	history []models.DailyLogEntry,
	costPerPack float64,
	location *time.Location,
	bucketStart func(time.Time) time.Time,
	bucketKey func(time.Time) string,
) []HistoryBucket {
	buckets := make([]HistoryBucket, 0)
	positions := make(map[string]int)

	for _, entry := range SortedHistory(history) {
		day, ok := ParseDay(entry.Date, location)
		if !ok {
			continue
		}
		start := bucketStart(day)
		key := bucketKey(start)

		position, exists := positions[key]
		if !exists {
			position = len(buckets)
			positions[key] = position
			buckets = append(buckets, HistoryBucket{Key: key, Start: start})
		}
		buckets[position].Cigarettes += entry.Cigarettes
		buckets[position].Days++
	}

	for index := range buckets {
		buckets[index].MoneySaved = MoneyForCigarettes(buckets[index].Cigarettes, costPerPack)
	}
	return buckets
}

// CurrentStreak counts zero-cigarette entries back from the latest one.
func CurrentStreak(history []models.DailyLogEntry) int {
	sorted := SortedHistory(history)
	streak := 0
	for index := len(sorted) - 1; index >= 0; index-- {
		if sorted[index].Cigarettes != 0 {
			break
		}
		streak++
	}
	return streak
}

func LongestStreak(history []models.DailyLogEntry) int {
	longest, current := 0, 0
	for _, entry := range SortedHistory(history) {
		if entry.Cigarettes != 0 {
			current = 0
			continue
		}
		current++
		if current > longest {
			longest = current
		}
	}
	return longest
}
