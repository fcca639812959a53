package services

import (
	"math"
	"time"

	"github.com/terraincognita07/quitpath/internal/models"
)

type ProgressState string

const (
	ProgressNotStarted ProgressState = "not_started"
	ProgressActive     ProgressState = "active"
	ProgressFinished   ProgressState = "finished"
)

const (
	BandSuccess = "success"
	BandWarning = "warning"
	BandDanger  = "danger"
	BandIdle    = "secondary"
)

type PlanProgress struct {
	State         ProgressState
	Percent       int
	SuccessRate   int
	Band          string
	ZeroDays      int
	DaysPassed    int
	TotalDays     int
	DaysRemaining int
}

// BuildPlanProgress evaluates a plan against today's date. The plan window
// is inclusive on both ends. It reports false when the plan dates are
// missing or unparsable.
func BuildPlanProgress(plan models.QuitPlan, history []models.DailyLogEntry, now time.Time, location *time.Location) (PlanProgress, bool) {
	start, target, ok := planWindow(plan, location)
	if !ok {
		return PlanProgress{}, false
	}

	today := DateAtLocation(now, location)
	totalDays := DaysBetween(start, target) + 1
	progress := PlanProgress{TotalDays: totalDays}

	switch {
	case today.Before(start):
		progress.State = ProgressNotStarted
		progress.Band = BandIdle
		progress.DaysRemaining = totalDays
	case today.After(target):
		progress.State = ProgressFinished
		progress.Percent = 100
		progress.DaysPassed = totalDays
		progress.ZeroDays = countZeroDays(history, start, target.AddDate(0, 0, 1))
		progress.SuccessRate = roundPercent(progress.ZeroDays, totalDays)
		progress.Band = SuccessBand(progress.SuccessRate)
	default:
		daysPassed := DaysBetween(start, today)
		progress.State = ProgressActive
		progress.DaysPassed = daysPassed
		progress.DaysRemaining = totalDays - daysPassed
		progress.Percent = roundPercent(daysPassed, totalDays)
		progress.ZeroDays = countZeroDays(history, start, today)
		if daysPassed > 0 {
			progress.SuccessRate = roundPercent(progress.ZeroDays, daysPassed)
		}
		progress.Band = SuccessBand(progress.SuccessRate)
	}

	return progress, true
}

func SuccessBand(successRate int) string {
	switch {
	case successRate >= 70:
		return BandSuccess
	case successRate >= 40:
		return BandWarning
	default:
		return BandDanger
	}
}

func planWindow(plan models.QuitPlan, location *time.Location) (time.Time, time.Time, bool) {
	start, ok := ParseDay(plan.StartDate, location)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	target, ok := ParseDay(plan.TargetDate, location)
	if !ok || target.Before(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, target, true
}

// countZeroDays counts logged zero-cigarette dates in [from, until).
func countZeroDays(history []models.DailyLogEntry, from time.Time, until time.Time) int {
	fromKey := DateKey(from)
	untilKey := DateKey(until)
	count := 0
	for key, entry := range IndexHistory(history) {
		if key < fromKey || key >= untilKey {
			continue
		}
		if entry.Cigarettes == 0 {
			count++
		}
	}
	return count
}

func roundPercent(part int, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
