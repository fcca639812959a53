package services

import (
	"math"
	"time"

	"github.com/terraincognita07/quitpath/internal/models"
)

type PlanWeek struct {
	Number int
	Start  time.Time
	End    time.Time
}

type PlanWeekStats struct {
	TotalCigarettes int
	AveragePerDay   float64
	ZeroDays        int
	MoneySaved      float64
}

// BuildPlanWeeks splits the plan window into seven-day pages counted
// from the start date. The last page ends on the target date.
func BuildPlanWeeks(plan models.QuitPlan, location *time.Location) []PlanWeek {
	start, target, ok := planWindow(plan, location)
	if !ok {
		return nil
	}

	totalDays := DaysBetween(start, target) + 1
	totalWeeks := (totalDays + 6) / 7
	weeks := make([]PlanWeek, 0, totalWeeks)
	for number := 1; number <= totalWeeks; number++ {
		weekStart := start.AddDate(0, 0, (number-1)*7)
		weekEnd := weekStart.AddDate(0, 0, 6)
		if weekEnd.After(target) {
			weekEnd = target
		}
		weeks = append(weeks, PlanWeek{Number: number, Start: weekStart, End: weekEnd})
	}
	return weeks
}

func FindPlanWeek(weeks []PlanWeek, number int) (PlanWeek, bool) {
	for _, week := range weeks {
		if week.Number == number {
			return week, true
		}
	}
	return PlanWeek{}, false
}

// CurrentPlanWeek is the page containing today, clamped to the plan.
func CurrentPlanWeek(weeks []PlanWeek, now time.Time, location *time.Location) int {
	if len(weeks) == 0 {
		return 0
	}
	today := DateAtLocation(now, location)
	for _, week := range weeks {
		if !today.Before(week.Start) && !today.After(week.End) {
			return week.Number
		}
	}
	if today.Before(weeks[0].Start) {
		return weeks[0].Number
	}
	return weeks[len(weeks)-1].Number
}

func BuildPlanWeekChart(plan models.QuitPlan, week PlanWeek, history []models.DailyLogEntry, location *time.Location) ChartSeries {
	start, _, ok := planWindow(plan, location)
	if !ok {
		return ChartSeries{}
	}
	return buildDailySeries(plan, week.Start, week.End, start, IndexHistory(history))
}

func BuildPlanWeekStats(series ChartSeries, costPerPack float64) PlanWeekStats {
	stats := PlanWeekStats{}
	for _, point := range series.Points {
		stats.TotalCigarettes += point.Cigarettes
		if point.Cigarettes == 0 {
			stats.ZeroDays++
		}
	}
	if len(series.Points) > 0 {
		average := float64(stats.TotalCigarettes) / float64(len(series.Points))
		stats.AveragePerDay = math.Round(average*10) / 10
	}
	stats.MoneySaved = MoneyForCigarettes(stats.TotalCigarettes, costPerPack)
	return stats
}
