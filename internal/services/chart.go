package services

import (
	"math"
	"time"

	"github.com/terraincognita07/quitpath/internal/models"
)

type ChartPoint struct {
	Date       time.Time
	Key        string
	Label      string
	Cigarettes int
	Target     float64
	Logged     bool
}

type ChartSeries struct {
	Points    []ChartPoint
	HasTarget bool
}

func (series ChartSeries) MaxValue() float64 {
	maxValue := 0.0
	for _, point := range series.Points {
		maxValue = math.Max(maxValue, float64(point.Cigarettes))
		if series.HasTarget {
			maxValue = math.Max(maxValue, point.Target)
		}
	}
	return maxValue
}

// BuildPlanChart returns one point per calendar day of the plan window.
// Days without a log entry are plotted as zero cigarettes.
func BuildPlanChart(plan models.QuitPlan, history []models.DailyLogEntry, location *time.Location) ChartSeries {
	start, target, ok := planWindow(plan, location)
	if !ok {
		return ChartSeries{}
	}
	return buildDailySeries(plan, start, target, start, IndexHistory(history))
}

func buildDailySeries(plan models.QuitPlan, from time.Time, until time.Time, planStart time.Time, index map[string]models.DailyLogEntry) ChartSeries {
	series := ChartSeries{HasTarget: plan.DailyReduction > 0}
	for day := from; !day.After(until); day = day.AddDate(0, 0, 1) {
		key := DateKey(day)
		point := ChartPoint{Date: day, Key: key}
		if entry, found := index[key]; found {
			point.Cigarettes = entry.Cigarettes
			point.Logged = true
		}
		if series.HasTarget {
			point.Target = TargetCigarettes(plan, DaysBetween(planStart, day))
		}
		series.Points = append(series.Points, point)
	}
	return series
}

// TargetCigarettes is the planned daily allowance after daysFromStart days.
func TargetCigarettes(plan models.QuitPlan, daysFromStart int) float64 {
	return math.Max(0, float64(plan.InitialCigarettes)-plan.DailyReduction*float64(daysFromStart))
}

// BuildHistoryChart plots raw entries in the order they were returned.
func BuildHistoryChart(history []models.DailyLogEntry, location *time.Location) ChartSeries {
	series := ChartSeries{}
	for _, entry := range history {
		point := ChartPoint{Key: entry.DateKey(), Cigarettes: entry.Cigarettes, Logged: true}
		if day, ok := ParseDay(entry.Date, location); ok {
			point.Date = day
		}
		series.Points = append(series.Points, point)
	}
	return series
}
