package api

import (
	"github.com/terraincognita07/quitpath/internal/services"
)

type chartView struct {
	ID         string    `json:"id"`
	Labels     []string  `json:"labels"`
	Cigarettes []int     `json:"cigarettes"`
	Targets    []float64 `json:"targets,omitempty"`
	HasTarget  bool      `json:"hasTarget"`
	Max        float64   `json:"max"`
}

func (view chartView) Empty() bool {
	return len(view.Labels) == 0
}

func newChartView(id string, series services.ChartSeries) chartView {
	view := chartView{
		ID:         id,
		Labels:     make([]string, 0, len(series.Points)),
		Cigarettes: make([]int, 0, len(series.Points)),
		HasTarget:  series.HasTarget,
		Max:        series.MaxValue(),
	}
	for _, point := range series.Points {
		view.Labels = append(view.Labels, point.Key)
		view.Cigarettes = append(view.Cigarettes, point.Cigarettes)
		if series.HasTarget {
			view.Targets = append(view.Targets, point.Target)
		}
	}
	return view
}
