package report

import (
	"errors"
	"fmt"
	"io"
	"os"

	"repeat-rca/pkg/models"

	"github.com/wcharczuk/go-chart/v2"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no data to plot")

// GenderBars turns gender counts into one bar per gender, height = count.
func GenderBars(counts []models.CategoryCount) []chart.Value {
	bars := make([]chart.Value, 0, len(counts))
	for _, c := range counts {
		bars = append(bars, chart.Value{Label: c.Category, Value: float64(c.Count)})
	}
	return bars
}

// RenderGenderChart writes the gender distribution of repeat customers as a PNG.
func RenderGenderChart(w io.Writer, counts []models.CategoryCount) error {
	bars := GenderBars(counts)
	if len(bars) == 0 {
		return ErrNoData
	}

	top := 0.0
	for _, b := range bars {
		if b.Value > top {
			top = b.Value
		}
	}

	barChart := chart.BarChart{
		Title: "Gender Distribution of Repeat Customers",
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:    chartWidth(len(bars)),
		Height:   600,
		BarWidth: barWidth,
		YAxis: chart.YAxis{
			Name: "Count",
			// pinned at zero so a single bar still has a visible height
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
			ValueFormatter: func(v interface{}) string {
				if vf, isFloat := v.(float64); isFloat {
					return fmt.Sprintf("%.0f", vf)
				}
				return ""
			},
		},
		Bars: bars,
	}
	return barChart.Render(chart.PNG, w)
}

const (
	barWidth   = 60
	barSpacing = 100 // go-chart default
)

func chartWidth(n int) int {
	w := n*(barWidth+barSpacing) + 2*barSpacing
	if w < 800 {
		return 800
	}
	return w
}

// SaveGenderChart renders the chart to path.
func SaveGenderChart(path string, counts []models.CategoryCount) error {
	if len(counts) == 0 {
		return ErrNoData
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := RenderGenderChart(f, counts); err != nil {
		f.Close()
		return fmt.Errorf("render chart: %w", err)
	}
	return f.Close()
}
