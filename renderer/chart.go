// Package renderer turns portfolio metric series into PNG line charts.
package renderer

import (
	"fmt"

	"github.com/vicanso/go-charts/v2"

	"github.com/etnz/stockfolio"
)

// LineChart renders a single metric series as a PNG line chart.
func LineChart(title string, series []stockfolio.SeriesPoint) ([]byte, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("no points to chart")
	}

	labels := make([]string, len(series))
	values := make([]float64, len(series))
	minVal, maxVal := series[0].Value, series[0].Value
	for i, p := range series {
		labels[i] = p.Date.Format("Jan 02")
		if len(series) > 60 {
			labels[i] = p.Date.Format("Jan '06")
		}
		values[i] = p.Value
		if p.Value < minVal {
			minVal = p.Value
		}
		if p.Value > maxVal {
			maxVal = p.Value
		}
	}

	padding := (maxVal - minVal) * 0.05
	if padding == 0 {
		padding = maxVal * 0.05
	}
	yMin := minVal - padding
	yMax := maxVal + padding

	splitNum := 6
	if len(labels) <= 30 {
		splitNum = len(labels) / 3
		if splitNum < 3 {
			splitNum = 3
		}
	}

	p, err := charts.LineRender(
		[][]float64{values},
		charts.TitleTextOptionFunc(title),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        labels,
			SplitNumber: splitNum,
			BoundaryGap: charts.FalseFlag(),
		}),
		charts.YAxisOptionFunc(charts.YAxisOption{
			Min:         &yMin,
			Max:         &yMax,
			DivideCount: 5,
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("rendering chart: %w", err)
	}
	return p.Bytes()
}
