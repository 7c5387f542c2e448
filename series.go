package stockfolio

import (
	"context"
	"fmt"
)

// SeriesPoint is one day of a metric series.
type SeriesPoint struct {
	Date  Date
	Value float64
}

// ValueSeries computes the portfolio's market value for every day of
// [from, to], inclusive.
func (p *Portfolio) ValueSeries(ctx context.Context, from, to Date) ([]SeriesPoint, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("invalid range: %s is after %s", from, to)
	}
	var series []SeriesPoint
	for day := from; day.SameOrBefore(to); day = day.Add(1) {
		value, err := p.ValueOnDate(ctx, day)
		if err != nil {
			return nil, err
		}
		v, _ := value.Float64()
		series = append(series, SeriesPoint{Date: day, Value: v})
	}
	return series, nil
}

// ProfitSeries computes the time-weighted return to date, in percent, for
// every day of [from, to], inclusive.
func (p *Portfolio) ProfitSeries(ctx context.Context, from, to Date) ([]SeriesPoint, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("invalid range: %s is after %s", from, to)
	}
	var series []SeriesPoint
	for day := from; day.SameOrBefore(to); day = day.Add(1) {
		profit, err := p.ProfitToDate(ctx, day)
		if err != nil {
			return nil, err
		}
		series = append(series, SeriesPoint{Date: day, Value: float64(profit)})
	}
	return series, nil
}
