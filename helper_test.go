package stockfolio

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// fakeSource is an in-memory PriceSource for tests. Info answers with the
// stock id as name and symbol, History serves the registered points.
type fakeSource struct {
	mu           sync.Mutex
	series       map[string][]PricePoint
	infoCalls    int
	historyCalls int
	inFlight     int
	maxInFlight  int
	delay        time.Duration
	err          error
}

func newFakeSource() *fakeSource {
	return &fakeSource{series: make(map[string][]PricePoint)}
}

func (f *fakeSource) add(stockID string, points ...PricePoint) {
	f.series[stockID] = append(f.series[stockID], points...)
}

func (f *fakeSource) begin() error {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	delay, err := f.delay, f.err
	f.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	return err
}

func (f *fakeSource) end() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight--
}

func (f *fakeSource) Info(_ context.Context, stockID string) (StockInfo, error) {
	f.mu.Lock()
	f.infoCalls++
	f.mu.Unlock()
	err := f.begin()
	defer f.end()
	if err != nil {
		return StockInfo{}, err
	}
	return StockInfo{Name: stockID, Symbol: stockID}, nil
}

func (f *fakeSource) History(_ context.Context, stockID string, q HistoryQuery) ([]PricePoint, error) {
	f.mu.Lock()
	f.historyCalls++
	points := f.series[stockID]
	f.mu.Unlock()
	err := f.begin()
	defer f.end()
	if err != nil {
		return nil, err
	}

	var out []PricePoint
	for _, p := range points {
		switch {
		case !q.On.IsZero():
			if p.Date == q.On {
				out = append(out, p)
			}
		default:
			if !q.From.IsZero() && p.Date.Before(q.From) {
				continue
			}
			if !q.To.IsZero() && p.Date.After(q.To) {
				continue
			}
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeSource) calls() (info, history int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.infoCalls, f.historyCalls
}

// pp builds a price point from a date string and a price.
func pp(day string, price float64) PricePoint {
	return PricePoint{Date: MustParse(day), Price: decimal.NewFromFloat(price)}
}

// tx builds a transaction from a date string, a stock id and a quantity.
func tx(day, stockID string, quantity float64) Transaction {
	return NewTransaction(MustParse(day), stockID, decimal.NewFromFloat(quantity))
}

// d is a shorthand for decimal constants in expectations.
func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }
