package stockfolio

import (
	"context"
	"testing"
)

func TestStockPriceFallbacks(t *testing.T) {
	source := newFakeSource()
	source.add("187",
		pp("2018-01-01", 150),
		pp("2018-07-01", 75),
		pp("2018-12-12", 600),
	)
	ctx := context.Background()

	tests := []struct {
		name     string
		day      string
		opts     PriceOptions
		expected float64
		found    bool
	}{
		{"exact day", "2018-07-01", PriceOptions{}, 75, true},
		{"most recent before", "2018-10-10", PriceOptions{}, 75, true},
		{"after the whole history", "2019-03-03", PriceOptions{}, 600, true},
		{"before the whole history", "2017-05-05", PriceOptions{}, 0, false},
		{"first price fallback", "2017-05-05", PriceOptions{AllowFirstPrice: true}, 150, true},
		{
			"first price capped",
			"2017-05-05",
			PriceOptions{AllowFirstPrice: true, FirstPriceMaxDate: MustParse("2017-12-31")},
			0, false,
		},
		{
			"first price within cap",
			"2017-05-05",
			PriceOptions{AllowFirstPrice: true, FirstPriceMaxDate: MustParse("2018-01-01")},
			150, true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stock := NewStock("187", source)
			if err := stock.FetchHistory(ctx, Date{}, Date{}); err != nil {
				t.Fatalf("FetchHistory: %v", err)
			}
			price, ok, err := stock.Price(ctx, MustParse(tt.day), tt.opts)
			if err != nil {
				t.Fatalf("Price: %v", err)
			}
			if ok != tt.found {
				t.Fatalf("found = %v, want %v", ok, tt.found)
			}
			if ok && !price.Equal(d(tt.expected)) {
				t.Errorf("price = %v, want %v", price, tt.expected)
			}
		})
	}
}

func TestStockFirstPriceWithoutCachedHistory(t *testing.T) {
	source := newFakeSource()
	source.add("187", pp("2018-01-01", 150))
	ctx := context.Background()

	// The requested day predates the whole history, so neither the exact
	// nor the range-to lookup resolves; only the first-price fallback can.
	tests := []struct {
		name     string
		opts     PriceOptions
		expected float64
		found    bool
	}{
		{"no fallback", PriceOptions{}, 0, false},
		{"first price fallback", PriceOptions{AllowFirstPrice: true}, 150, true},
		{
			"first price capped",
			PriceOptions{AllowFirstPrice: true, FirstPriceMaxDate: MustParse("2017-12-31")},
			0, false,
		},
		{
			"first price within cap",
			PriceOptions{AllowFirstPrice: true, FirstPriceMaxDate: MustParse("2018-01-01")},
			150, true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stock := NewStock("187", source)
			price, ok, err := stock.Price(ctx, MustParse("2017-05-05"), tt.opts)
			if err != nil {
				t.Fatalf("Price: %v", err)
			}
			if ok != tt.found {
				t.Fatalf("found = %v, want %v", ok, tt.found)
			}
			if ok && !price.Equal(d(tt.expected)) {
				t.Errorf("price = %v, want %v", price, tt.expected)
			}
		})
	}
}

func TestStockCachedWindowCoverage(t *testing.T) {
	source := newFakeSource()
	source.add("187",
		pp("2018-01-01", 150),
		pp("2018-07-01", 75),
	)
	ctx := context.Background()
	stock := NewStock("187", source)

	if err := stock.FetchHistory(ctx, MustParse("2018-01-01"), MustParse("2018-12-31")); err != nil {
		t.Fatalf("FetchHistory: %v", err)
	}
	_, before := source.calls()

	// Inside the window, including both inclusive bounds: no fetch.
	for _, day := range []string{"2018-01-01", "2018-06-15", "2018-12-31"} {
		if _, _, err := stock.Price(ctx, MustParse(day), PriceOptions{}); err != nil {
			t.Fatalf("Price(%s): %v", day, err)
		}
	}
	if _, after := source.calls(); after != before {
		t.Errorf("covered lookups hit the source: %d calls", after-before)
	}

	// Outside the window: the source is queried.
	if _, _, err := stock.Price(ctx, MustParse("2019-01-01"), PriceOptions{}); err != nil {
		t.Fatalf("Price outside window: %v", err)
	}
	if _, after := source.calls(); after == before {
		t.Errorf("uncovered lookup did not hit the source")
	}
}

func TestStockFetchHistoryReplaces(t *testing.T) {
	source := newFakeSource()
	source.add("187",
		pp("2018-01-01", 150),
		pp("2018-07-01", 75),
	)
	ctx := context.Background()
	stock := NewStock("187", source)

	if err := stock.FetchHistory(ctx, Date{}, Date{}); err != nil {
		t.Fatalf("FetchHistory: %v", err)
	}
	if stock.History().Len() != 2 {
		t.Fatalf("Len = %d, want 2", stock.History().Len())
	}

	// A narrower refetch replaces the cache rather than extending it.
	if err := stock.FetchHistory(ctx, MustParse("2018-06-01"), MustParse("2018-12-31")); err != nil {
		t.Fatalf("FetchHistory: %v", err)
	}
	if stock.History().Len() != 1 {
		t.Errorf("Len after refetch = %d, want 1", stock.History().Len())
	}
	if _, ok, _ := stock.Price(ctx, MustParse("2018-06-15"), PriceOptions{}); ok {
		t.Errorf("found a price inside the replaced window, cache was not replaced")
	}
}

func TestStockInfo(t *testing.T) {
	source := newFakeSource()
	ctx := context.Background()
	stock := NewStock("187", source)

	if stock.Name() != "187" {
		t.Errorf("Name before fetch = %q, want the id", stock.Name())
	}
	info, err := stock.Info(ctx)
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.Name != "187" || info.Symbol != "187" {
		t.Errorf("Info = %+v", info)
	}

	// Info is fetched once.
	if _, err := stock.Info(ctx); err != nil {
		t.Fatalf("Info: %v", err)
	}
	if calls, _ := source.calls(); calls != 1 {
		t.Errorf("info calls = %d, want 1", calls)
	}
}
