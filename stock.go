package stockfolio

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

// Stock is a tradeable security with a locally cached slice of its daily
// price history. The cached window [from, to] is inclusive on both ends;
// a zero bound means unbounded on that side. Lookups inside the window
// are answered locally, lookups outside go straight to the price source
// without disturbing the cache.
type Stock struct {
	id     string
	source PriceSource

	mu      sync.Mutex
	info    StockInfo
	hasInfo bool
	history History
	from    Date
	to      Date
	fetched bool
}

// PriceOptions tune the fallback applied when no price exists on or
// before the requested day.
type PriceOptions struct {
	// AllowFirstPrice falls back to the earliest known price when the
	// requested day predates the whole history.
	AllowFirstPrice bool
	// FirstPriceMaxDate caps the fallback: the earliest price is used
	// only when its date is on or before this day. Zero means no cap.
	FirstPriceMaxDate Date
}

// NewStock returns a stock bound to a price source. No remote call is
// made until info or prices are requested.
func NewStock(id string, source PriceSource) *Stock {
	return &Stock{id: id, source: source}
}

// ID returns the stock identifier used at the price source.
func (s *Stock) ID() string { return s.id }

// FetchInfo fetches the stock's descriptive attributes. Repeated calls
// after a success are no-ops.
func (s *Stock) FetchInfo(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasInfo {
		return nil
	}
	info, err := s.source.Info(ctx, s.id)
	if err != nil {
		return err
	}
	s.info = info
	s.hasInfo = true
	return nil
}

// Info returns the stock's descriptive attributes, fetching them on
// first use.
func (s *Stock) Info(ctx context.Context) (StockInfo, error) {
	if err := s.FetchInfo(ctx); err != nil {
		return StockInfo{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info, nil
}

// Name returns the stock's name if info has been fetched, else its id.
func (s *Stock) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasInfo && s.info.Name != "" {
		return s.info.Name
	}
	return s.id
}

// FetchHistory retrieves the price history for [from, to] and replaces
// the cache with it. Zero bounds query the source unbounded on that
// side. Errors from the source propagate unmodified and leave the
// previous cache intact.
func (s *Stock) FetchHistory(ctx context.Context, from, to Date) error {
	points, err := s.source.History(ctx, s.id, HistoryQuery{From: from, To: to})
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Clear()
	for _, p := range points {
		s.history.Append(p.Date, p.Price)
	}
	s.from, s.to, s.fetched = from, to, true
	return nil
}

// covers reports whether the cached window contains [a, b], inclusive
// on both ends.
func (s *Stock) covers(a, b Date) bool {
	if !s.fetched {
		return false
	}
	if !s.from.IsZero() && !s.from.SameOrBefore(a) {
		return false
	}
	if !s.to.IsZero() && !b.SameOrBefore(s.to) {
		return false
	}
	return true
}

// Price returns the stock's price on a day.
//
// Resolution order: the exact day, then the most recent price strictly
// before it, then, when opts.AllowFirstPrice is set, the earliest known
// price provided its date does not exceed opts.FirstPriceMaxDate. When
// the day falls inside the cached window the cache is authoritative;
// otherwise the source is queried directly, first for the exact day,
// then for the range up to it. The returned bool reports whether any
// price was found; a missing price is not an error.
func (s *Stock) Price(ctx context.Context, day Date, opts PriceOptions) (decimal.Decimal, bool, error) {
	s.mu.Lock()
	if s.covers(day, day) {
		p, ok := resolvePrice(&s.history, day, opts)
		s.mu.Unlock()
		return p, ok, nil
	}
	s.mu.Unlock()

	points, err := s.source.History(ctx, s.id, HistoryQuery{On: day})
	if err != nil {
		return decimal.Zero, false, err
	}
	if len(points) > 0 {
		return points[0].Price, true, nil
	}
	points, err = s.source.History(ctx, s.id, HistoryQuery{To: day})
	if err != nil {
		return decimal.Zero, false, err
	}
	var h History
	for _, p := range points {
		h.Append(p.Date, p.Price)
	}
	if p, ok := resolvePrice(&h, day, opts); ok {
		return p, true, nil
	}
	if !opts.AllowFirstPrice {
		return decimal.Zero, false, nil
	}
	// The day may predate the whole history; the earliest price can only
	// come from a wider query, bounded by the fallback cap.
	points, err = s.source.History(ctx, s.id, HistoryQuery{To: opts.FirstPriceMaxDate})
	if err != nil {
		return decimal.Zero, false, err
	}
	h.Clear()
	for _, p := range points {
		h.Append(p.Date, p.Price)
	}
	if d, p, ok := h.First(); ok {
		if opts.FirstPriceMaxDate.IsZero() || d.SameOrBefore(opts.FirstPriceMaxDate) {
			return p, true, nil
		}
	}
	return decimal.Zero, false, nil
}

func resolvePrice(h *History, day Date, opts PriceOptions) (decimal.Decimal, bool) {
	if p, ok := h.Get(day); ok {
		return p, true
	}
	if p, ok := h.Before(day); ok {
		return p, true
	}
	if opts.AllowFirstPrice {
		if d, p, ok := h.First(); ok {
			if opts.FirstPriceMaxDate.IsZero() || d.SameOrBefore(opts.FirstPriceMaxDate) {
				return p, true
			}
		}
	}
	return decimal.Zero, false
}

// History returns the cached daily prices.
func (s *Stock) History() *History {
	return &s.history
}
