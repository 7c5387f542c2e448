package stockfolio

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrOversell rejects a transaction that would sell more units than owned.
	ErrOversell = errors.New("cannot sell more than the owned quantity")
	// ErrSellBeforeBuy rejects a deletion that would leave a holding's
	// earliest transaction a sell.
	ErrSellBeforeBuy = errors.New("holding would begin with a sell")
	// ErrNegativeHolding rejects a deletion that would drive a holding
	// quantity negative.
	ErrNegativeHolding = errors.New("holding quantity would go negative")
)

// defaultFetchLimit caps the number of simultaneous price source requests
// issued by Init.
const defaultFetchLimit = 20

// daysPerYear is the annualization basis.
const daysPerYear = 365

// Portfolio owns a transaction log and the stocks it references, and exposes
// the valuation, growth and profit metrics derived from them.
//
// A portfolio is a single-writer object: mutations (Init, AddTransaction,
// DeleteTransaction) must not run concurrently with each other. Valuation
// queries may run concurrently with each other once initialized.
type Portfolio struct {
	source PriceSource
	cache  *PriceCache
	limit  int

	mu        sync.Mutex
	txs       []Transaction
	stocks    map[string]*Stock
	inited    bool
	listeners listenerRegistry
}

// Option configures a Portfolio at construction.
type Option func(*Portfolio)

// WithPriceCache injects the memoized price cache. Defaults to a fresh one.
func WithPriceCache(c *PriceCache) Option {
	return func(p *Portfolio) { p.cache = c }
}

// WithFetchLimit overrides the Init fan-out concurrency cap.
func WithFetchLimit(n int) Option {
	return func(p *Portfolio) { p.limit = n }
}

// NewPortfolio creates a portfolio over an initial transaction log. The log
// is copied and sorted ascending by date; one Stock is created per distinct
// stock id. No remote call is made before Init.
func NewPortfolio(source PriceSource, txs []Transaction, opts ...Option) *Portfolio {
	p := &Portfolio{
		source: source,
		limit:  defaultFetchLimit,
		stocks: make(map[string]*Stock),
	}
	p.txs = make([]Transaction, len(txs))
	copy(p.txs, txs)
	stableSortTransactions(p.txs)
	for _, tx := range p.txs {
		if _, ok := p.stocks[tx.StockID]; !ok {
			p.stocks[tx.StockID] = NewStock(tx.StockID, source)
		}
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.cache == nil {
		p.cache = NewPriceCache()
	}
	return p
}

// Init fetches info and full price history for every referenced stock, with
// at most the configured number of requests in flight, then marks the
// portfolio ready and notifies subscribers. It must not be called twice
// concurrently.
func (p *Portfolio) Init(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)
	for _, s := range p.stocksSnapshot() {
		g.Go(func() error { return s.FetchInfo(ctx) })
		g.Go(func() error { return s.FetchHistory(ctx, Date{}, Date{}) })
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("initializing portfolio: %w", err)
	}
	p.mu.Lock()
	p.inited = true
	p.mu.Unlock()
	p.listeners.notify()
	return nil
}

// Inited reports whether Init has completed.
func (p *Portfolio) Inited() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inited
}

// HasTransactions reports whether the log holds at least one transaction.
func (p *Portfolio) HasTransactions() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.txs) > 0
}

// Transactions returns a copy of the log, ascending by date.
func (p *Portfolio) Transactions() []Transaction {
	p.mu.Lock()
	defer p.mu.Unlock()
	txs := make([]Transaction, len(p.txs))
	copy(txs, p.txs)
	return txs
}

// Stocks returns a copy of the stock map.
func (p *Portfolio) Stocks() map[string]*Stock {
	p.mu.Lock()
	defer p.mu.Unlock()
	stocks := make(map[string]*Stock, len(p.stocks))
	for id, s := range p.stocks {
		stocks[id] = s
	}
	return stocks
}

// FirstDate returns the date of the earliest transaction, or false when the
// log is empty.
func (p *Portfolio) FirstDate() (Date, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.txs) == 0 {
		return Date{}, false
	}
	return p.txs[0].Date, true
}

// LastDate returns the date of the latest transaction, or false when the
// log is empty.
func (p *Portfolio) LastDate() (Date, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.txs) == 0 {
		return Date{}, false
	}
	return p.txs[len(p.txs)-1].Date, true
}

// HoldingsOn returns the net quantity of every stock owned at the end of a
// day.
func (p *Portfolio) HoldingsOn(day Date) Holdings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.holdingsOnLocked(day)
}

func (p *Portfolio) holdingsOnLocked(day Date) Holdings {
	var in []Transaction
	for _, tx := range p.txs {
		if tx.Date.SameOrBefore(day) {
			in = append(in, tx)
		}
	}
	return HoldingQuantities(in, nil)
}

// Subscribe registers a listener called synchronously, in registration
// order, after every successful mutation. The returned handle unsubscribes.
func (p *Portfolio) Subscribe(fn Listener) *Subscription {
	return p.listeners.subscribe(fn)
}

// Unsubscribe removes a previously registered listener.
func (p *Portfolio) Unsubscribe(s *Subscription) {
	p.listeners.unsubscribe(s)
}

// AddTransaction records a trade. The sell invariant is checked against the
// holdings at the current last transaction date; a previously unseen stock
// id is fetched (history and info) before the trade is accepted, so it is
// immediately queryable. On success the log is re-sorted, the price cache is
// invalidated and subscribers are notified. On failure no state changes.
func (p *Portfolio) AddTransaction(ctx context.Context, day Date, stockID string, quantity decimal.Decimal) error {
	p.mu.Lock()
	var last Date
	if len(p.txs) > 0 {
		last = p.txs[len(p.txs)-1].Date
	}
	owned := p.holdingsOnLocked(last)[stockID]
	_, known := p.stocks[stockID]
	p.mu.Unlock()

	if quantity.Add(owned).IsNegative() {
		return fmt.Errorf("%w: %s of %s owned, selling %s", ErrOversell, owned, stockID, quantity.Neg())
	}

	var stock *Stock
	if !known {
		stock = NewStock(stockID, p.source)
		if err := stock.FetchHistory(ctx, Date{}, Date{}); err != nil {
			return fmt.Errorf("adding transaction for %s: %w", stockID, err)
		}
		if err := stock.FetchInfo(ctx); err != nil {
			return fmt.Errorf("adding transaction for %s: %w", stockID, err)
		}
	}

	p.mu.Lock()
	if stock != nil {
		p.stocks[stockID] = stock
	}
	p.txs = append(p.txs, NewTransaction(day, stockID, quantity))
	stableSortTransactions(p.txs)
	p.mu.Unlock()

	p.cache.InvalidateAll()
	p.listeners.notify()
	return nil
}

// DeleteTransaction removes the transaction at index in the ascending log.
// The resulting log is re-validated: the earliest remaining transaction of
// the affected stock must not be a sell, and that stock's holding at the
// last transaction date must not be negative. A violation rolls the log
// back and fails. When no transaction of the stock remains, the stock is
// dropped. Subscribers are notified only on success.
func (p *Portfolio) DeleteTransaction(index int) error {
	p.mu.Lock()
	if index < 0 || index >= len(p.txs) {
		p.mu.Unlock()
		return fmt.Errorf("no transaction at index %d", index)
	}
	prev := make([]Transaction, len(p.txs))
	copy(prev, p.txs)
	removed := p.txs[index]
	p.txs = append(p.txs[:index], p.txs[index+1:]...)

	var earliest *Transaction
	for i := range p.txs {
		if p.txs[i].StockID == removed.StockID {
			earliest = &p.txs[i]
			break
		}
	}
	if earliest == nil {
		delete(p.stocks, removed.StockID)
	} else {
		if earliest.Quantity.IsNegative() {
			p.txs = prev
			p.mu.Unlock()
			return fmt.Errorf("%w: %s", ErrSellBeforeBuy, removed.StockID)
		}
		last := p.txs[len(p.txs)-1].Date
		if p.holdingsOnLocked(last)[removed.StockID].IsNegative() {
			p.txs = prev
			p.mu.Unlock()
			return fmt.Errorf("%w: %s", ErrNegativeHolding, removed.StockID)
		}
	}
	p.mu.Unlock()

	p.cache.InvalidateAll()
	p.listeners.notify()
	return nil
}

func (p *Portfolio) stocksSnapshot() map[string]*Stock {
	p.mu.Lock()
	defer p.mu.Unlock()
	stocks := make(map[string]*Stock, len(p.stocks))
	for id, s := range p.stocks {
		stocks[id] = s
	}
	return stocks
}

// pricesOn assembles the price of every owned stock for each given day.
// Resolved prices are memoized in the injected cache; a stock with no
// resolvable price is recorded at zero, the explicit zero-substitution
// point for valuation.
func (p *Portfolio) pricesOn(ctx context.Context, days ...Date) (PriceTable, error) {
	stocks := p.stocksSnapshot()
	table := make(PriceTable, len(days))
	for _, day := range days {
		if _, ok := table[day]; ok {
			continue
		}
		row := make(map[string]decimal.Decimal, len(stocks))
		for id, stock := range stocks {
			if price, ok := p.cache.Get(id, day); ok {
				row[id] = price
				continue
			}
			price, ok, err := stock.Price(ctx, day, PriceOptions{})
			if err != nil {
				return nil, fmt.Errorf("pricing %s on %s: %w", id, day, err)
			}
			if !ok {
				price = decimal.Zero
			}
			p.cache.Put(id, day, price)
			row[id] = price
		}
		table[day] = row
	}
	return table, nil
}

// ValueOnDate computes the market value of the holdings at the end of a day.
func (p *Portfolio) ValueOnDate(ctx context.Context, day Date) (decimal.Decimal, error) {
	prices, err := p.pricesOn(ctx, day)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return ValueOn(day, p.HoldingsOn(day), prices), nil
}

// GrowthOnPeriod computes the simple, non-time-weighted percentage value
// change over [from, to]. The start is clamped forward to the first
// transaction date. The metric is undefined when the initial value is zero.
func (p *Portfolio) GrowthOnPeriod(ctx context.Context, from, to Date) (Metric, error) {
	if first, ok := p.FirstDate(); ok && from.Before(first) {
		from = first
	}
	initial, err := p.ValueOnDate(ctx, from)
	if err != nil {
		return Metric{}, err
	}
	end, err := p.ValueOnDate(ctx, to)
	if err != nil {
		return Metric{}, err
	}
	if initial.IsZero() {
		return UndefinedMetric(), nil
	}
	growth, _ := end.Div(initial).Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100)).Float64()
	return DefinedMetric(Percent(growth)), nil
}

// GrowthToDate computes the simple growth from the first transaction date.
// It is zero before the portfolio's first transaction.
func (p *Portfolio) GrowthToDate(ctx context.Context, day Date) (Metric, error) {
	from := day
	if first, ok := p.FirstDate(); ok {
		from = first
	}
	if day.Before(from) {
		return DefinedMetric(0), nil
	}
	return p.GrowthOnPeriod(ctx, from, day)
}

// AnnualizedGrowthOnPeriod annualizes GrowthOnPeriod over the period length.
// Undefined for a zero-day span or an undefined growth.
func (p *Portfolio) AnnualizedGrowthOnPeriod(ctx context.Context, from, to Date) (Metric, error) {
	growth, err := p.GrowthOnPeriod(ctx, from, to)
	if err != nil {
		return Metric{}, err
	}
	return annualized(growth, to.Sub(from)), nil
}

// AnnualizedGrowthToDate annualizes GrowthToDate over the span since the
// first transaction.
func (p *Portfolio) AnnualizedGrowthToDate(ctx context.Context, day Date) (Metric, error) {
	from := day
	if first, ok := p.FirstDate(); ok {
		from = first
	}
	growth, err := p.GrowthToDate(ctx, day)
	if err != nil {
		return Metric{}, err
	}
	return annualized(growth, day.Sub(from)), nil
}

// ProfitOnPeriod computes the time-weighted return over [from, to] as a
// percentage. Transactions on the end date itself are outside the window;
// they only mark the terminal boundary. A zero-width or inverted window
// considers no transactions and yields zero.
func (p *Portfolio) ProfitOnPeriod(ctx context.Context, from, to Date) (Percent, error) {
	var inRange []Transaction
	if !from.SameOrAfter(to) {
		lastIn := to.Add(-1)
		for _, tx := range p.Transactions() {
			if tx.Date.SameOrAfter(from) && tx.Date.SameOrBefore(lastIn) {
				inRange = append(inRange, tx)
			}
		}
	}
	days := make([]Date, 0, len(inRange)+2)
	for _, tx := range inRange {
		days = append(days, tx.Date)
	}
	days = append(days, from, to)

	prices, err := p.pricesOn(ctx, days...)
	if err != nil {
		return 0, err
	}
	rate, err := TimeWeightedReturnRate(inRange, prices,
		PeriodBound{Date: from, PreviousHoldings: p.HoldingsOn(from.Add(-1))},
		PeriodBound{Date: to},
	)
	if err != nil {
		return 0, err
	}
	profit, _ := rate.Mul(decimal.NewFromInt(100)).Float64()
	return Percent(profit), nil
}

// ProfitToDate computes the time-weighted return since the first
// transaction. It is zero before the portfolio's first transaction.
func (p *Portfolio) ProfitToDate(ctx context.Context, day Date) (Percent, error) {
	from := day
	if first, ok := p.FirstDate(); ok {
		from = first
	}
	if day.Before(from) {
		return 0, nil
	}
	return p.ProfitOnPeriod(ctx, from, day)
}

// AnnualizedProfitOnPeriod annualizes ProfitOnPeriod over the period length.
// Undefined for a zero-day span.
func (p *Portfolio) AnnualizedProfitOnPeriod(ctx context.Context, from, to Date) (Metric, error) {
	profit, err := p.ProfitOnPeriod(ctx, from, to)
	if err != nil {
		return Metric{}, err
	}
	return annualized(DefinedMetric(profit), to.Sub(from)), nil
}

// AnnualizedProfitToDate annualizes ProfitToDate over the span since the
// first transaction.
func (p *Portfolio) AnnualizedProfitToDate(ctx context.Context, day Date) (Metric, error) {
	from := day
	if first, ok := p.FirstDate(); ok {
		from = first
	}
	profit, err := p.ProfitToDate(ctx, day)
	if err != nil {
		return Metric{}, err
	}
	return annualized(DefinedMetric(profit), day.Sub(from)), nil
}

// annualized converts a period return into a yearly rate:
// ((1 + r/100)^(365/days) − 1) × 100.
func annualized(r Metric, days int) Metric {
	rate, ok := r.Value()
	if !ok || days == 0 {
		return UndefinedMetric()
	}
	yearly := (math.Pow(1+float64(rate)/100, daysPerYear/float64(days)) - 1) * 100
	if math.IsNaN(yearly) || math.IsInf(yearly, 0) {
		return UndefinedMetric()
	}
	return DefinedMetric(Percent(yearly))
}
