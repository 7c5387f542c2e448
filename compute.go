package stockfolio

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrTransactionBeforeWindow is returned by HoldingPeriods when a transaction
// predates the start of the decomposition window. This is a caller bug (the
// window must cover its transactions), not a recoverable runtime condition.
var ErrTransactionBeforeWindow = errors.New("transaction predates the period start")

// Holdings maps a stock id to the net quantity owned.
type Holdings map[string]decimal.Decimal

// Clone returns a copy of the holdings map. A nil receiver clones to an
// empty, usable map.
func (h Holdings) Clone() Holdings {
	c := make(Holdings, len(h))
	for id, q := range h {
		c[id] = q
	}
	return c
}

// Equal reports whether two holdings carry the same quantities.
func (h Holdings) Equal(o Holdings) bool {
	if len(h) != len(o) {
		return false
	}
	for id, q := range h {
		oq, ok := o[id]
		if !ok || !q.Equal(oq) {
			return false
		}
	}
	return true
}

// PriceTable holds, for each day, the price of every stock of interest.
// A missing entry means "no price available" and values as zero.
type PriceTable map[Date]map[string]decimal.Decimal

// price returns the price of a stock on a day, or zero when unknown.
func (p PriceTable) price(day Date, stockID string) decimal.Decimal {
	return p[day][stockID]
}

// HoldingQuantities folds transactions into cumulative quantities per stock,
// seeded by initial. Summing is commutative, so any order that includes all
// relevant transactions yields the same result.
func HoldingQuantities(txs []Transaction, initial Holdings) Holdings {
	acc := initial.Clone()
	for _, tx := range txs {
		acc[tx.StockID] = acc[tx.StockID].Add(tx.Quantity)
	}
	return acc
}

// ValueOn computes the market value of a holding snapshot on a day.
//
// A stock with no quoted price contributes nothing: this is the single place
// where a missing price is deliberately interpreted as zero value.
func ValueOn(day Date, holdings Holdings, prices PriceTable) decimal.Decimal {
	var total decimal.Decimal
	for id, quantity := range holdings {
		total = total.Add(quantity.Mul(prices.price(day, id)))
	}
	return total
}

// dateCashflow computes the market value of the net trading activity on a
// day: Σ (currentQty − previousQty) × price. It is used to neutralize the
// effect of buys and sells on the return calculation.
func dateCashflow(day Date, holdings Holdings, prices PriceTable, previous *HoldingPeriod) decimal.Decimal {
	var total decimal.Decimal
	if previous == nil {
		return total
	}
	for id, current := range holdings {
		traded := current.Sub(previous.Holdings[id])
		total = total.Add(traded.Mul(prices.price(day, id)))
	}
	return total
}

// HoldingPeriod is one sub-period of a time-weighted-return decomposition.
// It is a transient derivation, recomputed on every query.
type HoldingPeriod struct {
	Date               Date
	Value              decimal.Decimal // composition of the previous period, at today's prices
	ValueAfterCashflow decimal.Decimal // Value plus today's net trading activity
	Holdings           Holdings        // composition at the end of this period
	ReturnRate         decimal.Decimal // isolated return against the previous period
}

// newHoldingPeriod builds a period for a day, chained off the previous one.
//
// Value marks the previous period's composition at today's prices, isolating
// price return from the effect of today's trades; the very first period
// values its own snapshot instead.
func newHoldingPeriod(day Date, holdings Holdings, prices PriceTable, previous *HoldingPeriod) HoldingPeriod {
	valued := holdings
	if previous != nil {
		valued = previous.Holdings
	}
	value := ValueOn(day, valued, prices)
	cashflow := dateCashflow(day, holdings, prices, previous)

	var rate decimal.Decimal
	if previous != nil && !previous.ValueAfterCashflow.IsZero() {
		rate = value.Div(previous.ValueAfterCashflow).Sub(decimal.NewFromInt(1))
	}
	return HoldingPeriod{
		Date:               day,
		Value:              value,
		ValueAfterCashflow: value.Add(cashflow),
		Holdings:           holdings,
		ReturnRate:         rate,
	}
}

// PeriodBound delimits one end of a decomposition window.
//
// PreviousHoldings seeds the initial period with the composition immediately
// before the window starts; leave it nil for a portfolio with no history.
type PeriodBound struct {
	Date             Date
	PreviousHoldings Holdings
}

// HoldingPeriods partitions [from, to] into cashflow-delimited sub-periods.
//
// txs must be sorted by ascending date: one boundary is produced per
// consecutive run of same-day trades, which are merged, not treated as
// separate boundaries. A synthetic initial period anchors the window start
// and a terminal period at to.Date carries the last composition forward to
// capture price drift since the last trade. Periods are returned in
// ascending date order.
func HoldingPeriods(txs []Transaction, prices PriceTable, from, to PeriodBound) ([]HoldingPeriod, error) {
	for _, tx := range txs {
		if tx.Date.Before(from.Date) {
			return nil, fmt.Errorf("%w: %s is before %s", ErrTransactionBeforeWindow, tx.Date, from.Date)
		}
	}

	initial := newHoldingPeriod(from.Date, from.PreviousHoldings.Clone(), prices, nil)
	periods := []HoldingPeriod{initial}

	// push chains a period off the latest one; a period on the same day
	// replaces it, which only happens for the window boundaries.
	push := func(p HoldingPeriod) {
		last := len(periods) - 1
		if periods[last].Date == p.Date {
			periods[last] = p
			return
		}
		periods = append(periods, p)
	}

	for i := 0; i < len(txs); {
		day := txs[i].Date
		j := i
		for j < len(txs) && txs[j].Date == day {
			j++
		}
		previous := periods[len(periods)-1]
		holdings := HoldingQuantities(txs[i:j], previous.Holdings)
		push(newHoldingPeriod(day, holdings, prices, &previous))
		i = j
	}

	previous := periods[len(periods)-1]
	push(newHoldingPeriod(to.Date, previous.Holdings, prices, &previous))
	return periods, nil
}

// TimeWeightedReturnRate chain-links the sub-period returns of the
// decomposition into a single rate: Π(1+r) − 1. Compounding the isolated
// sub-period returns cancels the effect of cashflow timing, leaving a return
// attributable purely to investment performance.
func TimeWeightedReturnRate(txs []Transaction, prices PriceTable, from, to PeriodBound) (decimal.Decimal, error) {
	periods, err := HoldingPeriods(txs, prices, from, to)
	if err != nil {
		return decimal.Decimal{}, err
	}
	one := decimal.NewFromInt(1)
	acc := one
	for _, p := range periods {
		acc = acc.Mul(one.Add(p.ReturnRate))
	}
	return acc.Sub(one), nil
}
