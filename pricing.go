package stockfolio

import (
	"context"

	"github.com/shopspring/decimal"
)

// StockInfo holds the display metadata of a security.
type StockInfo struct {
	Name   string
	Symbol string
}

// PricePoint is a single close price on a given day.
type PricePoint struct {
	Date  Date            `json:"date"`
	Price decimal.Decimal `json:"price"`
}

// HistoryQuery selects which part of a security's price history to fetch.
//
// When On is set the query targets a single day and returns at most one
// point. Otherwise From and To bound the range; a zero From means "from the
// beginning" and a zero To means "up to now". Results may arrive unsorted:
// ordering them is the caller's responsibility.
type HistoryQuery struct {
	On   Date
	From Date
	To   Date
}

// PriceSource is the remote pricing service boundary.
//
// Implementations are expected to honor context cancellation and deadlines;
// the engine performs no retry of its own, and propagates source errors
// unmodified.
type PriceSource interface {
	// Info returns the display metadata for a security.
	Info(ctx context.Context, stockID string) (StockInfo, error)
	// History returns close prices for a security, selected by the query.
	History(ctx context.Context, stockID string, q HistoryQuery) ([]PricePoint, error)
}
