package stockfolio

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Transaction records a single buy or sell of a security.
//
// A positive quantity is a buy, a negative quantity a sell. There is no
// price or amount on the transaction itself: valuation always goes through
// the price source.
type Transaction struct {
	Date     Date            `json:"date"`
	StockID  string          `json:"stockId"`
	Quantity decimal.Decimal `json:"quantity"`
}

// NewTransaction creates a transaction for the given day, security and
// signed quantity.
func NewTransaction(day Date, stockID string, quantity decimal.Decimal) Transaction {
	return Transaction{Date: day, StockID: stockID, Quantity: quantity}
}

// Equal reports whether two transactions are the same trade.
func (t Transaction) Equal(o Transaction) bool {
	return t.Date == o.Date && t.StockID == o.StockID && t.Quantity.Equal(o.Quantity)
}

// stableSortTransactions sorts transactions ascending by date. The sort is
// stable: same-day transactions keep their relative order.
func stableSortTransactions(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.Before(txs[j].Date)
	})
}

// transactionsEqual reports whether two logs hold the same trades in the same order.
func transactionsEqual(a, b []Transaction) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
