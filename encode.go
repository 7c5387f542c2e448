package stockfolio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// This file persists a transaction log as JSONL, one transaction per line,
// so the log stays human-readable and git-friendly.

// DecodeTransactions reads a JSONL stream of transactions and returns them
// sorted ascending by date. Empty lines are skipped. The sort is stable:
// same-day transactions keep their order in the stream.
func DecodeTransactions(r io.Reader) ([]Transaction, error) {
	var txs []Transaction
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		txt := scanner.Bytes()
		if len(strings.TrimSpace(string(txt))) == 0 {
			continue
		}
		var tx Transaction
		if err := json.Unmarshal(txt, &tx); err != nil {
			return nil, fmt.Errorf("parse error on line %d %q: %w", line, string(txt), err)
		}
		if tx.StockID == "" {
			return nil, fmt.Errorf("parse error on line %d: missing the property %q", line, "stockId")
		}
		if tx.Date.IsZero() {
			return nil, fmt.Errorf("parse error on line %d: missing the property %q", line, "date")
		}
		txs = append(txs, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading transactions: %w", err)
	}
	stableSortTransactions(txs)
	return txs, nil
}

// EncodeTransaction marshals a single transaction and writes it to the
// writer followed by a newline.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("cannot marshal transaction: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("cannot write transaction: %w", err)
	}
	return nil
}

// EncodeTransactions writes a transaction log in JSONL format, sorted
// ascending by date. The sort is stable.
func EncodeTransactions(w io.Writer, txs []Transaction) error {
	sorted := make([]Transaction, len(txs))
	copy(sorted, txs)
	stableSortTransactions(sorted)
	for _, tx := range sorted {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
