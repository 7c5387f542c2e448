package stockfolio

import (
	"strings"
	"testing"
)

func TestDecodeTransactions(t *testing.T) {
	input := `{"date":"2018-07-01","stockId":"187","quantity":20}

{"date":"2018-01-01","stockId":"187","quantity":5}
{"date":"2018-01-01","stockId":"186","quantity":7}
`
	txs, err := DecodeTransactions(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeTransactions: %v", err)
	}
	want := []Transaction{
		tx("2018-01-01", "187", 5),
		tx("2018-01-01", "186", 7),
		tx("2018-07-01", "187", 20),
	}
	if !transactionsEqual(txs, want) {
		t.Errorf("decoded %v, want %v sorted by date, same-day order preserved", txs, want)
	}
}

func TestDecodeTransactionsErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "buy 5 187\n"},
		{"missing stock id", `{"date":"2018-01-01","quantity":5}` + "\n"},
		{"missing date", `{"stockId":"187","quantity":5}` + "\n"},
		{"bad date", `{"date":"01/02/2018","stockId":"187","quantity":5}` + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTransactions(strings.NewReader(tt.input)); err == nil {
				t.Errorf("DecodeTransactions accepted %q", tt.input)
			}
		})
	}
}

func TestEncodeTransactions(t *testing.T) {
	txs := []Transaction{
		tx("2018-07-01", "187", 20),
		tx("2018-01-01", "187", 5),
	}
	var b strings.Builder
	if err := EncodeTransactions(&b, txs); err != nil {
		t.Fatalf("EncodeTransactions: %v", err)
	}
	want := `{"date":"2018-01-01","stockId":"187","quantity":5}
{"date":"2018-07-01","stockId":"187","quantity":20}
`
	if b.String() != want {
		t.Errorf("encoded:\n%s\nwant:\n%s", b.String(), want)
	}
}
