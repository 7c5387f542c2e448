package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/etnz/stockfolio"
)

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	date     string
	stockID  string
	quantity string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a buy or sell transaction" }
func (*addCmd) Usage() string {
	return `sfo add -s <stock-id> -q <quantity> [-d <date>]

  Records a transaction in the log. A positive quantity is a buy, a negative
  quantity a sell. Selling more than the owned quantity is rejected. A stock
  id seen for the first time is checked against the price service before the
  transaction is accepted.

Usage Examples:
# Buy 10 units of stock 187 today.
$ sfo add -s 187 -q 10

# Sell 5 units on a past date.
$ sfo add -s 187 -q -5 -d 2023-06-01
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", stockfolio.Today().String(), "Date of the transaction.")
	f.StringVar(&c.stockID, "s", "", "Stock identifier at the price service.")
	f.StringVar(&c.quantity, "q", "", "Signed quantity: positive buys, negative sells.")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.stockID == "" || c.quantity == "" {
		fmt.Fprintln(os.Stderr, "Error: -s and -q are required")
		return subcommands.ExitUsageError
	}
	on, err := stockfolio.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	quantity, err := decimal.NewFromString(c.quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing quantity: %v\n", err)
		return subcommands.ExitUsageError
	}

	txs, err := decodeTransactions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading transactions: %v\n", err)
		return subcommands.ExitFailure
	}

	p := stockfolio.NewPortfolio(api(), txs)
	if err := p.AddTransaction(ctx, on, c.stockID, quantity); err != nil {
		fmt.Fprintf(os.Stderr, "Error adding transaction: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := encodeTransactions(p.Transactions()); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing transactions: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully recorded transaction in %s\n", *transactionsFile)
	return subcommands.ExitSuccess
}

// delCmd holds the flags for the 'del' subcommand.
type delCmd struct{}

func (*delCmd) Name() string     { return "del" }
func (*delCmd) Synopsis() string { return "delete a transaction by its index" }
func (*delCmd) Usage() string {
	return `sfo del <index>

  Deletes the transaction at the given index in the date-sorted log (see
  'sfo log' for indexes). The deletion is rejected when it would leave a
  holding starting with a sell or drive a holding quantity negative.
`
}

func (*delCmd) SetFlags(*flag.FlagSet) {}

func (c *delCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one index argument")
		return subcommands.ExitUsageError
	}
	index, err := strconv.Atoi(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing index: %v\n", err)
		return subcommands.ExitUsageError
	}

	txs, err := decodeTransactions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading transactions: %v\n", err)
		return subcommands.ExitFailure
	}

	p := stockfolio.NewPortfolio(api(), txs)
	if err := p.DeleteTransaction(index); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting transaction: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := encodeTransactions(p.Transactions()); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing transactions: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully deleted transaction %d from %s\n", index, *transactionsFile)
	return subcommands.ExitSuccess
}

// logCmd holds the flags for the 'log' subcommand.
type logCmd struct{}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "list the transactions, sorted by date" }
func (*logCmd) Usage() string {
	return `sfo log

  Lists every transaction in the log with its index, sorted ascending by
  date.
`
}

func (*logCmd) SetFlags(*flag.FlagSet) {}

func (c *logCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txs, err := decodeTransactions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading transactions: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(txs) == 0 {
		fmt.Println("No transactions.")
		return subcommands.ExitSuccess
	}

	var b strings.Builder
	fmt.Fprintln(&b, "| # | Date | Stock | Quantity |")
	fmt.Fprintln(&b, "|---|------|-------|----------|")
	for i, tx := range txs {
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", i, tx.Date, tx.StockID, tx.Quantity)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
