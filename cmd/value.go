package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/stockfolio"
)

// valueCmd holds the flags for the 'value' subcommand.
type valueCmd struct {
	date string
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "display the portfolio market value on a date" }
func (*valueCmd) Usage() string {
	return `sfo value [-d <date>]

  Displays the market value of the portfolio holdings on the given date.

Usage Examples:
# Value as of today.
$ sfo value

# Value at the end of 2023.
$ sfo value -d 2023-12-31
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", stockfolio.Today().String(), "Date for the valuation.")
}

func (c *valueCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := stockfolio.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	p, err := loadPortfolio(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	value, err := p.ValueOnDate(ctx, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing value: %v\n", err)
		return subcommands.ExitFailure
	}

	money := stockfolio.M(value, loadConfig().Currency)
	printMarkdown(fmt.Sprintf("# Portfolio value on %s\n\n**%s**\n", on, money))
	return subcommands.ExitSuccess
}
