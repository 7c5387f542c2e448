package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/stockfolio"
)

// profitCmd holds the flags for the 'profit' subcommand.
type profitCmd struct {
	from       string
	to         string
	annualized bool
}

func (*profitCmd) Name() string { return "profit" }
func (*profitCmd) Synopsis() string {
	return "display the time-weighted return of the portfolio over a period"
}
func (*profitCmd) Usage() string {
	return `sfo profit [-from <date>] [-to <date>] [-annualized]

  Displays the time-weighted return of the portfolio over the period, a
  return measure immune to the timing and size of buys and sells. Without
  -from, the period starts at the first transaction.

Usage Examples:
# Time-weighted return since the first transaction.
$ sfo profit

# Annualized return over 2023.
$ sfo profit -from 2023-01-01 -to 2023-12-31 -annualized
`
}

func (c *profitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Start of the period. Defaults to the first transaction date.")
	f.StringVar(&c.to, "to", stockfolio.Today().String(), "End of the period.")
	f.BoolVar(&c.annualized, "annualized", false, "Convert the return to a yearly rate.")
}

func (c *profitCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	to, err := stockfolio.ParseDate(c.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -to date: %v\n", err)
		return subcommands.ExitUsageError
	}

	p, err := loadPortfolio(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	var out string
	if c.annualized {
		var metric stockfolio.Metric
		if c.from == "" {
			metric, err = p.AnnualizedProfitToDate(ctx, to)
		} else {
			var from stockfolio.Date
			from, err = stockfolio.ParseDate(c.from)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing -from date: %v\n", err)
				return subcommands.ExitUsageError
			}
			metric, err = p.AnnualizedProfitOnPeriod(ctx, from, to)
		}
		out = metric.String()
	} else {
		var profit stockfolio.Percent
		if c.from == "" {
			profit, err = p.ProfitToDate(ctx, to)
		} else {
			var from stockfolio.Date
			from, err = stockfolio.ParseDate(c.from)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing -from date: %v\n", err)
				return subcommands.ExitUsageError
			}
			profit, err = p.ProfitOnPeriod(ctx, from, to)
		}
		out = profit.String()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing profit: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(fmt.Sprintf("# Portfolio profit\n\n**%s**\n", out))
	return subcommands.ExitSuccess
}
