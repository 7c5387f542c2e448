package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/stockfolio"
)

// growthCmd holds the flags for the 'growth' subcommand.
type growthCmd struct {
	from       string
	to         string
	annualized bool
}

func (*growthCmd) Name() string { return "growth" }
func (*growthCmd) Synopsis() string {
	return "display the simple growth of the portfolio value over a period"
}
func (*growthCmd) Usage() string {
	return `sfo growth [-from <date>] [-to <date>] [-annualized]

  Displays the simple, non-time-weighted percentage change of the portfolio
  value over the period. Without -from, the period starts at the first
  transaction.

Usage Examples:
# Growth since the first transaction.
$ sfo growth

# Annualized growth over 2023.
$ sfo growth -from 2023-01-01 -to 2023-12-31 -annualized
`
}

func (c *growthCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Start of the period. Defaults to the first transaction date.")
	f.StringVar(&c.to, "to", stockfolio.Today().String(), "End of the period.")
	f.BoolVar(&c.annualized, "annualized", false, "Convert the growth to a yearly rate.")
}

func (c *growthCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var metric stockfolio.Metric
	if c.from == "" {
		if c.annualized {
			metric, err = p.AnnualizedGrowthToDate(ctx, to)
		} else {
			metric, err = p.GrowthToDate(ctx, to)
		}
	} else {
		var from stockfolio.Date
		from, err = stockfolio.ParseDate(c.from)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -from date: %v\n", err)
			return subcommands.ExitUsageError
		}
		if c.annualized {
			metric, err = p.AnnualizedGrowthOnPeriod(ctx, from, to)
		} else {
			metric, err = p.GrowthOnPeriod(ctx, from, to)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing growth: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(fmt.Sprintf("# Portfolio growth\n\n**%s**\n", metric))
	return subcommands.ExitSuccess
}
