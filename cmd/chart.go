package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/stockfolio"
	"github.com/etnz/stockfolio/renderer"
)

// chartCmd holds the flags for the 'chart' subcommand.
type chartCmd struct {
	from   string
	to     string
	metric string
	output string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "render the portfolio value or profit as a PNG chart" }
func (*chartCmd) Usage() string {
	return `sfo chart [-from <date>] [-to <date>] [-metric value|profit] [-o <file>]

  Renders a daily line chart of the portfolio market value, or of the
  time-weighted return to date, over the period.

Usage Examples:
# Value chart for 2023.
$ sfo chart -from 2023-01-01 -to 2023-12-31 -o value.png

# Profit chart since the first transaction.
$ sfo chart -metric profit
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Start of the period. Defaults to the first transaction date.")
	f.StringVar(&c.to, "to", stockfolio.Today().String(), "End of the period.")
	f.StringVar(&c.metric, "metric", "value", "Metric to chart: value or profit.")
	f.StringVar(&c.output, "o", "chart.png", "Output PNG file.")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	from, ok := p.FirstDate()
	if c.from != "" {
		from, err = stockfolio.ParseDate(c.from)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -from date: %v\n", err)
			return subcommands.ExitUsageError
		}
	} else if !ok {
		fmt.Fprintln(os.Stderr, "Error: empty portfolio and no -from date")
		return subcommands.ExitUsageError
	}

	var series []stockfolio.SeriesPoint
	var title string
	switch c.metric {
	case "value":
		series, err = p.ValueSeries(ctx, from, to)
		title = fmt.Sprintf("Portfolio value %s to %s", from, to)
	case "profit":
		series, err = p.ProfitSeries(ctx, from, to)
		title = fmt.Sprintf("Portfolio profit %s to %s", from, to)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown metric %q\n", c.metric)
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing series: %v\n", err)
		return subcommands.ExitFailure
	}

	png, err := renderer.LineChart(title, series)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering chart: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(c.output, png, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully wrote chart to %s\n", c.output)
	return subcommands.ExitSuccess
}
