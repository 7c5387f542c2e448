package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/etnz/stockfolio"
)

// fundsCmd holds the flags for the 'funds' subcommand.
type fundsCmd struct {
	fundID string
}

func (*fundsCmd) Name() string     { return "funds" }
func (*fundsCmd) Synopsis() string { return "list investable funds and their securities" }
func (*fundsCmd) Usage() string {
	return `sfo funds [-id <fund-id>]

  Lists the funds available at the price service, in the configured
  currency. With -id, lists the securities composing that fund and the
  stock ids to use in transactions.
`
}

func (c *fundsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.fundID, "id", "", "Fund to detail. Lists all funds by default.")
}

func (c *fundsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	service := stockfolio.NewFundsService(api(), loadConfig().Currency)

	var b strings.Builder
	if c.fundID == "" {
		funds, err := service.Funds(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing funds: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintln(&b, "| Fund | Name | Currency |")
		fmt.Fprintln(&b, "|------|------|----------|")
		for _, fund := range funds {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", fund.ID, fund.Name, fund.Currency)
		}
	} else {
		stocks, err := service.FundStocks(ctx, c.fundID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing fund securities: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintln(&b, "| Stock | Name | Symbol |")
		fmt.Fprintln(&b, "|-------|------|--------|")
		for _, s := range stocks {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", s.ID, s.Name, s.Symbol)
		}
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
