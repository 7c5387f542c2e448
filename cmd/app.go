// Package cmd implements the CLI application to track a stock portfolio.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"

	"github.com/etnz/stockfolio"
)

// Register registers every subcommand on the commander.
func Register(c *subcommands.Commander) {
	c.Register(&valueCmd{}, "reports")
	c.Register(&growthCmd{}, "reports")
	c.Register(&profitCmd{}, "reports")
	c.Register(&chartCmd{}, "reports")

	c.Register(&addCmd{}, "transactions")
	c.Register(&delCmd{}, "transactions")
	c.Register(&logCmd{}, "transactions")

	c.Register(&fundsCmd{}, "discovery")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var transactionsFile = flag.String("transactions-file", "transactions.jsonl", "Path to the transactions file (JSONL format)")

// config is read from the environment, optionally seeded from a .env file.
type config struct {
	APIURL     string        `env:"API_URL" envDefault:"http://localhost:3000"`
	APITimeout time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	Currency   string        `env:"CURRENCY" envDefault:"CLP"`
	LogLevel   slog.Level    `env:"LOG_LEVEL" envDefault:"info"`
}

var loadConfig = sync.OnceValue(func() config {
	_ = godotenv.Load(".env")
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse config error: %s", err)
	}
	slog.SetLogLoggerLevel(cfg.LogLevel)
	return cfg
})

// api returns the web service client configured from the environment.
func api() *stockfolio.WebAPI {
	cfg := loadConfig()
	return stockfolio.NewWebAPI(cfg.APIURL, cfg.APITimeout)
}

// decodeTransactions loads the transactions file. A missing file is an
// empty log, not an error.
func decodeTransactions() ([]stockfolio.Transaction, error) {
	f, err := os.Open(*transactionsFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, transactions file does not exist, starting from an empty log")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open %q for reading: %w", *transactionsFile, err)
	}
	defer f.Close()
	return stockfolio.DecodeTransactions(f)
}

// encodeTransactions writes the whole transaction log back to the file.
func encodeTransactions(txs []stockfolio.Transaction) error {
	f, err := os.Create(*transactionsFile)
	if err != nil {
		return fmt.Errorf("cannot open %q for writing: %w", *transactionsFile, err)
	}
	defer f.Close()
	return stockfolio.EncodeTransactions(f, txs)
}

// loadPortfolio builds and initializes the portfolio from the transactions
// file and the configured web service.
func loadPortfolio(ctx context.Context) (*stockfolio.Portfolio, error) {
	txs, err := decodeTransactions()
	if err != nil {
		return nil, err
	}
	p := stockfolio.NewPortfolio(api(), txs)
	if err := p.Init(ctx); err != nil {
		return nil, err
	}
	return p, nil
}
