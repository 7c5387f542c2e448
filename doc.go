// Package stockfolio tracks an investor's stock holdings over time and
// computes performance metrics from a transaction log and historical daily
// prices fetched from a remote pricing service.
//
// The core functionalities include:
//   - Transaction Log: Recording buys and sells per stock, kept sorted by
//     date, with invariants that a holding can neither start with a sell nor
//     ever go negative.
//   - Valuation: The market value of the holdings on any date, with graceful
//     degradation when a price is missing (weekends, holidays, delistings).
//   - Time-Weighted Return: Partitioning a period into cashflow-delimited
//     sub-periods and chain-linking their returns into a rate immune to the
//     distorting effect of deposits and withdrawals.
//   - Price Source Integration: An abstract price source with a concrete
//     client for the portfolio web service, per-stock history caching, and
//     memoized per-day price resolution.
//   - Data Persistence: Encoding and decoding the transaction log in a
//     human-readable, version-controllable JSONL format.
//
// This package serves as the foundational logic for the `sfo` command-line
// tool.
package stockfolio
