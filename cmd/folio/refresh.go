package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/google/uuid"
)

// refreshCmd holds the flags for the 'refresh' subcommand.
type refreshCmd struct {
	holdings bool
}

func (*refreshCmd) Name() string     { return "refresh" }
func (*refreshCmd) Synopsis() string { return "fetch and merge latest prices for instruments" }
func (*refreshCmd) Usage() string {
	return `folio refresh [-holdings] [SYMBOL ...]

  Fetches daily closing prices for each symbol and merges them into the
  local series. Already-current instruments are skipped. Without symbols,
  the configured portfolio tickers are refreshed.
`
}

func (c *refreshCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.holdings, "holdings", false, "Also re-download each instrument's holdings table")
}

func (c *refreshCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, status := newApp()
	if status != subcommands.ExitSuccess {
		return status
	}

	symbols, err := resolveSymbols(f, a)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	runID := uuid.NewString()
	logger := a.Logger.With().Str("run_id", runID).Logger()
	logger.Info().Strs("symbols", symbols).Bool("holdings", c.holdings).Msg("Refresh started")

	results := a.TickerService.RefreshAll(ctx, symbols, c.holdings)

	failed := 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			fmt.Fprintf(os.Stderr, "%-8s FAILED: %v\n", r.Symbol, r.Err)
		case r.Skipped:
			fmt.Printf("%-8s current\n", r.Symbol)
		default:
			fmt.Printf("%-8s refreshed\n", r.Symbol)
		}
	}

	logger.Info().Int("total", len(results)).Int("failed", failed).Msg("Refresh finished")
	if failed == len(results) && len(results) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
