package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/google/subcommands"
)

// duplicatesCmd holds the flags for the 'duplicates' subcommand.
type duplicatesCmd struct {
	threshold float64
	weights   string
}

func (*duplicatesCmd) Name() string { return "duplicates" }
func (*duplicatesCmd) Synopsis() string {
	return "companies held through more than one portfolio instrument"
}
func (*duplicatesCmd) Usage() string {
	return `folio duplicates [-threshold <pct>] [-weights w1,w2,...] [SYMBOL ...]

  Flags companies reached through multiple instruments where at least one
  source weight meets the threshold, filtering out negligible overlaps.
`
}

func (c *duplicatesCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.threshold, "threshold", 0.01, "Minimum source weight (fraction) for a duplicate to matter")
	f.StringVar(&c.weights, "weights", "", "Comma-separated portfolio weights summing to 1")
}

func (c *duplicatesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, status := newApp()
	if status != subcommands.ExitSuccess {
		return status
	}

	symbols, err := resolveSymbols(f, a)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	weights, err := parseWeights(c.weights)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	p, err := a.PortfolioService.Compose(ctx, symbols, weights)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error composing portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	duplicates := p.DuplicatePositions(c.threshold)
	if len(duplicates) == 0 {
		fmt.Println("no duplicate positions above threshold")
		return subcommands.ExitSuccess
	}

	companies := make([]string, 0, len(duplicates))
	for company := range duplicates {
		companies = append(companies, company)
	}
	sort.Strings(companies)

	for _, company := range companies {
		fmt.Printf("%s:\n", company)
		for _, s := range duplicates[company] {
			fmt.Printf("  via %-8s source=%.4f portfolio=%.4f\n", s.Source, s.SourceWeight, s.PortfolioWeight)
		}
	}
	return subcommands.ExitSuccess
}
