package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/subcommands"
)

// exposureCmd holds the flags for the 'exposure' subcommand.
type exposureCmd struct {
	limit   int
	symbol  string
	weights string
}

func (*exposureCmd) Name() string     { return "exposure" }
func (*exposureCmd) Synopsis() string { return "company-level look-through exposure of a portfolio" }
func (*exposureCmd) Usage() string {
	return `folio exposure [-limit <n>] [-symbol <company>] [-weights w1,w2,...] [SYMBOL ...]

  Expands fund holdings one level deep and ranks company-level exposure.
  With -symbol, prints only that company's total exposure. Weights default
  to an equal split. Without symbols, the configured portfolio is used.
`
}

func (c *exposureCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "limit", 20, "Number of top exposures to show")
	f.StringVar(&c.symbol, "symbol", "", "Show only this company's exposure")
	f.StringVar(&c.weights, "weights", "", "Comma-separated portfolio weights summing to 1")
}

// parseWeights converts "0.6,0.4" into a weights slice, nil for empty.
func parseWeights(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	weights := make([]float64, 0, len(parts))
	for _, p := range parts {
		w, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q: %w", p, err)
		}
		weights = append(weights, w)
	}
	return weights, nil
}

func (c *exposureCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	if c.symbol != "" {
		exposure, err := p.Exposure(c.symbol)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("%s exposure: %.4f\n", strings.ToUpper(c.symbol), exposure)
		return subcommands.ExitSuccess
	}

	fmt.Printf("Portfolio: %s\n\n", p)
	for _, e := range p.MaxExposure(c.limit) {
		sources := p.CompanyPositions()[e.Symbol]
		fmt.Printf("%-8s %7.4f  (%d source", e.Symbol, e.Exposure, len(sources))
		if len(sources) != 1 {
			fmt.Print("s")
		}
		fmt.Println(")")
	}
	return subcommands.ExitSuccess
}
