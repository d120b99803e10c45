package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/bobmcallan/folio/internal/metrics"
	"github.com/bobmcallan/folio/internal/models"
)

// metricCmd holds the flags for the 'metric' subcommand.
type metricCmd struct {
	average bool
	end     string
	base    string
}

func (*metricCmd) Name() string     { return "metric" }
func (*metricCmd) Synopsis() string { return "evaluate a return metric for an instrument" }
func (*metricCmd) Usage() string {
	return `folio metric [-avg] [-end <date>] [-base <symbol>] SYMBOL METRIC

  Evaluates a metric name such as "trailing/1-year", "rolling/6-month" or
  "rolling/1-year/a" (annualized) against the instrument's stored series.
  With -base, the series is first re-priced relative to the base symbol.
`
}

func (c *metricCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.average, "avg", false, "Collapse a rolling distribution to its mean")
	f.StringVar(&c.end, "end", "", "Trailing-return end date (YYYY-MM-DD, default today)")
	f.StringVar(&c.base, "base", "", "Price the instrument relative to this symbol")
}

func (c *metricCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "metric requires exactly SYMBOL and METRIC arguments")
		return subcommands.ExitUsageError
	}
	symbol, name := f.Arg(0), f.Arg(1)

	a, status := newApp()
	if status != subcommands.ExitSuccess {
		return status
	}

	opts := metrics.Options{Average: c.average}
	if c.end != "" {
		end, err := time.Parse(models.DateFormat, c.end)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
			return subcommands.ExitUsageError
		}
		opts.End = end
	}

	var series models.PriceSeries
	if c.base != "" {
		t, err := a.TickerService.LoadRelative(ctx, symbol, c.base)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading %s relative to %s: %v\n", symbol, c.base, err)
			return subcommands.ExitFailure
		}
		series = t.Relative
	} else {
		t, err := a.TickerService.Load(ctx, symbol)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", symbol, err)
			return subcommands.ExitFailure
		}
		series = t.Series
	}

	result, err := a.Metrics.Compute(series, name, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing %s for %s: %v\n", name, symbol, err)
		return subcommands.ExitFailure
	}

	switch len(result.Values) {
	case 0:
		fmt.Println("empty distribution (series shorter than the period)")
	case 1:
		fmt.Printf("%s %s = %.6f\n", models.CanonicalSymbol(symbol), name, result.Values[0])
	default:
		fmt.Printf("%s %s: n=%d mean=%.6f std=%.6f\n",
			models.CanonicalSymbol(symbol), name, len(result.Values), result.Mean(), result.Std())
	}
	return subcommands.ExitSuccess
}
