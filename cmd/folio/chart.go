package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// chartCmd holds the flags for the 'chart' subcommand.
type chartCmd struct {
	base string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "render an instrument's price history to a PNG" }
func (*chartCmd) Usage() string {
	return `folio chart [-base <symbol>] SYMBOL

  Renders the stored price series to a PNG under the data directory's
  charts/ folder. With -base, a second line shows the price relative to
  the base instrument (e.g. priced in gold via XAU).
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.base, "base", "", "Also draw the series relative to this symbol")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "chart requires exactly one SYMBOL argument")
		return subcommands.ExitUsageError
	}

	a, status := newApp()
	if status != subcommands.ExitSuccess {
		return status
	}

	t, err := a.TickerService.Load(ctx, f.Arg(0))
	if c.base != "" {
		t, err = a.TickerService.LoadRelative(ctx, f.Arg(0), c.base)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}

	path, err := a.TickerService.SaveChart(t)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering chart: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("chart written to %s\n", path)
	return subcommands.ExitSuccess
}
