package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/google/subcommands"
)

// monitorCmd holds the flags for the 'monitor' subcommand.
type monitorCmd struct {
	top int
}

func (*monitorCmd) Name() string     { return "monitor" }
func (*monitorCmd) Synopsis() string { return "download holdings for followed 13F filers" }
func (*monitorCmd) Usage() string {
	return `folio monitor [-top <n>] [FILER ...]

  Downloads and stores the holdings table for each followed 13F filer and
  prints its largest positions. Without arguments, the [following] section
  of the configuration is used.
`
}

func (c *monitorCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.top, "top", 10, "Number of top positions to show per filer")
}

func (c *monitorCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, status := newApp()
	if status != subcommands.ExitSuccess {
		return status
	}

	// name -> filer symbol
	filers := make(map[string]string)
	if f.NArg() > 0 {
		for _, symbol := range f.Args() {
			filers[symbol] = symbol
		}
	} else {
		for name, symbol := range a.Config.Following {
			filers[name] = symbol
		}
	}
	if len(filers) == 0 {
		fmt.Fprintln(os.Stderr, "no filers given and no [following] section configured")
		return subcommands.ExitUsageError
	}

	names := make([]string, 0, len(filers))
	for name := range filers {
		names = append(names, name)
	}
	sort.Strings(names)

	failed := 0
	for _, name := range names {
		symbol := filers[name]
		table, err := a.HoldingsClient.GetHoldings(ctx, symbol)
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s (%s): %v\n", name, symbol, err)
			continue
		}
		if err := a.Store.SaveHoldings(symbol, table); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s (%s): %v\n", name, symbol, err)
			continue
		}

		fmt.Printf("%s (%s): %d positions, total %.1f%%\n", name, symbol, len(table), table.TotalPct()*100)
		for i, row := range table {
			if i >= c.top {
				break
			}
			fmt.Printf("  %-8s %6.2f%%\n", row.Symbol, row.Pct*100)
		}
		fmt.Println()
	}

	if failed == len(filers) {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
