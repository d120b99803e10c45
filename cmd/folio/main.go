// Command folio tracks instrument prices, expands fund holdings, and runs
// portfolio analytics from the command line.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/bobmcallan/folio/internal/app"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	commander.Register(&refreshCmd{}, "data")
	commander.Register(&chartCmd{}, "data")
	commander.Register(&monitorCmd{}, "data")

	commander.Register(&metricCmd{}, "analytics")
	commander.Register(&exposureCmd{}, "analytics")
	commander.Register(&duplicatesCmd{}, "analytics")
	commander.Register(&simulateCmd{}, "analytics")

	commander.Register(&newsCmd{}, "research")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// configFile is shared by every subcommand; empty falls back to
// FOLIO_CONFIG and then ./folio.toml.
var configFile = flag.String("config", "", "Path to the folio.toml configuration file")

// newApp initializes the application core, reporting failures in the
// subcommands convention.
func newApp() (*app.App, subcommands.ExitStatus) {
	a, err := app.NewApp(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing folio: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	return a, subcommands.ExitSuccess
}

// resolveSymbols returns the positional symbols, or the configured default
// portfolio when none were given.
func resolveSymbols(f *flag.FlagSet, a *app.App) ([]string, error) {
	if f.NArg() > 0 {
		return f.Args(), nil
	}
	symbols := a.DefaultSymbols()
	if len(symbols) == 0 {
		return nil, fmt.Errorf("no symbols given and no portfolio.tickers configured")
	}
	return symbols, nil
}
