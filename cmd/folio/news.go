package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// newsCmd holds the flags for the 'news' subcommand.
type newsCmd struct {
	limit     int
	sentiment bool
}

func (*newsCmd) Name() string     { return "news" }
func (*newsCmd) Synopsis() string { return "recent market or company news" }
func (*newsCmd) Usage() string {
	return `folio news [-limit <n>] [-sentiment] [SYMBOL]

  Shows recent company news for a symbol, or general market news without
  one. With -sentiment, also prints the company's news sentiment score.
`
}

func (c *newsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "limit", 10, "Maximum number of articles")
	f.BoolVar(&c.sentiment, "sentiment", false, "Also print the news sentiment score (requires a symbol)")
}

func (c *newsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol := ""
	if f.NArg() > 0 {
		symbol = f.Arg(0)
	}
	if c.sentiment && symbol == "" {
		fmt.Fprintln(os.Stderr, "-sentiment requires a symbol")
		return subcommands.ExitUsageError
	}

	a, status := newApp()
	if status != subcommands.ExitSuccess {
		return status
	}

	items, err := a.NewsClient.GetNews(ctx, symbol, c.limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching news: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, item := range items {
		fmt.Printf("%s  [%s] %s\n", item.PublishedAt.Format("2006-01-02 15:04"), item.Source, item.Headline)
		if item.URL != "" {
			fmt.Printf("    %s\n", item.URL)
		}
	}
	if len(items) == 0 {
		fmt.Println("no news")
	}

	if c.sentiment {
		score, err := a.NewsClient.GetSentiment(ctx, symbol)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching sentiment: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("\nSentiment score: %.2f (1.0 = bullish)\n", score)
	}
	return subcommands.ExitSuccess
}
