package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/finsense/finsense/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display a summary of the whole statement" }
func (*summaryCmd) Usage() string {
	return `fin summary

  Displays a summary of the statement: date range, money in and out, net,
  average, extremes, and the net flow per month.
`
}

func (*summaryCmd) SetFlags(_ *flag.FlagSet) {}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	statement, _, err := LoadStatement()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing statement: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.SummaryMarkdown(statement.Summarize()))
	return subcommands.ExitSuccess
}
