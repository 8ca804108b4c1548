package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/finsense/finsense/renderer"
	"github.com/google/subcommands"
)

// previewCmd holds the flags for the 'preview' subcommand.
type previewCmd struct {
	rows int
}

func (*previewCmd) Name() string     { return "preview" }
func (*previewCmd) Synopsis() string { return "parse the statement and show its first rows" }
func (*previewCmd) Usage() string {
	return `fin preview [-n <rows>]

  Parses and cleans the statement, reports how many rows were imported or
  dropped, and shows the first transactions. This is the place to check
  that a fresh export is understood before asking questions about it.
`
}

func (c *previewCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.rows, "n", 10, "Number of transactions to show.")
}

func (c *previewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	statement, report, err := LoadStatement()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing statement: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.PreviewMarkdown(statement, report, c.rows))
	return subcommands.ExitSuccess
}
