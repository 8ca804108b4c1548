package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/finsense/finsense"
	"github.com/google/subcommands"
)

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	format string
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the cleaned statement in a canonical format" }
func (*exportCmd) Usage() string {
	return `fin export [-format jsonl|csv] [-o <file>]

  Parses and cleans the statement, then writes it back in a canonical
  form: dates in ISO-8601, merchants normalized, amounts as exact signed
  decimals. JSONL (one transaction per line) diffs cleanly under version
  control; csv round-trips through the ingestion.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "jsonl", "Output format: jsonl or csv.")
	f.StringVar(&c.output, "o", "", "Output file, stdout by default.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	statement, _, err := LoadStatement()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing statement: %v\n", err)
		return subcommands.ExitFailure
	}

	var w io.Writer = os.Stdout
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}

	switch c.format {
	case "jsonl":
		err = finsense.ExportJSONL(w, statement)
	case "csv":
		err = finsense.ExportCSV(w, statement)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q, want jsonl or csv.\n", c.format)
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting statement: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
