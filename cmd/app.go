// Package cmd implements the CLI application to explore a bank statement.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/finsense/finsense"
	"github.com/google/subcommands"
)

// Commands lists every subcommand of the application. A main package
// registers them all and executes the user-selected one.
var Commands = []subcommands.Command{
	&previewCmd{},
	&summaryCmd{},
	&listCmd{},
	&breakdownCmd{},
	&searchCmd{},
	&exportCmd{},
	&assistCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok
// to use global variables.

var statementFile = flag.String("f", "statement.csv", "Path to the statement file (CSV, or a JSON/JSONL export)")
var currencyFlag = flag.String("currency", "USD", "Currency assumed when the statement has no currency column")
var rowsPath = flag.String("rows", "", "JSONPath locating the transaction array in a JSON statement")

// LoadStatement parses the statement file named by the -f flag. The file
// is the session: it is reparsed on every invocation, nothing is stored.
func LoadStatement() (*finsense.Statement, *finsense.IngestReport, error) {
	f, err := os.Open(*statementFile)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open statement %q: %w", *statementFile, err)
	}
	defer f.Close()

	source := filepath.Base(*statementFile)
	opts := finsense.ParseOptions{Currency: *currencyFlag}

	switch strings.ToLower(filepath.Ext(*statementFile)) {
	case ".json":
		return finsense.ParseJSON(f, source, opts, *rowsPath)
	case ".jsonl":
		s, err := finsense.ImportJSONL(f, source)
		if err != nil {
			return nil, nil, err
		}
		return s, &finsense.IngestReport{TotalRows: s.Len(), Imported: s.Len()}, nil
	default:
		return finsense.ParseCSV(f, source, opts)
	}
}

// printMarkdown renders markdown to stdout through glamour. When stdout
// is not a terminal (pipes, tests) the raw markdown is written instead.
func printMarkdown(md string) {
	if stat, err := os.Stdout.Stat(); err != nil || stat.Mode()&os.ModeCharDevice == 0 {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
