package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/finsense/finsense"
	"github.com/finsense/finsense/renderer"
	"github.com/google/subcommands"
)

// listCmd holds the flags for the 'list' subcommand.
type listCmd struct {
	filterFlags
	sort  string
	desc  bool
	limit int
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the transactions matching the given filters" }
func (*listCmd) Usage() string {
	return `fin list [filters] [-sort <key>] [-desc] [-limit <n>]

  Lists the transactions matching the filters as a table. See 'fin topic
  queries' for the filters shared with breakdown and the assistant.

Usage Examples:
# July's debits over 50, largest first.
$ fin list -p month -d 2025-07-15 -sign debits -max -50 -sort amount

# Every netflix charge.
$ fin list -merchant netflix
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	c.filterFlags.SetFlags(f)
	f.StringVar(&c.sort, "sort", "date", "Order of the rows: date, amount or merchant.")
	f.BoolVar(&c.desc, "desc", false, "Reverse the order.")
	f.IntVar(&c.limit, "limit", 0, "Maximum number of rows, 0 for all.")
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	statement, _, err := LoadStatement()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing statement: %v\n", err)
		return subcommands.ExitFailure
	}

	q, err := c.query(statement)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	printMarkdown(renderer.TransactionsMarkdown(statement.Select(q)))
	return subcommands.ExitSuccess
}

// query builds the full query from the filter and ordering flags.
func (c *listCmd) query(statement *finsense.Statement) (finsense.Query, error) {
	q, err := c.Query(statementCurrency(statement))
	if err != nil {
		return q, err
	}
	if q.Sort, err = finsense.ParseSortKey(c.sort); err != nil {
		return q, err
	}
	q.Desc = c.desc
	q.Limit = c.limit
	return q, nil
}

// statementCurrency returns the currency amount bounds are parsed in.
func statementCurrency(s *finsense.Statement) string {
	if currencies := s.Currencies(); len(currencies) > 0 {
		return currencies[0]
	}
	return *currencyFlag
}
