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

// breakdownCmd holds the flags for the 'breakdown' subcommand.
type breakdownCmd struct {
	filterFlags
	by string
}

func (*breakdownCmd) Name() string     { return "breakdown" }
func (*breakdownCmd) Synopsis() string { return "group transactions by merchant, category or month" }
func (*breakdownCmd) Usage() string {
	return `fin breakdown [filters] [-by <key>]

  Groups the matching transactions and shows count, money in, money out
  and net per group. Merchants and categories come out by decreasing
  absolute total, months chronologically.

Usage Examples:
# Where did the money go this quarter?
$ fin breakdown -p quarter -sign debits

# Net flow per month.
$ fin breakdown -by month
`
}

func (c *breakdownCmd) SetFlags(f *flag.FlagSet) {
	c.filterFlags.SetFlags(f)
	f.StringVar(&c.by, "by", "merchant", "Group key: merchant, category or month.")
}

func (c *breakdownCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	statement, _, err := LoadStatement()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing statement: %v\n", err)
		return subcommands.ExitFailure
	}

	q, err := c.Query(statementCurrency(statement))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	by, err := finsense.ParseGroupBy(c.by)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	groups := finsense.GroupTransactions(statement.Select(q), by)
	printMarkdown(renderer.GroupsMarkdown(groups, by))
	return subcommands.ExitSuccess
}
