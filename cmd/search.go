package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/finsense/finsense"
	"github.com/finsense/finsense/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// searchCmd holds the flags for the 'search' subcommand.
type searchCmd struct {
	k       int
	lexical bool
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "find the transactions most similar to a description" }
func (*searchCmd) Usage() string {
	return `fin search [-k <n>] [-lexical] <description>

  Finds the transactions closest to a free-text description, for when the
  exact merchant name is unknown. With a GOOGLE_API_KEY in the
  environment the statement is embedded with Gemini and matched by
  similarity; otherwise, or with -lexical, a plain token match is used.

Usage Examples:
$ fin search video streaming subscription
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.k, "k", 10, "Number of matches to return.")
	f.BoolVar(&c.lexical, "lexical", false, "Skip embeddings and match tokens only.")
}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a description to search for is required.")
		return subcommands.ExitUsageError
	}
	query := strings.Join(f.Args(), " ")

	statement, _, err := LoadStatement()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing statement: %v\n", err)
		return subcommands.ExitFailure
	}

	matches, err := c.search(ctx, statement, query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.MatchesMarkdown(matches))
	return subcommands.ExitSuccess
}

func (c *searchCmd) search(ctx context.Context, statement *finsense.Statement, query string) ([]finsense.Match, error) {
	if c.lexical || !hasAPIKey() {
		return finsense.LexicalSearch(statement, query, c.k), nil
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("initializing Gemini client: %w", err)
	}
	index, err := finsense.BuildIndex(ctx, statement, finsense.NewGeminiEmbedder(client))
	if err != nil {
		return nil, err
	}
	return index.Search(ctx, query, c.k)
}

// hasAPIKey reports whether a Gemini API key is configured.
func hasAPIKey() bool {
	return os.Getenv("GOOGLE_API_KEY") != "" || os.Getenv("GEMINI_API_KEY") != ""
}
