package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/finsense/finsense"
	"github.com/finsense/finsense/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct {
	noSearch bool
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive chat session about the statement" }
func (*assistCmd) Usage() string {
	return `fin assist [-no-search] [first question...]

  Starts an interactive session with the AI assistant. Questions are
  answered from the statement through the same query engine as list,
  summary and breakdown; the model never sees the raw file. Requires a
  GOOGLE_API_KEY, see 'fin topic chat'.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.noSearch, "no-search", false, "Do not embed the statement; similarity search falls back to token matching.")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !hasAPIKey() {
		fmt.Fprintln(os.Stderr, "Error: assist needs a GOOGLE_API_KEY, see 'fin topic chat'.")
		return subcommands.ExitFailure
	}

	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	statement, report, err := LoadStatement()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing statement: %v\n", err)
		return subcommands.ExitFailure
	}
	if dropped := report.Dropped(); dropped > 0 {
		log.Printf("warning: %d of %d rows were dropped during cleaning, see 'fin preview'", dropped, report.TotalRows)
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	analyst := agent.NewAnalyst(statement, c.searcher(ctx, statement, client))
	advisor := agent.NewAdvisor()
	a := agent.New(os.Stdout, os.Stdin, analyst, advisor)

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// searcher builds the similarity search the analyst exposes as a tool.
// The embedding index is built lazily on the first search of the session.
func (c *assistCmd) searcher(ctx context.Context, statement *finsense.Statement, client *genai.Client) agent.Searcher {
	if c.noSearch {
		return func(_ context.Context, query string, k int) ([]finsense.Match, error) {
			return finsense.LexicalSearch(statement, query, k), nil
		}
	}

	var index *finsense.Index
	return func(ctx context.Context, query string, k int) ([]finsense.Match, error) {
		if index == nil {
			var err error
			index, err = finsense.BuildIndex(ctx, statement, finsense.NewGeminiEmbedder(client))
			if err != nil {
				return nil, err
			}
		}
		return index.Search(ctx, query, k)
	}
}
