package agent

import (
	"context"
	"fmt"

	"github.com/finsense/finsense"
	"github.com/finsense/finsense/docs"
	"github.com/finsense/finsense/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// newFacilitator creates the expert in charge of the conversation.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclarations(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a financial assistant in charge of the conversation. The user has
			uploaded one bank statement and wants clear, accurate answers about it.

			Learn about the experts' skills from the Tools and ask them questions.
			They are at your service and 100% dedicated to you, they keep context of
			your previous questions.

			The Analyst is the only one who can see the statement: route every
			question about transactions, amounts, merchants or dates through it.
			Never invent figures; every number in your answer must come from an
			expert.

			Answer in markdown, keep tables small, and state amounts with their
			currency.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAdvisor creates an expert for general finance questions, grounded
// with Google Search. Useful for "what is this merchant?" follow-ups.
func NewAdvisor() *Expert {
	return &Expert{
		Name: "Advisor",
		Description: `This is a general finance advisor. It can search the web for
		anything related to merchants, banks, fees or financial products.
		Ask the Advisor whenever you need recent or grounding information
		that is not on the statement itself.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a finance advisor. You can search and find about anything
			related to merchants, financial institutions, products or fees. You
			leverage Google Search to ground your assertions. You never speculate
			about the content of the user's statement: that is the Analyst's job.
				`}}},
		},
	}
}

// Searcher finds the transactions most similar to a free-text query.
type Searcher func(ctx context.Context, query string, k int) ([]finsense.Match, error)

// NewAnalyst creates the expert in charge of the uploaded statement. All
// its answers are computed by the query engine through function tools;
// search may be nil when similarity search is unavailable.
func NewAnalyst(s *finsense.Statement, search Searcher) *Expert {
	lib := analystTools(s, search)
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. It is the only expert that can read the
		user's bank statement. It can summarize the statement, list and filter
		transactions, compute totals and averages, break spending down by
		merchant, category or month, and find transactions similar to a
		description.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclarations(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an analyst in charge of the user's bank statement. You know
				how to use the Tools to extract the relevant figures. You are part of
				a team of experts; pardon their approximative language and figure out
				what they meant.

				Negative amounts are money out (debits), positive amounts are money
				in (credits). Never estimate: every figure you state must come from a
				tool response. When a tool returns a markdown table, you may quote it
				as is.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

func analystTools(s *finsense.Statement, search Searcher) []Function {
	tools := []Function{
		summaryTool(s),
		listTool(s),
		aggregateTool(s),
		breakdownTool(s),
	}
	if search != nil {
		tools = append(tools, searchTool(search))
	}
	return tools
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// filterProperties declares the filter arguments shared by the list,
// aggregate and breakdown tools.
func filterProperties() map[string]*genai.Schema {
	return map[string]*genai.Schema{
		"from": {
			Type: genai.TypeString,
			Description: `First date to include, inclusive, format YYYY-MM-DD.
			Omit to start at the beginning of the statement.

			` + must(docs.GetTopic("dates")),
		},
		"to": {
			Type:        genai.TypeString,
			Description: "Last date to include, inclusive, format YYYY-MM-DD. Omit to go to the end of the statement.",
		},
		"merchant": {
			Type:        genai.TypeString,
			Description: "Keep only transactions whose merchant or description contains this text, case-insensitive.",
		},
		"category": {
			Type:        genai.TypeString,
			Description: "Keep only transactions with this category, case-insensitive.",
		},
		"sign": {
			Type:        genai.TypeString,
			Description: "Direction filter: 'all' (default), 'debits' for money out, 'credits' for money in.",
		},
		"min": {
			Type:        genai.TypeNumber,
			Description: "Keep only transactions with a signed amount greater than or equal to this value.",
		},
		"max": {
			Type:        genai.TypeNumber,
			Description: "Keep only transactions with a signed amount less than or equal to this value.",
		},
	}
}

// parseQuery builds a structured query from tool arguments.
func parseQuery(s *finsense.Statement, args map[string]any) (finsense.Query, error) {
	var q finsense.Query

	if v, ok := args["from"].(string); ok && v != "" {
		from, err := finsense.ParseDate(v)
		if err != nil {
			return q, fmt.Errorf("argument 'from': %w", err)
		}
		q.Range.From = from
	}
	if v, ok := args["to"].(string); ok && v != "" {
		to, err := finsense.ParseDate(v)
		if err != nil {
			return q, fmt.Errorf("argument 'to': %w", err)
		}
		q.Range.To = to
	}
	if v, ok := args["merchant"].(string); ok {
		q.Merchant = v
	}
	if v, ok := args["category"].(string); ok {
		q.Category = v
	}
	if v, ok := args["sign"].(string); ok {
		sign, err := finsense.ParseSign(v)
		if err != nil {
			return q, err
		}
		q.Sign = sign
	}

	currency := statementCurrency(s)
	if v, ok := args["min"].(float64); ok {
		m := finsense.M(v, currency)
		q.Min = &m
	}
	if v, ok := args["max"].(float64); ok {
		m := finsense.M(v, currency)
		q.Max = &m
	}
	return q, nil
}

func statementCurrency(s *finsense.Statement) string {
	if currencies := s.Currencies(); len(currencies) > 0 {
		return currencies[0]
	}
	return ""
}

func okResponse(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": output,
		},
	}
}

func errResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func summaryTool(s *finsense.Statement) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "StatementSummary",
			Description: `StatementSummary describes the whole statement: number of
			transactions, date range, money in, money out, net, average, extremes,
			and the net flow per month.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown summary report of the statement.",
			},
		},
		Body: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			return okResponse(id, "StatementSummary", renderer.SummaryMarkdown(s.Summarize()))
		},
	}
}

func listTool(s *finsense.Statement) Function {
	props := filterProperties()
	props["sort"] = &genai.Schema{
		Type:        genai.TypeString,
		Description: "Order of the rows: 'date' (default), 'amount' or 'merchant'.",
	}
	props["desc"] = &genai.Schema{
		Type:        genai.TypeBoolean,
		Description: "Reverse the order.",
	}
	props["limit"] = &genai.Schema{
		Type:        genai.TypeInteger,
		Description: "Maximum number of rows to return. 20 by default; keep it small.",
	}
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "ListTransactions",
			Description: `ListTransactions returns the transactions matching the given
			filters, as a markdown table with date, merchant, description and
			amount.`,
			Parameters: &genai.Schema{Type: genai.TypeObject, Properties: props},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the matching transactions.",
			},
		},
		Body: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			q, err := parseQuery(s, args)
			if err != nil {
				return errResponse(id, "ListTransactions", err)
			}
			if v, ok := args["sort"].(string); ok {
				if q.Sort, err = finsense.ParseSortKey(v); err != nil {
					return errResponse(id, "ListTransactions", err)
				}
			}
			q.Desc, _ = args["desc"].(bool)
			q.Limit = 20
			if v, ok := args["limit"].(float64); ok && v > 0 {
				q.Limit = int(v)
			}
			return okResponse(id, "ListTransactions", renderer.TransactionsMarkdown(s.Select(q)))
		},
	}
}

func aggregateTool(s *finsense.Statement) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Aggregate",
			Description: `Aggregate computes count, sum, average, minimum and maximum
			over the transactions matching the given filters. Use it for "how
			much", "how many" and "on average" questions.`,
			Parameters: &genai.Schema{Type: genai.TypeObject, Properties: filterProperties()},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table with the aggregates, one row per currency.",
			},
		},
		Body: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			q, err := parseQuery(s, args)
			if err != nil {
				return errResponse(id, "Aggregate", err)
			}
			return okResponse(id, "Aggregate", renderer.AggregatesMarkdown(finsense.Aggregate(s.Select(q))))
		},
	}
}

func breakdownTool(s *finsense.Statement) Function {
	props := filterProperties()
	props["by"] = &genai.Schema{
		Type:        genai.TypeString,
		Description: "Group key: 'merchant' (default), 'category' or 'month'.",
	}
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Breakdown",
			Description: `Breakdown groups the transactions matching the given filters
			by merchant, category or month, with count, money in, money out and net
			per group. Use it for "where did my money go" questions.`,
			Parameters: &genai.Schema{Type: genai.TypeObject, Properties: props},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table with one row per group.",
			},
		},
		Body: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			q, err := parseQuery(s, args)
			if err != nil {
				return errResponse(id, "Breakdown", err)
			}
			by := finsense.GroupByMerchant
			if v, ok := args["by"].(string); ok {
				if by, err = finsense.ParseGroupBy(v); err != nil {
					return errResponse(id, "Breakdown", err)
				}
			}
			return okResponse(id, "Breakdown", renderer.GroupsMarkdown(finsense.GroupTransactions(s.Select(q), by), by))
		},
	}
}

func searchTool(search Searcher) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "SearchTransactions",
			Description: `SearchTransactions finds the transactions most similar to a
			free-text description, even when the exact merchant name is unknown.
			Use it when the user describes a purchase rather than naming it.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"query": {
						Type:        genai.TypeString,
						Description: "Free-text description of the transactions to find.",
					},
					"k": {
						Type:        genai.TypeInteger,
						Description: "Number of matches to return, 10 by default.",
					},
				},
				Required: []string{"query"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the closest transactions with their scores.",
			},
		},
		Body: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			query, ok := args["query"].(string)
			if !ok || query == "" {
				return errResponse(id, "SearchTransactions", fmt.Errorf("argument 'query' is required"))
			}
			k := 10
			if v, ok := args["k"].(float64); ok && v > 0 {
				k = int(v)
			}
			matches, err := search(ctx, query, k)
			if err != nil {
				return errResponse(id, "SearchTransactions", err)
			}
			return okResponse(id, "SearchTransactions", renderer.MatchesMarkdown(matches))
		},
	}
}
