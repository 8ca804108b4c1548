package agent

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/finsense/finsense"
	"google.golang.org/genai"
)

func statement() *finsense.Statement {
	return finsense.NewStatement("test.csv", []finsense.Transaction{
		finsense.NewTransaction(finsense.MustParseDate("2025-07-01"), "Employer Inc", "july salary", finsense.M(3000.0, "USD")),
		finsense.NewTransaction(finsense.MustParseDate("2025-07-03"), "NETFLIX.COM", "", finsense.M(-15.49, "USD")),
		finsense.NewTransaction(finsense.MustParseDate("2025-08-03"), "NETFLIX.COM", "", finsense.M(-15.49, "USD")),
	})
}

// call dispatches a function call through the analyst's library and returns
// the textual output, failing on an in-band error.
func call(t *testing.T, lib Library, name string, args map[string]any) string {
	t.Helper()
	resp := lib(context.Background(), &genai.FunctionCall{ID: "1", Name: name, Args: args})
	if err, ok := resp.Response["error"]; ok {
		t.Fatalf("%s returned an error: %v", name, err)
	}
	output, ok := resp.Response["output"].(string)
	if !ok {
		t.Fatalf("%s returned no output: %v", name, resp.Response)
	}
	return output
}

func analystLibrary(s *finsense.Statement, search Searcher) Library {
	return NewLibrary(analystTools(s, search))
}

func TestAnalyst_summary(t *testing.T) {
	lib := analystLibrary(statement(), nil)
	out := call(t, lib, "StatementSummary", nil)
	if !strings.Contains(out, "3 transactions from 2025-07-01 to 2025-08-03") {
		t.Errorf("summary:\n%s", out)
	}
}

func TestAnalyst_list(t *testing.T) {
	lib := analystLibrary(statement(), nil)

	out := call(t, lib, "ListTransactions", map[string]any{"merchant": "netflix"})
	if !strings.Contains(out, "netflix.com") || strings.Contains(out, "employer inc") {
		t.Errorf("list filtered on netflix:\n%s", out)
	}

	out = call(t, lib, "ListTransactions", map[string]any{"sort": "amount", "limit": float64(1)})
	if !strings.Contains(out, "-$15.49") || strings.Contains(out, "employer inc") {
		t.Errorf("list limited to the smallest amount:\n%s", out)
	}
}

func TestAnalyst_aggregate(t *testing.T) {
	lib := analystLibrary(statement(), nil)

	out := call(t, lib, "Aggregate", map[string]any{"sign": "debits"})
	if !strings.Contains(out, "-$30.98") {
		t.Errorf("debit sum:\n%s", out)
	}

	out = call(t, lib, "Aggregate", map[string]any{"from": "2025-08-01"})
	if !strings.Contains(out, "| 1 |") {
		t.Errorf("august count:\n%s", out)
	}
}

func TestAnalyst_breakdown(t *testing.T) {
	lib := analystLibrary(statement(), nil)
	out := call(t, lib, "Breakdown", map[string]any{"by": "month", "sign": "debits"})
	if !strings.Contains(out, "| 2025-07 |") || !strings.Contains(out, "| 2025-08 |") {
		t.Errorf("monthly breakdown:\n%s", out)
	}
}

func TestAnalyst_search(t *testing.T) {
	searcher := func(ctx context.Context, query string, k int) ([]finsense.Match, error) {
		return finsense.LexicalSearch(statement(), query, k), nil
	}
	lib := analystLibrary(statement(), searcher)

	out := call(t, lib, "SearchTransactions", map[string]any{"query": "netflix"})
	if !strings.Contains(out, "netflix.com") {
		t.Errorf("search:\n%s", out)
	}

	resp := lib(context.Background(), &genai.FunctionCall{ID: "1", Name: "SearchTransactions", Args: nil})
	if _, ok := resp.Response["error"]; !ok {
		t.Error("search without a query: want an in-band error")
	}
}

func TestAnalyst_withoutSearcher(t *testing.T) {
	for _, f := range analystTools(statement(), nil) {
		if f.Declaration().Name == "SearchTransactions" {
			t.Error("the search tool must not be declared without a searcher")
		}
	}
}

func TestAnalyst_badArguments(t *testing.T) {
	lib := analystLibrary(statement(), nil)
	testCases := []struct {
		name string
		args map[string]any
	}{
		{"ListTransactions", map[string]any{"from": "not a date"}},
		{"ListTransactions", map[string]any{"sort": "color"}},
		{"Aggregate", map[string]any{"sign": "sideways"}},
		{"Breakdown", map[string]any{"by": "weekday"}},
	}
	for _, tc := range testCases {
		resp := lib(context.Background(), &genai.FunctionCall{ID: "1", Name: tc.name, Args: tc.args})
		if _, ok := resp.Response["error"]; !ok {
			t.Errorf("%s(%v): want an in-band error", tc.name, tc.args)
		}
	}
}

func TestLibrary_unknownFunction(t *testing.T) {
	lib := analystLibrary(statement(), nil)
	resp := lib(context.Background(), &genai.FunctionCall{ID: "1", Name: "Nope"})
	if err, ok := resp.Response["error"]; !ok || err != fmt.Sprintf("unknown function %s", "Nope") {
		t.Errorf("response = %v, want an unknown function error", resp.Response)
	}
}

func TestParseQuery(t *testing.T) {
	s := statement()

	q, err := parseQuery(s, map[string]any{
		"from":     "2025-07-01",
		"to":       "2025-07-31",
		"merchant": "netflix",
		"sign":     "debits",
		"max":      float64(-10),
	})
	if err != nil {
		t.Fatal(err)
	}
	if q.Range.From != finsense.MustParseDate("2025-07-01") || q.Range.To != finsense.MustParseDate("2025-07-31") {
		t.Errorf("range = %v", q.Range)
	}
	if q.Merchant != "netflix" || q.Sign != finsense.Debits {
		t.Errorf("query = %+v", q)
	}
	// the bound takes the statement's currency
	if q.Max == nil || !q.Max.Equal(finsense.M(-10.0, "USD")) {
		t.Errorf("max = %v, want USD -10", q.Max)
	}

	if _, err := parseQuery(s, map[string]any{"to": "whenever"}); err == nil {
		t.Error("want an error on a bad date")
	}
}
