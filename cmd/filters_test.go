package cmd

import (
	"flag"
	"testing"

	"github.com/finsense/finsense"
)

// parseFilters runs the shared filter flags over a command line.
func parseFilters(t *testing.T, args ...string) *filterFlags {
	t.Helper()
	var c filterFlags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.SetFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return &c
}

func TestFilterFlags_dates(t *testing.T) {
	c := parseFilters(t, "-from", "2025-07-01", "-to", "2025-07-31")
	q, err := c.Query("USD")
	if err != nil {
		t.Fatal(err)
	}
	want := finsense.NewRange(finsense.MustParseDate("2025-07-01"), finsense.MustParseDate("2025-07-31"))
	if q.Range != want {
		t.Errorf("range = %v, want %v", q.Range, want)
	}
}

func TestFilterFlags_period(t *testing.T) {
	c := parseFilters(t, "-p", "month", "-d", "2025-07-15", "-from", "2020-01-01")
	q, err := c.Query("USD")
	if err != nil {
		t.Fatal(err)
	}
	// -p overrides -from/-to
	want := finsense.NewRange(finsense.MustParseDate("2025-07-01"), finsense.MustParseDate("2025-07-31"))
	if q.Range != want {
		t.Errorf("range = %v, want %v", q.Range, want)
	}
}

func TestFilterFlags_amounts(t *testing.T) {
	c := parseFilters(t, "-min", "-100", "-max", "(10)", "-sign", "debits", "-merchant", "netflix")
	q, err := c.Query("EUR")
	if err != nil {
		t.Fatal(err)
	}
	if q.Min == nil || !q.Min.Equal(finsense.M(-100.0, "EUR")) {
		t.Errorf("min = %v, want EUR -100", q.Min)
	}
	if q.Max == nil || !q.Max.Equal(finsense.M(-10.0, "EUR")) {
		t.Errorf("max = %v, want EUR -10", q.Max)
	}
	if q.Sign != finsense.Debits || q.Merchant != "netflix" {
		t.Errorf("query = %+v", q)
	}
}

func TestFilterFlags_defaults(t *testing.T) {
	c := parseFilters(t)
	q, err := c.Query("USD")
	if err != nil {
		t.Fatal(err)
	}
	if !q.Range.IsOpen() || q.Sign != finsense.All || q.Min != nil || q.Max != nil || q.Limit != 0 {
		t.Errorf("query = %+v, want the zero query", q)
	}
}

func TestFilterFlags_errors(t *testing.T) {
	testCases := [][]string{
		{"-from", "whenever"},
		{"-to", "whenever"},
		{"-p", "fortnight"},
		{"-p", "month", "-d", "someday"},
		{"-sign", "sideways"},
		{"-min", "lots"},
	}
	for _, args := range testCases {
		c := parseFilters(t, args...)
		if _, err := c.Query("USD"); err == nil {
			t.Errorf("Query(%v): want an error", args)
		}
	}
}
