package finsense

import (
	"slices"
	"strings"
	"testing"
)

func TestNewStatement_sortsStable(t *testing.T) {
	// two transactions share a date, their input order must survive
	s := NewStatement("x.csv", []Transaction{
		NewTransaction(MustParseDate("2025-07-05"), "Second", "", M(-2.0, "USD")),
		NewTransaction(MustParseDate("2025-07-01"), "First", "", M(-1.0, "USD")),
		NewTransaction(MustParseDate("2025-07-05"), "Third", "", M(-3.0, "USD")),
	})

	got := []string{s.Transaction(0).Merchant, s.Transaction(1).Merchant, s.Transaction(2).Merchant}
	want := []string{"first", "second", "third"}
	if !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestStatement_empty(t *testing.T) {
	s := NewStatement("empty.csv", nil)
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
	if !s.Range().IsOpen() {
		t.Errorf("Range = %v, want the zero range", s.Range())
	}
	sum := s.Summarize()
	if sum.Count != 0 || sum.MerchantCount != 0 || len(sum.Totals) != 0 {
		t.Errorf("summary of empty statement = %+v, want zeros", sum)
	}
}

func TestStatement_distinct(t *testing.T) {
	s := NewStatement("x.csv", []Transaction{
		{Date: MustParseDate("2025-07-01"), Merchant: "netflix.com", Amount: M(-15.49, "USD"), Category: "Streaming"},
		{Date: MustParseDate("2025-07-02"), Merchant: "corner store", Amount: M(-8.99, "USD")},
		{Date: MustParseDate("2025-07-03"), Merchant: "netflix.com", Amount: M(-15.49, "USD"), Category: "Streaming"},
	})

	if got := s.Merchants(); !slices.Equal(got, []string{"netflix.com", "corner store"}) {
		t.Errorf("Merchants = %v", got)
	}
	if got := s.Categories(); !slices.Equal(got, []string{"Streaming"}) {
		t.Errorf("Categories = %v", got)
	}
	if got := s.Currencies(); !slices.Equal(got, []string{"USD"}) {
		t.Errorf("Currencies = %v", got)
	}
}

func TestSummarize(t *testing.T) {
	sum := testStatement().Summarize()

	if sum.Source != "test.csv" || sum.Count != 5 {
		t.Errorf("Source, Count = %q, %d, want test.csv, 5", sum.Source, sum.Count)
	}
	wantRange := NewRange(MustParseDate("2025-07-01"), MustParseDate("2025-08-10"))
	if sum.Range != wantRange {
		t.Errorf("Range = %v, want %v", sum.Range, wantRange)
	}
	if sum.MerchantCount != 3 {
		t.Errorf("MerchantCount = %d, want 3", sum.MerchantCount)
	}
	if len(sum.Monthly) != 2 || sum.Monthly[0].Key != "2025-07" {
		t.Errorf("Monthly = %+v, want two months starting 2025-07", sum.Monthly)
	}
	if len(sum.Totals) != 1 || !sum.Totals[0].Sum.Equal(M(2917.93, "USD")) {
		t.Errorf("Totals = %+v, want one USD entry summing 2917.93", sum.Totals)
	}
}

func TestSummarize_mixedCurrencies(t *testing.T) {
	// a statement paid in two currencies must summarize per currency
	csv := `date,merchant,amount,currency
2025-07-01,Employer Inc,3000.00,USD
2025-07-02,Hotel Berlin,-120.00,EUR
`
	s, _, err := ParseCSV(strings.NewReader(csv), "trip.csv", ParseOptions{})
	if err != nil {
		t.Fatal(err)
	}
	sum := s.Summarize()

	if !slices.Equal(sum.Currencies, []string{"USD", "EUR"}) {
		t.Errorf("Currencies = %v, want [USD EUR]", sum.Currencies)
	}
	if len(sum.Totals) != 2 {
		t.Fatalf("got %d totals, want one per currency", len(sum.Totals))
	}
	if sum.Totals[0].Currency != "USD" || !sum.Totals[0].Sum.Equal(M(3000.0, "USD")) {
		t.Errorf("USD totals = %+v, want sum 3000", sum.Totals[0])
	}
	if sum.Totals[1].Currency != "EUR" || !sum.Totals[1].Sum.Equal(M(-120.0, "EUR")) {
		t.Errorf("EUR totals = %+v, want sum -120", sum.Totals[1])
	}
	if len(sum.Monthly) != 2 || sum.Monthly[0].Currency == sum.Monthly[1].Currency {
		t.Errorf("Monthly = %+v, want one 2025-07 group per currency", sum.Monthly)
	}
}

func TestStatement_duplicatesPreserved(t *testing.T) {
	dup := NewTransaction(MustParseDate("2025-07-03"), "netflix.com", "", M(-15.49, "USD"))
	s := NewStatement("x.csv", []Transaction{dup, dup})
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2: duplicate rows are distinct transactions", s.Len())
	}
}
