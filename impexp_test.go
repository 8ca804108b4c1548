package finsense

import (
	"strings"
	"testing"
)

func TestExportJSONL(t *testing.T) {
	s := NewStatement("x.csv", []Transaction{
		{Date: MustParseDate("2025-07-01"), Merchant: "employer inc", Description: "july salary", Amount: M(3000.0, "USD"), Category: "Income"},
		{Date: MustParseDate("2025-07-03"), Merchant: "netflix.com", Amount: M(-15.49, "USD")},
	})

	var sb strings.Builder
	if err := ExportJSONL(&sb, s); err != nil {
		t.Fatal(err)
	}

	want := `{"date":"2025-07-01","merchant":"employer inc","description":"july salary","amount":{"currency":"USD","amount":"3000"},"category":"Income"}
{"date":"2025-07-03","merchant":"netflix.com","amount":{"currency":"USD","amount":"-15.49"}}
`
	if sb.String() != want {
		t.Errorf("export:\n%s\nwant:\n%s", sb.String(), want)
	}
}

func TestJSONL_roundTrip(t *testing.T) {
	s := testStatement()

	var sb strings.Builder
	if err := ExportJSONL(&sb, s); err != nil {
		t.Fatal(err)
	}
	got, err := ImportJSONL(strings.NewReader(sb.String()), "test.csv")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(s) {
		t.Errorf("round trip lost data:\ngot  %+v\nwant %+v", got, s)
	}
}

func TestImportJSONL_skipsBlankLines(t *testing.T) {
	in := `{"date":"2025-07-03","merchant":"netflix.com","amount":{"currency":"USD","amount":"-15.49"}}

{"date":"2025-07-05","merchant":"corner store","amount":{"currency":"USD","amount":"-8.99"}}
`
	s, err := ImportJSONL(strings.NewReader(in), "x.jsonl")
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
}

func TestImportJSONL_badLine(t *testing.T) {
	if _, err := ImportJSONL(strings.NewReader("not json\n"), "x.jsonl"); err == nil {
		t.Error("want an error on an unparseable line")
	}
}

func TestExportCSV(t *testing.T) {
	s := NewStatement("x.csv", []Transaction{
		{Date: MustParseDate("2025-07-01"), Merchant: "employer inc", Description: "july salary", Amount: M(3000.0, "USD"), Category: "Income"},
		{Date: MustParseDate("2025-07-03"), Merchant: "netflix.com", Amount: M(-15.49, "USD")},
	})

	var sb strings.Builder
	if err := ExportCSV(&sb, s); err != nil {
		t.Fatal(err)
	}

	want := `date,merchant,description,amount,currency,category
2025-07-01,employer inc,july salary,3000,USD,Income
2025-07-03,netflix.com,,-15.49,USD,
`
	if sb.String() != want {
		t.Errorf("export:\n%s\nwant:\n%s", sb.String(), want)
	}
}

func TestExportCSV_reingests(t *testing.T) {
	s := testStatement()

	var sb strings.Builder
	if err := ExportCSV(&sb, s); err != nil {
		t.Fatal(err)
	}
	got, report, err := ParseCSV(strings.NewReader(sb.String()), "test.csv", ParseOptions{Currency: "USD"})
	if err != nil {
		t.Fatal(err)
	}
	if report.Dropped() != 0 {
		t.Errorf("re-ingesting our own export dropped %d rows", report.Dropped())
	}
	if !got.Equal(s) {
		t.Errorf("re-ingest lost data:\ngot  %+v\nwant %+v", got, s)
	}
}
