package finsense

import (
	"strings"
	"testing"
)

func TestParseJSON_envelope(t *testing.T) {
	exports := map[string]string{
		"transactions": `{"transactions": [{"date": "2025-07-03", "merchant": "NETFLIX.COM", "amount": -15.49}]}`,
		"data":         `{"data": [{"date": "2025-07-03", "merchant": "NETFLIX.COM", "amount": -15.49}]}`,
		"bare array":   `[{"date": "2025-07-03", "merchant": "NETFLIX.COM", "amount": -15.49}]`,
	}
	for name, export := range exports {
		t.Run(name, func(t *testing.T) {
			s, report, err := ParseJSON(strings.NewReader(export), "export.json", ParseOptions{Currency: "USD"}, "")
			if err != nil {
				t.Fatal(err)
			}
			if report.Imported != 1 || s.Len() != 1 {
				t.Fatalf("imported %d, want 1", report.Imported)
			}
			tx := s.Transaction(0)
			if tx.Merchant != "netflix.com" || !tx.Amount.Equal(M(-15.49, "USD")) {
				t.Errorf("transaction = %+v", tx)
			}
		})
	}
}

func TestParseJSON_customPath(t *testing.T) {
	export := `{"result": {"rows": [
		{"Date": "03/07/2025", "Payee": "Corner Store", "Amount": "($8.99)", "Tag": "Groceries"},
		{"date": "2025-07-10", "payee": "Coffee", "amount": "not a number"}
	]}}`

	s, report, err := ParseJSON(strings.NewReader(export), "export.json", ParseOptions{Currency: "USD"}, "$.result.rows")
	if err != nil {
		t.Fatal(err)
	}
	want := IngestReport{TotalRows: 2, Imported: 1, BadAmounts: 1, DebitCount: 1}
	if *report != want {
		t.Errorf("report = %+v, want %+v", *report, want)
	}

	tx := s.Transaction(0)
	if tx.Merchant != "corner store" || tx.Category != "Groceries" {
		t.Errorf("transaction = %+v", tx)
	}
	if !tx.Amount.Equal(M(-8.99, "USD")) {
		t.Errorf("amount = %s, want -8.99", tx.Amount)
	}
}

func TestParseJSON_numericAndStringFields(t *testing.T) {
	// amounts come as JSON numbers or strings depending on the bank
	export := `{"items": [
		{"date": "2025-07-01", "name": "Employer Inc", "amount": 3000, "currency": "eur"},
		{"date": "2025-07-02", "name": "Shop", "amount": "-12.50"}
	]}`

	s, report, err := ParseJSON(strings.NewReader(export), "export.json", ParseOptions{Currency: "USD"}, "")
	if err != nil {
		t.Fatal(err)
	}
	if report.Imported != 2 {
		t.Fatalf("imported %d, want 2: %+v", report.Imported, report)
	}
	if got := s.Transaction(0).Amount; !got.Equal(M(3000, "EUR")) {
		t.Errorf("first amount = %s %s, want EUR 3000", got.Currency(), got)
	}
	if got := s.Transaction(1).Amount; !got.Equal(M(-12.50, "USD")) {
		t.Errorf("second amount = %s, want -12.50", got)
	}
}

func TestParseJSON_debitCreditPair(t *testing.T) {
	export := `{"transactions": [
		{"date": "2025-07-01", "payee": "Shop", "money out": "42.10"},
		{"date": "2025-07-02", "payee": "Refund", "money in": "5.00"}
	]}`

	s, _, err := ParseJSON(strings.NewReader(export), "export.json", ParseOptions{Currency: "USD"}, "")
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Transaction(0).Amount; !got.Equal(M(-42.10, "USD")) {
		t.Errorf("debit = %s, want -42.10", got)
	}
	if got := s.Transaction(1).Amount; !got.Equal(M(5.0, "USD")) {
		t.Errorf("credit = %s, want 5", got)
	}
}

func TestParseJSON_noRows(t *testing.T) {
	if _, _, err := ParseJSON(strings.NewReader(`{"report": "empty"}`), "x.json", ParseOptions{}, ""); err == nil {
		t.Error("want an error when no transaction array is found")
	}
	if _, _, err := ParseJSON(strings.NewReader(`{"data": []}`), "x.json", ParseOptions{}, "$.missing"); err == nil {
		t.Error("want an error for a rows path matching nothing")
	}
}

func TestParseJSON_invalid(t *testing.T) {
	if _, _, err := ParseJSON(strings.NewReader("not json"), "x.json", ParseOptions{}, ""); err == nil {
		t.Error("want an error on invalid JSON")
	}
}
