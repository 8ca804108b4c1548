package finsense

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/finsense/finsense/date"
	"github.com/shopspring/decimal"
)

// ParseOptions configures statement ingestion.
type ParseOptions struct {
	// Currency applied to amounts when the file has no currency column.
	Currency string
	// Comma is the field delimiter. Zero means sniff it from the header
	// line (comma, semicolon or tab).
	Comma rune
}

// IngestReport accounts for every row of the uploaded file: how many were
// imported and how many were dropped, per reason. A row is dropped, never
// fatal: one bad line must not reject a whole statement.
type IngestReport struct {
	TotalRows  int // data rows in the file, header excluded
	Imported   int
	EmptyRows  int // entirely blank rows
	BadDates   int // rows whose date did not parse
	BadAmounts int // rows whose amount did not parse
	DebitCount int // imported rows with a negative amount
}

// Dropped returns the number of rows that were not imported.
func (r *IngestReport) Dropped() int { return r.TotalRows - r.Imported }

// Column aliases, matched against normalized (trimmed, lowercased) header
// names. Bank exports never agree on naming.
var (
	dateAliases        = []string{"date", "transaction date", "posted date", "posting date", "booking date", "value date"}
	merchantAliases    = []string{"merchant", "payee", "name", "counterparty"}
	descriptionAliases = []string{"description", "details", "memo", "narrative", "reference"}
	amountAliases      = []string{"amount", "transaction amount", "value"}
	debitAliases       = []string{"debit", "withdrawal", "money out", "paid out"}
	creditAliases      = []string{"credit", "deposit", "money in", "paid in"}
	categoryAliases    = []string{"category", "tag"}
	currencyAliases    = []string{"currency", "ccy"}
)

// columns holds the resolved index of each field in the header, -1 when
// absent.
type columns struct {
	date, merchant, description int
	amount, debit, credit       int
	category, currency          int
}

func resolveColumns(header []string) columns {
	c := columns{date: -1, merchant: -1, description: -1, amount: -1, debit: -1, credit: -1, category: -1, currency: -1}
	find := func(aliases []string) int {
		for i, name := range header {
			name = strings.ToLower(strings.TrimSpace(name))
			for _, alias := range aliases {
				if name == alias {
					return i
				}
			}
		}
		return -1
	}
	c.date = find(dateAliases)
	c.merchant = find(merchantAliases)
	c.description = find(descriptionAliases)
	c.amount = find(amountAliases)
	c.debit = find(debitAliases)
	c.credit = find(creditAliases)
	c.category = find(categoryAliases)
	c.currency = find(currencyAliases)
	return c
}

// ValidateHeader checks that a header row carries the columns a statement
// needs: a date, an amount (or debit/credit pair), and a merchant (or
// description). It returns an error naming every missing column.
func ValidateHeader(header []string) error {
	c := resolveColumns(header)
	var missing []string
	if c.date < 0 {
		missing = append(missing, "date")
	}
	if c.amount < 0 && c.debit < 0 && c.credit < 0 {
		missing = append(missing, "amount")
	}
	if c.merchant < 0 && c.description < 0 {
		missing = append(missing, "merchant")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ParseCSV parses a raw statement CSV into a Statement. Rows whose date or
// amount cannot be parsed are dropped and counted in the report. A missing
// or unknown header is the only fatal condition.
func ParseCSV(r io.Reader, source string, opts ParseOptions) (*Statement, *IngestReport, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("reading statement: %w", err)
	}

	comma := opts.Comma
	if comma == 0 {
		comma = sniffDelimiter(raw)
	}

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	// bank exports carry stray quotes in merchant names; a bare quote
	// must not reject the whole file
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading statement header: %w", err)
	}
	if err := ValidateHeader(header); err != nil {
		return nil, nil, err
	}
	cols := resolveColumns(header)

	report := &IngestReport{}
	var txs []Transaction
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading statement row %d: %w", report.TotalRows+2, err)
		}
		report.TotalRows++

		if isBlank(record) {
			report.EmptyRows++
			continue
		}

		on, err := date.Parse(field(record, cols.date))
		if err != nil {
			report.BadDates++
			continue
		}

		currency := opts.Currency
		if v := field(record, cols.currency); v != "" {
			currency = strings.ToUpper(v)
		}

		amount, err := rowAmount(record, cols, currency)
		if err != nil {
			report.BadAmounts++
			continue
		}

		merchant := field(record, cols.merchant)
		description := field(record, cols.description)
		if merchant == "" {
			merchant, description = description, ""
		}
		if NormalizeMerchant(description) == NormalizeMerchant(merchant) {
			description = ""
		}

		t := NewTransaction(on, merchant, description, amount)
		t.Category = strings.TrimSpace(field(record, cols.category))
		if t.IsDebit() {
			report.DebitCount++
		}
		txs = append(txs, t)
		report.Imported++
	}

	return NewStatement(source, txs), report, nil
}

// rowAmount reads the signed amount of a record: from the amount column
// when there is one, otherwise from the debit/credit pair (debits become
// negative).
func rowAmount(record []string, cols columns, currency string) (Money, error) {
	if cols.amount >= 0 {
		if v := field(record, cols.amount); v != "" {
			value, err := cleanAmount(v)
			if err != nil {
				return Money{}, err
			}
			return M(value, currency), nil
		}
	}
	if v := field(record, cols.debit); v != "" {
		value, err := cleanAmount(v)
		if err != nil {
			return Money{}, err
		}
		return M(value.Abs().Neg(), currency), nil
	}
	if v := field(record, cols.credit); v != "" {
		value, err := cleanAmount(v)
		if err != nil {
			return Money{}, err
		}
		return M(value, currency), nil
	}
	return Money{}, fmt.Errorf("no amount in row")
}

var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

// cleanAmount parses the messy amount notations found in statement
// exports: currency symbols and codes, thousands separators, and the
// accounting negative "(12.34)".
func cleanAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	cleaned := nonNumeric.ReplaceAllString(strings.ToLower(s), "")
	if cleaned == "" || cleaned == "." || cleaned == "-" {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", s)
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if negative {
		value = value.Neg()
	}
	return value, nil
}

// sniffDelimiter guesses the field delimiter from the first line.
func sniffDelimiter(raw []byte) rune {
	line := raw
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		line = raw[:i]
	}
	best, count := ',', bytes.Count(line, []byte{','})
	if n := bytes.Count(line, []byte{';'}); n > count {
		best, count = ';', n
	}
	if n := bytes.Count(line, []byte{'\t'}); n > count {
		best = '\t'
	}
	return best
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
