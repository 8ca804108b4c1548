package finsense

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/finsense/finsense/date"
	"github.com/shopspring/decimal"
)

// rowPaths are the JSONPath expressions tried, in order, to locate the
// transaction array in a JSON statement export when the caller does not
// name one.
var rowPaths = []string{"$.transactions", "$.data", "$.items", "$"}

// ParseJSON parses a JSON statement export into a Statement. Some banks
// export JSON instead of CSV, each with its own envelope; rowsPath is a
// JSONPath expression locating the array of transaction objects ("" tries
// the common ones). Field naming follows the same aliases as the CSV
// ingestion, and the same rows-dropped accounting applies.
func ParseJSON(r io.Reader, source string, opts ParseOptions, rowsPath string) (*Statement, *IngestReport, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("reading JSON statement: %w", err)
	}

	rows, err := locateRows(doc, rowsPath)
	if err != nil {
		return nil, nil, err
	}

	report := &IngestReport{}
	var txs []Transaction
	for _, row := range rows {
		report.TotalRows++

		obj, ok := row.(map[string]any)
		if !ok {
			report.EmptyRows++
			continue
		}
		fields := lowerKeys(obj)

		on, err := date.Parse(jsonString(fields, dateAliases))
		if err != nil {
			report.BadDates++
			continue
		}

		currency := opts.Currency
		if v := jsonString(fields, currencyAliases); v != "" {
			currency = strings.ToUpper(v)
		}

		amount, err := jsonAmount(fields, currency)
		if err != nil {
			report.BadAmounts++
			continue
		}

		merchant := jsonString(fields, merchantAliases)
		description := jsonString(fields, descriptionAliases)
		if merchant == "" {
			merchant, description = description, ""
		}
		if NormalizeMerchant(description) == NormalizeMerchant(merchant) {
			description = ""
		}

		t := NewTransaction(on, merchant, description, amount)
		t.Category = jsonString(fields, categoryAliases)
		if t.IsDebit() {
			report.DebitCount++
		}
		txs = append(txs, t)
		report.Imported++
	}

	return NewStatement(source, txs), report, nil
}

// locateRows resolves the transaction array inside the export envelope.
func locateRows(doc any, rowsPath string) ([]any, error) {
	paths := rowPaths
	if rowsPath != "" {
		paths = []string{rowsPath}
	}
	for _, path := range paths {
		value, err := jsonpath.Get(path, doc)
		if err != nil {
			continue
		}
		if rows, ok := value.([]any); ok && len(rows) > 0 {
			return rows, nil
		}
	}
	if rowsPath != "" {
		return nil, fmt.Errorf("no transaction array at %q", rowsPath)
	}
	return nil, fmt.Errorf("no transaction array found, tried %s", strings.Join(rowPaths, ", "))
}

func lowerKeys(obj map[string]any) map[string]any {
	fields := make(map[string]any, len(obj))
	for k, v := range obj {
		fields[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return fields
}

// jsonString returns the first alias present in the object, as a trimmed
// string.
func jsonString(fields map[string]any, aliases []string) string {
	for _, alias := range aliases {
		if v, ok := fields[alias]; ok {
			switch s := v.(type) {
			case string:
				return strings.TrimSpace(s)
			case float64:
				return decimal.NewFromFloat(s).String()
			}
		}
	}
	return ""
}

// jsonAmount reads the signed amount of a transaction object, from the
// amount field or from the debit/credit pair.
func jsonAmount(fields map[string]any, currency string) (Money, error) {
	if v := jsonString(fields, amountAliases); v != "" {
		value, err := cleanAmount(v)
		if err != nil {
			return Money{}, err
		}
		return M(value, currency), nil
	}
	if v := jsonString(fields, debitAliases); v != "" {
		value, err := cleanAmount(v)
		if err != nil {
			return Money{}, err
		}
		return M(value.Abs().Neg(), currency), nil
	}
	if v := jsonString(fields, creditAliases); v != "" {
		value, err := cleanAmount(v)
		if err != nil {
			return Money{}, err
		}
		return M(value, currency), nil
	}
	return Money{}, fmt.Errorf("no amount in object")
}
