package finsense

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// this file contains functions to handle the cleaned-statement
// import/export format. It should remain human readable, single file, and
// diff cleanly under version control.

// ExportJSONL exports the statement to 'w', one transaction per line.
//
// Each line is a JSON object with a stable field order: 'date' in ISO-8601,
// 'merchant' normalized, optional 'description', 'amount' as an object with
// an optional 'currency' and an exact decimal 'amount', and optional
// 'category'.
func ExportJSONL(w io.Writer, s *Statement) error {
	for t := range s.All() {
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("cannot marshal transaction on %s: %w", t.Date, err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return err
		}
	}
	return nil
}

// ImportJSONL reads a statement back from the JSONL export format. Blank
// lines are skipped; any unparseable line is an error, since the format is
// ours.
func ImportJSONL(r io.Reader, source string) (*Statement, error) {
	var txs []Transaction
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var t Transaction
		if err := json.Unmarshal(line, &t); err != nil {
			return nil, fmt.Errorf("cannot parse line %q: %w", string(line), err)
		}
		txs = append(txs, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return NewStatement(source, txs), nil
}

// ExportCSV exports the statement to 'w' as a canonical CSV: the columns
// the ingestion requires, in a fixed order, dates in ISO-8601, amounts as
// plain signed decimals.
func ExportCSV(w io.Writer, s *Statement) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "merchant", "description", "amount", "currency", "category"}); err != nil {
		return err
	}
	for t := range s.All() {
		record := []string{
			t.Date.String(),
			t.Merchant,
			t.Description,
			t.Amount.value.String(),
			t.Amount.Currency(),
			t.Category,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
