package finsense

import "slices"

// Summary describes a whole statement at a glance: what the user sees
// right after upload, before asking anything.
type Summary struct {
	Source        string
	Count         int
	Range         Range
	Currencies    []string
	MerchantCount int
	CategoryCount int
	Totals        []Aggregates // one entry per currency
	Monthly       []Group      // net flow per month and currency, chronological
}

// Summarize computes the summary of the statement. An empty statement
// yields zero counts and a zero date range.
func (s *Statement) Summarize() Summary {
	txs := slices.Collect(s.All())
	return Summary{
		Source:        s.source,
		Count:         s.Len(),
		Range:         s.Range(),
		Currencies:    s.Currencies(),
		MerchantCount: len(s.Merchants()),
		CategoryCount: len(s.Categories()),
		Totals:        Aggregate(txs),
		Monthly:       GroupTransactions(txs, GroupByMonth),
	}
}
