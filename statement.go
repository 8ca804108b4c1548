package finsense

import (
	"iter"
	"slices"

	"github.com/finsense/finsense/date"
)

// Statement is an ordered sequence of transactions tied to one upload: a
// single bank statement CSV held in memory for the session. It is created
// by ingestion and discarded when the session ends.
type Statement struct {
	source       string
	transactions []Transaction
}

// NewStatement creates a statement from transactions. The transactions are
// sorted by date ascending; rows sharing a date keep their file order.
func NewStatement(source string, transactions []Transaction) *Statement {
	txs := slices.Clone(transactions)
	slices.SortStableFunc(txs, func(a, b Transaction) int { return a.Date.Compare(b.Date) })
	return &Statement{source: source, transactions: txs}
}

// Source returns the name of the file this statement was parsed from.
func (s *Statement) Source() string { return s.source }

// Len returns the number of transactions in the statement.
func (s *Statement) Len() int { return len(s.transactions) }

// Transaction returns the i-th transaction in date order.
func (s *Statement) Transaction(i int) Transaction { return s.transactions[i] }

// All iterates over the transactions in date order.
func (s *Statement) All() iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, t := range s.transactions {
			if !yield(t) {
				return
			}
		}
	}
}

// Range returns the date range covered by the statement, the zero Range
// when the statement is empty.
func (s *Statement) Range() Range {
	if len(s.transactions) == 0 {
		return Range{}
	}
	return date.NewRange(s.transactions[0].Date, s.transactions[len(s.transactions)-1].Date)
}

// Currencies returns the distinct currencies appearing on the statement,
// in order of first appearance.
func (s *Statement) Currencies() []string {
	var currencies []string
	for _, t := range s.transactions {
		if !slices.Contains(currencies, t.Amount.Currency()) {
			currencies = append(currencies, t.Amount.Currency())
		}
	}
	return currencies
}

// Merchants returns the distinct normalized merchant names, in order of
// first appearance.
func (s *Statement) Merchants() []string {
	var merchants []string
	for _, t := range s.transactions {
		if !slices.Contains(merchants, t.Merchant) {
			merchants = append(merchants, t.Merchant)
		}
	}
	return merchants
}

// Categories returns the distinct non-empty categories, in order of first
// appearance.
func (s *Statement) Categories() []string {
	var categories []string
	for _, t := range s.transactions {
		if t.Category == "" {
			continue
		}
		if !slices.Contains(categories, t.Category) {
			categories = append(categories, t.Category)
		}
	}
	return categories
}

// Equal reports whether two statements carry the same transactions.
func (s *Statement) Equal(o *Statement) bool {
	return s.source == o.source &&
		slices.EqualFunc(s.transactions, o.transactions, Transaction.Equal)
}
