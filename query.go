package finsense

import (
	"fmt"
	"slices"
	"strings"
)

// Sign filters transactions by direction.
type Sign int

const (
	All Sign = iota
	Debits
	Credits
)

// ParseSign parses a direction filter name.
func ParseSign(s string) (Sign, error) {
	switch strings.ToLower(s) {
	case "", "all", "both":
		return All, nil
	case "debit", "debits", "out", "spending":
		return Debits, nil
	case "credit", "credits", "in", "income":
		return Credits, nil
	default:
		return All, fmt.Errorf("unknown sign %q, want all, debits or credits", s)
	}
}

// SortKey names the field a selection is ordered by.
type SortKey int

const (
	ByDate SortKey = iota
	ByAmount
	ByMerchant
)

// ParseSortKey parses a sort key name.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(s) {
	case "", "date":
		return ByDate, nil
	case "amount":
		return ByAmount, nil
	case "merchant":
		return ByMerchant, nil
	default:
		return ByDate, fmt.Errorf("unknown sort key %q, want date, amount or merchant", s)
	}
}

// Query is a structured question over a statement: filters, an order, and
// a limit. The zero Query selects every transaction in date order.
type Query struct {
	Range    Range  // inclusive date bounds, open sides match everything
	Merchant string // case-insensitive substring of the merchant name
	Category string // case-insensitive category match
	Min, Max *Money // inclusive bounds on the signed amount
	Sign     Sign
	Sort     SortKey
	Desc     bool
	Limit    int // 0 means no limit
}

func (q Query) matches(t Transaction) bool {
	if !q.Range.Contains(t.Date) {
		return false
	}
	if q.Merchant != "" && !strings.Contains(t.Merchant, NormalizeMerchant(q.Merchant)) &&
		!strings.Contains(strings.ToLower(t.Description), strings.ToLower(q.Merchant)) {
		return false
	}
	if q.Category != "" && !strings.EqualFold(t.Category, q.Category) {
		return false
	}
	if q.Sign == Debits && !t.IsDebit() {
		return false
	}
	if q.Sign == Credits && t.IsDebit() {
		return false
	}
	if q.Min != nil && t.Amount.LessThan(*q.Min) {
		return false
	}
	if q.Max != nil && t.Amount.GreaterThan(*q.Max) {
		return false
	}
	return true
}

// Select returns the transactions matching the query, ordered and limited
// as it asks. The statement itself is left untouched.
func (s *Statement) Select(q Query) []Transaction {
	var res []Transaction
	for t := range s.All() {
		if q.matches(t) {
			res = append(res, t)
		}
	}

	switch q.Sort {
	case ByDate:
		// already in date order
	case ByAmount:
		slices.SortStableFunc(res, func(a, b Transaction) int {
			switch {
			case a.Amount.LessThan(b.Amount):
				return -1
			case a.Amount.GreaterThan(b.Amount):
				return 1
			default:
				return 0
			}
		})
	case ByMerchant:
		slices.SortStableFunc(res, func(a, b Transaction) int {
			return strings.Compare(a.Merchant, b.Merchant)
		})
	}
	if q.Desc {
		slices.Reverse(res)
	}
	if q.Limit > 0 && len(res) > q.Limit {
		res = res[:q.Limit]
	}
	return res
}

// Aggregates are the scalar answers over the transactions of one
// currency.
type Aggregates struct {
	Currency        string
	Count           int
	Sum, Average    Money
	Min, Max        Money
	Debits, Credits Money // totals per direction
	DebitCount      int
	CreditCount     int
}

// Aggregate computes the aggregates of a selection, one entry per
// currency in order of first appearance. Amounts in different currencies
// are never added together. An empty selection yields no entries.
func Aggregate(txs []Transaction) []Aggregates {
	index := make(map[string]int)
	var res []Aggregates
	for _, t := range txs {
		currency := t.Amount.Currency()
		i, ok := index[currency]
		if !ok {
			i = len(res)
			index[currency] = i
			// seed the totals with the currency so that zero totals
			// still format as money
			zero := M(0, currency)
			res = append(res, Aggregates{
				Currency: currency,
				Min:      t.Amount,
				Max:      t.Amount,
				Sum:      zero,
				Debits:   zero,
				Credits:  zero,
			})
		}
		a := &res[i]
		if t.Amount.LessThan(a.Min) {
			a.Min = t.Amount
		}
		if t.Amount.GreaterThan(a.Max) {
			a.Max = t.Amount
		}
		a.Sum = a.Sum.Add(t.Amount)
		if t.IsDebit() {
			a.Debits = a.Debits.Add(t.Amount)
			a.DebitCount++
		} else {
			a.Credits = a.Credits.Add(t.Amount)
			a.CreditCount++
		}
		a.Count++
	}
	for i := range res {
		res[i].Average = res[i].Sum.DivInt(int64(res[i].Count))
	}
	return res
}

// GroupBy names the key a breakdown is grouped on.
type GroupBy int

const (
	GroupByMerchant GroupBy = iota
	GroupByCategory
	GroupByMonth
)

// ParseGroupBy parses a breakdown key name.
func ParseGroupBy(s string) (GroupBy, error) {
	switch strings.ToLower(s) {
	case "", "merchant":
		return GroupByMerchant, nil
	case "category":
		return GroupByCategory, nil
	case "month":
		return GroupByMonth, nil
	default:
		return GroupByMerchant, fmt.Errorf("unknown group key %q, want merchant, category or month", s)
	}
}

func (g GroupBy) String() string {
	switch g {
	case GroupByMerchant:
		return "merchant"
	case GroupByCategory:
		return "category"
	case GroupByMonth:
		return "month"
	default:
		panic(fmt.Sprintf("unknown group key %d", g))
	}
}

// Uncategorized is the group key of transactions without a category.
const Uncategorized = "(uncategorized)"

// Group is one line of a breakdown. A group never mixes currencies: a
// key charged in two currencies yields two groups.
type Group struct {
	Key             string
	Currency        string
	Count           int
	Sum             Money
	Debits, Credits Money
}

// GroupTransactions groups a selection by the given key and currency.
// Month groups come out chronological; merchant and category groups by
// decreasing absolute total.
func GroupTransactions(txs []Transaction, by GroupBy) []Group {
	type groupID struct{ key, currency string }
	index := make(map[groupID]int)
	var groups []Group
	for _, t := range txs {
		id := groupID{groupKey(t, by), t.Amount.Currency()}
		i, ok := index[id]
		if !ok {
			i = len(groups)
			index[id] = i
			zero := M(0, id.currency)
			groups = append(groups, Group{Key: id.key, Currency: id.currency, Sum: zero, Debits: zero, Credits: zero})
		}
		g := &groups[i]
		g.Count++
		g.Sum = g.Sum.Add(t.Amount)
		if t.IsDebit() {
			g.Debits = g.Debits.Add(t.Amount)
		} else {
			g.Credits = g.Credits.Add(t.Amount)
		}
	}

	if by == GroupByMonth {
		slices.SortFunc(groups, func(a, b Group) int {
			if c := strings.Compare(a.Key, b.Key); c != 0 {
				return c
			}
			return strings.Compare(a.Currency, b.Currency)
		})
	} else {
		slices.SortStableFunc(groups, func(a, b Group) int {
			switch {
			case a.Sum.Abs().GreaterThan(b.Sum.Abs()):
				return -1
			case a.Sum.Abs().LessThan(b.Sum.Abs()):
				return 1
			case a.Key != b.Key:
				return strings.Compare(a.Key, b.Key)
			default:
				return strings.Compare(a.Currency, b.Currency)
			}
		})
	}
	return groups
}

func groupKey(t Transaction, by GroupBy) string {
	switch by {
	case GroupByMerchant:
		return t.Merchant
	case GroupByCategory:
		if t.Category == "" {
			return Uncategorized
		}
		return strings.ToLower(t.Category)
	case GroupByMonth:
		return t.Date.Format("2006-01")
	default:
		panic(fmt.Sprintf("unknown group key %d", by))
	}
}
