package renderer

import (
	"strconv"

	"github.com/finsense/finsense"
)

// GroupsMarkdown renders a breakdown as a markdown table.
func GroupsMarkdown(groups []finsense.Group, by finsense.GroupBy) string {
	var b builder
	if len(groups) == 0 {
		b.Printf("No matching transactions.\n")
		return b.String()
	}

	b.Head([]string{title(by), "Count", "In", "Out", "Net"}, 1, 2, 3, 4)
	for _, g := range groups {
		b.Row(g.Key, itoa(g.Count), g.Credits.String(), g.Debits.String(), g.Sum.SignedString())
	}
	return b.String()
}

// AggregatesMarkdown renders the scalar answers over a selection, one
// row per currency.
func AggregatesMarkdown(as []finsense.Aggregates) string {
	var b builder
	if len(as) == 0 {
		b.Printf("No matching transactions.\n")
		return b.String()
	}
	b.Head([]string{"Count", "Sum", "Average", "Min", "Max"}, 1, 2, 3, 4)
	for _, a := range as {
		b.Row(itoa(a.Count), a.Sum.SignedString(), a.Average.String(), a.Min.String(), a.Max.String())
	}
	return b.String()
}

func title(by finsense.GroupBy) string {
	switch by {
	case finsense.GroupByMerchant:
		return "Merchant"
	case finsense.GroupByCategory:
		return "Category"
	case finsense.GroupByMonth:
		return "Month"
	default:
		return "Key"
	}
}

func itoa(i int) string { return strconv.Itoa(i) }
