package renderer

import (
	"strings"

	"github.com/finsense/finsense"
)

// SummaryMarkdown renders the statement summary report.
func SummaryMarkdown(s finsense.Summary) string {
	var b builder
	b.Printf("# Statement Summary: %s\n\n", s.Source)

	if s.Count == 0 {
		b.Printf("The statement has no transactions.\n")
		return b.String()
	}

	b.Printf("%d transactions from %s to %s, %d merchants",
		s.Count, s.Range.From, s.Range.To, s.MerchantCount)
	if s.CategoryCount > 0 {
		b.Printf(", %d categories", s.CategoryCount)
	}
	b.Printf(".\n\n")

	if len(s.Currencies) > 1 {
		b.Printf("Currencies: %s.\n\n", strings.Join(s.Currencies, ", "))
	}

	for i, t := range s.Totals {
		if len(s.Totals) > 1 {
			if i > 0 {
				b.Printf("\n")
			}
			b.Printf("## %s totals\n\n", t.Currency)
		}
		b.Head([]string{"Metric", "Value"}, 1)
		b.Row("Money in", t.Credits.String())
		b.Row("Money out", t.Debits.String())
		b.Row("Net", t.Sum.SignedString())
		b.Row("Average", t.Average.String())
		b.Row("Smallest", t.Min.String())
		b.Row("Largest", t.Max.String())
		b.Row("Debits", itoa(t.DebitCount))
		b.Row("Credits", itoa(t.CreditCount))
	}

	if len(s.Monthly) > 1 {
		b.Printf("\n## Monthly flow\n\n")
		b.WriteString(GroupsMarkdown(s.Monthly, finsense.GroupByMonth))
	}
	return b.String()
}
