package renderer

import (
	"fmt"

	"github.com/finsense/finsense"
)

// MatchesMarkdown renders similarity search results, best first.
func MatchesMarkdown(matches []finsense.Match) string {
	var b builder
	if len(matches) == 0 {
		b.Printf("No similar transactions found.\n")
		return b.String()
	}

	b.Head([]string{"Score", "Date", "Merchant", "Description", "Amount"}, 0, 4)
	for _, m := range matches {
		t := m.Transaction
		b.Row(fmt.Sprintf("%.2f", m.Score), t.Date.String(), t.Merchant, t.Description, t.Amount.String())
	}
	return b.String()
}
