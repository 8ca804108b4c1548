package renderer

import (
	"github.com/finsense/finsense"
)

// TransactionsMarkdown renders a selection of transactions as a markdown
// table. An empty selection renders a short note instead of an empty
// table.
func TransactionsMarkdown(txs []finsense.Transaction) string {
	var b builder
	if len(txs) == 0 {
		b.Printf("No matching transactions.\n")
		return b.String()
	}

	withCategory := false
	for _, t := range txs {
		if t.Category != "" {
			withCategory = true
			break
		}
	}

	if withCategory {
		b.Head([]string{"Date", "Merchant", "Description", "Category", "Amount"}, 4)
	} else {
		b.Head([]string{"Date", "Merchant", "Description", "Amount"}, 3)
	}
	for _, t := range txs {
		if withCategory {
			b.Row(t.Date.String(), t.Merchant, t.Description, t.Category, t.Amount.String())
		} else {
			b.Row(t.Date.String(), t.Merchant, t.Description, t.Amount.String())
		}
	}
	return b.String()
}

// PreviewMarkdown renders the upload preview: the ingestion report
// followed by the first transactions of the statement.
func PreviewMarkdown(s *finsense.Statement, report *finsense.IngestReport, rows int) string {
	var b builder
	b.Printf("# Statement %s\n\n", s.Source())
	b.WriteString(IngestMarkdown(report))
	b.Printf("\n")

	if s.Len() == 0 {
		b.Printf("The statement is empty after cleaning.\n")
		return b.String()
	}

	if rows <= 0 || rows > s.Len() {
		rows = s.Len()
	}
	preview := make([]finsense.Transaction, 0, rows)
	for t := range s.All() {
		if len(preview) == rows {
			break
		}
		preview = append(preview, t)
	}

	b.Printf("## First %d of %d transactions\n\n", rows, s.Len())
	b.WriteString(TransactionsMarkdown(preview))
	return b.String()
}

// IngestMarkdown renders the per-row accounting of an ingestion.
func IngestMarkdown(report *finsense.IngestReport) string {
	var b builder
	b.Printf("%d rows: %d imported, %d dropped", report.TotalRows, report.Imported, report.Dropped())
	if report.Dropped() > 0 {
		b.Printf(" (%d blank, %d bad date, %d bad amount)", report.EmptyRows, report.BadDates, report.BadAmounts)
	}
	b.Printf(".\n")
	return b.String()
}
