package finsense

import (
	"encoding/json"
	"strings"
)

// Transaction is one row of a bank statement: a dated, described monetary
// movement. Negative amounts are debits, positive amounts are credits.
// Duplicates are legal: the same subscription charged twice is two rows.
type Transaction struct {
	Date        Date   `json:"date"`
	Merchant    string `json:"merchant"`
	Description string `json:"description,omitempty"`
	Amount      Money  `json:"amount"`
	Category    string `json:"category,omitempty"`
}

// NewTransaction builds a transaction with a normalized merchant name.
func NewTransaction(on Date, merchant, description string, amount Money) Transaction {
	return Transaction{
		Date:        on,
		Merchant:    NormalizeMerchant(merchant),
		Description: strings.TrimSpace(description),
		Amount:      amount,
	}
}

// NormalizeMerchant trims and lowercases a merchant name, and collapses
// internal runs of whitespace, so that "  NETFLIX.COM " and "netflix.com"
// group together.
func NormalizeMerchant(merchant string) string {
	return strings.Join(strings.Fields(strings.ToLower(merchant)), " ")
}

// IsDebit reports whether the transaction is an outgoing movement.
func (t Transaction) IsDebit() bool { return t.Amount.IsNegative() }

// Text returns the text used to describe the transaction for similarity
// search, merchant plus description.
func (t Transaction) Text() string {
	text := strings.TrimSpace(t.Merchant + " " + t.Description)
	if text == "" {
		return "unknown"
	}
	return text
}

// Equal reports whether two transactions carry the same data.
func (t Transaction) Equal(o Transaction) bool {
	return t.Date == o.Date &&
		t.Merchant == o.Merchant &&
		t.Description == o.Description &&
		t.Amount.Equal(o.Amount) &&
		t.Category == o.Category
}

// MarshalJSON writes the transaction with a stable field order.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", t.Date)
	w.Append("merchant", t.Merchant)
	w.Optional("description", t.Description)
	w.Append("amount", t.Amount)
	w.Optional("category", t.Category)
	return w.MarshalJSON()
}

func (t *Transaction) UnmarshalJSON(data []byte) error {
	type alias Transaction // shed the method to avoid recursion
	return json.Unmarshal(data, (*alias)(t))
}
