package date

import "fmt"

// Range represents an inclusive range of dates. A zero From or To leaves
// that side open.
type Range struct{ From, To Date }

// NewRange returns the range [from, to].
func NewRange(from, to Date) Range { return Range{From: from, To: to} }

// Contains reports whether date is included in the range, boundaries
// included. Open sides match everything.
func (r Range) Contains(date Date) bool {
	if !r.From.IsZero() && date.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && date.After(r.To) {
		return false
	}
	return true
}

// IsOpen reports whether the range has no boundary at all.
func (r Range) IsOpen() bool { return r.From.IsZero() && r.To.IsZero() }

// Identifier computes a short unique identifier for the range, using the
// compact form when the range is a standard period (a month, a quarter, a
// year).
func (r Range) Identifier() string {
	switch {
	case r.From.IsZero() || r.To.IsZero():
		return fmt.Sprintf("%s..%s", r.From, r.To)
	case r.From == r.To:
		return r.From.String()
	case r.From.Day() == 1 && r.From.EndOf(Monthly) == r.To && r.From.Month() == r.To.Month():
		return r.From.Format("2006-01")
	case r.From.StartOf(Quarterly) == r.From && r.From.EndOf(Quarterly) == r.To:
		return fmt.Sprintf("%d-Q%d", r.From.Year(), (int(r.From.Month())-1)/3+1)
	case r.From.StartOf(Yearly) == r.From && r.From.EndOf(Yearly) == r.To:
		return r.From.Format("2006")
	default:
		return fmt.Sprintf("%s_%s", r.From, r.To)
	}
}

func (r Range) String() string {
	from, to := "...", "..."
	if !r.From.IsZero() {
		from = r.From.String()
	}
	if !r.To.IsZero() {
		to = r.To.String()
	}
	return fmt.Sprintf("from %s to %s", from, to)
}
