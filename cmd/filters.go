package cmd

import (
	"flag"
	"fmt"

	"github.com/finsense/finsense"
)

// filterFlags holds the selection flags shared by the subcommands that
// query the statement. See `fin topic queries`.
type filterFlags struct {
	from     string
	to       string
	period   string
	date     string
	merchant string
	category string
	sign     string
	min      string
	max      string
}

func (c *filterFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "First date to include, inclusive.")
	f.StringVar(&c.to, "to", "", "Last date to include, inclusive.")
	f.StringVar(&c.period, "p", "", "Period filter (day, week, month, quarter, year). Overrides -from/-to.")
	f.StringVar(&c.date, "d", finsense.Today().String(), "Date selecting the -p period.")
	f.StringVar(&c.merchant, "merchant", "", "Keep transactions whose merchant or description contains this text.")
	f.StringVar(&c.category, "category", "", "Keep transactions with this category.")
	f.StringVar(&c.sign, "sign", "all", "Direction filter: all, debits or credits.")
	f.StringVar(&c.min, "min", "", "Keep transactions with a signed amount >= this value.")
	f.StringVar(&c.max, "max", "", "Keep transactions with a signed amount <= this value.")
}

// Query builds the structured query from the flags. Amount bounds are
// parsed in the given currency.
func (c *filterFlags) Query(currency string) (finsense.Query, error) {
	var q finsense.Query
	var err error

	if c.period != "" {
		period, err := finsense.ParsePeriod(c.period)
		if err != nil {
			return q, err
		}
		on, err := finsense.ParseDate(c.date)
		if err != nil {
			return q, fmt.Errorf("parsing -d: %w", err)
		}
		q.Range = period.Range(on)
	} else {
		if c.from != "" {
			if q.Range.From, err = finsense.ParseDate(c.from); err != nil {
				return q, fmt.Errorf("parsing -from: %w", err)
			}
		}
		if c.to != "" {
			if q.Range.To, err = finsense.ParseDate(c.to); err != nil {
				return q, fmt.Errorf("parsing -to: %w", err)
			}
		}
	}

	q.Merchant = c.merchant
	q.Category = c.category
	if q.Sign, err = finsense.ParseSign(c.sign); err != nil {
		return q, err
	}

	if c.min != "" {
		m, err := finsense.ParseMoney(c.min, currency)
		if err != nil {
			return q, fmt.Errorf("parsing -min: %w", err)
		}
		q.Min = &m
	}
	if c.max != "" {
		m, err := finsense.ParseMoney(c.max, currency)
		if err != nil {
			return q, fmt.Errorf("parsing -max: %w", err)
		}
		q.Max = &m
	}
	return q, nil
}
