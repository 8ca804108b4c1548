package finsense

import "github.com/finsense/finsense/date"

// Aliases of the date package types, so that most callers only need to
// import this package.

// Date represents a calendar day with day-level granularity.
type Date = date.Date

// Range represents an inclusive range of dates.
type Range = date.Range

// Period is a standard reporting period (day, week, month, quarter, year).
type Period = date.Period

const (
	Daily     = date.Daily
	Weekly    = date.Weekly
	Monthly   = date.Monthly
	Quarterly = date.Quarterly
	Yearly    = date.Yearly
)

// Today returns the current date.
func Today() Date { return date.Today() }

// NewDate returns a normalized Date for the given year, month, and day.
var NewDate = date.New

// ParseDate parses a date string in any of the supported statement layouts.
func ParseDate(s string) (Date, error) { return date.Parse(s) }

// MustParseDate is like ParseDate but panics on error.
func MustParseDate(s string) Date { return date.MustParse(s) }

// NewRange returns the inclusive range [from, to].
func NewRange(from, to Date) Range { return date.NewRange(from, to) }

// ParsePeriod parses a period name ("month", "quarterly", ...).
func ParsePeriod(s string) (Period, error) { return date.ParsePeriod(s) }
