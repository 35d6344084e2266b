package models

import "time"

// DateKeyLayout is the compact date form used in output filenames.
const DateKeyLayout = "20060102"

// Span is an inclusive range of calendar days.
type Span struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether d falls within the span, ignoring time of day.
func (s Span) Contains(d time.Time) bool {
	day := Day(d)
	return !day.Before(Day(s.Start)) && !day.After(Day(s.End))
}

// StartKey returns the start date formatted as YYYYMMDD.
func (s Span) StartKey() string { return s.Start.Format(DateKeyLayout) }

// EndKey returns the end date formatted as YYYYMMDD.
func (s Span) EndKey() string { return s.End.Format(DateKeyLayout) }

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
