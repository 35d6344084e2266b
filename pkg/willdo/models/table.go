package models

import "math"

// GroupBy selects the key an aggregate table is grouped on.
type GroupBy int

const (
	// ByContent groups on the task content label.
	ByContent GroupBy = iota
	// ByName groups on the communication counterparty alone.
	ByName
	// ByContentAndName groups on the (content, name) pair.
	ByContentAndName
)

func (g GroupBy) String() string {
	switch g {
	case ByContent:
		return "content"
	case ByName:
		return "name"
	case ByContentAndName:
		return "content+name"
	}
	return "unknown"
}

// AggregateRow is the summary of every record sharing one group key.
type AggregateRow struct {
	// Content is empty for ByName tables.
	Content string `json:"content,omitempty"`
	// Name is empty for ByContent tables.
	Name         string  `json:"name,omitempty"`
	TotalMinutes float64 `json:"total_minutes"`
	TotalHours   int     `json:"total_hours"`
	Frequency    int     `json:"frequency"`
}

// HoursOf converts minutes to whole hours, truncating.
func HoursOf(minutes float64) int {
	return int(math.Floor(minutes / 60))
}

// Table is an ordered aggregate table.
type Table struct {
	GroupBy GroupBy        `json:"group_by"`
	Rows    []AggregateRow `json:"rows"`
}

// Columns returns the canonical column order for the table.
func (t Table) Columns() []string {
	switch t.GroupBy {
	case ByName:
		return []string{"name", "total_minutes", "total_hours", "frequency"}
	case ByContentAndName:
		return []string{"content", "name", "total_minutes", "total_hours", "frequency"}
	default:
		return []string{"content", "total_minutes", "total_hours", "frequency"}
	}
}

// Values returns row's cells in the table's column order.
func (t Table) Values(row AggregateRow) []interface{} {
	switch t.GroupBy {
	case ByName:
		return []interface{}{row.Name, row.TotalMinutes, row.TotalHours, row.Frequency}
	case ByContentAndName:
		return []interface{}{row.Content, row.Name, row.TotalMinutes, row.TotalHours, row.Frequency}
	default:
		return []interface{}{row.Content, row.TotalMinutes, row.TotalHours, row.Frequency}
	}
}

// Total sums every row into a single grand total row.
func (t Table) Total() AggregateRow {
	var total AggregateRow
	for _, r := range t.Rows {
		total.TotalMinutes += r.TotalMinutes
		total.Frequency += r.Frequency
	}
	total.TotalHours = HoursOf(total.TotalMinutes)
	return total
}
