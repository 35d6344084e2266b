package models

import "time"

// MonthRow totals every record logged within one calendar month.
type MonthRow struct {
	// Month is formatted as YYYY-MM.
	Month        string  `json:"month"`
	TotalMinutes float64 `json:"total_minutes"`
	TotalHours   int     `json:"total_hours"`
	Frequency    int     `json:"frequency"`
}

// DayRow totals one content label on one worksheet date.
type DayRow struct {
	Date         time.Time `json:"date"`
	Content      string    `json:"content"`
	TotalMinutes float64   `json:"total_minutes"`
	Frequency    int       `json:"frequency"`
}
