package aggregate

import (
	"sort"
	"time"

	"github.com/ukaji3/willdo-go/pkg/willdo/models"
)

// ByMonth totals records per calendar month, oldest month first.
func ByMonth[R models.Record](records []R) []models.MonthRow {
	index := make(map[string]int)
	var rows []models.MonthRow
	for _, rec := range records {
		raw := rec.Raw()
		month := raw.Date.Format("2006-01")
		i, ok := index[month]
		if !ok {
			i = len(rows)
			index[month] = i
			rows = append(rows, models.MonthRow{Month: month})
		}
		rows[i].TotalMinutes += raw.Minutes
		rows[i].Frequency++
	}
	for i := range rows {
		rows[i].TotalHours = models.HoursOf(rows[i].TotalMinutes)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month < rows[j].Month })
	return rows
}

// ByDay totals records per (date, content), ordered by date and then by
// total minutes descending.
func ByDay[R models.Record](records []R) []models.DayRow {
	type dayKey struct {
		date    time.Time
		content string
	}
	index := make(map[dayKey]int)
	var rows []models.DayRow
	for _, rec := range records {
		raw := rec.Raw()
		key := dayKey{date: models.Day(raw.Date), content: raw.Content}
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, models.DayRow{Date: key.date, Content: key.content})
		}
		rows[i].TotalMinutes += raw.Minutes
		rows[i].Frequency++
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.TotalMinutes != b.TotalMinutes {
			return a.TotalMinutes > b.TotalMinutes
		}
		return a.Content < b.Content
	})
	return rows
}
