// Package aggregate groups extracted records into summary tables.
package aggregate

import (
	"sort"
	"strings"

	"github.com/ukaji3/willdo-go/pkg/willdo/models"
)

type groupKey struct {
	content string
	name    string
}

// Aggregate groups records into a table keyed by by. A nil keep admits every
// record. Communication records grouped ByContent are grouped by
// (name, content), since their content alone does not identify a conversation.
//
// ByContent and ByName tables are ordered by total minutes descending;
// ByContentAndName tables by name ascending, then total minutes descending.
// Remaining ties fall back to the key in ascending order.
func Aggregate[R models.Record](records []R, by models.GroupBy, keep func(R) bool) models.Table {
	by = grouping[R](by)

	index := make(map[groupKey]int)
	var rows []models.AggregateRow
	for _, rec := range records {
		if keep != nil && !keep(rec) {
			continue
		}
		key := keyOf(rec, by)
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, models.AggregateRow{Content: key.content, Name: key.name})
		}
		rows[i].TotalMinutes += rec.Raw().Minutes
		rows[i].Frequency++
	}

	for i := range rows {
		rows[i].TotalHours = models.HoursOf(rows[i].TotalMinutes)
	}
	sortRows(rows, by)

	return models.Table{GroupBy: by, Rows: rows}
}

func grouping[R models.Record](by models.GroupBy) models.GroupBy {
	var zero R
	if _, named := any(zero).(models.CommunicationRecord); named && by == models.ByContent {
		return models.ByContentAndName
	}
	return by
}

func keyOf(rec models.Record, by models.GroupBy) groupKey {
	switch by {
	case models.ByName:
		return groupKey{name: rec.Person()}
	case models.ByContentAndName:
		return groupKey{content: rec.Raw().Content, name: rec.Person()}
	default:
		return groupKey{content: rec.Raw().Content}
	}
}

func sortRows(rows []models.AggregateRow, by models.GroupBy) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if by == models.ByContentAndName && a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.TotalMinutes != b.TotalMinutes {
			return a.TotalMinutes > b.TotalMinutes
		}
		if a.Content != b.Content {
			return a.Content < b.Content
		}
		return a.Name < b.Name
	})
}

// ContentContains keeps records whose content includes marker.
func ContentContains[R models.Record](marker string) func(R) bool {
	return func(r R) bool {
		return strings.Contains(r.Raw().Content, marker)
	}
}

// Not negates keep.
func Not[R models.Record](keep func(R) bool) func(R) bool {
	return func(r R) bool {
		return !keep(r)
	}
}
