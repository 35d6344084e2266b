// Package models defines data structures for task extraction and aggregation.
package models

import "time"

// RawRecord is one logged task row taken from a dated worksheet.
type RawRecord struct {
	// Date is the worksheet date the row was read from.
	Date time.Time `json:"date"`
	// Content is the first whitespace-delimited token of the content cell.
	Content string `json:"content"`
	// Minutes is the non-negative time spent.
	Minutes float64 `json:"minutes"`
}

// CommunicationRecord is a RawRecord whose content named a counterparty in parentheses.
type CommunicationRecord struct {
	RawRecord
	// Name is the text found inside the parentheses.
	Name string `json:"name"`
}

// Record is implemented by every record class the aggregator can group.
type Record interface {
	Raw() RawRecord
	Person() string
}

// Raw returns the record itself.
func (r RawRecord) Raw() RawRecord { return r }

// Person returns an empty name; plain records carry none.
func (r RawRecord) Person() string { return "" }

// Person returns the counterparty name.
func (r CommunicationRecord) Person() string { return r.Name }
