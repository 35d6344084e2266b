package models

// Report holds the six aggregate tables of one analysis run.
type Report struct {
	Clerk                  Table `json:"clerk"`
	NonClerk               Table `json:"non_clerk"`
	DailyTasks             Table `json:"daily_tasks"`
	CommunicationByName    Table `json:"communication_by_name"`
	CommunicationByContent Table `json:"communication_by_content"`
	AllItems               Table `json:"all_items"`
}

// Extraction is the merged output of reading every in-range worksheet.
type Extraction struct {
	Tasks          []RawRecord           `json:"tasks"`
	DailyTasks     []RawRecord           `json:"daily_tasks"`
	Communications []CommunicationRecord `json:"communications"`
	AllItems       []RawRecord           `json:"all_items"`
	// Span is the min/max date among the worksheets actually retained.
	Span Span `json:"span"`
	// Sheets lists the retained worksheet names in file order.
	Sheets []string `json:"sheets"`
}
