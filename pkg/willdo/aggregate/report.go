package aggregate

import "github.com/ukaji3/willdo-go/pkg/willdo/models"

// DefaultClerkMarker identifies clerk tasks by their content label.
const DefaultClerkMarker = "クラーク業務"

// Analyze builds the six report tables from one extraction. Plain tasks are
// split into a clerk view and its complement using clerkMarker.
func Analyze(ext *models.Extraction, clerkMarker string) models.Report {
	isClerk := ContentContains[models.RawRecord](clerkMarker)

	return models.Report{
		Clerk:                  Aggregate(ext.Tasks, models.ByContent, isClerk),
		NonClerk:               Aggregate(ext.Tasks, models.ByContent, Not(isClerk)),
		DailyTasks:             Aggregate(ext.DailyTasks, models.ByContent, nil),
		CommunicationByName:    Aggregate(ext.Communications, models.ByName, nil),
		CommunicationByContent: Aggregate(ext.Communications, models.ByContentAndName, nil),
		AllItems:               Aggregate(ext.AllItems, models.ByContent, nil),
	}
}
