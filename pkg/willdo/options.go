// Package willdo summarizes time-tracking workbooks into report workbooks.
package willdo

import (
	"errors"
	"fmt"

	"github.com/ukaji3/willdo-go/pkg/willdo/aggregate"
	"github.com/ukaji3/willdo-go/pkg/willdo/parser"
	"github.com/ukaji3/willdo-go/pkg/willdo/writer"
)

// DateLayout is the format of requested start and end dates.
const DateLayout = "2006-01-02"

// Options configures an analysis run.
type Options struct {
	// Ranges are the row windows scanned on every worksheet.
	Ranges parser.RowRanges
	// Layout locates the date cell and task columns.
	Layout parser.Layout
	// InputPath is the source time-tracking workbook.
	InputPath string
	// TemplatePath is the report template holding the destination tabs.
	TemplatePath string
	// OutputDir receives the report; it is created if missing.
	OutputDir string
	// ReportPrefix starts the report filename.
	ReportPrefix string
	// HeaderRows is the depth of the header on every template tab.
	HeaderRows int
	// ClerkMarker splits plain tasks into clerk and non-clerk tables.
	ClerkMarker string
	// CSVDir, when set, also receives CSV summaries.
	CSVDir string
}

// DefaultOptions returns options with the standard layout, prefix and
// marker. Paths and row ranges must still be supplied.
func DefaultOptions() Options {
	return Options{
		Layout:       parser.DefaultLayout(),
		ReportPrefix: writer.DefaultPrefix,
		HeaderRows:   writer.DefaultHeaderRows,
		ClerkMarker:  aggregate.DefaultClerkMarker,
	}
}

// Validate checks the ranges, layout and required paths.
func (o Options) Validate() error {
	if err := o.Ranges.Validate(); err != nil {
		return err
	}
	if err := o.Layout.Validate(); err != nil {
		return err
	}
	switch {
	case o.HeaderRows < 0:
		return fmt.Errorf("header rows must not be negative, got %d", o.HeaderRows)
	case o.InputPath == "":
		return errors.New("input path is required")
	case o.TemplatePath == "":
		return errors.New("template path is required")
	case o.OutputDir == "":
		return errors.New("output directory is required")
	}
	return nil
}
