package willdo

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/willdo-go/pkg/willdo/aggregate"
	"github.com/ukaji3/willdo-go/pkg/willdo/models"
	"github.com/ukaji3/willdo-go/pkg/willdo/output"
	"github.com/ukaji3/willdo-go/pkg/willdo/parser"
	"github.com/ukaji3/willdo-go/pkg/willdo/writer"
)

// State is a step of an analysis run.
type State string

const (
	StateIdle        State = "idle"
	StateReading     State = "reading"
	StateAggregating State = "aggregating"
	StateWriting     State = "writing"
	StateDone        State = "done"
	StateFailed      State = "failed"
)

// Result is the outcome of one run.
type Result struct {
	// State is StateDone or StateFailed.
	State State
	// Success reports whether the report was written.
	Success bool
	// Message describes the outcome for the user.
	Message string
	// OutputPath is the written report; empty on failure.
	OutputPath string
	// CSVPaths lists CSV summaries written, if any.
	CSVPaths []string
	// Span is the period actually covered by the report.
	Span models.Span
	// Report holds the aggregated tables on success.
	Report models.Report
	// Err is the failure, or nil.
	Err *AnalysisError
}

// Launcher opens a finished report for the user.
type Launcher interface {
	Open(path string) error
}

// Analyzer runs read, aggregate and write for one requested period. It
// keeps no state between runs beyond its options.
type Analyzer struct {
	opts     Options
	reader   *parser.Reader
	writer   *writer.Writer
	launcher Launcher
	log      logrus.FieldLogger
	observer func(State)
}

// NewAnalyzer creates an Analyzer. launcher may be nil; a nil log uses the
// logrus standard logger.
func NewAnalyzer(opts Options, launcher Launcher, log logrus.FieldLogger) *Analyzer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Analyzer{
		opts:   opts,
		reader: parser.NewReader(opts.Layout, opts.Ranges, log),
		writer: writer.New(writer.Config{
			TemplatePath: opts.TemplatePath,
			OutputDir:    opts.OutputDir,
			Prefix:       opts.ReportPrefix,
			HeaderRows:   opts.HeaderRows,
		}, log),
		launcher: launcher,
		log:      log,
	}
}

// OnTransition registers fn to be called on every state change.
func (a *Analyzer) OnTransition(fn func(State)) {
	a.observer = fn
}

// Run analyzes the period between startText and endText, both YYYY-MM-DD
// and inclusive. Malformed dates fail before any file is opened.
func (a *Analyzer) Run(startText, endText string) Result {
	state := StateIdle
	enter := func(s State) {
		a.log.WithFields(logrus.Fields{"from": state, "to": s}).Debug("analysis state")
		state = s
		if a.observer != nil {
			a.observer(s)
		}
	}
	fail := func(reason Reason, err error) Result {
		enter(StateFailed)
		ae := NewAnalysisError(reason, err)
		a.log.WithField("reason", reason).Errorf("analysis failed: %v", err)
		return Result{State: StateFailed, Message: ae.Message(), Err: ae}
	}

	span, err := ParseSpan(startText, endText)
	if err != nil {
		return fail(ReasonDateFormat, err)
	}

	enter(StateReading)
	ext, err := a.reader.ReadFile(a.opts.InputPath, span)
	if err != nil {
		return fail(ReasonRead, err)
	}

	enter(StateAggregating)
	report, err := a.aggregate(ext)
	if err != nil {
		return fail(ReasonAggregation, err)
	}

	enter(StateWriting)
	path, err := a.writer.Write(report, ext.Span)
	if err != nil {
		return fail(ReasonWrite, err)
	}

	var csvPaths []string
	if a.opts.CSVDir != "" {
		csvPaths, err = output.WriteCSVFiles(a.opts.CSVDir, report.AllItems,
			aggregate.ByMonth(ext.AllItems), aggregate.ByDay(ext.AllItems))
		if err != nil {
			a.discard(append(csvPaths, path))
			return fail(ReasonWrite, err)
		}
	}

	if a.launcher != nil {
		if err := a.launcher.Open(path); err != nil {
			a.log.WithField("path", path).Warnf("failed to open report: %v", err)
		}
	}

	enter(StateDone)
	return Result{
		State:      StateDone,
		Success:    true,
		Message:    fmt.Sprintf("分析が完了しました: %s", path),
		OutputPath: path,
		CSVPaths:   csvPaths,
		Span:       ext.Span,
		Report:     report,
	}
}

// discard removes outputs of a run that failed after writing them.
func (a *Analyzer) discard(paths []string) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			a.log.WithField("path", p).Warnf("failed to remove partial output: %v", err)
		}
	}
}

// aggregate converts a panic during aggregation into an error.
func (a *Analyzer) aggregate(ext *models.Extraction) (report models.Report, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()
	return aggregate.Analyze(ext, a.opts.ClerkMarker), nil
}

// ParseSpan parses an inclusive YYYY-MM-DD period.
func ParseSpan(startText, endText string) (models.Span, error) {
	start, err := time.Parse(DateLayout, strings.TrimSpace(startText))
	if err != nil {
		return models.Span{}, fmt.Errorf("%w: start date %q", ErrDateFormat, startText)
	}
	end, err := time.Parse(DateLayout, strings.TrimSpace(endText))
	if err != nil {
		return models.Span{}, fmt.Errorf("%w: end date %q", ErrDateFormat, endText)
	}
	return models.Span{Start: start, End: end}, nil
}
