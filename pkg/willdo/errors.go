package willdo

import (
	"errors"
	"fmt"

	"github.com/ukaji3/willdo-go/pkg/willdo/parser"
)

// ErrDateFormat indicates a requested date not in YYYY-MM-DD form.
var ErrDateFormat = errors.New("invalid date format")

// ErrNoData indicates that no worksheet falls within the requested period.
var ErrNoData = parser.ErrNoData

// Reason classifies why a run failed.
type Reason string

const (
	ReasonDateFormat  Reason = "date-format-error"
	ReasonRead        Reason = "read-error"
	ReasonAggregation Reason = "aggregation-error"
	ReasonWrite       Reason = "write-error"
)

// AnalysisError is the terminal failure of a run.
type AnalysisError struct {
	Reason Reason
	Err    error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// NewAnalysisError creates a new AnalysisError.
func NewAnalysisError(reason Reason, err error) *AnalysisError {
	return &AnalysisError{
		Reason: reason,
		Err:    err,
	}
}

// Message returns the user-facing description of the failure.
func (e *AnalysisError) Message() string {
	switch e.Reason {
	case ReasonDateFormat:
		return fmt.Sprintf("日付の形式が正しくありません (YYYY-MM-DD): %v", e.Err)
	case ReasonRead:
		if errors.Is(e.Err, ErrNoData) {
			return "指定された期間内のデータがありません"
		}
		return fmt.Sprintf("WILLDOリストの読み込みに失敗しました: %v", e.Err)
	case ReasonAggregation:
		return fmt.Sprintf("分析中にエラーが発生しました: %v", e.Err)
	default:
		return fmt.Sprintf("レポートの書き込みに失敗しました: %v", e.Err)
	}
}
