package intelligence

import (
	"errors"
	"fmt"

	"github.com/mwinther/scoutline/internal/domain"
)

// Intent is the binary classification of a user turn: start a fresh view
// from the whole dataset, or refine whatever the user is already looking at.
type Intent string

const (
	IntentNewView Intent = "new_view"
	IntentRefine  Intent = "refine"
)

// Turn is one entry of the session conversation history.
type Turn struct {
	Role    string // "user" or "assistant"
	Content string
}

// OpName names one of the five typed operations the selector can produce.
type OpName string

const (
	OpStartView    OpName = "start_view"
	OpRefineView   OpName = "refine_view"
	OpPlotView     OpName = "plot_view"
	OpAppendRecord OpName = "append_record"
	OpQueryRecords OpName = "query_records"
)

// Operation is the closed set of executable operations. The router matches
// exhaustively on the concrete types, so adding an operation is a
// compile-time-checked extension.
type Operation interface {
	Name() OpName
}

// StartView begins a completely new view from the full dataset, anchored by
// a scoring profile.
type StartView struct {
	ProfileName string
	Filters     []domain.Predicate
}

func (StartView) Name() OpName { return OpStartView }

// RefineView filters, sorts, or attaches an additional profile score to the
// active view.
type RefineView struct {
	Filters       []domain.Predicate
	SortBy        string
	SortAscending bool
	AttachProfile string
}

func (RefineView) Name() OpName { return OpRefineView }

// PlotView builds a scatter chart of the active view.
type PlotView struct {
	XAxis string
	YAxis string
	Title string
}

func (PlotView) Name() OpName { return OpPlotView }

// AppendRecord appends one row to a named logbook.
type AppendRecord struct {
	StoreName string
	Values    map[string]any
}

func (AppendRecord) Name() OpName { return OpAppendRecord }

// QueryRecords answers a free-text question over a named logbook.
type QueryRecords struct {
	StoreName string
	Question  string
}

func (QueryRecords) Name() OpName { return OpQueryRecords }

// ErrNoOperation signals the model could not settle on any operation.
// Recoverable: the user is asked to rephrase, nothing else happens.
var ErrNoOperation = errors.New("no operation selected")

// OperationError is a user-facing validation failure for a selected
// operation. Its message names the missing or invalid piece.
type OperationError struct {
	Op      OpName
	Message string
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}
