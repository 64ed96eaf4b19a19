package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mwinther/scoutline/internal/chart"
	"github.com/mwinther/scoutline/internal/domain"
	"github.com/mwinther/scoutline/internal/intelligence"
	"github.com/mwinther/scoutline/internal/logbook"
	"github.com/mwinther/scoutline/internal/profile"
	"github.com/mwinther/scoutline/internal/score"
)

// NLU is the language capability the router consumes. intelligence.Service
// is the production implementation; tests substitute stubs.
type NLU interface {
	ClassifyIntent(ctx context.Context, query string, history []intelligence.Turn) intelligence.Intent
	SelectOperation(ctx context.Context, instruction string, history []intelligence.Turn, query string) (intelligence.Operation, error)
	Summarize(ctx context.Context, query string, op intelligence.Operation) (string, error)
	AnswerOverTable(ctx context.Context, serializedTable, question string) (string, error)
}

// Logbooks is the record-store capability the router consumes.
type Logbooks interface {
	Has(name string) bool
	Append(name string, values map[string]any) (*logbook.AppendResult, error)
	Rows(name string) (*domain.Frame, error)
	SchemaReport() string
}

// Result is one turn's outcome. On success exactly one payload is set
// (Table+RawView, Chart, or StoreUpdate; query answers arrive as Summary
// alone) and Err is nil. On failure only Err is set and session state is
// untouched.
type Result struct {
	Summary     string
	Table       *domain.Frame // display projection of the view
	RawView     *domain.Frame // full untrimmed view
	Chart       *chart.Chart
	StoreUpdate *logbook.AppendResult
	Diagnostics []string // skipped-predicate notes, shown but non-fatal
	Err         error
}

// Router executes conversational turns against a session.
type Router struct {
	nlu      NLU
	logbooks Logbooks
	registry *profile.Registry
}

func NewRouter(nlu NLU, logbooks Logbooks, registry *profile.Registry) *Router {
	return &Router{nlu: nlu, logbooks: logbooks, registry: registry}
}

// ProcessTurn runs one user query through the full pipeline. The session is
// mutated only when the turn fully succeeds.
func (r *Router) ProcessTurn(ctx context.Context, sess *Session, query string) *Result {
	intent := r.nlu.ClassifyIntent(ctx, query, sess.Conversation)
	instruction := r.assembleContext(sess, intent)

	op, err := r.nlu.SelectOperation(ctx, instruction, sess.Conversation, query)
	if err != nil {
		return &Result{Err: selectionError(err)}
	}

	if err := r.validate(sess, op); err != nil {
		return &Result{Err: err}
	}

	res, next := r.execute(ctx, sess, op)
	if res.Err != nil {
		return res
	}

	if res.Summary == "" {
		summary, err := r.nlu.Summarize(ctx, query, op)
		if err != nil || strings.TrimSpace(summary) == "" {
			summary = fallbackSummary(op, res)
		}
		res.Summary = summary
	}

	if next.view != nil {
		sess.ActiveView = next.view
	}
	if next.profile != nil {
		sess.ActiveProfile = next.profile
	}
	sess.remember(query, res.Summary)
	return res
}

// nextState carries the state mutations an execution produced, applied only
// after the whole turn succeeds.
type nextState struct {
	view    *domain.Frame
	profile *profile.Profile
}

// assembleContext builds the per-turn instruction appended to the selector
// prompt: everything the model is allowed to name.
func (r *Router) assembleContext(sess *Session, intent intelligence.Intent) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Valid profiles: %s.\n", strings.Join(r.registry.Names(), ", "))

	cols := sess.Dataset.Columns()
	scope := "full dataset"
	if sess.HasView() {
		cols = sess.ActiveView.Columns()
		scope = "current view"
	}
	fmt.Fprintf(&b, "Available columns (%s): %s.\n", scope, strings.Join(cols, ", "))

	if report := r.logbooks.SchemaReport(); report != "" {
		fmt.Fprintf(&b, "Registered logbooks:\n%s\n", report)
	} else {
		b.WriteString("No logbooks are registered.\n")
	}

	fmt.Fprintf(&b, "A first-pass classifier read this request as '%s'.", intent)
	return b.String()
}

func (r *Router) validate(sess *Session, op intelligence.Operation) error {
	switch o := op.(type) {
	case intelligence.StartView:
		if !r.registry.Has(o.ProfileName) {
			return fmt.Errorf("unknown profile %q; valid profiles are: %s",
				o.ProfileName, strings.Join(r.registry.Names(), ", "))
		}
	case intelligence.RefineView:
		if !sess.HasView() {
			return errors.New("there is nothing to refine yet; start with a profile search first")
		}
		if o.AttachProfile != "" && !r.registry.Has(o.AttachProfile) {
			return fmt.Errorf("unknown profile %q; valid profiles are: %s",
				o.AttachProfile, strings.Join(r.registry.Names(), ", "))
		}
	case intelligence.PlotView:
		if !sess.HasView() {
			return errors.New("there is nothing to plot yet; start with a profile search first")
		}
	case intelligence.QueryRecords:
		if !r.logbooks.Has(o.StoreName) {
			return fmt.Errorf("%w: %q", logbook.ErrUnknownStore, o.StoreName)
		}
	case intelligence.AppendRecord:
		if !r.logbooks.Has(o.StoreName) {
			return fmt.Errorf("%w: %q", logbook.ErrUnknownStore, o.StoreName)
		}
	}
	return nil
}

func (r *Router) execute(ctx context.Context, sess *Session, op intelligence.Operation) (*Result, nextState) {
	switch o := op.(type) {
	case intelligence.StartView:
		return r.startView(sess, o)
	case intelligence.RefineView:
		return r.refineView(sess, o)
	case intelligence.PlotView:
		c, err := chart.Build(sess.ActiveView, sess.Dataset, o.XAxis, o.YAxis, o.Title)
		if err != nil {
			return &Result{Err: err}, nextState{}
		}
		return &Result{Chart: c}, nextState{}
	case intelligence.AppendRecord:
		update, err := r.logbooks.Append(o.StoreName, o.Values)
		if err != nil {
			return &Result{Err: err}, nextState{}
		}
		return &Result{StoreUpdate: update}, nextState{}
	case intelligence.QueryRecords:
		return r.queryRecords(ctx, o)
	}
	return &Result{Err: fmt.Errorf("unsupported operation %q", op.Name())}, nextState{}
}

// startView builds a fresh view: narrow the dataset to the profile's
// positional category, score every remaining row against the FULL dataset,
// apply the turn's filters, and rank best fit first.
func (r *Router) startView(sess *Session, o intelligence.StartView) (*Result, nextState) {
	p, err := r.registry.Lookup(o.ProfileName)
	if err != nil {
		return &Result{Err: err}, nextState{}
	}

	view := narrowByCategory(sess.Dataset, p.Name)

	fitCol := score.ColumnName(p.Name)
	view, err = view.WithColumn(fitCol, score.Compute(view, sess.Dataset, &p))
	if err != nil {
		return &Result{Err: err}, nextState{}
	}

	view, diags := domain.ApplyFilters(view, o.Filters)
	view = view.SortBy(fitCol, false)

	res := &Result{
		Table:       displayProjection(view, &p, turnColumns(o.Filters, "")),
		RawView:     view,
		Diagnostics: diags,
	}
	return res, nextState{view: view, profile: &p}
}

func (r *Router) refineView(sess *Session, o intelligence.RefineView) (*Result, nextState) {
	view := sess.ActiveView
	active := sess.ActiveProfile
	next := nextState{}

	// An attached profile becomes the active one for this and later turns.
	if o.AttachProfile != "" {
		p, err := r.registry.Lookup(o.AttachProfile)
		if err != nil {
			return &Result{Err: err}, nextState{}
		}
		view, err = view.WithColumn(score.ColumnName(p.Name), score.Compute(view, sess.Dataset, &p))
		if err != nil {
			return &Result{Err: err}, nextState{}
		}
		active = &p
		next.profile = &p
	}

	view, diags := domain.ApplyFilters(view, o.Filters)
	if o.SortBy != "" {
		view = view.SortBy(o.SortBy, o.SortAscending)
	}
	next.view = view

	res := &Result{
		Table:       displayProjection(view, active, turnColumns(o.Filters, o.SortBy)),
		RawView:     view,
		Diagnostics: diags,
	}
	return res, next
}

func (r *Router) queryRecords(ctx context.Context, o intelligence.QueryRecords) (*Result, nextState) {
	rows, err := r.logbooks.Rows(o.StoreName)
	if err != nil {
		return &Result{Err: err}, nextState{}
	}
	if rows.Len() == 0 {
		return &Result{Summary: fmt.Sprintf("The logbook %q has no entries yet.", o.StoreName)}, nextState{}
	}

	answer, err := r.nlu.AnswerOverTable(ctx, logbook.Serialize(rows), o.Question)
	if err != nil || strings.TrimSpace(answer) == "" {
		answer = fmt.Sprintf("I could not analyze the logbook %q right now; please try again.", o.StoreName)
	}
	return &Result{Summary: answer}, nextState{}
}

// narrowByCategory keeps only rows whose primary_category belongs to the
// profile's positional group. Profiles without a mapping, or datasets
// without the column, see the full dataset.
func narrowByCategory(dataset *domain.Frame, profileName string) *domain.Frame {
	positions, ok := profile.PositionsFor(profileName)
	if !ok || !dataset.HasColumn("primary_category") {
		return dataset
	}
	allowed := make(map[string]bool, len(positions))
	for _, pos := range positions {
		allowed[strings.ToLower(pos)] = true
	}
	return dataset.FilterRows(func(row int) bool {
		s, ok := dataset.Value(row, "primary_category").AsString()
		return ok && allowed[strings.ToLower(s)]
	})
}

func turnColumns(filters []domain.Predicate, sortBy string) []string {
	var cols []string
	for _, f := range filters {
		if f.Column != "" {
			cols = append(cols, f.Column)
		}
	}
	if sortBy != "" {
		cols = append(cols, sortBy)
	}
	return cols
}

func selectionError(err error) error {
	if errors.Is(err, intelligence.ErrNoOperation) {
		return errors.New("I could not determine what to do with that request; please rephrase it")
	}
	var opErr *intelligence.OperationError
	if errors.As(err, &opErr) {
		return opErr
	}
	return fmt.Errorf("the assistant is unavailable right now: %w", err)
}
