package intelligence

import (
	"fmt"
	"strings"

	"github.com/mwinther/scoutline/internal/domain"
)

// selectedCall is the wire shape the model must produce: one operation name
// plus its structured arguments.
type selectedCall struct {
	Operation string         `json:"operation"`
	Arguments map[string]any `json:"arguments"`
}

// decodeOperation turns a raw model call into a typed Operation, enforcing
// each operation's argument schema. Returns ErrNoOperation when the model
// declined to pick, or an *OperationError naming what is missing.
func decodeOperation(call selectedCall) (Operation, error) {
	name := strings.TrimSpace(strings.ToLower(call.Operation))
	if name == "" || name == "none" {
		return nil, ErrNoOperation
	}
	args := call.Arguments
	if args == nil {
		args = map[string]any{}
	}

	switch OpName(name) {
	case OpStartView:
		profileName, ok := argString(args, "profile_name")
		if !ok {
			return nil, &OperationError{Op: OpStartView, Message: "a new view must be anchored by a profile (profile_name is required)"}
		}
		return StartView{
			ProfileName: profileName,
			Filters:     decodeFilters(args["filters"]),
		}, nil

	case OpRefineView:
		op := RefineView{
			Filters:       decodeFilters(args["filters"]),
			SortAscending: true,
		}
		op.SortBy, _ = argString(args, "sort_by")
		if asc, ok := args["sort_ascending"].(bool); ok {
			op.SortAscending = asc
		}
		op.AttachProfile, _ = argString(args, "attach_profile")
		return op, nil

	case OpPlotView:
		x, okX := argString(args, "x_axis")
		y, okY := argString(args, "y_axis")
		if !okX || !okY {
			return nil, &OperationError{Op: OpPlotView, Message: missingFields(map[string]bool{"x_axis": okX, "y_axis": okY})}
		}
		title, ok := argString(args, "title")
		if !ok {
			title = fmt.Sprintf("%s vs %s", y, x)
		}
		return PlotView{XAxis: x, YAxis: y, Title: title}, nil

	case OpAppendRecord:
		store, okStore := argString(args, "store_name")
		values, okValues := args["values"].(map[string]any)
		okValues = okValues && len(values) > 0
		if !okStore || !okValues {
			return nil, &OperationError{Op: OpAppendRecord, Message: missingFields(map[string]bool{"store_name": okStore, "values": okValues})}
		}
		return AppendRecord{StoreName: store, Values: values}, nil

	case OpQueryRecords:
		store, okStore := argString(args, "store_name")
		question, okQ := argString(args, "question")
		if !okStore || !okQ {
			return nil, &OperationError{Op: OpQueryRecords, Message: missingFields(map[string]bool{"store_name": okStore, "question": okQ})}
		}
		return QueryRecords{StoreName: store, Question: question}, nil
	}

	return nil, &OperationError{Op: OpName(name), Message: fmt.Sprintf("unknown operation %q", call.Operation)}
}

// decodeFilters converts a raw filters argument into predicates. Entries
// that are not objects are dropped; incomplete predicates are kept and
// diagnosed later when applied, matching the skip-and-continue policy.
func decodeFilters(raw any) []domain.Predicate {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	var preds []domain.Predicate
	for _, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		p := domain.Predicate{Value: m["value"]}
		if col, ok := m["column"].(string); ok {
			p.Column = col
		}
		if op, ok := m["operator"].(string); ok {
			p.Operator = domain.Operator(strings.ToLower(strings.TrimSpace(op)))
		}
		preds = append(preds, p)
	}
	return preds
}

func argString(args map[string]any, key string) (string, bool) {
	v, ok := args[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	s = strings.TrimSpace(s)
	return s, ok && s != ""
}

// missingFields renders a stable, user-facing list of the absent fields.
func missingFields(present map[string]bool) string {
	var missing []string
	for _, field := range []string{"store_name", "values", "x_axis", "y_axis", "question"} {
		if ok, tracked := present[field]; tracked && !ok {
			missing = append(missing, field)
		}
	}
	return "missing required fields: " + strings.Join(missing, ", ")
}
