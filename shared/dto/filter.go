package dto

import (
	"fmt"
	"maps"
	"strings"
)

const (
	FilterOperatorEq     = "eq"
	FilterOperatorNotEq  = "not_eq"
	FilterOperatorLessEq = "less_eq"
	FilterOperatorLike   = "like"
)

const FilterGroupOperatorAnd = "AND"

var comparisons = map[string]string{
	FilterOperatorEq:     "=",
	FilterOperatorNotEq:  "!=",
	FilterOperatorLessEq: "<=",
}

// Filter is one condition on a column. The value is always bound as a named
// argument; ArgName tells two conditions on the same column apart, such as
// the id and the expected current status of a conditional update.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string
	Table    string
}

// GetWhereClause renders the condition. An unknown operator renders nothing.
func (f *Filter) GetWhereClause() (string, map[string]any) {
	column := f.Field
	if f.Table != "" {
		column = f.Table + "." + f.Field
	}

	name := f.ArgName
	if name == "" {
		name = f.Field
	}

	if f.Operator == FilterOperatorLike {
		return fmt.Sprintf("LOWER(%s) LIKE LOWER(:%s)", column, name), map[string]any{name: fmt.Sprintf("%%%v%%", f.Value)}
	}

	op, ok := comparisons[f.Operator]
	if !ok {
		return "", map[string]any{}
	}

	return fmt.Sprintf("%s %s :%s", column, op, name), map[string]any{name: f.Value}
}

// FilterGroup joins Filters and nested FilterGroups with Operator.
type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	clauses := make([]string, 0, len(f.Filters))

	for _, item := range f.Filters {
		var (
			where string
			arg   map[string]any
		)

		switch filter := item.(type) {
		case Filter:
			where, arg = filter.GetWhereClause()
		case FilterGroup:
			where, arg = filter.GetWhereClause()
		default:
			continue
		}

		if where == "" {
			continue
		}

		clauses = append(clauses, where)
		maps.Copy(args, arg)
	}

	if len(clauses) == 0 {
		return "", args
	}

	operator := f.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	return "(" + strings.Join(clauses, " "+operator+" ") + ")", args
}
