package repository

import (
	"fmt"
	"strings"

	"github.com/atinyakov/HabitTracker/internal/filter"
)

// whereClause renders q as a SQL WHERE expression over a document table
// with columns (id, user_id, doc). Field names come from the closed key
// sets in package filter and are never client supplied.
func whereClause(q filter.Query) (string, []any) {
	conds := []string{"user_id = $1"}
	args := []any{q.Owner}

	add := func(expr, op string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf("%s %s $%d", expr, op, len(args)))
	}

	for _, c := range q.Clauses {
		expr := column(c)
		if c.Eq != nil {
			add(expr, "=", c.Eq)
		}
		if c.Lower != nil {
			add(expr, lowerOp(c.Lower), c.Lower.Value)
		}
		if c.Upper != nil {
			add(expr, upperOp(c.Upper), c.Upper.Value)
		}
	}
	return strings.Join(conds, " AND "), args
}

// column returns the typed SQL expression reading field c.Field.
func column(c filter.Clause) string {
	switch c.Type {
	case filter.TypeID:
		return "id"
	case filter.TypeNumber:
		return fmt.Sprintf("(doc->>'%s')::double precision", c.Field)
	case filter.TypeTime:
		return fmt.Sprintf("(doc->>'%s')::timestamptz", c.Field)
	case filter.TypeBool:
		return fmt.Sprintf("(doc->>'%s')::boolean", c.Field)
	default:
		return fmt.Sprintf("doc->>'%s'", c.Field)
	}
}

func lowerOp(b *filter.Bound) string {
	if b.Inclusive {
		return ">="
	}
	return ">"
}

func upperOp(b *filter.Bound) string {
	if b.Inclusive {
		return "<="
	}
	return "<"
}
