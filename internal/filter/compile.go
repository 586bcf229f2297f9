package filter

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/atinyakov/HabitTracker/internal/apperr"
	"github.com/atinyakov/HabitTracker/internal/models"
)

// Compile translates raw into a Query scoped to owner, using keys as the
// recognized key set. Keys absent from keys are ignored, as are keys whose
// value is null, an empty string or false.
//
// Range keys on the same field are merged into a single clause holding both
// bounds. The owner constraint is always present and cannot be replaced by
// any key.
func Compile(raw map[string]any, owner string, keys KeySet) (Query, error) {
	q := Scoped(owner)
	clauses := make(map[string]*Clause)

	for _, k := range keys {
		v, ok := raw[k.Name]
		if !ok || blank(v) {
			continue
		}

		c, ok := clauses[k.Field]
		if !ok {
			c = &Clause{Field: k.Field, Type: k.Type}
		}
		applied, contradiction, err := apply(c, k, v)
		if err != nil {
			return Query{}, apperr.Validation("Invalid filter value for " + k.Name)
		}
		if !applied {
			continue
		}
		clauses[k.Field] = c
		if contradiction || emptyRange(c) {
			q.Empty = true
		}
	}

	for _, c := range clauses {
		q.Clauses = append(q.Clauses, *c)
	}
	sortClauses(q.Clauses)
	return q, nil
}

// apply adds the constraint of k with value v to c. It reports whether a
// constraint was added and whether it contradicts an earlier equality.
func apply(c *Clause, k Key, v any) (applied, contradiction bool, err error) {
	switch k.Op {
	case OpEq:
		s, err := toText(v)
		if err != nil {
			return false, false, err
		}
		return true, setEq(c, s), nil

	case OpIsTrue, OpIsFalse:
		b, err := toBool(v)
		if err != nil || !b {
			return false, false, err
		}
		// Keys on the same flag are applied in key set order; the last one wins.
		c.Eq = k.Op == OpIsTrue
		return true, false, nil

	case OpOnDay:
		day, err := toDate(v)
		if err != nil {
			return false, false, err
		}
		tightenLower(c, Bound{Value: day, Inclusive: true})
		tightenUpper(c, Bound{Value: day.AddDate(0, 0, 1)})
		return true, false, nil
	}

	bound, err := toBound(k, v)
	if err != nil {
		return false, false, err
	}
	switch k.Op {
	case OpGt, OpGte:
		tightenLower(c, bound)
	case OpLt, OpLte:
		tightenUpper(c, bound)
	}
	return true, false, nil
}

// toBound converts v to the bound value of a range key.
func toBound(k Key, v any) (Bound, error) {
	inclusive := k.Op == OpGte || k.Op == OpLte
	if k.Type == TypeTime {
		day, err := toDate(v)
		if err != nil {
			return Bound{}, err
		}
		if k.Op == OpLte {
			return Bound{Value: day.AddDate(0, 0, 1)}, nil
		}
		return Bound{Value: day, Inclusive: inclusive}, nil
	}
	f, err := toNumber(v)
	if err != nil {
		return Bound{}, err
	}
	return Bound{Value: f, Inclusive: inclusive}, nil
}

func setEq(c *Clause, v any) (contradiction bool) {
	if c.Eq != nil && c.Eq != v {
		return true
	}
	c.Eq = v
	return false
}

func tightenLower(c *Clause, b Bound) {
	if c.Lower == nil {
		c.Lower = &b
		return
	}
	switch cmp := compare(b.Value, c.Lower.Value); {
	case cmp > 0, cmp == 0 && !b.Inclusive:
		c.Lower = &b
	}
}

func tightenUpper(c *Clause, b Bound) {
	if c.Upper == nil {
		c.Upper = &b
		return
	}
	switch cmp := compare(b.Value, c.Upper.Value); {
	case cmp < 0, cmp == 0 && !b.Inclusive:
		c.Upper = &b
	}
}

// emptyRange reports whether the bounds of c admit no value.
func emptyRange(c *Clause) bool {
	if c.Lower == nil || c.Upper == nil {
		return false
	}
	cmp := compare(c.Lower.Value, c.Upper.Value)
	return cmp > 0 || cmp == 0 && !(c.Lower.Inclusive && c.Upper.Inclusive)
}

func blank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case bool:
		return !x
	}
	return false
}

type valueError struct{}

func (valueError) Error() string { return "invalid filter value" }

func toText(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case json.Number:
		return x.String(), nil
	}
	return "", valueError{}
}

func toNumber(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case json.Number:
		return x.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(x), 64)
	}
	return 0, valueError{}
}

func toBool(v any) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(x))
	}
	return false, valueError{}
}

func toDate(v any) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, valueError{}
	}
	return models.ParseDate(strings.TrimSpace(s))
}
