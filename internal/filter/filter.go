// Package filter compiles a client-supplied filter object into an
// owner-scoped Query. Each resource kind recognizes a closed set of keys;
// any other key is ignored.
package filter

import (
	"slices"
	"sort"
	"time"
)

// MaxResults caps the number of records a list query returns.
const MaxResults = 100

// Type is the stored type of a filtered field.
type Type int

const (
	// TypeID is the document id.
	TypeID Type = iota + 1
	// TypeText is a string field.
	TypeText
	// TypeNumber is a numeric field.
	TypeNumber
	// TypeTime is a timestamp field. Filter values are calendar dates.
	TypeTime
	// TypeBool is a boolean field.
	TypeBool
)

// Op is what a filter key does to its field.
type Op int

const (
	// OpEq constrains the field to equal the value.
	OpEq Op = iota + 1
	// OpLt sets an exclusive upper bound.
	OpLt
	// OpLte sets an inclusive upper bound. For dates the whole day is included.
	OpLte
	// OpGt sets an exclusive lower bound.
	OpGt
	// OpGte sets an inclusive lower bound.
	OpGte
	// OpOnDay constrains a timestamp to one calendar day.
	OpOnDay
	// OpIsTrue constrains a boolean field to true when the key is truthy.
	OpIsTrue
	// OpIsFalse constrains a boolean field to false when the key is truthy.
	OpIsFalse
)

// Key is one recognized filter key.
type Key struct {
	// Name is the key as sent by the client.
	Name string
	// Field is the stored document field the key constrains.
	Field string
	// Type is the stored type of Field.
	Type Type
	// Op is the constraint applied.
	Op Op
}

// KeySet is the ordered list of keys a resource kind recognizes.
type KeySet []Key

// Bound is one end of a range.
type Bound struct {
	// Value is a float64 or a time.Time, matching the clause type.
	Value any
	// Inclusive reports whether Value itself matches.
	Inclusive bool
}

// Clause is the merged constraint on one field.
type Clause struct {
	// Field is the stored document field.
	Field string
	// Type is the stored type of Field.
	Type Type
	// Eq, when non-nil, is the required value.
	Eq any
	// Lower, when non-nil, is the lower bound.
	Lower *Bound
	// Upper, when non-nil, is the upper bound.
	Upper *Bound
}

// Query is an owner-scoped store query.
type Query struct {
	// Owner is the id of the user whose documents may match.
	Owner string
	// Clauses holds at most one clause per field, sorted by field name.
	Clauses []Clause
	// Limit caps the number of returned documents.
	Limit int
	// Empty is set when the clauses contradict each other.
	Empty bool
}

// Scoped returns a query matching every document of owner.
func Scoped(owner string) Query {
	return Query{Owner: owner, Limit: MaxResults}
}

// Tasks are the filter keys of the task list.
var Tasks = KeySet{
	{Name: "id", Field: "id", Type: TypeID, Op: OpEq},
	{Name: "name", Field: "name", Type: TypeText, Op: OpEq},
	{Name: "description", Field: "description", Type: TypeText, Op: OpEq},
	{Name: "recurrence", Field: "recurrence", Type: TypeText, Op: OpEq},
	{Name: "completed", Field: "completed", Type: TypeBool, Op: OpIsTrue},
	{Name: "incomplete", Field: "completed", Type: TypeBool, Op: OpIsFalse},
	{Name: "dueDate", Field: "dueDate", Type: TypeTime, Op: OpOnDay},
	{Name: "dueDateBefore", Field: "dueDate", Type: TypeTime, Op: OpLt},
	{Name: "dueDateAfter", Field: "dueDate", Type: TypeTime, Op: OpGt},
}

// Activities are the filter keys of the activity list.
var Activities = slices.Concat(KeySet{
	{Name: "id", Field: "id", Type: TypeID, Op: OpEq},
	{Name: "name", Field: "name", Type: TypeText, Op: OpEq},
	{Name: "description", Field: "description", Type: TypeText, Op: OpEq},
	{Name: "activityType", Field: "activityType", Type: TypeText, Op: OpEq},
	{Name: "dateAdded", Field: "dateAdded", Type: TypeTime, Op: OpOnDay},
	{Name: "dateAddedAfter", Field: "dateAdded", Type: TypeTime, Op: OpGte},
	{Name: "dateAddedBefore", Field: "dateAdded", Type: TypeTime, Op: OpLte},
},
	numericRange("duration"),
	numericRange("distance"),
	numericRange("calories"),
	numericRange("elevationGain"),
)

// Meals are the filter keys of the meal list.
var Meals = KeySet{
	{Name: "id", Field: "id", Type: TypeID, Op: OpEq},
	{Name: "name", Field: "name", Type: TypeText, Op: OpEq},
	{Name: "description", Field: "description", Type: TypeText, Op: OpEq},
	{Name: "mealType", Field: "mealType", Type: TypeText, Op: OpEq},
	{Name: "dateAdded", Field: "dateAdded", Type: TypeTime, Op: OpOnDay},
	{Name: "dateAddedAfter", Field: "dateAdded", Type: TypeTime, Op: OpGte},
	{Name: "dateAddedBefore", Field: "dateAdded", Type: TypeTime, Op: OpLte},
}

func numericRange(field string) KeySet {
	return KeySet{
		{Name: field + "LessThan", Field: field, Type: TypeNumber, Op: OpLt},
		{Name: field + "GreaterThan", Field: field, Type: TypeNumber, Op: OpGt},
	}
}

// sortClauses orders clauses by field name.
func sortClauses(cs []Clause) {
	sort.Slice(cs, func(i, j int) bool { return cs[i].Field < cs[j].Field })
}

// compare orders two bound values of the same type.
func compare(a, b any) int {
	switch av := a.(type) {
	case float64:
		bv := b.(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case time.Time:
		return av.Compare(b.(time.Time))
	}
	return 0
}
