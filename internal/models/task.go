package models

import "time"

// Recurrence is how often a task repeats.
type Recurrence string

const (
	// RecurrenceNone marks a one-off task with a due date.
	RecurrenceNone Recurrence = "none"
	// RecurrenceDaily repeats every day.
	RecurrenceDaily Recurrence = "daily"
	// RecurrenceWeekly repeats every week.
	RecurrenceWeekly Recurrence = "weekly"
	// RecurrenceMonthly repeats every month.
	RecurrenceMonthly Recurrence = "monthly"
)

// Recurrences lists the accepted recurrence values.
var Recurrences = []Recurrence{RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly}

// Task is a to-do item owned by a user.
type Task struct {
	// ID is the unique identifier for the task.
	ID string `json:"id" bson:"_id"`
	// UserID is the owner of the task.
	UserID string `json:"userId" bson:"userId"`
	// Name is the task title.
	Name string `json:"name" bson:"name"`
	// Description is an optional free-form note.
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	// DateAdded is when the task was created.
	DateAdded time.Time `json:"dateAdded" bson:"dateAdded"`
	// Recurrence is the repeat pattern.
	Recurrence Recurrence `json:"recurrence" bson:"recurrence"`
	// RecurringDate anchors a repeating task.
	RecurringDate *time.Time `json:"recurringDate,omitempty" bson:"recurringDate,omitempty"`
	// DueDate is the deadline of a one-off task.
	DueDate *time.Time `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	// Completed reports whether the task is done.
	Completed bool `json:"completed" bson:"completed"`
	// CompletedDate is when the task was last completed.
	CompletedDate *time.Time `json:"completedDate,omitempty" bson:"completedDate,omitempty"`
}

func (t *Task) DocumentID() string      { return t.ID }
func (t *Task) SetDocumentID(id string) { t.ID = id }
func (t *Task) OwnerID() string         { return t.UserID }

func (t *Task) StampCreated(now time.Time) {
	if t.DateAdded.IsZero() {
		t.DateAdded = now
	}
}

// TaskInput carries client-supplied task fields. Empty strings mean the
// field was not supplied.
type TaskInput struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Recurrence    string `json:"recurrence"`
	RecurringDate string `json:"recurringDate"`
	DueDate       string `json:"dueDate"`
}

// TaskInputFrom renders a stored task as input fields.
func TaskInputFrom(t *Task) TaskInput {
	return TaskInput{
		Name:          t.Name,
		Description:   t.Description,
		Recurrence:    string(t.Recurrence),
		RecurringDate: FormatDate(t.RecurringDate),
		DueDate:       FormatDate(t.DueDate),
	}
}

// Overlay returns in with every non-empty field of patch applied.
func (in TaskInput) Overlay(patch TaskInput) TaskInput {
	if patch.Name != "" {
		in.Name = patch.Name
	}
	if patch.Description != "" {
		in.Description = patch.Description
	}
	if patch.Recurrence != "" {
		in.Recurrence = patch.Recurrence
	}
	if patch.RecurringDate != "" {
		in.RecurringDate = patch.RecurringDate
	}
	if patch.DueDate != "" {
		in.DueDate = patch.DueDate
	}
	return in
}

// Apply copies every non-empty field of in onto t. in must already be
// validated.
func (in TaskInput) Apply(t *Task) {
	if in.Name != "" {
		t.Name = in.Name
	}
	if in.Description != "" {
		t.Description = in.Description
	}
	if in.Recurrence != "" {
		t.Recurrence = Recurrence(in.Recurrence)
	}
	if d, err := ParseDate(in.RecurringDate); err == nil {
		t.RecurringDate = &d
	}
	if d, err := ParseDate(in.DueDate); err == nil {
		t.DueDate = &d
	}
}
