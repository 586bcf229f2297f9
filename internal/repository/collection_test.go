package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/atinyakov/HabitTracker/internal/filter"
	"github.com/atinyakov/HabitTracker/internal/models"
)

const taskID = "3f1c2a9e-5b7d-4c8e-9a0b-1d2e3f4a5b6c"

func setupTasksMock(t *testing.T) (*PostgresCollection[models.Task, *models.Task], sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	coll := NewPostgresCollection[models.Task](db, "tasks")
	coll.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	cleanup := func() { db.Close() }
	return coll, mock, cleanup
}

func TestCollectionCreate_AssignsIDAndDate(t *testing.T) {
	coll, mock, cleanup := setupTasksMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO tasks (id, user_id, doc) VALUES ($1, $2, $3)`)).
		WithArgs(sqlmock.AnyArg(), "u1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	task := &models.Task{UserID: "u1", Name: "Read", Recurrence: models.RecurrenceDaily}
	if err := coll.Create(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if checkID(task.ID) != nil {
		t.Errorf("expected a UUID id, got %q", task.ID)
	}
	if !task.DateAdded.Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("expected dateAdded to be stamped, got %v", task.DateAdded)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCollectionFindOne(t *testing.T) {
	coll, mock, cleanup := setupTasksMock(t)
	defer cleanup()

	doc := `{"id":"` + taskID + `","userId":"u1","name":"Read","dateAdded":"2024-05-01T00:00:00Z","recurrence":"daily","completed":false}`
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT doc FROM tasks WHERE id = $1 AND user_id = $2`)).
		WithArgs(taskID, "u1").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow([]byte(doc)))

	task, err := coll.FindOne(context.Background(), "u1", taskID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Name != "Read" || task.UserID != "u1" || task.Recurrence != models.RecurrenceDaily {
		t.Errorf("unexpected task: %+v", task)
	}
}

func TestCollectionFindOne_ForeignOwnerIsNotFound(t *testing.T) {
	coll, mock, cleanup := setupTasksMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT doc FROM tasks WHERE id = $1 AND user_id = $2`)).
		WithArgs(taskID, "intruder").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}))

	_, err := coll.FindOne(context.Background(), "intruder", taskID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCollectionFindOne_MalformedID(t *testing.T) {
	coll, mock, cleanup := setupTasksMock(t)
	defer cleanup()

	_, err := coll.FindOne(context.Background(), "u1", "not-an-id")
	if !errors.Is(err, ErrMalformedID) {
		t.Errorf("expected ErrMalformedID, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("no query expected: %v", err)
	}
}

func TestCollectionFind_RendersMergedClauses(t *testing.T) {
	coll, mock, cleanup := setupTasksMock(t)
	defer cleanup()

	cutoff := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	q := filter.Scoped("u1")
	q.Clauses = []filter.Clause{
		{Field: "completed", Type: filter.TypeBool, Eq: true},
		{Field: "dueDate", Type: filter.TypeTime, Upper: &filter.Bound{Value: cutoff}},
	}

	rows := sqlmock.NewRows([]string{"doc"}).
		AddRow([]byte(`{"id":"a","userId":"u1","name":"One","recurrence":"none","completed":true}`)).
		AddRow([]byte(`{"id":"b","userId":"u1","name":"Two","recurrence":"none","completed":true}`))
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT doc FROM tasks WHERE user_id = $1 AND (doc->>'completed')::boolean = $2 AND (doc->>'dueDate')::timestamptz < $3 ORDER BY created_at, id LIMIT $4`)).
		WithArgs("u1", true, cutoff, filter.MaxResults).
		WillReturnRows(rows)

	tasks, err := coll.Find(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 2 || tasks[0].Name != "One" || tasks[1].Name != "Two" {
		t.Errorf("unexpected tasks: %+v", tasks)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCollectionFind_EmptyQuerySkipsStore(t *testing.T) {
	coll, mock, cleanup := setupTasksMock(t)
	defer cleanup()

	q := filter.Scoped("u1")
	q.Empty = true

	tasks, err := coll.Find(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", tasks)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("no query expected: %v", err)
	}
}

func TestCollectionFind_Error(t *testing.T) {
	coll, mock, cleanup := setupTasksMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT doc FROM tasks WHERE user_id = $1`)).
		WillReturnError(errors.New("query fail"))

	_, err := coll.Find(context.Background(), filter.Scoped("u1"))
	if err == nil || !regexp.MustCompile(`find tasks`).MatchString(err.Error()) {
		t.Errorf("expected find tasks error, got %v", err)
	}
}

func TestCollectionReplace(t *testing.T) {
	coll, mock, cleanup := setupTasksMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE tasks SET doc = $1 WHERE id = $2 AND user_id = $3`)).
		WithArgs(sqlmock.AnyArg(), taskID, "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	task := &models.Task{ID: taskID, UserID: "u1", Name: "Renamed"}
	if err := coll.Replace(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCollectionReplace_NoRowsIsNotFound(t *testing.T) {
	coll, mock, cleanup := setupTasksMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE tasks SET doc = $1 WHERE id = $2 AND user_id = $3`)).
		WithArgs(sqlmock.AnyArg(), taskID, "u2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := coll.Replace(context.Background(), &models.Task{ID: taskID, UserID: "u2"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCollectionDelete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{"deleted", 1, nil},
		{"absent or foreign", 0, ErrNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			coll, mock, cleanup := setupTasksMock(t)
			defer cleanup()

			mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM tasks WHERE id = $1 AND user_id = $2`)).
				WithArgs(taskID, "u1").
				WillReturnResult(sqlmock.NewResult(0, tc.affected))

			err := coll.Delete(context.Background(), "u1", taskID)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestWhereClause_ColumnTypes(t *testing.T) {
	lo := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	q := filter.Query{Owner: "u1", Clauses: []filter.Clause{
		{Field: "activityType", Type: filter.TypeText, Eq: "running"},
		{Field: "dateAdded", Type: filter.TypeTime, Lower: &filter.Bound{Value: lo, Inclusive: true}},
		{Field: "duration", Type: filter.TypeNumber, Lower: &filter.Bound{Value: 10.0}, Upper: &filter.Bound{Value: 60.0}},
		{Field: "id", Type: filter.TypeID, Eq: taskID},
	}}

	where, args := whereClause(q)
	want := `user_id = $1 AND doc->>'activityType' = $2 AND (doc->>'dateAdded')::timestamptz >= $3` +
		` AND (doc->>'duration')::double precision > $4 AND (doc->>'duration')::double precision < $5 AND id = $6`
	if where != want {
		t.Errorf("where =\n%s\nwant\n%s", where, want)
	}
	if len(args) != 6 || args[0] != "u1" || args[5] != taskID {
		t.Errorf("unexpected args: %v", args)
	}
}
