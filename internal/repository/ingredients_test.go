package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/atinyakov/HabitTracker/internal/filter"
	"github.com/atinyakov/HabitTracker/internal/models"
	"github.com/lib/pq"
)

func setupIngredientMock(t *testing.T) (*PostgresIngredientRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	return NewPostgresIngredientRepository(db), mock, func() { db.Close() }
}

func TestCreateIngredient(t *testing.T) {
	repo, mock, cleanup := setupIngredientMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO ingredients (id, doc) VALUES ($1, $2)`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ing := &models.Ingredient{Name: "Oats"}
	if err := repo.Create(context.Background(), ing); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ing.ID == "" || ing.DateAdded.IsZero() {
		t.Errorf("expected id and date to be set, got %+v", ing)
	}
}

func TestFindByNamePrefix_EscapesWildcards(t *testing.T) {
	repo, mock, cleanup := setupIngredientMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT doc FROM ingredients WHERE doc->>'name' ILIKE $1 ORDER BY created_at, id LIMIT $2`)).
		WithArgs(`50\%\_`+"%", filter.MaxResults).
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).
			AddRow([]byte(`{"id":"i1","name":"50%_ dark chocolate","nutritionalValue":{"calories":500}}`)))

	got, err := repo.FindByNamePrefix(context.Background(), "50%_")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].NutritionalValue.Calories != 500 {
		t.Errorf("unexpected ingredients: %+v", got)
	}
}

func TestFindByIDs(t *testing.T) {
	repo, mock, cleanup := setupIngredientMock(t)
	defer cleanup()

	ids := []string{"i1", "i2"}
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT doc FROM ingredients WHERE id = ANY($1)`)).
		WithArgs(pq.Array(ids)).
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).
			AddRow([]byte(`{"id":"i1","name":"Oats"}`)))

	got, err := repo.FindByIDs(context.Background(), ids)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "i1" {
		t.Errorf("unexpected ingredients: %+v", got)
	}
}

func TestFindByIDs_EmptySkipsStore(t *testing.T) {
	repo, mock, cleanup := setupIngredientMock(t)
	defer cleanup()

	got, err := repo.FindByIDs(context.Background(), nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty result, got %v, %v", got, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("no query expected: %v", err)
	}
}
