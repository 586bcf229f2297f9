package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/atinyakov/HabitTracker/internal/filter"
	"github.com/atinyakov/HabitTracker/internal/metrics"
	"github.com/atinyakov/HabitTracker/internal/models"
	"github.com/lib/pq"
)

// PostgresIngredientRepository stores the shared ingredient catalog.
type PostgresIngredientRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresIngredientRepository creates a new PostgresIngredientRepository using the provided *sql.DB.
func NewPostgresIngredientRepository(db *sql.DB) *PostgresIngredientRepository {
	return &PostgresIngredientRepository{DB: db}
}

// Create inserts ing, assigning it a new id and stamping its creation date when unset.
func (r *PostgresIngredientRepository) Create(ctx context.Context, ing *models.Ingredient) error {
	defer metrics.ObserveQuery("create", "ingredients", time.Now())

	ing.ID = newID()
	if ing.DateAdded.IsZero() {
		ing.DateAdded = time.Now().UTC()
	}

	raw, err := json.Marshal(ing)
	if err != nil {
		return fmt.Errorf("encode ingredient: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, `INSERT INTO ingredients (id, doc) VALUES ($1, $2)`, ing.ID, string(raw))
	if err != nil {
		return fmt.Errorf("insert ingredient: %w", err)
	}
	return nil
}

// FindByNamePrefix returns up to filter.MaxResults ingredients whose name
// starts with prefix, ignoring case. An empty prefix matches every ingredient.
func (r *PostgresIngredientRepository) FindByNamePrefix(ctx context.Context, prefix string) ([]models.Ingredient, error) {
	defer metrics.ObserveQuery("find", "ingredients", time.Now())

	rows, err := r.DB.QueryContext(ctx, `
		SELECT doc FROM ingredients WHERE doc->>'name' ILIKE $1 ORDER BY created_at, id LIMIT $2
	`, escapeLike(prefix)+"%", filter.MaxResults)
	if err != nil {
		return nil, fmt.Errorf("FindByNamePrefix: %w", err)
	}
	defer rows.Close()
	return scanIngredients(rows)
}

// FindByIDs returns the ingredients with the given ids. Unknown ids are
// silently absent from the result.
func (r *PostgresIngredientRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Ingredient, error) {
	if len(ids) == 0 {
		return []models.Ingredient{}, nil
	}
	defer metrics.ObserveQuery("find", "ingredients", time.Now())

	rows, err := r.DB.QueryContext(ctx, `SELECT doc FROM ingredients WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("FindByIDs: %w", err)
	}
	defer rows.Close()
	return scanIngredients(rows)
}

func scanIngredients(rows *sql.Rows) ([]models.Ingredient, error) {
	out := []models.Ingredient{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		var ing models.Ingredient
		if err := json.Unmarshal(raw, &ing); err != nil {
			return nil, fmt.Errorf("decode ingredient: %w", err)
		}
		out = append(out, ing)
	}
	return out, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
