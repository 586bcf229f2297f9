// Package repository provides owner-scoped document storage for tasks,
// activities and meals, plus the user and ingredient stores, on top of
// PostgreSQL or MongoDB.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/atinyakov/HabitTracker/internal/filter"
	"github.com/atinyakov/HabitTracker/internal/metrics"
	"github.com/atinyakov/HabitTracker/internal/models"
)

// Document is satisfied by the pointer type of every owned resource.
type Document[T any] interface {
	*T
	models.Owned
}

// PostgresCollection stores documents of one resource kind as JSONB rows
// in table (id, user_id, doc, created_at).
type PostgresCollection[T any, PT Document[T]] struct {
	// DB is the database handle for executing queries.
	DB    *sql.DB
	table string
	now   func() time.Time
}

// NewPostgresCollection creates a collection over the given table.
// table must be one of the tables created by db.InitPostgres.
func NewPostgresCollection[T any, PT Document[T]](db *sql.DB, table string) *PostgresCollection[T, PT] {
	return &PostgresCollection[T, PT]{DB: db, table: table, now: time.Now}
}

// Create assigns a new id to doc, stamps its creation date when unset and
// inserts it.
func (c *PostgresCollection[T, PT]) Create(ctx context.Context, doc PT) error {
	defer metrics.ObserveQuery("create", c.table, time.Now())

	doc.SetDocumentID(newID())
	doc.StampCreated(c.now().UTC())

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.table, err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, user_id, doc) VALUES ($1, $2, $3)`, c.table)
	if _, err := c.DB.ExecContext(ctx, query, doc.DocumentID(), doc.OwnerID(), string(raw)); err != nil {
		return fmt.Errorf("insert %s: %w", c.table, err)
	}
	return nil
}

// FindOne returns the document with the given id owned by owner.
// It returns ErrNotFound when the document is absent or owned by someone else.
func (c *PostgresCollection[T, PT]) FindOne(ctx context.Context, owner, id string) (PT, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	defer metrics.ObserveQuery("find_one", c.table, time.Now())

	var raw []byte
	query := fmt.Sprintf(`SELECT doc FROM %s WHERE id = $1 AND user_id = $2`, c.table)
	err := c.DB.QueryRowContext(ctx, query, id, owner).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.table, err)
	}

	doc := PT(new(T))
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.table, err)
	}
	return doc, nil
}

// Find returns the documents matching q in creation order, at most q.Limit of them.
func (c *PostgresCollection[T, PT]) Find(ctx context.Context, q filter.Query) ([]T, error) {
	out := []T{}
	if q.Empty {
		return out, nil
	}
	defer metrics.ObserveQuery("find", c.table, time.Now())

	where, args := whereClause(q)
	limit := q.Limit
	if limit <= 0 || limit > filter.MaxResults {
		limit = filter.MaxResults
	}
	args = append(args, limit)
	query := fmt.Sprintf(`SELECT doc FROM %s WHERE %s ORDER BY created_at, id LIMIT $%d`, c.table, where, len(args))

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		var doc T
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", c.table, err)
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find %s: %w", c.table, err)
	}
	return out, nil
}

// Replace overwrites the stored document that has doc's id and owner.
func (c *PostgresCollection[T, PT]) Replace(ctx context.Context, doc PT) error {
	if err := checkID(doc.DocumentID()); err != nil {
		return err
	}
	defer metrics.ObserveQuery("replace", c.table, time.Now())

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.table, err)
	}

	query := fmt.Sprintf(`UPDATE %s SET doc = $1 WHERE id = $2 AND user_id = $3`, c.table)
	res, err := c.DB.ExecContext(ctx, query, string(raw), doc.DocumentID(), doc.OwnerID())
	if err != nil {
		return fmt.Errorf("update %s: %w", c.table, err)
	}
	return requireAffected(res)
}

// Delete removes the document with the given id owned by owner.
func (c *PostgresCollection[T, PT]) Delete(ctx context.Context, owner, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	defer metrics.ObserveQuery("delete", c.table, time.Now())

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, c.table)
	res, err := c.DB.ExecContext(ctx, query, id, owner)
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.table, err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
