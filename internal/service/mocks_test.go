package service

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/atinyakov/HabitTracker/internal/apperr"
	"github.com/atinyakov/HabitTracker/internal/filter"
	"github.com/atinyakov/HabitTracker/internal/models"
	"github.com/atinyakov/HabitTracker/internal/repository"
)

var fixedNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

// tokenVerifier accepts "token-<user>" and rejects anything else.
type tokenVerifier struct{}

func (tokenVerifier) Verify(token string) (string, error) {
	if token == "" {
		return "", apperr.Unauthenticated()
	}
	if len(token) > len("token-") && token[:len("token-")] == "token-" {
		return token[len("token-"):], nil
	}
	return "", apperr.InvalidCredential()
}

type mockVerifier struct {
	VerifyFunc func(token string) (string, error)
}

func (m *mockVerifier) Verify(token string) (string, error) {
	return m.VerifyFunc(token)
}

// memCollection is an in-memory owner-scoped store. Find evaluates every
// clause of the query against the JSON form of each document and records the
// last query it was given.
type memCollection[T any, PT repository.Document[T]] struct {
	mu        sync.Mutex
	docs      []PT
	lastQuery filter.Query
	seq       int
}

func (c *memCollection[T, PT]) Create(_ context.Context, doc *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	p := PT(doc)
	p.SetDocumentID(fakeID(c.seq))
	p.StampCreated(fixedNow)
	cp := *doc
	c.docs = append(c.docs, PT(&cp))
	return nil
}

func (c *memCollection[T, PT]) FindOne(_ context.Context, owner, id string) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.docs {
		if d.DocumentID() == id && d.OwnerID() == owner {
			cp := *(*T)(d)
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (c *memCollection[T, PT]) Find(_ context.Context, q filter.Query) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastQuery = q
	out := []T{}
	if q.Empty {
		return out, nil
	}
	for _, d := range c.docs {
		if d.OwnerID() != q.Owner {
			continue
		}
		if !matches(d, q.Clauses) {
			continue
		}
		out = append(out, *(*T)(d))
	}
	return out, nil
}

func (c *memCollection[T, PT]) Replace(_ context.Context, doc *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := PT(doc)
	for i, d := range c.docs {
		if d.DocumentID() == p.DocumentID() && d.OwnerID() == p.OwnerID() {
			cp := *doc
			c.docs[i] = PT(&cp)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (c *memCollection[T, PT]) Delete(_ context.Context, owner, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, d := range c.docs {
		if d.DocumentID() == id && d.OwnerID() == owner {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// matches reports whether doc satisfies every clause. Fields are read from
// the document's JSON encoding, as the JSONB store does.
func matches(doc any, clauses []filter.Clause) bool {
	data, err := json.Marshal(doc)
	if err != nil {
		return false
	}
	fields := map[string]any{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return false
	}
	for _, c := range clauses {
		v, ok := fieldValue(fields[c.Field], c.Type)
		if !ok {
			return false
		}
		if c.Eq != nil && v != c.Eq {
			return false
		}
		if c.Lower != nil && !above(v, *c.Lower) {
			return false
		}
		if c.Upper != nil && !below(v, *c.Upper) {
			return false
		}
	}
	return true
}

// fieldValue converts a decoded JSON value to the type a clause compares.
func fieldValue(raw any, typ filter.Type) (any, bool) {
	switch typ {
	case filter.TypeTime:
		s, ok := raw.(string)
		if !ok {
			return nil, false
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		return t, err == nil
	case filter.TypeNumber:
		f, ok := raw.(float64)
		return f, ok
	case filter.TypeBool:
		b, ok := raw.(bool)
		return b, ok
	default:
		s, ok := raw.(string)
		return s, ok
	}
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case float64:
		return cmp.Compare(av, b.(float64))
	case time.Time:
		return av.Compare(b.(time.Time))
	}
	return 0
}

func above(v any, b filter.Bound) bool {
	c := compareValues(v, b.Value)
	return c > 0 || c == 0 && b.Inclusive
}

func below(v any, b filter.Bound) bool {
	c := compareValues(v, b.Value)
	return c < 0 || c == 0 && b.Inclusive
}

func fakeID(n int) string {
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", n)
}

type mockIngredients struct {
	CreateFunc           func(ctx context.Context, ing *models.Ingredient) error
	FindByNamePrefixFunc func(ctx context.Context, prefix string) ([]models.Ingredient, error)
	FindByIDsFunc        func(ctx context.Context, ids []string) ([]models.Ingredient, error)
}

func (m *mockIngredients) Create(ctx context.Context, ing *models.Ingredient) error {
	return m.CreateFunc(ctx, ing)
}

func (m *mockIngredients) FindByNamePrefix(ctx context.Context, prefix string) ([]models.Ingredient, error) {
	return m.FindByNamePrefixFunc(ctx, prefix)
}

func (m *mockIngredients) FindByIDs(ctx context.Context, ids []string) ([]models.Ingredient, error) {
	return m.FindByIDsFunc(ctx, ids)
}

// catalogOf returns a FindByIDs implementation over the given ingredients.
func catalogOf(ings ...models.Ingredient) func(context.Context, []string) ([]models.Ingredient, error) {
	return func(_ context.Context, ids []string) ([]models.Ingredient, error) {
		out := []models.Ingredient{}
		for _, id := range ids {
			for _, ing := range ings {
				if ing.ID == id {
					out = append(out, ing)
				}
			}
		}
		return out, nil
	}
}

type mockUserRepo struct {
	UsernameExistsFunc func(ctx context.Context, username string) (bool, error)
	EmailExistsFunc    func(ctx context.Context, email string) (bool, error)
	CreateFunc         func(ctx context.Context, u *models.User) error
	FindByUsernameFunc func(ctx context.Context, username string) (*models.User, error)
}

func (m *mockUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	return m.UsernameExistsFunc(ctx, username)
}

func (m *mockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return m.EmailExistsFunc(ctx, email)
}

func (m *mockUserRepo) Create(ctx context.Context, u *models.User) error {
	return m.CreateFunc(ctx, u)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.FindByUsernameFunc(ctx, username)
}

type mockIssuer struct {
	IssueFunc func(userID string) (string, error)
}

func (m *mockIssuer) Issue(userID string) (string, error) {
	return m.IssueFunc(userID)
}
