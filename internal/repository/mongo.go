package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/atinyakov/HabitTracker/internal/filter"
	"github.com/atinyakov/HabitTracker/internal/metrics"
	"github.com/atinyakov/HabitTracker/internal/models"
)

// byCreation orders documents by creation date, ties broken by id.
var byCreation = bson.D{{Key: "dateAdded", Value: 1}, {Key: "_id", Value: 1}}

// MongoCollection stores documents of one resource kind in a MongoDB
// collection keyed by _id with the owner in userId.
type MongoCollection[T any, PT Document[T]] struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoCollection creates a collection backed by db.Collection(name).
func NewMongoCollection[T any, PT Document[T]](db *mongo.Database, name string) *MongoCollection[T, PT] {
	return &MongoCollection[T, PT]{coll: db.Collection(name), now: time.Now}
}

// Create assigns a new id to doc, stamps its creation date when unset and inserts it.
func (c *MongoCollection[T, PT]) Create(ctx context.Context, doc PT) error {
	defer metrics.ObserveQuery("create", c.coll.Name(), time.Now())

	doc.SetDocumentID(newID())
	doc.StampCreated(c.now().UTC())

	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert %s: %w", c.coll.Name(), err)
	}
	return nil
}

// FindOne returns the document with the given id owned by owner.
func (c *MongoCollection[T, PT]) FindOne(ctx context.Context, owner, id string) (PT, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	defer metrics.ObserveQuery("find_one", c.coll.Name(), time.Now())

	doc := PT(new(T))
	err := c.coll.FindOne(ctx, ownedBy(owner, id)).Decode(doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.coll.Name(), err)
	}
	return doc, nil
}

// Find returns the documents matching q, at most q.Limit of them.
func (c *MongoCollection[T, PT]) Find(ctx context.Context, q filter.Query) ([]T, error) {
	out := []T{}
	if q.Empty {
		return out, nil
	}
	defer metrics.ObserveQuery("find", c.coll.Name(), time.Now())

	limit := q.Limit
	if limit <= 0 || limit > filter.MaxResults {
		limit = filter.MaxResults
	}
	opts := options.Find().SetSort(byCreation).SetLimit(int64(limit))

	cur, err := c.coll.Find(ctx, mongoFilter(q), opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.coll.Name(), err)
	}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.coll.Name(), err)
	}
	return out, nil
}

// Replace overwrites the stored document that has doc's id and owner.
func (c *MongoCollection[T, PT]) Replace(ctx context.Context, doc PT) error {
	if err := checkID(doc.DocumentID()); err != nil {
		return err
	}
	defer metrics.ObserveQuery("replace", c.coll.Name(), time.Now())

	res, err := c.coll.ReplaceOne(ctx, ownedBy(doc.OwnerID(), doc.DocumentID()), doc)
	if err != nil {
		return fmt.Errorf("replace %s: %w", c.coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the document with the given id owned by owner.
func (c *MongoCollection[T, PT]) Delete(ctx context.Context, owner, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	defer metrics.ObserveQuery("delete", c.coll.Name(), time.Now())

	res, err := c.coll.DeleteOne(ctx, ownedBy(owner, id))
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func ownedBy(owner, id string) bson.D {
	return bson.D{{Key: "_id", Value: id}, {Key: "userId", Value: owner}}
}

// mongoFilter renders q as a query document. The owner comes first and each
// field carries at most one operator document.
func mongoFilter(q filter.Query) bson.D {
	f := bson.D{{Key: "userId", Value: q.Owner}}
	for _, c := range q.Clauses {
		key := c.Field
		if c.Type == filter.TypeID {
			key = "_id"
		}
		if c.Lower == nil && c.Upper == nil {
			f = append(f, bson.E{Key: key, Value: c.Eq})
			continue
		}

		ops := bson.D{}
		if c.Eq != nil {
			ops = append(ops, bson.E{Key: "$eq", Value: c.Eq})
		}
		if c.Lower != nil {
			op := "$gt"
			if c.Lower.Inclusive {
				op = "$gte"
			}
			ops = append(ops, bson.E{Key: op, Value: c.Lower.Value})
		}
		if c.Upper != nil {
			op := "$lt"
			if c.Upper.Inclusive {
				op = "$lte"
			}
			ops = append(ops, bson.E{Key: op, Value: c.Upper.Value})
		}
		f = append(f, bson.E{Key: key, Value: ops})
	}
	return f
}

// MongoUserRepository implements user account storage on MongoDB.
type MongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository creates a user repository over db.Collection("users").
// Unique indexes on username and email are created by db.InitMongo.
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection("users")}
}

// UsernameExists checks whether a user with the specified username exists.
func (r *MongoUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username", username)
}

// EmailExists checks whether a user with the specified email exists.
func (r *MongoUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email", email)
}

func (r *MongoUserRepository) exists(ctx context.Context, field, value string) (bool, error) {
	defer metrics.ObserveQuery("exists", "users", time.Now())

	n, err := r.coll.CountDocuments(ctx, bson.D{{Key: field, Value: value}}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return n > 0, nil
}

// Create inserts u, assigning it a new id and creation time.
func (r *MongoUserRepository) Create(ctx context.Context, u *models.User) error {
	defer metrics.ObserveQuery("create", "users", time.Now())

	u.ID = newID()
	u.CreatedAt = time.Now().UTC()

	if _, err := r.coll.InsertOne(ctx, u); err != nil {
		return fmt.Errorf("insert user: %w", duplicateMongoUser(err))
	}
	return nil
}

// FindByUsername returns the user with the given username, or ErrNotFound.
func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	defer metrics.ObserveQuery("find_one", "users", time.Now())

	var u models.User
	err := r.coll.FindOne(ctx, bson.D{{Key: "username", Value: username}}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// duplicateMongoUser maps duplicate key errors on the users indexes to sentinels.
func duplicateMongoUser(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}
	switch msg := err.Error(); {
	case strings.Contains(msg, "username"):
		return ErrDuplicateUsername
	case strings.Contains(msg, "email"):
		return ErrDuplicateEmail
	}
	return err
}

// MongoIngredientRepository stores the shared ingredient catalog on MongoDB.
type MongoIngredientRepository struct {
	coll *mongo.Collection
}

// NewMongoIngredientRepository creates an ingredient repository over db.Collection("ingredients").
func NewMongoIngredientRepository(db *mongo.Database) *MongoIngredientRepository {
	return &MongoIngredientRepository{coll: db.Collection("ingredients")}
}

// Create inserts ing, assigning it a new id and stamping its creation date when unset.
func (r *MongoIngredientRepository) Create(ctx context.Context, ing *models.Ingredient) error {
	defer metrics.ObserveQuery("create", "ingredients", time.Now())

	ing.ID = newID()
	if ing.DateAdded.IsZero() {
		ing.DateAdded = time.Now().UTC()
	}
	if _, err := r.coll.InsertOne(ctx, ing); err != nil {
		return fmt.Errorf("insert ingredient: %w", err)
	}
	return nil
}

// FindByNamePrefix returns up to filter.MaxResults ingredients whose name
// starts with prefix, ignoring case.
func (r *MongoIngredientRepository) FindByNamePrefix(ctx context.Context, prefix string) ([]models.Ingredient, error) {
	return r.find(ctx, namePrefix(prefix), options.Find().SetSort(byCreation).SetLimit(filter.MaxResults))
}

// FindByIDs returns the ingredients with the given ids.
func (r *MongoIngredientRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Ingredient, error) {
	if len(ids) == 0 {
		return []models.Ingredient{}, nil
	}
	return r.find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}, options.Find())
}

func (r *MongoIngredientRepository) find(ctx context.Context, f bson.D, opts *options.FindOptions) ([]models.Ingredient, error) {
	defer metrics.ObserveQuery("find", "ingredients", time.Now())

	cur, err := r.coll.Find(ctx, f, opts)
	if err != nil {
		return nil, fmt.Errorf("find ingredients: %w", err)
	}
	out := []models.Ingredient{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode ingredients: %w", err)
	}
	return out, nil
}

// namePrefix matches names starting with prefix, case-insensitively.
func namePrefix(prefix string) bson.D {
	return bson.D{{Key: "name", Value: primitive.Regex{Pattern: "^" + regexp.QuoteMeta(prefix), Options: "i"}}}
}
