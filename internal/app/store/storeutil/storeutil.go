// internal/app/store/storeutil/storeutil.go
package storeutil

import (
	"context"
	"errors"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Expected failure modes shared by every entity store. Handlers match these
// with errors.Is and map them to HTTP statuses; anything else is unexpected.
var (
	// ErrInvalidID is returned when an id is not a 24-character hex ObjectID.
	ErrInvalidID = errors.New("invalid id")
	// ErrNotFound is returned when a mutation matched no document.
	ErrNotFound = errors.New("not found")
	// ErrSlugExists is returned when a package slug is already taken.
	ErrSlugExists = errors.New("slug already exists")
	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("duplicate key")
)

// ParseID converts a hex id into an ObjectID, returning ErrInvalidID when the
// format is wrong.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}

// MapDup translates a unique index violation into dupErr and passes any other
// error through unchanged.
func MapDup(err, dupErr error) error {
	if err != nil && wafflemongo.IsDup(err) {
		return dupErr
	}
	return err
}

// FindAll runs a Find and decodes every result. The returned slice is never
// nil, so empty results encode as [] rather than null.
func FindAll[T any](ctx context.Context, c *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cur, err := c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// FindByID loads one document by hex id. A missing document is (nil, nil);
// a malformed id is ErrInvalidID.
func FindByID[T any](ctx context.Context, c *mongo.Collection, id string) (*T, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	var doc T
	err = c.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpdateByID applies $set to one document and returns the updated version.
// It returns ErrInvalidID for a malformed id and ErrNotFound when nothing matched.
func UpdateByID[T any](ctx context.Context, c *mongo.Collection, id string, set bson.M) (*T, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	var doc T
	err = c.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// DeleteByID hard-deletes one document by hex id, distinguishing a malformed
// id (ErrInvalidID) from a missing document (ErrNotFound).
func DeleteByID(ctx context.Context, c *mongo.Collection, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	res, err := c.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountBy groups the collection by field and returns the count per value.
func CountBy(ctx context.Context, c *mongo.Collection, field string) (map[string]int64, error) {
	cur, err := c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "n", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Key   string `bson:"_id"`
		Count int64  `bson:"n"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Count
	}
	return out, nil
}

// DefaultPageSize is used when Page is given a non-positive limit.
const DefaultPageSize int64 = 50

// Page returns find options selecting the 1-based page of size limit.
// Callers add their own sort.
func Page(page, limit int64) *options.FindOptions {
	if limit < 1 {
		limit = DefaultPageSize
	}
	skip := int64(0)
	if page > 1 {
		skip = (page - 1) * limit
	}
	return options.Find().SetSkip(skip).SetLimit(limit)
}

// StringsOrEmpty returns s, or an empty non-nil slice when s is nil.
func StringsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
