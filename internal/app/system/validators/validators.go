// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// collections lists every collection the app writes, with its validator.
// A nil schema only guarantees the collection exists.
var collections = []struct {
	name   string
	schema bson.M
}{
	{"packages", packagesSchema()},
	{"enquiries", enquiriesSchema()},
	{"reviews", reviewsSchema()},
	{"home_collections", homeCollectionsSchema()},
	{"partner_hotels", orderedSchema("name")},
	{"adventure_activities", orderedSchema("label")},
	{"popular_destinations", destinationsSchema()},
	{"chat_conversations", chatSchema()},
	{"admin_users", adminUsersSchema()},
	{"admin_sessions", nil},
	{"admin_login_attempts", nil},
}

// EnsureAll creates missing collections and attaches their JSON-Schema
// validators. Servers without collMod support (some DocumentDB versions) keep
// the collection and skip the validator. Every collection is attempted; the
// returned error joins all failures.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	existing, err := collectionNames(ctx, db)
	if err != nil {
		zap.L().Warn("listing collections failed; creating blindly", zap.Error(err))
	}

	var errs []error
	for _, c := range collections {
		if !existing[c.name] {
			if err := createCollection(ctx, db, c.name); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", c.name, err))
				continue
			}
		}
		if c.schema == nil {
			continue
		}
		if err := setValidator(ctx, db, c.name, c.schema); err != nil {
			if unsupported(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", c.name))
				continue
			}
			errs = append(errs, fmt.Errorf("%s: validator: %w", c.name, err))
		}
	}
	return errors.Join(errs...)
}

func collectionNames(ctx context.Context, db *mongo.Database) (map[string]bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return map[string]bool{}, err
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set, nil
}

// createCollection tolerates a concurrent creator winning the race.
func createCollection(ctx context.Context, db *mongo.Database, name string) error {
	err := db.CreateCollection(ctx, name)
	switch {
	case err == nil:
		zap.L().Info("created collection", zap.String("collection", name))
		return nil
	case alreadyExists(err):
		return nil
	default:
		return err
	}
}

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	return db.RunCommand(ctx, cmd).Err()
}

// commandFailure reports whether err carries one of codes, or mentions one of
// phrases in its message.
func commandFailure(err error, codes []int32, phrases ...string) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		for _, c := range codes {
			if ce.Code == c {
				return true
			}
		}
	}
	msg := strings.ToLower(err.Error())
	for _, p := range phrases {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// NamespaceExists is code 48.
func alreadyExists(err error) bool {
	return commandFailure(err, []int32{48}, "already exists", "namespace exists")
}

// CommandNotFound (59) and CommandNotSupported (115).
func unsupported(err error) bool {
	return commandFailure(err, []int32{59, 115}, "no such command", "not implemented", "not supported")
}

/* ------------------------------- schemas -------------------------------- */

var (
	nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}
	intMin1  = bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 1}
	intMin0  = bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0}
	money    = bson.M{"bsonType": bson.A{"double", "int", "long", "decimal"}, "minimum": 0}
)

func oneOf(values ...any) bson.M { return bson.M{"enum": bson.A(values)} }

// object wraps properties in a $jsonSchema document with the given required fields.
func object(props bson.M, required ...any) bson.M {
	return bson.M{"$jsonSchema": bson.M{
		"bsonType":   "object",
		"required":   bson.A(required),
		"properties": props,
	}}
}

func packagesSchema() bson.M {
	return object(bson.M{
		"slug":                      nonBlank,
		"title":                     nonBlank,
		"destination_name":          nonBlank,
		"duration_days":             intMin1,
		"starting_price_per_person": money,
		"currency_code":             bson.M{"bsonType": "string"},
		"status":                    oneOf("draft", "published", "archived"),
	}, "slug", "title", "destination_name", "duration_days", "starting_price_per_person", "status")
}

func enquiriesSchema() bson.M {
	return object(bson.M{
		"full_name":          nonBlank,
		"email":              nonBlank,
		"phone":              nonBlank,
		"number_of_adults":   intMin1,
		"number_of_children": intMin0,
		"status":             oneOf("new", "contacted", "in_progress", "closed"),
	}, "full_name", "email", "phone", "number_of_adults", "status")
}

func reviewsSchema() bson.M {
	return object(bson.M{
		"full_name": nonBlank,
		"comment":   nonBlank,
		"rating":    bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 1, "maximum": 5},
		"status":    oneOf("pending", "approved", "rejected"),
	}, "full_name", "rating", "comment", "status")
}

func homeCollectionsSchema() bson.M {
	return object(bson.M{
		"category":  oneOf("top", "offbeat"),
		"title":     nonBlank,
		"image_url": nonBlank,
	}, "category", "title", "image_url")
}

// orderedSchema covers the showcase collections keyed by one display field.
func orderedSchema(field string) bson.M {
	return object(bson.M{
		field:       nonBlank,
		"image_url": nonBlank,
	}, field, "image_url")
}

func destinationsSchema() bson.M {
	return object(bson.M{
		"name":      nonBlank,
		"image_url": nonBlank,
		"size":      oneOf("small", "medium", "large"),
	}, "name", "image_url", "size")
}

func chatSchema() bson.M {
	message := bson.M{
		"bsonType": "object",
		"required": bson.A{"role", "content"},
		"properties": bson.M{
			"role": oneOf("user", "assistant"),
		},
	}
	return object(bson.M{
		"session_id": nonBlank,
		"messages":   bson.M{"bsonType": "array", "items": message},
	}, "session_id", "messages")
}

func adminUsersSchema() bson.M {
	return object(bson.M{
		"email":         nonBlank,
		"password_hash": nonBlank,
		"role":          oneOf("admin", "superadmin"),
		"is_active":     bson.M{"bsonType": "bool"},
	}, "email", "password_hash", "role")
}
