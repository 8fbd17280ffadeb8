package validators

import (
	"errors"
	"testing"

	"github.com/dalemusser/stratatrips/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for run := 1; run <= 2; run++ {
		if err := EnsureAll(ctx, db); err != nil {
			t.Fatalf("EnsureAll() run %d error = %v", run, err)
		}
	}

	have, err := collectionNames(ctx, db)
	if err != nil {
		t.Fatalf("collectionNames() error = %v", err)
	}
	for _, c := range collections {
		if !have[c.name] {
			t.Errorf("collection %s missing after EnsureAll", c.name)
		}
	}
}

func TestCreateCollection_ToleratesExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 2; i++ {
		if err := createCollection(ctx, db, "scratch"); err != nil {
			t.Fatalf("createCollection() call %d error = %v", i+1, err)
		}
	}
	have, err := collectionNames(ctx, db)
	if err != nil {
		t.Fatal(err)
	}
	if !have["scratch"] {
		t.Error("scratch collection was not created")
	}
}

func TestCommandFailureClassifiers(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		exists      bool
		unsupported bool
	}{
		{"nil", nil, false, false},
		{"unrelated", errors.New("connection reset"), false, false},
		{"namespace exists code", mongo.CommandError{Code: 48, Name: "NamespaceExists"}, true, false},
		{"already exists text", errors.New("Collection Already Exists"), true, false},
		{"no such command code", mongo.CommandError{Code: 59, Name: "CommandNotFound"}, false, true},
		{"not supported code", mongo.CommandError{Code: 115, Name: "CommandNotSupported"}, false, true},
		{"not implemented text", mongo.CommandError{Message: "collMod not implemented"}, false, true},
		{"documentdb text", errors.New("Feature not supported: validator"), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := alreadyExists(tt.err); got != tt.exists {
				t.Errorf("alreadyExists() = %v, want %v", got, tt.exists)
			}
			if got := unsupported(tt.err); got != tt.unsupported {
				t.Errorf("unsupported() = %v, want %v", got, tt.unsupported)
			}
		})
	}
}

func TestSchemas(t *testing.T) {
	tests := []struct {
		name     string
		schema   bson.M
		required []string
	}{
		{"packages", packagesSchema(), []string{"slug", "title", "status"}},
		{"enquiries", enquiriesSchema(), []string{"full_name", "email", "number_of_adults"}},
		{"reviews", reviewsSchema(), []string{"rating", "comment"}},
		{"home_collections", homeCollectionsSchema(), []string{"category", "title"}},
		{"partner_hotels", orderedSchema("name"), []string{"name", "image_url"}},
		{"adventure_activities", orderedSchema("label"), []string{"label", "image_url"}},
		{"popular_destinations", destinationsSchema(), []string{"name", "size"}},
		{"chat_conversations", chatSchema(), []string{"session_id", "messages"}},
		{"admin_users", adminUsersSchema(), []string{"email", "password_hash"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			js, ok := tt.schema["$jsonSchema"].(bson.M)
			if !ok {
				t.Fatalf("$jsonSchema should be a bson.M, got %T", tt.schema["$jsonSchema"])
			}
			required, ok := js["required"].(bson.A)
			if !ok {
				t.Fatalf("required should be a bson.A, got %T", js["required"])
			}
			have := make(map[string]bool, len(required))
			for _, r := range required {
				have[r.(string)] = true
			}
			for _, want := range tt.required {
				if !have[want] {
					t.Errorf("required is missing %q", want)
				}
			}
		})
	}
}

func TestPackagesSchema_RejectsBadStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll() error = %v", err)
	}

	_, err := db.Collection("packages").InsertOne(ctx, bson.M{
		"slug":                      "bad-status",
		"title":                     "Bad",
		"destination_name":          "Nowhere",
		"duration_days":             3,
		"starting_price_per_person": 100.0,
		"status":                    "live",
	})
	if err == nil {
		t.Error("insert with unknown status should be rejected by the validator")
	}
}

func TestReviewsSchema_RejectsRatingOutOfRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll() error = %v", err)
	}

	_, err := db.Collection("reviews").InsertOne(ctx, bson.M{
		"full_name": "Asha",
		"rating":    6,
		"comment":   "Too good",
		"status":    "pending",
	})
	if err == nil {
		t.Error("rating 6 should be rejected by the validator")
	}
}
