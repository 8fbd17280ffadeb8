package packages

import (
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/stratatrips/internal/app/store/storeutil"
	"github.com/dalemusser/stratatrips/internal/domain/models"
	"github.com/dalemusser/stratatrips/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sampleInput(slug string) CreateInput {
	return CreateInput{
		Slug:                   slug,
		Title:                  "Test",
		DestinationName:        "X",
		DurationDays:           3,
		StartingPricePerPerson: 1000,
		CurrencyCode:           "INR",
		ShortDescription:       "...",
		HeroImageURL:           "https://example.com/hero.jpg",
	}
}

func strPtr(s string) *string { return &s }

func TestStore_Create_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	in := sampleInput("test-trip")
	in.CurrencyCode = ""
	pkg, err := store.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if pkg.ID.IsZero() {
		t.Error("ID should not be zero")
	}
	if pkg.Status != models.PackageStatusDraft {
		t.Errorf("Status = %q, want %q", pkg.Status, models.PackageStatusDraft)
	}
	if pkg.CurrencyCode != models.DefaultCurrencyCode {
		t.Errorf("CurrencyCode = %q, want %q", pkg.CurrencyCode, models.DefaultCurrencyCode)
	}
	if pkg.Highlights == nil || pkg.Inclusions == nil || pkg.Exclusions == nil || pkg.GalleryImageURLs == nil || pkg.Itinerary == nil {
		t.Error("list fields should default to empty slices")
	}
	if pkg.CreatedAt.IsZero() || pkg.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}
}

func TestStore_Create_DuplicateSlugLeavesExistingUntouched(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := store.Create(ctx, sampleInput("test-trip"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	dup := sampleInput("test-trip")
	dup.Title = "Overwritten?"
	if _, err := store.Create(ctx, dup); !errors.Is(err, storeutil.ErrSlugExists) {
		t.Fatalf("Create() duplicate error = %v, want ErrSlugExists", err)
	}

	got, err := store.GetByID(ctx, first.ID.Hex())
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "Test" {
		t.Errorf("existing package Title = %q, want %q", got.Title, "Test")
	}
}

func TestStore_ListPublished_FilterAndOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mk := func(slug, status string, featured bool) {
		in := sampleInput(slug)
		in.Status = status
		in.IsFeatured = featured
		if _, err := store.Create(ctx, in); err != nil {
			t.Fatalf("Create(%s) error = %v", slug, err)
		}
		time.Sleep(5 * time.Millisecond)
	}
	mk("old-plain", models.PackageStatusPublished, false)
	mk("old-featured", models.PackageStatusPublished, true)
	mk("draft", models.PackageStatusDraft, true)
	mk("new-plain", models.PackageStatusPublished, false)
	mk("archived", models.PackageStatusArchived, false)
	mk("new-featured", models.PackageStatusPublished, true)

	got, err := store.ListPublished(ctx)
	if err != nil {
		t.Fatalf("ListPublished() error = %v", err)
	}

	want := []string{"new-featured", "old-featured", "new-plain", "old-plain"}
	if len(got) != len(want) {
		t.Fatalf("ListPublished() returned %d packages, want %d", len(got), len(want))
	}
	for i, p := range got {
		if p.Status != models.PackageStatusPublished {
			t.Errorf("package %q has status %q", p.Slug, p.Status)
		}
		if p.Slug != want[i] {
			t.Errorf("position %d = %q, want %q", i, p.Slug, want[i])
		}
	}

	all, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(all) != 6 {
		t.Errorf("ListAll() returned %d, want 6", len(all))
	}
	if all[0].Slug != "new-featured" {
		t.Errorf("ListAll()[0] = %q, want newest first", all[0].Slug)
	}

	featured, err := store.ListFeatured(ctx, 1)
	if err != nil {
		t.Fatalf("ListFeatured() error = %v", err)
	}
	if len(featured) != 1 || featured[0].Slug != "new-featured" {
		t.Errorf("ListFeatured(1) = %v", featured)
	}
}

func TestStore_ListPublished_EmptyIsNotNil(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	got, err := store.ListPublished(ctx)
	if err != nil {
		t.Fatalf("ListPublished() error = %v", err)
	}
	if got == nil {
		t.Error("ListPublished() on empty collection should return empty slice, not nil")
	}
}

func TestStore_GetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	pkg, _ := store.Create(ctx, sampleInput("test-trip"))

	got, err := store.GetByID(ctx, pkg.ID.Hex())
	if err != nil || got == nil {
		t.Fatalf("GetByID() = %v, %v", got, err)
	}

	got, err = store.GetByID(ctx, primitive.NewObjectID().Hex())
	if err != nil || got != nil {
		t.Errorf("GetByID(absent) = %v, %v, want nil, nil", got, err)
	}

	if _, err := store.GetByID(ctx, "not-a-valid-id"); !errors.Is(err, storeutil.ErrInvalidID) {
		t.Errorf("GetByID(invalid) error = %v, want ErrInvalidID", err)
	}
}

func TestStore_GetBySlug_DefaultsToPublished(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	pkg, _ := store.Create(ctx, sampleInput("test-trip"))

	got, err := store.GetBySlug(ctx, "test-trip", "")
	if err != nil {
		t.Fatalf("GetBySlug() error = %v", err)
	}
	if got != nil {
		t.Fatal("draft package should not be found under the default published status")
	}

	got, err = store.GetBySlug(ctx, "test-trip", models.PackageStatusDraft)
	if err != nil || got == nil {
		t.Fatalf("GetBySlug(draft) = %v, %v", got, err)
	}

	if _, err := store.UpdateByID(ctx, pkg.ID.Hex(), UpdateInput{Status: strPtr(models.PackageStatusPublished)}); err != nil {
		t.Fatalf("UpdateByID() error = %v", err)
	}
	got, err = store.GetBySlug(ctx, "test-trip", "")
	if err != nil || got == nil {
		t.Fatalf("GetBySlug() after publish = %v, %v", got, err)
	}
}

func TestStore_UpdateByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, _ := store.Create(ctx, sampleInput("trip-a"))
	if _, err := store.Create(ctx, sampleInput("trip-b")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("unchanged slug never conflicts", func(t *testing.T) {
		got, err := store.UpdateByID(ctx, a.ID.Hex(), UpdateInput{Slug: strPtr("trip-a"), Title: strPtr("Renamed")})
		if err != nil {
			t.Fatalf("UpdateByID() error = %v", err)
		}
		if got.Title != "Renamed" {
			t.Errorf("Title = %q, want Renamed", got.Title)
		}
		if got.DestinationName != "X" {
			t.Errorf("DestinationName = %q, unset fields must be preserved", got.DestinationName)
		}
	})

	t.Run("slug taken by another", func(t *testing.T) {
		_, err := store.UpdateByID(ctx, a.ID.Hex(), UpdateInput{Slug: strPtr("trip-b")})
		if !errors.Is(err, storeutil.ErrSlugExists) {
			t.Errorf("UpdateByID() error = %v, want ErrSlugExists", err)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := store.UpdateByID(ctx, "not-a-valid-id", UpdateInput{Title: strPtr("x")})
		if !errors.Is(err, storeutil.ErrInvalidID) {
			t.Errorf("UpdateByID() error = %v, want ErrInvalidID", err)
		}
	})

	t.Run("absent id", func(t *testing.T) {
		_, err := store.UpdateByID(ctx, primitive.NewObjectID().Hex(), UpdateInput{Title: strPtr("x")})
		if !errors.Is(err, storeutil.ErrNotFound) {
			t.Errorf("UpdateByID() error = %v, want ErrNotFound", err)
		}
	})
}

func TestStore_DeleteByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	pkg, _ := store.Create(ctx, sampleInput("test-trip"))

	tests := []struct {
		name    string
		id      string
		wantErr error
	}{
		{"invalid id", "not-a-valid-id", storeutil.ErrInvalidID},
		{"absent id", primitive.NewObjectID().Hex(), storeutil.ErrNotFound},
		{"existing", pkg.ID.Hex(), nil},
		{"already deleted", pkg.ID.Hex(), storeutil.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.DeleteByID(ctx, tt.id); !errors.Is(err, tt.wantErr) {
				t.Errorf("DeleteByID(%q) = %v, want %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestStore_CountByStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i, status := range []string{"draft", "published", "published"} {
		in := sampleInput(string(rune('a'+i)) + "-trip")
		in.Status = status
		if _, err := store.Create(ctx, in); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	counts, err := store.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus() error = %v", err)
	}
	if counts["draft"] != 1 || counts["published"] != 2 {
		t.Errorf("CountByStatus() = %v", counts)
	}
}
