package adventures

import (
	"errors"
	"testing"

	"github.com/dalemusser/stratatrips/internal/app/store/storeutil"
	"github.com/dalemusser/stratatrips/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_CreateUpdateDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	act, err := store.Create(ctx, CreateInput{Label: "Paragliding", ImageURL: "/files/para.jpg"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !act.IsActive {
		t.Error("IsActive should default to true")
	}

	off := false
	got, err := store.UpdateByID(ctx, act.ID.Hex(), UpdateInput{IsActive: &off})
	if err != nil {
		t.Fatalf("UpdateByID() error = %v", err)
	}
	if got.IsActive || got.Label != "Paragliding" {
		t.Errorf("UpdateByID() = %+v", got)
	}

	active, _ := store.ListActive(ctx)
	if len(active) != 0 {
		t.Errorf("ListActive() returned %d, want 0 after deactivation", len(active))
	}

	if err := store.DeleteByID(ctx, act.ID.Hex()); err != nil {
		t.Fatalf("DeleteByID() error = %v", err)
	}
	if err := store.DeleteByID(ctx, act.ID.Hex()); !errors.Is(err, storeutil.ErrNotFound) {
		t.Errorf("DeleteByID() twice = %v, want ErrNotFound", err)
	}
	if err := store.DeleteByID(ctx, "xyz"); !errors.Is(err, storeutil.ErrInvalidID) {
		t.Errorf("DeleteByID(invalid) = %v, want ErrInvalidID", err)
	}
	if _, err := store.UpdateByID(ctx, primitive.NewObjectID().Hex(), UpdateInput{IsActive: &off}); !errors.Is(err, storeutil.ErrNotFound) {
		t.Errorf("UpdateByID(absent) = %v, want ErrNotFound", err)
	}
}
