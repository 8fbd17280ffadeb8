package adminsessions

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/stratatrips/internal/app/store/adminusers"
	"github.com/dalemusser/stratatrips/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFetcher_FetchAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admins := adminusers.New(db)
	admin, err := admins.Create(ctx, adminusers.CreateInput{Email: "Ops@Example.com", Password: "correct-horse-battery"})
	if err != nil {
		t.Fatalf("Create admin: %v", err)
	}

	store := New(db)
	store.Create(ctx, "live", admin.ID, "", "", time.Hour)
	store.Create(ctx, "stale", admin.ID, "", "", -time.Minute)
	store.Create(ctx, "ended", admin.ID, "", "", time.Hour)
	store.End(ctx, "ended", EndReasonLogout)

	core, logs := observer.New(zapcore.InfoLevel)
	f := NewFetcher(db, zap.New(core))

	got, err := f.FetchAdmin(ctx, "live")
	if err != nil || got == nil {
		t.Fatalf("FetchAdmin(live) = %v, %v", got, err)
	}
	if got.ID != admin.ID.Hex() || got.Email != "ops@example.com" || got.Token != "live" {
		t.Errorf("FetchAdmin(live) = %+v", got)
	}

	for _, token := range []string{"stale", "ended", "unknown", ""} {
		if a, err := f.FetchAdmin(ctx, token); a != nil || err != nil {
			t.Errorf("FetchAdmin(%q) = %+v, %v, want nil, nil", token, a, err)
		}
	}

	if _, err := db.Collection("admin_users").UpdateByID(ctx, admin.ID,
		bson.M{"$set": bson.M{"is_active": false}}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if a, err := f.FetchAdmin(ctx, "live"); a != nil || err != nil {
		t.Errorf("deactivated admin = %+v, %v, want nil, nil", a, err)
	}
	if logs.FilterMessage("session rejected for inactive admin").Len() != 1 {
		t.Error("inactive admin rejection was not logged")
	}

	if _, err := db.Collection("admin_users").DeleteOne(ctx, bson.M{"_id": admin.ID}); err != nil {
		t.Fatalf("delete admin: %v", err)
	}
	if a, err := f.FetchAdmin(ctx, "live"); a != nil || err != nil {
		t.Errorf("missing admin = %+v, %v, want nil, nil", a, err)
	}
}

func TestFetcher_FetchAdmin_LookupErrorIsReported(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := NewFetcher(db, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a, err := f.FetchAdmin(ctx, "any-token")
	if err == nil {
		t.Fatalf("FetchAdmin() on a dead context = %+v, nil; want an error", a)
	}
	if a != nil {
		t.Errorf("FetchAdmin() admin = %+v, want nil alongside the error", a)
	}
}
