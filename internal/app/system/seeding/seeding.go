// internal/app/system/seeding/seeding.go
package seeding

import (
	"context"
	"fmt"

	adminuserstore "github.com/dalemusser/stratatrips/internal/app/store/adminusers"
	homecollectionstore "github.com/dalemusser/stratatrips/internal/app/store/homecollections"
	packagestore "github.com/dalemusser/stratatrips/internal/app/store/packages"
	reviewstore "github.com/dalemusser/stratatrips/internal/app/store/reviews"
	"github.com/dalemusser/stratatrips/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SeedAdmin creates the bootstrap admin account when it does not exist yet.
// Nothing happens unless both email and password are configured.
func SeedAdmin(ctx context.Context, db *mongo.Database, email, password string, logger *zap.Logger) error {
	if email == "" || password == "" {
		logger.Info("bootstrap admin not configured; skipping")
		return nil
	}

	store := adminuserstore.New(db)
	existing, err := store.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("look up bootstrap admin: %w", err)
	}
	if existing != nil {
		logger.Debug("bootstrap admin exists", zap.String("email", existing.Email))
		return nil
	}

	u, err := store.Create(ctx, adminuserstore.CreateInput{
		Email:    email,
		Password: password,
		Role:     models.AdminRoleSuperadmin,
	})
	if err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}
	logger.Info("seeded bootstrap admin", zap.String("email", u.Email))
	return nil
}

// SeedDemoContent fills the packages, reviews and home_collections
// collections with sample data. Each collection is only touched while empty.
func SeedDemoContent(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	seeders := []struct {
		collection string
		seed       func(context.Context, *mongo.Database) (int, error)
	}{
		{"packages", seedPackages},
		{"reviews", seedReviews},
		{"home_collections", seedHomeCollections},
	}

	for _, s := range seeders {
		n, err := db.Collection(s.collection).CountDocuments(ctx, bson.M{})
		if err != nil {
			logger.Error("failed to count collection", zap.String("collection", s.collection), zap.Error(err))
			return err
		}
		if n > 0 {
			logger.Debug("demo content skipped; collection not empty",
				zap.String("collection", s.collection), zap.Int64("count", n))
			continue
		}
		inserted, err := s.seed(ctx, db)
		if err != nil {
			logger.Error("failed to seed demo content", zap.String("collection", s.collection), zap.Error(err))
			return err
		}
		logger.Info("seeded demo content", zap.String("collection", s.collection), zap.Int("count", inserted))
	}
	return nil
}

func seedPackages(ctx context.Context, db *mongo.Database) (int, error) {
	store := packagestore.New(db)
	for i, in := range demoPackages() {
		if _, err := store.Create(ctx, in); err != nil {
			return i, err
		}
	}
	return len(demoPackages()), nil
}

func seedReviews(ctx context.Context, db *mongo.Database) (int, error) {
	store := reviewstore.New(db)
	for i, in := range demoReviews() {
		if _, err := store.Create(ctx, in); err != nil {
			return i, err
		}
	}
	return len(demoReviews()), nil
}

func seedHomeCollections(ctx context.Context, db *mongo.Database) (int, error) {
	store := homecollectionstore.New(db)
	for i, in := range demoHomeCollections() {
		if _, err := store.Create(ctx, in); err != nil {
			return i, err
		}
	}
	return len(demoHomeCollections()), nil
}
