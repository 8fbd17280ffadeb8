// internal/app/store/adminsessions/fetcher.go
package adminsessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/stratatrips/internal/app/system/auth"
	"github.com/dalemusser/stratatrips/internal/app/system/timeouts"
	"github.com/dalemusser/stratatrips/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Fetcher implements auth.AdminFetcher. Every admin request goes through it,
// so a logout, an expiry or a deactivated account takes effect immediately.
type Fetcher struct {
	sessions *Store
	admins   *mongo.Collection
	logger   *zap.Logger
}

// NewFetcher creates an AdminFetcher that queries the given database.
func NewFetcher(db *mongo.Database, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		sessions: New(db),
		admins:   db.Collection("admin_users"),
		logger:   logger,
	}
}

// FetchAdmin returns the admin behind token. It returns (nil, nil) when the
// session is unknown, ended or expired, or the admin is missing or inactive,
// and a non-nil error only when the lookup itself failed.
func (f *Fetcher) FetchAdmin(ctx context.Context, token string) (*auth.SessionAdmin, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	sess, err := f.sessions.GetActive(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		return nil, nil
	}

	var a models.AdminUser
	proj := options.FindOne().SetProjection(bson.M{
		"_id":       1,
		"email":     1,
		"role":      1,
		"is_active": 1,
	})
	err = f.admins.FindOne(ctx, bson.M{"_id": sess.AdminID}, proj).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load admin: %w", err)
	}
	if !a.IsActive {
		f.logger.Info("session rejected for inactive admin", zap.String("admin_id", a.ID.Hex()))
		return nil, nil
	}

	return &auth.SessionAdmin{
		ID:    a.ID.Hex(),
		Email: a.Email,
		Role:  a.Role,
		Token: token,
	}, nil
}
