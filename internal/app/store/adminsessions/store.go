// internal/app/store/adminsessions/store.go
package adminsessions

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/stratatrips/internal/app/store/storeutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Session end reasons
const (
	EndReasonLogout  = "logout"  // Admin explicitly logged out
	EndReasonExpired = "expired" // Closed by the expiry job after expires_at
	EndReasonRevoked = "revoked" // Ended by another admin
)

// Session is the server-side record behind an admin session cookie.
// The cookie carries only Token; every admin request re-validates it here.
type Session struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Token     string             `bson:"token"`
	AdminID   primitive.ObjectID `bson:"admin_id"`
	IPAddress string             `bson:"ip_address,omitempty"`
	UserAgent string             `bson:"user_agent,omitempty"`

	LoginAt   time.Time  `bson:"login_at"`
	LogoutAt  *time.Time `bson:"logout_at,omitempty"`
	EndReason string     `bson:"end_reason,omitempty"`

	// Records are removed by a TTL index some time after ExpiresAt.
	ExpiresAt time.Time `bson:"expires_at"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Store manages admin session records in MongoDB.
type Store struct {
	c *mongo.Collection
}

// New creates a new admin session Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("admin_sessions")}
}

// Create stores a new session that expires after ttl.
func (s *Store) Create(ctx context.Context, token string, adminID primitive.ObjectID, ip, userAgent string, ttl time.Duration) (*Session, error) {
	now := time.Now().UTC()
	sess := Session{
		ID:        primitive.NewObjectID(),
		Token:     token,
		AdminID:   adminID,
		IPAddress: ip,
		UserAgent: userAgent,
		LoginAt:   now,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, sess); err != nil {
		return nil, storeutil.MapDup(err, storeutil.ErrDuplicate)
	}
	return &sess, nil
}

// GetActive returns the session for token if it has not ended or expired,
// otherwise (nil, nil).
func (s *Store) GetActive(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, nil
	}
	var sess Session
	err := s.c.FindOne(ctx, bson.M{
		"token":      token,
		"logout_at":  nil,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&sess)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// End marks the session for token as ended. Ending an unknown or already
// ended session is not an error.
func (s *Store) End(ctx context.Context, token, reason string) error {
	now := time.Now().UTC()
	_, err := s.c.UpdateOne(ctx,
		bson.M{"token": token, "logout_at": nil},
		bson.M{"$set": bson.M{
			"logout_at":  now,
			"end_reason": reason,
			"updated_at": now,
		}},
	)
	return err
}

// CloseExpired marks every open session past its expiry as ended and returns
// how many were closed.
func (s *Store) CloseExpired(ctx context.Context) (int64, error) {
	now := time.Now().UTC()
	res, err := s.c.UpdateMany(ctx,
		bson.M{
			"logout_at":  nil,
			"expires_at": bson.M{"$lte": now},
		},
		bson.M{"$set": bson.M{
			"logout_at":  now,
			"end_reason": EndReasonExpired,
			"updated_at": now,
		}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// CountActive returns the number of open, unexpired sessions.
func (s *Store) CountActive(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{
		"logout_at":  nil,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	})
}

// ListActive returns open, unexpired sessions, most recent login first.
func (s *Store) ListActive(ctx context.Context, limit int64) ([]Session, error) {
	opts := options.Find().SetSort(bson.D{{Key: "login_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return storeutil.FindAll[Session](ctx, s.c, bson.M{
		"logout_at":  nil,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}, opts)
}

// GetByID returns the session record, or (nil, nil) when it does not exist.
func (s *Store) GetByID(ctx context.Context, id string) (*Session, error) {
	return storeutil.FindByID[Session](ctx, s.c, id)
}
