// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Retention for ended admin session records before the TTL monitor removes them.
const adminSessionRetention = int32(30 * 24 * 60 * 60)

// EnsureAll reconciles every collection's indexes. It is idempotent and
// reports all problems at once so startup fails with the full picture.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	sets := []struct {
		name   string
		ensure func(context.Context, *mongo.Database) error
	}{
		{"packages", ensurePackages},
		{"enquiries", ensureEnquiries},
		{"reviews", ensureReviews},
		{"home_collections", ensureHomeCollections},
		{"partner_hotels", ensureOrdered("partner_hotels")},
		{"adventure_activities", ensureOrdered("adventure_activities")},
		{"popular_destinations", ensureOrdered("popular_destinations")},
		{"chat_conversations", ensureChatConversations},
		{"admin_users", ensureAdminUsers},
		{"admin_sessions", ensureAdminSessions},
		{"admin_login_attempts", ensureLoginAttempts},
	}
	for _, s := range sets {
		if err := s.ensure(ctx, db); err != nil {
			problems = append(problems, s.name+": "+err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Reconciling one collection's indexes                                        */
/* -------------------------------------------------------------------------- */

// existingIndex is one entry of listIndexes. expireAfterSeconds may come back
// as int32, int64 or double depending on the server, so it decodes as float64.
type existingIndex struct {
	Name   string   `bson:"name"`
	Key    bson.D   `bson:"key"`
	Unique bool     `bson:"unique"`
	TTL    *float64 `bson:"expireAfterSeconds,omitempty"`
}

// wanted is the comparable shape of a desired IndexModel.
type wanted struct {
	name   string
	sig    string
	unique bool
	ttl    *float64
}

func describe(m mongo.IndexModel) wanted {
	w := wanted{sig: keySig(m.Keys.(bson.D))}
	if m.Options != nil {
		if m.Options.Name != nil {
			w.name = *m.Options.Name
		}
		w.unique = m.Options.Unique != nil && *m.Options.Unique
		if m.Options.ExpireAfterSeconds != nil {
			ttl := float64(*m.Options.ExpireAfterSeconds)
			w.ttl = &ttl
		}
	}
	return w
}

// satisfiedBy reports whether ex already provides w. Names are not compared;
// an index with the same keys and options under another name is reused.
func (w wanted) satisfiedBy(ex existingIndex) bool {
	if w.unique != ex.Unique {
		return false
	}
	switch {
	case w.ttl == nil && ex.TTL == nil:
		return true
	case w.ttl == nil || ex.TTL == nil:
		return false
	default:
		return *w.ttl == *ex.TTL
	}
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

// listIndexes returns the collection's indexes keyed by key signature.
func listIndexes(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[string]existingIndex)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("skipping undecodable index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		out[keySig(idx.Key)] = idx
	}
	return out, cur.Err()
}

// ensureIndexSet creates each model that is missing and replaces any index
// on the same keys whose unique or TTL options differ. Every failure is
// collected so one bad index does not hide the others.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	existing, err := listIndexes(ctx, coll)
	if err != nil {
		// Collection may not exist yet; creating is still correct.
		zap.L().Debug("listing indexes failed; creating all",
			zap.String("collection", coll.Name()),
			zap.Error(err))
		existing = map[string]existingIndex{}
	}

	var errs []string
	for _, m := range models {
		w := describe(m)
		log := zap.L().With(
			zap.String("collection", coll.Name()),
			zap.String("name", w.name),
			zap.String("keys", w.sig))

		ex, found := existing[w.sig]
		if found && w.satisfiedBy(ex) {
			log.Debug("index up to date", zap.String("existing_name", ex.Name))
			continue
		}

		start := time.Now()
		if found {
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				log.Warn("drop of outdated index failed", zap.String("existing_name", ex.Name), zap.Error(err))
				errs = append(errs, fmt.Sprintf("%s(%s): drop %s: %v", coll.Name(), w.name, ex.Name, err))
				continue
			}
		}
		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			log.Warn("index create failed", zap.Error(err))
			errs = append(errs, createErr(coll.Name(), w, err))
			continue
		}
		log.Info("index created",
			zap.Bool("replaced", found),
			zap.Bool("unique", w.unique),
			zap.Duration("took", time.Since(start)))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func createErr(coll string, w wanted, err error) string {
	switch {
	case w.unique && isDuplicateKeyErr(err):
		return fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll, w.name)
	case isOptionsConflictErr(err):
		return fmt.Sprintf("%s(%s): conflicts with an existing index: %v", coll, w.name, err)
	default:
		return fmt.Sprintf("%s(%s): %v", coll, w.name, err)
	}
}

// isDuplicateKeyErr detects E11000 across driver error types and vendors.
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if mongo.IsDuplicateKeyError(err) {
		return true
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	return strings.Contains(err.Error(), "E11000")
}

// isOptionsConflictErr matches IndexOptionsConflict (85) and
// IndexKeySpecsConflict (86), returned when keys exist under other options.
func isOptionsConflictErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 85 || ce.Code == 86) {
		return true
	}
	return strings.Contains(err.Error(), "IndexOptionsConflict")
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

func ensurePackages(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("packages")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Slug is the public lookup key and must be globally unique
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_packages_slug"),
		},
		// Public listing: published, featured first, newest first
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "is_featured", Value: -1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_packages_status_featured_created"),
		},
		// Admin listing
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_packages_created"),
		},
	})
}

func ensureEnquiries(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("enquiries")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_enquiries_status_created"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_enquiries_created"),
		},
	})
}

func ensureReviews(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("reviews")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "is_featured", Value: -1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_reviews_status_featured_created"),
		},
	})
}

func ensureHomeCollections(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("home_collections")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "category", Value: 1},
				{Key: "is_active", Value: 1},
				{Key: "order", Value: 1},
				{Key: "created_at", Value: 1},
			},
			Options: options.Index().SetName("idx_home_collections_category_active_order"),
		},
	})
}

// ensureOrdered covers the showcase collections that list by is_active then order.
func ensureOrdered(name string) func(context.Context, *mongo.Database) error {
	return func(ctx context.Context, db *mongo.Database) error {
		return ensureIndexSet(ctx, db.Collection(name), []mongo.IndexModel{
			{
				Keys: bson.D{
					{Key: "is_active", Value: 1},
					{Key: "order", Value: 1},
					{Key: "created_at", Value: 1},
				},
				Options: options.Index().SetName("idx_" + name + "_active_order"),
			},
		})
	}
}

func ensureChatConversations(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("chat_conversations")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One conversation per client session id
		{
			Keys:    bson.D{{Key: "session_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_chat_session_id"),
		},
		// Admin listing, most recently active first
		{
			Keys:    bson.D{{Key: "updated_at", Value: -1}},
			Options: options.Index().SetName("idx_chat_updated"),
		},
		{
			Keys:    bson.D{{Key: "lead_captured", Value: 1}},
			Options: options.Index().SetName("idx_chat_lead_captured"),
		},
	})
}

func ensureAdminUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("admin_users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_admin_users_email"),
		},
	})
}

func ensureAdminSessions(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("admin_sessions")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_admin_session_token"),
		},
		{
			Keys:    bson.D{{Key: "admin_id", Value: 1}},
			Options: options.Index().SetName("idx_admin_session_admin"),
		},
		// Ended records are kept for a while, then removed by the TTL monitor
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(adminSessionRetention).SetName("idx_admin_session_ttl"),
		},
		// Open-session sweeps by the expiry job
		{
			Keys: bson.D{
				{Key: "logout_at", Value: 1},
				{Key: "expires_at", Value: 1},
			},
			Options: options.Index().SetName("idx_admin_session_open"),
		},
	})
}

func ensureLoginAttempts(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("admin_login_attempts")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_login_attempts_email"),
		},
		// TTL on last_attempt: records disappear 24 hours after the last failure
		{
			Keys:    bson.D{{Key: "last_attempt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(86400).SetName("idx_login_attempts_ttl"),
		},
	})
}
