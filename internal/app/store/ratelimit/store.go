// internal/app/store/ratelimit/store.go
package ratelimit

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Attempt tracks failed admin login attempts for one email address.
type Attempt struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`         // Lowercased email the attempts were made against
	AttemptCount int                `bson:"attempt_count"` // Failed attempts in current window
	WindowStart  time.Time          `bson:"window_start"`  // When the current counting window started
	LockedUntil  *time.Time         `bson:"locked_until"`  // Lockout expiry time (nil if not locked)
	LastAttempt  time.Time          `bson:"last_attempt"`  // Most recent attempt (TTL and purge key)
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

// Store tracks failed logins in admin_login_attempts and decides lockouts.
// Lookup failures fail open so a database hiccup never locks admins out.
type Store struct {
	c               *mongo.Collection
	maxAttempts     int
	windowDuration  time.Duration
	lockoutDuration time.Duration
}

// New returns a Store that locks an email for lockout after maxAttempts
// failures within window.
func New(db *mongo.Database, maxAttempts int, window, lockout time.Duration) *Store {
	return &Store{
		c:               db.Collection("admin_login_attempts"),
		maxAttempts:     maxAttempts,
		windowDuration:  window,
		lockoutDuration: lockout,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CheckAllowed reports whether a login for email may proceed.
// remaining is -1 while locked; lockedUntil is set only while locked.
func (s *Store) CheckAllowed(ctx context.Context, email string) (allowed bool, remaining int, lockedUntil *time.Time) {
	now := time.Now()

	attempt, err := s.GetAttempt(ctx, email)
	if err != nil || attempt == nil {
		return true, s.maxAttempts, nil
	}

	if attempt.LockedUntil != nil && now.Before(*attempt.LockedUntil) {
		return false, -1, attempt.LockedUntil
	}
	if now.After(attempt.WindowStart.Add(s.windowDuration)) {
		return true, s.maxAttempts, nil
	}

	remaining = s.maxAttempts - attempt.AttemptCount
	if remaining <= 0 {
		return false, 0, nil
	}
	return true, remaining, nil
}

// RecordFailure counts a failed login for email and locks the address once
// maxAttempts failures land inside one window. Each step is a single atomic
// update, so concurrent failures are all counted. Store errors fail open.
func (s *Store) RecordFailure(ctx context.Context, email string) (lockedOut bool, lockedUntil *time.Time) {
	email = normalizeEmail(email)
	now := time.Now()

	// A window that has run out starts over.
	_, _ = s.c.UpdateOne(ctx,
		bson.M{"email": email, "window_start": bson.M{"$lt": now.Add(-s.windowDuration)}},
		bson.M{"$set": bson.M{"attempt_count": 0, "window_start": now, "locked_until": nil}},
	)

	attempt, err := s.increment(ctx, email, now)
	if mongo.IsDuplicateKeyError(err) {
		// Lost the insert race to a concurrent failure; the document exists now.
		attempt, err = s.increment(ctx, email, now)
	}
	if err != nil || attempt.AttemptCount < s.maxAttempts {
		return false, nil
	}

	until := now.Add(s.lockoutDuration)
	if _, err := s.c.UpdateOne(ctx,
		bson.M{"_id": attempt.ID},
		bson.M{"$set": bson.M{"locked_until": until}},
	); err != nil {
		return false, nil
	}
	return true, &until
}

func (s *Store) increment(ctx context.Context, email string, now time.Time) (Attempt, error) {
	var out Attempt
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"email": email},
		bson.M{
			"$inc": bson.M{"attempt_count": 1},
			"$set": bson.M{"last_attempt": now, "updated_at": now},
			"$setOnInsert": bson.M{
				"window_start": now,
				"locked_until": nil,
				"created_at":   now,
			},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&out)
	return out, err
}

// ClearOnSuccess removes the record for email after a successful login.
func (s *Store) ClearOnSuccess(ctx context.Context, email string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"email": normalizeEmail(email)})
	return err
}

// GetAttempt returns the current attempt record for email, or (nil, nil).
func (s *Store) GetAttempt(ctx context.Context, email string) (*Attempt, error) {
	var attempt Attempt
	err := s.c.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&attempt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// PurgeStale deletes records whose last attempt is older than maxAge and
// that are not currently locked.
func (s *Store) PurgeStale(ctx context.Context, maxAge time.Duration) (int64, error) {
	now := time.Now()
	res, err := s.c.DeleteMany(ctx, bson.M{
		"last_attempt": bson.M{"$lt": now.Add(-maxAge)},
		"$or": []bson.M{
			{"locked_until": nil},
			{"locked_until": bson.M{"$lt": now}},
		},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
