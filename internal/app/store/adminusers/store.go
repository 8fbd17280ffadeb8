// internal/app/store/adminusers/store.go
package adminusers

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/stratatrips/internal/app/store/storeutil"
	"github.com/dalemusser/stratatrips/internal/app/system/authutil"
	"github.com/dalemusser/stratatrips/internal/app/system/normalize"
	"github.com/dalemusser/stratatrips/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrDuplicateEmail is returned when creating an admin whose email already exists.
	ErrDuplicateEmail = errors.New("an admin with this email already exists")
	// ErrInvalidCredentials is returned for an unknown email, an inactive
	// account and a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// dummyHash is compared against when the email is unknown so that both
// failure paths cost one bcrypt comparison.
var dummyHash, _ = authutil.HashPassword("stratatrips-dummy-password")

// Store provides access to the admin_users collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new admin user store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("admin_users")}
}

// GetByEmail returns the admin with the given email, or (nil, nil).
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var u models.AdminUser
	err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID returns the admin, or (nil, nil) when it does not exist.
func (s *Store) GetByID(ctx context.Context, id string) (*models.AdminUser, error) {
	return storeutil.FindByID[models.AdminUser](ctx, s.c, id)
}

// CreateInput contains the input for provisioning an admin.
type CreateInput struct {
	Email    string
	Password string
	Role     string
}

// Create hashes the password and inserts an active admin.
// Returns ErrDuplicateEmail if the email is already registered.
func (s *Store) Create(ctx context.Context, in CreateInput) (*models.AdminUser, error) {
	if err := authutil.ValidateAdminPassword(in.Email, in.Password); err != nil {
		return nil, err
	}
	hash, err := authutil.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	role := normalize.Role(in.Role)
	if role == "" {
		role = models.AdminRoleAdmin
	}

	now := time.Now().UTC()
	u := models.AdminUser{
		ID:           primitive.NewObjectID(),
		Email:        normalize.Email(in.Email),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		return nil, storeutil.MapDup(err, ErrDuplicateEmail)
	}
	return &u, nil
}

// Authenticate checks email and password against an active admin account.
// Every failure is ErrInvalidCredentials so callers cannot tell an unknown
// email from a wrong password.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*models.AdminUser, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		authutil.CheckPassword(password, dummyHash)
		return nil, ErrInvalidCredentials
	}
	if !authutil.CheckPassword(password, u.PasswordHash) || !u.IsActive {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// TouchLogin records a successful login.
func (s *Store) TouchLogin(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now().UTC()
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"last_login_at": now,
		"updated_at":    now,
	}})
	return err
}
