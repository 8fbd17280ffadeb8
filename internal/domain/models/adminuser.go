// internal/domain/models/adminuser.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin roles
const (
	AdminRoleAdmin      = "admin"
	AdminRoleSuperadmin = "superadmin"
)

// AllAdminRoles returns all valid admin roles.
func AllAdminRoles() []string {
	return []string{AdminRoleAdmin, AdminRoleSuperadmin}
}

// AdminUser is a back-office account. Email is stored lowercase and is unique.
type AdminUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"` // bcrypt hash (never in JSON)
	Role         string             `bson:"role" json:"role"`
	IsActive     bool               `bson:"is_active" json:"isActive"`
	LastLoginAt  *time.Time         `bson:"last_login_at,omitempty" json:"lastLoginAt,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
