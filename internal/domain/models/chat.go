// internal/domain/models/chat.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Chat message roles.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one entry in a conversation log.
type ChatMessage struct {
	Role      string    `bson:"role" json:"role"`
	Content   string    `bson:"content" json:"content"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// ChatConversation is the transcript for one client-generated session id.
// Messages are append-only and kept in arrival order.
type ChatConversation struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID    string             `bson:"session_id" json:"sessionId"`
	Messages     []ChatMessage      `bson:"messages" json:"messages"`
	LeadName     string             `bson:"lead_name,omitempty" json:"leadName,omitempty"`
	LeadEmail    string             `bson:"lead_email,omitempty" json:"leadEmail,omitempty"`
	LeadPhone    string             `bson:"lead_phone,omitempty" json:"leadPhone,omitempty"`
	LeadCaptured bool               `bson:"lead_captured" json:"leadCaptured"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
