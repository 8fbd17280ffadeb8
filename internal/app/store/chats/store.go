// internal/app/store/chats/store.go
package chats

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/stratatrips/internal/app/store/storeutil"
	"github.com/dalemusser/stratatrips/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the chat_conversations collection.
//
// Appends are atomic single-document $push updates. Reading the history and
// then appending is not isolated from a concurrent append to the same session.
type Store struct {
	c *mongo.Collection
}

// New creates a new chat store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("chat_conversations")}
}

// Lead holds contact details captured from a conversation. Empty fields are
// not written, so earlier captures are kept.
type Lead struct {
	Name  string
	Email string
	Phone string
}

// GetOrCreate returns the conversation for sessionID, creating an empty one
// on first use.
func (s *Store) GetOrCreate(ctx context.Context, sessionID string) (*models.ChatConversation, error) {
	now := time.Now().UTC()
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	update := bson.M{"$setOnInsert": bson.M{
		"session_id":    sessionID,
		"messages":      bson.A{},
		"lead_captured": false,
		"created_at":    now,
		"updated_at":    now,
	}}

	var conv models.ChatConversation
	err := s.c.FindOneAndUpdate(ctx, bson.M{"session_id": sessionID}, update, opts).Decode(&conv)
	if err != nil && wafflemongo.IsDup(err) {
		// Two first messages raced on the upsert; the other one created it.
		err = s.c.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&conv)
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// AppendMessage pushes msg onto the end of the session's message log.
// It returns storeutil.ErrNotFound when the session does not exist.
func (s *Store) AppendMessage(ctx context.Context, sessionID string, msg models.ChatMessage) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{
			"$push": bson.M{"messages": msg},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return storeutil.ErrNotFound
	}
	return nil
}

// Get returns the conversation for sessionID, or (nil, nil).
func (s *Store) Get(ctx context.Context, sessionID string) (*models.ChatConversation, error) {
	var conv models.ChatConversation
	err := s.c.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&conv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// MarkLead records captured contact details and flags the conversation as a lead.
func (s *Store) MarkLead(ctx context.Context, sessionID string, lead Lead) error {
	set := bson.M{
		"lead_captured": true,
		"updated_at":    time.Now().UTC(),
	}
	if lead.Name != "" {
		set["lead_name"] = lead.Name
	}
	if lead.Email != "" {
		set["lead_email"] = lead.Email
	}
	if lead.Phone != "" {
		set["lead_phone"] = lead.Phone
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"session_id": sessionID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return storeutil.ErrNotFound
	}
	return nil
}

// List returns one page of conversations, most recently active first.
func (s *Store) List(ctx context.Context, page, limit int64) ([]models.ChatConversation, error) {
	return storeutil.FindAll[models.ChatConversation](ctx, s.c, bson.M{},
		storeutil.Page(page, limit).SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: -1}}))
}

// GetByID returns the conversation, or (nil, nil) when it does not exist.
func (s *Store) GetByID(ctx context.Context, id string) (*models.ChatConversation, error) {
	return storeutil.FindByID[models.ChatConversation](ctx, s.c, id)
}

// CountLeads returns the number of conversations that captured contact details.
func (s *Store) CountLeads(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"lead_captured": true})
}
