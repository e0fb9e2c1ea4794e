package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bazario_back_end/internal/database"
	"bazario_back_end/internal/models"
	"bazario_back_end/internal/repository"
)

type ConversationStore struct {
	coll *mongo.Collection
}

func NewConversationStore(db *mongo.Database) *ConversationStore {
	return &ConversationStore{coll: db.Collection(database.ConversationsCollection)}
}

func (s *ConversationStore) Create(ctx context.Context, conversation *models.Conversation) error {
	now := time.Now()
	conversation.CreatedAt = now
	conversation.UpdatedAt = now
	res, err := s.coll.InsertOne(ctx, conversation)
	if err != nil {
		return mapErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		conversation.ID = oid
	}
	return nil
}

func (s *ConversationStore) GetByGroupTitle(ctx context.Context, groupTitle string) (*models.Conversation, error) {
	var conversation models.Conversation
	err := s.coll.FindOne(ctx, bson.M{"groupTitle": groupTitle}).Decode(&conversation)
	if err != nil {
		return nil, mapErr(err)
	}
	return &conversation, nil
}

func (s *ConversationStore) GetByMember(ctx context.Context, memberID string) ([]models.Conversation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{"members": memberID}, opts)
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(ctx)

	conversations := []models.Conversation{}
	if err := cursor.All(ctx, &conversations); err != nil {
		return nil, mapErr(err)
	}
	return conversations, nil
}

func (s *ConversationStore) UpdateLastMessage(ctx context.Context, id, lastMessage, lastMessageID string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"lastMessage":   lastMessage,
		"lastMessageId": lastMessageID,
		"updatedAt":     time.Now(),
	}})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type MessageStore struct {
	coll *mongo.Collection
}

func NewMessageStore(db *mongo.Database) *MessageStore {
	return &MessageStore{coll: db.Collection(database.MessagesCollection)}
}

// Create n'exige pas que la conversation référencée existe — envoi
// fire-and-forget vis-à-vis du fil.
func (s *MessageStore) Create(ctx context.Context, message *models.Message) error {
	message.CreatedAt = time.Now()
	res, err := s.coll.InsertOne(ctx, message)
	if err != nil {
		return mapErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		message.ID = oid
	}
	return nil
}

func (s *MessageStore) GetByConversation(ctx context.Context, conversationID string) ([]models.Message, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"conversationId": conversationID})
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(ctx)

	messages := []models.Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, mapErr(err)
	}
	return messages, nil
}
