package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation est un fil acheteur–vendeur. GroupTitle identifie le fil
// (produit + participants) et sert de clé d'idempotence à la création.
type Conversation struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	GroupTitle    string             `bson:"groupTitle" json:"groupTitle"`
	Members       []string           `bson:"members" json:"members"`
	LastMessage   string             `bson:"lastMessage,omitempty" json:"lastMessage,omitempty"`
	LastMessageID string             `bson:"lastMessageId,omitempty" json:"lastMessageId,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Message est immuable une fois créé ; l'ordre de lecture est l'ordre
// naturel d'insertion du stockage, rien de plus.
type Message struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ConversationID string             `bson:"conversationId" json:"conversationId"`
	Sender         string             `bson:"sender" json:"sender"`
	Text           string             `bson:"text" json:"text"`
	Image          string             `bson:"images,omitempty" json:"images,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
