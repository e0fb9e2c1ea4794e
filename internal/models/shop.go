package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Shop est le compte vendeur. Le mot de passe n'est jamais sérialisé en JSON
// et n'est relu depuis Mongo que via une projection explicite au login.
type Shop struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password" json:"-"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Address     string             `bson:"address" json:"address"`
	PhoneNumber string             `bson:"phoneNumber" json:"phoneNumber"`
	ZipCode     string             `bson:"zipCode" json:"zipCode"`
	Avatar      string             `bson:"avatar" json:"avatar"`
	Role        string             `bson:"role" json:"role"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// PendingShop est le compte en attente d'activation, transporté dans le token
// d'activation (mot de passe déjà hashé, jamais en clair).
type PendingShop struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Avatar      string `json:"avatar"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
	ZipCode     string `json:"zipCode"`
}
