package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Coupon est un code de réduction rattaché à une boutique. Le couple
// (shopId, name) est unique, garanti par un index composé côté Mongo.
type Coupon struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name             string             `bson:"name" json:"name"`
	Value            float64            `bson:"value" json:"value"`
	MinAmount        *float64           `bson:"minAmount" json:"minAmount"`
	MaxAmount        *float64           `bson:"maxAmount" json:"maxAmount"`
	ShopID           string             `bson:"shopId" json:"shopId"`
	SelectedProducts []string           `bson:"selectedProducts" json:"selectedProducts"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}
