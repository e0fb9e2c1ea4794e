package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem est une ligne de commande. IsReviewed est un doublon dénormalisé
// de l'état "avis déposé" côté produit, sans garantie de cohérence entre les
// deux écritures.
type CartItem struct {
	ProductID  string  `bson:"productId" json:"productId"`
	ShopID     string  `bson:"shopId" json:"shopId"`
	Name       string  `bson:"name" json:"name"`
	Price      float64 `bson:"price" json:"price"`
	Quantity   int     `bson:"qty" json:"qty"`
	IsReviewed bool    `bson:"isReviewed" json:"isReviewed"`
}

// OrderUser est l'instantané de l'acheteur au moment de la commande.
type OrderUser struct {
	ID     string `bson:"_id" json:"_id"`
	Name   string `bson:"name" json:"name"`
	Email  string `bson:"email" json:"email"`
	Avatar string `bson:"avatar" json:"avatar"`
}

// Order est une commande passée. Une commande par boutique : le panier est
// regroupé par boutique à la création.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Cart            []CartItem         `bson:"cart" json:"cart"`
	ShippingAddress map[string]any     `bson:"shippingAddress" json:"shippingAddress"`
	User            OrderUser          `bson:"user" json:"user"`
	TotalPrice      float64            `bson:"totalPrice" json:"totalPrice"`
	Status          string             `bson:"status" json:"status"`
	PaymentInfo     PaymentInfo        `bson:"paymentInfo" json:"paymentInfo"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// PaymentInfo est l'écho opaque du paiement côté Stripe.
type PaymentInfo struct {
	ID     string `bson:"id,omitempty" json:"id,omitempty"`
	Status string `bson:"status,omitempty" json:"status,omitempty"`
	Type   string `bson:"type,omitempty" json:"type,omitempty"`
}
