package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product est un article du catalogue. Les avis sont embarqués dans le
// document produit : leur durée de vie est celle du produit.
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description" json:"description"`
	Category      string             `bson:"category" json:"category"`
	Tags          string             `bson:"tags,omitempty" json:"tags,omitempty"`
	OriginalPrice float64            `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	DiscountPrice float64            `bson:"discountPrice" json:"discountPrice"`
	Stock         int                `bson:"stock" json:"stock"`
	ShopID        string             `bson:"shopId" json:"shopId"`
	Shop          *Shop              `bson:"shop,omitempty" json:"shop,omitempty"`
	Images        []string           `bson:"images" json:"images"`
	Reviews       []Review           `bson:"reviews" json:"reviews"`
	Ratings       float64            `bson:"ratings" json:"ratings"`
	SoldOut       int                `bson:"sold_out" json:"sold_out"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// ReviewUser est l'instantané de l'auteur d'un avis, figé au moment de la
// soumission. Toujours construit depuis le principal authentifié, jamais
// depuis le corps de la requête.
type ReviewUser struct {
	ID     string `bson:"_id" json:"_id"`
	Name   string `bson:"name" json:"name"`
	Avatar string `bson:"avatar" json:"avatar"`
}

// Review est un avis acheteur embarqué dans Product.
type Review struct {
	User      ReviewUser `bson:"user" json:"user"`
	Rating    float64    `bson:"rating" json:"rating"`
	Comment   string     `bson:"comment" json:"comment"`
	ProductID string     `bson:"productId" json:"productId"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
}

// UpsertReview remplace sur place l'avis existant du même auteur (position
// conservée) ou ajoute le nouvel avis en fin de liste, puis recalcule la
// moyenne. Retourne true si un avis existant a été remplacé.
func (p *Product) UpsertReview(review Review) bool {
	replaced := false
	for i := range p.Reviews {
		if p.Reviews[i].User.ID == review.User.ID {
			p.Reviews[i] = review
			replaced = true
			break
		}
	}
	if !replaced {
		p.Reviews = append(p.Reviews, review)
	}
	p.RecomputeRatings()
	return replaced
}

// RecomputeRatings recalcule la note moyenne. Zéro avis ⇒ note 0.
func (p *Product) RecomputeRatings() {
	if len(p.Reviews) == 0 {
		p.Ratings = 0
		return
	}
	var total float64
	for _, r := range p.Reviews {
		total += r.Rating
	}
	p.Ratings = total / float64(len(p.Reviews))
}
