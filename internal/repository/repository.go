// Package repository définit les accès aux collections, une interface par
// ressource. Les handlers ne dépendent que de ces interfaces ; l'implémentation
// Mongo vit dans le sous-package mongodb.
package repository

import (
	"context"
	"errors"

	"bazario_back_end/internal/models"
)

var (
	// ErrNotFound — l'entité référencée n'existe pas.
	ErrNotFound = errors.New("entité introuvable")
	// ErrDuplicate — violation d'une contrainte d'unicité du stockage.
	ErrDuplicate = errors.New("entité déjà existante")
)

// ShopInfoUpdate est l'écrasement complet du jeu de champs fixes du profil
// boutique. Les champs absents de la requête sont écrits tels quels (vides).
type ShopInfoUpdate struct {
	Name        string
	Description string
	Address     string
	PhoneNumber string
	ZipCode     string
}

type ShopStore interface {
	Create(ctx context.Context, shop *models.Shop) error
	GetByID(ctx context.Context, id string) (*models.Shop, error)
	// GetByEmail relit le compte sans le hash du mot de passe.
	GetByEmail(ctx context.Context, email string) (*models.Shop, error)
	// GetByEmailWithPassword sélectionne explicitement le hash, pour le login.
	GetByEmailWithPassword(ctx context.Context, email string) (*models.Shop, error)
	UpdateAvatar(ctx context.Context, id, avatarURL string) error
	UpdateInfo(ctx context.Context, id string, info ShopInfoUpdate) error
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByEmailWithPassword(ctx context.Context, email string) (*models.User, error)
}

type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetByShop(ctx context.Context, shopID string) ([]models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	Delete(ctx context.Context, id string) error
	// UpdateReviews persiste avis et moyenne en écriture partielle ($set),
	// sans revalidation du document complet.
	UpdateReviews(ctx context.Context, id string, reviews []models.Review, ratings float64) error
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	GetByUser(ctx context.Context, userID string) ([]models.Order, error)
	GetByShop(ctx context.Context, shopID string) ([]models.Order, error)
	// MarkItemReviewed passe isReviewed à true sur la ligne (orderId, productId).
	MarkItemReviewed(ctx context.Context, orderID, productID string) error
}

type CouponStore interface {
	Create(ctx context.Context, coupon *models.Coupon) error
	GetByShop(ctx context.Context, shopID string) ([]models.Coupon, error)
	// GetByName retourne ErrNotFound sur absence — au handler d'en faire un
	// succès à coupon nul, l'absence n'est pas une erreur pour le checkout.
	GetByName(ctx context.Context, name string) (*models.Coupon, error)
	GetByShopAndName(ctx context.Context, shopID, name string) (*models.Coupon, error)
	Delete(ctx context.Context, id string) error
}

type ConversationStore interface {
	Create(ctx context.Context, conversation *models.Conversation) error
	GetByGroupTitle(ctx context.Context, groupTitle string) (*models.Conversation, error)
	GetByMember(ctx context.Context, memberID string) ([]models.Conversation, error)
	UpdateLastMessage(ctx context.Context, id, lastMessage, lastMessageID string) error
}

type MessageStore interface {
	Create(ctx context.Context, message *models.Message) error
	GetByConversation(ctx context.Context, conversationID string) ([]models.Message, error)
}
