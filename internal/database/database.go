package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bazario_back_end/internal/config"
)

// Noms des collections — une collection indépendante par ressource, aucune
// transaction inter-collections nulle part.
const (
	ShopsCollection         = "shops"
	UsersCollection         = "users"
	ProductsCollection      = "products"
	OrdersCollection        = "orders"
	CouponsCollection       = "coupons"
	ConversationsCollection = "conversations"
	MessagesCollection      = "messages"
)

// Connect ouvre la connexion MongoDB et vérifie qu'elle répond.
func Connect(cfg *config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connexion MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	log.Println("✅ Connecté à MongoDB :", cfg.MongoDB)
	return client.Database(cfg.MongoDB), nil
}

// EnsureIndexes pose les contraintes d'unicité au niveau du stockage : le
// pré-check applicatif seul n'est pas sûr sous requêtes concurrentes.
func EnsureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Email unique par boutique
	_, err := db.Collection(ShopsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("index shops.email: %w", err)
	}

	// Email unique par acheteur
	_, err = db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("index users.email: %w", err)
	}

	// Nom de coupon unique au sein d'une même boutique
	_, err = db.Collection(CouponsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "shopId", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("index coupons.(shopId,name): %w", err)
	}

	// Lecture des messages par fil
	_, err = db.Collection(MessagesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "conversationId", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("index messages.conversationId: %w", err)
	}

	log.Println("✅ Index MongoDB en place")
	return nil
}
