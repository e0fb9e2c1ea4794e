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

type OrderStore struct {
	coll *mongo.Collection
}

func NewOrderStore(db *mongo.Database) *OrderStore {
	return &OrderStore{coll: db.Collection(database.OrdersCollection)}
}

func (s *OrderStore) Create(ctx context.Context, order *models.Order) error {
	order.CreatedAt = time.Now()
	if order.Status == "" {
		order.Status = "Processing"
	}
	res, err := s.coll.InsertOne(ctx, order)
	if err != nil {
		return mapErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid
	}
	return nil
}

func (s *OrderStore) GetByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.find(ctx, bson.M{"user._id": userID})
}

func (s *OrderStore) GetByShop(ctx context.Context, shopID string) ([]models.Order, error) {
	return s.find(ctx, bson.M{"cart.shopId": shopID})
}

func (s *OrderStore) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, mapErr(err)
	}
	return orders, nil
}

// MarkItemReviewed passe isReviewed à true sur la ligne du panier qui matche
// (orderId, productId). Écriture indépendante de celle de l'avis produit :
// aucune atomicité entre les deux, par conception.
func (s *OrderStore) MarkItemReviewed(ctx context.Context, orderID, productID string) error {
	oid, err := objectID(orderID)
	if err != nil {
		return err
	}
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "cart.productId": productID},
		bson.M{"$set": bson.M{"cart.$.isReviewed": true}})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
