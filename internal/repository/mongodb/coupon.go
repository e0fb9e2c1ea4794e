package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bazario_back_end/internal/database"
	"bazario_back_end/internal/models"
	"bazario_back_end/internal/repository"
)

type CouponStore struct {
	coll *mongo.Collection
}

func NewCouponStore(db *mongo.Database) *CouponStore {
	return &CouponStore{coll: db.Collection(database.CouponsCollection)}
}

// Create retourne ErrDuplicate si l'index unique (shopId, name) refuse
// l'insertion — c'est la vraie garantie, le pré-check du handler n'est là
// que pour le message.
func (s *CouponStore) Create(ctx context.Context, coupon *models.Coupon) error {
	coupon.CreatedAt = time.Now()
	if coupon.SelectedProducts == nil {
		coupon.SelectedProducts = []string{}
	}
	res, err := s.coll.InsertOne(ctx, coupon)
	if err != nil {
		return mapErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		coupon.ID = oid
	}
	return nil
}

func (s *CouponStore) GetByShop(ctx context.Context, shopID string) ([]models.Coupon, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"shopId": shopID})
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(ctx)

	coupons := []models.Coupon{}
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, mapErr(err)
	}
	return coupons, nil
}

func (s *CouponStore) GetByName(ctx context.Context, name string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&coupon); err != nil {
		return nil, mapErr(err)
	}
	return &coupon, nil
}

func (s *CouponStore) GetByShopAndName(ctx context.Context, shopID, name string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := s.coll.FindOne(ctx, bson.M{"shopId": shopID, "name": name}).Decode(&coupon)
	if err != nil {
		return nil, mapErr(err)
	}
	return &coupon, nil
}

func (s *CouponStore) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return mapErr(err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
