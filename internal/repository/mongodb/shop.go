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

type ShopStore struct {
	coll *mongo.Collection
}

func NewShopStore(db *mongo.Database) *ShopStore {
	return &ShopStore{coll: db.Collection(database.ShopsCollection)}
}

func (s *ShopStore) Create(ctx context.Context, shop *models.Shop) error {
	shop.CreatedAt = time.Now()
	if shop.Role == "" {
		shop.Role = "Seller"
	}
	res, err := s.coll.InsertOne(ctx, shop)
	if err != nil {
		return mapErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		shop.ID = oid
	}
	return nil
}

func (s *ShopStore) GetByID(ctx context.Context, id string) (*models.Shop, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var shop models.Shop
	err = s.coll.FindOne(ctx, bson.M{"_id": oid},
		options.FindOne().SetProjection(bson.M{"password": 0})).Decode(&shop)
	if err != nil {
		return nil, mapErr(err)
	}
	return &shop, nil
}

func (s *ShopStore) GetByEmail(ctx context.Context, email string) (*models.Shop, error) {
	var shop models.Shop
	err := s.coll.FindOne(ctx, bson.M{"email": email},
		options.FindOne().SetProjection(bson.M{"password": 0})).Decode(&shop)
	if err != nil {
		return nil, mapErr(err)
	}
	return &shop, nil
}

// GetByEmailWithPassword relit aussi le hash — réservé au login.
func (s *ShopStore) GetByEmailWithPassword(ctx context.Context, email string) (*models.Shop, error) {
	var shop models.Shop
	if err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&shop); err != nil {
		return nil, mapErr(err)
	}
	return &shop, nil
}

func (s *ShopStore) UpdateAvatar(ctx context.Context, id, avatarURL string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{"avatar": avatarURL}})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdateInfo écrase le jeu de champs fixes du profil — pas de sémantique de
// champ partiel, les champs absents sont écrits vides.
func (s *ShopStore) UpdateInfo(ctx context.Context, id string, info repository.ShopInfoUpdate) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":        info.Name,
		"description": info.Description,
		"address":     info.Address,
		"phoneNumber": info.PhoneNumber,
		"zipCode":     info.ZipCode,
	}})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
