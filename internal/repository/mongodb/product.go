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

type ProductStore struct {
	coll *mongo.Collection
}

func NewProductStore(db *mongo.Database) *ProductStore {
	return &ProductStore{coll: db.Collection(database.ProductsCollection)}
}

func (s *ProductStore) Create(ctx context.Context, product *models.Product) error {
	product.CreatedAt = time.Now()
	if product.Reviews == nil {
		product.Reviews = []models.Review{}
	}
	res, err := s.coll.InsertOne(ctx, product)
	if err != nil {
		return mapErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}
	return nil
}

func (s *ProductStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var product models.Product
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&product); err != nil {
		return nil, mapErr(err)
	}
	return &product, nil
}

func (s *ProductStore) GetByShop(ctx context.Context, shopID string) ([]models.Product, error) {
	return s.find(ctx, bson.M{"shopId": shopID})
}

func (s *ProductStore) GetAll(ctx context.Context) ([]models.Product, error) {
	return s.find(ctx, bson.M{})
}

func (s *ProductStore) find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, mapErr(err)
	}
	return products, nil
}

func (s *ProductStore) Delete(ctx context.Context, id string) error {
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

// UpdateReviews persiste la liste d'avis et la moyenne en $set partiel, sans
// revalidation du reste du document.
func (s *ProductStore) UpdateReviews(ctx context.Context, id string, reviews []models.Review, ratings float64) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{"reviews": reviews, "ratings": ratings}})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
