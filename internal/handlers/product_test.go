package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bazario_back_end/internal/auth"
	"bazario_back_end/internal/middleware"
	"bazario_back_end/internal/models"
	"bazario_back_end/internal/repository"
)

type productTestEnv struct {
	r        *gin.Engine
	products *mockProductStore
	shops    *mockShopStore
	orders   *mockOrderStore
	uploader *fakeUploader
	user     *models.User
	cookie   *http.Cookie
}

func newProductTestServer(t *testing.T) *productTestEnv {
	t.Helper()

	cfg := newTestConfig()
	tokens := auth.NewTokenManager(cfg)

	env := &productTestEnv{
		products: new(mockProductStore),
		shops:    new(mockShopStore),
		orders:   new(mockOrderStore),
		uploader: &fakeUploader{},
		user: &models.User{
			ID:     primitive.NewObjectID(),
			Name:   "Alice",
			Avatar: "http://minio.local/bazario/user_avatars/alice.png",
		},
	}

	users := new(mockUserStore)
	users.On("GetByID", mock.Anything, env.user.ID.Hex()).Return(env.user, nil)

	authMw := middleware.NewAuth(tokens, users, env.shops)
	h := NewProductHandler(env.products, env.shops, env.orders, env.uploader, nil)

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.POST("/api/v2/product/create-product", h.CreateProduct)
	r.GET("/api/v2/product/get-all-products", h.GetAllProducts)
	r.GET("/api/v2/product/get-all-products-shop/:id", h.GetAllProductsShop)
	r.DELETE("/api/v2/product/delete-shop-product/:id", h.DeleteProduct)
	r.PUT("/api/v2/product/create-new-review", authMw.IsAuthenticated(), h.CreateReview)
	env.r = r

	token, err := tokens.GenerateUserToken(env.user.ID.Hex())
	require.NoError(t, err)
	env.cookie = &http.Cookie{Name: middleware.UserTokenCookie, Value: token}

	return env
}

func TestCreateProduct(t *testing.T) {
	shopID := primitive.NewObjectID().Hex()
	shop := &models.Shop{Name: "Boutique Test"}

	t.Run("uploade les images dans l'ordre et persiste le produit", func(t *testing.T) {
		env := newProductTestServer(t)
		env.shops.On("GetByID", mock.Anything, shopID).Return(shop, nil)
		env.products.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
			return p.Name == "Clavier mécanique" && p.ShopID == shopID &&
				len(p.Images) == 2 &&
				p.Images[0] == "http://minio.local/bazario/product_images/front.png" &&
				p.Images[1] == "http://minio.local/bazario/product_images/back.png"
		})).Return(nil)

		body, contentType := multipartBody(t, map[string]string{
			"shopId":        shopID,
			"name":          "Clavier mécanique",
			"description":   "Switches bleus",
			"category":      "Informatique",
			"discountPrice": "89.99",
			"stock":         "12",
		}, "images", []string{"front.png", "back.png"})

		w := performMultipart(env.r, http.MethodPost, "/api/v2/product/create-product", body, contentType)

		require.Equal(t, http.StatusCreated, w.Code)
		got := decodeBody(t, w)
		assert.Equal(t, true, got["success"])
		assert.Len(t, env.uploader.uploaded, 2)
		env.products.AssertExpectations(t)
	})

	t.Run("refuse une boutique inconnue", func(t *testing.T) {
		env := newProductTestServer(t)
		env.shops.On("GetByID", mock.Anything, "bad-id").Return(nil, repository.ErrNotFound)

		body, contentType := multipartBody(t, map[string]string{"shopId": "bad-id", "name": "X"},
			"images", []string{"a.png"})

		w := performMultipart(env.r, http.MethodPost, "/api/v2/product/create-product", body, contentType)

		require.Equal(t, http.StatusBadRequest, w.Code)
		got := decodeBody(t, w)
		assert.Equal(t, "Shop Id is invalid", got["message"])
	})

	t.Run("refuse un produit sans image", func(t *testing.T) {
		env := newProductTestServer(t)
		env.shops.On("GetByID", mock.Anything, shopID).Return(shop, nil)

		body, contentType := multipartBody(t, map[string]string{"shopId": shopID, "name": "X"},
			"images", nil)

		w := performMultipart(env.r, http.MethodPost, "/api/v2/product/create-product", body, contentType)

		require.Equal(t, http.StatusBadRequest, w.Code)
		got := decodeBody(t, w)
		assert.Equal(t, "Please upload at least one image", got["message"])
		env.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("refuse plus de six images", func(t *testing.T) {
		env := newProductTestServer(t)
		env.shops.On("GetByID", mock.Anything, shopID).Return(shop, nil)

		files := []string{"1.png", "2.png", "3.png", "4.png", "5.png", "6.png", "7.png"}
		body, contentType := multipartBody(t, map[string]string{"shopId": shopID, "name": "X"},
			"images", files)

		w := performMultipart(env.r, http.MethodPost, "/api/v2/product/create-product", body, contentType)

		require.Equal(t, http.StatusBadRequest, w.Code)
		got := decodeBody(t, w)
		assert.Equal(t, "You can upload up to 6 images", got["message"])
		assert.Empty(t, env.uploader.uploaded)
	})

	t.Run("un upload en échec fait échouer la création", func(t *testing.T) {
		env := newProductTestServer(t)
		env.shops.On("GetByID", mock.Anything, shopID).Return(shop, nil)
		env.uploader.failNext = true

		body, contentType := multipartBody(t, map[string]string{"shopId": shopID, "name": "X"},
			"images", []string{"a.png"})

		w := performMultipart(env.r, http.MethodPost, "/api/v2/product/create-product", body, contentType)

		require.Equal(t, http.StatusInternalServerError, w.Code)
		got := decodeBody(t, w)
		assert.Equal(t, "Image upload failed", got["message"])
		env.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestDeleteProduct(t *testing.T) {
	t.Run("supprime la fiche et nettoie les assets", func(t *testing.T) {
		env := newProductTestServer(t)
		product := &models.Product{
			ID:     primitive.NewObjectID(),
			ShopID: "shop-1",
			Images: []string{"http://minio.local/bazario/product_images/a.png"},
		}
		env.products.On("GetByID", mock.Anything, product.ID.Hex()).Return(product, nil)
		env.products.On("Delete", mock.Anything, product.ID.Hex()).Return(nil)

		w := performJSON(env.r, http.MethodDelete, "/api/v2/product/delete-shop-product/"+product.ID.Hex(), nil)

		require.Equal(t, http.StatusOK, w.Code)
		got := decodeBody(t, w)
		assert.Equal(t, "Product and images deleted successfully!", got["message"])
		assert.Equal(t, product.Images, env.uploader.removed)
	})

	t.Run("un produit inconnu donne un 404", func(t *testing.T) {
		env := newProductTestServer(t)
		env.products.On("GetByID", mock.Anything, "missing").Return(nil, repository.ErrNotFound)

		w := performJSON(env.r, http.MethodDelete, "/api/v2/product/delete-shop-product/missing", nil)

		require.Equal(t, http.StatusNotFound, w.Code)
		got := decodeBody(t, w)
		assert.Equal(t, false, got["success"])
		assert.Equal(t, "Product not found with this id!", got["message"])
	})
}

func TestCreateReview(t *testing.T) {
	productID := primitive.NewObjectID().Hex()

	t.Run("exige une session acheteur", func(t *testing.T) {
		env := newProductTestServer(t)

		w := performJSON(env.r, http.MethodPut, "/api/v2/product/create-new-review",
			gin.H{"rating": 4, "productId": productID, "orderId": "order-1"})

		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("exige la note", func(t *testing.T) {
		env := newProductTestServer(t)

		w := performJSON(env.r, http.MethodPut, "/api/v2/product/create-new-review",
			gin.H{"productId": productID, "orderId": "order-1"}, env.cookie)

		require.Equal(t, http.StatusBadRequest, w.Code)
		got := decodeBody(t, w)
		assert.Equal(t, "Missing required fields", got["message"])
	})

	t.Run("premier avis : l'auteur vient du principal, jamais du corps", func(t *testing.T) {
		env := newProductTestServer(t)
		env.products.On("GetByID", mock.Anything, productID).Return(&models.Product{ShopID: "shop-1"}, nil)
		env.products.On("UpdateReviews", mock.Anything, productID,
			mock.MatchedBy(func(reviews []models.Review) bool {
				return len(reviews) == 1 &&
					reviews[0].User.ID == env.user.ID.Hex() &&
					reviews[0].User.Name == "Alice" &&
					reviews[0].Rating == 4
			}), 4.0).Return(nil)
		env.orders.On("MarkItemReviewed", mock.Anything, "order-1", productID).Return(nil)

		w := performJSON(env.r, http.MethodPut, "/api/v2/product/create-new-review",
			gin.H{
				"rating":    4,
				"comment":   "Très bon produit",
				"productId": productID,
				"orderId":   "order-1",
				"user":      gin.H{"_id": "forged-id", "name": "Mallory"},
			}, env.cookie)

		require.Equal(t, http.StatusOK, w.Code)
		got := decodeBody(t, w)
		assert.Equal(t, "Reviewed successfully!", got["message"])
		env.products.AssertExpectations(t)
		env.orders.AssertExpectations(t)
	})

	t.Run("second avis du même acheteur : remplacement, pas de doublon", func(t *testing.T) {
		env := newProductTestServer(t)
		existing := models.Review{
			User:   models.ReviewUser{ID: env.user.ID.Hex(), Name: "Alice"},
			Rating: 4,
		}
		env.products.On("GetByID", mock.Anything, productID).
			Return(&models.Product{ShopID: "shop-1", Reviews: []models.Review{existing}, Ratings: 4}, nil)
		env.products.On("UpdateReviews", mock.Anything, productID,
			mock.MatchedBy(func(reviews []models.Review) bool {
				return len(reviews) == 1 && reviews[0].Rating == 2
			}), 2.0).Return(nil)
		env.orders.On("MarkItemReviewed", mock.Anything, "order-1", productID).Return(nil)

		w := performJSON(env.r, http.MethodPut, "/api/v2/product/create-new-review",
			gin.H{"rating": 2, "productId": productID, "orderId": "order-1"}, env.cookie)

		require.Equal(t, http.StatusOK, w.Code)
		env.products.AssertExpectations(t)
	})

	t.Run("une note zéro est une note, pas une absence", func(t *testing.T) {
		env := newProductTestServer(t)
		env.products.On("GetByID", mock.Anything, productID).Return(&models.Product{ShopID: "shop-1"}, nil)
		env.products.On("UpdateReviews", mock.Anything, productID,
			mock.MatchedBy(func(reviews []models.Review) bool {
				return len(reviews) == 1 && reviews[0].Rating == 0
			}), 0.0).Return(nil)
		env.orders.On("MarkItemReviewed", mock.Anything, "order-1", productID).Return(nil)

		w := performJSON(env.r, http.MethodPut, "/api/v2/product/create-new-review",
			gin.H{"rating": 0, "productId": productID, "orderId": "order-1"}, env.cookie)

		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("l'échec du marquage isReviewed ne casse pas l'avis", func(t *testing.T) {
		env := newProductTestServer(t)
		env.products.On("GetByID", mock.Anything, productID).Return(&models.Product{ShopID: "shop-1"}, nil)
		env.products.On("UpdateReviews", mock.Anything, productID, mock.Anything, 5.0).Return(nil)
		env.orders.On("MarkItemReviewed", mock.Anything, "order-1", productID).
			Return(repository.ErrNotFound)

		w := performJSON(env.r, http.MethodPut, "/api/v2/product/create-new-review",
			gin.H{"rating": 5, "productId": productID, "orderId": "order-1"}, env.cookie)

		require.Equal(t, http.StatusOK, w.Code)
		got := decodeBody(t, w)
		assert.Equal(t, true, got["success"])
	})
}

func TestGetAllProducts(t *testing.T) {
	env := newProductTestServer(t)
	env.products.On("GetAll", mock.Anything).
		Return([]models.Product{{Name: "A"}, {Name: "B"}}, nil)

	w := performJSON(env.r, http.MethodGet, "/api/v2/product/get-all-products", nil)

	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody(t, w)
	products, ok := got["products"].([]any)
	require.True(t, ok)
	assert.Len(t, products, 2)
}
