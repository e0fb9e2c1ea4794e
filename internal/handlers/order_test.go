package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bazario_back_end/internal/middleware"
	"bazario_back_end/internal/models"
)

func newOrderTestServer(orders *mockOrderStore) *gin.Engine {
	h := NewOrderHandler(orders)

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.POST("/api/v2/order/create-order", h.CreateOrder)
	r.GET("/api/v2/order/get-all-orders/:userId", h.GetAllOrders)
	r.GET("/api/v2/order/get-seller-all-orders/:shopId", h.GetSellerAllOrders)
	return r
}

func TestCreateOrder(t *testing.T) {
	t.Run("une commande par boutique, l'ordre du panier conservé", func(t *testing.T) {
		orders := new(mockOrderStore)
		created := []*models.Order{}
		orders.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				created = append(created, args.Get(1).(*models.Order))
			}).Return(nil)

		r := newOrderTestServer(orders)
		w := performJSON(r, http.MethodPost, "/api/v2/order/create-order", gin.H{
			"cart": []gin.H{
				{"productId": "p1", "shopId": "shop-a", "name": "Clavier", "price": 89.99, "qty": 1},
				{"productId": "p2", "shopId": "shop-b", "name": "Souris", "price": 29.99, "qty": 2},
				{"productId": "p3", "shopId": "shop-a", "name": "Tapis", "price": 9.99, "qty": 1},
			},
			"user":       gin.H{"_id": "user-1", "name": "Alice"},
			"totalPrice": 159.96,
		})

		require.Equal(t, http.StatusCreated, w.Code)
		require.Len(t, created, 2)

		// shop-a d'abord (première apparition dans le panier), avec ses deux lignes.
		assert.Equal(t, "shop-a", created[0].Cart[0].ShopID)
		require.Len(t, created[0].Cart, 2)
		assert.Equal(t, "p1", created[0].Cart[0].ProductID)
		assert.Equal(t, "p3", created[0].Cart[1].ProductID)

		require.Len(t, created[1].Cart, 1)
		assert.Equal(t, "shop-b", created[1].Cart[0].ShopID)

		got := decodeBody(t, w)
		list, ok := got["orders"].([]any)
		require.True(t, ok)
		assert.Len(t, list, 2)
	})

	t.Run("refuse un panier vide", func(t *testing.T) {
		orders := new(mockOrderStore)
		r := newOrderTestServer(orders)

		w := performJSON(r, http.MethodPost, "/api/v2/order/create-order",
			gin.H{"cart": []gin.H{}, "totalPrice": 0})

		require.Equal(t, http.StatusBadRequest, w.Code)
		orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestGetOrders(t *testing.T) {
	t.Run("commandes d'un acheteur", func(t *testing.T) {
		orders := new(mockOrderStore)
		orders.On("GetByUser", mock.Anything, "user-1").
			Return([]models.Order{{TotalPrice: 10}, {TotalPrice: 20}}, nil)

		r := newOrderTestServer(orders)
		w := performJSON(r, http.MethodGet, "/api/v2/order/get-all-orders/user-1", nil)

		require.Equal(t, http.StatusOK, w.Code)
		got := decodeBody(t, w)
		list, ok := got["orders"].([]any)
		require.True(t, ok)
		assert.Len(t, list, 2)
	})

	t.Run("commandes contenant des lignes d'une boutique", func(t *testing.T) {
		orders := new(mockOrderStore)
		orders.On("GetByShop", mock.Anything, "shop-a").Return([]models.Order{{}}, nil)

		r := newOrderTestServer(orders)
		w := performJSON(r, http.MethodGet, "/api/v2/order/get-seller-all-orders/shop-a", nil)

		require.Equal(t, http.StatusOK, w.Code)
		got := decodeBody(t, w)
		assert.Equal(t, true, got["success"])
	})
}
