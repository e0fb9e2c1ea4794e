package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bazario_back_end/internal/apierror"
	"bazario_back_end/internal/middleware"
	"bazario_back_end/internal/models"
	"bazario_back_end/internal/repository"
)

// OrderHandler couvre la création et la lecture des commandes.
type OrderHandler struct {
	orders repository.OrderStore
}

func NewOrderHandler(orders repository.OrderStore) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// CreateOrder regroupe le panier par boutique et crée une commande par
// boutique. Chaque insertion est indépendante — pas de transaction globale.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req struct {
		Cart            []models.CartItem  `json:"cart" binding:"required"`
		ShippingAddress map[string]any     `json:"shippingAddress"`
		User            models.OrderUser   `json:"user"`
		TotalPrice      float64            `json:"totalPrice"`
		PaymentInfo     models.PaymentInfo `json:"paymentInfo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apierror.BadRequest("Invalid request body"))
		return
	}
	if len(req.Cart) == 0 {
		middleware.Fail(c, apierror.BadRequest("Cart is empty"))
		return
	}

	// Regroupe les lignes par boutique, en conservant l'ordre du panier.
	shopOrder := []string{}
	itemsByShop := map[string][]models.CartItem{}
	for _, item := range req.Cart {
		if _, seen := itemsByShop[item.ShopID]; !seen {
			shopOrder = append(shopOrder, item.ShopID)
		}
		itemsByShop[item.ShopID] = append(itemsByShop[item.ShopID], item)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	orders := []models.Order{}
	for _, shopID := range shopOrder {
		order := &models.Order{
			Cart:            itemsByShop[shopID],
			ShippingAddress: req.ShippingAddress,
			User:            req.User,
			TotalPrice:      req.TotalPrice,
			PaymentInfo:     req.PaymentInfo,
		}
		if err := h.orders.Create(ctx, order); err != nil {
			middleware.Fail(c, apierror.Internal("Internal Server Error"))
			return
		}
		orders = append(orders, *order)
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "orders": orders})
}

// GetAllOrders liste les commandes d'un acheteur, les plus récentes d'abord.
func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	orders, err := h.orders.GetByUser(ctx, c.Param("userId"))
	if err != nil {
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

// GetSellerAllOrders liste les commandes contenant des lignes d'une boutique.
func (h *OrderHandler) GetSellerAllOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	orders, err := h.orders.GetByShop(ctx, c.Param("shopId"))
	if err != nil {
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}
