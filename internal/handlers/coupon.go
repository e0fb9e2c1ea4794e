package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bazario_back_end/internal/apierror"
	"bazario_back_end/internal/middleware"
	"bazario_back_end/internal/models"
	"bazario_back_end/internal/repository"
)

// CouponHandler couvre les codes de réduction, rattachés à la boutique du
// vendeur authentifié.
type CouponHandler struct {
	coupons repository.CouponStore
}

func NewCouponHandler(coupons repository.CouponStore) *CouponHandler {
	return &CouponHandler{coupons: coupons}
}

// CreateCoupon refuse un nom déjà pris dans la même boutique. Le pré-check
// donne le message ; l'index unique (shopId, name) donne la garantie sous
// concurrence, et sa violation retombe sur le même 400.
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	seller := middleware.CurrentSeller(c)

	var req struct {
		Name             string   `json:"name"`
		Value            float64  `json:"value"`
		MinAmount        *float64 `json:"minAmount"`
		MaxAmount        *float64 `json:"maxAmount"`
		SelectedProducts []string `json:"selectedProducts"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apierror.BadRequest("Name and discount percentage are required!"))
		return
	}
	if req.Name == "" || req.Value == 0 {
		middleware.Fail(c, apierror.BadRequest("Name and discount percentage are required!"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	shopID := seller.ID.Hex()

	if _, err := h.coupons.GetByShopAndName(ctx, shopID, req.Name); err == nil {
		middleware.Fail(c, apierror.BadRequest("Coupon code already exists for this shop!"))
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	coupon := &models.Coupon{
		Name:             req.Name,
		Value:            req.Value,
		MinAmount:        req.MinAmount,
		MaxAmount:        req.MaxAmount,
		ShopID:           shopID,
		SelectedProducts: req.SelectedProducts,
	}

	if err := h.coupons.Create(ctx, coupon); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			middleware.Fail(c, apierror.BadRequest("Coupon code already exists for this shop!"))
			return
		}
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "coupon": coupon})
}

// GetCoupons liste les coupons d'une boutique.
func (h *CouponHandler) GetCoupons(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	couponCodes, err := h.coupons.GetByShop(ctx, c.Param("id"))
	if err != nil {
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "couponCodes": couponCodes})
}

// DeleteCoupon — supprimer un coupon inexistant est une erreur utilisateur
// (400), pas une erreur serveur.
func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.coupons.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.Fail(c, apierror.BadRequest("Coupon code doesn't exists!"))
			return
		}
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Coupon code deleted successfully!"})
}

// GetCouponValue sert le checkout : un nom inconnu est un succès à coupon
// nul, jamais une erreur.
func (h *CouponHandler) GetCouponValue(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	coupon, err := h.coupons.GetByName(ctx, c.Param("name"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"success": true, "couponCode": nil})
			return
		}
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "couponCode": coupon})
}
