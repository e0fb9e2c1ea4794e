package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bazario_back_end/internal/apierror"
	"bazario_back_end/internal/middleware"
	"bazario_back_end/internal/services"
)

// PaymentHandler est le pont vers Stripe — passe-plat sans validation métier,
// seul endroit où des montants traversent la frontière du système.
type PaymentHandler struct {
	payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// Process crée un PaymentIntent. Le montant arrive déjà en centimes ; aucune
// borne ni devise n'est vérifiée ici.
func (h *PaymentHandler) Process(c *gin.Context) {
	var req struct {
		Amount int64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apierror.BadRequest("Invalid request body"))
		return
	}

	clientSecret, err := h.payments.CreateIntent(req.Amount)
	if err != nil {
		middleware.Fail(c, apierror.Internal(err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "clientSecret": clientSecret})
}

// StripeAPIKey expose la clé publique Stripe en clair, comme spécifié.
func (h *PaymentHandler) StripeAPIKey(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stripeApikey": h.payments.PublishableKey()})
}
