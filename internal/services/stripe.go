package services

import (
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"

	"bazario_back_end/internal/config"
)

// PaymentService est le pont vers la création de PaymentIntent Stripe.
// Aucune validation métier ici : le montant arrive déjà en centimes et le
// client échange le client secret directement avec Stripe.
type PaymentService struct {
	cfg *config.Config
}

func NewPaymentService(cfg *config.Config) *PaymentService {
	stripe.Key = cfg.StripeSecretKey
	return &PaymentService{cfg: cfg}
}

// CreateIntent crée un PaymentIntent et retourne son client secret.
func (s *PaymentService) CreateIntent(amount int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String("usd"),
		Metadata: map[string]string{
			"company": "Bazario",
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}

// PublishableKey expose la clé publique Stripe telle quelle.
func (s *PaymentService) PublishableKey() string {
	return s.cfg.StripePublishableKey
}
