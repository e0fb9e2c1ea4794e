package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"bazario_back_end/internal/config"
	"bazario_back_end/internal/models"
)

// TokenManager signe et vérifie les trois familles de tokens : session
// acheteur, session vendeur et tokens d'activation courte durée. Chaque
// famille a son propre secret — un token vendeur ne vaut rien côté acheteur.
type TokenManager struct {
	cfg *config.Config
}

func NewTokenManager(cfg *config.Config) *TokenManager {
	return &TokenManager{cfg: cfg}
}

// PrincipalClaims porte l'identité d'une session acheteur ou vendeur.
type PrincipalClaims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

// ShopActivationClaims transporte le compte vendeur en attente d'activation.
type ShopActivationClaims struct {
	Shop models.PendingShop `json:"shop"`
	jwt.RegisteredClaims
}

// UserActivationClaims transporte le compte acheteur en attente d'activation.
type UserActivationClaims struct {
	User models.PendingUser `json:"user"`
	jwt.RegisteredClaims
}

// GenerateUserToken signe un token de session acheteur.
func (m *TokenManager) GenerateUserToken(userID string) (string, error) {
	return m.signPrincipal(userID, m.cfg.UserJWTSecret)
}

// GenerateSellerToken signe un token de session vendeur.
func (m *TokenManager) GenerateSellerToken(shopID string) (string, error) {
	return m.signPrincipal(shopID, m.cfg.SellerJWTSecret)
}

func (m *TokenManager) signPrincipal(id, secret string) (string, error) {
	now := time.Now()
	claims := &PrincipalClaims{
		ID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.AuthTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyUserToken vérifie un token de session acheteur et retourne l'id.
func (m *TokenManager) VerifyUserToken(tokenString string) (string, error) {
	return m.verifyPrincipal(tokenString, m.cfg.UserJWTSecret)
}

// VerifySellerToken vérifie un token de session vendeur et retourne l'id.
func (m *TokenManager) VerifySellerToken(tokenString string) (string, error) {
	return m.verifyPrincipal(tokenString, m.cfg.SellerJWTSecret)
}

func (m *TokenManager) verifyPrincipal(tokenString, secret string) (string, error) {
	claims := &PrincipalClaims{}
	if err := m.parse(tokenString, secret, claims); err != nil {
		return "", err
	}
	if claims.ID == "" {
		return "", fmt.Errorf("token sans identité")
	}
	return claims.ID, nil
}

// GenerateShopActivationToken signe le compte vendeur en attente pour 15 min.
func (m *TokenManager) GenerateShopActivationToken(shop models.PendingShop) (string, error) {
	now := time.Now()
	claims := &ShopActivationClaims{
		Shop: shop,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.ActivationTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.cfg.ShopActivationSecret))
}

// VerifyShopActivationToken relit le compte vendeur en attente.
func (m *TokenManager) VerifyShopActivationToken(tokenString string) (models.PendingShop, error) {
	claims := &ShopActivationClaims{}
	if err := m.parse(tokenString, m.cfg.ShopActivationSecret, claims); err != nil {
		return models.PendingShop{}, err
	}
	return claims.Shop, nil
}

// GenerateUserActivationToken signe le compte acheteur en attente pour 15 min.
func (m *TokenManager) GenerateUserActivationToken(user models.PendingUser) (string, error) {
	now := time.Now()
	claims := &UserActivationClaims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.ActivationTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.cfg.ActivationSecret))
}

// VerifyUserActivationToken relit le compte acheteur en attente.
func (m *TokenManager) VerifyUserActivationToken(tokenString string) (models.PendingUser, error) {
	claims := &UserActivationClaims{}
	if err := m.parse(tokenString, m.cfg.ActivationSecret, claims); err != nil {
		return models.PendingUser{}, err
	}
	return claims.User, nil
}

func (m *TokenManager) parse(tokenString, secret string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("méthode de signature inattendue: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return fmt.Errorf("token invalide")
	}
	return nil
}
