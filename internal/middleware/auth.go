package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"bazario_back_end/internal/apierror"
	"bazario_back_end/internal/auth"
	"bazario_back_end/internal/models"
	"bazario_back_end/internal/repository"
)

// Noms des cookies — un par type de principal, secrets indépendants.
const (
	UserTokenCookie   = "token"
	SellerTokenCookie = "seller_token"
)

const (
	userContextKey   = "current_user"
	sellerContextKey = "current_seller"
)

// Auth résout l'identité : cookie signé → vérification → rechargement du
// compte persisté → principal dans le contexte. Sans principal valide, le
// handler métier n'est jamais exécuté.
type Auth struct {
	tokens *auth.TokenManager
	users  repository.UserStore
	shops  repository.ShopStore
}

func NewAuth(tokens *auth.TokenManager, users repository.UserStore, shops repository.ShopStore) *Auth {
	return &Auth{tokens: tokens, users: users, shops: shops}
}

// IsAuthenticated exige une session acheteur valide.
func (a *Auth) IsAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(UserTokenCookie)
		if err != nil || tokenString == "" {
			Fail(c, apierror.Unauthorized("Please login to continue"))
			return
		}

		userID, err := a.tokens.VerifyUserToken(tokenString)
		if err != nil {
			Fail(c, apierror.Unauthorized("Please login to continue"))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := a.users.GetByID(ctx, userID)
		if err != nil {
			Fail(c, apierror.Unauthorized("Please login to continue"))
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// IsSeller exige une session vendeur valide. Un token acheteur est rejeté
// ici : autre secret, autre cookie.
func (a *Auth) IsSeller() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(SellerTokenCookie)
		if err != nil || tokenString == "" {
			Fail(c, apierror.Unauthorized("Please login to continue"))
			return
		}

		shopID, err := a.tokens.VerifySellerToken(tokenString)
		if err != nil {
			Fail(c, apierror.Unauthorized("Please login to continue"))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		shop, err := a.shops.GetByID(ctx, shopID)
		if err != nil {
			Fail(c, apierror.Unauthorized("Please login to continue"))
			return
		}

		c.Set(sellerContextKey, shop)
		c.Next()
	}
}

// CurrentUser retourne le principal acheteur posé par IsAuthenticated.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userContextKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// CurrentSeller retourne le principal vendeur posé par IsSeller.
func CurrentSeller(c *gin.Context) *models.Shop {
	if v, ok := c.Get(sellerContextKey); ok {
		if shop, ok := v.(*models.Shop); ok {
			return shop
		}
	}
	return nil
}
