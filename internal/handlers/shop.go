package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bazario_back_end/internal/apierror"
	"bazario_back_end/internal/auth"
	"bazario_back_end/internal/cache"
	"bazario_back_end/internal/config"
	"bazario_back_end/internal/middleware"
	"bazario_back_end/internal/models"
	"bazario_back_end/internal/repository"
	"bazario_back_end/internal/services"
	"bazario_back_end/internal/utils"
)

// ShopHandler couvre le cycle de vie du compte vendeur : inscription avec
// e-mail d'activation, login cookie, profil et avatar.
type ShopHandler struct {
	cfg      *config.Config
	tokens   *auth.TokenManager
	shops    repository.ShopStore
	uploader services.Uploader
	mailer   utils.Mailer
	cache    *cache.Cache
}

func NewShopHandler(cfg *config.Config, tokens *auth.TokenManager, shops repository.ShopStore,
	uploader services.Uploader, mailer utils.Mailer, c *cache.Cache) *ShopHandler {
	return &ShopHandler{cfg: cfg, tokens: tokens, shops: shops, uploader: uploader, mailer: mailer, cache: c}
}

// CreateShop reçoit le formulaire multipart (champ fichier `file`), uploade
// l'avatar, puis envoie l'e-mail d'activation. Le compte n'est persisté qu'à
// l'activation — il voyage hashé dans le token.
func (h *ShopHandler) CreateShop(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	password := c.PostForm("password")

	if name == "" || email == "" || password == "" {
		middleware.Fail(c, apierror.BadRequest("Please provide the all fields!"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if _, err := h.shops.GetByEmail(ctx, email); err == nil {
		middleware.Fail(c, apierror.BadRequest("User already exists"))
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	avatarURL := ""
	if file, err := c.FormFile("file"); err == nil {
		url, err := h.uploader.Upload(ctx, "shop_avatars", file)
		if err != nil {
			log.Println("❌ Échec upload avatar:", err)
			middleware.Fail(c, apierror.Internal("Avatar upload failed"))
			return
		}
		avatarURL = url
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	pending := models.PendingShop{
		Name:        name,
		Email:       email,
		Password:    hashed,
		Avatar:      avatarURL,
		Address:     c.PostForm("address"),
		PhoneNumber: c.PostForm("phoneNumber"),
		ZipCode:     c.PostForm("zipCode"),
	}

	token, err := h.tokens.GenerateShopActivationToken(pending)
	if err != nil {
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	activationURL := h.cfg.ClientURL + "/seller/activation/" + token
	if err := h.mailer.Send(email, "Activate Your Shop", utils.ActivationEmailHTML(name, activationURL)); err != nil {
		log.Println("❌ Échec envoi e-mail d'activation:", err)
		middleware.Fail(c, apierror.Internal("Failed to send activation email"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Please check your email (" + email + ") to activate your shop!",
		"avatar":  avatarURL,
	})
}

// Activation vérifie le token 15 min et persiste la boutique. Rejouer le
// token d'un compte déjà actif n'est pas une erreur.
func (h *ShopHandler) Activation(c *gin.Context) {
	var req struct {
		ActivationToken string `json:"activation_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apierror.BadRequest("Activation token expired or invalid"))
		return
	}

	pending, err := h.tokens.VerifyShopActivationToken(req.ActivationToken)
	if err != nil {
		middleware.Fail(c, apierror.BadRequest("Activation token expired or invalid"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if _, err := h.shops.GetByEmail(ctx, pending.Email); err == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "User already activated"})
		return
	}

	shop := &models.Shop{
		Name:        pending.Name,
		Email:       pending.Email,
		Password:    pending.Password,
		Avatar:      pending.Avatar,
		Address:     pending.Address,
		PhoneNumber: pending.PhoneNumber,
		ZipCode:     pending.ZipCode,
	}

	if err := h.shops.Create(ctx, shop); err != nil {
		// L'index unique a tranché une course entre deux activations.
		if errors.Is(err, repository.ErrDuplicate) {
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "User already activated"})
			return
		}
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	h.sendSellerToken(c, shop, http.StatusCreated)
}

// LoginSeller répond la même erreur générique pour un e-mail inconnu et un
// mauvais mot de passe — pas d'énumération de comptes.
func (h *ShopHandler) LoginSeller(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apierror.BadRequest("Please provide the all fields!"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	shop, err := h.shops.GetByEmailWithPassword(ctx, req.Email)
	if err != nil || !utils.VerifyPassword(req.Password, shop.Password) {
		middleware.Fail(c, apierror.BadRequest("Please provide the correct information"))
		return
	}

	h.sendSellerToken(c, shop, http.StatusCreated)
}

// GetSeller renvoie le principal vendeur résolu par le middleware.
func (h *ShopHandler) GetSeller(c *gin.Context) {
	seller := middleware.CurrentSeller(c)
	if seller == nil {
		middleware.Fail(c, apierror.Unauthorized("Seller not authenticated"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "seller": seller})
}

// Logout efface le cookie vendeur.
func (h *ShopHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SellerTokenCookie, "", -1, "/", "", h.cfg.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logout successful"})
}

// GetShopInfo sert le profil public d'une boutique, avec cache Redis.
func (h *ShopHandler) GetShopInfo(c *gin.Context) {
	id := c.Param("id")
	if id == "" || id == "null" || id == "undefined" {
		middleware.Fail(c, apierror.BadRequest("Invalid shop ID"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var cached models.Shop
	if h.cache.GetJSON(ctx, cache.ShopInfoKey(id), &cached) {
		c.JSON(http.StatusOK, gin.H{"success": true, "shop": cached})
		return
	}

	shop, err := h.shops.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.Fail(c, apierror.NotFound("Shop not found"))
			return
		}
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	h.cache.SetJSON(ctx, cache.ShopInfoKey(id), shop, cache.ShopCacheTTL)
	c.JSON(http.StatusOK, gin.H{"success": true, "shop": shop})
}

// UpdateShopAvatar uploade d'abord le nouvel asset, puis écrase l'URL. La
// suppression de l'ancien asset est best-effort et ne bloque jamais.
func (h *ShopHandler) UpdateShopAvatar(c *gin.Context) {
	seller := middleware.CurrentSeller(c)

	file, err := c.FormFile("image")
	if err != nil {
		middleware.Fail(c, apierror.BadRequest("Please upload an image"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	newURL, err := h.uploader.Upload(ctx, "shop_avatars", file)
	if err != nil {
		middleware.Fail(c, apierror.Internal("Avatar upload failed"))
		return
	}

	if seller.Avatar != "" {
		if err := h.uploader.Remove(ctx, seller.Avatar); err != nil {
			log.Println("⚠️ Échec suppression ancien avatar:", err)
		}
	}

	if err := h.shops.UpdateAvatar(ctx, seller.ID.Hex(), newURL); err != nil {
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	h.cache.Invalidate(ctx, cache.ShopInfoKey(seller.ID.Hex()))

	updated, err := h.shops.GetByID(ctx, seller.ID.Hex())
	if err != nil {
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "seller": updated})
}

// UpdateSellerInfo écrase le jeu de champs fixes du profil — les champs
// absents du corps sont écrits vides, pas de mise à jour partielle.
func (h *ShopHandler) UpdateSellerInfo(c *gin.Context) {
	seller := middleware.CurrentSeller(c)

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Address     string `json:"address"`
		PhoneNumber string `json:"phoneNumber"`
		ZipCode     string `json:"zipCode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apierror.BadRequest("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	err := h.shops.UpdateInfo(ctx, seller.ID.Hex(), repository.ShopInfoUpdate{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		ZipCode:     req.ZipCode,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.Fail(c, apierror.BadRequest("User not found"))
			return
		}
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	h.cache.Invalidate(ctx, cache.ShopInfoKey(seller.ID.Hex()))

	shop, err := h.shops.GetByID(ctx, seller.ID.Hex())
	if err != nil {
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "shop": shop})
}

// sendSellerToken pose le cookie de session vendeur et répond avec le compte.
func (h *ShopHandler) sendSellerToken(c *gin.Context, shop *models.Shop, status int) {
	token, err := h.tokens.GenerateSellerToken(shop.ID.Hex())
	if err != nil {
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	shop.Password = ""
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SellerTokenCookie, token, int(h.cfg.AuthTokenTTL.Seconds()), "/", "", h.cfg.CookieSecure, true)
	c.JSON(status, gin.H{"success": true, "seller": shop, "token": token})
}
