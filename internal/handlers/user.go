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
	"bazario_back_end/internal/config"
	"bazario_back_end/internal/middleware"
	"bazario_back_end/internal/models"
	"bazario_back_end/internal/repository"
	"bazario_back_end/internal/services"
	"bazario_back_end/internal/utils"
)

// UserHandler couvre le compte acheteur, symétrique du compte vendeur mais
// avec son propre secret d'activation et son propre cookie.
type UserHandler struct {
	cfg      *config.Config
	tokens   *auth.TokenManager
	users    repository.UserStore
	uploader services.Uploader
	mailer   utils.Mailer
}

func NewUserHandler(cfg *config.Config, tokens *auth.TokenManager, users repository.UserStore,
	uploader services.Uploader, mailer utils.Mailer) *UserHandler {
	return &UserHandler{cfg: cfg, tokens: tokens, users: users, uploader: uploader, mailer: mailer}
}

// CreateUser envoie l'e-mail d'activation ; le compte n'est persisté qu'à
// l'activation.
func (h *UserHandler) CreateUser(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	password := c.PostForm("password")

	if name == "" || email == "" || password == "" {
		middleware.Fail(c, apierror.BadRequest("Please provide the all fields!"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if _, err := h.users.GetByEmail(ctx, email); err == nil {
		middleware.Fail(c, apierror.BadRequest("User already exists"))
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	avatarURL := ""
	if file, err := c.FormFile("file"); err == nil {
		url, err := h.uploader.Upload(ctx, "user_avatars", file)
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

	pending := models.PendingUser{Name: name, Email: email, Password: hashed, Avatar: avatarURL}

	token, err := h.tokens.GenerateUserActivationToken(pending)
	if err != nil {
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	activationURL := h.cfg.ClientURL + "/activation/" + token
	if err := h.mailer.Send(email, "Activate your account", utils.ActivationEmailHTML(name, activationURL)); err != nil {
		log.Println("❌ Échec envoi e-mail d'activation:", err)
		middleware.Fail(c, apierror.Internal("Failed to send activation email"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Please check your email (" + email + ") to activate your account!",
	})
}

// Activation vérifie le token et persiste l'acheteur.
func (h *UserHandler) Activation(c *gin.Context) {
	var req struct {
		ActivationToken string `json:"activation_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apierror.BadRequest("Activation token expired or invalid"))
		return
	}

	pending, err := h.tokens.VerifyUserActivationToken(req.ActivationToken)
	if err != nil {
		middleware.Fail(c, apierror.BadRequest("Activation token expired or invalid"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if _, err := h.users.GetByEmail(ctx, pending.Email); err == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "User already activated"})
		return
	}

	user := &models.User{
		Name:     pending.Name,
		Email:    pending.Email,
		Password: pending.Password,
		Avatar:   pending.Avatar,
	}

	if err := h.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "User already activated"})
			return
		}
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	h.sendUserToken(c, user, http.StatusCreated)
}

// LoginUser — même message générique quel que soit le champ fautif.
func (h *UserHandler) LoginUser(c *gin.Context) {
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

	user, err := h.users.GetByEmailWithPassword(ctx, req.Email)
	if err != nil || !utils.VerifyPassword(req.Password, user.Password) {
		middleware.Fail(c, apierror.BadRequest("Please provide the correct information"))
		return
	}

	h.sendUserToken(c, user, http.StatusCreated)
}

// GetUser renvoie le principal acheteur résolu par le middleware.
func (h *UserHandler) GetUser(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		middleware.Fail(c, apierror.Unauthorized("User not authenticated"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// Logout efface le cookie acheteur.
func (h *UserHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.UserTokenCookie, "", -1, "/", "", h.cfg.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logout successful"})
}

func (h *UserHandler) sendUserToken(c *gin.Context, user *models.User, status int) {
	token, err := h.tokens.GenerateUserToken(user.ID.Hex())
	if err != nil {
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	user.Password = ""
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.UserTokenCookie, token, int(h.cfg.AuthTokenTTL.Seconds()), "/", "", h.cfg.CookieSecure, true)
	c.JSON(status, gin.H{"success": true, "user": user, "token": token})
}
