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

// ConversationHandler couvre les fils de discussion acheteur–vendeur.
type ConversationHandler struct {
	conversations repository.ConversationStore
}

func NewConversationHandler(conversations repository.ConversationStore) *ConversationHandler {
	return &ConversationHandler{conversations: conversations}
}

// CreateConversation est idempotent sur groupTitle : si le fil existe déjà,
// on le renvoie tel quel.
func (h *ConversationHandler) CreateConversation(c *gin.Context) {
	var req struct {
		GroupTitle string `json:"groupTitle" binding:"required"`
		UserID     string `json:"userId" binding:"required"`
		SellerID   string `json:"sellerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apierror.BadRequest("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if existing, err := h.conversations.GetByGroupTitle(ctx, req.GroupTitle); err == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "conversation": existing})
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	conversation := &models.Conversation{
		GroupTitle: req.GroupTitle,
		Members:    []string{req.UserID, req.SellerID},
	}

	if err := h.conversations.Create(ctx, conversation); err != nil {
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "conversation": conversation})
}

// GetSellerConversations liste les fils d'un vendeur, du plus récent au plus
// ancien.
func (h *ConversationHandler) GetSellerConversations(c *gin.Context) {
	h.getConversations(c, c.Param("id"))
}

// GetUserConversations liste les fils d'un acheteur.
func (h *ConversationHandler) GetUserConversations(c *gin.Context) {
	h.getConversations(c, c.Param("id"))
}

func (h *ConversationHandler) getConversations(c *gin.Context, memberID string) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	conversations, err := h.conversations.GetByMember(ctx, memberID)
	if err != nil {
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "conversations": conversations})
}

// UpdateLastMessage met à jour l'aperçu du dernier message du fil.
func (h *ConversationHandler) UpdateLastMessage(c *gin.Context) {
	var req struct {
		LastMessage   string `json:"lastMessage"`
		LastMessageID string `json:"lastMessageId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apierror.BadRequest("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.conversations.UpdateLastMessage(ctx, c.Param("id"), req.LastMessage, req.LastMessageID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.Fail(c, apierror.BadRequest("Conversation not found"))
			return
		}
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Last message updated"})
}
