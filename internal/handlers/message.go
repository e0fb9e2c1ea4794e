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

// MessageHandler couvre les messages d'un fil acheteur–vendeur.
type MessageHandler struct {
	messages repository.MessageStore
}

func NewMessageHandler(messages repository.MessageStore) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// CreateMessage persiste un message sans vérifier que le fil référencé
// existe — fire-and-forget vis-à-vis de la conversation.
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	var req struct {
		ConversationID string `json:"conversationId" binding:"required"`
		Sender         string `json:"sender" binding:"required"`
		Text           string `json:"text"`
		Images         string `json:"images"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apierror.BadRequest("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	message := &models.Message{
		ConversationID: req.ConversationID,
		Sender:         req.Sender,
		Text:           req.Text,
		Image:          req.Images,
	}

	if err := h.messages.Create(ctx, message); err != nil {
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": message})
}

// GetAllMessages relit tous les messages d'un fil, dans l'ordre naturel
// d'insertion du stockage — aucun tri contractuel.
func (h *MessageHandler) GetAllMessages(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	messages, err := h.messages.GetByConversation(ctx, c.Param("id"))
	if err != nil {
		middleware.Fail(c, apierror.Internal("Internal Server Error"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "messages": messages})
}
