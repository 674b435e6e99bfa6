package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"taskmasters/internal/rabbitmq"
	"taskmasters/internal/repositories"
	"taskmasters/internal/telemetry"
)

// MessageHandler manages direct-message endpoints.
type MessageHandler struct {
	messageRepo repositories.MessageRepository
	friendRepo  repositories.FriendRepository
	publisher   rabbitmq.Publisher
	audit       *telemetry.AuditEmitter
}

// NewMessageHandler builds a MessageHandler.
func NewMessageHandler(messageRepo repositories.MessageRepository, friendRepo repositories.FriendRepository, publisher rabbitmq.Publisher, audit *telemetry.AuditEmitter) *MessageHandler {
	return &MessageHandler{
		messageRepo: messageRepo,
		friendRepo:  friendRepo,
		publisher:   publisher,
		audit:       audit,
	}
}

// ListMessages returns the conversation between ?user= and ?friend= in
// chronological order.
func (h *MessageHandler) ListMessages(c *gin.Context) {
	userID, err := strconv.Atoi(c.Query("user"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	friendID, err := strconv.Atoi(c.Query("friend"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid friend id"})
		return
	}

	if caller := userIDFromContext(c); caller != 0 && caller != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed"})
		return
	}

	msgs, err := h.messageRepo.ListMessagesBetween(c.Request.Context(), userID, friendID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}

	c.JSON(http.StatusOK, msgs)
}

// PostMessage stores a message and returns it with the server-assigned id and
// timestamp.
func (h *MessageHandler) PostMessage(c *gin.Context) {
	var req struct {
		SenderID   int    `json:"sender_id" binding:"required"`
		ReceiverID int    `json:"receiver_id" binding:"required"`
		Body       string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(req.Body) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message body is empty"})
		return
	}
	if caller := userIDFromContext(c); caller != 0 && caller != req.SenderID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed"})
		return
	}

	friends, err := h.friendRepo.AreFriends(c.Request.Context(), req.SenderID, req.ReceiverID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to validate friendship"})
		return
	}
	if !friends {
		c.JSON(http.StatusForbidden, gin.H{"error": "users are not friends"})
		return
	}

	msg, err := h.messageRepo.CreateMessage(c.Request.Context(), req.SenderID, req.ReceiverID, req.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store message"})
		return
	}

	publishEvent(c.Request.Context(), h.publisher, EventMessageCreated, msg)
	h.audit.Emit(c.Request.Context(), "info", "message created", requestIDFromContext(c), req.SenderID)

	c.JSON(http.StatusCreated, msg)
}
