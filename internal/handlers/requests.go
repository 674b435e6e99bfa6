package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskmasters/internal/rabbitmq"
	"taskmasters/internal/repositories"
	"taskmasters/internal/telemetry"
)

// RequestHandler manages the friend-request lifecycle.
type RequestHandler struct {
	requestRepo repositories.RequestRepository
	friendRepo  repositories.FriendRepository
	userRepo    repositories.UserRepository
	publisher   rabbitmq.Publisher
	audit       *telemetry.AuditEmitter
}

// NewRequestHandler builds a RequestHandler.
func NewRequestHandler(requestRepo repositories.RequestRepository, friendRepo repositories.FriendRepository, userRepo repositories.UserRepository, publisher rabbitmq.Publisher, audit *telemetry.AuditEmitter) *RequestHandler {
	return &RequestHandler{
		requestRepo: requestRepo,
		friendRepo:  friendRepo,
		userRepo:    userRepo,
		publisher:   publisher,
		audit:       audit,
	}
}

// ListIncoming returns pending requests addressed to the user.
func (h *RequestHandler) ListIncoming(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}

	requests, err := h.requestRepo.IncomingRequests(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load incoming requests"})
		return
	}

	c.JSON(http.StatusOK, requests)
}

// ListOutgoing returns pending requests sent by the user.
func (h *RequestHandler) ListOutgoing(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}

	requests, err := h.requestRepo.OutgoingRequests(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load outgoing requests"})
		return
	}

	c.JSON(http.StatusOK, requests)
}

// CreateRequest stores a new pending request after duplicate checks.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var req struct {
		SenderID   int `json:"sender_id" binding:"required"`
		ReceiverID int `json:"receiver_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if caller := userIDFromContext(c); caller != 0 && caller != req.SenderID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed"})
		return
	}
	if req.SenderID == req.ReceiverID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot friend yourself"})
		return
	}

	if _, err := h.userRepo.GetUser(c.Request.Context(), req.ReceiverID); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrUserNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "receiver not found"})
		return
	}

	friends, err := h.friendRepo.AreFriends(c.Request.Context(), req.SenderID, req.ReceiverID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to validate friendship"})
		return
	}
	if friends {
		c.JSON(http.StatusConflict, gin.H{"error": "already friends"})
		return
	}

	pending, err := h.requestRepo.HasPendingBetween(c.Request.Context(), req.SenderID, req.ReceiverID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to validate request"})
		return
	}
	if pending {
		c.JSON(http.StatusConflict, gin.H{"error": "request already pending"})
		return
	}

	created, err := h.requestRepo.CreateRequest(c.Request.Context(), req.SenderID, req.ReceiverID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create request"})
		return
	}

	publishEvent(c.Request.Context(), h.publisher, EventRequestCreated, created)
	h.audit.Emit(c.Request.Context(), "info", "friend request created", requestIDFromContext(c), req.SenderID)

	c.JSON(http.StatusCreated, created)
}

// AcceptRequest resolves a pending request into a friendship. Only the
// receiver may accept.
func (h *RequestHandler) AcceptRequest(c *gin.Context) {
	requestID, userID, ok := h.authorizedRequest(c, false)
	if !ok {
		return
	}

	friendship, err := h.requestRepo.AcceptRequest(c.Request.Context(), requestID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrRequestNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "could not accept request"})
		return
	}

	publishEvent(c.Request.Context(), h.publisher, EventRequestAccepted, friendship)
	h.audit.Emit(c.Request.Context(), "info", "friend request accepted", requestIDFromContext(c), userID)

	c.JSON(http.StatusOK, friendship)
}

// DeclineRequest removes a pending request. The receiver declines; the sender
// cancels. Both go through the same deletion.
func (h *RequestHandler) DeclineRequest(c *gin.Context) {
	requestID, userID, ok := h.authorizedRequest(c, true)
	if !ok {
		return
	}

	if err := h.requestRepo.DeleteRequest(c.Request.Context(), requestID); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrRequestNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "could not decline request"})
		return
	}

	publishEvent(c.Request.Context(), h.publisher, EventRequestDeclined, gin.H{"request_id": requestID})
	h.audit.Emit(c.Request.Context(), "info", "friend request declined", requestIDFromContext(c), userID)

	c.JSON(http.StatusOK, gin.H{})
}

// authorizedRequest parses :request_id and verifies the caller is a party to
// the request. allowSender widens the check from receiver-only to either side.
func (h *RequestHandler) authorizedRequest(c *gin.Context, allowSender bool) (int, int, bool) {
	requestID, err := strconv.Atoi(c.Param("request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return 0, 0, false
	}

	userID := userIDFromContext(c)
	if userID == 0 {
		return requestID, 0, true
	}

	req, err := h.requestRepo.GetRequest(c.Request.Context(), requestID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrRequestNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "request not found"})
		return 0, 0, false
	}

	authorized := req.ReceiverID == userID || (allowSender && req.SenderID == userID)
	if !authorized {
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed"})
		return 0, 0, false
	}
	return requestID, userID, true
}
