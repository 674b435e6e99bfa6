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

// FriendHandler manages confirmed-friendship endpoints.
type FriendHandler struct {
	friendRepo repositories.FriendRepository
	publisher  rabbitmq.Publisher
	audit      *telemetry.AuditEmitter
}

// NewFriendHandler builds a FriendHandler.
func NewFriendHandler(friendRepo repositories.FriendRepository, publisher rabbitmq.Publisher, audit *telemetry.AuditEmitter) *FriendHandler {
	return &FriendHandler{
		friendRepo: friendRepo,
		publisher:  publisher,
		audit:      audit,
	}
}

// ListFriends returns the user's confirmed friends ordered by username.
func (h *FriendHandler) ListFriends(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}

	friends, err := h.friendRepo.ListFriends(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load friends"})
		return
	}

	c.JSON(http.StatusOK, friends)
}

// RemoveFriend deletes the friendship for both parties.
func (h *FriendHandler) RemoveFriend(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}
	friendID, err := strconv.Atoi(c.Param("friend_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid friend id"})
		return
	}

	if err := h.friendRepo.RemoveFriendship(c.Request.Context(), userID, friendID); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrFriendshipNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "could not remove friend"})
		return
	}

	publishEvent(c.Request.Context(), h.publisher, EventFriendRemoved, gin.H{
		"user_id":   userID,
		"friend_id": friendID,
	})
	h.audit.Emit(c.Request.Context(), "info", "friend removed", requestIDFromContext(c), userID)

	c.JSON(http.StatusOK, gin.H{})
}

// pathUserID parses :user_id and enforces that it matches the authenticated
// caller.
func pathUserID(c *gin.Context) (int, bool) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	if caller := userIDFromContext(c); caller != 0 && caller != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed"})
		return 0, false
	}
	return userID, true
}
