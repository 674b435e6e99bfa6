package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskmasters/internal/repositories"
)

const searchLimit = 20

// UserHandler serves user lookup for the friend-search flow.
type UserHandler struct {
	userRepo repositories.UserRepository
}

// NewUserHandler builds a UserHandler.
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// SearchUsers returns users matching ?username= as a prefix, excluding the
// caller.
func (h *UserHandler) SearchUsers(c *gin.Context) {
	query := strings.TrimSpace(c.Query("username"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username query is required"})
		return
	}

	results, err := h.userRepo.SearchUsers(c.Request.Context(), query, userIDFromContext(c), searchLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search users"})
		return
	}

	c.JSON(http.StatusOK, results)
}
