package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/markamcfadden/be-nc-news-project/internal/service"
)

// UserHandler handles user endpoints
type UserHandler struct {
	services *service.Services
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(services *service.Services) *UserHandler {
	return &UserHandler{services: services}
}

// List handles GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.services.User.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// Get handles GET /api/users/:username
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.services.User.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
