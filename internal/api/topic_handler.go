package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/markamcfadden/be-nc-news-project/internal/models"
	"github.com/markamcfadden/be-nc-news-project/internal/service"
	"github.com/markamcfadden/be-nc-news-project/internal/validation"
	"github.com/rs/zerolog"
)

// TopicHandler handles topic endpoints
type TopicHandler struct {
	services  *service.Services
	validator *validation.Validator
	log       zerolog.Logger
}

// NewTopicHandler creates a new TopicHandler
func NewTopicHandler(services *service.Services, validator *validation.Validator, log zerolog.Logger) *TopicHandler {
	return &TopicHandler{
		services:  services,
		validator: validator,
		log:       log.With().Str("handler", "topic").Logger(),
	}
}

// List handles GET /api/topics
func (h *TopicHandler) List(c *gin.Context) {
	topics, err := h.services.Topic.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

// Create handles POST /api/topics
func (h *TopicHandler) Create(c *gin.Context) {
	var in models.NewTopic
	if err := bindBody(c, h.validator, h.log, &in); err != nil {
		c.Error(err)
		return
	}

	topic, err := h.services.Topic.Create(c.Request.Context(), &in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"topic": topic})
}

// bindBody reads the request body and decodes it into dst
func bindBody(c *gin.Context, v *validation.Validator, log zerolog.Logger, dst interface{}) error {
	data, err := c.GetRawData()
	if err != nil {
		return err
	}
	if err := v.Bind(data, dst); err != nil {
		log.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Rejected request body")
		return err
	}
	return nil
}
