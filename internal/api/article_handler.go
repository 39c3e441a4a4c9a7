package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/markamcfadden/be-nc-news-project/internal/models"
	"github.com/markamcfadden/be-nc-news-project/internal/service"
	"github.com/markamcfadden/be-nc-news-project/internal/validation"
	"github.com/rs/zerolog"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	services  *service.Services
	validator *validation.Validator
	log       zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, validator *validation.Validator, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services:  services,
		validator: validator,
		log:       log.With().Str("handler", "article").Logger(),
	}
}

// List handles GET /api/articles
// Query params: sort_by, order, topic, limit, p
func (h *ArticleHandler) List(c *gin.Context) {
	params := models.ArticleListParams{
		SortBy: c.Query("sort_by"),
		Order:  c.Query("order"),
		Topic:  c.Query("topic"),
	}
	if limit, ok := c.GetQuery("limit"); ok {
		params.Limit = &limit
	}
	if page, ok := c.GetQuery("p"); ok {
		params.Page = &page
	}

	page, err := h.services.Article.List(c.Request.Context(), params)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get handles GET /api/articles/:article_id
func (h *ArticleHandler) Get(c *gin.Context) {
	article, err := h.services.Article.Get(c.Request.Context(), c.Param("article_id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": article})
}

// Create handles POST /api/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var in models.NewArticle
	if err := bindBody(c, h.validator, h.log, &in); err != nil {
		c.Error(err)
		return
	}

	article, err := h.services.Article.Create(c.Request.Context(), &in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"article": article})
}

// UpdateVotes handles PATCH /api/articles/:article_id
func (h *ArticleHandler) UpdateVotes(c *gin.Context) {
	var in models.VoteUpdate
	if err := bindBody(c, h.validator, h.log, &in); err != nil {
		c.Error(err)
		return
	}

	article, err := h.services.Article.UpdateVotes(c.Request.Context(), c.Param("article_id"), in.IncVotes)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updatedArticle": article})
}

// Delete handles DELETE /api/articles/:article_id
func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.services.Article.Delete(c.Request.Context(), c.Param("article_id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
