package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/markamcfadden/be-nc-news-project/internal/models"
	"github.com/markamcfadden/be-nc-news-project/internal/service"
	"github.com/markamcfadden/be-nc-news-project/internal/validation"
	"github.com/rs/zerolog"
)

// CommentHandler handles comment endpoints, both nested under an article
// and addressed directly by id
type CommentHandler struct {
	services  *service.Services
	validator *validation.Validator
	log       zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, validator *validation.Validator, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services:  services,
		validator: validator,
		log:       log.With().Str("handler", "comment").Logger(),
	}
}

// ListByArticle handles GET /api/articles/:article_id/comments
func (h *CommentHandler) ListByArticle(c *gin.Context) {
	comments, err := h.services.Comment.ListByArticle(c.Request.Context(), c.Param("article_id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// Create handles POST /api/articles/:article_id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var in models.NewComment
	if err := bindBody(c, h.validator, h.log, &in); err != nil {
		c.Error(err)
		return
	}

	comment, err := h.services.Comment.Create(c.Request.Context(), c.Param("article_id"), &in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// UpdateVotes handles PATCH /api/comments/:comment_id and
// PATCH /api/articles/:article_id/comments/:comment_id
func (h *CommentHandler) UpdateVotes(c *gin.Context) {
	var in models.VoteUpdate
	if err := bindBody(c, h.validator, h.log, &in); err != nil {
		c.Error(err)
		return
	}

	comment, err := h.services.Comment.UpdateVotes(c.Request.Context(), c.Param("article_id"), c.Param("comment_id"), in.IncVotes)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updatedComment": comment})
}

// Delete handles DELETE /api/comments/:comment_id and
// DELETE /api/articles/:article_id/comments/:comment_id
func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.services.Comment.Delete(c.Request.Context(), c.Param("article_id"), c.Param("comment_id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
