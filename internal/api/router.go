package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/markamcfadden/be-nc-news-project/internal/config"
	"github.com/markamcfadden/be-nc-news-project/internal/errs"
	"github.com/markamcfadden/be-nc-news-project/internal/service"
	"github.com/markamcfadden/be-nc-news-project/internal/validation"
	"github.com/markamcfadden/be-nc-news-project/pkg/logger"
	"github.com/rs/zerolog"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(cfg.Server.GinMode)

	router := gin.New()

	// Middleware
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(recoveryMiddleware(log))
	router.Use(corsMiddleware())
	router.Use(errorMiddleware(log))

	validator := validation.NewValidator()

	// Handlers
	topicHandler := NewTopicHandler(services, validator, log)
	userHandler := NewUserHandler(services)
	articleHandler := NewArticleHandler(services, validator, log)
	commentHandler := NewCommentHandler(services, validator, log)

	router.GET("/health", healthCheck(services))
	router.GET("/metrics", metricsHandler(services))

	api := router.Group("/api")
	{
		api.GET("", endpointsHandler)

		topics := api.Group("/topics")
		{
			topics.GET("", topicHandler.List)
			topics.POST("", topicHandler.Create)
		}

		users := api.Group("/users")
		{
			users.GET("", userHandler.List)
			users.GET("/:username", userHandler.Get)
		}

		articles := api.Group("/articles")
		{
			articles.GET("", articleHandler.List)
			articles.POST("", articleHandler.Create)
			articles.GET("/:article_id", articleHandler.Get)
			articles.PATCH("/:article_id", articleHandler.UpdateVotes)
			articles.DELETE("/:article_id", articleHandler.Delete)

			articles.GET("/:article_id/comments", commentHandler.ListByArticle)
			articles.POST("/:article_id/comments", commentHandler.Create)
			articles.PATCH("/:article_id/comments/:comment_id", commentHandler.UpdateVotes)
			articles.DELETE("/:article_id/comments/:comment_id", commentHandler.Delete)
		}

		comments := api.Group("/comments")
		{
			comments.PATCH("/:comment_id", commentHandler.UpdateVotes)
			comments.DELETE("/:comment_id", commentHandler.Delete)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errs.ErrPathNotFound)
	})

	return router
}

// healthCheck returns the health status
func healthCheck(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if services.Health != nil {
			if err := services.Health.HealthCheck(c.Request.Context()); err != nil {
				status, code = "unhealthy", http.StatusServiceUnavailable
			}
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   logger.ServiceName,
		})
	}
}

// poolStater is implemented by *database.DB
type poolStater interface {
	Stats() sql.DBStats
}

// metricsHandler returns row counts per table and connection pool usage
func metricsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := services.Stats.Counts(c.Request.Context())
		if err != nil {
			c.Error(err)
			return
		}

		body := gin.H{
			"database":  counts,
			"timestamp": time.Now().Format(time.RFC3339),
		}
		if p, ok := services.Health.(poolStater); ok {
			stats := p.Stats()
			body["pool"] = gin.H{
				"open":   stats.OpenConnections,
				"in_use": stats.InUse,
				"idle":   stats.Idle,
			}
		}
		c.JSON(http.StatusOK, body)
	}
}

// requestIDMiddleware tags each request with an id, reusing the client's if sent
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("error", err).
					Str("request_id", c.GetString(requestIDKey)).
					Msg("Panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, errs.ErrInternal)
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString(requestIDKey)).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+requestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
