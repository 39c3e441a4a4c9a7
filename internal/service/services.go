package service

import (
	"context"

	"github.com/markamcfadden/be-nc-news-project/internal/models"
	"github.com/markamcfadden/be-nc-news-project/internal/repository"
	"github.com/rs/zerolog"
)

// TopicService defines the interface for topic operations
type TopicService interface {
	List(ctx context.Context) ([]models.Topic, error)
	Create(ctx context.Context, topic *models.NewTopic) (*models.Topic, error)
}

// UserService defines the interface for user operations
type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, username string) (*models.User, error)
}

// ArticleService defines the interface for article operations
type ArticleService interface {
	List(ctx context.Context, params models.ArticleListParams) (*models.ArticlePage, error)
	Get(ctx context.Context, id string) (*models.Article, error)
	Create(ctx context.Context, article *models.NewArticle) (*models.Article, error)
	UpdateVotes(ctx context.Context, id string, inc int) (*models.Article, error)
	Delete(ctx context.Context, id string) error
}

// CommentService defines the interface for comment operations.
// An empty articleID addresses a comment directly; otherwise the comment
// must belong to that article.
type CommentService interface {
	ListByArticle(ctx context.Context, articleID string) ([]models.Comment, error)
	Create(ctx context.Context, articleID string, comment *models.NewComment) (*models.Comment, error)
	UpdateVotes(ctx context.Context, articleID, commentID string, inc int) (*models.Comment, error)
	Delete(ctx context.Context, articleID, commentID string) error
}

// StatsService reports table sizes for the metrics endpoint
type StatsService interface {
	Counts(ctx context.Context) (map[string]int, error)
}

// HealthChecker reports whether the backing store is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Services holds all service interfaces
type Services struct {
	Topic   TopicService
	User    UserService
	Article ArticleService
	Comment CommentService
	Stats   StatsService

	// Health is optional; a nil checker always reports healthy
	Health HealthChecker
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, log zerolog.Logger) *Services {
	return &Services{
		Topic:   newTopicService(repos, log),
		User:    newUserService(repos, log),
		Article: newArticleService(repos, log),
		Comment: newCommentService(repos, log),
		Stats:   newStatsService(repos),
	}
}
