package repository

import (
	"context"
	"database/sql"

	"github.com/markamcfadden/be-nc-news-project/internal/database"
	"github.com/markamcfadden/be-nc-news-project/internal/models"
)

// Identifiers such as article and comment ids are passed through as the raw
// path segment. PostgreSQL casts them to INT and rejects malformed input
// with invalid_text_representation, which ClassifyError maps to a 400.

// TopicRepository defines the interface for topic data operations
type TopicRepository interface {
	List(ctx context.Context) ([]models.Topic, error)
	Create(ctx context.Context, topic *models.NewTopic) (*models.Topic, error)
	Exists(ctx context.Context, slug string) (bool, error)
	BatchInsert(ctx context.Context, tx *sql.Tx, topics []*models.Topic) (int, error)
	Count(ctx context.Context) (int, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	BatchInsert(ctx context.Context, tx *sql.Tx, users []*models.User) (int, error)
	Count(ctx context.Context) (int, error)
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	List(ctx context.Context, query models.ArticleQuery) ([]models.Article, error)
	CountMatching(ctx context.Context, topic string) (int, error)
	GetByID(ctx context.Context, id string) (*models.Article, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, article *models.NewArticle) (*models.Article, error)
	UpdateVotes(ctx context.Context, id string, inc int) (*models.Article, error)
	Delete(ctx context.Context, id string) error
	BatchInsert(ctx context.Context, tx *sql.Tx, articles []*models.Article) (int, error)
	Count(ctx context.Context) (int, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	ListByArticle(ctx context.Context, articleID string) ([]models.Comment, error)
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, articleID string, comment *models.NewComment) (*models.Comment, error)
	UpdateVotes(ctx context.Context, id string, inc int) (*models.Comment, error)
	Delete(ctx context.Context, id string) error
	BatchInsert(ctx context.Context, tx *sql.Tx, comments []*models.Comment) (int, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Topic   TopicRepository
	User    UserRepository
	Article ArticleRepository
	Comment CommentRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Topic:   NewTopicRepo(db),
		User:    NewUserRepo(db),
		Article: NewArticleRepo(db),
		Comment: NewCommentRepo(db),
	}
}

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}
