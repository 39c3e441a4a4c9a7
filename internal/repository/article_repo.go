package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/markamcfadden/be-nc-news-project/internal/database"
	"github.com/markamcfadden/be-nc-news-project/internal/models"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

const articleDetailColumns = `article_id, title, topic, author, body, created_at, votes, article_img_url`

func scanArticleSummary(row scanner) (*models.Article, error) {
	var article models.Article
	var imgURL sql.NullString
	err := row.Scan(
		&article.ID, &article.Title, &article.Topic, &article.Author,
		&article.CreatedAt, &article.Votes, &imgURL, &article.CommentCount,
	)
	if err != nil {
		return nil, err
	}
	article.ArticleImgURL = imgURL.String
	return &article, nil
}

func scanArticleDetail(row scanner) (*models.Article, error) {
	var article models.Article
	var imgURL sql.NullString
	err := row.Scan(
		&article.ID, &article.Title, &article.Topic, &article.Author, &article.Body,
		&article.CreatedAt, &article.Votes, &imgURL, &article.CommentCount,
	)
	if err != nil {
		return nil, err
	}
	article.ArticleImgURL = imgURL.String
	return &article, nil
}

// List returns the articles selected by a validated listing query
func (r *articleRepo) List(ctx context.Context, q models.ArticleQuery) ([]models.Article, error) {
	query, args, err := buildListArticlesQuery(q)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	articles := make([]models.Article, 0)
	for rows.Next() {
		article, err := scanArticleSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, *article)
	}
	return articles, rows.Err()
}

// CountMatching returns the number of articles under the topic filter,
// or all articles when topic is empty
func (r *articleRepo) CountMatching(ctx context.Context, topic string) (int, error) {
	query, args := buildCountArticlesQuery(topic)
	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

// GetByID retrieves an article with its comment count, returning nil when
// none exists
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	query := `
		SELECT articles.article_id, articles.title, articles.topic, articles.author, articles.body,
			articles.created_at, articles.votes, articles.article_img_url,
			COUNT(comments.comment_id)::INT AS comment_count
		FROM articles
		LEFT JOIN comments ON comments.article_id = articles.article_id
		WHERE articles.article_id = $1
		GROUP BY articles.article_id
	`
	article, err := scanArticleDetail(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get article %s: %w", id, err)
	}
	return article, nil
}

// Exists checks if an article with the given ID exists
func (r *articleRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM articles WHERE article_id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check article %s: %w", id, err)
	}
	return exists, nil
}

// Create inserts a new article
func (r *articleRepo) Create(ctx context.Context, in *models.NewArticle) (*models.Article, error) {
	query := `
		INSERT INTO articles (title, topic, author, body, article_img_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + articleDetailColumns + `, 0
	`
	article, err := scanArticleDetail(r.db.QueryRowContext(ctx, query,
		in.Title, in.Topic, in.Author, in.Body, in.ArticleImgURL,
	))
	if err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}
	return article, nil
}

// UpdateVotes adds inc to the article's votes without going below zero
func (r *articleRepo) UpdateVotes(ctx context.Context, id string, inc int) (*models.Article, error) {
	query := `
		WITH updated AS (
			UPDATE articles SET votes = GREATEST(votes + $1, 0)
			WHERE article_id = $2
			RETURNING ` + articleDetailColumns + `
		)
		SELECT updated.article_id, updated.title, updated.topic, updated.author, updated.body,
			updated.created_at, updated.votes, updated.article_img_url,
			(SELECT COUNT(*)::INT FROM comments WHERE comments.article_id = updated.article_id)
		FROM updated
	`
	article, err := scanArticleDetail(r.db.QueryRowContext(ctx, query, inc, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update article %s votes: %w", id, err)
	}
	return article, nil
}

// Delete removes an article; its comments go with it through ON DELETE CASCADE
func (r *articleRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE article_id = $1", id); err != nil {
		return fmt.Errorf("delete article %s: %w", id, err)
	}
	return nil
}

// BatchInsert inserts multiple articles using PostgreSQL COPY.
// Rows receive serial ids in slice order.
func (r *articleRepo) BatchInsert(ctx context.Context, tx *sql.Tx, articles []*models.Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("articles",
		"title", "topic", "author", "body", "created_at", "votes", "article_img_url",
	))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, article := range articles {
		imgURL := article.ArticleImgURL
		if imgURL == "" {
			imgURL = models.DefaultArticleImgURL
		}
		_, err := stmt.ExecContext(ctx,
			article.Title, article.Topic, article.Author, article.Body,
			article.CreatedAt, article.Votes, imgURL,
		)
		if err != nil {
			return 0, fmt.Errorf("copy article %q: %w", article.Title, err)
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		return 0, err
	}

	return len(articles), nil
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	return count, err
}
