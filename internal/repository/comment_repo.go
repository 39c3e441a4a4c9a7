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

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

const commentColumns = `comment_id, body, article_id, author, votes, created_at`

func scanComment(row scanner) (*models.Comment, error) {
	var comment models.Comment
	err := row.Scan(
		&comment.ID, &comment.Body, &comment.ArticleID, &comment.Author,
		&comment.Votes, &comment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByArticle returns an article's comments, newest first
func (r *commentRepo) ListByArticle(ctx context.Context, articleID string) ([]models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE article_id = $1 ORDER BY created_at DESC, comment_id DESC`
	rows, err := r.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("list comments for article %s: %w", articleID, err)
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *comment)
	}
	return comments, rows.Err()
}

// GetByID retrieves a comment by ID, returning nil when none exists
func (r *commentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE comment_id = $1`
	comment, err := scanComment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get comment %s: %w", id, err)
	}
	return comment, nil
}

// Exists checks if a comment with the given ID exists
func (r *commentRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM comments WHERE comment_id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check comment %s: %w", id, err)
	}
	return exists, nil
}

// Create inserts a new comment on an article
func (r *commentRepo) Create(ctx context.Context, articleID string, in *models.NewComment) (*models.Comment, error) {
	query := `
		INSERT INTO comments (body, article_id, author, votes)
		VALUES ($1, $2, $3, 0)
		RETURNING ` + commentColumns
	comment, err := scanComment(r.db.QueryRowContext(ctx, query, in.Body, articleID, in.Username))
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return comment, nil
}

// UpdateVotes adds inc to the comment's votes without going below zero
func (r *commentRepo) UpdateVotes(ctx context.Context, id string, inc int) (*models.Comment, error) {
	query := `
		UPDATE comments SET votes = GREATEST(votes + $1, 0)
		WHERE comment_id = $2
		RETURNING ` + commentColumns
	comment, err := scanComment(r.db.QueryRowContext(ctx, query, inc, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update comment %s votes: %w", id, err)
	}
	return comment, nil
}

// Delete removes a comment
func (r *commentRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE comment_id = $1", id); err != nil {
		return fmt.Errorf("delete comment %s: %w", id, err)
	}
	return nil
}

// BatchInsert inserts multiple comments using PostgreSQL COPY.
// Rows receive serial ids in slice order.
func (r *commentRepo) BatchInsert(ctx context.Context, tx *sql.Tx, comments []*models.Comment) (int, error) {
	if len(comments) == 0 {
		return 0, nil
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("comments",
		"body", "article_id", "author", "votes", "created_at",
	))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, comment := range comments {
		_, err := stmt.ExecContext(ctx,
			comment.Body, comment.ArticleID, comment.Author, comment.Votes, comment.CreatedAt,
		)
		if err != nil {
			return 0, fmt.Errorf("copy comment on article %d: %w", comment.ArticleID, err)
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		return 0, err
	}

	return len(comments), nil
}

// Count returns the total number of comments
func (r *commentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments").Scan(&count)
	return count, err
}
