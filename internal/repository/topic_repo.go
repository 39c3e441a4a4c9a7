package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/markamcfadden/be-nc-news-project/internal/database"
	"github.com/markamcfadden/be-nc-news-project/internal/models"
)

// topicRepo is the concrete implementation of TopicRepository
type topicRepo struct {
	db *database.DB
}

// NewTopicRepo creates a new topic repository
func NewTopicRepo(db *database.DB) TopicRepository {
	return &topicRepo{db: db}
}

// List returns every topic
func (r *topicRepo) List(ctx context.Context) ([]models.Topic, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT slug, description FROM topics ORDER BY slug")
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	topics := make([]models.Topic, 0)
	for rows.Next() {
		var topic models.Topic
		if err := rows.Scan(&topic.Slug, &topic.Description); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		topics = append(topics, topic)
	}
	return topics, rows.Err()
}

// Create inserts a new topic
func (r *topicRepo) Create(ctx context.Context, in *models.NewTopic) (*models.Topic, error) {
	query := `
		INSERT INTO topics (slug, description)
		VALUES ($1, $2)
		RETURNING slug, description
	`
	var topic models.Topic
	err := r.db.QueryRowContext(ctx, query, in.Slug, in.Description).Scan(&topic.Slug, &topic.Description)
	if err != nil {
		return nil, fmt.Errorf("insert topic: %w", err)
	}
	return &topic, nil
}

// Exists checks if a topic with the given slug exists
func (r *topicRepo) Exists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM topics WHERE slug = $1)", slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check topic %q: %w", slug, err)
	}
	return exists, nil
}

// BatchInsert inserts multiple topics using PostgreSQL COPY inside tx.
// The caller owns the transaction.
func (r *topicRepo) BatchInsert(ctx context.Context, tx *sql.Tx, topics []*models.Topic) (int, error) {
	if len(topics) == 0 {
		return 0, nil
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("topics", "slug", "description"))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, topic := range topics {
		if _, err := stmt.ExecContext(ctx, topic.Slug, topic.Description); err != nil {
			return 0, fmt.Errorf("copy topic %q: %w", topic.Slug, err)
		}
	}

	// Execute the COPY
	if _, err := stmt.ExecContext(ctx); err != nil {
		return 0, err
	}

	return len(topics), nil
}

// Count returns the total number of topics
func (r *topicRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM topics").Scan(&count)
	return count, err
}
