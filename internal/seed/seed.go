// Package seed resets the database to a known dataset.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/markamcfadden/be-nc-news-project/internal/repository"
	"github.com/rs/zerolog"
)

const truncateQuery = "TRUNCATE comments, articles, users, topics RESTART IDENTITY CASCADE"

// TxBeginner is satisfied by *sql.DB and *database.DB
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Run empties every table, resets the id sequences and loads data in a
// single transaction, so a failed seed leaves the previous contents intact.
// Tables are loaded parents first so foreign keys resolve.
func Run(ctx context.Context, db TxBeginner, repos *repository.Repositories, data *Data, log zerolog.Logger) error {
	log = log.With().Str("component", "seed").Logger()
	start := time.Now()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, truncateQuery); err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}

	steps := []struct {
		table  string
		insert func() (int, error)
	}{
		{"topics", func() (int, error) { return repos.Topic.BatchInsert(ctx, tx, data.Topics) }},
		{"users", func() (int, error) { return repos.User.BatchInsert(ctx, tx, data.Users) }},
		{"articles", func() (int, error) { return repos.Article.BatchInsert(ctx, tx, data.Articles) }},
		{"comments", func() (int, error) { return repos.Comment.BatchInsert(ctx, tx, data.Comments) }},
	}

	for _, step := range steps {
		n, err := step.insert()
		if err != nil {
			return fmt.Errorf("seed %s: %w", step.table, err)
		}
		log.Debug().Str("table", step.table).Int("rows", n).Msg("Table seeded")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}

	log.Info().
		Int("topics", len(data.Topics)).
		Int("users", len(data.Users)).
		Int("articles", len(data.Articles)).
		Int("comments", len(data.Comments)).
		Dur("duration", time.Since(start)).
		Msg("Database seeded")

	return nil
}
