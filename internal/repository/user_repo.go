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

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

func scanUser(row scanner) (*models.User, error) {
	var user models.User
	var avatarURL sql.NullString
	if err := row.Scan(&user.Username, &user.Name, &avatarURL); err != nil {
		return nil, err
	}
	user.AvatarURL = avatarURL.String
	return &user, nil
}

// List returns every user
func (r *userRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT username, name, avatar_url FROM users ORDER BY username")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// GetByUsername retrieves a user, returning nil when none exists
func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT username, name, avatar_url FROM users WHERE username = $1", username)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	return user, nil
}

// Exists checks if a user with the given username exists
func (r *userRepo) Exists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)", username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user %q: %w", username, err)
	}
	return exists, nil
}

// BatchInsert inserts multiple users using PostgreSQL COPY inside tx
func (r *userRepo) BatchInsert(ctx context.Context, tx *sql.Tx, users []*models.User) (int, error) {
	if len(users) == 0 {
		return 0, nil
	}

	// Prepare COPY statement for bulk insert
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("users", "username", "name", "avatar_url"))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, user := range users {
		if _, err := stmt.ExecContext(ctx, user.Username, user.Name, user.AvatarURL); err != nil {
			return 0, fmt.Errorf("copy user %q: %w", user.Username, err)
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		return 0, err
	}

	return len(users), nil
}

// Count returns the total number of users
func (r *userRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}
