package seed_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/markamcfadden/be-nc-news-project/internal/mocks"
	"github.com/markamcfadden/be-nc-news-project/internal/seed"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var truncateSQL = regexp.QuoteMeta("TRUNCATE comments, articles, users, topics RESTART IDENTITY CASCADE")

func TestRun_CommitsOnSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec(truncateSQL).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	repos := mocks.NewRepos(nil)
	err = seed.Run(context.Background(), db, repos.Repositories(), seed.TestData(), zerolog.Nop())
	require.NoError(t, err)

	articles, err := repos.Article.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 13, articles)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_RollsBackWhenATableFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	// Truncate and the earlier tables are undone with the failing one
	mock.ExpectBegin()
	mock.ExpectExec(truncateSQL).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repos := mocks.NewRepos(nil)
	repos.Comment.Err = errors.New("copy failed")

	err = seed.Run(context.Background(), db, repos.Repositories(), seed.TestData(), zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed comments")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_RollsBackWhenTruncateFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec(truncateSQL).WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()

	repos := mocks.NewRepos(nil)
	err = seed.Run(context.Background(), db, repos.Repositories(), seed.TestData(), zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "truncate tables")

	topics, err := repos.Topic.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, topics)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_BeginFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	err = seed.Run(context.Background(), db, mocks.NewRepos(nil).Repositories(), seed.TestData(), zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin seed transaction")

	assert.NoError(t, mock.ExpectationsWereMet())
}
