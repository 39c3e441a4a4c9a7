package repository_test

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/markamcfadden/be-nc-news-project/internal/config"
	"github.com/markamcfadden/be-nc-news-project/internal/database"
	"github.com/markamcfadden/be-nc-news-project/internal/models"
	"github.com/markamcfadden/be-nc-news-project/internal/repository"
	"github.com/markamcfadden/be-nc-news-project/internal/seed"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupDB connects to NEWS_TEST_DATABASE_DSN, migrates it and loads the
// standard dataset. Tests are skipped when the variable is unset.
func setupDB(t *testing.T) (*database.DB, *repository.Repositories) {
	t.Helper()

	dsn := os.Getenv("NEWS_TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("NEWS_TEST_DATABASE_DSN not set")
	}

	db, err := database.Open(dsn, &config.Default().Database, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.RunMigrations())

	repos := repository.New(db)
	require.NoError(t, seed.Run(context.Background(), db, repos, seed.TestData(), zerolog.Nop()))

	return db, repos
}

func TestArticleRepo_ListAndCount(t *testing.T) {
	_, repos := setupDB(t)
	ctx := context.Background()

	articles, err := repos.Article.List(ctx, models.ArticleQuery{
		SortBy: models.DefaultSortBy,
		Order:  models.DefaultOrder,
	})
	require.NoError(t, err)
	require.Len(t, articles, 13)
	for i := 1; i < len(articles); i++ {
		assert.False(t, articles[i].CreatedAt.After(articles[i-1].CreatedAt))
	}
	for _, a := range articles {
		assert.Empty(t, a.Body)
	}

	page, err := repos.Article.List(ctx, models.ArticleQuery{
		SortBy:   "article_id",
		Order:    models.OrderAsc,
		Topic:    "mitch",
		Paginate: true,
		Limit:    5,
		Page:     3,
	})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, 12, page[0].ID)
	assert.Equal(t, 13, page[1].ID)

	total, err := repos.Article.CountMatching(ctx, "mitch")
	require.NoError(t, err)
	assert.Equal(t, 12, total)

	total, err = repos.Article.CountMatching(ctx, "paper")
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestArticleRepo_GetByID(t *testing.T) {
	_, repos := setupDB(t)
	ctx := context.Background()

	article, err := repos.Article.GetByID(ctx, "9")
	require.NoError(t, err)
	require.NotNil(t, article)
	assert.Equal(t, 9, article.ID)
	assert.Equal(t, 2, article.CommentCount)
	assert.Equal(t, "Well? Think about it.", article.Body)

	article, err = repos.Article.GetByID(ctx, "999")
	require.NoError(t, err)
	assert.Nil(t, article)

	_, err = repos.Article.GetByID(ctx, "banana")
	e, ok := repository.ClassifyError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, e.Status)
}

func TestArticleRepo_UpdateVotesClampsAtZero(t *testing.T) {
	_, repos := setupDB(t)
	ctx := context.Background()

	article, err := repos.Article.UpdateVotes(ctx, "1", 15)
	require.NoError(t, err)
	assert.Equal(t, 115, article.Votes)
	assert.Equal(t, 11, article.CommentCount)

	article, err = repos.Article.UpdateVotes(ctx, "1", -500)
	require.NoError(t, err)
	assert.Equal(t, 0, article.Votes)

	article, err = repos.Article.UpdateVotes(ctx, "999", 1)
	require.NoError(t, err)
	assert.Nil(t, article)
}

func TestArticleRepo_DeleteCascadesComments(t *testing.T) {
	_, repos := setupDB(t)
	ctx := context.Background()

	require.NoError(t, repos.Article.Delete(ctx, "1"))

	exists, err := repos.Article.Exists(ctx, "1")
	require.NoError(t, err)
	assert.False(t, exists)

	count, err := repos.Comment.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 18-11, count)
}

func TestArticleRepo_CreateWithUnknownAuthor(t *testing.T) {
	_, repos := setupDB(t)

	_, err := repos.Article.Create(context.Background(), &models.NewArticle{
		Author:        "nobody",
		Title:         "t",
		Body:          "b",
		Topic:         "cats",
		ArticleImgURL: models.DefaultArticleImgURL,
	})
	e, ok := repository.ClassifyError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, e.Status)
}

func TestCommentRepo(t *testing.T) {
	_, repos := setupDB(t)
	ctx := context.Background()

	comments, err := repos.Comment.ListByArticle(ctx, "1")
	require.NoError(t, err)
	require.Len(t, comments, 11)
	for i := 1; i < len(comments); i++ {
		assert.False(t, comments[i].CreatedAt.After(comments[i-1].CreatedAt))
	}

	created, err := repos.Comment.Create(ctx, "2", &models.NewComment{Username: "lurker", Body: "first"})
	require.NoError(t, err)
	assert.Equal(t, 19, created.ID)
	assert.Equal(t, 2, created.ArticleID)
	assert.Equal(t, 0, created.Votes)

	updated, err := repos.Comment.UpdateVotes(ctx, "4", 1)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Votes)

	require.NoError(t, repos.Comment.Delete(ctx, "19"))
	found, err := repos.Comment.GetByID(ctx, "19")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestTopicRepo_CreateDuplicate(t *testing.T) {
	_, repos := setupDB(t)
	ctx := context.Background()

	topic, err := repos.Topic.Create(ctx, &models.NewTopic{Slug: "dogs", Description: "Not cats"})
	require.NoError(t, err)
	assert.Equal(t, "dogs", topic.Slug)

	_, err = repos.Topic.Create(ctx, &models.NewTopic{Slug: "dogs", Description: "again"})
	e, ok := repository.ClassifyError(err)
	require.True(t, ok)
	assert.Equal(t, "Bad request, topic already exists", e.Msg)
}

func TestUserRepo(t *testing.T) {
	_, repos := setupDB(t)
	ctx := context.Background()

	users, err := repos.User.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 4)

	user, err := repos.User.GetByUsername(ctx, "lurker")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "do_nothing", user.Name)

	exists, err := repos.User.Exists(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSeedRun_FailureKeepsExistingRows(t *testing.T) {
	db, repos := setupDB(t)
	ctx := context.Background()

	data := seed.TestData()
	data.Comments = append(data.Comments, &models.Comment{
		ArticleID: 999,
		Author:    "lurker",
		Body:      "orphan",
		CreatedAt: time.Now(),
	})
	require.Error(t, seed.Run(ctx, db, repos, data, zerolog.Nop()))

	articles, err := repos.Article.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 13, articles)

	comments, err := repos.Comment.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 18, comments)
}
