package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/markamcfadden/be-nc-news-project/internal/errs"
	"github.com/markamcfadden/be-nc-news-project/internal/mocks"
	"github.com/markamcfadden/be-nc-news-project/internal/models"
	"github.com/markamcfadden/be-nc-news-project/internal/repository"
	"github.com/markamcfadden/be-nc-news-project/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServices(t *testing.T) (*service.Services, *mocks.Repos) {
	t.Helper()
	repos := mocks.NewSeededRepos()
	return service.NewServices(repos.Repositories(), zerolog.Nop()), repos
}

func strPtr(s string) *string { return &s }

func TestParseArticleQuery(t *testing.T) {
	tests := []struct {
		name    string
		params  models.ArticleListParams
		want    models.ArticleQuery
		wantErr error
	}{
		{
			name:   "defaults",
			params: models.ArticleListParams{},
			want:   models.ArticleQuery{SortBy: "created_at", Order: "desc"},
		},
		{
			name:   "order is case insensitive",
			params: models.ArticleListParams{SortBy: "votes", Order: "ASC"},
			want:   models.ArticleQuery{SortBy: "votes", Order: "asc"},
		},
		{
			name:   "page alone uses the default limit",
			params: models.ArticleListParams{Page: strPtr("2")},
			want:   models.ArticleQuery{SortBy: "created_at", Order: "desc", Paginate: true, Limit: 10, Page: 2},
		},
		{
			name:   "limit alone starts at page one",
			params: models.ArticleListParams{Limit: strPtr("5")},
			want:   models.ArticleQuery{SortBy: "created_at", Order: "desc", Paginate: true, Limit: 5, Page: 1},
		},
		{
			name:    "unknown sort column",
			params:  models.ArticleListParams{SortBy: "body"},
			wantErr: errs.ErrInvalidSortBy,
		},
		{
			name:    "unknown order",
			params:  models.ArticleListParams{Order: "sideways"},
			wantErr: errs.ErrInvalidOrder,
		},
		{
			name:    "sort column checked before order",
			params:  models.ArticleListParams{SortBy: "nope", Order: "nope"},
			wantErr: errs.ErrInvalidSortBy,
		},
		{
			name:    "zero limit",
			params:  models.ArticleListParams{Limit: strPtr("0")},
			wantErr: errs.ErrInvalidPagination,
		},
		{
			name:    "non numeric page",
			params:  models.ArticleListParams{Page: strPtr("two")},
			wantErr: errs.ErrInvalidPagination,
		},
		{
			name:    "negative page",
			params:  models.ArticleListParams{Limit: strPtr("5"), Page: strPtr("-1")},
			wantErr: errs.ErrInvalidPagination,
		},
		{
			name:    "page whose offset overflows",
			params:  models.ArticleListParams{Limit: strPtr("10"), Page: strPtr("1000000000000000000")},
			wantErr: errs.ErrInvalidPagination,
		},
		{
			name:    "page beyond the int range",
			params:  models.ArticleListParams{Page: strPtr("99999999999999999999")},
			wantErr: errs.ErrInvalidPagination,
		},
		{
			name:   "large page with a small limit",
			params: models.ArticleListParams{Limit: strPtr("1"), Page: strPtr("1000000000")},
			want:   models.ArticleQuery{SortBy: "created_at", Order: "desc", Paginate: true, Limit: 1, Page: 1000000000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.ParseArticleQuery(tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArticleService_List(t *testing.T) {
	services, repos := setupServices(t)
	ctx := context.Background()

	t.Run("all articles newest first", func(t *testing.T) {
		page, err := services.Article.List(ctx, models.ArticleListParams{})
		require.NoError(t, err)
		assert.Len(t, page.Articles, 13)
		assert.Equal(t, 13, page.TotalCount)
		assert.Nil(t, page.Limit)
		assert.Nil(t, page.Page)
		assert.Equal(t, 3, page.Articles[0].ID)
	})

	t.Run("topic filter", func(t *testing.T) {
		page, err := services.Article.List(ctx, models.ArticleListParams{Topic: "cats"})
		require.NoError(t, err)
		require.Len(t, page.Articles, 1)
		assert.Equal(t, 5, page.Articles[0].ID)
		assert.Equal(t, 1, page.TotalCount)
	})

	t.Run("topic without articles", func(t *testing.T) {
		page, err := services.Article.List(ctx, models.ArticleListParams{Topic: "paper"})
		require.NoError(t, err)
		assert.NotNil(t, page.Articles)
		assert.Empty(t, page.Articles)
		assert.Zero(t, page.TotalCount)
	})

	t.Run("pagination reports limit and page", func(t *testing.T) {
		page, err := services.Article.List(ctx, models.ArticleListParams{
			SortBy: "article_id",
			Order:  "asc",
			Limit:  strPtr("5"),
			Page:   strPtr("3"),
		})
		require.NoError(t, err)
		require.Len(t, page.Articles, 3)
		assert.Equal(t, 11, page.Articles[0].ID)
		assert.Equal(t, 13, page.TotalCount)
		require.NotNil(t, page.Limit)
		require.NotNil(t, page.Page)
		assert.Equal(t, 5, *page.Limit)
		assert.Equal(t, 3, *page.Page)
	})

	t.Run("invalid query never reaches the repository", func(t *testing.T) {
		before := len(repos.Article.ListCalls)
		_, err := services.Article.List(ctx, models.ArticleListParams{SortBy: "password"})
		assert.ErrorIs(t, err, errs.ErrInvalidSortBy)
		assert.Len(t, repos.Article.ListCalls, before)
	})

	t.Run("repository failure", func(t *testing.T) {
		repos.Article.Err = errors.New("connection reset")
		defer func() { repos.Article.Err = nil }()

		_, err := services.Article.List(ctx, models.ArticleListParams{})
		assert.EqualError(t, err, "connection reset")
	})
}

func TestArticleService_Get(t *testing.T) {
	services, _ := setupServices(t)
	ctx := context.Background()

	article, err := services.Article.Get(ctx, "9")
	require.NoError(t, err)
	assert.Equal(t, 9, article.ID)
	assert.Equal(t, 2, article.CommentCount)

	_, err = services.Article.Get(ctx, "999")
	assert.ErrorIs(t, err, errs.ErrArticleNotFound)

	_, err = services.Article.Get(ctx, "golf")
	e, ok := repository.ClassifyError(err)
	require.True(t, ok)
	assert.Equal(t, errs.ErrBadRequest, e)
}

func TestArticleService_Create(t *testing.T) {
	services, _ := setupServices(t)
	ctx := context.Background()

	t.Run("defaults the image url", func(t *testing.T) {
		article, err := services.Article.Create(ctx, &models.NewArticle{
			Author: "lurker",
			Title:  "Cats and their hats",
			Body:   "A survey",
			Topic:  "cats",
		})
		require.NoError(t, err)
		assert.Equal(t, 14, article.ID)
		assert.Equal(t, models.DefaultArticleImgURL, article.ArticleImgURL)
		assert.Zero(t, article.Votes)
		assert.Zero(t, article.CommentCount)
	})

	t.Run("unknown author reported before unknown topic", func(t *testing.T) {
		_, err := services.Article.Create(ctx, &models.NewArticle{
			Author: "nobody", Title: "t", Body: "b", Topic: "golf",
		})
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("unknown topic", func(t *testing.T) {
		_, err := services.Article.Create(ctx, &models.NewArticle{
			Author: "lurker", Title: "t", Body: "b", Topic: "golf",
		})
		assert.ErrorIs(t, err, errs.ErrTopicNotFound)
	})
}

func TestArticleService_UpdateVotes(t *testing.T) {
	services, _ := setupServices(t)
	ctx := context.Background()

	article, err := services.Article.UpdateVotes(ctx, "1", 15)
	require.NoError(t, err)
	assert.Equal(t, 115, article.Votes)

	article, err = services.Article.UpdateVotes(ctx, "1", -200)
	require.NoError(t, err)
	assert.Equal(t, 0, article.Votes)

	_, err = services.Article.UpdateVotes(ctx, "999", 1)
	assert.ErrorIs(t, err, errs.ErrArticleNotFound)
}

func TestArticleService_Delete(t *testing.T) {
	services, repos := setupServices(t)
	ctx := context.Background()

	require.NoError(t, services.Article.Delete(ctx, "1"))

	count, err := repos.Comment.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, count)

	err = services.Article.Delete(ctx, "1")
	assert.ErrorIs(t, err, errs.ErrArticleNotFound)
}

func TestCommentService_ListByArticle(t *testing.T) {
	services, _ := setupServices(t)
	ctx := context.Background()

	comments, err := services.Comment.ListByArticle(ctx, "1")
	require.NoError(t, err)
	require.Len(t, comments, 11)
	for i := 1; i < len(comments); i++ {
		assert.False(t, comments[i].CreatedAt.After(comments[i-1].CreatedAt))
	}

	comments, err = services.Comment.ListByArticle(ctx, "2")
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)

	_, err = services.Comment.ListByArticle(ctx, "999")
	assert.ErrorIs(t, err, errs.ErrArticleNotFound)
}

func TestCommentService_Create(t *testing.T) {
	services, _ := setupServices(t)
	ctx := context.Background()

	comment, err := services.Comment.Create(ctx, "2", &models.NewComment{Username: "butter_bridge", Body: "gripping read"})
	require.NoError(t, err)
	assert.Equal(t, 19, comment.ID)
	assert.Equal(t, 2, comment.ArticleID)
	assert.Equal(t, "butter_bridge", comment.Author)
	assert.Zero(t, comment.Votes)

	_, err = services.Comment.Create(ctx, "999", &models.NewComment{Username: "nobody", Body: "x"})
	assert.ErrorIs(t, err, errs.ErrArticleNotFound)

	_, err = services.Comment.Create(ctx, "2", &models.NewComment{Username: "nobody", Body: "x"})
	assert.ErrorIs(t, err, errs.ErrUserNotFound)
}

func TestCommentService_UpdateVotes(t *testing.T) {
	services, _ := setupServices(t)
	ctx := context.Background()

	comment, err := services.Comment.UpdateVotes(ctx, "", "1", 12)
	require.NoError(t, err)
	assert.Equal(t, 28, comment.Votes)

	comment, err = services.Comment.UpdateVotes(ctx, "9", "1", -175)
	require.NoError(t, err)
	assert.Equal(t, 0, comment.Votes)

	_, err = services.Comment.UpdateVotes(ctx, "", "999", 1)
	assert.ErrorIs(t, err, errs.ErrCommentNotFound)

	_, err = services.Comment.UpdateVotes(ctx, "1", "1", 1)
	assert.ErrorIs(t, err, errs.ErrCommentNotFound, "comment 1 belongs to article 9")

	_, err = services.Comment.UpdateVotes(ctx, "999", "1", 1)
	assert.ErrorIs(t, err, errs.ErrArticleNotFound)
}

func TestCommentService_Delete(t *testing.T) {
	services, _ := setupServices(t)
	ctx := context.Background()

	require.NoError(t, services.Comment.Delete(ctx, "", "1"))
	assert.ErrorIs(t, services.Comment.Delete(ctx, "", "1"), errs.ErrCommentNotFound)

	assert.ErrorIs(t, services.Comment.Delete(ctx, "3", "2"), errs.ErrCommentNotFound)
	require.NoError(t, services.Comment.Delete(ctx, "1", "2"))
}

func TestTopicService(t *testing.T) {
	services, _ := setupServices(t)
	ctx := context.Background()

	topics, err := services.Topic.List(ctx)
	require.NoError(t, err)
	assert.Len(t, topics, 3)

	topic, err := services.Topic.Create(ctx, &models.NewTopic{Slug: "dogs", Description: "Not cats"})
	require.NoError(t, err)
	assert.Equal(t, "dogs", topic.Slug)

	_, err = services.Topic.Create(ctx, &models.NewTopic{Slug: "dogs", Description: "again"})
	e, ok := repository.ClassifyError(err)
	require.True(t, ok)
	assert.Equal(t, "Bad request, topic already exists", e.Msg)
}

func TestUserService(t *testing.T) {
	services, _ := setupServices(t)
	ctx := context.Background()

	users, err := services.User.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 4)

	user, err := services.User.Get(ctx, "butter_bridge")
	require.NoError(t, err)
	assert.Equal(t, "jonny", user.Name)

	_, err = services.User.Get(ctx, "nobody")
	assert.ErrorIs(t, err, errs.ErrUserNotFound)
}

func TestStatsService(t *testing.T) {
	services, repos := setupServices(t)
	ctx := context.Background()

	counts, err := services.Stats.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"topics":   3,
		"users":    4,
		"articles": 13,
		"comments": 18,
	}, counts)

	repos.Comment.Err = errors.New("timeout")
	_, err = services.Stats.Counts(ctx)
	assert.ErrorContains(t, err, "count comments")
}
