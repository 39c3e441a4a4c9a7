package repository

import (
	"strings"
	"testing"

	"github.com/markamcfadden/be-nc-news-project/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListArticlesQuery(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		query, args, err := buildListArticlesQuery(models.ArticleQuery{
			SortBy: models.DefaultSortBy,
			Order:  models.DefaultOrder,
		})
		require.NoError(t, err)
		assert.Empty(t, args)
		assert.Contains(t, query, "LEFT JOIN comments ON comments.article_id = articles.article_id")
		assert.Contains(t, query, "COUNT(comments.comment_id)::INT AS comment_count")
		assert.Contains(t, query, "GROUP BY articles.article_id")
		assert.Contains(t, query, "ORDER BY articles.created_at DESC, articles.article_id DESC")
		assert.NotContains(t, query, "WHERE")
		assert.NotContains(t, query, "LIMIT")
		assert.NotContains(t, query, "articles.body")
	})

	t.Run("topic filter is a bound parameter", func(t *testing.T) {
		query, args, err := buildListArticlesQuery(models.ArticleQuery{
			SortBy: "votes",
			Order:  models.OrderAsc,
			Topic:  "cats'; DROP TABLE articles; --",
		})
		require.NoError(t, err)
		assert.Contains(t, query, "WHERE articles.topic = $1")
		assert.NotContains(t, query, "DROP TABLE")
		assert.Equal(t, []interface{}{"cats'; DROP TABLE articles; --"}, args)
		assert.Contains(t, query, "ORDER BY articles.votes ASC, articles.article_id ASC")
	})

	t.Run("comment_count sorts on the aggregate", func(t *testing.T) {
		query, _, err := buildListArticlesQuery(models.ArticleQuery{SortBy: "comment_count", Order: models.OrderDesc})
		require.NoError(t, err)
		assert.Contains(t, query, "ORDER BY comment_count DESC, articles.article_id DESC")
	})

	t.Run("article_id has no tie-breaker", func(t *testing.T) {
		query, _, err := buildListArticlesQuery(models.ArticleQuery{SortBy: "article_id", Order: models.OrderAsc})
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(strings.TrimSpace(query), "ORDER BY articles.article_id ASC"))
	})

	t.Run("pagination follows the topic parameter", func(t *testing.T) {
		query, args, err := buildListArticlesQuery(models.ArticleQuery{
			SortBy:   "title",
			Order:    models.OrderDesc,
			Topic:    "mitch",
			Paginate: true,
			Limit:    5,
			Page:     3,
		})
		require.NoError(t, err)
		assert.Contains(t, query, "LIMIT $2 OFFSET $3")
		assert.Equal(t, []interface{}{"mitch", 5, 10}, args)
	})

	t.Run("pagination without topic", func(t *testing.T) {
		query, args, err := buildListArticlesQuery(models.ArticleQuery{
			SortBy:   "created_at",
			Order:    models.OrderDesc,
			Paginate: true,
			Limit:    10,
			Page:     1,
		})
		require.NoError(t, err)
		assert.Contains(t, query, "LIMIT $1 OFFSET $2")
		assert.Equal(t, []interface{}{10, 0}, args)
	})

	t.Run("rejects columns outside the allow-list", func(t *testing.T) {
		_, _, err := buildListArticlesQuery(models.ArticleQuery{SortBy: "body", Order: models.OrderAsc})
		assert.Error(t, err)
	})

	t.Run("rejects unknown order", func(t *testing.T) {
		_, _, err := buildListArticlesQuery(models.ArticleQuery{SortBy: "votes", Order: "sideways"})
		assert.Error(t, err)
	})
}

func TestSortExprCoversModelColumns(t *testing.T) {
	for column := range models.ArticleSortColumns {
		assert.Contains(t, articleSortExpr, column)
	}
	assert.Len(t, articleSortExpr, len(models.ArticleSortColumns))
}

func TestBuildCountArticlesQuery(t *testing.T) {
	query, args := buildCountArticlesQuery("")
	assert.Equal(t, "SELECT COUNT(*)::INT FROM articles", query)
	assert.Nil(t, args)

	query, args = buildCountArticlesQuery("cats")
	assert.Equal(t, "SELECT COUNT(*)::INT FROM articles WHERE topic = $1", query)
	assert.Equal(t, []interface{}{"cats"}, args)
}
