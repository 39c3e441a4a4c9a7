package repository

import (
	"fmt"
	"strings"

	"github.com/markamcfadden/be-nc-news-project/internal/models"
)

// articleSortExpr maps each sortable column to its ORDER BY expression.
// Only keys of this map ever reach the SQL text.
var articleSortExpr = map[string]string{
	"created_at":    "articles.created_at",
	"article_id":    "articles.article_id",
	"title":         "articles.title",
	"topic":         "articles.topic",
	"author":        "articles.author",
	"votes":         "articles.votes",
	"comment_count": "comment_count",
}

var sortDirection = map[string]string{
	models.OrderAsc:  "ASC",
	models.OrderDesc: "DESC",
}

const articleSummaryColumns = `articles.article_id, articles.title, articles.topic, articles.author,
	articles.created_at, articles.votes, articles.article_img_url,
	COUNT(comments.comment_id)::INT AS comment_count`

const articleJoin = `
	FROM articles
	LEFT JOIN comments ON comments.article_id = articles.article_id`

// buildListArticlesQuery assembles the article listing statement and its
// positional arguments
func buildListArticlesQuery(q models.ArticleQuery) (string, []interface{}, error) {
	expr, ok := articleSortExpr[q.SortBy]
	if !ok {
		return "", nil, fmt.Errorf("unsupported sort column %q", q.SortBy)
	}
	dir, ok := sortDirection[q.Order]
	if !ok {
		return "", nil, fmt.Errorf("unsupported sort order %q", q.Order)
	}

	var sb strings.Builder
	var args []interface{}

	sb.WriteString("SELECT ")
	sb.WriteString(articleSummaryColumns)
	sb.WriteString(articleJoin)

	if q.Topic != "" {
		args = append(args, q.Topic)
		fmt.Fprintf(&sb, "\n\tWHERE articles.topic = $%d", len(args))
	}

	sb.WriteString("\n\tGROUP BY articles.article_id")
	fmt.Fprintf(&sb, "\n\tORDER BY %s %s", expr, dir)
	// article_id breaks ties so pages never overlap
	if q.SortBy != "article_id" {
		fmt.Fprintf(&sb, ", articles.article_id %s", dir)
	}

	if q.Paginate {
		args = append(args, q.Limit, q.Offset())
		fmt.Fprintf(&sb, "\n\tLIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	return sb.String(), args, nil
}

// buildCountArticlesQuery assembles the total-count statement used for
// pagination metadata
func buildCountArticlesQuery(topic string) (string, []interface{}) {
	if topic == "" {
		return "SELECT COUNT(*)::INT FROM articles", nil
	}
	return "SELECT COUNT(*)::INT FROM articles WHERE topic = $1", []interface{}{topic}
}
