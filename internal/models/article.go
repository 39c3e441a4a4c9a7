package models

import (
	"time"
)

// DefaultArticleImgURL is used when a new article has no image
const DefaultArticleImgURL = "https://images.pexels.com/photos/97050/pexels-photo-97050.jpeg?w=700&h=700"

// Article represents an article in the system
type Article struct {
	ID            int       `json:"article_id" db:"article_id"`
	Title         string    `json:"title" db:"title"`
	Topic         string    `json:"topic" db:"topic"`
	Author        string    `json:"author" db:"author"`
	Body          string    `json:"body,omitempty" db:"body"` // Not selected when listing
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	Votes         int       `json:"votes" db:"votes"`
	ArticleImgURL string    `json:"article_img_url" db:"article_img_url"`
	CommentCount  int       `json:"comment_count" db:"comment_count"`
}

// NewArticle is the POST /api/articles payload
type NewArticle struct {
	Author        string `json:"author" validate:"required"`
	Title         string `json:"title" validate:"required"`
	Body          string `json:"body" validate:"required"`
	Topic         string `json:"topic" validate:"required"`
	ArticleImgURL string `json:"article_img_url" validate:"omitempty,url"`
}

// VoteUpdate is the PATCH payload for articles and comments
type VoteUpdate struct {
	IncVotes int `json:"inc_votes" validate:"required"`
}

// Sort orders
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Listing defaults
const (
	DefaultSortBy = "created_at"
	DefaultOrder  = OrderDesc
	DefaultLimit  = 10
)

// ArticleSortColumns defines the columns articles may be sorted by
var ArticleSortColumns = map[string]bool{
	"created_at":    true,
	"article_id":    true,
	"title":         true,
	"topic":         true,
	"author":        true,
	"votes":         true,
	"comment_count": true,
}

// ValidOrders defines allowed sort directions
var ValidOrders = map[string]bool{
	OrderAsc:  true,
	OrderDesc: true,
}

// ArticleListParams holds the raw GET /api/articles query parameters.
// Limit and Page are nil when absent from the query string.
type ArticleListParams struct {
	SortBy string
	Order  string
	Topic  string
	Limit  *string
	Page   *string
}

// ArticleQuery is a validated article listing request
type ArticleQuery struct {
	SortBy   string
	Order    string
	Topic    string
	Paginate bool
	Limit    int
	Page     int
}

// Offset returns the number of rows skipped before the requested page
func (q ArticleQuery) Offset() int {
	if !q.Paginate || q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

// ArticlePage is the GET /api/articles response
type ArticlePage struct {
	Articles   []Article `json:"articles"`
	TotalCount int       `json:"total_count"`
	Limit      *int      `json:"limit,omitempty"`
	Page       *int      `json:"page,omitempty"`
}
