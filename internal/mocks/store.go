package mocks

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/markamcfadden/be-nc-news-project/internal/models"
	"github.com/markamcfadden/be-nc-news-project/internal/seed"
)

// Store is the in-memory dataset shared by the mock repositories. It mirrors
// the PostgreSQL behaviour the services rely on: serial ids, foreign keys,
// the article to comments cascade, and driver errors for malformed ids.
type Store struct {
	mu sync.RWMutex

	topics   []models.Topic
	users    []models.User
	articles map[int]*models.Article
	comments map[int]*models.Comment

	nextArticleID int
	nextCommentID int

	// Now stamps created_at on inserted rows
	Now func() time.Time
}

// NewStore creates a store holding a copy of data. A nil data gives an empty store.
func NewStore(data *seed.Data) *Store {
	s := &Store{
		articles:      make(map[int]*models.Article),
		comments:      make(map[int]*models.Comment),
		nextArticleID: 1,
		nextCommentID: 1,
		Now:           time.Now,
	}
	if data == nil {
		return s
	}

	for _, t := range data.Topics {
		s.topics = append(s.topics, *t)
	}
	for _, u := range data.Users {
		s.users = append(s.users, *u)
	}
	for _, a := range data.Articles {
		s.insertArticle(*a)
	}
	for _, c := range data.Comments {
		s.insertComment(*c)
	}
	return s
}

func (s *Store) insertArticle(a models.Article) *models.Article {
	a.ID = s.nextArticleID
	a.CommentCount = 0
	if a.ArticleImgURL == "" {
		a.ArticleImgURL = models.DefaultArticleImgURL
	}
	s.nextArticleID++
	s.articles[a.ID] = &a
	return &a
}

func (s *Store) insertComment(c models.Comment) *models.Comment {
	c.ID = s.nextCommentID
	s.nextCommentID++
	s.comments[c.ID] = &c
	return &c
}

func (s *Store) topicExists(slug string) bool {
	for _, t := range s.topics {
		if t.Slug == slug {
			return true
		}
	}
	return false
}

func (s *Store) findUser(username string) *models.User {
	for i := range s.users {
		if s.users[i].Username == username {
			return &s.users[i]
		}
	}
	return nil
}

func (s *Store) commentCount(articleID int) int {
	n := 0
	for _, c := range s.comments {
		if c.ArticleID == articleID {
			n++
		}
	}
	return n
}

// detail returns a copy of the article with its comment count
func (s *Store) detail(a *models.Article) *models.Article {
	out := *a
	out.CommentCount = s.commentCount(a.ID)
	return &out
}

// parseID converts a path id the way PostgreSQL casts text to INT
func parseID(raw string) (int, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, outOfRange()
		}
		return 0, &pq.Error{
			Code:    "22P02",
			Message: `invalid input syntax for type integer: "` + raw + `"`,
		}
	}
	if n > math.MaxInt32 || n < math.MinInt32 {
		return 0, outOfRange()
	}
	return int(n), nil
}

func outOfRange() error {
	return &pq.Error{Code: "22003", Message: `value out of range for type integer`}
}

func foreignKeyViolation(table, constraint string) error {
	return &pq.Error{
		Code:       "23503",
		Message:    `insert or update on table "` + table + `" violates foreign key constraint "` + constraint + `"`,
		Table:      table,
		Constraint: constraint,
	}
}

func clampVotes(votes, inc int) int {
	if v := votes + inc; v > 0 {
		return v
	}
	return 0
}
