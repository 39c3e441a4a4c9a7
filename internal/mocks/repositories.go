package mocks

import (
	"context"
	"database/sql"
	"sort"
	"strings"

	"github.com/lib/pq"
	"github.com/markamcfadden/be-nc-news-project/internal/models"
	"github.com/markamcfadden/be-nc-news-project/internal/repository"
	"github.com/markamcfadden/be-nc-news-project/internal/seed"
)

// Repos bundles the mock repositories over one Store
type Repos struct {
	Store   *Store
	Topic   *MockTopicRepository
	User    *MockUserRepository
	Article *MockArticleRepository
	Comment *MockCommentRepository
}

// NewRepos creates mock repositories holding a copy of data
func NewRepos(data *seed.Data) *Repos {
	store := NewStore(data)
	return &Repos{
		Store:   store,
		Topic:   &MockTopicRepository{store: store},
		User:    &MockUserRepository{store: store},
		Article: &MockArticleRepository{store: store},
		Comment: &MockCommentRepository{store: store},
	}
}

// NewSeededRepos creates mock repositories holding the standard dataset
func NewSeededRepos() *Repos {
	return NewRepos(seed.TestData())
}

// Repositories returns the mocks as a repository.Repositories
func (r *Repos) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Topic:   r.Topic,
		User:    r.User,
		Article: r.Article,
		Comment: r.Comment,
	}
}

// MockTopicRepository is a mock implementation of TopicRepository.
// When Err is set every method returns it.
type MockTopicRepository struct {
	store *Store
	Err   error
}

func (m *MockTopicRepository) List(ctx context.Context) ([]models.Topic, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return append([]models.Topic{}, m.store.topics...), nil
}

func (m *MockTopicRepository) Create(ctx context.Context, in *models.NewTopic) (*models.Topic, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if m.store.topicExists(in.Slug) {
		return nil, &pq.Error{
			Code:       "23505",
			Message:    `duplicate key value violates unique constraint "topics_pkey"`,
			Table:      "topics",
			Constraint: "topics_pkey",
		}
	}
	topic := models.Topic{Slug: in.Slug, Description: in.Description}
	m.store.topics = append(m.store.topics, topic)
	return &topic, nil
}

func (m *MockTopicRepository) Exists(ctx context.Context, slug string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return m.store.topicExists(slug), nil
}

func (m *MockTopicRepository) BatchInsert(ctx context.Context, tx *sql.Tx, topics []*models.Topic) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	for _, t := range topics {
		m.store.topics = append(m.store.topics, *t)
	}
	return len(topics), nil
}

func (m *MockTopicRepository) Count(ctx context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return len(m.store.topics), nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	store *Store
	Err   error
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return append([]models.User{}, m.store.users...), nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	u := m.store.findUser(username)
	if u == nil {
		return nil, nil
	}
	out := *u
	return &out, nil
}

func (m *MockUserRepository) Exists(ctx context.Context, username string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return m.store.findUser(username) != nil, nil
}

func (m *MockUserRepository) BatchInsert(ctx context.Context, tx *sql.Tx, users []*models.User) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	for _, u := range users {
		m.store.users = append(m.store.users, *u)
	}
	return len(users), nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return len(m.store.users), nil
}

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	store *Store
	Err   error

	// ListCalls records every query passed to List
	ListCalls []models.ArticleQuery
}

func (m *MockArticleRepository) List(ctx context.Context, q models.ArticleQuery) ([]models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.store.mu.Lock()
	m.ListCalls = append(m.ListCalls, q)
	m.store.mu.Unlock()

	m.store.mu.RLock()
	defer m.store.mu.RUnlock()

	articles := make([]models.Article, 0, len(m.store.articles))
	for _, a := range m.store.articles {
		if q.Topic != "" && a.Topic != q.Topic {
			continue
		}
		summary := *m.store.detail(a)
		summary.Body = ""
		articles = append(articles, summary)
	}

	less := articleLess(q.SortBy)
	desc := q.Order == models.OrderDesc
	sort.Slice(articles, func(i, j int) bool {
		a, b := articles[i], articles[j]
		if desc {
			a, b = b, a
		}
		if c := less(a, b); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	})

	if q.Paginate {
		offset := q.Offset()
		if offset >= len(articles) {
			return []models.Article{}, nil
		}
		end := offset + q.Limit
		if end > len(articles) {
			end = len(articles)
		}
		articles = articles[offset:end]
	}
	return articles, nil
}

// articleLess returns a three-way comparison on the sort column
func articleLess(column string) func(a, b models.Article) int {
	ints := func(x, y int) int {
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	switch column {
	case "article_id":
		return func(a, b models.Article) int { return ints(a.ID, b.ID) }
	case "title":
		return func(a, b models.Article) int { return strings.Compare(a.Title, b.Title) }
	case "topic":
		return func(a, b models.Article) int { return strings.Compare(a.Topic, b.Topic) }
	case "author":
		return func(a, b models.Article) int { return strings.Compare(a.Author, b.Author) }
	case "votes":
		return func(a, b models.Article) int { return ints(a.Votes, b.Votes) }
	case "comment_count":
		return func(a, b models.Article) int { return ints(a.CommentCount, b.CommentCount) }
	default:
		return func(a, b models.Article) int { return a.CreatedAt.Compare(b.CreatedAt) }
	}
}

func (m *MockArticleRepository) CountMatching(ctx context.Context, topic string) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	n := 0
	for _, a := range m.store.articles {
		if topic == "" || a.Topic == topic {
			n++
		}
	}
	return n, nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	a, ok := m.store.articles[n]
	if !ok {
		return nil, nil
	}
	return m.store.detail(a), nil
}

func (m *MockArticleRepository) Exists(ctx context.Context, id string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	n, err := parseID(id)
	if err != nil {
		return false, err
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	_, ok := m.store.articles[n]
	return ok, nil
}

func (m *MockArticleRepository) Create(ctx context.Context, in *models.NewArticle) (*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if m.store.findUser(in.Author) == nil {
		return nil, foreignKeyViolation("articles", "articles_author_fkey")
	}
	if !m.store.topicExists(in.Topic) {
		return nil, foreignKeyViolation("articles", "articles_topic_fkey")
	}
	a := m.store.insertArticle(models.Article{
		Title:         in.Title,
		Topic:         in.Topic,
		Author:        in.Author,
		Body:          in.Body,
		ArticleImgURL: in.ArticleImgURL,
		CreatedAt:     m.store.Now(),
	})
	out := *a
	return &out, nil
}

func (m *MockArticleRepository) UpdateVotes(ctx context.Context, id string, inc int) (*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	a, ok := m.store.articles[n]
	if !ok {
		return nil, nil
	}
	a.Votes = clampVotes(a.Votes, inc)
	return m.store.detail(a), nil
}

// Delete removes an article and its comments
func (m *MockArticleRepository) Delete(ctx context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	n, err := parseID(id)
	if err != nil {
		return err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	delete(m.store.articles, n)
	for cid, c := range m.store.comments {
		if c.ArticleID == n {
			delete(m.store.comments, cid)
		}
	}
	return nil
}

func (m *MockArticleRepository) BatchInsert(ctx context.Context, tx *sql.Tx, articles []*models.Article) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	for _, a := range articles {
		m.store.insertArticle(*a)
	}
	return len(articles), nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return len(m.store.articles), nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	store *Store
	Err   error
}

func (m *MockCommentRepository) ListByArticle(ctx context.Context, articleID string) ([]models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	n, err := parseID(articleID)
	if err != nil {
		return nil, err
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()

	comments := []models.Comment{}
	for _, c := range m.store.comments {
		if c.ArticleID == n {
			comments = append(comments, *c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		}
		return comments[i].ID > comments[j].ID
	})
	return comments, nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	c, ok := m.store.comments[n]
	if !ok {
		return nil, nil
	}
	out := *c
	return &out, nil
}

func (m *MockCommentRepository) Exists(ctx context.Context, id string) (bool, error) {
	c, err := m.GetByID(ctx, id)
	return c != nil, err
}

func (m *MockCommentRepository) Create(ctx context.Context, articleID string, in *models.NewComment) (*models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	n, err := parseID(articleID)
	if err != nil {
		return nil, err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if _, ok := m.store.articles[n]; !ok {
		return nil, foreignKeyViolation("comments", "comments_article_id_fkey")
	}
	if m.store.findUser(in.Username) == nil {
		return nil, foreignKeyViolation("comments", "comments_author_fkey")
	}
	c := m.store.insertComment(models.Comment{
		Body:      in.Body,
		ArticleID: n,
		Author:    in.Username,
		CreatedAt: m.store.Now(),
	})
	out := *c
	return &out, nil
}

func (m *MockCommentRepository) UpdateVotes(ctx context.Context, id string, inc int) (*models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	c, ok := m.store.comments[n]
	if !ok {
		return nil, nil
	}
	c.Votes = clampVotes(c.Votes, inc)
	out := *c
	return &out, nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	n, err := parseID(id)
	if err != nil {
		return err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	delete(m.store.comments, n)
	return nil
}

func (m *MockCommentRepository) BatchInsert(ctx context.Context, tx *sql.Tx, comments []*models.Comment) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	for _, c := range comments {
		m.store.insertComment(*c)
	}
	return len(comments), nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return len(m.store.comments), nil
}
