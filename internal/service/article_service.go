package service

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/markamcfadden/be-nc-news-project/internal/errs"
	"github.com/markamcfadden/be-nc-news-project/internal/models"
	"github.com/markamcfadden/be-nc-news-project/internal/repository"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type articleService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newArticleService(repos *repository.Repositories, log zerolog.Logger) *articleService {
	return &articleService{
		repos: repos,
		log:   log.With().Str("service", "article").Logger(),
	}
}

// ParseArticleQuery validates raw listing parameters and fills in defaults
func ParseArticleQuery(params models.ArticleListParams) (models.ArticleQuery, error) {
	q := models.ArticleQuery{
		SortBy: params.SortBy,
		Order:  strings.ToLower(params.Order),
		Topic:  params.Topic,
	}

	if q.SortBy == "" {
		q.SortBy = models.DefaultSortBy
	}
	if !models.ArticleSortColumns[q.SortBy] {
		return q, errs.ErrInvalidSortBy
	}

	if q.Order == "" {
		q.Order = models.DefaultOrder
	}
	if !models.ValidOrders[q.Order] {
		return q, errs.ErrInvalidOrder
	}

	if params.Limit == nil && params.Page == nil {
		return q, nil
	}

	q.Paginate = true
	q.Limit = models.DefaultLimit
	q.Page = 1

	if params.Limit != nil {
		n, err := positiveInt(*params.Limit)
		if err != nil {
			return q, err
		}
		q.Limit = n
	}
	if params.Page != nil {
		n, err := positiveInt(*params.Page)
		if err != nil {
			return q, err
		}
		q.Page = n
	}

	// OFFSET is (page-1)*limit and must fit in an int
	if q.Page-1 > math.MaxInt/q.Limit {
		return q, errs.ErrInvalidPagination
	}

	return q, nil
}

func positiveInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, errs.ErrInvalidPagination
	}
	return n, nil
}

// List returns one page of articles and the number of articles matching the
// topic filter. The page and the count are fetched concurrently.
func (s *articleService) List(ctx context.Context, params models.ArticleListParams) (*models.ArticlePage, error) {
	q, err := ParseArticleQuery(params)
	if err != nil {
		return nil, err
	}

	var (
		articles []models.Article
		total    int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		articles, err = s.repos.Article.List(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repos.Article.CountMatching(gctx, q.Topic)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if articles == nil {
		articles = []models.Article{}
	}

	page := &models.ArticlePage{
		Articles:   articles,
		TotalCount: total,
	}
	if q.Paginate {
		limit, p := q.Limit, q.Page
		page.Limit = &limit
		page.Page = &p
	}
	return page, nil
}

func (s *articleService) Get(ctx context.Context, id string) (*models.Article, error) {
	article, err := s.repos.Article.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, errs.ErrArticleNotFound
	}
	return article, nil
}

// Create checks that the author and topic exist, then inserts the article.
// A missing author is reported before a missing topic.
func (s *articleService) Create(ctx context.Context, in *models.NewArticle) (*models.Article, error) {
	var authorExists, topicExists bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		authorExists, err = s.repos.User.Exists(gctx, in.Author)
		return err
	})
	g.Go(func() error {
		var err error
		topicExists, err = s.repos.Topic.Exists(gctx, in.Topic)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !authorExists {
		return nil, errs.ErrUserNotFound
	}
	if !topicExists {
		return nil, errs.ErrTopicNotFound
	}

	if in.ArticleImgURL == "" {
		in.ArticleImgURL = models.DefaultArticleImgURL
	}

	article, err := s.repos.Article.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int("article_id", article.ID).
		Str("author", article.Author).
		Str("topic", article.Topic).
		Msg("Article created")

	return article, nil
}

func (s *articleService) UpdateVotes(ctx context.Context, id string, inc int) (*models.Article, error) {
	article, err := s.repos.Article.UpdateVotes(ctx, id, inc)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, errs.ErrArticleNotFound
	}
	return article, nil
}

func (s *articleService) Delete(ctx context.Context, id string) error {
	exists, err := s.repos.Article.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return errs.ErrArticleNotFound
	}

	if err := s.repos.Article.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("article_id", id).Msg("Article deleted")
	return nil
}
