package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/markamcfadden/be-nc-news-project/internal/errs"
	"github.com/markamcfadden/be-nc-news-project/internal/models"
	"github.com/markamcfadden/be-nc-news-project/internal/repository"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type commentService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newCommentService(repos *repository.Repositories, log zerolog.Logger) *commentService {
	return &commentService{
		repos: repos,
		log:   log.With().Str("service", "comment").Logger(),
	}
}

// ListByArticle returns the article's comments, newest first
func (s *commentService) ListByArticle(ctx context.Context, articleID string) ([]models.Comment, error) {
	var (
		exists   bool
		comments []models.Comment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		exists, err = s.repos.Article.Exists(gctx, articleID)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = s.repos.Comment.ListByArticle(gctx, articleID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !exists {
		return nil, errs.ErrArticleNotFound
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, nil
}

// Create adds a comment to an article. A missing article is reported before
// a missing user.
func (s *commentService) Create(ctx context.Context, articleID string, in *models.NewComment) (*models.Comment, error) {
	var articleExists, userExists bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		articleExists, err = s.repos.Article.Exists(gctx, articleID)
		return err
	})
	g.Go(func() error {
		var err error
		userExists, err = s.repos.User.Exists(gctx, in.Username)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !articleExists {
		return nil, errs.ErrArticleNotFound
	}
	if !userExists {
		return nil, errs.ErrUserNotFound
	}

	comment, err := s.repos.Comment.Create(ctx, articleID, in)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int("comment_id", comment.ID).
		Int("article_id", comment.ArticleID).
		Str("author", comment.Author).
		Msg("Comment created")

	return comment, nil
}

func (s *commentService) UpdateVotes(ctx context.Context, articleID, commentID string, inc int) (*models.Comment, error) {
	if articleID != "" {
		if err := s.checkBelongs(ctx, articleID, commentID); err != nil {
			return nil, err
		}
	}

	comment, err := s.repos.Comment.UpdateVotes(ctx, commentID, inc)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, errs.ErrCommentNotFound
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, articleID, commentID string) error {
	if articleID != "" {
		if err := s.checkBelongs(ctx, articleID, commentID); err != nil {
			return err
		}
	} else {
		exists, err := s.repos.Comment.Exists(ctx, commentID)
		if err != nil {
			return err
		}
		if !exists {
			return errs.ErrCommentNotFound
		}
	}

	if err := s.repos.Comment.Delete(ctx, commentID); err != nil {
		return err
	}

	s.log.Info().Str("comment_id", commentID).Msg("Comment deleted")
	return nil
}

// checkBelongs confirms the article exists and that the comment is one of its comments
func (s *commentService) checkBelongs(ctx context.Context, articleID, commentID string) error {
	exists, err := s.repos.Article.Exists(ctx, articleID)
	if err != nil {
		return err
	}
	if !exists {
		return errs.ErrArticleNotFound
	}

	comment, err := s.repos.Comment.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return errs.ErrCommentNotFound
	}

	id, err := strconv.Atoi(strings.TrimSpace(articleID))
	if err != nil || comment.ArticleID != id {
		return errs.ErrCommentNotFound
	}
	return nil
}
