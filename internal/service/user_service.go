package service

import (
	"context"

	"github.com/markamcfadden/be-nc-news-project/internal/errs"
	"github.com/markamcfadden/be-nc-news-project/internal/models"
	"github.com/markamcfadden/be-nc-news-project/internal/repository"
	"github.com/rs/zerolog"
)

type userService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newUserService(repos *repository.Repositories, log zerolog.Logger) *userService {
	return &userService{
		repos: repos,
		log:   log.With().Str("service", "user").Logger(),
	}
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return s.repos.User.List(ctx)
}

func (s *userService) Get(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repos.User.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.log.Debug().Str("username", username).Msg("User not found")
		return nil, errs.ErrUserNotFound
	}
	return user, nil
}
