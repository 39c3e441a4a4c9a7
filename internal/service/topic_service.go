package service

import (
	"context"

	"github.com/markamcfadden/be-nc-news-project/internal/models"
	"github.com/markamcfadden/be-nc-news-project/internal/repository"
	"github.com/rs/zerolog"
)

type topicService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newTopicService(repos *repository.Repositories, log zerolog.Logger) *topicService {
	return &topicService{
		repos: repos,
		log:   log.With().Str("service", "topic").Logger(),
	}
}

func (s *topicService) List(ctx context.Context) ([]models.Topic, error) {
	return s.repos.Topic.List(ctx)
}

// Create inserts a topic. A duplicate slug surfaces as a unique violation.
func (s *topicService) Create(ctx context.Context, in *models.NewTopic) (*models.Topic, error) {
	topic, err := s.repos.Topic.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("slug", topic.Slug).Msg("Topic created")
	return topic, nil
}
