package mocks

import (
	"context"

	"github.com/markamcfadden/be-nc-news-project/internal/models"
	"github.com/markamcfadden/be-nc-news-project/internal/service"
)

// MockTopicService is a mock implementation of TopicService
type MockTopicService struct {
	ListFunc   func(ctx context.Context) ([]models.Topic, error)
	CreateFunc func(ctx context.Context, topic *models.NewTopic) (*models.Topic, error)
	Created    []*models.NewTopic
}

// Verify interface compliance
var _ service.TopicService = (*MockTopicService)(nil)

func NewMockTopicService() *MockTopicService {
	return &MockTopicService{
		Created: make([]*models.NewTopic, 0),
	}
}

func (m *MockTopicService) List(ctx context.Context) ([]models.Topic, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []models.Topic{}, nil
}

func (m *MockTopicService) Create(ctx context.Context, topic *models.NewTopic) (*models.Topic, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, topic)
	}
	m.Created = append(m.Created, topic)
	return &models.Topic{Slug: topic.Slug, Description: topic.Description}, nil
}

// MockStatsService is a mock implementation of StatsService
type MockStatsService struct {
	Totals    map[string]int
	CountsErr error
}

// Verify interface compliance
var _ service.StatsService = (*MockStatsService)(nil)

func NewMockStatsService() *MockStatsService {
	return &MockStatsService{
		Totals: map[string]int{
			"topics":   3,
			"users":    4,
			"articles": 13,
			"comments": 18,
		},
	}
}

func (m *MockStatsService) Counts(ctx context.Context) (map[string]int, error) {
	if m.CountsErr != nil {
		return nil, m.CountsErr
	}
	return m.Totals, nil
}
