package service

import (
	"context"
	"fmt"

	"github.com/markamcfadden/be-nc-news-project/internal/repository"
	"golang.org/x/sync/errgroup"
)

type statsService struct {
	repos *repository.Repositories
}

func newStatsService(repos *repository.Repositories) *statsService {
	return &statsService{repos: repos}
}

type counter func(ctx context.Context) (int, error)

// Counts returns the number of rows in each table, keyed by table name
func (s *statsService) Counts(ctx context.Context) (map[string]int, error) {
	counters := map[string]counter{
		"topics":   s.repos.Topic.Count,
		"users":    s.repos.User.Count,
		"articles": s.repos.Article.Count,
		"comments": s.repos.Comment.Count,
	}

	results := make([]int, len(counters))
	names := make([]string, 0, len(counters))

	g, gctx := errgroup.WithContext(ctx)
	for name, count := range counters {
		i := len(names)
		names = append(names, name)
		name, count := name, count
		g.Go(func() error {
			n, err := count(gctx)
			if err != nil {
				return fmt.Errorf("count %s: %w", name, err)
			}
			results[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(names))
	for i, name := range names {
		counts[name] = results[i]
	}
	return counts, nil
}
