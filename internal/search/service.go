package search

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/kmutua/metertrack/internal/meter"
)

// Each source contributes at most this many rows, so a short prefix query
// stays cheap and the merged list stays scannable.
const perSourceLimit = 5

// Query carries both the raw user input (prefix-matched against stored
// serials) and its canonical form (equality-matched against serial keys).
type Query struct {
	Raw       string
	Canonical string
}

type Repository interface {
	SearchStock(ctx context.Context, q Query, limit int) ([]Hit, error)
	SearchAgentInventory(ctx context.Context, q Query, limit int) ([]Hit, error)
	SearchSold(ctx context.Context, q Query, limit int) ([]Hit, error)
	SearchFaulty(ctx context.Context, q Query, limit int) ([]Hit, error)
}

// Service fans a serial query out over all four lifecycle tables in
// parallel and merges the hits in lifecycle order.
type Service struct {
	repo Repository
	mode meter.MatchMode
}

func NewService(repo Repository, mode meter.MatchMode) *Service {
	return &Service{repo: repo, mode: mode}
}

func (s *Service) Search(ctx context.Context, input string) ([]Hit, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return nil, fmt.Errorf("empty search query")
	}

	q := Query{Raw: raw, Canonical: meter.Canonical(s.mode, raw)}

	var stock, agent, sold, faulty []Hit

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		stock, err = s.repo.SearchStock(gctx, q, perSourceLimit)
		return err
	})
	g.Go(func() error {
		var err error
		agent, err = s.repo.SearchAgentInventory(gctx, q, perSourceLimit)
		return err
	})
	g.Go(func() error {
		var err error
		sold, err = s.repo.SearchSold(gctx, q, perSourceLimit)
		return err
	})
	g.Go(func() error {
		var err error
		faulty, err = s.repo.SearchFaulty(gctx, q, perSourceLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}

	// A sold row that has been swapped out is surfaced as replaced, not
	// sold; callers branch on the location tag alone.
	for i := range sold {
		if sold[i].Sold != nil && sold[i].Sold.Status == string(meter.SoldReplaced) {
			sold[i].Location = LocationReplaced
		}
	}

	// Merge follows the lifecycle: stock, then agents, then sold, then
	// faulty returns.
	hits := make([]Hit, 0, len(stock)+len(agent)+len(sold)+len(faulty))
	hits = append(hits, stock...)
	hits = append(hits, agent...)
	hits = append(hits, sold...)
	hits = append(hits, faulty...)

	return hits, nil
}
