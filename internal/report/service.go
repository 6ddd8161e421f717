package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Repository interface {
	// ListStockTypes returns one element per stock row, the meter type.
	ListStockTypes(ctx context.Context) ([]string, error)
	// ListAgentInventoryTypes returns one element per inventory row. A nil
	// agentID covers every agent.
	ListAgentInventoryTypes(ctx context.Context, agentID *uuid.UUID) ([]string, error)
	ListSaleBatches(ctx context.Context, r DateRange) ([]BatchRow, error)
	ListFaultStatuses(ctx context.Context) ([]string, error)
}

// BatchRow is the slice of a sale batch the reports need.
type BatchRow struct {
	MeterType      string
	BatchAmount    int
	TotalPrice     decimal.Decimal
	CustomerType   string
	CustomerCounty string
	SaleDate       time.Time
}

type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Service folds raw store rows into the report aggregates. Aggregation is
// done in memory rather than in SQL so every report sees the same rows and
// the store surface stays narrow.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) RemainingByType(ctx context.Context) (map[string]int, error) {
	types, err := s.repo.ListStockTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing stock: %w", err)
	}

	return countByKey(types), nil
}

func (s *Service) AgentInventoryCountByType(ctx context.Context, agentID *uuid.UUID) (map[string]int, error) {
	types, err := s.repo.ListAgentInventoryTypes(ctx, agentID)
	if err != nil {
		return nil, fmt.Errorf("listing agent inventory: %w", err)
	}

	return countByKey(types), nil
}

type TypeEarnings struct {
	Units   int
	Revenue decimal.Decimal
}

func (s *Service) EarningsByType(ctx context.Context, r DateRange) (map[string]TypeEarnings, error) {
	batches, err := s.repo.ListSaleBatches(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("listing sale batches: %w", err)
	}

	earnings := make(map[string]TypeEarnings)

	for _, b := range batches {
		e := earnings[b.MeterType]
		e.Units += b.BatchAmount
		e.Revenue = e.Revenue.Add(b.TotalPrice)
		earnings[b.MeterType] = e
	}

	return earnings, nil
}

// CustomerTypeCounts reports units sold per customer category.
func (s *Service) CustomerTypeCounts(ctx context.Context, r DateRange) (map[string]int, error) {
	batches, err := s.repo.ListSaleBatches(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("listing sale batches: %w", err)
	}

	counts := make(map[string]int)
	for _, b := range batches {
		counts[b.CustomerType] += b.BatchAmount
	}

	return counts, nil
}

// CountyCounts reports units sold per customer county.
func (s *Service) CountyCounts(ctx context.Context, r DateRange) (map[string]int, error) {
	batches, err := s.repo.ListSaleBatches(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("listing sale batches: %w", err)
	}

	counts := make(map[string]int)
	for _, b := range batches {
		counts[b.CustomerCounty] += b.BatchAmount
	}

	return counts, nil
}

func (s *Service) FaultCountByStatus(ctx context.Context) (map[string]int, error) {
	statuses, err := s.repo.ListFaultStatuses(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing fault statuses: %w", err)
	}

	return countByKey(statuses), nil
}

// Summary bundles the aggregates one screen or one assistant answer needs.
type Summary struct {
	Remaining      map[string]int
	WithAgents     map[string]int
	Earnings       map[string]TypeEarnings
	CustomerTypes  map[string]int
	Counties       map[string]int
	FaultsByStatus map[string]int
	TotalRevenue   decimal.Decimal
	TotalUnitsSold int
}

func (s *Service) Summarize(ctx context.Context, r DateRange) (*Summary, error) {
	remaining, err := s.RemainingByType(ctx)
	if err != nil {
		return nil, err
	}

	withAgents, err := s.AgentInventoryCountByType(ctx, nil)
	if err != nil {
		return nil, err
	}

	batches, err := s.repo.ListSaleBatches(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("listing sale batches: %w", err)
	}

	faults, err := s.FaultCountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Remaining:      remaining,
		WithAgents:     withAgents,
		Earnings:       make(map[string]TypeEarnings),
		CustomerTypes:  make(map[string]int),
		Counties:       make(map[string]int),
		FaultsByStatus: faults,
	}

	for _, b := range batches {
		e := summary.Earnings[b.MeterType]
		e.Units += b.BatchAmount
		e.Revenue = e.Revenue.Add(b.TotalPrice)
		summary.Earnings[b.MeterType] = e

		summary.CustomerTypes[b.CustomerType] += b.BatchAmount
		summary.Counties[b.CustomerCounty] += b.BatchAmount
		summary.TotalRevenue = summary.TotalRevenue.Add(b.TotalPrice)
		summary.TotalUnitsSold += b.BatchAmount
	}

	return summary, nil
}

func countByKey(keys []string) map[string]int {
	counts := make(map[string]int)
	for _, k := range keys {
		counts[k]++
	}

	return counts
}
