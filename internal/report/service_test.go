package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmutua/metertrack/internal/report"
)

type fakeRepo struct {
	stockTypes    []string
	agentTypes    []string
	batches       []report.BatchRow
	faultStatuses []string

	gotRange report.DateRange
}

func (f *fakeRepo) ListStockTypes(context.Context) ([]string, error) {
	return f.stockTypes, nil
}

func (f *fakeRepo) ListAgentInventoryTypes(_ context.Context, _ *uuid.UUID) ([]string, error) {
	return f.agentTypes, nil
}

func (f *fakeRepo) ListSaleBatches(_ context.Context, r report.DateRange) ([]report.BatchRow, error) {
	f.gotRange = r
	return f.batches, nil
}

func (f *fakeRepo) ListFaultStatuses(context.Context) ([]string, error) {
	return f.faultStatuses, nil
}

func testBatches() []report.BatchRow {
	return []report.BatchRow{
		{
			MeterType:      "split",
			BatchAmount:    3,
			TotalPrice:     decimal.NewFromInt(3000),
			CustomerType:   "landlord",
			CustomerCounty: "Nakuru",
		},
		{
			MeterType:      "split",
			BatchAmount:    2,
			TotalPrice:     decimal.NewFromInt(2200),
			CustomerType:   "tenant",
			CustomerCounty: "Kisumu",
		},
		{
			MeterType:      "integrated",
			BatchAmount:    1,
			TotalPrice:     decimal.NewFromInt(2500),
			CustomerType:   "landlord",
			CustomerCounty: "Nakuru",
		},
	}
}

func TestService_RemainingByType(t *testing.T) {
	repo := &fakeRepo{stockTypes: []string{"split", "split", "integrated"}}
	svc := report.NewService(repo)

	counts, err := svc.RemainingByType(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"split": 2, "integrated": 1}, counts)
}

func TestService_EarningsByType(t *testing.T) {
	repo := &fakeRepo{batches: testBatches()}
	svc := report.NewService(repo)

	earnings, err := svc.EarningsByType(context.Background(), report.DateRange{})
	require.NoError(t, err)

	require.Contains(t, earnings, "split")
	assert.Equal(t, 5, earnings["split"].Units)
	assert.True(t, earnings["split"].Revenue.Equal(decimal.NewFromInt(5200)))
	assert.Equal(t, 1, earnings["integrated"].Units)
}

func TestService_CustomerTypeCounts(t *testing.T) {
	repo := &fakeRepo{batches: testBatches()}
	svc := report.NewService(repo)

	counts, err := svc.CustomerTypeCounts(context.Background(), report.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"landlord": 4, "tenant": 2}, counts)
}

func TestService_Summarize(t *testing.T) {
	repo := &fakeRepo{
		stockTypes:    []string{"split"},
		agentTypes:    []string{"split", "integrated"},
		batches:       testBatches(),
		faultStatuses: []string{"pending", "pending", "unrepairable"},
	}
	svc := report.NewService(repo)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	summary, err := svc.Summarize(context.Background(), report.DateRange{From: &from})
	require.NoError(t, err)

	// The totals must equal the sum of the per-type aggregates.
	units := 0
	revenue := decimal.Zero

	for _, e := range summary.Earnings {
		units += e.Units
		revenue = revenue.Add(e.Revenue)
	}

	assert.Equal(t, units, summary.TotalUnitsSold)
	assert.True(t, revenue.Equal(summary.TotalRevenue))

	assert.Equal(t, map[string]int{"split": 1}, summary.Remaining)
	assert.Equal(t, map[string]int{"pending": 2, "unrepairable": 1}, summary.FaultsByStatus)
	require.NotNil(t, repo.gotRange.From)
	assert.True(t, repo.gotRange.From.Equal(from))
}
