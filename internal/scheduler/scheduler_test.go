package scheduler_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kmutua/metertrack/internal/report"
	"github.com/kmutua/metertrack/internal/scheduler"
)

type fakeSummarizer struct {
	summary *report.Summary
	err     error
}

func (f *fakeSummarizer) Summarize(context.Context, report.DateRange) (*report.Summary, error) {
	return f.summary, f.err
}

type fakeInvalidator struct {
	calls int
}

func (f *fakeInvalidator) InvalidateCache() { f.calls++ }

func TestScheduler_Reconcile(t *testing.T) {
	reports := &fakeSummarizer{summary: &report.Summary{
		Remaining:    map[string]int{"split": 3},
		TotalRevenue: decimal.NewFromInt(1000),
	}}
	inv := &fakeInvalidator{}

	s := scheduler.New("0 2 * * *", reports, inv, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Reconcile(context.Background())

	assert.Equal(t, 1, inv.calls)
}

func TestScheduler_Reconcile_KeepsCacheOnFailure(t *testing.T) {
	reports := &fakeSummarizer{err: errors.New("db down")}
	inv := &fakeInvalidator{}

	s := scheduler.New("0 2 * * *", reports, inv, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Reconcile(context.Background())

	assert.Zero(t, inv.calls)
}
