package search_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmutua/metertrack/internal/meter"
	"github.com/kmutua/metertrack/internal/search"
)

type fakeRepo struct {
	stock  []search.Hit
	agent  []search.Hit
	sold   []search.Hit
	faulty []search.Hit

	gotQuery  search.Query
	faultyErr error
}

func (f *fakeRepo) SearchStock(_ context.Context, q search.Query, _ int) ([]search.Hit, error) {
	f.gotQuery = q
	return f.stock, nil
}

func (f *fakeRepo) SearchAgentInventory(_ context.Context, _ search.Query, _ int) ([]search.Hit, error) {
	return f.agent, nil
}

func (f *fakeRepo) SearchSold(_ context.Context, _ search.Query, _ int) ([]search.Hit, error) {
	return f.sold, nil
}

func (f *fakeRepo) SearchFaulty(_ context.Context, _ search.Query, _ int) ([]search.Hit, error) {
	return f.faulty, f.faultyErr
}

func TestService_Search_MergeOrder(t *testing.T) {
	repo := &fakeRepo{
		stock:  []search.Hit{{SerialNumber: "A100", Location: search.LocationStock}},
		agent:  []search.Hit{{SerialNumber: "A101", Location: search.LocationAgent}},
		sold:   []search.Hit{{SerialNumber: "A102", Location: search.LocationSold}},
		faulty: []search.Hit{{SerialNumber: "A103", Location: search.LocationFaulty}},
	}
	svc := search.NewService(repo, meter.MatchNormalized)

	hits, err := svc.Search(context.Background(), "A10")
	require.NoError(t, err)
	require.Len(t, hits, 4)

	// Lifecycle order regardless of which goroutine finished first.
	assert.Equal(t, search.LocationStock, hits[0].Location)
	assert.Equal(t, search.LocationAgent, hits[1].Location)
	assert.Equal(t, search.LocationSold, hits[2].Location)
	assert.Equal(t, search.LocationFaulty, hits[3].Location)
}

func TestService_Search_ReplacedSoldReclassified(t *testing.T) {
	repo := &fakeRepo{
		sold: []search.Hit{
			{
				SerialNumber: "A102",
				Location:     search.LocationSold,
				Sold:         &search.SoldDetail{Status: string(meter.SoldReplaced), ReplacementSerial: "R500"},
			},
			{
				SerialNumber: "A103",
				Location:     search.LocationSold,
				Sold:         &search.SoldDetail{Status: string(meter.SoldActive)},
			},
		},
	}
	svc := search.NewService(repo, meter.MatchNormalized)

	hits, err := svc.Search(context.Background(), "A10")
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, search.LocationReplaced, hits[0].Location)
	assert.Equal(t, search.LocationSold, hits[1].Location)
}

func TestService_Search_CanonicalQuery(t *testing.T) {
	repo := &fakeRepo{}
	svc := search.NewService(repo, meter.MatchNormalized)

	_, err := svc.Search(context.Background(), "  00a100 ")
	require.NoError(t, err)

	assert.Equal(t, "00a100", repo.gotQuery.Raw)
	assert.Equal(t, "A100", repo.gotQuery.Canonical)
}

func TestService_Search_EmptyQuery(t *testing.T) {
	svc := search.NewService(&fakeRepo{}, meter.MatchExact)

	_, err := svc.Search(context.Background(), "   ")
	assert.Error(t, err)
}

func TestService_Search_SourceErrorFailsWhole(t *testing.T) {
	repo := &fakeRepo{faultyErr: errors.New("timeout")}
	svc := search.NewService(repo, meter.MatchExact)

	_, err := svc.Search(context.Background(), "A100")
	assert.ErrorContains(t, err, "timeout")
}
