package meter_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kmutua/metertrack/internal/meter"
	"github.com/kmutua/metertrack/internal/user"
)

type engineMocks struct {
	repo  *meter.MockRepository
	tx    *meter.MockLifecycleTx
	users *meter.MockUserDirectory
}

func newEngine(t *testing.T) (*meter.Service, engineMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := engineMocks{
		repo:  meter.NewMockRepository(ctrl),
		tx:    meter.NewMockLifecycleTx(ctrl),
		users: meter.NewMockUserDirectory(ctrl),
	}

	return meter.NewService(m.repo, m.users, meter.MatchNormalized), m
}

var (
	actorID = uuid.New()
	agentID = uuid.New()
)

func expectActiveActor(m engineMocks) {
	m.users.EXPECT().
		Profile(gomock.Any(), actorID).
		Return(&user.Profile{ID: actorID, Name: "Jane Wanjiku", Active: true}, nil)
}

func TestService_AddMeters(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, m := newEngine(t)
		expectActiveActor(m)

		var inserted []meter.StockMeter

		m.repo.EXPECT().Begin(gomock.Any(), []string{"A100", "A101"}).Return(m.tx, nil)
		gomock.InOrder(
			m.tx.EXPECT().RecordOperation(gomock.Any(), gomock.Any(), "add_meters").Return(nil),
			m.tx.EXPECT().SerialLocations(gomock.Any(), []string{"A100", "A101"}).Return(nil, nil),
			m.tx.EXPECT().InsertStock(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, meters []meter.StockMeter) error {
					inserted = meters
					return nil
				}),
			m.tx.EXPECT().Commit().Return(nil),
		)
		m.tx.EXPECT().Rollback().Return(nil)

		err := svc.AddMeters(context.Background(), meter.AddMetersParams{
			ActorID:        actorID,
			IdempotencyKey: uuid.New(),
			Meters: []meter.NewMeter{
				{SerialNumber: "A100", Type: "split"},
				{SerialNumber: "A101", Type: "split"},
			},
		})
		require.NoError(t, err)

		require.Len(t, inserted, 2)
		assert.Equal(t, "A100", inserted[0].SerialNumber)
		assert.Equal(t, "Jane Wanjiku", inserted[0].AdderName)
		assert.Equal(t, actorID, inserted[0].AddedBy)
	})

	t.Run("DuplicateSerial", func(t *testing.T) {
		svc, m := newEngine(t)
		expectActiveActor(m)

		m.repo.EXPECT().Begin(gomock.Any(), gomock.Any()).Return(m.tx, nil)
		m.tx.EXPECT().RecordOperation(gomock.Any(), gomock.Any(), "add_meters").Return(nil)
		m.tx.EXPECT().SerialLocations(gomock.Any(), gomock.Any()).
			Return(map[string]meter.Location{"A100": meter.LocationSold}, nil)
		m.tx.EXPECT().Rollback().Return(nil)

		err := svc.AddMeters(context.Background(), meter.AddMetersParams{
			ActorID:        actorID,
			IdempotencyKey: uuid.New(),
			Meters:         []meter.NewMeter{{SerialNumber: "A100", Type: "split"}},
		})
		assert.ErrorIs(t, err, meter.ErrDuplicateSerial)
	})

	t.Run("DeactivatedAccount", func(t *testing.T) {
		svc, m := newEngine(t)
		m.users.EXPECT().
			Profile(gomock.Any(), actorID).
			Return(&user.Profile{ID: actorID, Name: "Jane Wanjiku", Active: false}, nil)

		err := svc.AddMeters(context.Background(), meter.AddMetersParams{
			ActorID:        actorID,
			IdempotencyKey: uuid.New(),
			Meters:         []meter.NewMeter{{SerialNumber: "A100", Type: "split"}},
		})
		assert.ErrorIs(t, err, meter.ErrAccountDeactivated)
	})

	t.Run("ReplayedKey", func(t *testing.T) {
		svc, m := newEngine(t)
		expectActiveActor(m)

		m.repo.EXPECT().Begin(gomock.Any(), gomock.Any()).Return(m.tx, nil)
		m.tx.EXPECT().RecordOperation(gomock.Any(), gomock.Any(), "add_meters").
			Return(meter.ErrDuplicateOperation)
		m.tx.EXPECT().Rollback().Return(nil)

		err := svc.AddMeters(context.Background(), meter.AddMetersParams{
			ActorID:        actorID,
			IdempotencyKey: uuid.New(),
			Meters:         []meter.NewMeter{{SerialNumber: "A100", Type: "split"}},
		})
		assert.ErrorIs(t, err, meter.ErrDuplicateOperation)
	})

	t.Run("EmptySerialRejected", func(t *testing.T) {
		svc, _ := newEngine(t)

		err := svc.AddMeters(context.Background(), meter.AddMetersParams{
			ActorID: actorID,
			Meters:  []meter.NewMeter{{SerialNumber: "  ", Type: "split"}},
		})

		var verr *meter.ValidationError

		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "serial_number", verr.Field)
	})

	t.Run("UnknownTypeRejected", func(t *testing.T) {
		svc, _ := newEngine(t)

		err := svc.AddMeters(context.Background(), meter.AddMetersParams{
			ActorID: actorID,
			Meters:  []meter.NewMeter{{SerialNumber: "A100", Type: "three-phase"}},
		})

		var verr *meter.ValidationError

		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "type", verr.Field)
	})

	t.Run("TypePaddingTrimmed", func(t *testing.T) {
		svc, m := newEngine(t)
		expectActiveActor(m)

		var inserted []meter.StockMeter

		m.repo.EXPECT().Begin(gomock.Any(), gomock.Any()).Return(m.tx, nil)
		m.tx.EXPECT().RecordOperation(gomock.Any(), gomock.Any(), "add_meters").Return(nil)
		m.tx.EXPECT().SerialLocations(gomock.Any(), gomock.Any()).Return(nil, nil)
		m.tx.EXPECT().InsertStock(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, meters []meter.StockMeter) error {
				inserted = meters
				return nil
			})
		m.tx.EXPECT().Commit().Return(nil)
		m.tx.EXPECT().Rollback().Return(nil)

		err := svc.AddMeters(context.Background(), meter.AddMetersParams{
			ActorID:        actorID,
			IdempotencyKey: uuid.New(),
			Meters:         []meter.NewMeter{{SerialNumber: "A100", Type: " split "}},
		})
		require.NoError(t, err)

		require.Len(t, inserted, 1)
		assert.Equal(t, meter.TypeSplit, inserted[0].Type)
	})
}

func TestService_AssignToAgent(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, m := newEngine(t)
		expectActiveActor(m)

		stock := []meter.StockMeter{
			{SerialNumber: "A100", Type: "split"},
			{SerialNumber: "A101", Type: "integrated"},
		}

		m.repo.EXPECT().Begin(gomock.Any(), []string{"A100", "A101"}).Return(m.tx, nil)
		gomock.InOrder(
			m.tx.EXPECT().RecordOperation(gomock.Any(), gomock.Any(), "assign_to_agent").Return(nil),
			m.tx.EXPECT().StockBySerials(gomock.Any(), []string{"A100", "A101"}).Return(stock, nil),
			m.tx.EXPECT().InsertAgentInventory(gomock.Any(), gomock.Any()).Return(nil),
			m.tx.EXPECT().DeleteStock(gomock.Any(), []string{"A100", "A101"}).Return(2, nil),
			m.tx.EXPECT().InsertAudit(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, a *meter.AgentAudit) error {
					assert.Equal(t, meter.AuditAssigned, a.Action)
					assert.Equal(t, agentID, a.AgentID)
					return nil
				}),
			m.tx.EXPECT().Commit().Return(nil),
		)
		m.tx.EXPECT().Rollback().Return(nil)

		entries, err := svc.AssignToAgent(context.Background(), meter.AssignParams{
			ActorID:        actorID,
			IdempotencyKey: uuid.New(),
			AgentID:        agentID,
			Serials:        []string{"A100", "A101"},
		})
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "split", entries[0].Type)
		assert.Equal(t, agentID, entries[0].AgentID)
	})

	t.Run("NotInStock", func(t *testing.T) {
		svc, m := newEngine(t)
		expectActiveActor(m)

		m.repo.EXPECT().Begin(gomock.Any(), gomock.Any()).Return(m.tx, nil)
		m.tx.EXPECT().RecordOperation(gomock.Any(), gomock.Any(), "assign_to_agent").Return(nil)
		m.tx.EXPECT().StockBySerials(gomock.Any(), gomock.Any()).
			Return([]meter.StockMeter{{SerialNumber: "A100", Type: "split"}}, nil)
		m.tx.EXPECT().Rollback().Return(nil)

		_, err := svc.AssignToAgent(context.Background(), meter.AssignParams{
			ActorID:        actorID,
			IdempotencyKey: uuid.New(),
			AgentID:        agentID,
			Serials:        []string{"A100", "A999"},
		})
		assert.ErrorIs(t, err, meter.ErrNotFound)
	})
}

func TestService_Sell(t *testing.T) {
	t.Run("FromStockGroupsByType", func(t *testing.T) {
		svc, m := newEngine(t)
		expectActiveActor(m)

		serials := []string{"A100", "A101", "B200"}
		stock := []meter.StockMeter{
			{SerialNumber: "A100", Type: "split"},
			{SerialNumber: "A101", Type: "split"},
			{SerialNumber: "B200", Type: "integrated"},
		}

		var batches []meter.SaleBatch

		var sold []meter.SoldMeter

		m.repo.EXPECT().Begin(gomock.Any(), serials).Return(m.tx, nil)
		m.tx.EXPECT().RecordOperation(gomock.Any(), gomock.Any(), "sell").Return(nil)
		m.tx.EXPECT().StockBySerials(gomock.Any(), serials).Return(stock, nil)
		m.tx.EXPECT().DeleteStock(gomock.Any(), serials).Return(3, nil)
		m.tx.EXPECT().InsertSalesTransaction(gomock.Any(), gomock.Any()).Return(nil)
		m.tx.EXPECT().InsertSaleBatch(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b *meter.SaleBatch) error {
				batches = append(batches, *b)
				return nil
			}).Times(2)
		m.tx.EXPECT().InsertSold(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, meters []meter.SoldMeter) error {
				sold = append(sold, meters...)
				return nil
			}).Times(2)
		m.tx.EXPECT().Commit().Return(nil)
		m.tx.EXPECT().Rollback().Return(nil)

		price := decimal.NewFromInt(1000)
		result, err := svc.Sell(context.Background(), meter.SellParams{
			ActorID:        actorID,
			IdempotencyKey: uuid.New(),
			Source:         meter.SaleFromStock,
			Details: meter.SaleDetails{
				Destination:    "Nakuru",
				Recipient:      "Mary Atieno",
				CustomerType:   "landlord",
				CustomerCounty: "Nakuru",
			},
			Items: []meter.SaleItem{
				{SerialNumber: "A100", Type: "split", UnitPrice: price},
				{SerialNumber: "A101", Type: "split", UnitPrice: price},
				{SerialNumber: "B200", Type: "integrated", UnitPrice: decimal.NewFromInt(2500)},
			},
		})
		require.NoError(t, err)

		require.Len(t, batches, 2)
		assert.Equal(t, "split", batches[0].MeterType)
		assert.Equal(t, 2, batches[0].BatchAmount)
		assert.True(t, batches[0].TotalPrice.Equal(decimal.NewFromInt(2000)))
		assert.Equal(t, "integrated", batches[1].MeterType)
		assert.Equal(t, 1, batches[1].BatchAmount)
		assert.True(t, batches[1].TotalPrice.Equal(decimal.NewFromInt(2500)))

		require.Len(t, sold, 3)

		for _, sm := range sold {
			assert.Equal(t, meter.SoldActive, sm.Status)
		}

		assert.Contains(t, result.Transaction.ReferenceNumber, "ST-")
		assert.Equal(t, result.Transaction.ID, batches[0].TransactionID)
	})

	t.Run("FromAgentMissingSerial", func(t *testing.T) {
		svc, m := newEngine(t)
		expectActiveActor(m)

		m.repo.EXPECT().Begin(gomock.Any(), gomock.Any()).Return(m.tx, nil)
		m.tx.EXPECT().RecordOperation(gomock.Any(), gomock.Any(), "sell").Return(nil)
		m.tx.EXPECT().AgentEntriesBySerials(gomock.Any(), agentID, []string{"A100"}).Return(nil, nil)
		m.tx.EXPECT().Rollback().Return(nil)

		_, err := svc.Sell(context.Background(), meter.SellParams{
			ActorID:        actorID,
			IdempotencyKey: uuid.New(),
			Source:         meter.SaleFromAgent,
			AgentID:        agentID,
			Items: []meter.SaleItem{
				{SerialNumber: "A100", Type: "split", UnitPrice: decimal.NewFromInt(1000)},
			},
		})
		assert.ErrorIs(t, err, meter.ErrNotFound)
	})

	t.Run("ZeroPriceRejected", func(t *testing.T) {
		svc, _ := newEngine(t)

		_, err := svc.Sell(context.Background(), meter.SellParams{
			ActorID: actorID,
			Source:  meter.SaleFromStock,
			Items:   []meter.SaleItem{{SerialNumber: "A100", Type: "split"}},
		})

		var verr *meter.ValidationError

		assert.ErrorAs(t, err, &verr)
	})

	t.Run("MixedPricesForOneTypeRejected", func(t *testing.T) {
		svc, _ := newEngine(t)

		// A batch carries one unit price; selling the same type at two
		// prices would make the batch total contradict the sold rows.
		_, err := svc.Sell(context.Background(), meter.SellParams{
			ActorID: actorID,
			Source:  meter.SaleFromStock,
			Items: []meter.SaleItem{
				{SerialNumber: "A100", Type: "split", UnitPrice: decimal.NewFromInt(1000)},
				{SerialNumber: "A101", Type: "split", UnitPrice: decimal.NewFromInt(2000)},
				{SerialNumber: "B200", Type: "integrated", UnitPrice: decimal.NewFromInt(2500)},
			},
		})

		var verr *meter.ValidationError

		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "unit_price", verr.Field)
	})
}

func TestService_ReturnFromAgent_RestoresAttribution(t *testing.T) {
	svc, m := newEngine(t)
	expectActiveActor(m)

	entries := []meter.AgentInventoryEntry{
		{SerialNumber: "A100", Type: "split", AgentID: agentID},
	}

	var restored []meter.StockMeter

	m.repo.EXPECT().Begin(gomock.Any(), []string{"A100"}).Return(m.tx, nil)
	gomock.InOrder(
		m.tx.EXPECT().RecordOperation(gomock.Any(), gomock.Any(), "return_from_agent").Return(nil),
		m.tx.EXPECT().AgentEntriesBySerials(gomock.Any(), agentID, []string{"A100"}).Return(entries, nil),
		m.tx.EXPECT().InsertStock(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, meters []meter.StockMeter) error {
				restored = meters
				return nil
			}),
		m.tx.EXPECT().DeleteAgentInventory(gomock.Any(), agentID, []string{"A100"}).Return(1, nil),
		m.tx.EXPECT().InsertAudit(gomock.Any(), gomock.Any()).Return(nil),
		m.tx.EXPECT().Commit().Return(nil),
	)
	m.tx.EXPECT().Rollback().Return(nil)

	err := svc.ReturnFromAgent(context.Background(), meter.ReturnFromAgentParams{
		ActorID:        actorID,
		IdempotencyKey: uuid.New(),
		AgentID:        agentID,
		Serials:        []string{"A100"},
	})
	require.NoError(t, err)

	// Round-trip: the stock row is identical to the pre-assign one apart
	// from the returner's attribution.
	require.Len(t, restored, 1)
	assert.Equal(t, "A100", restored[0].SerialNumber)
	assert.Equal(t, "split", restored[0].Type)
	assert.Equal(t, actorID, restored[0].AddedBy)
	assert.Equal(t, "Jane Wanjiku", restored[0].AdderName)
}

func TestService_ReturnSold(t *testing.T) {
	batchID := uuid.New()
	soldRow := meter.SoldMeter{
		SerialNumber: "A100",
		MeterType:    "split",
		BatchID:      batchID,
		Status:       meter.SoldActive,
		UnitPrice:    decimal.NewFromInt(1000),
	}

	t.Run("HealthyBackToStock", func(t *testing.T) {
		svc, m := newEngine(t)
		expectActiveActor(m)

		m.repo.EXPECT().Begin(gomock.Any(), []string{"A100"}).Return(m.tx, nil)
		gomock.InOrder(
			m.tx.EXPECT().RecordOperation(gomock.Any(), gomock.Any(), "return_sold").Return(nil),
			m.tx.EXPECT().SoldBySerials(gomock.Any(), []string{"A100"}).Return([]meter.SoldMeter{soldRow}, nil),
			m.tx.EXPECT().InsertStock(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, meters []meter.StockMeter) error {
					require.Len(t, meters, 1)
					assert.Equal(t, "split", meters[0].Type)
					return nil
				}),
			m.tx.EXPECT().DeleteSold(gomock.Any(), "A100").Return(nil),
			m.tx.EXPECT().Commit().Return(nil),
		)
		m.tx.EXPECT().Rollback().Return(nil)

		err := svc.ReturnSold(context.Background(), meter.ReturnSoldParams{
			ActorID:        actorID,
			IdempotencyKey: uuid.New(),
			Returns:        []meter.SoldReturn{{SerialNumber: "A100"}},
		})
		require.NoError(t, err)
	})

	t.Run("FaultyWithoutReplacement", func(t *testing.T) {
		svc, m := newEngine(t)
		expectActiveActor(m)

		m.repo.EXPECT().Begin(gomock.Any(), []string{"A100"}).Return(m.tx, nil)
		gomock.InOrder(
			m.tx.EXPECT().RecordOperation(gomock.Any(), gomock.Any(), "return_sold").Return(nil),
			m.tx.EXPECT().SoldBySerials(gomock.Any(), []string{"A100"}).Return([]meter.SoldMeter{soldRow}, nil),
			m.tx.EXPECT().InsertFaultyReturn(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, fr *meter.FaultyReturn) error {
					assert.Equal(t, meter.FaultPending, fr.Status)
					assert.Equal(t, batchID, fr.OriginalSaleID)
					assert.Equal(t, "display dead", fr.FaultDescription)
					return nil
				}),
			m.tx.EXPECT().MarkSoldFaulty(gomock.Any(), "A100").Return(nil),
			m.tx.EXPECT().Commit().Return(nil),
		)
		m.tx.EXPECT().Rollback().Return(nil)

		err := svc.ReturnSold(context.Background(), meter.ReturnSoldParams{
			ActorID:        actorID,
			IdempotencyKey: uuid.New(),
			Returns: []meter.SoldReturn{
				{SerialNumber: "A100", Faulty: true, FaultDescription: "display dead"},
			},
		})
		require.NoError(t, err)
	})

	t.Run("FaultyWithReplacement", func(t *testing.T) {
		svc, m := newEngine(t)
		expectActiveActor(m)

		m.repo.EXPECT().Begin(gomock.Any(), []string{"A100", "R500"}).Return(m.tx, nil)
		gomock.InOrder(
			m.tx.EXPECT().RecordOperation(gomock.Any(), gomock.Any(), "return_sold").Return(nil),
			m.tx.EXPECT().SoldBySerials(gomock.Any(), []string{"A100"}).Return([]meter.SoldMeter{soldRow}, nil),
			m.tx.EXPECT().InsertFaultyReturn(gomock.Any(), gomock.Any()).Return(nil),
			m.tx.EXPECT().StockBySerials(gomock.Any(), []string{"R500"}).
				Return([]meter.StockMeter{{SerialNumber: "R500", Type: "split"}}, nil),
			m.tx.EXPECT().DeleteStock(gomock.Any(), []string{"R500"}).Return(1, nil),
			m.tx.EXPECT().MarkSoldReplaced(gomock.Any(), "A100", "R500", actorID, gomock.Any()).Return(nil),
			m.tx.EXPECT().Commit().Return(nil),
		)
		m.tx.EXPECT().Rollback().Return(nil)

		err := svc.ReturnSold(context.Background(), meter.ReturnSoldParams{
			ActorID:        actorID,
			IdempotencyKey: uuid.New(),
			Returns: []meter.SoldReturn{
				{SerialNumber: "A100", Faulty: true, FaultDescription: "burnt", ReplacementSerial: "R500"},
			},
		})
		require.NoError(t, err)
	})

	t.Run("ReplacementNotInStock", func(t *testing.T) {
		svc, m := newEngine(t)
		expectActiveActor(m)

		m.repo.EXPECT().Begin(gomock.Any(), gomock.Any()).Return(m.tx, nil)
		m.tx.EXPECT().RecordOperation(gomock.Any(), gomock.Any(), "return_sold").Return(nil)
		m.tx.EXPECT().SoldBySerials(gomock.Any(), gomock.Any()).Return([]meter.SoldMeter{soldRow}, nil)
		m.tx.EXPECT().InsertFaultyReturn(gomock.Any(), gomock.Any()).Return(nil)
		m.tx.EXPECT().StockBySerials(gomock.Any(), []string{"R500"}).Return(nil, nil)
		m.tx.EXPECT().Rollback().Return(nil)

		err := svc.ReturnSold(context.Background(), meter.ReturnSoldParams{
			ActorID:        actorID,
			IdempotencyKey: uuid.New(),
			Returns: []meter.SoldReturn{
				{SerialNumber: "A100", Faulty: true, ReplacementSerial: "R500"},
			},
		})
		assert.ErrorIs(t, err, meter.ErrNotFound)
	})
}

func TestService_ResolveFault(t *testing.T) {
	faultID := uuid.New()
	fr := &meter.FaultyReturn{
		ID:           faultID,
		SerialNumber: "A100",
		Type:         "split",
		Status:       meter.FaultPending,
	}

	t.Run("RepairedReEntersStock", func(t *testing.T) {
		svc, m := newEngine(t)
		expectActiveActor(m)

		m.repo.EXPECT().GetFaultyReturn(gomock.Any(), faultID).Return(fr, nil)
		m.repo.EXPECT().Begin(gomock.Any(), []string{"A100"}).Return(m.tx, nil)
		gomock.InOrder(
			m.tx.EXPECT().RecordOperation(gomock.Any(), gomock.Any(), "resolve_fault").Return(nil),
			m.tx.EXPECT().InsertStock(gomock.Any(), gomock.Any()).Return(nil),
			m.tx.EXPECT().DeleteFaultyReturn(gomock.Any(), faultID).Return(nil),
			m.tx.EXPECT().Commit().Return(nil),
		)
		m.tx.EXPECT().Rollback().Return(nil)

		err := svc.ResolveFault(context.Background(), meter.ResolveFaultParams{
			ActorID:        actorID,
			IdempotencyKey: uuid.New(),
			FaultID:        faultID,
			Outcome:        meter.FaultRepaired,
		})
		require.NoError(t, err)
	})

	t.Run("UnrepairableOnlyUpdatesStatus", func(t *testing.T) {
		svc, m := newEngine(t)
		expectActiveActor(m)

		m.repo.EXPECT().GetFaultyReturn(gomock.Any(), faultID).Return(fr, nil)
		m.repo.EXPECT().Begin(gomock.Any(), []string{"A100"}).Return(m.tx, nil)
		gomock.InOrder(
			m.tx.EXPECT().RecordOperation(gomock.Any(), gomock.Any(), "resolve_fault").Return(nil),
			m.tx.EXPECT().SetFaultStatus(gomock.Any(), faultID, meter.FaultUnrepairable).Return(nil),
			m.tx.EXPECT().Commit().Return(nil),
		)
		m.tx.EXPECT().Rollback().Return(nil)

		err := svc.ResolveFault(context.Background(), meter.ResolveFaultParams{
			ActorID:        actorID,
			IdempotencyKey: uuid.New(),
			FaultID:        faultID,
			Outcome:        meter.FaultUnrepairable,
		})
		require.NoError(t, err)
	})

	t.Run("UnknownOutcomeRejected", func(t *testing.T) {
		svc, _ := newEngine(t)

		err := svc.ResolveFault(context.Background(), meter.ResolveFaultParams{
			ActorID: actorID,
			FaultID: faultID,
			Outcome: meter.FaultStatus("scrapped"),
		})

		var verr *meter.ValidationError

		assert.ErrorAs(t, err, &verr)
	})
}

func TestService_DeleteAgent(t *testing.T) {
	t.Run("RestoresScannedWritesOffUnscanned", func(t *testing.T) {
		svc, m := newEngine(t)
		expectActiveActor(m)

		scanned := []string{"A100"}
		unscanned := []string{"B200"}

		m.repo.EXPECT().Begin(gomock.Any(), []string{"A100", "B200"}).Return(m.tx, nil)
		m.tx.EXPECT().RecordOperation(gomock.Any(), gomock.Any(), "delete_agent").Return(nil)
		m.tx.EXPECT().AgentEntriesBySerials(gomock.Any(), agentID, scanned).
			Return([]meter.AgentInventoryEntry{{SerialNumber: "A100", Type: "split", AgentID: agentID}}, nil)
		m.tx.EXPECT().InsertStock(gomock.Any(), gomock.Any()).Return(nil)
		m.tx.EXPECT().DeleteAgentInventory(gomock.Any(), agentID, scanned).Return(1, nil)
		m.tx.EXPECT().DeleteAgentInventory(gomock.Any(), agentID, unscanned).Return(1, nil)
		m.tx.EXPECT().InsertAudit(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, a *meter.AgentAudit) error {
				assert.Equal(t, meter.AuditWrittenOff, a.Action)
				return nil
			})
		m.tx.EXPECT().AgentInventorySerials(gomock.Any(), agentID).Return(nil, nil)
		m.tx.EXPECT().DeleteAgentAudit(gomock.Any(), agentID).Return(nil)
		m.tx.EXPECT().DeleteAgentRecord(gomock.Any(), agentID).Return(nil)
		m.tx.EXPECT().Commit().Return(nil)
		m.tx.EXPECT().Rollback().Return(nil)

		result, err := svc.DeleteAgent(context.Background(), meter.DeleteAgentParams{
			ActorID:        actorID,
			IdempotencyKey: uuid.New(),
			AgentID:        agentID,
			ScannedSerials: scanned,
			Unscanned:      unscanned,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Restored)
		assert.Equal(t, 1, result.WrittenOff)
	})

	t.Run("UnaccountedSerialsRejected", func(t *testing.T) {
		svc, m := newEngine(t)
		expectActiveActor(m)

		unscanned := []string{"B200"}

		m.repo.EXPECT().Begin(gomock.Any(), unscanned).Return(m.tx, nil)
		m.tx.EXPECT().RecordOperation(gomock.Any(), gomock.Any(), "delete_agent").Return(nil)
		m.tx.EXPECT().DeleteAgentInventory(gomock.Any(), agentID, unscanned).Return(1, nil)
		m.tx.EXPECT().InsertAudit(gomock.Any(), gomock.Any()).Return(nil)
		m.tx.EXPECT().AgentInventorySerials(gomock.Any(), agentID).Return([]string{"C300"}, nil)
		m.tx.EXPECT().Rollback().Return(nil)

		_, err := svc.DeleteAgent(context.Background(), meter.DeleteAgentParams{
			ActorID:        actorID,
			IdempotencyKey: uuid.New(),
			AgentID:        agentID,
			Unscanned:      unscanned,
		})

		var verr *meter.ValidationError

		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Reason, "C300")
	})
}

func TestService_CheckMeterExists(t *testing.T) {
	svc, m := newEngine(t)

	m.repo.EXPECT().ListStockSerials(gomock.Any()).Return([]string{"A100"}, nil)

	ok, err := svc.CheckMeterExists(context.Background(), "a100")
	require.NoError(t, err)
	assert.True(t, ok, "existence check is format-insensitive under normalized matching")
}

func TestService_BeginFailurePropagates(t *testing.T) {
	svc, m := newEngine(t)
	expectActiveActor(m)

	m.repo.EXPECT().Begin(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	err := svc.ReturnFromAgent(context.Background(), meter.ReturnFromAgentParams{
		ActorID:        actorID,
		IdempotencyKey: uuid.New(),
		AgentID:        agentID,
		Serials:        []string{"A100"},
	})
	assert.Error(t, err)
}

func TestReceipt(t *testing.T) {
	sale := &meter.SaleResult{
		Transaction: meter.SalesTransaction{
			ReferenceNumber: "ST-20260115-ABCD1234",
			CreatedAt:       time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
		},
		Batches: []meter.SaleBatch{
			{
				MeterType:      "split",
				BatchAmount:    2,
				UnitPrice:      decimal.NewFromInt(1000),
				TotalPrice:     decimal.NewFromInt(2000),
				UserName:       "Jane Wanjiku",
				Recipient:      "Mary Atieno",
				CustomerType:   "landlord",
				CustomerCounty: "Nakuru",
			},
		},
	}

	receipt := meter.Receipt(sale)
	assert.Contains(t, receipt, "ST-20260115-ABCD1234")
	assert.Contains(t, receipt, "split x2 @ 1000.00 = 2000.00")
	assert.Contains(t, receipt, "Total: KES 2000.00")
	assert.Contains(t, receipt, "Mary Atieno")
}
