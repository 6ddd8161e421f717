package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/kmutua/metertrack/internal/report"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListStockTypes(ctx context.Context) ([]string, error) {
	return s.listStrings(ctx, `SELECT type FROM meters`)
}

func (s *Store) ListAgentInventoryTypes(ctx context.Context, agentID *uuid.UUID) ([]string, error) {
	if agentID == nil {
		return s.listStrings(ctx, `SELECT type FROM agent_inventory`)
	}

	return s.listStrings(ctx, `SELECT type FROM agent_inventory WHERE agent_id = $1`, *agentID)
}

func (s *Store) ListFaultStatuses(ctx context.Context) ([]string, error) {
	return s.listStrings(ctx, `SELECT status FROM faulty_returns`)
}

func (s *Store) ListSaleBatches(ctx context.Context, r report.DateRange) ([]report.BatchRow, error) {
	query := `
		SELECT meter_type, batch_amount, total_price, customer_type, customer_county, sale_date
		FROM sale_batches
		WHERE 1=1`

	var args []any

	argIdx := 1

	if r.From != nil {
		query += fmt.Sprintf(" AND sale_date >= $%d", argIdx)
		args = append(args, *r.From)
		argIdx++
	}

	if r.To != nil {
		query += fmt.Sprintf(" AND sale_date <= $%d", argIdx)
		args = append(args, *r.To)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sale batches: %w", err)
	}
	defer rows.Close()

	var batches []report.BatchRow

	for rows.Next() {
		var b report.BatchRow
		if err := rows.Scan(&b.MeterType, &b.BatchAmount, &b.TotalPrice, &b.CustomerType, &b.CustomerCounty, &b.SaleDate); err != nil {
			return nil, fmt.Errorf("scanning sale batch: %w", err)
		}

		batches = append(batches, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sale batches: %w", err)
	}

	return batches, nil
}

func (s *Store) listStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying: %w", err)
	}
	defer rows.Close()

	var values []string

	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning: %w", err)
		}

		values = append(values, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating: %w", err)
	}

	return values, nil
}
