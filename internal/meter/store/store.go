package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kmutua/metertrack/internal/meter"
)

// Store implements the lifecycle repository over the five lifecycle tables.
// Every row carries a serial_key column holding the canonical form of its
// serial under the configured match mode, so lookups by scanned text hit an
// index instead of normalizing in SQL.
type Store struct {
	db   *sql.DB
	mode meter.MatchMode
}

func New(db *sql.DB, mode meter.MatchMode) *Store {
	return &Store{db: db, mode: mode}
}

func (s *Store) key(serial string) string {
	return meter.Canonical(s.mode, serial)
}

func (s *Store) keys(serials []string) []string {
	out := make([]string, len(serials))
	for i, serial := range serials {
		out[i] = s.key(serial)
	}

	return out
}

// inClause builds "$start, $start+1, ..." placeholders alongside their args.
func inClause(values []string, start int) (string, []any) {
	placeholders := make([]string, len(values))
	args := make([]any, len(values))

	for i, v := range values {
		placeholders[i] = fmt.Sprintf("$%d", start+i)
		args[i] = v
	}

	return strings.Join(placeholders, ", "), args
}

func (s *Store) ListStockSerials(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT serial_number FROM meters`)
	if err != nil {
		return nil, fmt.Errorf("listing stock serials: %w", err)
	}
	defer rows.Close()

	var serials []string

	for rows.Next() {
		var serial string
		if err := rows.Scan(&serial); err != nil {
			return nil, fmt.Errorf("scanning serial: %w", err)
		}

		serials = append(serials, serial)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating serial rows: %w", err)
	}

	return serials, nil
}

func (s *Store) GetAgentInventory(ctx context.Context, agentID uuid.UUID) ([]meter.AgentInventoryEntry, error) {
	query := `
		SELECT serial_number, type, agent_id, assigned_at
		FROM agent_inventory
		WHERE agent_id = $1
		ORDER BY assigned_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, agentID)
	if err != nil {
		return nil, fmt.Errorf("listing agent inventory: %w", err)
	}
	defer rows.Close()

	return scanAgentEntries(rows)
}

func (s *Store) GetFaultyReturn(ctx context.Context, id uuid.UUID) (*meter.FaultyReturn, error) {
	query := `
		SELECT id, serial_number, type, returned_by, returner_name, returned_at,
		       fault_description, status, original_sale_id
		FROM faulty_returns
		WHERE id = $1
	`

	var fr meter.FaultyReturn

	var status string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&fr.ID, &fr.SerialNumber, &fr.Type, &fr.ReturnedBy, &fr.ReturnerName,
		&fr.ReturnedAt, &fr.FaultDescription, &status, &fr.OriginalSaleID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, meter.ErrNotFound
		}

		return nil, fmt.Errorf("getting faulty return: %w", err)
	}

	fr.Status = meter.FaultStatus(status)

	return &fr, nil
}

// lockKey derives the advisory lock key for one canonical serial.
func lockKey(serialKey string) int64 {
	h := fnv.New64a()
	h.Write([]byte("meter:"))
	h.Write([]byte(serialKey))

	return int64(h.Sum64())
}

// Begin opens a transaction and takes a pg_advisory_xact_lock per serial,
// in sorted key order so two operations over overlapping serial sets cannot
// deadlock against each other.
func (s *Store) Begin(ctx context.Context, serials []string) (meter.LifecycleTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning lifecycle tx: %w", err)
	}

	keySet := make(map[string]struct{}, len(serials))
	for _, serial := range serials {
		keySet[s.key(serial)] = struct{}{}
	}

	ordered := make([]string, 0, len(keySet))
	for k := range keySet {
		ordered = append(ordered, k)
	}

	sort.Strings(ordered)

	for _, k := range ordered {
		if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey(k)); err != nil {
			dbTx.Rollback()
			return nil, fmt.Errorf("acquiring serial lock: %w", err)
		}
	}

	return &lifecycleTx{tx: dbTx, store: s}, nil
}

type lifecycleTx struct {
	tx    *sql.Tx
	store *Store
}

func (t *lifecycleTx) Commit() error   { return t.tx.Commit() }
func (t *lifecycleTx) Rollback() error { return t.tx.Rollback() }

func (t *lifecycleTx) RecordOperation(ctx context.Context, key uuid.UUID, op string) error {
	query := `
		INSERT INTO operation_log (idempotency_key, operation, recorded_at)
		VALUES ($1, $2, NOW())
	`

	_, err := t.tx.ExecContext(ctx, query, key, op)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return meter.ErrDuplicateOperation
		}

		return fmt.Errorf("recording operation: %w", err)
	}

	return nil
}

// SerialLocations reports where each serial currently lives, scanning all
// four occupancy tables. Replaced sold rows no longer hold their serial and
// are excluded.
func (t *lifecycleTx) SerialLocations(ctx context.Context, serials []string) (map[string]meter.Location, error) {
	if len(serials) == 0 {
		return map[string]meter.Location{}, nil
	}

	keys := t.store.keys(serials)
	in, args := inClause(keys, 1)

	query := `
		SELECT serial_key, 'stock' FROM meters WHERE serial_key IN (` + in + `)
		UNION ALL
		SELECT serial_key, 'agent_inventory' FROM agent_inventory WHERE serial_key IN (` + in + `)
		UNION ALL
		SELECT serial_key, 'sold' FROM sold_meters WHERE status IN ('active', 'faulty') AND serial_key IN (` + in + `)
		UNION ALL
		SELECT serial_key, 'faulty_return' FROM faulty_returns WHERE status <> 'repaired' AND serial_key IN (` + in + `)
	`

	rows, err := t.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying serial locations: %w", err)
	}
	defer rows.Close()

	locations := make(map[string]meter.Location)

	for rows.Next() {
		var key, loc string
		if err := rows.Scan(&key, &loc); err != nil {
			return nil, fmt.Errorf("scanning location: %w", err)
		}

		if _, ok := locations[key]; !ok {
			locations[key] = meter.Location(loc)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating location rows: %w", err)
	}

	return locations, nil
}

func (t *lifecycleTx) StockBySerials(ctx context.Context, serials []string) ([]meter.StockMeter, error) {
	if len(serials) == 0 {
		return nil, nil
	}

	in, args := inClause(t.store.keys(serials), 1)
	query := `
		SELECT serial_number, type, added_by, adder_name, added_at, batch_id
		FROM meters
		WHERE serial_key IN (` + in + `)`

	rows, err := t.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching stock: %w", err)
	}
	defer rows.Close()

	var meters []meter.StockMeter

	for rows.Next() {
		var m meter.StockMeter
		if err := rows.Scan(&m.SerialNumber, &m.Type, &m.AddedBy, &m.AdderName, &m.AddedAt, &m.BatchID); err != nil {
			return nil, fmt.Errorf("scanning stock meter: %w", err)
		}

		meters = append(meters, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stock rows: %w", err)
	}

	return meters, nil
}

func (t *lifecycleTx) InsertStock(ctx context.Context, meters []meter.StockMeter) error {
	query := `
		INSERT INTO meters (serial_number, serial_key, type, added_by, adder_name, added_at, batch_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, m := range meters {
		_, err := t.tx.ExecContext(ctx, query,
			m.SerialNumber, t.store.key(m.SerialNumber), m.Type,
			m.AddedBy, m.AdderName, m.AddedAt, m.BatchID,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("serial %s: %w", m.SerialNumber, meter.ErrDuplicateSerial)
			}

			return fmt.Errorf("inserting stock meter %s: %w", m.SerialNumber, err)
		}
	}

	return nil
}

func (t *lifecycleTx) DeleteStock(ctx context.Context, serials []string) (int, error) {
	if len(serials) == 0 {
		return 0, nil
	}

	in, args := inClause(t.store.keys(serials), 1)

	res, err := t.tx.ExecContext(ctx, `DELETE FROM meters WHERE serial_key IN (`+in+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("deleting stock: %w", err)
	}

	n, _ := res.RowsAffected()

	return int(n), nil
}

func (t *lifecycleTx) AgentEntriesBySerials(ctx context.Context, agentID uuid.UUID, serials []string) ([]meter.AgentInventoryEntry, error) {
	if len(serials) == 0 {
		return nil, nil
	}

	in, args := inClause(t.store.keys(serials), 2)
	query := `
		SELECT serial_number, type, agent_id, assigned_at
		FROM agent_inventory
		WHERE agent_id = $1 AND serial_key IN (` + in + `)`

	rows, err := t.tx.QueryContext(ctx, query, append([]any{agentID}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("fetching agent entries: %w", err)
	}
	defer rows.Close()

	return scanAgentEntries(rows)
}

func (t *lifecycleTx) AgentInventorySerials(ctx context.Context, agentID uuid.UUID) ([]string, error) {
	query := `SELECT serial_number FROM agent_inventory WHERE agent_id = $1 ORDER BY serial_number`

	rows, err := t.tx.QueryContext(ctx, query, agentID)
	if err != nil {
		return nil, fmt.Errorf("listing agent inventory: %w", err)
	}
	defer rows.Close()

	var serials []string

	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scanning inventory serial: %w", err)
		}

		serials = append(serials, s)
	}

	return serials, rows.Err()
}

func (t *lifecycleTx) InsertAgentInventory(ctx context.Context, entries []meter.AgentInventoryEntry) error {
	query := `
		INSERT INTO agent_inventory (serial_number, serial_key, type, agent_id, assigned_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, e := range entries {
		_, err := t.tx.ExecContext(ctx, query,
			e.SerialNumber, t.store.key(e.SerialNumber), e.Type, e.AgentID, e.AssignedAt,
		)
		if err != nil {
			return fmt.Errorf("inserting agent entry %s: %w", e.SerialNumber, err)
		}
	}

	return nil
}

func (t *lifecycleTx) DeleteAgentInventory(ctx context.Context, agentID uuid.UUID, serials []string) (int, error) {
	if len(serials) == 0 {
		return 0, nil
	}

	in, args := inClause(t.store.keys(serials), 2)
	query := `DELETE FROM agent_inventory WHERE agent_id = $1 AND serial_key IN (` + in + `)`

	res, err := t.tx.ExecContext(ctx, query, append([]any{agentID}, args...)...)
	if err != nil {
		return 0, fmt.Errorf("deleting agent inventory: %w", err)
	}

	n, _ := res.RowsAffected()

	return int(n), nil
}

const soldColumns = `
	s.serial_number, b.meter_type, s.sold_at, s.sold_by, s.destination, s.recipient,
	s.customer_contact, s.customer_type, s.customer_county, s.unit_price, s.batch_id,
	s.status, s.replacement_serial, s.replacement_date, s.replacement_by
`

func (t *lifecycleTx) SoldBySerials(ctx context.Context, serials []string) ([]meter.SoldMeter, error) {
	if len(serials) == 0 {
		return nil, nil
	}

	in, args := inClause(t.store.keys(serials), 1)
	query := `SELECT ` + soldColumns + `
		FROM sold_meters s
		JOIN sale_batches b ON s.batch_id = b.id
		WHERE s.serial_key IN (` + in + `)`

	rows, err := t.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching sold meters: %w", err)
	}
	defer rows.Close()

	var sold []meter.SoldMeter

	for rows.Next() {
		sm, err := scanSoldMeter(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning sold meter: %w", err)
		}

		sold = append(sold, *sm)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sold rows: %w", err)
	}

	return sold, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSoldMeter(sc scanner) (*meter.SoldMeter, error) {
	var sm meter.SoldMeter

	var status string

	var replacementSerial sql.NullString

	var replacementDate sql.NullTime

	if err := sc.Scan(
		&sm.SerialNumber, &sm.MeterType, &sm.SoldAt, &sm.SoldBy, &sm.Destination, &sm.Recipient,
		&sm.CustomerContact, &sm.CustomerType, &sm.CustomerCounty, &sm.UnitPrice, &sm.BatchID,
		&status, &replacementSerial, &replacementDate, &sm.ReplacementBy,
	); err != nil {
		return nil, err
	}

	sm.Status = meter.SoldStatus(status)

	if replacementSerial.Valid {
		sm.ReplacementSerial = &replacementSerial.String
	}

	if replacementDate.Valid {
		sm.ReplacementDate = &replacementDate.Time
	}

	return &sm, nil
}

func (t *lifecycleTx) InsertSold(ctx context.Context, meters []meter.SoldMeter) error {
	query := `
		INSERT INTO sold_meters (serial_number, serial_key, sold_at, sold_by, destination,
			recipient, customer_contact, customer_type, customer_county, unit_price, batch_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	for _, sm := range meters {
		_, err := t.tx.ExecContext(ctx, query,
			sm.SerialNumber, t.store.key(sm.SerialNumber), sm.SoldAt, sm.SoldBy,
			sm.Destination, sm.Recipient, sm.CustomerContact, sm.CustomerType,
			sm.CustomerCounty, sm.UnitPrice, sm.BatchID, sm.Status,
		)
		if err != nil {
			return fmt.Errorf("inserting sold meter %s: %w", sm.SerialNumber, err)
		}
	}

	return nil
}

func (t *lifecycleTx) DeleteSold(ctx context.Context, serial string) error {
	_, err := t.tx.ExecContext(ctx, `DELETE FROM sold_meters WHERE serial_key = $1`, t.store.key(serial))
	if err != nil {
		return fmt.Errorf("deleting sold meter: %w", err)
	}

	return nil
}

func (t *lifecycleTx) MarkSoldFaulty(ctx context.Context, serial string) error {
	query := `UPDATE sold_meters SET status = 'faulty' WHERE serial_key = $1`

	res, err := t.tx.ExecContext(ctx, query, t.store.key(serial))
	if err != nil {
		return fmt.Errorf("marking sold faulty: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return meter.ErrNotFound
	}

	return nil
}

func (t *lifecycleTx) MarkSoldReplaced(ctx context.Context, serial, replacementSerial string, by uuid.UUID, at time.Time) error {
	query := `
		UPDATE sold_meters
		SET status = 'replaced', replacement_serial = $1, replacement_date = $2, replacement_by = $3
		WHERE serial_key = $4
	`

	res, err := t.tx.ExecContext(ctx, query, replacementSerial, at, by, t.store.key(serial))
	if err != nil {
		return fmt.Errorf("marking sold replaced: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return meter.ErrNotFound
	}

	return nil
}

func (t *lifecycleTx) InsertFaultyReturn(ctx context.Context, fr *meter.FaultyReturn) error {
	query := `
		INSERT INTO faulty_returns (id, serial_number, serial_key, type, returned_by,
			returner_name, returned_at, fault_description, status, original_sale_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := t.tx.ExecContext(ctx, query,
		fr.ID, fr.SerialNumber, t.store.key(fr.SerialNumber), fr.Type, fr.ReturnedBy,
		fr.ReturnerName, fr.ReturnedAt, fr.FaultDescription, fr.Status, fr.OriginalSaleID,
	)
	if err != nil {
		return fmt.Errorf("inserting faulty return: %w", err)
	}

	return nil
}

func (t *lifecycleTx) DeleteFaultyReturn(ctx context.Context, id uuid.UUID) error {
	_, err := t.tx.ExecContext(ctx, `DELETE FROM faulty_returns WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting faulty return: %w", err)
	}

	return nil
}

func (t *lifecycleTx) SetFaultStatus(ctx context.Context, id uuid.UUID, status meter.FaultStatus) error {
	res, err := t.tx.ExecContext(ctx, `UPDATE faulty_returns SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("updating fault status: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return meter.ErrNotFound
	}

	return nil
}

func (t *lifecycleTx) InsertSalesTransaction(ctx context.Context, st *meter.SalesTransaction) error {
	query := `
		INSERT INTO sales_transactions (id, reference_number, created_by, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := t.tx.ExecContext(ctx, query, st.ID, st.ReferenceNumber, st.CreatedBy, st.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting sales transaction: %w", err)
	}

	return nil
}

func (t *lifecycleTx) InsertSaleBatch(ctx context.Context, b *meter.SaleBatch) error {
	query := `
		INSERT INTO sale_batches (id, transaction_id, meter_type, batch_amount, unit_price,
			total_price, user_id, user_name, destination, recipient, customer_type,
			customer_county, customer_contact, sale_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := t.tx.ExecContext(ctx, query,
		b.ID, b.TransactionID, b.MeterType, b.BatchAmount, b.UnitPrice, b.TotalPrice,
		b.UserID, b.UserName, b.Destination, b.Recipient, b.CustomerType,
		b.CustomerCounty, b.CustomerContact, b.SaleDate,
	)
	if err != nil {
		return fmt.Errorf("inserting sale batch: %w", err)
	}

	return nil
}

func (t *lifecycleTx) InsertAudit(ctx context.Context, a *meter.AgentAudit) error {
	query := `
		INSERT INTO agent_transactions (id, agent_id, action, serials, actor_id, actor_name, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := t.tx.ExecContext(ctx, query,
		a.ID, a.AgentID, a.Action, strings.Join(a.Serials, ","), a.ActorID, a.ActorName, a.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting audit row: %w", err)
	}

	return nil
}

func (t *lifecycleTx) DeleteAgentRecord(ctx context.Context, agentID uuid.UUID) error {
	_, err := t.tx.ExecContext(ctx, `DELETE FROM agents WHERE id = $1`, agentID)
	if err != nil {
		return fmt.Errorf("deleting agent record: %w", err)
	}

	return nil
}

func (t *lifecycleTx) DeleteAgentAudit(ctx context.Context, agentID uuid.UUID) error {
	_, err := t.tx.ExecContext(ctx, `DELETE FROM agent_transactions WHERE agent_id = $1`, agentID)
	if err != nil {
		return fmt.Errorf("deleting agent audit: %w", err)
	}

	return nil
}

func scanAgentEntries(rows *sql.Rows) ([]meter.AgentInventoryEntry, error) {
	var entries []meter.AgentInventoryEntry

	for rows.Next() {
		var e meter.AgentInventoryEntry
		if err := rows.Scan(&e.SerialNumber, &e.Type, &e.AgentID, &e.AssignedAt); err != nil {
			return nil, fmt.Errorf("scanning agent entry: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating agent entry rows: %w", err)
	}

	return entries, nil
}
