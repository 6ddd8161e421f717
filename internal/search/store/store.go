package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/kmutua/metertrack/internal/search"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) SearchStock(ctx context.Context, q search.Query, limit int) ([]search.Hit, error) {
	query := `
		SELECT serial_number, type, adder_name, added_at
		FROM meters
		WHERE serial_number ILIKE $1 || '%' OR serial_key = $2
		ORDER BY added_at DESC
		LIMIT $3
	`

	rows, err := s.db.QueryContext(ctx, query, escapeLike(q.Raw), q.Canonical, limit)
	if err != nil {
		return nil, fmt.Errorf("searching stock: %w", err)
	}
	defer rows.Close()

	var hits []search.Hit

	for rows.Next() {
		hit := search.Hit{Location: search.LocationStock, Stock: &search.StockDetail{}}
		if err := rows.Scan(&hit.SerialNumber, &hit.MeterType, &hit.Stock.AdderName, &hit.Stock.AddedAt); err != nil {
			return nil, fmt.Errorf("scanning stock hit: %w", err)
		}

		hits = append(hits, hit)
	}

	return hits, rows.Err()
}

func (s *Store) SearchAgentInventory(ctx context.Context, q search.Query, limit int) ([]search.Hit, error) {
	query := `
		SELECT ai.serial_number, ai.type, ai.agent_id, a.name, ai.assigned_at
		FROM agent_inventory ai
		JOIN agents a ON a.id = ai.agent_id
		WHERE ai.serial_number ILIKE $1 || '%' OR ai.serial_key = $2
		ORDER BY ai.assigned_at DESC
		LIMIT $3
	`

	rows, err := s.db.QueryContext(ctx, query, escapeLike(q.Raw), q.Canonical, limit)
	if err != nil {
		return nil, fmt.Errorf("searching agent inventory: %w", err)
	}
	defer rows.Close()

	var hits []search.Hit

	for rows.Next() {
		hit := search.Hit{Location: search.LocationAgent, Agent: &search.AgentDetail{}}
		if err := rows.Scan(&hit.SerialNumber, &hit.MeterType, &hit.Agent.AgentID, &hit.Agent.AgentName, &hit.Agent.AssignedAt); err != nil {
			return nil, fmt.Errorf("scanning agent hit: %w", err)
		}

		hits = append(hits, hit)
	}

	return hits, rows.Err()
}

func (s *Store) SearchSold(ctx context.Context, q search.Query, limit int) ([]search.Hit, error) {
	query := `
		SELECT sm.serial_number, b.meter_type, sm.sold_at, b.user_name, sm.recipient,
		       sm.unit_price, sm.status, sm.replacement_serial
		FROM sold_meters sm
		JOIN sale_batches b ON b.id = sm.batch_id
		WHERE sm.serial_number ILIKE $1 || '%'
		   OR sm.serial_key = $2
		   OR sm.replacement_serial ILIKE $1 || '%'
		ORDER BY sm.sold_at DESC
		LIMIT $3
	`

	rows, err := s.db.QueryContext(ctx, query, escapeLike(q.Raw), q.Canonical, limit)
	if err != nil {
		return nil, fmt.Errorf("searching sold meters: %w", err)
	}
	defer rows.Close()

	var hits []search.Hit

	for rows.Next() {
		hit := search.Hit{Location: search.LocationSold, Sold: &search.SoldDetail{}}

		var replacement sql.NullString

		if err := rows.Scan(
			&hit.SerialNumber, &hit.MeterType, &hit.Sold.SoldAt, &hit.Sold.SellerName,
			&hit.Sold.Recipient, &hit.Sold.UnitPrice, &hit.Sold.Status, &replacement,
		); err != nil {
			return nil, fmt.Errorf("scanning sold hit: %w", err)
		}

		hit.Sold.ReplacementSerial = replacement.String
		hit.Sold.MatchedReplacement = replacement.Valid &&
			hasPrefixFold(replacement.String, q.Raw) &&
			!hasPrefixFold(hit.SerialNumber, q.Raw)

		hits = append(hits, hit)
	}

	return hits, rows.Err()
}

func (s *Store) SearchFaulty(ctx context.Context, q search.Query, limit int) ([]search.Hit, error) {
	query := `
		SELECT serial_number, type, status, fault_description, returner_name, returned_at
		FROM faulty_returns
		WHERE serial_number ILIKE $1 || '%' OR serial_key = $2
		ORDER BY returned_at DESC
		LIMIT $3
	`

	rows, err := s.db.QueryContext(ctx, query, escapeLike(q.Raw), q.Canonical, limit)
	if err != nil {
		return nil, fmt.Errorf("searching faulty returns: %w", err)
	}
	defer rows.Close()

	var hits []search.Hit

	for rows.Next() {
		hit := search.Hit{Location: search.LocationFaulty, Fault: &search.FaultDetail{}}
		if err := rows.Scan(
			&hit.SerialNumber, &hit.MeterType, &hit.Fault.Status,
			&hit.Fault.FaultDescription, &hit.Fault.ReturnerName, &hit.Fault.ReturnedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning faulty hit: %w", err)
		}

		hits = append(hits, hit)
	}

	return hits, rows.Err()
}

func hasPrefixFold(s, prefix string) bool {
	return strings.HasPrefix(strings.ToUpper(s), strings.ToUpper(prefix))
}

// escapeLike neutralizes LIKE metacharacters so user input only ever
// matches serials literally; a bare "%" must not match the whole table.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
