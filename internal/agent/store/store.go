package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/kmutua/metertrack/internal/agent"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAgent(s scanner) (*agent.Agent, error) {
	var a agent.Agent

	if err := s.Scan(
		&a.ID, &a.Name, &a.Phone, &a.Location, &a.County, &a.Active,
		&a.CreatedBy, &a.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &a, nil
}

const agentColumns = `id, name, phone, location, county, is_active, created_by, created_at`

func (s *Store) CreateAgent(ctx context.Context, a *agent.Agent) error {
	query := `
		INSERT INTO agents (id, name, phone, location, county, is_active, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		a.ID, a.Name, a.Phone, a.Location, a.County, a.Active, a.CreatedBy,
	).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating agent: %w", err)
	}

	return nil
}

func (s *Store) GetAgent(ctx context.Context, id uuid.UUID) (*agent.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE id = $1`

	a, err := scanAgent(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, agent.ErrNotFound
		}

		return nil, fmt.Errorf("getting agent: %w", err)
	}

	return a, nil
}

func (s *Store) ListAgents(ctx context.Context, filter agent.ListFilter) ([]*agent.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.County != nil {
		query += fmt.Sprintf(" AND county = $%d", argIdx)
		args = append(args, *filter.County)
		argIdx++
	}

	if filter.ActiveOnly {
		query += " AND is_active"
	}

	query += " ORDER BY name"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing agents: %w", err)
	}
	defer rows.Close()

	var agents []*agent.Agent

	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning agent: %w", err)
		}

		agents = append(agents, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating agents: %w", err)
	}

	return agents, nil
}

func (s *Store) UpdateAgent(ctx context.Context, a *agent.Agent) error {
	query := `
		UPDATE agents
		SET name = $2, phone = $3, location = $4, county = $5
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, a.ID, a.Name, a.Phone, a.Location, a.County)
	if err != nil {
		return fmt.Errorf("updating agent: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}

	if affected == 0 {
		return agent.ErrNotFound
	}

	return nil
}

func (s *Store) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result, err := s.db.ExecContext(ctx, `UPDATE agents SET is_active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("setting agent active flag: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}

	if affected == 0 {
		return agent.ErrNotFound
	}

	return nil
}
