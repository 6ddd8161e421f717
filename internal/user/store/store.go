package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kmutua/metertrack/internal/user"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetProfile(ctx context.Context, id uuid.UUID) (*user.Profile, error) {
	query := `
		SELECT id, name, phone_number, is_active, created_at
		FROM profiles
		WHERE id = $1
	`

	var p user.Profile

	err := s.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Phone, &p.Active, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("getting profile: %w", err)
	}

	return &p, nil
}

func (s *Store) GetProfiles(ctx context.Context, ids []uuid.UUID) ([]*user.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))

	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := `
		SELECT id, name, phone_number, is_active, created_at
		FROM profiles
		WHERE id IN (` + strings.Join(placeholders, ", ") + `)`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*user.Profile

	for rows.Next() {
		var p user.Profile
		if err := rows.Scan(&p.ID, &p.Name, &p.Phone, &p.Active, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}

		profiles = append(profiles, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profile rows: %w", err)
	}

	return profiles, nil
}
