package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/agencyops/internal/forecast"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// FindAgency returns the agency of the longest alias contained in rawName, newest first on ties.
func (s *Store) FindAgency(ctx context.Context, rawName string) (forecast.AgencyID, error) {
	query := `
		SELECT agency_id
		FROM agency_aliases
		WHERE $1 ILIKE '%' || raw_pattern || '%'
		ORDER BY LENGTH(raw_pattern) DESC, created_at DESC
		LIMIT 1
	`

	var agency string

	err := s.db.QueryRowContext(ctx, query, rawName).Scan(&agency)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		return "", fmt.Errorf("finding agency alias: %w", err)
	}

	return forecast.AgencyID(agency), nil
}

func (s *Store) CreateAlias(ctx context.Context, rawPattern string, agency forecast.AgencyID) error {
	query := `
		INSERT INTO agency_aliases (raw_pattern, agency_id, created_at)
		VALUES ($1, $2, NOW())
	`

	_, err := s.db.ExecContext(ctx, query, rawPattern, string(agency))
	if err != nil {
		return fmt.Errorf("creating agency alias: %w", err)
	}

	return nil
}
