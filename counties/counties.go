// Package counties answers "which county is this point in" against the state
// boundary table. The spatial work happens entirely in the database; callers
// only ever see county names.
package counties

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Service struct {
	pool *pgxpool.Pool
}

func NewService(ctx context.Context, connString string) (*Service, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	return &Service{pool: pool}, nil
}

func (s *Service) Close() {
	s.pool.Close()
}

// Lookup returns the county containing the WGS84 point, title-cased, or ""
// when the point falls outside every county polygon.
func (s *Service) Lookup(ctx context.Context, latitude, longitude float64) (string, error) {
	var name string
	err := s.pool.QueryRow(
		ctx,
		`SELECT name FROM county_boundaries
         WHERE ST_Contains(geom, ST_SetSRID(ST_MakePoint($1, $2), 4326))`,
		longitude, latitude,
	).Scan(&name)
	if err == pgx.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return titleCase(name), nil
}

// The boundary table stores county names in caps ("SALT LAKE")
func titleCase(name string) string {
	words := strings.Fields(strings.ToLower(name))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
