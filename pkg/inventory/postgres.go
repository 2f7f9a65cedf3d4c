package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hbracken/fedlease/pkg/property"
)

// PGLoader loads the property inventory from PostgreSQL.
type PGLoader struct {
	pool *pgxpool.Pool
}

// NewPGLoader creates a pooled PostgreSQL loader and verifies connectivity.
func NewPGLoader(ctx context.Context, databaseURL string) (*PGLoader, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Connection pooling configuration
	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &PGLoader{pool: pool}, nil
}

// Ping checks database connectivity
func (l *PGLoader) Ping(ctx context.Context) error {
	return l.pool.Ping(ctx)
}

// Close closes the connection pool
func (l *PGLoader) Close() error {
	l.pool.Close()
	return nil
}

const selectProperties = `
SELECT id, latitude, longitude, rsf, ownership, vacant, vacant_rsf,
       lease_expiration, construction_year, agency, city, state, zipcode
FROM federal_properties`

// Load pulls every property row. Nullable columns map to the record's
// optional fields.
func (l *PGLoader) Load(ctx context.Context) ([]*property.FederalProperty, error) {
	rows, err := l.pool.Query(ctx, selectProperties)
	if err != nil {
		return nil, &LoadError{Source: "postgres", Err: err}
	}
	defer rows.Close()

	var props []*property.FederalProperty
	for rows.Next() {
		var (
			p         property.FederalProperty
			builtYear *int
			agency    *string
			city      *string
			state     *string
			zipcode   *string
		)
		if err := rows.Scan(
			&p.ID, &p.Latitude, &p.Longitude, &p.RSF, &p.Ownership,
			&p.Vacant, &p.VacantRSF, &p.LeaseExpiration, &builtYear,
			&agency, &city, &state, &zipcode,
		); err != nil {
			return nil, &LoadError{Source: "postgres", Err: err}
		}
		if builtYear != nil {
			p.ConstructionYear = *builtYear
		}
		if agency != nil {
			p.Agency = *agency
		}
		if city != nil {
			p.City = *city
		}
		if state != nil {
			p.State = *state
		}
		if zipcode != nil {
			p.ZipCode = *zipcode
		}
		props = append(props, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, &LoadError{Source: "postgres", Err: err}
	}
	return props, nil
}
