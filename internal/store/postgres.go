package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeSquared-Agency/Advisor/internal/catalog"
)

const vehiclesTable = "vehicles"

// schema keeps the raw cell text so the database source goes through the
// same cleaning as the CSV source.
const schema = `
CREATE TABLE IF NOT EXISTS vehicles (
	vehicle_id   BIGSERIAL PRIMARY KEY,
	brand        TEXT NOT NULL DEFAULT '',
	name         TEXT NOT NULL DEFAULT '',
	engine       TEXT NOT NULL DEFAULT '',
	capacity     TEXT NOT NULL DEFAULT '',
	horsepower   TEXT NOT NULL DEFAULT '',
	top_speed    TEXT NOT NULL DEFAULT '',
	acceleration TEXT NOT NULL DEFAULT '',
	price        TEXT NOT NULL DEFAULT '',
	fuel_type    TEXT NOT NULL DEFAULT '',
	seats        TEXT NOT NULL DEFAULT '',
	torque       TEXT NOT NULL DEFAULT '',
	source       TEXT NOT NULL DEFAULT '',
	imported_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// CatalogRows returns every stored row in insertion order.
func (s *PostgresStore) CatalogRows(ctx context.Context) ([]catalog.Row, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT brand, name, engine, capacity, horsepower,
			top_speed, acceleration, price, fuel_type, seats, torque
		FROM vehicles ORDER BY vehicle_id`)
	if err != nil {
		return nil, fmt.Errorf("query vehicles: %w", err)
	}
	defer rows.Close()

	var out []catalog.Row
	for rows.Next() {
		var r catalog.Row
		if err := rows.Scan(
			&r.Brand, &r.Name, &r.Engine, &r.Capacity, &r.Horsepower,
			&r.TopSpeed, &r.Acceleration, &r.Price, &r.FuelType, &r.Seats, &r.Torque,
		); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vehicles: %w", err)
	}
	return out, nil
}

// ImportRows bulk-loads rows with COPY inside one transaction.
func (s *PostgresStore) ImportRows(ctx context.Context, rows []catalog.Row, opts ImportOptions) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if opts.Replace {
		if _, err := tx.Exec(ctx, "TRUNCATE vehicles RESTART IDENTITY"); err != nil {
			return 0, fmt.Errorf("truncate vehicles: %w", err)
		}
	}

	columns := append(append([]string(nil), vehicleColumns...), "source")
	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{vehiclesTable},
		columns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			return rowValues(rows[i], opts.Source), nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy vehicles: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) CountVehicles(ctx context.Context) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, "SELECT count(*) FROM vehicles").Scan(&n); err != nil {
		return 0, fmt.Errorf("count vehicles: %w", err)
	}
	return n, nil
}
