package store

import (
	"context"

	"github.com/MikeSquared-Agency/Advisor/internal/catalog"
)

// Store is a database-backed catalog source.
type Store interface {
	EnsureSchema(ctx context.Context) error
	CatalogRows(ctx context.Context) ([]catalog.Row, error)
	ImportRows(ctx context.Context, rows []catalog.Row, opts ImportOptions) (int64, error)
	CountVehicles(ctx context.Context) (int64, error)
	Close() error
}

// ImportOptions control an import.
type ImportOptions struct {
	// Replace truncates the table before copying the new rows.
	Replace bool
	// Source labels where the rows came from, e.g. the CSV file name.
	Source string
}

// vehicleColumns are in catalog.Row field order.
var vehicleColumns = []string{
	"brand", "name", "engine", "capacity", "horsepower",
	"top_speed", "acceleration", "price", "fuel_type", "seats", "torque",
}

func rowValues(r catalog.Row, source string) []any {
	return []any{
		r.Brand, r.Name, r.Engine, r.Capacity, r.Horsepower,
		r.TopSpeed, r.Acceleration, r.Price, r.FuelType, r.Seats, r.Torque,
		source,
	}
}
