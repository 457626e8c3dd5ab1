// Package catalog holds the read-only vehicle catalog, the user's filter
// criteria and the hard filter applied before scoring.
package catalog

// Row is one raw record as read from the dataset. Every field is the
// untouched cell text; cleaning happens in Build.
type Row struct {
	Brand        string `json:"brand"`
	Name         string `json:"name"`
	Engine       string `json:"engine"`
	Capacity     string `json:"capacity"`
	Horsepower   string `json:"horsepower"`
	TopSpeed     string `json:"top_speed"`
	Acceleration string `json:"acceleration"`
	Price        string `json:"price"`
	FuelType     string `json:"fuel_type"`
	Seats        string `json:"seats"`
	Torque       string `json:"torque"`
}

// Vehicle is a cleaned catalog record.
type Vehicle struct {
	Brand    string `json:"brand"`
	Name     string `json:"name"`
	FuelType string `json:"fuel_type"`

	// Passthrough descriptors, displayed as-is.
	Engine       string `json:"engine"`
	Capacity     string `json:"capacity"`
	TopSpeed     string `json:"top_speed"`
	Acceleration string `json:"acceleration"`
	Torque       string `json:"torque"`

	Price float64 `json:"price"`

	// nil means the dataset had no parsable value.
	Horsepower *float64 `json:"horsepower,omitempty"`
	Seats      *int     `json:"seats,omitempty"`
}

// HorsepowerOrZero returns the horsepower, or 0 when undefined.
func (v Vehicle) HorsepowerOrZero() float64 {
	if v.Horsepower == nil {
		return 0
	}
	return *v.Horsepower
}

// SeatsOrZero returns the seat count, or 0 when undefined.
func (v Vehicle) SeatsOrZero() int {
	if v.Seats == nil {
		return 0
	}
	return *v.Seats
}

// DisplayName is "<brand> <name>".
func (v Vehicle) DisplayName() string {
	if v.Name == "" {
		return v.Brand
	}
	return v.Brand + " " + v.Name
}
