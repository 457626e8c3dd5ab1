package catalog

import (
	"sort"
	"strings"
)

// NotAvailable fills blank passthrough descriptors.
const NotAvailable = "N/A"

// BuildOptions controls row cleaning.
type BuildOptions struct {
	// DefaultBrand replaces a blank brand. When empty, rows without a brand
	// are dropped.
	DefaultBrand string
}

// Range is an observed [Min, Max] interval. Valid is false when no record
// had a value for the dimension.
type Range struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Valid bool    `json:"valid"`
}

func (r *Range) observe(v float64) {
	if !r.Valid {
		r.Min, r.Max, r.Valid = v, v, true
		return
	}
	if v < r.Min {
		r.Min = v
	}
	if v > r.Max {
		r.Max = v
	}
}

// Ranges holds the observed bounds of the numeric dimensions.
type Ranges struct {
	Price      Range `json:"price"`
	Horsepower Range `json:"horsepower"`
	Seats      Range `json:"seats"`
}

// Catalog is the immutable set of cleaned vehicles. Accessors return copies.
type Catalog struct {
	vehicles  []Vehicle
	fuelTypes []string
	brands    []string
	ranges    Ranges
	dropped   int
}

// Build cleans rows into a Catalog. Rows without a parsable price, or
// without a brand when no DefaultBrand is set, are dropped.
func Build(rows []Row, opts BuildOptions) *Catalog {
	c := &Catalog{vehicles: make([]Vehicle, 0, len(rows))}

	for _, r := range rows {
		v, ok := clean(r, opts)
		if !ok {
			c.dropped++
			continue
		}
		c.vehicles = append(c.vehicles, v)
	}

	c.index()
	return c
}

// New builds a catalog from already-clean vehicles.
func New(vehicles []Vehicle) *Catalog {
	c := &Catalog{vehicles: append([]Vehicle(nil), vehicles...)}
	c.index()
	return c
}

func (c *Catalog) index() {
	c.fuelTypes = distinct(c.vehicles, func(v Vehicle) string { return v.FuelType })
	c.brands = distinct(c.vehicles, func(v Vehicle) string { return v.Brand })

	c.ranges = Ranges{}
	for _, v := range c.vehicles {
		c.ranges.Price.observe(v.Price)
		if v.Horsepower != nil {
			c.ranges.Horsepower.observe(*v.Horsepower)
		}
		if v.Seats != nil {
			c.ranges.Seats.observe(float64(*v.Seats))
		}
	}
}

func clean(r Row, opts BuildOptions) (Vehicle, bool) {
	brand := strings.TrimSpace(r.Brand)
	if brand == "" {
		if opts.DefaultBrand == "" {
			return Vehicle{}, false
		}
		brand = opts.DefaultBrand
	}

	price, ok := parsePrice(r.Price)
	if !ok {
		return Vehicle{}, false
	}

	v := Vehicle{
		Brand:        brand,
		Name:         strings.TrimSpace(r.Name),
		FuelType:     strings.TrimSpace(r.FuelType),
		Engine:       strings.TrimSpace(r.Engine),
		Capacity:     strings.TrimSpace(r.Capacity),
		TopSpeed:     strings.TrimSpace(r.TopSpeed),
		Acceleration: orNA(r.Acceleration),
		Torque:       orNA(r.Torque),
		Price:        price,
	}
	if hp, ok := firstInt(r.Horsepower); ok {
		f := float64(hp)
		v.Horsepower = &f
	}
	if seats, ok := firstInt(r.Seats); ok {
		v.Seats = &seats
	}
	return v, true
}

func orNA(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return NotAvailable
	}
	return s
}

// distinct returns one display form per normalized key (the first one seen),
// sorted by key. Blank values are skipped.
func distinct(vs []Vehicle, field func(Vehicle) string) []string {
	seen := make(map[string]string)
	for _, v := range vs {
		raw := strings.TrimSpace(field(v))
		key := Normalize(raw)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; !ok {
			seen[key] = raw
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = seen[k]
	}
	return out
}

// Vehicles returns a copy of all records in load order.
func (c *Catalog) Vehicles() []Vehicle {
	cp := make([]Vehicle, len(c.vehicles))
	copy(cp, c.vehicles)
	return cp
}

// Len is the number of records kept.
func (c *Catalog) Len() int { return len(c.vehicles) }

// Dropped is the number of rows rejected by Build.
func (c *Catalog) Dropped() int { return c.dropped }

// FuelTypes lists the distinct fuel types.
func (c *Catalog) FuelTypes() []string { return append([]string(nil), c.fuelTypes...) }

// Brands lists the distinct brands.
func (c *Catalog) Brands() []string { return append([]string(nil), c.brands...) }

// Ranges returns the observed price, horsepower and seat bounds.
func (c *Catalog) Ranges() Ranges { return c.ranges }
