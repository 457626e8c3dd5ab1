package catalog

// Filter returns the vehicles satisfying every active constraint of c, in
// input order. Numeric predicates run before the string comparisons.
func Filter(vehicles []Vehicle, c Criteria) []Vehicle {
	var preds []func(Vehicle) bool

	if c.SeatsActive() {
		min := c.MinSeats
		preds = append(preds, func(v Vehicle) bool {
			return v.Seats != nil && *v.Seats >= min
		})
	}
	if c.PriceActive() {
		lo, hi := c.PriceMin, c.PriceMax
		preds = append(preds, func(v Vehicle) bool {
			return v.Price >= lo && v.Price <= hi
		})
	}
	if c.HPActive() {
		lo, hi := c.HPMin, c.HPMax
		preds = append(preds, func(v Vehicle) bool {
			return v.Horsepower != nil && *v.Horsepower >= lo && *v.Horsepower <= hi
		})
	}
	if c.FuelActive() {
		want := Normalize(c.FuelType)
		preds = append(preds, func(v Vehicle) bool {
			return Normalize(v.FuelType) == want
		})
	}
	if c.BrandActive() {
		want := Normalize(c.Brand)
		preds = append(preds, func(v Vehicle) bool {
			return Normalize(v.Brand) == want
		})
	}

	out := make([]Vehicle, 0, len(vehicles))
next:
	for _, v := range vehicles {
		for _, p := range preds {
			if !p(v) {
				continue next
			}
		}
		out = append(out, v)
	}
	return out
}
