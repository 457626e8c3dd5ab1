package scoring

// MarkFrontier flags the vehicles on the value frontier: those not
// dominated by another candidate that is no more expensive, has at least
// as much horsepower and at least as many seats, and is strictly better on
// one of the three. Unknown horsepower or seats count as 0.
// O(n^2) dominance check, fine for a filtered candidate set.
func MarkFrontier(scored []ScoredVehicle) {
	for i := range scored {
		scored[i].Frontier = true
		for j := range scored {
			if i != j && dominates(scored[j], scored[i]) {
				scored[i].Frontier = false
				break
			}
		}
	}
}

// dominates returns true if a dominates b.
// For horsepower and seats: higher is better. For price: lower is better.
func dominates(a, b ScoredVehicle) bool {
	ap, bp := a.Vehicle.Price, b.Vehicle.Price
	ah, bh := a.Vehicle.HorsepowerOrZero(), b.Vehicle.HorsepowerOrZero()
	as, bs := a.Vehicle.SeatsOrZero(), b.Vehicle.SeatsOrZero()

	if ap > bp || ah < bh || as < bs {
		return false
	}
	return ap < bp || ah > bh || as > bs
}
