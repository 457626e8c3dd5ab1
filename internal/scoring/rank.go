package scoring

import "sort"

// Rank orders scored vehicles by TotalScore descending, breaking ties by
// price ascending. Equal keys keep their input order. The input is not
// modified.
func Rank(scored []ScoredVehicle) []ScoredVehicle {
	out := make([]ScoredVehicle, len(scored))
	copy(out, scored)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalScore != out[j].TotalScore {
			return out[i].TotalScore > out[j].TotalScore
		}
		return out[i].Vehicle.Price < out[j].Vehicle.Price
	})
	return out
}
