package explain

type threshold struct {
	min     float64
	message string
}

// Each table is scanned top-down; the first entry whose min is <= the value wins.
var (
	priceMessages = []threshold{
		{0.8, "Excellent value for money"},
		{0.75, "Standout offer in its price range"},
		{0.6, "Good budget-friendly choice"},
		{0.55, "Competitive price for what it offers"},
		{0.4, "Somewhat pricey but justified"},
		{0.3, "Priced above the market average"},
	}

	horsepowerMessages = []threshold{
		{0.85, "Exceptional power for its class"},
		{0.8, "High engine performance"},
		{0.7, "More than enough power"},
		{0.6, "Ideal balance of power and efficiency"},
		{0.5, "Adequate power for everyday driving"},
		{0.4, "Modest but efficient power"},
	}

	// seat thresholds apply to the raw seat count, not a sub-score
	seatMessages = []threshold{
		{7, "Plenty of room for large families"},
		{6, "Ideal for big families"},
		{5, "Good space for a family"},
		{4, "Comfortable for small groups"},
		{3, "Practical configuration"},
		{2, "Compact but functional"},
	}
)

var fuelTemplates = []string{
	"Preferred fuel (%s) - efficient",
	"Advanced %s technology",
	"Latest-generation %s system",
	"Optimized %s powertrain",
	"Efficient %s consumption",
}

var brandTemplates = []string{
	"Preferred brand (%s) - highly reliable",
	"%s is known for its quality",
	"Excellent %s reputation",
	"Cutting-edge %s technology",
	"Outstanding %s after-sales service",
}

var genericRemarks = []string{
	"Highly rated by experts",
	"A standout in test drives",
	"Includes the latest technology",
	"Very complete safety package",
	"Ergonomic and functional design",
	"Low maintenance cost",
	"High resale value",
	"Advanced connectivity package",
	"Premium infotainment system",
	"Smart driver assistance",
	"High-quality interior materials",
	"Extended warranty included",
	"Low emissions",
	"Suspension tuned for comfort",
	"High-performance braking system",
}

func pick(table []threshold, value float64) (string, bool) {
	for _, t := range table {
		if value >= t.min {
			return t.message, true
		}
	}
	return "", false
}
