package domain

const kgToLb = 2.2046226218

// Weight units accepted by the trend read model.
const (
	UnitKg = "kg"
	UnitLb = "lb"
)

// ValidWeightUnit reports whether u is "kg" or "lb".
func ValidWeightUnit(u string) bool {
	return u == UnitKg || u == UnitLb
}

// ConvertWeight converts a weight value between "kg" and "lb".
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertWeight(v float64, from, to string) float64 {
	if from == to {
		return v
	}
	if from == UnitKg && to == UnitLb {
		return v * kgToLb
	}
	if from == UnitLb && to == UnitKg {
		return v / kgToLb
	}
	return v
}
