package domain

const (
	lbToKg = 0.45359237
	inToCm = 2.54
)

// PoundsToKilograms converts a weight in pounds to kilograms.
func PoundsToKilograms(lb float64) float64 {
	return lb * lbToKg
}

// InchesToCentimeters converts a height in inches to centimeters.
func InchesToCentimeters(in float64) float64 {
	return in * inToCm
}
