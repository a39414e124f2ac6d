package utils

import "math"

// Points per kilogram of CO2 saved, by activity category.
// Unknown categories fall back to defaultPointFactor.
var pointFactors = map[string]float64{
	"cycling":          12,
	"walking":          12,
	"public_transport": 8,
	"carpool":          6,
	"recycling":        10,
	"energy_saving":    9,
	"plant_based_meal": 7,
}

const defaultPointFactor = 5

// PointsForCarbon converts a carbon saving to points, rounded to the
// nearest whole point. Non-positive savings earn nothing.
func PointsForCarbon(category string, carbonKg float64) int {
	if carbonKg <= 0 {
		return 0
	}
	factor, ok := pointFactors[category]
	if !ok {
		factor = defaultPointFactor
	}
	return int(math.Round(carbonKg * factor))
}
