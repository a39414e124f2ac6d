package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointsForCarbon(t *testing.T) {
	tests := []struct {
		name     string
		category string
		carbonKg float64
		want     int
	}{
		{"cycling whole", "cycling", 2, 24},
		{"cycling rounds", "cycling", 0.5, 6},
		{"public transport", "public_transport", 1.25, 10},
		{"unknown category uses default", "teleportation", 2, 10},
		{"zero earns nothing", "cycling", 0, 0},
		{"negative earns nothing", "cycling", -3, 0},
		{"rounds to nearest", "recycling", 0.04, 0},
		{"rounds half up", "recycling", 0.05, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PointsForCarbon(tt.category, tt.carbonKg))
		})
	}
}
