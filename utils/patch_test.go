package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type samplePatch struct {
	Name      *string `json:"name"`
	PointCost *int    `json:"point_cost"`
	Hidden    *string `json:"-"`
	NoTag     *string
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestUpdatesFromPtrDTO(t *testing.T) {
	dto := samplePatch{
		Name:   strPtr("  Bamboo Cup  "),
		Hidden: strPtr("nope"),
		NoTag:  strPtr("nope"),
	}

	got := UpdatesFromPtrDTO(&dto, nil)
	assert.Equal(t, map[string]any{"name": "Bamboo Cup"}, got)
}

func TestUpdatesFromPtrDTORenames(t *testing.T) {
	dto := samplePatch{PointCost: intPtr(50)}

	got := UpdatesFromPtrDTO(&dto, map[string]string{"point_cost": "cost"})
	assert.Equal(t, map[string]any{"cost": 50}, got)
}

func TestUpdatesFromPtrDTONilAndNonPtr(t *testing.T) {
	assert.Empty(t, UpdatesFromPtrDTO(&samplePatch{}, nil))
	assert.Empty(t, UpdatesFromPtrDTO(samplePatch{}, nil))
	assert.Empty(t, UpdatesFromPtrDTO(&[]int{1}, nil))
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 25, ParseIntDefault("25", 50))
	assert.Equal(t, 25, ParseIntDefault(" 25 ", 50))
	assert.Equal(t, 50, ParseIntDefault("", 50))
	assert.Equal(t, 50, ParseIntDefault("abc", 50))
	assert.Equal(t, 50, ParseIntDefault("-3", 50))
}
