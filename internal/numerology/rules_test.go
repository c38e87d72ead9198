package numerology_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-numerology/internal/numerology"
)

func planes(p, m, e, i int) numerology.Planes {
	return numerology.Planes{Physical: p, Mental: m, Emotion: e, Intuition: i}
}

func TestSynchronize(t *testing.T) {
	tests := []struct {
		name    string
		destiny int
		time    int
		planes  numerology.Planes
		gender  numerology.Gender
		want    numerology.Percent
	}{
		{"Destiny 22 Time 2", 22, 2, planes(1, 1, 1, 1), numerology.Male, 80},
		{"Female double six", 3, 3, planes(6, 2, 6, 1), numerology.Female, 50},
		{"Destiny and Physical 8", 8, 3, planes(8, 1, 1, 1), numerology.Male, 80},
		{"Seven four with Mental 7", 7, 4, planes(1, 7, 2, 3), numerology.Male, 80},
		{"Uniform planes matching destiny", 1, 3, planes(1, 1, 1, 1), numerology.Male, 100},
		{"Opposed pair with distance 0 or 4", 5, 2, planes(5, 1, 5, 1), numerology.Male, 20},
		{"Opposed pair one four", 1, 4, planes(5, 1, 5, 1), numerology.Male, 20},
		{"Adjacent pair three distinct planes", 2, 3, planes(1, 2, 3, 1), numerology.Male, 70},
		{"Adjacent pair four distinct planes", 2, 3, planes(1, 2, 3, 4), numerology.Male, 60},
		{"Nine seven without Mental", 9, 7, planes(2, 0, 1, 1), numerology.Male, 5},
		{"Six eight without Intuition", 6, 8, planes(1, 2, 3, 0), numerology.Male, 10},
		{"Table lookup", 1, 1, planes(1, 2, 3, 4), numerology.Male, 100},
		{"Table lookup masters", 22, 11, planes(1, 2, 3, 4), numerology.Male, 10},
		{"Table lookup four five", 4, 5, planes(2, 3, 5, 1), numerology.Male, 90},
		{"Pair outside table", 33, 1, planes(1, 2, 3, 4), numerology.Male, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := numerology.Synchronize(tt.destiny, tt.time, tt.planes, tt.gender)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoherence(t *testing.T) {
	tests := []struct {
		name   string
		planes numerology.Planes
		sync   numerology.Percent
		gender numerology.Gender
		want   numerology.Percent
	}{
		{"Physical 5 Emotion 3", planes(5, 1, 3, 2), 90, numerology.Male, 50},
		{"Female Emotion 6 low sync", planes(1, 1, 6, 2), 50, numerology.Female, 30},
		{"Female Emotion 6", planes(1, 1, 6, 2), 70, numerology.Female, 50},
		{"All zero", planes(0, 0, 0, 0), 0, numerology.Male, 40},
		{"Only Physical", planes(3, 0, 0, 0), 0, numerology.Male, 40},
		{"All four", planes(4, 4, 4, 4), 0, numerology.Male, 100},
		{"Three fours and one other", planes(4, 4, 4, 1), 0, numerology.Male, 90},
		{"Three fours and one other again", planes(4, 4, 2, 4), 0, numerology.Male, 90},
		{"Three fours and a zero", planes(4, 4, 0, 4), 0, numerology.Male, 60},
		{"Distinct with a zero", planes(1, 0, 2, 3), 0, numerology.Male, 60},
		{"Distinct with Emotion 3 and a zero", planes(1, 2, 3, 0), 0, numerology.Male, 60},
		{"Distinct without zero", planes(2, 3, 5, 1), 0, numerology.Male, 70},
		{"Distinct without zero again", planes(1, 5, 3, 4), 0, numerology.Male, 70},
		{"Triple six", planes(6, 6, 6, 1), 0, numerology.Male, 10},
		{"Uniform", planes(2, 2, 2, 2), 0, numerology.Male, 100},
		{"Three of a kind", planes(3, 3, 3, 1), 0, numerology.Male, 90},
		{"Two pairs", planes(3, 3, 1, 1), 0, numerology.Male, 80},
		{"Three values with Emotion 6", planes(1, 2, 6, 2), 0, numerology.Male, 30},
		{"Three values", planes(1, 2, 3, 3), 0, numerology.Male, 80},
		{"Triple five", planes(5, 1, 5, 5), 0, numerology.Male, 20},
		{"Missing Emotion", planes(2, 1, 0, 1), 0, numerology.Male, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, numerology.Coherence(tt.planes, tt.sync, tt.gender))
		})
	}
}

func TestPlanesMax(t *testing.T) {
	tests := []struct {
		name   string
		planes numerology.Planes
		want   int
	}{
		{"Physical", planes(5, 1, 2, 3), 5},
		{"Mental", planes(1, 4, 2, 0), 4},
		{"Emotion", planes(2, 2, 6, 1), 6},
		{"Intuition", planes(0, 1, 2, 7), 7},
		{"Tie", planes(3, 3, 3, 3), 3},
		{"Empty", numerology.Planes{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.planes.Max())
		})
	}
}

func TestHara(t *testing.T) {
	assert.Equal(t, 0, numerology.Hara(""))
	assert.Equal(t, 0, numerology.Hara("123 !!"))
	assert.Equal(t, 3, numerology.Hara("Budi Santoso"))
	assert.Equal(t, 1, numerology.Hara("Siti Nurhaliza"))
	assert.Equal(t, 22, numerology.Hara("Andi"))
	assert.Equal(t, 9, numerology.Hara("Maria Clara Dewi"))
}

func TestPointOfIntensification(t *testing.T) {
	assert.Equal(t, 1, numerology.PointOfIntensification(""))
	assert.Equal(t, 9, numerology.PointOfIntensification("Siti Nurhaliza"))
	// Ties go to the lowest value.
	assert.Equal(t, 2, numerology.PointOfIntensification("BC"))

	for _, name := range []string{"Budi Santoso", "Xyz", "Ratna Sari Dewi", "ZZZZ"} {
		got := numerology.PointOfIntensification(name)
		assert.GreaterOrEqual(t, got, 1, name)
		assert.LessOrEqual(t, got, 9, name)
	}
}

func TestExpression(t *testing.T) {
	assert.Equal(t, 4, numerology.Expression("Budi Santoso"))
	assert.Equal(t, 5, numerology.Expression("siti  nurhaliza"))
	assert.Equal(t, 0, numerology.Expression(""))
}

func TestAnalyzeLife(t *testing.T) {
	empty := numerology.AnalyzeLife("")
	assert.Equal(t, numerology.Percent(100), empty.Synergize)
	assert.Equal(t, numerology.Percent(100), empty.Productive)
	assert.Equal(t, "0.00000", empty.MomenSukses.String())

	series := numerology.EssenceSeries("Budi Santoso")
	assert.Len(t, series, 100)
	assert.Equal(t, 3, series[0])
	assert.Equal(t, 11, series[30])
}
