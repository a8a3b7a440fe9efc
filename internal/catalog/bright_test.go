package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrightStars_NonEmpty(t *testing.T) {
	cat := BrightStars()
	assert.GreaterOrEqual(t, cat.Len(), 50)
}

func TestBrightStars_KnownStars(t *testing.T) {
	cat := BrightStars()

	knownStars := map[string]struct {
		minRA, maxRA   float64
		minDec, maxDec float64
		maxMag         float64
	}{
		"Sirius":     {100, 103, -18, -15, 0},
		"Vega":       {278, 281, 37, 40, 0.5},
		"Polaris":    {35, 40, 88, 90, 2.5},
		"Canopus":    {94, 98, -54, -51, 0},
		"Arcturus":   {212, 215, 18, 21, 0.5},
		"Betelgeuse": {87, 90, 6, 9, 1.0},
	}

	for name, want := range knownStars {
		star, ok := cat.FindByName(name)
		if !assert.True(t, ok, "expected %s in catalog", name) {
			continue
		}
		assert.GreaterOrEqual(t, star.RAdeg, want.minRA, name)
		assert.LessOrEqual(t, star.RAdeg, want.maxRA, name)
		assert.GreaterOrEqual(t, star.DecDeg, want.minDec, name)
		assert.LessOrEqual(t, star.DecDeg, want.maxDec, name)
		assert.LessOrEqual(t, star.Mag, want.maxMag, name)
	}
}

func TestBrightStars_ValidCoordinates(t *testing.T) {
	for _, star := range BrightStars().Stars() {
		assert.NotEmpty(t, star.Name)
		assert.True(t, star.RAdeg >= 0 && star.RAdeg < 360, "%s RA=%v", star.Name, star.RAdeg)
		assert.True(t, star.DecDeg >= -90 && star.DecDeg <= 90, "%s Dec=%v", star.Name, star.DecDeg)
		assert.True(t, star.Mag >= -2 && star.Mag <= 5, "%s Mag=%v", star.Name, star.Mag)
		assert.InDelta(t, 1.0, star.Vector().Norm(), 1e-12, star.Name)
	}
}

func TestBrightStars_NoDuplicates(t *testing.T) {
	seen := make(map[string]bool)
	for _, star := range BrightStars().Stars() {
		assert.False(t, seen[star.Name], "duplicate star name: %s", star.Name)
		seen[star.Name] = true
	}
}

func TestBrightStars_UniqueIDs(t *testing.T) {
	cat := BrightStars()
	for i, star := range cat.Stars() {
		got, ok := cat.ByID(star.ID)
		require.True(t, ok)
		assert.Equal(t, cat.Stars()[i].Name, got.Name)
	}
}

func TestBrightStars_BrightestFirst(t *testing.T) {
	cat := BrightStars()
	require.Greater(t, cat.Len(), 10)

	assert.Equal(t, "Sirius", cat.Stars()[0].Name)
	for i := 0; i < 10; i++ {
		assert.LessOrEqual(t, cat.Stars()[i].Mag, 1.0, "star %d (%s)", i, cat.Stars()[i].Name)
	}
}

func TestBrightStars_ColorIndices(t *testing.T) {
	cat := BrightStars()

	vega, ok := cat.FindByName("Vega")
	require.True(t, ok)
	assert.Equal(t, Some(0), vega.BV, "Vega's B-V of 0.0 is a real measurement")

	betelgeuse, _ := cat.FindByName("Betelgeuse")
	assert.True(t, betelgeuse.BV.Valid)
	assert.Greater(t, betelgeuse.BV.Value, 1.5)

	alcor, _ := cat.FindByName("Alcor")
	assert.False(t, alcor.BV.Valid)
	assert.False(t, alcor.TempK.Valid)
}

func TestBrightStars_Shared(t *testing.T) {
	assert.Same(t, BrightStars(), BrightStars())
}

func TestBrightStars_LabelsAreNames(t *testing.T) {
	// Built-in ids are sequence numbers, so every row carries a name and
	// no label falls back to the id.
	for _, star := range BrightStars().Stars() {
		assert.Equal(t, star.Name, star.Label())
	}
}
