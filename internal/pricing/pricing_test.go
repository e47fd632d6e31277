package pricing_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmarulanda/marqueteria/internal/pricing"
)

func TestAreaM2(t *testing.T) {
	type testCase struct {
		name     string
		widthCM  float64
		lengthCM float64
		want     float64
	}

	tests := []testCase{
		{name: "FullGlassSheet", widthCM: 183, lengthCM: 244, want: 4.4652},
		{name: "SmallFrame", widthCM: 40, lengthCM: 50, want: 0.2},
		{name: "ZeroWidth", widthCM: 0, lengthCM: 244, want: 0},
		{name: "NegativeDimensionsUseMagnitude", widthCM: -40, lengthCM: 50, want: 0.2},
		{name: "NaNClampedToZero", widthCM: math.NaN(), lengthCM: 50, want: 0},
		{name: "InfClampedToZero", widthCM: math.Inf(1), lengthCM: 50, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, pricing.AreaM2(tt.widthCM, tt.lengthCM), 1e-9)
		})
	}
}

func TestLinearM(t *testing.T) {
	assert.InDelta(t, 3.0, pricing.LinearM(300), 1e-9)
	assert.InDelta(t, 0.5, pricing.LinearM(-50), 1e-9)
	assert.Zero(t, pricing.LinearM(math.NaN()))
}

func TestUnitCost(t *testing.T) {
	type testCase struct {
		name         string
		sheetPrice   int64
		areaOrLength float64
		previous     int64
		want         int64
	}

	tests := []testCase{
		{
			name:         "GlassSheet",
			sheetPrice:   131378,
			areaOrLength: 4.4652,
			want:         29423,
		},
		{
			name:         "ExactDivision",
			sheetPrice:   100000,
			areaOrLength: 4,
			want:         25000,
		},
		{
			name:         "ZeroAreaKeepsPrevious",
			sheetPrice:   131378,
			areaOrLength: 0,
			previous:     29423,
			want:         29423,
		},
		{
			name:         "NaNAreaKeepsPrevious",
			sheetPrice:   131378,
			areaOrLength: math.NaN(),
			previous:     500,
			want:         500,
		},
		{
			name:         "NegativePriceUsesMagnitude",
			sheetPrice:   -100000,
			areaOrLength: 4,
			want:         25000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pricing.UnitCost(tt.sheetPrice, tt.areaOrLength, tt.previous))
		})
	}
}

func TestLineMaterialCost(t *testing.T) {
	// 40x50 cm cut of glass at 29426/m²: 0.2 m² * 29426 = 5885.2 -> 5885.
	assert.Equal(t, int64(5885), pricing.LineMaterialCost(40, 50, 29426))

	assert.Zero(t, pricing.LineMaterialCost(0, 50, 29426))
	assert.Zero(t, pricing.LineMaterialCost(40, 50, 0))
	assert.Equal(t, int64(5885), pricing.LineMaterialCost(40, 50, -29426))
}

func TestSuggestedSalePrice(t *testing.T) {
	type testCase struct {
		name          string
		materialsCost int64
		laborCost     int64
		want          int64
	}

	tests := []testCase{
		{name: "MaterialsAndLabor", materialsCost: 5885, laborCost: 20000, want: 37655},
		{name: "LaborOnly", materialsCost: 0, laborCost: 15000, want: 15000},
		{name: "MaterialsOnly", materialsCost: 10000, laborCost: 0, want: 30000},
		{name: "NegativeInputsClamped", materialsCost: -100, laborCost: -50, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pricing.SuggestedSalePrice(tt.materialsCost, tt.laborCost))
		})
	}
}

// The markup rule must hold no matter how many lines contribute to the
// materials total.
func TestSuggestedSalePrice_IndependentOfLineCount(t *testing.T) {
	lines := []int64{5885, 2941, 1200}

	var total int64
	for _, c := range lines {
		total += c
	}

	assert.Equal(t, total*3+20000, pricing.SuggestedSalePrice(total, 20000))
}
