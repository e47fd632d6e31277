// Package pricing holds the pure cost math shared by the inventory ledger,
// the quote calculator and order settlement. All money values are int64
// Colombian pesos; dimensions are centimeters and derived areas square meters.
package pricing

import "math"

// Markup is the multiplier applied to material cost when suggesting a sale
// price. Labor is added on top, unmultiplied.
const Markup = 3

// sanitize clamps NaN/Inf to 0 and negatives to their absolute value.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	return math.Abs(v)
}

// AreaM2 converts sheet dimensions in centimeters to square meters.
func AreaM2(widthCM, lengthCM float64) float64 {
	return (sanitize(widthCM) * sanitize(lengthCM)) / 10000
}

// LinearM converts a length in centimeters to linear meters.
func LinearM(lengthCM float64) float64 {
	return sanitize(lengthCM) / 100
}

// UnitCost derives the cost per m² (or per linear meter) from the price paid
// for one full sheet and the sheet's computed area or length. When the
// divisor is zero the previous cost is returned unchanged, so a bad
// geometry entry never wipes an existing cost.
func UnitCost(sheetPrice int64, areaOrLength float64, previous int64) int64 {
	areaOrLength = sanitize(areaOrLength)
	if areaOrLength == 0 {
		return previous
	}

	if sheetPrice < 0 {
		sheetPrice = -sheetPrice
	}

	return int64(math.Round(float64(sheetPrice) / areaOrLength))
}

// LineMaterialCost is the material cost of one cut: area times the
// material's unit cost, rounded to whole pesos. Returns 0 when any input
// is missing.
func LineMaterialCost(widthCM, lengthCM float64, unitCost int64) int64 {
	area := AreaM2(widthCM, lengthCM)
	if area == 0 || unitCost == 0 {
		return 0
	}

	if unitCost < 0 {
		unitCost = -unitCost
	}

	return int64(math.Round(area * float64(unitCost)))
}

// SuggestedSalePrice applies the shop's pricing rule: three times the
// material cost plus labor. The multiplier covers waste, overhead and
// margin in one constant.
func SuggestedSalePrice(materialsCost, laborCost int64) int64 {
	if materialsCost < 0 {
		materialsCost = 0
	}

	if laborCost < 0 {
		laborCost = 0
	}

	return materialsCost*Markup + laborCost
}
