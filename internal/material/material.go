package material

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a material id does not exist.
var ErrNotFound = errors.New("material not found")

// Category groups materials for the quote screen and bulk repricing.
type Category string

const (
	CategoryGlass    Category = "vidrio"
	CategoryBacking  Category = "respaldo"
	CategoryMatboard Category = "paspartu"
	CategoryFrame    Category = "marco"
	CategoryFoam     Category = "foam"
	CategoryFabric   Category = "tela"
	CategoryVeneer   Category = "chapilla"
	CategoryOther    Category = "otro"
)

// UnitMode says whether a material is costed per square meter (sheets)
// or per linear meter (mouldings).
type UnitMode string

const (
	UnitArea   UnitMode = "area"
	UnitLinear UnitMode = "linear"
)

// Material is one stock-keeping unit: a sheet type or a linear profile.
// UnitCost is always derived from SheetPrice and the sheet geometry at
// write time; it is never accepted as input.
type Material struct {
	ID           uuid.UUID
	Name         string
	Category     Category
	UnitMode     UnitMode
	WidthCM      float64
	LengthCM     float64
	SheetPrice   int64 // price paid for one full sheet or roll, COP
	UnitCost     int64 // COP per m² (area mode) or per linear m (linear mode)
	StockOnHand  float64
	StockMinimum float64
	SupplierID   *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// SheetQuantity is the stock added by one sheet of this material: its area
// in m² for area mode, its length in meters for linear mode. Uses the given
// dimensions rather than the stored ones so a purchase can change geometry.
func SheetQuantity(mode UnitMode, widthCM, lengthCM float64) float64 {
	if mode == UnitLinear {
		return lengthCM / 100
	}

	return (widthCM * lengthCM) / 10000
}

// MovementKind classifies a ledger entry.
type MovementKind string

const (
	MovementPurchase   MovementKind = "purchase"
	MovementAdjustUp   MovementKind = "adjust_up"
	MovementAdjustDown MovementKind = "adjust_down"
	MovementSale       MovementKind = "sale"
	MovementReversal   MovementKind = "reversal"
)

// Movement is one immutable stock-ledger entry. Every ledger-affecting
// material mutation produces exactly one movement; movements are only ever
// deleted as a cascade of deleting their material.
type Movement struct {
	ID             uuid.UUID
	MaterialID     uuid.UUID
	Kind           MovementKind
	Quantity       float64 // magnitude in the material's unit (m² or m)
	UnitCostAtTime int64
	TotalCost      int64
	SupplierID     *uuid.UUID
	Reason         string
	CreatedAt      time.Time
}

// PurchasesSummary aggregates all purchase movements for the dashboard.
type PurchasesSummary struct {
	TotalInvested int64
	TotalQuantity float64
	Count         int
}
