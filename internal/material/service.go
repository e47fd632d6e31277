package material

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/dmarulanda/marqueteria/internal/pricing"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=material
type Repository interface {
	CreateMaterial(ctx context.Context, m *Material) error
	GetMaterial(ctx context.Context, id uuid.UUID) (*Material, error)
	GetMaterialByName(ctx context.Context, name string) (*Material, error)
	ListMaterials(ctx context.Context) ([]*Material, error)
	ListLowStock(ctx context.Context, limit int) ([]*Material, error)
	DeleteMaterial(ctx context.Context, id uuid.UUID) error

	// RecordPurchase overwrites the material's geometry and cost fields and
	// atomically increments its stock by the given quantity.
	RecordPurchase(ctx context.Context, m *Material, quantity float64) error
	SetStock(ctx context.Context, id uuid.UUID, stock float64, minimum *float64) error
	BulkReprice(ctx context.Context, category Category, factor float64) (int, error)

	InsertMovement(ctx context.Context, mv *Movement) error
	ListMovements(ctx context.Context, materialID uuid.UUID, limit int) ([]*Movement, error)
	PurchasesSummary(ctx context.Context) (*PurchasesSummary, error)
}

const (
	lowStockLimit = 10
	historyLimit  = 30
)

// Service owns the material ledger: stock mutations and the movement trail
// they leave behind. Movement logging is best effort; a failed movement
// insert is logged and never rolls back the stock change that already
// happened.
type Service struct {
	repo       Repository
	classifier *Classifier
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, classifier: NewClassifier()}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Material, error) {
	return s.repo.GetMaterial(ctx, id)
}

// List returns all materials sorted by name.
func (s *Service) List(ctx context.Context) ([]*Material, error) {
	return s.repo.ListMaterials(ctx)
}

// ListByCategory groups all materials for the quote screen.
func (s *Service) ListByCategory(ctx context.Context) (map[Category][]*Material, error) {
	all, err := s.repo.ListMaterials(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[Category][]*Material)
	for _, m := range all {
		grouped[m.Category] = append(grouped[m.Category], m)
	}

	return grouped, nil
}

// FindOrCreateByName resolves a material by case-insensitive name, creating
// it with an inferred category when it does not exist yet.
func (s *Service) FindOrCreateByName(ctx context.Context, name string) (*Material, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("resolve material: %w", ErrNotFound)
	}

	m, err := s.repo.GetMaterialByName(ctx, name)
	if err == nil {
		return m, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("looking up material %q: %w", name, err)
	}

	m = &Material{
		Name:     name,
		Category: s.classifier.Classify(name),
		UnitMode: UnitArea,
	}

	if m.Category == CategoryFrame {
		m.UnitMode = UnitLinear
	}

	if err := s.repo.CreateMaterial(ctx, m); err != nil {
		return nil, fmt.Errorf("creating material %q: %w", name, err)
	}

	return m, nil
}

type PurchaseParams struct {
	MaterialID *uuid.UUID
	Name       string
	WidthCM    float64
	LengthCM   float64
	SheetPrice int64
	SheetCount int
	SupplierID *uuid.UUID
}

// RegisterPurchase books the arrival of sheets: stock goes up by the
// purchased area or length, and the latest purchase wins as the cost basis
// (geometry, sheet price and derived unit cost are overwritten).
func (s *Service) RegisterPurchase(ctx context.Context, params PurchaseParams) (*Material, error) {
	if params.SheetCount <= 0 {
		params.SheetCount = 1
	}

	var (
		m   *Material
		err error
	)

	if params.MaterialID != nil {
		m, err = s.repo.GetMaterial(ctx, *params.MaterialID)
	} else {
		m, err = s.FindOrCreateByName(ctx, params.Name)
	}

	if err != nil {
		return nil, err
	}

	perSheet := SheetQuantity(m.UnitMode, params.WidthCM, params.LengthCM)
	quantity := perSheet * float64(params.SheetCount)

	m.WidthCM = params.WidthCM
	m.LengthCM = params.LengthCM
	m.SheetPrice = params.SheetPrice
	m.UnitCost = pricing.UnitCost(params.SheetPrice, perSheet, m.UnitCost)

	if params.SupplierID != nil {
		m.SupplierID = params.SupplierID
	}

	if err := s.repo.RecordPurchase(ctx, m, quantity); err != nil {
		return nil, fmt.Errorf("recording purchase of %q: %w", m.Name, err)
	}

	s.logMovement(ctx, &Movement{
		MaterialID:     m.ID,
		Kind:           MovementPurchase,
		Quantity:       quantity,
		UnitCostAtTime: m.UnitCost,
		TotalCost:      params.SheetPrice * int64(params.SheetCount),
		SupplierID:     params.SupplierID,
		Reason:         fmt.Sprintf("Compra de %d lámina(s)", params.SheetCount),
	})

	return m, nil
}

// AdjustStock sets the absolute stock level, used for shrinkage and breakage
// corrections. The movement records the delta, not the new level.
func (s *Service) AdjustStock(ctx context.Context, id uuid.UUID, newQuantity float64, newMinimum *float64, reason string) (*Material, error) {
	m, err := s.repo.GetMaterial(ctx, id)
	if err != nil {
		return nil, err
	}

	if newQuantity < 0 {
		newQuantity = 0
	}

	delta := newQuantity - m.StockOnHand

	if err := s.repo.SetStock(ctx, id, newQuantity, newMinimum); err != nil {
		return nil, fmt.Errorf("adjusting stock of %q: %w", m.Name, err)
	}

	m.StockOnHand = newQuantity
	if newMinimum != nil {
		m.StockMinimum = *newMinimum
	}

	if delta != 0 {
		kind := MovementAdjustUp
		if delta < 0 {
			kind = MovementAdjustDown
			delta = -delta
		}

		if reason == "" {
			reason = "Ajuste manual de inventario"
		}

		s.logMovement(ctx, &Movement{
			MaterialID:     m.ID,
			Kind:           kind,
			Quantity:       delta,
			UnitCostAtTime: m.UnitCost,
			Reason:         reason,
		})
	}

	return m, nil
}

// ListLowStock returns materials under their reorder threshold, capped for
// the dashboard.
func (s *Service) ListLowStock(ctx context.Context) ([]*Material, error) {
	return s.repo.ListLowStock(ctx, lowStockLimit)
}

// History returns the most recent movements of a material, newest first.
func (s *Service) History(ctx context.Context, materialID uuid.UUID) ([]*Movement, error) {
	if _, err := s.repo.GetMaterial(ctx, materialID); err != nil {
		return nil, err
	}

	return s.repo.ListMovements(ctx, materialID, historyLimit)
}

// PurchasesSummary aggregates every purchase movement for the dashboard.
func (s *Service) PurchasesSummary(ctx context.Context) (*PurchasesSummary, error) {
	return s.repo.PurchasesSummary(ctx)
}

// BulkPriceUpdate multiplies unit cost and sheet price of every material in
// a category by (1 + percent/100). Returns the number of materials touched.
func (s *Service) BulkPriceUpdate(ctx context.Context, category Category, percent float64) (int, error) {
	factor := 1 + percent/100
	if factor < 0 {
		factor = 0
	}

	n, err := s.repo.BulkReprice(ctx, category, factor)
	if err != nil {
		return 0, fmt.Errorf("repricing category %s: %w", category, err)
	}

	return n, nil
}

// Delete removes a material and, by cascade, its whole movement history.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteMaterial(ctx, id)
}

func (s *Service) logMovement(ctx context.Context, mv *Movement) {
	if err := s.repo.InsertMovement(ctx, mv); err != nil {
		slog.Error("movement log write failed", "material_id", mv.MaterialID, "kind", mv.Kind, "error", err)
	}
}
