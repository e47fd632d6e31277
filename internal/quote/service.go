// Package quote prices a framing job from its dimensions and the current
// material costs. Quoting is read only: it never touches stock and never
// writes a movement.
package quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmarulanda/marqueteria/internal/material"
	"github.com/dmarulanda/marqueteria/internal/pricing"
)

// ErrMissingInput is returned when the dimensions or material list are
// absent.
var ErrMissingInput = errors.New("width, length and materials are required")

// Line is the per-material breakdown of a quote.
type Line struct {
	MaterialID uuid.UUID
	Name       string
	Category   material.Category
	UnitCost   int64
	AreaM2     float64
	Cost       int64
}

// Quote is the priced result. SuggestedPrice applies the shop markup rule;
// the counter is free to charge something else.
type Quote struct {
	WidthCM        float64
	LengthCM       float64
	Lines          []Line
	MaterialsCost  int64
	LaborCost      int64
	TotalBaseCost  int64
	SuggestedPrice int64
}

type Service struct {
	materials *material.Service
}

func NewService(materials *material.Service) *Service {
	return &Service{materials: materials}
}

// Generate prices one job. Material ids that no longer resolve are skipped
// rather than failing the whole quote.
func (s *Service) Generate(ctx context.Context, widthCM, lengthCM float64, materialIDs []uuid.UUID, laborCost int64) (*Quote, error) {
	if widthCM <= 0 || lengthCM <= 0 || len(materialIDs) == 0 {
		return nil, ErrMissingInput
	}

	if laborCost < 0 {
		laborCost = 0
	}

	q := &Quote{
		WidthCM:   widthCM,
		LengthCM:  lengthCM,
		LaborCost: laborCost,
	}

	area := pricing.AreaM2(widthCM, lengthCM)

	for _, id := range materialIDs {
		m, err := s.materials.Get(ctx, id)
		if err != nil {
			if errors.Is(err, material.ErrNotFound) {
				continue
			}

			return nil, fmt.Errorf("loading material %s: %w", id, err)
		}

		cost := pricing.LineMaterialCost(widthCM, lengthCM, m.UnitCost)

		q.Lines = append(q.Lines, Line{
			MaterialID: m.ID,
			Name:       m.Name,
			Category:   m.Category,
			UnitCost:   m.UnitCost,
			AreaM2:     area,
			Cost:       cost,
		})

		q.MaterialsCost += cost
	}

	q.TotalBaseCost = q.MaterialsCost + laborCost
	q.SuggestedPrice = pricing.SuggestedSalePrice(q.MaterialsCost, laborCost)

	return q, nil
}
