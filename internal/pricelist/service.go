// Package pricelist imports supplier price lists. Every accepted row lands
// as a regular purchase through the material ledger, so imported stock gets
// the same movement trail as stock typed in by hand.
package pricelist

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmarulanda/marqueteria/internal/encoding"
	"github.com/dmarulanda/marqueteria/internal/material"
)

type Service struct {
	materials *material.Service
	parser    *Parser
}

func NewService(materials *material.Service) *Service {
	return &Service{materials: materials, parser: NewParser()}
}

// Result summarizes one import run. Rows that fail to register are counted
// and logged, not fatal; a supplier typo should not abort the rest of the
// file.
type Result struct {
	Imported int
	Failed   int
	Rows     []*material.Material
}

func (s *Service) Import(ctx context.Context, r io.Reader, supplierID *uuid.UUID) (*Result, error) {
	decoded, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("decoding price list: %w", err)
	}

	rows, err := s.parser.Parse(decoded)
	if err != nil {
		return nil, err
	}

	result := &Result{}

	for _, row := range rows {
		m, err := s.materials.RegisterPurchase(ctx, material.PurchaseParams{
			Name:       row.Name,
			WidthCM:    row.WidthCM,
			LengthCM:   row.LengthCM,
			SheetPrice: row.SheetPrice,
			SheetCount: row.SheetCount,
			SupplierID: supplierID,
		})
		if err != nil {
			slog.Error("price list row failed", "material", row.Name, "error", err)

			result.Failed++

			continue
		}

		result.Imported++
		result.Rows = append(result.Rows, m)
	}

	return result, nil
}
