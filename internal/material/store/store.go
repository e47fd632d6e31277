package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmarulanda/marqueteria/internal/material"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectMaterialColumns = `
	m.id, m.name, m.category, m.unit_mode, m.width_cm, m.length_cm,
	m.sheet_price, m.unit_cost, m.stock_on_hand, m.stock_minimum,
	m.supplier_id, m.created_at, m.updated_at
`

// scanMaterial reads one material row in selectMaterialColumns order.
func scanMaterial(s scanner) (*material.Material, error) {
	var (
		m                 material.Material
		categoryStr, mode string
		supplierID        *uuid.UUID
	)

	if err := s.Scan(
		&m.ID, &m.Name, &categoryStr, &mode, &m.WidthCM, &m.LengthCM,
		&m.SheetPrice, &m.UnitCost, &m.StockOnHand, &m.StockMinimum,
		&supplierID, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return nil, err
	}

	m.Category = material.Category(categoryStr)
	m.UnitMode = material.UnitMode(mode)
	m.SupplierID = supplierID

	return &m, nil
}

func (s *Store) CreateMaterial(ctx context.Context, m *material.Material) error {
	query := `
		INSERT INTO materials (name, category, unit_mode, width_cm, length_cm,
			sheet_price, unit_cost, stock_on_hand, stock_minimum, supplier_id,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		m.Name, m.Category, m.UnitMode, m.WidthCM, m.LengthCM,
		m.SheetPrice, m.UnitCost, m.StockOnHand, m.StockMinimum, m.SupplierID,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating material: %w", err)
	}

	return nil
}

func (s *Store) GetMaterial(ctx context.Context, id uuid.UUID) (*material.Material, error) {
	query := `SELECT ` + selectMaterialColumns + ` FROM materials m WHERE m.id = $1`

	m, err := scanMaterial(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, material.ErrNotFound
		}

		return nil, fmt.Errorf("getting material: %w", err)
	}

	return m, nil
}

func (s *Store) GetMaterialByName(ctx context.Context, name string) (*material.Material, error) {
	query := `SELECT ` + selectMaterialColumns + `
		FROM materials m
		WHERE LOWER(m.name) = LOWER($1)`

	m, err := scanMaterial(s.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, material.ErrNotFound
		}

		return nil, fmt.Errorf("getting material by name: %w", err)
	}

	return m, nil
}

func (s *Store) ListMaterials(ctx context.Context) ([]*material.Material, error) {
	query := `SELECT ` + selectMaterialColumns + ` FROM materials m ORDER BY m.name ASC`

	return s.queryMaterials(ctx, query)
}

func (s *Store) ListLowStock(ctx context.Context, limit int) ([]*material.Material, error) {
	query := `SELECT ` + selectMaterialColumns + `
		FROM materials m
		WHERE m.stock_on_hand < m.stock_minimum
		ORDER BY m.stock_on_hand / NULLIF(m.stock_minimum, 0) ASC NULLS FIRST
		LIMIT $1`

	return s.queryMaterials(ctx, query, limit)
}

func (s *Store) queryMaterials(ctx context.Context, query string, args ...any) ([]*material.Material, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing materials: %w", err)
	}
	defer rows.Close()

	var materials []*material.Material

	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning material: %w", err)
		}

		materials = append(materials, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating material rows: %w", err)
	}

	return materials, nil
}

// RecordPurchase overwrites the cost basis and increments stock in a single
// statement so concurrent purchases of the same material cannot lose an
// update.
func (s *Store) RecordPurchase(ctx context.Context, m *material.Material, quantity float64) error {
	query := `
		UPDATE materials
		SET width_cm = $1, length_cm = $2, sheet_price = $3, unit_cost = $4,
			supplier_id = $5, stock_on_hand = stock_on_hand + $6, updated_at = NOW()
		WHERE id = $7
		RETURNING stock_on_hand, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		m.WidthCM, m.LengthCM, m.SheetPrice, m.UnitCost,
		m.SupplierID, quantity, m.ID,
	).Scan(&m.StockOnHand, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return material.ErrNotFound
		}

		return fmt.Errorf("recording purchase: %w", err)
	}

	return nil
}

func (s *Store) SetStock(ctx context.Context, id uuid.UUID, stock float64, minimum *float64) error {
	query := `
		UPDATE materials
		SET stock_on_hand = GREATEST($1, 0),
			stock_minimum = COALESCE($2, stock_minimum),
			updated_at = NOW()
		WHERE id = $3
	`

	res, err := s.db.ExecContext(ctx, query, stock, minimum, id)
	if err != nil {
		return fmt.Errorf("setting stock: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return material.ErrNotFound
	}

	return nil
}

func (s *Store) BulkReprice(ctx context.Context, category material.Category, factor float64) (int, error) {
	query := `
		UPDATE materials
		SET unit_cost = ROUND(unit_cost * $1)::bigint,
			sheet_price = ROUND(sheet_price * $1)::bigint,
			updated_at = NOW()
		WHERE category = $2
	`

	res, err := s.db.ExecContext(ctx, query, factor, category)
	if err != nil {
		return 0, fmt.Errorf("bulk repricing: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("bulk repricing rows: %w", err)
	}

	return int(n), nil
}

func (s *Store) DeleteMaterial(ctx context.Context, id uuid.UUID) error {
	// Movements go with the material via ON DELETE CASCADE.
	res, err := s.db.ExecContext(ctx, `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting material: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return material.ErrNotFound
	}

	return nil
}

func (s *Store) InsertMovement(ctx context.Context, mv *material.Movement) error {
	query := `
		INSERT INTO movements (material_id, kind, quantity, unit_cost_at_time,
			total_cost, supplier_id, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		mv.MaterialID, mv.Kind, mv.Quantity, mv.UnitCostAtTime,
		mv.TotalCost, mv.SupplierID, mv.Reason,
	).Scan(&mv.ID, &mv.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting movement: %w", err)
	}

	return nil
}

func (s *Store) ListMovements(ctx context.Context, materialID uuid.UUID, limit int) ([]*material.Movement, error) {
	query := `
		SELECT id, material_id, kind, quantity, unit_cost_at_time,
			total_cost, supplier_id, reason, created_at
		FROM movements
		WHERE material_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, materialID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing movements: %w", err)
	}
	defer rows.Close()

	var movements []*material.Movement

	for rows.Next() {
		var (
			mv      material.Movement
			kindStr string
		)

		if err := rows.Scan(
			&mv.ID, &mv.MaterialID, &kindStr, &mv.Quantity, &mv.UnitCostAtTime,
			&mv.TotalCost, &mv.SupplierID, &mv.Reason, &mv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning movement: %w", err)
		}

		mv.Kind = material.MovementKind(kindStr)
		movements = append(movements, &mv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating movement rows: %w", err)
	}

	return movements, nil
}

func (s *Store) PurchasesSummary(ctx context.Context) (*material.PurchasesSummary, error) {
	query := `
		SELECT COALESCE(SUM(total_cost), 0), COALESCE(SUM(quantity), 0), COUNT(*)
		FROM movements
		WHERE kind = $1
	`

	var summary material.PurchasesSummary

	err := s.db.QueryRowContext(ctx, query, material.MovementPurchase).
		Scan(&summary.TotalInvested, &summary.TotalQuantity, &summary.Count)
	if err != nil {
		return nil, fmt.Errorf("summarizing purchases: %w", err)
	}

	return &summary, nil
}
