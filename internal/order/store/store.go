package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmarulanda/marqueteria/internal/material"
	"github.com/dmarulanda/marqueteria/internal/order"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// querier is satisfied by both *sql.DB and *sql.Tx, so order loading can be
// shared between plain reads and the settlement transaction.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

const selectOrderColumns = `
	o.id, o.number, o.customer_name, o.customer_phone, o.measurements,
	o.labor_cost, o.materials_cost, o.sale_total, o.amount_paid, o.status,
	o.created_at, o.voided_at
`

func scanOrder(row *sql.Row) (*order.Order, error) {
	var (
		o         order.Order
		statusStr string
	)

	if err := row.Scan(
		&o.ID, &o.Number, &o.Customer.Name, &o.Customer.Phone, &o.Measurements,
		&o.LaborCost, &o.MaterialsCost, &o.SaleTotal, &o.AmountPaid, &statusStr,
		&o.CreatedAt, &o.VoidedAt,
	); err != nil {
		return nil, err
	}

	o.Status = order.Status(statusStr)

	return &o, nil
}

func loadItems(ctx context.Context, q querier, orderID uuid.UUID) ([]order.LineItem, error) {
	query := `
		SELECT id, material_id, material_name, width_cm, length_cm, area_m2,
			unit_cost, material_cost, line_total, consumed
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at ASC
	`

	rows, err := q.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("listing order items: %w", err)
	}
	defer rows.Close()

	var items []order.LineItem

	for rows.Next() {
		var item order.LineItem

		if err := rows.Scan(
			&item.ID, &item.MaterialID, &item.MaterialName, &item.WidthCM,
			&item.LengthCM, &item.AreaM2, &item.UnitCost, &item.MaterialCost,
			&item.LineTotal, &item.Consumed,
		); err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order item rows: %w", err)
	}

	return items, nil
}

func (s *Store) GetOrder(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	query := `SELECT ` + selectOrderColumns + ` FROM orders o WHERE o.id = $1`

	o, err := scanOrder(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, order.ErrNotFound
		}

		return nil, fmt.Errorf("getting order: %w", err)
	}

	o.Items, err = loadItems(ctx, s.db, o.ID)
	if err != nil {
		return nil, err
	}

	return o, nil
}

func (s *Store) ListOrders(ctx context.Context, filter order.ListFilter) ([]*order.Order, error) {
	query := `SELECT ` + selectOrderColumns + ` FROM orders o WHERE 1=1`

	var args []any

	argIdx := 1

	if !filter.IncludeVoided {
		query += fmt.Sprintf(" AND o.status <> $%d", argIdx)

		args = append(args, order.StatusVoided)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND o.created_at >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND o.created_at <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY o.created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)

		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	var orders []*order.Order

	for rows.Next() {
		var (
			o         order.Order
			statusStr string
		)

		if err := rows.Scan(
			&o.ID, &o.Number, &o.Customer.Name, &o.Customer.Phone, &o.Measurements,
			&o.LaborCost, &o.MaterialsCost, &o.SaleTotal, &o.AmountPaid, &statusStr,
			&o.CreatedAt, &o.VoidedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}

		o.Status = order.Status(statusStr)
		orders = append(orders, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	for _, o := range orders {
		if o.Items, err = loadItems(ctx, s.db, o.ID); err != nil {
			return nil, err
		}
	}

	return orders, nil
}

func (s *Store) UpdatePayment(ctx context.Context, id uuid.UUID, amountPaid int64, status order.Status) error {
	query := `
		UPDATE orders
		SET amount_paid = $1, status = $2
		WHERE id = $3 AND status <> $4
	`

	res, err := s.db.ExecContext(ctx, query, amountPaid, status, id, order.StatusVoided)
	if err != nil {
		return fmt.Errorf("updating payment: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return order.ErrNotFound
	}

	return nil
}

type settlementTx struct {
	tx *sql.Tx
}

// BeginSettlement opens the single database transaction that order creation
// and voiding run inside. The OT counter row is bumped within the same
// transaction, so concurrent creations serialize on it and numbers stay
// dense and unique.
func (s *Store) BeginSettlement(ctx context.Context) (order.SettlementTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning settlement tx: %w", err)
	}

	return &settlementTx{tx: tx}, nil
}

func (t *settlementTx) Commit() error   { return t.tx.Commit() }
func (t *settlementTx) Rollback() error { return t.tx.Rollback() }

func (t *settlementTx) NextNumber(ctx context.Context) (int64, error) {
	var n int64

	err := t.tx.QueryRowContext(ctx,
		`UPDATE order_counter SET value = value + 1 RETURNING value`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("bumping order counter: %w", err)
	}

	return n, nil
}

func (t *settlementTx) ResolveMaterial(ctx context.Context, id *uuid.UUID, name string) (*material.Material, error) {
	query := `
		SELECT id, name, unit_mode, unit_cost
		FROM materials
	`

	var row *sql.Row

	if id != nil {
		row = t.tx.QueryRowContext(ctx, query+`WHERE id = $1`, *id)
	} else {
		row = t.tx.QueryRowContext(ctx, query+`WHERE LOWER(name) = LOWER($1)`, name)
	}

	var (
		m    material.Material
		mode string
	)

	if err := row.Scan(&m.ID, &m.Name, &mode, &m.UnitCost); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, material.ErrNotFound
		}

		return nil, fmt.Errorf("resolving material: %w", err)
	}

	m.UnitMode = material.UnitMode(mode)

	return &m, nil
}

func (t *settlementTx) ConsumeStock(ctx context.Context, materialID uuid.UUID, quantity float64) error {
	// Floored at zero: a sale is never blocked by missing stock, the level
	// just bottoms out.
	query := `
		UPDATE materials
		SET stock_on_hand = GREATEST(stock_on_hand - $1, 0), updated_at = NOW()
		WHERE id = $2
	`

	if _, err := t.tx.ExecContext(ctx, query, quantity, materialID); err != nil {
		return fmt.Errorf("consuming stock: %w", err)
	}

	return nil
}

func (t *settlementTx) RestoreStock(ctx context.Context, materialID uuid.UUID, quantity float64) error {
	query := `
		UPDATE materials
		SET stock_on_hand = stock_on_hand + $1, updated_at = NOW()
		WHERE id = $2
	`

	if _, err := t.tx.ExecContext(ctx, query, quantity, materialID); err != nil {
		return fmt.Errorf("restoring stock: %w", err)
	}

	return nil
}

func (t *settlementTx) InsertMovement(ctx context.Context, mv *material.Movement) error {
	query := `
		INSERT INTO movements (material_id, kind, quantity, unit_cost_at_time,
			total_cost, supplier_id, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		mv.MaterialID, mv.Kind, mv.Quantity, mv.UnitCostAtTime,
		mv.TotalCost, mv.SupplierID, mv.Reason,
	).Scan(&mv.ID, &mv.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting movement: %w", err)
	}

	return nil
}

func (t *settlementTx) InsertOrder(ctx context.Context, o *order.Order) error {
	query := `
		INSERT INTO orders (number, customer_name, customer_phone, measurements,
			labor_cost, materials_cost, sale_total, amount_paid, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		o.Number, o.Customer.Name, o.Customer.Phone, o.Measurements,
		o.LaborCost, o.MaterialsCost, o.SaleTotal, o.AmountPaid, o.Status,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, material_id, material_name, width_cm,
			length_cm, area_m2, unit_cost, material_cost, line_total, consumed,
			created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING id
	`

	for i := range o.Items {
		item := &o.Items[i]

		err := t.tx.QueryRowContext(ctx, itemQuery,
			o.ID, item.MaterialID, item.MaterialName, item.WidthCM,
			item.LengthCM, item.AreaM2, item.UnitCost, item.MaterialCost,
			item.LineTotal, item.Consumed,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("inserting order item: %w", err)
		}
	}

	return nil
}

// LockOrder loads an order with a row lock so a concurrent void of the same
// order waits and then sees the voided flag.
func (t *settlementTx) LockOrder(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	query := `SELECT ` + selectOrderColumns + ` FROM orders o WHERE o.id = $1 FOR UPDATE`

	o, err := scanOrder(t.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, order.ErrNotFound
		}

		return nil, fmt.Errorf("locking order: %w", err)
	}

	o.Items, err = loadItems(ctx, t.tx, o.ID)
	if err != nil {
		return nil, err
	}

	return o, nil
}

func (t *settlementTx) MarkVoided(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE orders
		SET status = $1, voided_at = NOW()
		WHERE id = $2
	`

	if _, err := t.tx.ExecContext(ctx, query, order.StatusVoided, id); err != nil {
		return fmt.Errorf("marking order voided: %w", err)
	}

	return nil
}
