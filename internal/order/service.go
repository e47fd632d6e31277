package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmarulanda/marqueteria/internal/material"
	"github.com/dmarulanda/marqueteria/internal/pricing"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=order
type Repository interface {
	GetOrder(ctx context.Context, id uuid.UUID) (*Order, error)
	ListOrders(ctx context.Context, filter ListFilter) ([]*Order, error)
	UpdatePayment(ctx context.Context, id uuid.UUID, amountPaid int64, status Status) error

	// BeginSettlement opens the transactional unit used by Create and Void.
	// Everything done through the returned SettlementTx commits or rolls
	// back together, so stock, movements and the invoice are never visible
	// in a half-written state.
	BeginSettlement(ctx context.Context) (SettlementTx, error)
}

type SettlementTx interface {
	NextNumber(ctx context.Context) (int64, error)
	ResolveMaterial(ctx context.Context, id *uuid.UUID, name string) (*material.Material, error)
	ConsumeStock(ctx context.Context, materialID uuid.UUID, quantity float64) error
	RestoreStock(ctx context.Context, materialID uuid.UUID, quantity float64) error
	InsertMovement(ctx context.Context, mv *material.Movement) error
	InsertOrder(ctx context.Context, o *Order) error
	LockOrder(ctx context.Context, id uuid.UUID) (*Order, error)
	MarkVoided(ctx context.Context, id uuid.UUID) error
	Commit() error
	Rollback() error
}

type ListFilter struct {
	StartDate     *time.Time
	EndDate       *time.Time
	IncludeVoided bool
	Limit         int
}

// Service is the work-order state machine: creation debits stock and
// snapshots costs, payments move the derived status forward, voiding
// credits stock back. All money in whole COP.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ItemParams struct {
	MaterialID   *uuid.UUID
	MaterialName string
	WidthCM      float64
	LengthCM     float64
	LineTotal    int64
}

type CreateParams struct {
	Customer       Customer
	Measurements   string
	Items          []ItemParams
	LaborCost      int64
	SaleTotal      int64
	InitialPayment int64
}

// Create commits a sale: allocates the next OT number, snapshots material
// costs, debits stock and writes one sale movement per resolved item, all in
// one storage transaction. Items whose material cannot be resolved are still
// recorded with zeroed cost fields; partial identification never blocks a
// sale.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Order, error) {
	if len(params.Items) == 0 && params.LaborCost <= 0 {
		return nil, ErrEmptyOrder
	}

	if params.InitialPayment < 0 {
		params.InitialPayment = 0
	}

	tx, err := s.repo.BeginSettlement(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin settlement: %w", err)
	}
	defer tx.Rollback()

	seq, err := tx.NextNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("allocating order number: %w", err)
	}

	o := &Order{
		Number:       FormatNumber(seq),
		Customer:     params.Customer,
		Measurements: params.Measurements,
		LaborCost:    params.LaborCost,
		SaleTotal:    params.SaleTotal,
		AmountPaid:   params.InitialPayment,
	}

	for _, p := range params.Items {
		item, err := s.settleItem(ctx, tx, o, p)
		if err != nil {
			return nil, err
		}

		o.MaterialsCost += item.MaterialCost
		o.Items = append(o.Items, item)
	}

	o.Status = DeriveStatus(o.SaleTotal, o.AmountPaid, false)

	if err := tx.InsertOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("inserting order %s: %w", o.Number, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit settlement: %w", err)
	}

	return o, nil
}

func (s *Service) settleItem(ctx context.Context, tx SettlementTx, o *Order, p ItemParams) (LineItem, error) {
	item := LineItem{
		MaterialName: p.MaterialName,
		WidthCM:      p.WidthCM,
		LengthCM:     p.LengthCM,
		AreaM2:       pricing.AreaM2(p.WidthCM, p.LengthCM),
		LineTotal:    p.LineTotal,
	}

	m, err := tx.ResolveMaterial(ctx, p.MaterialID, p.MaterialName)
	if err != nil {
		if errors.Is(err, material.ErrNotFound) {
			return item, nil
		}

		return item, fmt.Errorf("resolving material for item %q: %w", p.MaterialName, err)
	}

	item.MaterialID = &m.ID
	item.MaterialName = m.Name
	item.UnitCost = m.UnitCost
	item.MaterialCost = pricing.LineMaterialCost(p.WidthCM, p.LengthCM, m.UnitCost)
	item.Consumed = item.AreaM2

	if m.UnitMode == material.UnitLinear {
		item.Consumed = pricing.LinearM(p.LengthCM)
	}

	if item.Consumed > 0 {
		if err := tx.ConsumeStock(ctx, m.ID, item.Consumed); err != nil {
			return item, fmt.Errorf("consuming stock of %q: %w", m.Name, err)
		}

		mv := &material.Movement{
			MaterialID:     m.ID,
			Kind:           material.MovementSale,
			Quantity:       item.Consumed,
			UnitCostAtTime: m.UnitCost,
			TotalCost:      item.MaterialCost,
			Reason:         fmt.Sprintf("Venta %s - %s", o.Number, o.Customer.Name),
		}
		if err := tx.InsertMovement(ctx, mv); err != nil {
			return item, fmt.Errorf("writing sale movement for %q: %w", m.Name, err)
		}
	}

	return item, nil
}

// ApplyPayment adds a partial payment and re-derives the status. Paid never
// reverts here, and voided orders do not take payments.
func (s *Service) ApplyPayment(ctx context.Context, id uuid.UUID, amount int64) (*Order, error) {
	if amount <= 0 {
		return nil, ErrInvalidPayment
	}

	o, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if o.Status == StatusVoided {
		return nil, fmt.Errorf("order %s is voided: %w", o.Number, ErrInvalidPayment)
	}

	o.AmountPaid += amount
	o.Status = DeriveStatus(o.SaleTotal, o.AmountPaid, false)

	if err := s.repo.UpdatePayment(ctx, id, o.AmountPaid, o.Status); err != nil {
		return nil, fmt.Errorf("applying payment to %s: %w", o.Number, err)
	}

	return o, nil
}

// Void cancels an order: every resolved line item's consumed stock is
// credited back with a reversal movement, then the order is flagged voided.
// Runs in one storage transaction and is idempotent — a second void finds
// the flag and returns ErrAlreadyVoided without touching stock.
func (s *Service) Void(ctx context.Context, id uuid.UUID) (*Order, error) {
	tx, err := s.repo.BeginSettlement(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin settlement: %w", err)
	}
	defer tx.Rollback()

	o, err := tx.LockOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if o.Status == StatusVoided {
		return nil, fmt.Errorf("%s: %w", o.Number, ErrAlreadyVoided)
	}

	for _, item := range o.Items {
		if item.MaterialID == nil || item.Consumed <= 0 {
			continue
		}

		if err := tx.RestoreStock(ctx, *item.MaterialID, item.Consumed); err != nil {
			return nil, fmt.Errorf("restoring stock for %q: %w", item.MaterialName, err)
		}

		mv := &material.Movement{
			MaterialID:     *item.MaterialID,
			Kind:           material.MovementReversal,
			Quantity:       item.Consumed,
			UnitCostAtTime: item.UnitCost,
			TotalCost:      item.MaterialCost,
			Reason:         fmt.Sprintf("Anulación %s", o.Number),
		}
		if err := tx.InsertMovement(ctx, mv); err != nil {
			return nil, fmt.Errorf("writing reversal movement for %q: %w", item.MaterialName, err)
		}
	}

	if err := tx.MarkVoided(ctx, id); err != nil {
		return nil, fmt.Errorf("voiding %s: %w", o.Number, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit void: %w", err)
	}

	now := time.Now()
	o.Status = StatusVoided
	o.VoidedAt = &now

	return o, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	return s.repo.GetOrder(ctx, id)
}

// ListRecent returns the latest orders for the counter screen.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*Order, error) {
	if limit <= 0 {
		limit = 50
	}

	return s.repo.ListOrders(ctx, ListFilter{IncludeVoided: true, Limit: limit})
}

// DailyReport aggregates non-voided orders in the range. Per order,
// profit = sale total - (materials cost + labor). No orders in range is a
// valid, empty result.
func (s *Service) DailyReport(ctx context.Context, start, end time.Time) (*Report, error) {
	orders, err := s.repo.ListOrders(ctx, ListFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		return nil, err
	}

	report := &Report{Rows: make([]ReportRow, 0, len(orders))}

	for _, o := range orders {
		profit := o.SaleTotal - (o.MaterialsCost + o.LaborCost)

		report.Rows = append(report.Rows, ReportRow{
			Number:        o.Number,
			Customer:      o.Customer.Name,
			SaleTotal:     o.SaleTotal,
			MaterialsCost: o.MaterialsCost,
			LaborCost:     o.LaborCost,
			Profit:        profit,
			AmountPaid:    o.AmountPaid,
			BalanceDue:    o.BalanceDue(),
			Status:        o.Status,
			CreatedAt:     o.CreatedAt,
		})

		report.TotalSales += o.SaleTotal
		report.TotalProfit += profit
	}

	return report, nil
}
