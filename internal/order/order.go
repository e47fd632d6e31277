package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when an order id does not exist.
	ErrNotFound = errors.New("order not found")
	// ErrAlreadyVoided is returned when voiding an order that was already
	// voided; stock is not credited a second time.
	ErrAlreadyVoided = errors.New("order already voided")
	// ErrEmptyOrder rejects orders carrying neither materials nor labor.
	ErrEmptyOrder = errors.New("order needs at least one item or a labor cost")
	// ErrInvalidPayment rejects non-positive payment amounts and payments
	// against voided orders.
	ErrInvalidPayment = errors.New("payment amount must be positive")
)

// Status is the settlement state of a work order. It is derived from
// amount paid versus sale total on every save; voided is terminal and only
// reachable through Void.
type Status string

const (
	StatusPending       Status = "pending"
	StatusPartiallyPaid Status = "partially_paid"
	StatusPaid          Status = "paid"
	StatusVoided        Status = "voided"
)

// DeriveStatus computes the payment state. A voided order never reverts.
func DeriveStatus(saleTotal, amountPaid int64, voided bool) Status {
	switch {
	case voided:
		return StatusVoided
	case amountPaid <= 0:
		return StatusPending
	case amountPaid < saleTotal:
		return StatusPartiallyPaid
	default:
		return StatusPaid
	}
}

// FormatNumber renders the OT series number. The zero-padded 6-digit format
// is a compatibility contract with report and export consumers.
func FormatNumber(n int64) string {
	return fmt.Sprintf("OT-%06d", n)
}

type Customer struct {
	Name  string
	Phone string
}

// LineItem is one cut inside a work order. UnitCost and MaterialCost are
// snapshots of the material's cost at sale time; they are never recomputed
// later. Consumed is the stock actually debited (m² for sheet materials,
// linear meters for mouldings) and is what a void credits back.
type LineItem struct {
	ID           uuid.UUID
	MaterialID   *uuid.UUID
	MaterialName string
	WidthCM      float64
	LengthCM     float64
	AreaM2       float64
	UnitCost     int64
	MaterialCost int64
	LineTotal    int64
	Consumed     float64
}

// Order is a committed sale ("OT", orden de trabajo).
type Order struct {
	ID            uuid.UUID
	Number        string
	Customer      Customer
	Measurements  string
	Items         []LineItem
	LaborCost     int64
	MaterialsCost int64 // recomputed server-side from item snapshots
	SaleTotal     int64 // asserted by the counter, rounded
	AmountPaid    int64
	Status        Status
	CreatedAt     time.Time
	VoidedAt      *time.Time
}

// BalanceDue is always derived, never stored independently.
func (o *Order) BalanceDue() int64 {
	if due := o.SaleTotal - o.AmountPaid; due > 0 {
		return due
	}

	return 0
}

// ReportRow is one order in the daily sales report.
type ReportRow struct {
	Number        string
	Customer      string
	SaleTotal     int64
	MaterialsCost int64
	LaborCost     int64
	Profit        int64
	AmountPaid    int64
	BalanceDue    int64
	Status        Status
	CreatedAt     time.Time
}

// Report is the daily aggregation. An empty range yields an empty report,
// not an error.
type Report struct {
	Rows        []ReportRow
	TotalSales  int64
	TotalProfit int64
}
