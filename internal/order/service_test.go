package order_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dmarulanda/marqueteria/internal/material"
	"github.com/dmarulanda/marqueteria/internal/order"
)

func TestDeriveStatus(t *testing.T) {
	type testCase struct {
		name       string
		saleTotal  int64
		amountPaid int64
		voided     bool
		want       order.Status
	}

	tests := []testCase{
		{name: "NothingPaid", saleTotal: 100000, amountPaid: 0, want: order.StatusPending},
		{name: "PartiallyPaid", saleTotal: 100000, amountPaid: 30000, want: order.StatusPartiallyPaid},
		{name: "ExactlyPaid", saleTotal: 100000, amountPaid: 100000, want: order.StatusPaid},
		{name: "Overpaid", saleTotal: 100000, amountPaid: 120000, want: order.StatusPaid},
		{name: "VoidedWins", saleTotal: 100000, amountPaid: 100000, voided: true, want: order.StatusVoided},
		{name: "ZeroTotalPaid", saleTotal: 0, amountPaid: 1, want: order.StatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, order.DeriveStatus(tt.saleTotal, tt.amountPaid, tt.voided))
		})
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "OT-000001", order.FormatNumber(1))
	assert.Equal(t, "OT-000042", order.FormatNumber(42))
	assert.Equal(t, "OT-123456", order.FormatNumber(123456))
}

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := order.NewMockRepository(ctrl)
	stx := order.NewMockSettlementTx(ctrl)
	svc := order.NewService(repo)

	glassID := uuid.New()

	repo.EXPECT().BeginSettlement(gomock.Any()).Return(stx, nil)
	stx.EXPECT().NextNumber(gomock.Any()).Return(int64(7), nil)

	stx.EXPECT().
		ResolveMaterial(gomock.Any(), gomock.Nil(), "Vidrio 3mm").
		Return(&material.Material{
			ID:       glassID,
			Name:     "Vidrio 3mm",
			UnitMode: material.UnitArea,
			UnitCost: 29426,
		}, nil)

	// 40x50 cut consumes 0.2 m².
	stx.EXPECT().ConsumeStock(gomock.Any(), glassID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, quantity float64) error {
			assert.InDelta(t, 0.2, quantity, 1e-9)
			return nil
		})

	stx.EXPECT().InsertMovement(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, mv *material.Movement) error {
			assert.Equal(t, material.MovementSale, mv.Kind)
			assert.InDelta(t, 0.2, mv.Quantity, 1e-9)
			assert.Equal(t, int64(5885), mv.TotalCost)
			assert.Contains(t, mv.Reason, "OT-000007")
			return nil
		})

	stx.EXPECT().InsertOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, o *order.Order) error {
			o.ID = uuid.New()
			o.CreatedAt = time.Now()
			return nil
		})
	stx.EXPECT().Commit().Return(nil)
	stx.EXPECT().Rollback().Return(nil)

	o, err := svc.Create(context.Background(), order.CreateParams{
		Customer:  order.Customer{Name: "Carlos"},
		LaborCost: 20000,
		SaleTotal: 37655,
		Items: []order.ItemParams{
			{MaterialName: "Vidrio 3mm", WidthCM: 40, LengthCM: 50, LineTotal: 17655},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "OT-000007", o.Number)
	assert.Equal(t, int64(5885), o.MaterialsCost)
	assert.Equal(t, order.StatusPending, o.Status)
	require.Len(t, o.Items, 1)
	assert.Equal(t, int64(29426), o.Items[0].UnitCost)
	assert.InDelta(t, 0.2, o.Items[0].Consumed, 1e-9)
}

// A moulding is consumed by linear meter, not area.
func TestService_Create_LinearItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := order.NewMockRepository(ctrl)
	stx := order.NewMockSettlementTx(ctrl)
	svc := order.NewService(repo)

	frameID := uuid.New()

	repo.EXPECT().BeginSettlement(gomock.Any()).Return(stx, nil)
	stx.EXPECT().NextNumber(gomock.Any()).Return(int64(1), nil)

	stx.EXPECT().
		ResolveMaterial(gomock.Any(), &frameID, gomock.Any()).
		Return(&material.Material{
			ID:       frameID,
			Name:     "Moldura cedro",
			UnitMode: material.UnitLinear,
			UnitCost: 5000,
		}, nil)

	stx.EXPECT().ConsumeStock(gomock.Any(), frameID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, quantity float64) error {
			assert.InDelta(t, 1.8, quantity, 1e-9)
			return nil
		})
	stx.EXPECT().InsertMovement(gomock.Any(), gomock.Any()).Return(nil)
	stx.EXPECT().InsertOrder(gomock.Any(), gomock.Any()).Return(nil)
	stx.EXPECT().Commit().Return(nil)
	stx.EXPECT().Rollback().Return(nil)

	o, err := svc.Create(context.Background(), order.CreateParams{
		Customer:  order.Customer{Name: "Marta"},
		SaleTotal: 50000,
		Items: []order.ItemParams{
			{MaterialID: &frameID, MaterialName: "Moldura cedro", WidthCM: 40, LengthCM: 180},
		},
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.8, o.Items[0].Consumed, 1e-9)
}

// An unknown material never blocks the sale: the item lands with zeroed
// cost fields and no stock is touched for it.
func TestService_Create_UnresolvedItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := order.NewMockRepository(ctrl)
	stx := order.NewMockSettlementTx(ctrl)
	svc := order.NewService(repo)

	repo.EXPECT().BeginSettlement(gomock.Any()).Return(stx, nil)
	stx.EXPECT().NextNumber(gomock.Any()).Return(int64(2), nil)
	stx.EXPECT().
		ResolveMaterial(gomock.Any(), gomock.Nil(), "Marco dorado viejo").
		Return(nil, material.ErrNotFound)
	stx.EXPECT().InsertOrder(gomock.Any(), gomock.Any()).Return(nil)
	stx.EXPECT().Commit().Return(nil)
	stx.EXPECT().Rollback().Return(nil)

	o, err := svc.Create(context.Background(), order.CreateParams{
		Customer:  order.Customer{Name: "Ana"},
		SaleTotal: 30000,
		Items: []order.ItemParams{
			{MaterialName: "Marco dorado viejo", WidthCM: 30, LengthCM: 40, LineTotal: 30000},
		},
	})
	require.NoError(t, err)

	require.Len(t, o.Items, 1)
	assert.Nil(t, o.Items[0].MaterialID)
	assert.Zero(t, o.Items[0].MaterialCost)
	assert.Zero(t, o.Items[0].Consumed)
}

func TestService_Create_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := order.NewMockRepository(ctrl)
	svc := order.NewService(repo)

	_, err := svc.Create(context.Background(), order.CreateParams{
		Customer: order.Customer{Name: "Pedro"},
	})
	assert.ErrorIs(t, err, order.ErrEmptyOrder)
}

func TestService_Create_InitialPaymentSetsStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := order.NewMockRepository(ctrl)
	stx := order.NewMockSettlementTx(ctrl)
	svc := order.NewService(repo)

	repo.EXPECT().BeginSettlement(gomock.Any()).Return(stx, nil)
	stx.EXPECT().NextNumber(gomock.Any()).Return(int64(3), nil)
	stx.EXPECT().InsertOrder(gomock.Any(), gomock.Any()).Return(nil)
	stx.EXPECT().Commit().Return(nil)
	stx.EXPECT().Rollback().Return(nil)

	o, err := svc.Create(context.Background(), order.CreateParams{
		Customer:       order.Customer{Name: "Lucía"},
		LaborCost:      20000,
		SaleTotal:      100000,
		InitialPayment: 30000,
	})
	require.NoError(t, err)
	assert.Equal(t, order.StatusPartiallyPaid, o.Status)
	assert.Equal(t, int64(70000), o.BalanceDue())
}

func TestService_ApplyPayment(t *testing.T) {
	type testCase struct {
		name       string
		amount     int64
		setupMock  func(repo *order.MockRepository, id uuid.UUID)
		wantErr    error
		wantStatus order.Status
	}

	tests := []testCase{
		{
			name:   "PartialThenDerived",
			amount: 30000,
			setupMock: func(repo *order.MockRepository, id uuid.UUID) {
				repo.EXPECT().GetOrder(gomock.Any(), id).Return(&order.Order{
					ID:        id,
					Number:    "OT-000001",
					SaleTotal: 100000,
				}, nil)
				repo.EXPECT().
					UpdatePayment(gomock.Any(), id, int64(30000), order.StatusPartiallyPaid).
					Return(nil)
			},
			wantStatus: order.StatusPartiallyPaid,
		},
		{
			name:   "CompletesToPaid",
			amount: 70000,
			setupMock: func(repo *order.MockRepository, id uuid.UUID) {
				repo.EXPECT().GetOrder(gomock.Any(), id).Return(&order.Order{
					ID:         id,
					Number:     "OT-000001",
					SaleTotal:  100000,
					AmountPaid: 30000,
					Status:     order.StatusPartiallyPaid,
				}, nil)
				repo.EXPECT().
					UpdatePayment(gomock.Any(), id, int64(100000), order.StatusPaid).
					Return(nil)
			},
			wantStatus: order.StatusPaid,
		},
		{
			name:    "ZeroAmount",
			amount:  0,
			wantErr: order.ErrInvalidPayment,
		},
		{
			name:    "NegativeAmount",
			amount:  -500,
			wantErr: order.ErrInvalidPayment,
		},
		{
			name:   "VoidedOrder",
			amount: 10000,
			setupMock: func(repo *order.MockRepository, id uuid.UUID) {
				repo.EXPECT().GetOrder(gomock.Any(), id).Return(&order.Order{
					ID:     id,
					Number: "OT-000001",
					Status: order.StatusVoided,
				}, nil)
			},
			wantErr: order.ErrInvalidPayment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := order.NewMockRepository(ctrl)

			id := uuid.New()
			if tt.setupMock != nil {
				tt.setupMock(repo, id)
			}

			svc := order.NewService(repo)
			o, err := svc.ApplyPayment(context.Background(), id, tt.amount)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, o.Status)
		})
	}
}

func TestService_Void(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := order.NewMockRepository(ctrl)
	stx := order.NewMockSettlementTx(ctrl)
	svc := order.NewService(repo)

	id := uuid.New()
	glassID := uuid.New()

	repo.EXPECT().BeginSettlement(gomock.Any()).Return(stx, nil)
	stx.EXPECT().LockOrder(gomock.Any(), id).Return(&order.Order{
		ID:     id,
		Number: "OT-000007",
		Status: order.StatusPaid,
		Items: []order.LineItem{
			{
				MaterialID:   &glassID,
				MaterialName: "Vidrio 3mm",
				UnitCost:     29426,
				MaterialCost: 5885,
				Consumed:     0.2,
			},
			// Unresolved item, nothing to credit back.
			{MaterialName: "Marco dorado viejo"},
		},
	}, nil)

	stx.EXPECT().RestoreStock(gomock.Any(), glassID, 0.2).Return(nil)
	stx.EXPECT().InsertMovement(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, mv *material.Movement) error {
			assert.Equal(t, material.MovementReversal, mv.Kind)
			assert.InDelta(t, 0.2, mv.Quantity, 1e-9)
			assert.Contains(t, mv.Reason, "OT-000007")
			return nil
		})
	stx.EXPECT().MarkVoided(gomock.Any(), id).Return(nil)
	stx.EXPECT().Commit().Return(nil)
	stx.EXPECT().Rollback().Return(nil)

	o, err := svc.Void(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, order.StatusVoided, o.Status)
	assert.NotNil(t, o.VoidedAt)
}

func TestService_Void_AlreadyVoided(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := order.NewMockRepository(ctrl)
	stx := order.NewMockSettlementTx(ctrl)
	svc := order.NewService(repo)

	id := uuid.New()

	repo.EXPECT().BeginSettlement(gomock.Any()).Return(stx, nil)
	stx.EXPECT().LockOrder(gomock.Any(), id).Return(&order.Order{
		ID:     id,
		Number: "OT-000007",
		Status: order.StatusVoided,
	}, nil)
	stx.EXPECT().Rollback().Return(nil)

	_, err := svc.Void(context.Background(), id)
	assert.ErrorIs(t, err, order.ErrAlreadyVoided)
}

func TestService_Void_RestoreFailureRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := order.NewMockRepository(ctrl)
	stx := order.NewMockSettlementTx(ctrl)
	svc := order.NewService(repo)

	id := uuid.New()
	glassID := uuid.New()

	repo.EXPECT().BeginSettlement(gomock.Any()).Return(stx, nil)
	stx.EXPECT().LockOrder(gomock.Any(), id).Return(&order.Order{
		ID:     id,
		Number: "OT-000007",
		Items: []order.LineItem{
			{MaterialID: &glassID, MaterialName: "Vidrio 3mm", Consumed: 0.2},
		},
	}, nil)
	stx.EXPECT().RestoreStock(gomock.Any(), glassID, 0.2).Return(errors.New("db down"))
	stx.EXPECT().Rollback().Return(nil)

	_, err := svc.Void(context.Background(), id)
	assert.Error(t, err)
}

func TestService_DailyReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := order.NewMockRepository(ctrl)
	svc := order.NewService(repo)

	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	end := start.Add(24 * time.Hour)

	repo.EXPECT().
		ListOrders(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter order.ListFilter) ([]*order.Order, error) {
			assert.False(t, filter.IncludeVoided)
			require.NotNil(t, filter.StartDate)
			assert.Equal(t, start, *filter.StartDate)

			return []*order.Order{
				{
					Number:        "OT-000001",
					Customer:      order.Customer{Name: "Carlos"},
					SaleTotal:     37655,
					MaterialsCost: 5885,
					LaborCost:     20000,
					AmountPaid:    37655,
					Status:        order.StatusPaid,
				},
				{
					Number:        "OT-000002",
					Customer:      order.Customer{Name: "Ana"},
					SaleTotal:     100000,
					MaterialsCost: 30000,
					LaborCost:     10000,
					AmountPaid:    40000,
					Status:        order.StatusPartiallyPaid,
				},
			}, nil
		})

	report, err := svc.DailyReport(context.Background(), start, end)
	require.NoError(t, err)

	require.Len(t, report.Rows, 2)
	assert.Equal(t, int64(11770), report.Rows[0].Profit)
	assert.Equal(t, int64(60000), report.Rows[1].Profit)
	assert.Equal(t, int64(60000), report.Rows[1].BalanceDue)
	assert.Equal(t, int64(137655), report.TotalSales)
	assert.Equal(t, int64(71770), report.TotalProfit)
}

func TestService_DailyReport_EmptyRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := order.NewMockRepository(ctrl)
	svc := order.NewService(repo)

	repo.EXPECT().ListOrders(gomock.Any(), gomock.Any()).Return(nil, nil)

	report, err := svc.DailyReport(context.Background(), time.Now(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, report.Rows)
	assert.Zero(t, report.TotalSales)
	assert.Zero(t, report.TotalProfit)
}
