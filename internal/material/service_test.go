package material_test

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
)

func TestService_RegisterPurchase_NewMaterial(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := material.NewMockRepository(ctrl)
	svc := material.NewService(repo)

	repo.EXPECT().
		GetMaterialByName(gomock.Any(), "Vidrio 3mm").
		Return(nil, material.ErrNotFound)

	repo.EXPECT().
		CreateMaterial(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m *material.Material) error {
			assert.Equal(t, material.CategoryGlass, m.Category)
			assert.Equal(t, material.UnitArea, m.UnitMode)

			m.ID = uuid.New()
			m.CreatedAt = time.Now()
			return nil
		})

	repo.EXPECT().
		RecordPurchase(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m *material.Material, quantity float64) error {
			// One full 183x244 sheet is 4.4652 m².
			assert.InDelta(t, 4.4652, quantity, 1e-9)
			assert.Equal(t, int64(131378), m.SheetPrice)
			assert.Equal(t, int64(29423), m.UnitCost)

			m.StockOnHand += quantity
			return nil
		})

	repo.EXPECT().
		InsertMovement(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, mv *material.Movement) error {
			assert.Equal(t, material.MovementPurchase, mv.Kind)
			assert.InDelta(t, 4.4652, mv.Quantity, 1e-9)
			assert.Equal(t, int64(131378), mv.TotalCost)
			return nil
		})

	m, err := svc.RegisterPurchase(context.Background(), material.PurchaseParams{
		Name:       "Vidrio 3mm",
		WidthCM:    183,
		LengthCM:   244,
		SheetPrice: 131378,
		SheetCount: 1,
	})
	require.NoError(t, err)
	assert.InDelta(t, 4.4652, m.StockOnHand, 1e-9)
}

func TestService_RegisterPurchase_LinearMaterial(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := material.NewMockRepository(ctrl)
	svc := material.NewService(repo)

	id := uuid.New()
	existing := &material.Material{
		ID:       id,
		Name:     "Moldura cedro",
		Category: material.CategoryFrame,
		UnitMode: material.UnitLinear,
	}

	repo.EXPECT().GetMaterial(gomock.Any(), id).Return(existing, nil)

	repo.EXPECT().
		RecordPurchase(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m *material.Material, quantity float64) error {
			// Two 300 cm sticks: 6 linear meters, 15000/3m = 5000/m.
			assert.InDelta(t, 6.0, quantity, 1e-9)
			assert.Equal(t, int64(5000), m.UnitCost)
			return nil
		})

	repo.EXPECT().InsertMovement(gomock.Any(), gomock.Any()).Return(nil)

	_, err := svc.RegisterPurchase(context.Background(), material.PurchaseParams{
		MaterialID: &id,
		LengthCM:   300,
		SheetPrice: 15000,
		SheetCount: 2,
	})
	require.NoError(t, err)
}

func TestService_RegisterPurchase_ZeroAreaKeepsCost(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := material.NewMockRepository(ctrl)
	svc := material.NewService(repo)

	id := uuid.New()

	repo.EXPECT().GetMaterial(gomock.Any(), id).Return(&material.Material{
		ID:       id,
		Name:     "Vidrio 3mm",
		UnitMode: material.UnitArea,
		UnitCost: 29423,
	}, nil)

	repo.EXPECT().
		RecordPurchase(gomock.Any(), gomock.Any(), float64(0)).
		DoAndReturn(func(_ context.Context, m *material.Material, _ float64) error {
			assert.Equal(t, int64(29423), m.UnitCost)
			return nil
		})

	repo.EXPECT().InsertMovement(gomock.Any(), gomock.Any()).Return(nil)

	_, err := svc.RegisterPurchase(context.Background(), material.PurchaseParams{
		MaterialID: &id,
		SheetPrice: 50000,
	})
	require.NoError(t, err)
}

// A failed movement insert must not fail the purchase; the stock change has
// already landed.
func TestService_RegisterPurchase_MovementFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := material.NewMockRepository(ctrl)
	svc := material.NewService(repo)

	id := uuid.New()

	repo.EXPECT().GetMaterial(gomock.Any(), id).Return(&material.Material{
		ID:       id,
		Name:     "Vidrio 3mm",
		UnitMode: material.UnitArea,
	}, nil)
	repo.EXPECT().RecordPurchase(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	repo.EXPECT().InsertMovement(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	_, err := svc.RegisterPurchase(context.Background(), material.PurchaseParams{
		MaterialID: &id,
		WidthCM:    100,
		LengthCM:   100,
		SheetPrice: 10000,
	})
	assert.NoError(t, err)
}

func TestService_AdjustStock(t *testing.T) {
	type testCase struct {
		name        string
		current     float64
		newQuantity float64
		wantKind    material.MovementKind
		wantDelta   float64
	}

	tests := []testCase{
		{name: "Up", current: 2, newQuantity: 5, wantKind: material.MovementAdjustUp, wantDelta: 3},
		{name: "Down", current: 5, newQuantity: 2, wantKind: material.MovementAdjustDown, wantDelta: 3},
		{name: "NegativeFlooredToZero", current: 5, newQuantity: -3, wantKind: material.MovementAdjustDown, wantDelta: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := material.NewMockRepository(ctrl)
			svc := material.NewService(repo)

			id := uuid.New()

			repo.EXPECT().GetMaterial(gomock.Any(), id).Return(&material.Material{
				ID:          id,
				Name:        "MDF 5mm",
				StockOnHand: tt.current,
			}, nil)

			repo.EXPECT().
				SetStock(gomock.Any(), id, gomock.Any(), gomock.Nil()).
				Return(nil)

			repo.EXPECT().
				InsertMovement(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, mv *material.Movement) error {
					assert.Equal(t, tt.wantKind, mv.Kind)
					assert.InDelta(t, tt.wantDelta, mv.Quantity, 1e-9)
					return nil
				})

			m, err := svc.AdjustStock(context.Background(), id, tt.newQuantity, nil, "rotura")
			require.NoError(t, err)
			assert.GreaterOrEqual(t, m.StockOnHand, 0.0)
		})
	}
}

// Setting the stock to its current value is a no-op and must not write a
// movement.
func TestService_AdjustStock_NoChangeNoMovement(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := material.NewMockRepository(ctrl)
	svc := material.NewService(repo)

	id := uuid.New()

	repo.EXPECT().GetMaterial(gomock.Any(), id).Return(&material.Material{
		ID:          id,
		StockOnHand: 4,
	}, nil)
	repo.EXPECT().SetStock(gomock.Any(), id, 4.0, gomock.Nil()).Return(nil)

	_, err := svc.AdjustStock(context.Background(), id, 4, nil, "")
	require.NoError(t, err)
}

func TestService_FindOrCreateByName(t *testing.T) {
	type testCase struct {
		name      string
		input     string
		setupMock func(m *material.MockRepository)
		wantErr   bool
		check     func(t *testing.T, m *material.Material)
	}

	tests := []testCase{
		{
			name:  "Existing",
			input: "Vidrio 3mm",
			setupMock: func(m *material.MockRepository) {
				m.EXPECT().
					GetMaterialByName(gomock.Any(), "Vidrio 3mm").
					Return(&material.Material{Name: "Vidrio 3mm"}, nil)
			},
			check: func(t *testing.T, m *material.Material) {
				assert.Equal(t, "Vidrio 3mm", m.Name)
			},
		},
		{
			name:  "CreatedWithInferredCategory",
			input: "Moldura nogal",
			setupMock: func(m *material.MockRepository) {
				m.EXPECT().
					GetMaterialByName(gomock.Any(), "Moldura nogal").
					Return(nil, material.ErrNotFound)
				m.EXPECT().
					CreateMaterial(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, m *material.Material) error {
						m.ID = uuid.New()
						return nil
					})
			},
			check: func(t *testing.T, m *material.Material) {
				assert.Equal(t, material.CategoryFrame, m.Category)
				assert.Equal(t, material.UnitLinear, m.UnitMode)
			},
		},
		{
			name:    "BlankName",
			input:   "   ",
			wantErr: true,
		},
		{
			name:  "LookupError",
			input: "Vidrio 3mm",
			setupMock: func(m *material.MockRepository) {
				m.EXPECT().
					GetMaterialByName(gomock.Any(), "Vidrio 3mm").
					Return(nil, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := material.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := material.NewService(repo)
			m, err := svc.FindOrCreateByName(context.Background(), tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			tt.check(t, m)
		})
	}
}

func TestService_BulkPriceUpdate(t *testing.T) {
	type testCase struct {
		name       string
		percent    float64
		wantFactor float64
	}

	tests := []testCase{
		{name: "TenPercentUp", percent: 10, wantFactor: 1.1},
		{name: "FivePercentDown", percent: -5, wantFactor: 0.95},
		{name: "FlooredAtZero", percent: -150, wantFactor: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := material.NewMockRepository(ctrl)
			svc := material.NewService(repo)

			repo.EXPECT().
				BulkReprice(gomock.Any(), material.CategoryGlass, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ material.Category, factor float64) (int, error) {
					assert.InDelta(t, tt.wantFactor, factor, 1e-9)
					return 3, nil
				})

			n, err := svc.BulkPriceUpdate(context.Background(), material.CategoryGlass, tt.percent)
			require.NoError(t, err)
			assert.Equal(t, 3, n)
		})
	}
}

func TestService_ListByCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := material.NewMockRepository(ctrl)
	svc := material.NewService(repo)

	repo.EXPECT().ListMaterials(gomock.Any()).Return([]*material.Material{
		{Name: "Vidrio 3mm", Category: material.CategoryGlass},
		{Name: "Vidrio 4mm", Category: material.CategoryGlass},
		{Name: "MDF 5mm", Category: material.CategoryBacking},
	}, nil)

	grouped, err := svc.ListByCategory(context.Background())
	require.NoError(t, err)
	assert.Len(t, grouped[material.CategoryGlass], 2)
	assert.Len(t, grouped[material.CategoryBacking], 1)
}
