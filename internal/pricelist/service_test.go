package pricelist_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dmarulanda/marqueteria/internal/material"
	"github.com/dmarulanda/marqueteria/internal/pricelist"
)

func TestService_Import(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := material.NewMockRepository(ctrl)
	svc := pricelist.NewService(material.NewService(repo))

	csv := `MATERIAL;ANCHO_CM;LARGO_CM;PRECIO;CANTIDAD
Vidrio 3mm;183;244;131.378;1
Moldura cedro;;300;15.000;2
`

	supplierID := uuid.New()

	// Both names are new, so each row creates its material first.
	repo.EXPECT().
		GetMaterialByName(gomock.Any(), gomock.Any()).
		Return(nil, material.ErrNotFound).
		Times(2)
	repo.EXPECT().
		CreateMaterial(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m *material.Material) error {
			m.ID = uuid.New()
			m.CreatedAt = time.Now()
			return nil
		}).
		Times(2)
	repo.EXPECT().
		RecordPurchase(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		Times(2)
	repo.EXPECT().
		InsertMovement(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, mv *material.Movement) error {
			require.NotNil(t, mv.SupplierID)
			assert.Equal(t, supplierID, *mv.SupplierID)
			return nil
		}).
		Times(2)

	result, err := svc.Import(context.Background(), strings.NewReader(csv), &supplierID)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Zero(t, result.Failed)
	assert.Len(t, result.Rows, 2)
}

func TestService_Import_FailedRowContinues(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := material.NewMockRepository(ctrl)
	svc := pricelist.NewService(material.NewService(repo))

	csv := `MATERIAL;PRECIO
Vidrio 3mm;131.378
MDF 5mm;45.900
`

	gomock.InOrder(
		repo.EXPECT().
			GetMaterialByName(gomock.Any(), "Vidrio 3mm").
			Return(nil, errors.New("db down")),
		repo.EXPECT().
			GetMaterialByName(gomock.Any(), "MDF 5mm").
			Return(&material.Material{ID: uuid.New(), Name: "MDF 5mm"}, nil),
	)
	repo.EXPECT().RecordPurchase(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	repo.EXPECT().InsertMovement(gomock.Any(), gomock.Any()).Return(nil)

	result, err := svc.Import(context.Background(), strings.NewReader(csv), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Failed)
}

func TestService_Import_UnparsableFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := material.NewMockRepository(ctrl)
	svc := pricelist.NewService(material.NewService(repo))

	_, err := svc.Import(context.Background(), strings.NewReader("basura sin columnas\n"), nil)
	assert.Error(t, err)
}
