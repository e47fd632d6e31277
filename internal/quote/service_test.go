package quote_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dmarulanda/marqueteria/internal/material"
	"github.com/dmarulanda/marqueteria/internal/quote"
)

func TestService_Generate(t *testing.T) {
	glassID := uuid.New()
	backingID := uuid.New()

	type args struct {
		widthCM   float64
		lengthCM  float64
		materials []uuid.UUID
		laborCost int64
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *material.MockRepository)
		wantErr   error
		check     func(t *testing.T, q *quote.Quote)
	}

	tests := []testCase{
		{
			name: "SingleMaterial",
			args: args{
				widthCM:   40,
				lengthCM:  50,
				materials: []uuid.UUID{glassID},
				laborCost: 20000,
			},
			setupMock: func(m *material.MockRepository) {
				m.EXPECT().GetMaterial(gomock.Any(), glassID).Return(&material.Material{
					ID:       glassID,
					Name:     "Vidrio 3mm",
					Category: material.CategoryGlass,
					UnitCost: 29426,
				}, nil)
			},
			check: func(t *testing.T, q *quote.Quote) {
				require.Len(t, q.Lines, 1)
				assert.InDelta(t, 0.2, q.Lines[0].AreaM2, 1e-9)
				assert.Equal(t, int64(5885), q.Lines[0].Cost)
				assert.Equal(t, int64(5885), q.MaterialsCost)
				assert.Equal(t, int64(25885), q.TotalBaseCost)
				assert.Equal(t, int64(37655), q.SuggestedPrice)
			},
		},
		{
			name: "MultipleMaterials",
			args: args{
				widthCM:   40,
				lengthCM:  50,
				materials: []uuid.UUID{glassID, backingID},
				laborCost: 0,
			},
			setupMock: func(m *material.MockRepository) {
				m.EXPECT().GetMaterial(gomock.Any(), glassID).Return(&material.Material{
					ID:       glassID,
					UnitCost: 29426,
				}, nil)
				m.EXPECT().GetMaterial(gomock.Any(), backingID).Return(&material.Material{
					ID:       backingID,
					UnitCost: 10000,
				}, nil)
			},
			check: func(t *testing.T, q *quote.Quote) {
				require.Len(t, q.Lines, 2)
				// 5885 + 2000, tripled, no labor.
				assert.Equal(t, int64(7885), q.MaterialsCost)
				assert.Equal(t, int64(23655), q.SuggestedPrice)
			},
		},
		{
			name: "UnresolvedMaterialSkipped",
			args: args{
				widthCM:   40,
				lengthCM:  50,
				materials: []uuid.UUID{glassID, backingID},
				laborCost: 20000,
			},
			setupMock: func(m *material.MockRepository) {
				m.EXPECT().GetMaterial(gomock.Any(), glassID).Return(&material.Material{
					ID:       glassID,
					UnitCost: 29426,
				}, nil)
				m.EXPECT().GetMaterial(gomock.Any(), backingID).Return(nil, material.ErrNotFound)
			},
			check: func(t *testing.T, q *quote.Quote) {
				require.Len(t, q.Lines, 1)
				assert.Equal(t, int64(5885), q.MaterialsCost)
			},
		},
		{
			name: "ZeroWidth",
			args: args{
				widthCM:   0,
				lengthCM:  50,
				materials: []uuid.UUID{glassID},
			},
			wantErr: quote.ErrMissingInput,
		},
		{
			name: "NoMaterials",
			args: args{
				widthCM:  40,
				lengthCM: 50,
			},
			wantErr: quote.ErrMissingInput,
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

			svc := quote.NewService(material.NewService(repo))
			q, err := svc.Generate(context.Background(), tt.args.widthCM, tt.args.lengthCM, tt.args.materials, tt.args.laborCost)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.check(t, q)
		})
	}
}

func TestService_Generate_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := material.NewMockRepository(ctrl)
	svc := quote.NewService(material.NewService(repo))

	id := uuid.New()
	repo.EXPECT().GetMaterial(gomock.Any(), id).Return(nil, errors.New("db down"))

	_, err := svc.Generate(context.Background(), 40, 50, []uuid.UUID{id}, 0)
	assert.Error(t, err)
}

func TestService_Generate_NegativeLaborClamped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := material.NewMockRepository(ctrl)
	svc := quote.NewService(material.NewService(repo))

	id := uuid.New()
	repo.EXPECT().GetMaterial(gomock.Any(), id).Return(&material.Material{
		ID:       id,
		UnitCost: 10000,
	}, nil)

	q, err := svc.Generate(context.Background(), 40, 50, []uuid.UUID{id}, -500)
	require.NoError(t, err)
	assert.Zero(t, q.LaborCost)
	assert.Equal(t, q.MaterialsCost*3, q.SuggestedPrice)
}
