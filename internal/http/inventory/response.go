package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmarulanda/marqueteria/internal/material"
)

type materialResponse struct {
	ID                uuid.UUID         `json:"id"`
	Nombre            string            `json:"nombre"`
	Categoria         material.Category `json:"categoria"`
	ModoUnidad        material.UnitMode `json:"modo_unidad"`
	AnchoLaminaCM     float64           `json:"ancho_lamina_cm"`
	LargoLaminaCM     float64           `json:"largo_lamina_cm"`
	PrecioTotalLamina int64             `json:"precio_total_lamina"`
	CostoUnitario     int64             `json:"costo_unitario"`
	Stock             float64           `json:"stock"`
	StockMinimo       float64           `json:"stock_minimo"`
	ProveedorID       *uuid.UUID        `json:"proveedorId,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         *time.Time        `json:"updated_at,omitempty"`
}

func toResponse(m *material.Material) materialResponse {
	return materialResponse{
		ID:                m.ID,
		Nombre:            m.Name,
		Categoria:         m.Category,
		ModoUnidad:        m.UnitMode,
		AnchoLaminaCM:     m.WidthCM,
		LargoLaminaCM:     m.LengthCM,
		PrecioTotalLamina: m.SheetPrice,
		CostoUnitario:     m.UnitCost,
		Stock:             m.StockOnHand,
		StockMinimo:       m.StockMinimum,
		ProveedorID:       m.SupplierID,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func toResponseList(ms []*material.Material) []materialResponse {
	resp := make([]materialResponse, len(ms))
	for i, m := range ms {
		resp[i] = toResponse(m)
	}

	return resp
}

type movementResponse struct {
	ID            uuid.UUID             `json:"id"`
	Tipo          material.MovementKind `json:"tipo"`
	Cantidad      float64               `json:"cantidad"`
	CostoUnitario int64                 `json:"costo_unitario"`
	CostoTotal    int64                 `json:"costo_total"`
	ProveedorID   *uuid.UUID            `json:"proveedorId,omitempty"`
	Motivo        string                `json:"motivo,omitempty"`
	Fecha         time.Time             `json:"fecha"`
}

func toMovementList(mvs []*material.Movement) []movementResponse {
	resp := make([]movementResponse, len(mvs))
	for i, mv := range mvs {
		resp[i] = movementResponse{
			ID:            mv.ID,
			Tipo:          mv.Kind,
			Cantidad:      mv.Quantity,
			CostoUnitario: mv.UnitCostAtTime,
			CostoTotal:    mv.TotalCost,
			ProveedorID:   mv.SupplierID,
			Motivo:        mv.Reason,
			Fecha:         mv.CreatedAt,
		}
	}

	return resp
}
