package invoice

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmarulanda/marqueteria/internal/order"
)

type itemResponse struct {
	MaterialID    *uuid.UUID `json:"materialId,omitempty"`
	Nombre        string     `json:"nombre"`
	AnchoCM       float64    `json:"ancho_cm"`
	LargoCM       float64    `json:"largo_cm"`
	AreaM2        float64    `json:"area_m2"`
	CostoUnitario int64      `json:"costo_unitario"`
	CostoMaterial int64      `json:"costo_material"`
	Total         int64      `json:"total"`
}

type orderResponse struct {
	ID              uuid.UUID      `json:"id"`
	NumeroOrden     string         `json:"numeroOrden"`
	Cliente         clienteBody    `json:"cliente"`
	Medidas         string         `json:"medidas,omitempty"`
	Items           []itemResponse `json:"items"`
	ManoObra        int64          `json:"manoObraTotal"`
	CostoMateriales int64          `json:"costoMateriales"`
	TotalVenta      int64          `json:"totalFactura"`
	Abonado         int64          `json:"abonado"`
	Saldo           int64          `json:"saldo"`
	Estado          order.Status   `json:"estado"`
	Fecha           time.Time      `json:"fecha"`
	AnuladaEn       *time.Time     `json:"anulada_en,omitempty"`
}

type clienteBody struct {
	Nombre   string `json:"nombre"`
	Telefono string `json:"telefono,omitempty"`
}

func toResponse(o *order.Order) orderResponse {
	items := make([]itemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = itemResponse{
			MaterialID:    item.MaterialID,
			Nombre:        item.MaterialName,
			AnchoCM:       item.WidthCM,
			LargoCM:       item.LengthCM,
			AreaM2:        item.AreaM2,
			CostoUnitario: item.UnitCost,
			CostoMaterial: item.MaterialCost,
			Total:         item.LineTotal,
		}
	}

	return orderResponse{
		ID:              o.ID,
		NumeroOrden:     o.Number,
		Cliente:         clienteBody{Nombre: o.Customer.Name, Telefono: o.Customer.Phone},
		Medidas:         o.Measurements,
		Items:           items,
		ManoObra:        o.LaborCost,
		CostoMateriales: o.MaterialsCost,
		TotalVenta:      o.SaleTotal,
		Abonado:         o.AmountPaid,
		Saldo:           o.BalanceDue(),
		Estado:          o.Status,
		Fecha:           o.CreatedAt,
		AnuladaEn:       o.VoidedAt,
	}
}

func toResponseList(orders []*order.Order) []orderResponse {
	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toResponse(o)
	}

	return resp
}

type reportRow struct {
	NumeroOrden     string       `json:"numeroOrden"`
	Cliente         string       `json:"cliente"`
	TotalVenta      int64        `json:"totalVenta"`
	CostoMateriales int64        `json:"costoMateriales"`
	ManoObra        int64        `json:"manoObra"`
	Utilidad        int64        `json:"utilidad"`
	Abonado         int64        `json:"abonado"`
	Saldo           int64        `json:"saldo"`
	Estado          order.Status `json:"estado"`
	Fecha           time.Time    `json:"fecha"`
}

func toReportRows(rows []order.ReportRow) []reportRow {
	resp := make([]reportRow, len(rows))
	for i, row := range rows {
		resp[i] = reportRow{
			NumeroOrden:     row.Number,
			Cliente:         row.Customer,
			TotalVenta:      row.SaleTotal,
			CostoMateriales: row.MaterialsCost,
			ManoObra:        row.LaborCost,
			Utilidad:        row.Profit,
			Abonado:         row.AmountPaid,
			Saldo:           row.BalanceDue,
			Estado:          row.Status,
			Fecha:           row.CreatedAt,
		}
	}

	return resp
}
