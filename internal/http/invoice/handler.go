package invoice

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmarulanda/marqueteria/internal/http/respond"
	"github.com/dmarulanda/marqueteria/internal/order"
)

type Handler struct {
	svc *order.Service
}

func NewHandler(svc *order.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/report/daily", h.dailyReport)
	r.Put("/{id}/payment", h.payment)
	r.Delete("/{id}", h.void)
}

type itemRequest struct {
	MaterialID *uuid.UUID `json:"materialId"`
	Nombre     string     `json:"nombre"`
	AnchoCM    float64    `json:"ancho_cm"`
	LargoCM    float64    `json:"largo_cm"`
	Total      float64    `json:"total"`
}

type createRequest struct {
	Cliente       clienteBody   `json:"cliente"`
	Items         []itemRequest `json:"items"`
	Materiales    []itemRequest `json:"materiales"` // older frontend builds send this name
	ManoObraTotal float64       `json:"manoObraTotal"`
	TotalFactura  float64       `json:"totalFactura"`
	AbonoInicial  float64       `json:"abonoInicial"`
	Medidas       string        `json:"medidas"`
}

// items normalizes the two historical field names once, at the boundary.
func (req *createRequest) items() []itemRequest {
	if len(req.Items) > 0 {
		return req.Items
	}

	return req.Materiales
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "cuerpo de la solicitud inválido")
		return
	}

	items := req.items()

	params := order.CreateParams{
		Customer:       order.Customer{Name: req.Cliente.Nombre, Phone: req.Cliente.Telefono},
		Measurements:   req.Medidas,
		LaborCost:      int64(math.Round(req.ManoObraTotal)),
		SaleTotal:      int64(math.Round(req.TotalFactura)),
		InitialPayment: int64(math.Round(req.AbonoInicial)),
	}

	for _, item := range items {
		params.Items = append(params.Items, order.ItemParams{
			MaterialID:   item.MaterialID,
			MaterialName: item.Nombre,
			WidthCM:      item.AnchoCM,
			LengthCM:     item.LargoCM,
			LineTotal:    int64(math.Round(item.Total)),
		})
	}

	o, err := h.svc.Create(r.Context(), params)
	if err != nil {
		if errors.Is(err, order.ErrEmptyOrder) {
			respond.Error(w, http.StatusBadRequest, "la orden debe tener materiales o mano de obra")
			return
		}

		slog.Error("creating order failed", "customer", req.Cliente.Nombre, "error", err)
		respond.Error(w, http.StatusInternalServerError, "no se pudo crear la orden")

		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(o))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListRecent(r.Context(), 50)
	if err != nil {
		slog.Error("listing orders failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "no se pudo consultar las órdenes")

		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(orders))
}

func (h *Handler) dailyReport(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)

	report, err := h.svc.DailyReport(r.Context(), start, end)
	if err != nil {
		// The dashboard polls this endpoint; degrade to an empty report
		// instead of a hard failure.
		slog.Error("daily report failed", "error", err)
		respond.Raw(w, http.StatusOK, map[string]any{
			"data":    []reportRow{},
			"resumen": map[string]int64{"totalVentas": 0, "utilidadTotal": 0},
		})

		return
	}

	respond.Raw(w, http.StatusOK, map[string]any{
		"data": toReportRows(report.Rows),
		"resumen": map[string]int64{
			"totalVentas":   report.TotalSales,
			"utilidadTotal": report.TotalProfit,
		},
	})
}

type paymentRequest struct {
	MontoAbono float64 `json:"montoAbono"`
}

func (h *Handler) payment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "id inválido")
		return
	}

	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "cuerpo de la solicitud inválido")
		return
	}

	o, err := h.svc.ApplyPayment(r.Context(), id, int64(math.Round(req.MontoAbono)))
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidPayment):
			respond.Error(w, http.StatusBadRequest, "el monto del abono debe ser mayor que cero")
		case errors.Is(err, order.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "orden no encontrada")
		default:
			slog.Error("applying payment failed", "order_id", id, "error", err)
			respond.Error(w, http.StatusInternalServerError, "no se pudo registrar el abono")
		}

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(o))
}

func (h *Handler) void(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "id inválido")
		return
	}

	if _, err := h.svc.Void(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, order.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "orden no encontrada")
		case errors.Is(err, order.ErrAlreadyVoided):
			respond.Error(w, http.StatusBadRequest, "la orden ya fue anulada")
		default:
			slog.Error("voiding order failed", "order_id", id, "error", err)
			respond.Error(w, http.StatusInternalServerError, "no se pudo anular la orden")
		}

		return
	}

	respond.JSON(w, http.StatusOK, nil)
}
