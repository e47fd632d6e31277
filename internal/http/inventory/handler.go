package inventory

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmarulanda/marqueteria/internal/http/respond"
	"github.com/dmarulanda/marqueteria/internal/material"
	"github.com/dmarulanda/marqueteria/internal/pricelist"
)

type Handler struct {
	svc   *material.Service
	lists *pricelist.Service
}

func NewHandler(svc *material.Service, lists *pricelist.Service) *Handler {
	return &Handler{svc: svc, lists: lists}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/purchase", h.purchase)
	r.Post("/adjust", h.adjust)
	r.Post("/reprice", h.reprice)
	r.Post("/import", h.importPriceList)
	r.Get("/low-stock", h.lowStock)
	r.Get("/purchases-summary", h.purchasesSummary)
	r.Get("/history/{id}", h.history)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	materials, err := h.svc.List(r.Context())
	if err != nil {
		slog.Error("listing materials failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "no se pudo consultar el inventario")

		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(materials))
}

type purchaseRequest struct {
	Nombre            string     `json:"nombre"`
	MaterialID        *uuid.UUID `json:"materialId"`
	AnchoLaminaCM     float64    `json:"ancho_lamina_cm"`
	LargoLaminaCM     float64    `json:"largo_lamina_cm"`
	PrecioTotalLamina float64    `json:"precio_total_lamina"`
	CantidadLaminas   int        `json:"cantidad_laminas"`
	ProveedorID       *uuid.UUID `json:"proveedorId"`
}

func (h *Handler) purchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "cuerpo de la solicitud inválido")
		return
	}

	if req.MaterialID == nil && req.Nombre == "" {
		respond.Error(w, http.StatusBadRequest, "se requiere nombre o materialId")
		return
	}

	if req.PrecioTotalLamina <= 0 {
		respond.Error(w, http.StatusBadRequest, "precio_total_lamina debe ser mayor que cero")
		return
	}

	m, err := h.svc.RegisterPurchase(r.Context(), material.PurchaseParams{
		MaterialID: req.MaterialID,
		Name:       req.Nombre,
		WidthCM:    req.AnchoLaminaCM,
		LengthCM:   req.LargoLaminaCM,
		SheetPrice: int64(math.Round(req.PrecioTotalLamina)),
		SheetCount: req.CantidadLaminas,
		SupplierID: req.ProveedorID,
	})
	if err != nil {
		if errors.Is(err, material.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "material no encontrado")
			return
		}

		slog.Error("registering purchase failed", "material", req.Nombre, "error", err)
		respond.Error(w, http.StatusInternalServerError, "no se pudo registrar la compra")

		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(m))
}

type adjustRequest struct {
	MaterialID    uuid.UUID `json:"materialId"`
	NuevaCantidad float64   `json:"nuevaCantidad"`
	StockMinimo   *float64  `json:"stock_minimo"`
	Motivo        string    `json:"motivo"`
}

func (h *Handler) adjust(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "cuerpo de la solicitud inválido")
		return
	}

	if req.MaterialID == uuid.Nil {
		respond.Error(w, http.StatusBadRequest, "se requiere materialId")
		return
	}

	m, err := h.svc.AdjustStock(r.Context(), req.MaterialID, req.NuevaCantidad, req.StockMinimo, req.Motivo)
	if err != nil {
		if errors.Is(err, material.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "material no encontrado")
			return
		}

		slog.Error("adjusting stock failed", "material_id", req.MaterialID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "no se pudo ajustar el stock")

		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{"stock": m.StockOnHand})
}

type repriceRequest struct {
	Categoria  material.Category `json:"categoria"`
	Porcentaje float64           `json:"porcentaje"`
}

func (h *Handler) reprice(w http.ResponseWriter, r *http.Request) {
	var req repriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "cuerpo de la solicitud inválido")
		return
	}

	if req.Categoria == "" || req.Porcentaje == 0 {
		respond.Error(w, http.StatusBadRequest, "se requieren categoria y porcentaje")
		return
	}

	n, err := h.svc.BulkPriceUpdate(r.Context(), req.Categoria, req.Porcentaje)
	if err != nil {
		slog.Error("bulk reprice failed", "category", req.Categoria, "error", err)
		respond.Error(w, http.StatusInternalServerError, "no se pudo actualizar los precios")

		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{"actualizados": n})
}

func (h *Handler) importPriceList(w http.ResponseWriter, r *http.Request) {
	var supplierID *uuid.UUID

	if s := r.URL.Query().Get("proveedorId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "proveedorId inválido")
			return
		}

		supplierID = &id
	}

	result, err := h.lists.Import(r.Context(), r.Body, supplierID)
	if err != nil {
		slog.Error("price list import failed", "error", err)
		respond.Error(w, http.StatusBadRequest, "no se pudo procesar la lista de precios")

		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"importados": result.Imported,
		"fallidos":   result.Failed,
		"materiales": toResponseList(result.Rows),
	})
}

func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	materials, err := h.svc.ListLowStock(r.Context())
	if err != nil {
		// Dashboard widget: degrade to an empty list instead of erroring.
		slog.Error("low stock query failed", "error", err)
		respond.JSON(w, http.StatusOK, []materialResponse{})

		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(materials))
}

func (h *Handler) purchasesSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.PurchasesSummary(r.Context())
	if err != nil {
		slog.Error("purchases summary failed", "error", err)
		respond.Raw(w, http.StatusOK, map[string]any{
			"totalInvertido": 0, "totalCantidad": 0, "conteo": 0,
		})

		return
	}

	respond.Raw(w, http.StatusOK, map[string]any{
		"totalInvertido": summary.TotalInvested,
		"totalCantidad":  summary.TotalQuantity,
		"conteo":         summary.Count,
	})
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "id inválido")
		return
	}

	movements, err := h.svc.History(r.Context(), id)
	if err != nil {
		if errors.Is(err, material.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "material no encontrado")
			return
		}

		slog.Error("material history failed", "material_id", id, "error", err)
		respond.Error(w, http.StatusInternalServerError, "no se pudo consultar el historial")

		return
	}

	respond.JSON(w, http.StatusOK, toMovementList(movements))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "id inválido")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, material.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "material no encontrado")
			return
		}

		slog.Error("deleting material failed", "material_id", id, "error", err)
		respond.Error(w, http.StatusInternalServerError, "no se pudo eliminar el material")

		return
	}

	respond.JSON(w, http.StatusOK, nil)
}
