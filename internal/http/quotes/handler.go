package quotes

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
	"github.com/dmarulanda/marqueteria/internal/quote"
)

type Handler struct {
	svc       *quote.Service
	materials *material.Service
}

func NewHandler(svc *quote.Service, materials *material.Service) *Handler {
	return &Handler{svc: svc, materials: materials}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/materials", h.materialsByCategory)
	r.Post("/", h.generate)
}

// materialsByCategory feeds the quote screen's pickers, one list per
// category bucket.
func (h *Handler) materialsByCategory(w http.ResponseWriter, r *http.Request) {
	grouped, err := h.materials.ListByCategory(r.Context())
	if err != nil {
		slog.Error("listing materials by category failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "no se pudo consultar los materiales")

		return
	}

	pick := func(c material.Category) []pickerMaterial {
		return toPickerList(grouped[c])
	}

	respond.JSON(w, http.StatusOK, map[string][]pickerMaterial{
		"vidrios":   pick(material.CategoryGlass),
		"respaldos": pick(material.CategoryBacking),
		"paspartu":  pick(material.CategoryMatboard),
		"marcos":    pick(material.CategoryFrame),
		"foam":      pick(material.CategoryFoam),
		"tela":      pick(material.CategoryFabric),
		"chapilla":  pick(material.CategoryVeneer),
	})
}

type pickerMaterial struct {
	ID            uuid.UUID `json:"id"`
	Nombre        string    `json:"nombre"`
	CostoUnitario int64     `json:"costo_unitario"`
	Stock         float64   `json:"stock"`
}

func toPickerList(ms []*material.Material) []pickerMaterial {
	resp := make([]pickerMaterial, len(ms))
	for i, m := range ms {
		resp[i] = pickerMaterial{
			ID:            m.ID,
			Nombre:        m.Name,
			CostoUnitario: m.UnitCost,
			Stock:         m.StockOnHand,
		}
	}

	return resp
}

type generateRequest struct {
	Ancho         float64     `json:"ancho"`
	Largo         float64     `json:"largo"`
	MaterialesIDs []uuid.UUID `json:"materialesIds"`
	ManoObra      float64     `json:"manoObra"`
}

type quoteLine struct {
	MaterialID    uuid.UUID `json:"materialId"`
	Nombre        string    `json:"nombre"`
	CostoUnitario int64     `json:"costo_unitario"`
	AreaM2        float64   `json:"area_m2"`
	Costo         int64     `json:"costo"`
}

type quoteCosts struct {
	Materiales     int64 `json:"materiales"`
	ManoObra       int64 `json:"manoObra"`
	CostoBase      int64 `json:"costoBase"`
	PrecioSugerido int64 `json:"precioSugerido"`
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "cuerpo de la solicitud inválido")
		return
	}

	q, err := h.svc.Generate(r.Context(), req.Ancho, req.Largo, req.MaterialesIDs, int64(math.Round(req.ManoObra)))
	if err != nil {
		if errors.Is(err, quote.ErrMissingInput) {
			respond.Error(w, http.StatusBadRequest, "se requieren ancho, largo y materiales")
			return
		}

		slog.Error("generating quote failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "no se pudo generar la cotización")

		return
	}

	detalles := make([]quoteLine, len(q.Lines))
	for i, line := range q.Lines {
		detalles[i] = quoteLine{
			MaterialID:    line.MaterialID,
			Nombre:        line.Name,
			CostoUnitario: line.UnitCost,
			AreaM2:        line.AreaM2,
			Costo:         line.Cost,
		}
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"detalles": detalles,
		"costos": quoteCosts{
			Materiales:     q.MaterialsCost,
			ManoObra:       q.LaborCost,
			CostoBase:      q.TotalBaseCost,
			PrecioSugerido: q.SuggestedPrice,
		},
	})
}
