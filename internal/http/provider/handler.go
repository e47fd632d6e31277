package provider

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmarulanda/marqueteria/internal/http/respond"
	"github.com/dmarulanda/marqueteria/internal/provider"
)

type Handler struct {
	svc *provider.Service
}

func NewHandler(svc *provider.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type providerRequest struct {
	Nombre    string  `json:"nombre"`
	NIT       *string `json:"nit"`
	Telefono  string  `json:"telefono"`
	Contacto  string  `json:"contacto"`
	Email     string  `json:"email"`
	Direccion string  `json:"direccion"`
	Categoria string  `json:"categoria"`
	Activo    *bool   `json:"activo"`
}

func (req *providerRequest) toParams() provider.Params {
	return provider.Params{
		Name:     req.Nombre,
		NIT:      req.NIT,
		Phone:    req.Telefono,
		Contact:  req.Contacto,
		Email:    req.Email,
		Address:  req.Direccion,
		Category: req.Categoria,
		Active:   req.Activo,
	}
}

type providerResponse struct {
	ID        uuid.UUID  `json:"id"`
	Nombre    string     `json:"nombre"`
	NIT       *string    `json:"nit,omitempty"`
	Telefono  string     `json:"telefono,omitempty"`
	Contacto  string     `json:"contacto,omitempty"`
	Email     string     `json:"email,omitempty"`
	Direccion string     `json:"direccion,omitempty"`
	Categoria string     `json:"categoria,omitempty"`
	Activo    bool       `json:"activo"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toResponse(p *provider.Provider) providerResponse {
	return providerResponse{
		ID:        p.ID,
		Nombre:    p.Name,
		NIT:       p.NIT,
		Telefono:  p.Phone,
		Contacto:  p.Contact,
		Email:     p.Email,
		Direccion: p.Address,
		Categoria: p.Category,
		Activo:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	providers, err := h.svc.List(r.Context())
	if err != nil {
		slog.Error("listing providers failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "no se pudo consultar los proveedores")

		return
	}

	resp := make([]providerResponse, len(providers))
	for i, p := range providers {
		resp[i] = toResponse(p)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req providerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "cuerpo de la solicitud inválido")
		return
	}

	p, err := h.svc.Create(r.Context(), req.toParams())
	if err != nil {
		h.writeError(w, err, "creating provider")
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(p))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "id inválido")
		return
	}

	var req providerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "cuerpo de la solicitud inválido")
		return
	}

	p, err := h.svc.Update(r.Context(), id, req.toParams())
	if err != nil {
		h.writeError(w, err, "updating provider")
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(p))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "id inválido")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.writeError(w, err, "deleting provider")
		return
	}

	respond.JSON(w, http.StatusOK, nil)
}

func (h *Handler) writeError(w http.ResponseWriter, err error, op string) {
	var dup *provider.DuplicateError

	switch {
	case errors.Is(err, provider.ErrNameRequired):
		respond.Error(w, http.StatusBadRequest, "el nombre del proveedor es obligatorio")
	case errors.As(err, &dup):
		respond.Error(w, http.StatusBadRequest, "ya existe un proveedor con ese "+dup.Field)
	case errors.Is(err, provider.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "proveedor no encontrado")
	default:
		slog.Error(op+" failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "no se pudo completar la operación")
	}
}
