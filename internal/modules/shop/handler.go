package shop

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/georgemunganga/shopstock-backend/internal/httpx"
	"github.com/georgemunganga/shopstock-backend/internal/modules/access"
)

// Handler exposes shop HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/shops", func(r chi.Router) {
		r.Use(access.Require(access.Shop))
		r.Post("/", h.createShop)
		r.Get("/", h.listShops)
		r.Get("/{id}", h.getShop)
		r.Put("/{id}", h.updateShop)
		r.Patch("/{id}", h.updateShop)
	})
}

func (h *Handler) createShop(w http.ResponseWriter, r *http.Request) {
	var req CreateShopRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	sh, err := h.service.CreateShop(r.Context(), req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, sh)
}

// listShops returns every shop to superusers and the caller's own shops to
// everyone else.
func (h *Handler) listShops(w http.ResponseWriter, r *http.Request) {
	p := access.FromContext(r.Context())
	var owner *uuid.UUID
	if !p.IsSuperuser {
		owner = &p.UserID
	}
	shops, err := h.service.ListShops(r.Context(), owner)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, shops)
}

func (h *Handler) getShop(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	sh, err := h.service.GetShop(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sh)
}

func (h *Handler) updateShop(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	var req UpdateShopRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	sh, err := h.service.UpdateShop(r.Context(), id, req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sh)
}
