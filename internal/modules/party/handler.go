package party

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/shopstock-backend/internal/httpx"
	"github.com/georgemunganga/shopstock-backend/internal/modules/access"
)

// Handler exposes customer and vendor endpoints. Both kinds share handlers;
// the kind is fixed per mounted route.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/customers", h.routes(Customer))
	r.Route("/api/v1/vendors", h.routes(Vendor))
}

func (h *Handler) routes(kind Kind) func(chi.Router) {
	return func(r chi.Router) {
		r.Use(access.Require(kind.PartyResource()))
		r.Post("/", h.create(kind))
		r.Get("/", h.list(kind)) // ?shop_id=...
		r.Get("/{id}", h.get(kind))
		r.Put("/{id}", h.update(kind))
		r.Patch("/{id}", h.update(kind))
		r.Delete("/{id}", h.delete(kind))
	}
}

func (h *Handler) create(kind Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.Error(w, r, err)
			return
		}
		p, err := h.service.Create(r.Context(), kind, req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, p)
	}
}

func (h *Handler) list(kind Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopID, err := httpx.UUIDQuery(r, "shop_id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		parties, err := h.service.List(r.Context(), kind, shopID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, parties)
	}
}

func (h *Handler) get(kind Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.UUIDParam(r, "id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		p, err := h.service.Get(r.Context(), kind, id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, p)
	}
}

func (h *Handler) update(kind Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.UUIDParam(r, "id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		var req UpdateRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.Error(w, r, err)
			return
		}
		p, err := h.service.Update(r.Context(), kind, id, req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, p)
	}
}

func (h *Handler) delete(kind Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.UUIDParam(r, "id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		if err := h.service.Delete(r.Context(), kind, id); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// A party of the other kind is reported as missing so the two resources stay
// independent.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrKindMismatch) {
		httpx.JSONError(w, http.StatusNotFound, "not found", nil)
		return
	}
	httpx.Error(w, r, err)
}
