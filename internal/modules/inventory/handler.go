package inventory

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/shopstock-backend/internal/httpx"
	"github.com/georgemunganga/shopstock-backend/internal/modules/access"
)

// Handler exposes warehouse and stock-move HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/warehouses", func(r chi.Router) {
		r.Use(access.Require(access.Warehouse))
		r.Post("/", h.createWarehouse)
		r.Get("/", h.listWarehouses) // ?shop_id=...
		r.Get("/{id}", h.getWarehouse)
		r.Put("/{id}", h.renameWarehouse)
		r.Patch("/{id}", h.renameWarehouse)
		r.Delete("/{id}", h.deleteWarehouse)

		r.Get("/{id}/products", h.listWarehouseProducts)
		r.Get("/{id}/products/{product_id}", h.getWarehouseProduct)
	})

	// Moves change warehouse contents, so they are guarded as warehouses.
	r.Route("/api/v1/stock-moves", func(r chi.Router) {
		r.Use(access.Require(access.Warehouse))
		r.Post("/", h.moveToWarehouse)
		r.Get("/", h.listMoves) // ?shop_id=...
	})
}

func (h *Handler) createWarehouse(w http.ResponseWriter, r *http.Request) {
	var req CreateWarehouseRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	wh, err := h.service.CreateWarehouse(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, wh)
}

func (h *Handler) listWarehouses(w http.ResponseWriter, r *http.Request) {
	shopID, err := httpx.UUIDQuery(r, "shop_id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	list, err := h.service.ListWarehouses(r.Context(), shopID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) getWarehouse(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	wh, err := h.service.GetWarehouse(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, wh)
}

func (h *Handler) renameWarehouse(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := httpx.Decode(r, &body); err != nil {
		httpx.Error(w, r, err)
		return
	}
	wh, err := h.service.RenameWarehouse(r.Context(), id, body.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, wh)
}

func (h *Handler) deleteWarehouse(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	if err := h.service.DeleteWarehouse(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listWarehouseProducts(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	items, err := h.service.ListWarehouseProducts(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

func (h *Handler) getWarehouseProduct(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	productID, err := httpx.UUIDParam(r, "product_id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	wp, err := h.service.GetWarehouseProduct(r.Context(), id, productID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, wp)
}

func (h *Handler) moveToWarehouse(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	move, err := h.service.MoveToWarehouse(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, move)
}

func (h *Handler) listMoves(w http.ResponseWriter, r *http.Request) {
	shopID, err := httpx.UUIDQuery(r, "shop_id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	moves, err := h.service.ListMoves(r.Context(), shopID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, moves)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInsufficientStock):
		httpx.JSONError(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, ErrShopMismatch):
		httpx.JSONError(w, http.StatusUnprocessableEntity, err.Error(), nil)
	default:
		httpx.Error(w, r, err)
	}
}
