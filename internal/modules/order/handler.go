package order

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/shopstock-backend/internal/httpx"
	"github.com/georgemunganga/shopstock-backend/internal/modules/access"
	"github.com/georgemunganga/shopstock-backend/internal/modules/billing"
	"github.com/georgemunganga/shopstock-backend/internal/modules/inventory"
	"github.com/georgemunganga/shopstock-backend/internal/modules/party"
)

// Handler exposes customer and vendor transaction endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	for _, kind := range []party.Kind{party.Customer, party.Vendor} {
		r.Route("/api/v1/orders/"+string(kind), h.routes(kind))
	}
}

func (h *Handler) routes(kind party.Kind) func(chi.Router) {
	return func(r chi.Router) {
		r.Use(access.Require(kind.TransactionResource()))
		r.Post("/", h.createTransaction(kind))
		r.Post("/checkout", h.checkout(kind))
		r.Get("/", h.listTransactions(kind)) // ?shop_id=...
		r.Get("/{id}", h.getTransaction(kind))
		r.Post("/{id}/items", h.addItem(kind))
		r.Delete("/{id}/items/{item_id}", h.removeItem(kind))
	}
}

func (h *Handler) createTransaction(kind party.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateTransactionRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.Error(w, r, err)
			return
		}
		t, err := h.service.CreateTransaction(r.Context(), kind, req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, t)
	}
}

func (h *Handler) checkout(kind party.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CheckoutRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.Error(w, r, err)
			return
		}
		t, err := h.service.Checkout(r.Context(), kind, req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, t)
	}
}

func (h *Handler) listTransactions(kind party.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopID, err := httpx.UUIDQuery(r, "shop_id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		list, err := h.service.ListTransactions(r.Context(), kind, shopID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, list)
	}
}

func (h *Handler) getTransaction(kind party.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.UUIDParam(r, "id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		t, err := h.service.GetTransaction(r.Context(), kind, id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, t)
	}
}

func (h *Handler) addItem(kind party.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.UUIDParam(r, "id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		var req AddItemRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.Error(w, r, err)
			return
		}
		item, err := h.service.AddItem(r.Context(), kind, id, req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, item)
	}
}

func (h *Handler) removeItem(kind party.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.UUIDParam(r, "id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		itemID, err := httpx.UUIDParam(r, "item_id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		if err := h.service.RemoveItem(r.Context(), kind, id, itemID); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrAlreadyBilled), errors.Is(err, inventory.ErrInsufficientStock):
		httpx.JSONError(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, billing.ErrOverpaid), errors.Is(err, inventory.ErrShopMismatch):
		httpx.JSONError(w, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.Is(err, party.ErrKindMismatch):
		httpx.JSONError(w, http.StatusNotFound, "not found", nil)
	default:
		httpx.Error(w, r, err)
	}
}
