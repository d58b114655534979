package billing

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/shopstock-backend/internal/httpx"
	"github.com/georgemunganga/shopstock-backend/internal/modules/access"
	"github.com/georgemunganga/shopstock-backend/internal/modules/party"
)

// Handler exposes bill endpoints for both transaction kinds.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	for _, kind := range []party.Kind{party.Customer, party.Vendor} {
		r.Route("/api/v1/billing/"+string(kind), h.routes(kind))
	}
}

func (h *Handler) routes(kind party.Kind) func(chi.Router) {
	return func(r chi.Router) {
		r.Use(access.Require(kind.TransactionResource()))
		r.Post("/", h.createBill(kind))
		r.Get("/outstanding", h.listOutstanding(kind)) // ?shop_id=...
		r.Get("/{transaction_id}", h.getBill(kind))
		r.Put("/{transaction_id}/paid", h.setPaid(kind))
		r.Post("/{transaction_id}/payments", h.recordPayment(kind))
	}
}

func (h *Handler) createBill(kind party.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateBillRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.Error(w, r, err)
			return
		}
		b, err := h.service.CreateBill(r.Context(), kind, req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, b)
	}
}

func (h *Handler) getBill(kind party.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.UUIDParam(r, "transaction_id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		b, err := h.service.GetBill(r.Context(), kind, id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, b)
	}
}

func (h *Handler) setPaid(kind party.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.UUIDParam(r, "transaction_id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		var body struct {
			Paid int64 `json:"paid"`
		}
		if err := httpx.Decode(r, &body); err != nil {
			httpx.Error(w, r, err)
			return
		}
		b, err := h.service.SetPaid(r.Context(), kind, id, body.Paid)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, b)
	}
}

func (h *Handler) recordPayment(kind party.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.UUIDParam(r, "transaction_id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		var body struct {
			Amount int64 `json:"amount"`
		}
		if err := httpx.Decode(r, &body); err != nil {
			httpx.Error(w, r, err)
			return
		}
		b, err := h.service.RecordPayment(r.Context(), kind, id, body.Amount)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, b)
	}
}

func (h *Handler) listOutstanding(kind party.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopID, err := httpx.UUIDQuery(r, "shop_id")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		bills, err := h.service.ListOutstanding(r.Context(), kind, shopID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, bills)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrOverpaid):
		httpx.JSONError(w, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.Is(err, party.ErrKindMismatch):
		httpx.JSONError(w, http.StatusNotFound, "not found", nil)
	default:
		httpx.Error(w, r, err)
	}
}
