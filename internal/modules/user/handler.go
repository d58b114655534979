package user

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/georgemunganga/shopstock-backend/internal/httpx"
	"github.com/georgemunganga/shopstock-backend/internal/modules/access"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Route("/api/v1/users", func(r chi.Router) {
		r.Use(access.Require(access.User))
		r.Post("/", h.createUser)
		r.Get("/", h.listUsers) // ?created_by=..., defaults to the caller
		r.Get("/{id}", h.getUser)
		r.Put("/{id}/roles", h.updateRoles)
		r.Put("/{id}/creator", h.changeCreator)
	})
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	if req.CreatedBy == nil {
		if p := access.FromContext(r.Context()); p != nil {
			req.CreatedBy = &p.UserID
		}
	}

	u, err := h.service.CreateUser(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, u)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	u, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, u)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	var creatorID uuid.UUID
	if r.URL.Query().Get("created_by") != "" {
		id, err := httpx.UUIDQuery(r, "created_by")
		if err != nil {
			httpx.Error(w, r, err)
			return
		}
		creatorID = id
	} else {
		creatorID = access.FromContext(r.Context()).UserID
	}

	users, err := h.service.ListCreatedBy(r.Context(), creatorID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, users)
}

func (h *Handler) updateRoles(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	var roles Roles
	if err := httpx.Decode(r, &roles); err != nil {
		httpx.Error(w, r, err)
		return
	}
	u, err := h.service.UpdateRoles(r.Context(), access.FromContext(r.Context()), id, roles)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, u)
}

func (h *Handler) changeCreator(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	var body struct {
		CreatedBy *uuid.UUID `json:"created_by"`
	}
	if err := httpx.Decode(r, &body); err != nil {
		httpx.Error(w, r, err)
		return
	}
	u, err := h.service.ChangeCreator(r.Context(), access.FromContext(r.Context()), id, body.CreatedBy)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, u)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrCreatorCycle):
		httpx.JSONError(w, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.Is(err, ErrNotManaged):
		httpx.JSONError(w, http.StatusForbidden, err.Error(), nil)
	default:
		httpx.Error(w, r, err)
	}
}
