package customer

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pashhha/e-commerce-app/internal/platform/httpx"
	"github.com/pashhha/e-commerce-app/internal/platform/observability"
)

type Handler struct {
	service Service
	logger  observability.Logger
}

func NewHandler(service Service, logger observability.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/customers", func(r chi.Router) {
		r.Post("/", h.create)
		r.Put("/", h.update)
		r.Get("/", h.findAll)
		r.Get("/exists/{id}", h.exists)
		r.Get("/{id}", h.findByID)
		r.Delete("/{id}", h.delete)
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, httpx.CodeBadRequest, err.Error())
		return
	}
	id, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, id)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, httpx.CodeBadRequest, err.Error())
		return
	}
	if err := h.service.Update(r.Context(), req); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) findAll(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.FindAll(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if customers == nil {
		customers = []Customer{}
	}
	httpx.WriteJSON(w, http.StatusOK, customers)
}

func (h *Handler) exists(w http.ResponseWriter, r *http.Request) {
	ok, err := h.service.Exists(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, ok)
}

func (h *Handler) findByID(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrCustomerNotFound):
		httpx.WriteError(w, http.StatusNotFound, CodeCustomerNotFound, err.Error())
	case errors.Is(err, ErrInvalidCustomer):
		httpx.WriteError(w, http.StatusBadRequest, httpx.CodeBadRequest, err.Error())
	default:
		h.logger.Error("❌ Customer request failed", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, httpx.CodeInternal, "internal error")
	}
}
