package payment

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pashhha/e-commerce-app/internal/events"
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
	r.Post("/payments", h.createPayment)
}

func (h *Handler) createPayment(w http.ResponseWriter, r *http.Request) {
	var req events.PaymentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, httpx.CodeBadRequest, err.Error())
		return
	}

	id, err := h.service.ProcessPayment(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidPayment) {
			httpx.WriteError(w, http.StatusBadRequest, httpx.CodeBadRequest, err.Error())
			return
		}
		h.logger.Error("❌ Payment request failed", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, httpx.CodeInternal, "internal error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, id)
}
