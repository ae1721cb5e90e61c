package order

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pashhha/e-commerce-app/internal/inventory"
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
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.placeOrder)
		r.Get("/", h.findAll)
		r.Get("/{id}", h.findByID)
	})
	r.Get("/order-lines/order/{orderId}", h.findOrderLines)
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, httpx.CodeBadRequest, err.Error())
		return
	}
	id, err := h.service.PlaceOrder(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, id)
}

func (h *Handler) findAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.FindAll(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if orders == nil {
		orders = []Order{}
	}
	httpx.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) findByID(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IntParam(r, "id")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, httpx.CodeBadRequest, err.Error())
		return
	}
	o, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, o)
}

func (h *Handler) findOrderLines(w http.ResponseWriter, r *http.Request) {
	orderID, err := httpx.IntParam(r, "orderId")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, httpx.CodeBadRequest, err.Error())
		return
	}
	lines, err := h.service.FindOrderLines(r.Context(), orderID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if lines == nil {
		lines = []OrderLine{}
	}
	httpx.WriteJSON(w, http.StatusOK, lines)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidOrder):
		httpx.WriteError(w, http.StatusBadRequest, httpx.CodeBadRequest, err.Error())
	case errors.Is(err, ErrCustomerNotFound):
		httpx.WriteError(w, http.StatusNotFound, CodeCustomerNotFound, err.Error())
	case errors.Is(err, ErrOrderNotFound):
		httpx.WriteError(w, http.StatusNotFound, CodeOrderNotFound, err.Error())
	case errors.Is(err, inventory.ErrOutOfStock):
		httpx.WriteError(w, http.StatusConflict, inventory.CodeOutOfStock, err.Error())
	case errors.Is(err, inventory.ErrInsufficientStock):
		httpx.WriteError(w, http.StatusConflict, inventory.CodeInsufficientStock, err.Error())
	case errors.Is(err, ErrCustomerDirectoryUnavailable),
		errors.Is(err, ErrInventoryUnavailable),
		errors.Is(err, ErrPaymentUnavailable):
		httpx.WriteError(w, http.StatusBadGateway, CodeDependencyFailed, err.Error())
	default:
		h.logger.Error("❌ Order request failed", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, httpx.CodeInternal, "internal error")
	}
}
