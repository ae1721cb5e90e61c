package inventory

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pashhha/e-commerce-app/internal/platform/httpx"
	"github.com/pashhha/e-commerce-app/internal/platform/observability"
)

// Handler exposes the product ledger over HTTP.
type Handler struct {
	service Service
	logger  observability.Logger
}

func NewHandler(service Service, logger observability.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Routes mounts the product endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Post("/", h.createProduct)
		r.Get("/", h.findAll)
		r.Post("/purchase", h.purchase)
		r.Get("/{id}", h.findByID)
	})
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, httpx.CodeBadRequest, err.Error())
		return
	}
	id, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, id)
}

func (h *Handler) findAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.FindAll(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if products == nil {
		products = []Product{}
	}
	httpx.WriteJSON(w, http.StatusOK, products)
}

func (h *Handler) findByID(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IntParam(r, "id")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, httpx.CodeBadRequest, err.Error())
		return
	}
	product, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, product)
}

func (h *Handler) purchase(w http.ResponseWriter, r *http.Request) {
	var requests []PurchaseRequest
	if err := httpx.DecodeJSON(r, &requests); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, httpx.CodeBadRequest, err.Error())
		return
	}
	if err := validatePurchase(requests); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, httpx.CodeBadRequest, err.Error())
		return
	}

	responses, err := h.service.Purchase(r.Context(), requests)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, responses)
}

// validatePurchase rejects what the purchase algorithm itself does not check.
func validatePurchase(requests []PurchaseRequest) error {
	if len(requests) == 0 {
		return errors.New("purchase request must contain at least one product")
	}
	seen := make(map[int64]struct{}, len(requests))
	for i, req := range requests {
		if req.ProductID <= 0 {
			return fmt.Errorf("item %d: productId is mandatory", i)
		}
		if _, dup := seen[req.ProductID]; dup {
			return fmt.Errorf("item %d: product %d is listed more than once", i, req.ProductID)
		}
		seen[req.ProductID] = struct{}{}
		if req.Quantity <= 0 {
			return fmt.Errorf("item %d: quantity should be positive", i)
		}
	}
	return nil
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrOutOfStock):
		httpx.WriteError(w, http.StatusConflict, CodeOutOfStock, err.Error())
	case errors.Is(err, ErrInsufficientStock):
		httpx.WriteError(w, http.StatusConflict, CodeInsufficientStock, err.Error())
	case errors.Is(err, ErrProductNotFound):
		httpx.WriteError(w, http.StatusNotFound, CodeProductNotFound, err.Error())
	case errors.Is(err, ErrInvalidProduct):
		httpx.WriteError(w, http.StatusBadRequest, httpx.CodeBadRequest, err.Error())
	case errors.Is(err, ErrCategoryNotFound):
		httpx.WriteError(w, http.StatusBadRequest, CodeCategoryNotFound, err.Error())
	default:
		h.logger.Error("❌ Product request failed", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, httpx.CodeInternal, "internal error")
	}
}
