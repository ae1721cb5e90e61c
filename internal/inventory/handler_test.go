package inventory

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pashhha/e-commerce-app/internal/platform/httpx"
)

func newTestRouter(repo Repository) http.Handler {
	r := httpx.NewRouter(zap.NewNop())
	NewHandler(newTestService(repo), zap.NewNop()).Routes(r)
	return r
}

func TestHandler_Purchase(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{name: "ok", body: `[{"productId":2,"quantity":5},{"productId":1,"quantity":3}]`, wantStatus: http.StatusOK},
		{name: "unknown product", body: `[{"productId":99,"quantity":1}]`, wantStatus: http.StatusConflict, wantCode: CodeOutOfStock},
		{name: "shortfall", body: `[{"productId":1,"quantity":100}]`, wantStatus: http.StatusConflict, wantCode: CodeInsufficientStock},
		{name: "empty", body: `[]`, wantStatus: http.StatusBadRequest, wantCode: httpx.CodeBadRequest},
		{name: "negative quantity", body: `[{"productId":1,"quantity":-1}]`, wantStatus: http.StatusBadRequest, wantCode: httpx.CodeBadRequest},
		{name: "duplicate product", body: `[{"productId":1,"quantity":1},{"productId":1,"quantity":2}]`, wantStatus: http.StatusBadRequest, wantCode: httpx.CodeBadRequest},
		{name: "malformed", body: `{`, wantStatus: http.StatusBadRequest, wantCode: httpx.CodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(newMemoryRepository(scenarioProducts()...))

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products/purchase", strings.NewReader(tt.body)))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				var body httpx.ErrorBody
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantCode, body.Error)
			}
		})
	}
}

func TestHandler_PurchaseResponseBody(t *testing.T) {
	router := newTestRouter(newMemoryRepository(scenarioProducts()...))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products/purchase",
		strings.NewReader(`[{"productId":2,"quantity":5},{"productId":1,"quantity":3}]`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var responses []PurchaseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &responses))
	require.Len(t, responses, 2)
	assert.Equal(t, int64(1), responses[0].ProductID)
	assert.Equal(t, 3.0, responses[0].Quantity)
	assert.Equal(t, int64(2), responses[1].ProductID)
}

func TestHandler_FindByID(t *testing.T) {
	router := newTestRouter(newMemoryRepository(scenarioProducts()...))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/2", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var product Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))
	assert.Equal(t, "Monitor", product.Name)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/42", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_CreateAndList(t *testing.T) {
	router := newTestRouter(newMemoryRepository())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products",
		strings.NewReader(`{"name":"Mouse","description":"wireless","availableQuantity":3,"price":"19.99","categoryId":4}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", strings.TrimSpace(rec.Body.String()))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products",
		strings.NewReader(`{"name":"Mouse","description":"wireless","availableQuantity":0,"price":"19.99","categoryId":4}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var products []Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 1)
}
