package customer

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

func TestHandler_FindByID(t *testing.T) {
	router := newTestRouter(newMemoryRepository(ada()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers/c-1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var c Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.Equal(t, "Ada", c.Firstname)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers/unknown", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body httpx.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, CodeCustomerNotFound, body.Error)
}

func TestHandler_Exists(t *testing.T) {
	router := newTestRouter(newMemoryRepository(ada()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers/exists/c-1", nil))
	assert.Equal(t, "true", strings.TrimSpace(rec.Body.String()))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers/exists/nope", nil))
	assert.Equal(t, "false", strings.TrimSpace(rec.Body.String()))
}

func TestHandler_CreateUpdateDelete(t *testing.T) {
	repo := newMemoryRepository()
	router := newTestRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/customers",
		strings.NewReader(`{"firstname":"Ada","lastname":"Lovelace","email":"ada@example.com"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `"c-1"`, strings.TrimSpace(rec.Body.String()))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/customers",
		strings.NewReader(`{"firstname":"Ada","lastname":"Lovelace","email":"nope"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/customers",
		strings.NewReader(`{"id":"c-1","firstname":"Augusta"}`)))
	require.Equal(t, http.StatusAccepted, rec.Code)

	stored, err := repo.FindByID(t.Context(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Augusta", stored.Firstname)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/customers/c-1", nil))
	require.Equal(t, http.StatusAccepted, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers", nil))
	assert.JSONEq(t, `[]`, rec.Body.String())
}
