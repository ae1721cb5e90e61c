package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echo struct {
	Value string `json:"value"`
}

func TestDoJSON_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in echo
		require.NoError(t, DecodeJSON(r, &in))
		WriteJSON(w, http.StatusOK, echo{Value: in.Value + "!"})
	}))
	defer srv.Close()

	var out echo
	err := DoJSON(context.Background(), NewClient(time.Second), http.MethodPost, srv.URL, echo{Value: "hi"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "hi!", out.Value)
}

func TestDoJSON_StatusError(t *testing.T) {
	tests := []struct {
		name        string
		handler     http.HandlerFunc
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name: "error body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				WriteError(w, http.StatusConflict, "out_of_stock", "one or more products does not exist")
			},
			wantStatus:  http.StatusConflict,
			wantCode:    "out_of_stock",
			wantMessage: "one or more products does not exist",
		},
		{
			name: "plain body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			err := DoJSON(context.Background(), NewClient(time.Second), http.MethodGet, srv.URL, nil, nil)

			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.wantStatus, statusErr.StatusCode)
			assert.Equal(t, tt.wantCode, statusErr.Code)
			assert.Equal(t, tt.wantMessage, statusErr.Message)
		})
	}
}
