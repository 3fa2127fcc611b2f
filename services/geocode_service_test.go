package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocodeAddress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "KakaoAK key", r.Header.Get("Authorization"))
		assert.Equal(t, "123 Teheran-ro", r.URL.Query().Get("query"))
		json.NewEncoder(w).Encode(map[string]any{
			"documents": []map[string]string{{"x": "127.0276", "y": "37.4979"}},
		})
	}))
	defer server.Close()

	svc := NewGeocodeService(server.URL, "key")
	point, err := svc.GeocodeAddress(context.Background(), "123 Teheran-ro")
	require.NoError(t, err)
	assert.InDelta(t, 127.0276, point.X, 1e-9)
	assert.InDelta(t, 37.4979, point.Y, 1e-9)
}

func TestGeocodeAddressNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"documents": []any{}})
	}))
	defer server.Close()

	svc := NewGeocodeService(server.URL, "key")
	_, err := svc.GeocodeAddress(context.Background(), "nowhere")
	assert.Error(t, err)
}

func TestGeocodeAddressServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewGeocodeService(server.URL, "key")
	_, err := svc.GeocodeAddress(context.Background(), "123 Teheran-ro")
	assert.Error(t, err)
}
