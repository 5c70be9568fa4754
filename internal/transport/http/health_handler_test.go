package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "epspulse/pkg/contracts/api/v1"
	"epspulse/pkg/contracts/domain"
)

type stubProvider struct {
	dataset *domain.Dataset
}

func (s *stubProvider) Dataset() *domain.Dataset { return s.dataset }

func TestGetHealthWithDataset(t *testing.T) {
	provider := &stubProvider{dataset: &domain.Dataset{
		LoadID: "load-7",
		Order:  []string{"Acme", "Globex"},
	}}
	h := NewHealthHandler(provider, testLogger())

	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp v1.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "load-7", resp.LoadID)
	assert.Equal(t, 2, resp.Companies)
}

func TestGetHealthBeforeLoad(t *testing.T) {
	h := NewHealthHandler(&stubProvider{}, testLogger())

	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp v1.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Empty(t, resp.LoadID)
	assert.Zero(t, resp.Companies)
}
