// cmd/sheetsmith/main_test.go
package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetsmith/internal/common/config"
	apihttp "sheetsmith/internal/common/http"
	"sheetsmith/internal/common/logger"
	"sheetsmith/internal/common/observability"
)

func newTestServer(t *testing.T, cfg *config.Config) http.Handler {
	log := logger.NewTestLogger(t)
	reg, err := buildRegistry(cfg, log, observability.NewNoop())
	require.NoError(t, err)

	router := apihttp.NewRouter(apihttp.RouterOptions{Logger: log, MaxBodyBytes: 1 << 20})
	reg.Mount(router)
	return router
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "sheetsmith", Version: "test"},
		Renderers: map[string]config.RendererConfig{
			"build-invoice-xlsx": {Enabled: true, Timeout: 5000},
			"convert-html-table": {Enabled: false, Timeout: 5000},
		},
		Invoice: config.InvoiceConfig{CurrencySymbols: "£"},
	}
}

func TestBuildRegistry_Routes(t *testing.T) {
	srv := newTestServer(t, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/invoice.xlsx", strings.NewReader(`{"invoice_number":"INV-7"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="INV-7.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.NotEmpty(t, rec.Header().Get(apihttp.RequestIDHeader))

	req = httptest.NewRequest(http.MethodPost, "/html-to-excel.xlsx", strings.NewReader(`{"html":"<table></table>"}`))
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBuildRegistry_Catalog(t *testing.T) {
	reg, err := buildRegistry(testConfig(), logger.NewNoOpLogger(), observability.NewNoop())
	require.NoError(t, err)

	catalog := reg.Catalog()
	require.Len(t, catalog.Endpoints, 2)
	assert.Equal(t, "/html-to-excel.xlsx", catalog.Endpoints[0].Path)
	assert.False(t, catalog.Endpoints[0].Enabled)
	assert.Equal(t, "/invoice.xlsx", catalog.Endpoints[1].Path)
	assert.True(t, catalog.Endpoints[1].Enabled)

	router := chi.NewRouter()
	reg.Mount(router)
	assert.True(t, router.Match(chi.NewRouteContext(), http.MethodPost, "/invoice.xlsx"))
	assert.True(t, router.Match(chi.NewRouteContext(), http.MethodPost, "/html-to-excel.xlsx"))
}
