package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-compositor/pkg/schema"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	store, err := schema.LoadFS(os.DirFS("testdata/definitions"))
	require.NoError(t, err)

	srv, err := New(store, WithMetricsRegistry(prometheus.NewRegistry()))
	require.NoError(t, err)
	return srv.Handler()
}

func serve(handler http.Handler, method, target string, body url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(body.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthAndTables(t *testing.T) {
	handler := newTestHandler(t)

	rr := serve(handler, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	rr = serve(handler, http.MethodGet, "/tables", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"tables":["samples"]}`, rr.Body.String())
}

func TestTableView(t *testing.T) {
	handler := newTestHandler(t)

	rr := serve(handler, http.MethodGet, "/tables/samples?format=html", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	body := rr.Body.String()
	assert.Contains(t, body, `<tr><th>Description</th><th>Status</th><th>Dose</th><th>Active</th></tr>`)
	assert.Contains(t, body, `<a id="row&#95;1"></a><td class="display&#95;cell">first&#32;&#60;sample&#62;</td>`)
	assert.Contains(t, body, `<td class="display&#95;cell">true</td>`)

	rr = serve(handler, http.MethodGet, "/tables/samples", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "<!DOCTYPE html>")

	rr = serve(handler, http.MethodGet, "/tables/missing", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = serve(handler, http.MethodGet, "/tables/samples?format=nope", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestFormView(t *testing.T) {
	handler := newTestHandler(t)

	rr := serve(handler, http.MethodGet, "/tables/samples/form?row=2&format=html", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `<option selected value="closed">closed</option>`)
	assert.Contains(t, body, `<input type="number" name="dose&#95;mm" value="1&#46;25">&#32;mm`)
	assert.NotContains(t, body, `name="id"`)
	assert.NotContains(t, body, `name="volume&#95;ul"`)

	rr = serve(handler, http.MethodGet, "/tables/samples/form?row=99", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = serve(handler, http.MethodGet, "/tables/samples/form?format=json", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestSubmitForm(t *testing.T) {
	handler := newTestHandler(t)

	rr := serve(handler, http.MethodPost, "/tables/samples/form", url.Values{
		"description": {"fresh"},
		"status":      {"open"},
		"dose_mm":     {"2.5"},
		"active":      {"on"},
		"id":          {"42"},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var payload struct {
		Table  string         `json:"table"`
		Values map[string]any `json:"values"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	assert.Equal(t, "samples", payload.Table)
	assert.Equal(t, map[string]any{
		"description": "fresh",
		"status":      "open",
		"dose_mm":     2.5,
		"active":      true,
	}, payload.Values)
}

func TestSubmitForm_Invalid(t *testing.T) {
	handler := newTestHandler(t)

	rr := serve(handler, http.MethodPost, "/tables/samples/form?format=html", url.Values{
		"description": {"kept"},
		"status":      {"bogus"},
		"dose_mm":     {"abc"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `<div class="text&#95;pad&#32;error">Status&#58;&#32;not&#32;an&#32;allowed&#32;value</div>`)
	assert.Contains(t, body, `<input type="text" name="description" value="kept">`)
}

func TestMetricsAndAssets(t *testing.T) {
	handler := newTestHandler(t)

	serve(handler, http.MethodGet, "/tables/samples?format=html", nil)

	rr := serve(handler, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `compositor_renders_total{renderer="html",table="samples",view="table"} 1`)

	rr = serve(handler, http.MethodGet, "/assets/compositor.css", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), ".display_table")
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	store, err := schema.NewStore()
	require.NoError(t, err)
	_, err = New(store, WithDefaultRenderer("missing"))
	assert.Error(t, err)
}
