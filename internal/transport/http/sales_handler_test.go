package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	apierrors "salesboard/internal/errors"
	"salesboard/internal/services"
)

var sampleCSV = "월,매출액,전년동월,증감률\n" +
	"2024-02,20,18,11.1\n" +
	"2024-01,10,8,25.0\n" +
	"bad-period,99,,\n"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := services.NewSalesService(logger, noop.NewTracerProvider().Tracer("test"))
	handler := NewSalesHandler(service, logger, apierrors.NewErrorHandler(logger), 10<<20)

	r := chi.NewRouter()
	r.Mount("/api/sales", handler.Routes())

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func multipartUpload(t *testing.T, url, filename, content string) *http.Response {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	resp, err := http.Post(url+"/api/sales", writer.FormDataContentType(), &body)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()

	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload
}

func errorCode(t *testing.T, payload map[string]interface{}) string {
	t.Helper()
	errObj, ok := payload["error"].(map[string]interface{})
	require.True(t, ok, "expected error envelope, got %v", payload)
	code, _ := errObj["error_code"].(string)
	return code
}

func TestUpload(t *testing.T) {
	srv := newTestServer(t)

	resp := multipartUpload(t, srv.URL, "sales.csv", sampleCSV)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	payload := decodeJSON(t, resp)
	assert.Equal(t, "success", payload["status"])

	data := payload["data"].(map[string]interface{})
	assert.Len(t, data["fingerprint"], 64)
	assert.Equal(t, float64(2), data["rows"])
	assert.Equal(t, float64(1), data["dropped_rows"])
	assert.Equal(t, false, data["cache_hit"])
}

func TestUpload_RepeatReportsCacheHit(t *testing.T) {
	srv := newTestServer(t)

	resp := multipartUpload(t, srv.URL, "sales.csv", sampleCSV)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = multipartUpload(t, srv.URL, "sales.csv", sampleCSV)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := decodeJSON(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, true, data["cache_hit"])
}

func TestUpload_UnsupportedExtension(t *testing.T) {
	srv := newTestServer(t)

	resp := multipartUpload(t, srv.URL, "sales.pdf", sampleCSV)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	payload := decodeJSON(t, resp)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, payload))
}

func TestUpload_EmptyFile(t *testing.T) {
	srv := newTestServer(t)

	resp := multipartUpload(t, srv.URL, "sales.csv", "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, decodeJSON(t, resp)))
}

func TestUpload_MissingFileField(t *testing.T) {
	srv := newTestServer(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("note", "no file here"))
	require.NoError(t, writer.Close())

	resp, err := http.Post(srv.URL+"/api/sales", writer.FormDataContentType(), &body)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "MISSING_FILE", errorCode(t, decodeJSON(t, resp)))
}

func TestUpload_MissingColumns(t *testing.T) {
	srv := newTestServer(t)

	resp := multipartUpload(t, srv.URL, "sales.csv", "foo,bar\n1,2\n")
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	payload := decodeJSON(t, resp)
	require.Equal(t, "MISSING_COLUMNS", errorCode(t, payload))

	details := payload["error"].(map[string]interface{})["details"].(map[string]interface{})
	missing := details["missing_fields"].([]interface{})
	assert.ElementsMatch(t, []interface{}{"period", "sales", "prior_year_sales", "yoy_rate"}, missing)
}

func uploadFingerprint(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp := multipartUpload(t, srv.URL, "sales.csv", sampleCSV)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := decodeJSON(t, resp)["data"].(map[string]interface{})
	return data["fingerprint"].(string)
}

func TestGetTable(t *testing.T) {
	srv := newTestServer(t)
	fp := uploadFingerprint(t, srv)

	resp, err := http.Get(srv.URL + "/api/sales/" + fp + "/table")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	payload := decodeJSON(t, resp)
	assert.Equal(t, "success", payload["status"])
	assert.Equal(t, float64(2), payload["count"])
}

func TestGetChart(t *testing.T) {
	srv := newTestServer(t)
	fp := uploadFingerprint(t, srv)

	resp, err := http.Get(srv.URL + "/api/sales/" + fp + "/chart")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeJSON(t, resp)["data"].(map[string]interface{})
	labels := data["labels"].([]interface{})
	assert.Equal(t, []interface{}{"2024-01", "2024-02"}, labels)
	assert.Equal(t, []interface{}{10.0, 30.0}, data["cumulative_sales"].([]interface{}))
}

func TestGetKPIs(t *testing.T) {
	srv := newTestServer(t)
	fp := uploadFingerprint(t, srv)

	resp, err := http.Get(srv.URL + "/api/sales/" + fp + "/kpis")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeJSON(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, 30.0, data["total_sales"])
	assert.Equal(t, 15.0, data["mean_sales"])
	assert.Equal(t, "2024-02", data["best_period"])
	assert.Equal(t, "2024-01", data["worst_period"])
}

func TestLatestAlias(t *testing.T) {
	srv := newTestServer(t)
	uploadFingerprint(t, srv)

	resp, err := http.Get(srv.URL + "/api/sales/latest/table")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestUnknownFingerprint(t *testing.T) {
	srv := newTestServer(t)

	fp := strings.Repeat("0", 64)
	resp, err := http.Get(srv.URL + "/api/sales/" + fp + "/table")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "TABLE_NOT_FOUND", errorCode(t, decodeJSON(t, resp)))
}

func TestMalformedFingerprint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/sales/not-a-digest/table")
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, decodeJSON(t, resp)))
}

func TestExport(t *testing.T) {
	srv := newTestServer(t)
	fp := uploadFingerprint(t, srv)

	resp, err := http.Get(srv.URL + "/api/sales/" + fp + "/export")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "normalized_sales.csv")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}))

	lines := strings.Split(strings.TrimRight(string(body[3:]), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "월,매출액,전년동월,증감률,매출차액,누적매출", lines[0])
	assert.Equal(t, "2024-01,10,8,25,2,10", lines[1])
	assert.Equal(t, "2024-02,20,18,11.1,2,30", lines[2])
}
