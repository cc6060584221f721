package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"salesboard/internal/dataprocessing"
	apierrors "salesboard/internal/errors"
	"salesboard/internal/exporter"
	"salesboard/internal/services"
	"salesboard/internal/validation"
)

// fingerprintPattern matches a hex SHA-256 fingerprint.
var fingerprintPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// SalesHandler handles sales pipeline HTTP requests.
type SalesHandler struct {
	service      SalesServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validator    *validation.UploadValidator
	maxBytes     int64
}

// NewSalesHandler creates a new sales handler.
func NewSalesHandler(service SalesServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxBytes int64) *SalesHandler {
	return &SalesHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "sales_handler")),
		errorHandler: errorHandler,
		validator:    validation.NewUploadValidator(logger, maxBytes),
		maxBytes:     maxBytes,
	}
}

// Routes returns the sales routes.
func (h *SalesHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Upload)

	r.Route("/{fingerprint}", func(r chi.Router) {
		r.Use(h.FingerprintCtx)
		r.With(render.SetContentType(render.ContentTypeJSON)).Get("/table", h.GetTable)
		r.With(render.SetContentType(render.ContentTypeJSON)).Get("/chart", h.GetChart)
		r.With(render.SetContentType(render.ContentTypeJSON)).Get("/kpis", h.GetKPIs)
		r.Get("/export", h.Export)
	})

	return r
}

// FingerprintCtx validates the fingerprint URL parameter: a hex SHA-256
// digest or the literal "latest".
func (h *SalesHandler) FingerprintCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fingerprint := chi.URLParam(r, "fingerprint")
		if fingerprint != services.LatestFingerprint && !fingerprintPattern.MatchString(fingerprint) {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("fingerprint",
				"Fingerprint must be a hex SHA-256 digest or \"latest\""))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Upload handles POST /api/sales: multipart upload of a CSV (or XLSX)
// file, runs the normalization pipeline, and reports what survived.
func (h *SalesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.errorHandler.HandleError(w, r, apierrors.ErrFileTooLarge)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrMissingFile)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	if err := h.validator.Validate(header.Filename, data); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", err.Error()))
		return
	}

	h.logger.InfoContext(r.Context(), "processing upload",
		slog.String("request_id", reqID),
		slog.String("filename", header.Filename),
		slog.Int("bytes", len(data)),
	)

	result, err := h.service.ProcessUpload(r.Context(), data, header.Filename)
	if err != nil {
		h.handleUploadError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}

// handleUploadError maps pipeline errors onto the API error taxonomy.
// Missing columns is the only hard pipeline failure; coercion problems
// never surface here because bad rows are dropped, not raised.
func (h *SalesHandler) handleUploadError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "upload processing failed",
		slog.String("error", err.Error()),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var missingErr *dataprocessing.MissingColumnsError
	if errors.As(err, &missingErr) {
		fields := make([]string, len(missingErr.Fields))
		for i, f := range missingErr.Fields {
			fields[i] = string(f)
		}
		h.errorHandler.HandleError(w, r, apierrors.MissingColumnsAPIError(fields))
		return
	}

	if errors.Is(err, services.ErrEmptyUpload) {
		h.errorHandler.HandleError(w, r, apierrors.ErrMissingFile)
		return
	}

	h.errorHandler.HandleError(w, r, err)
}

// GetTable handles GET /api/sales/{fingerprint}/table.
func (h *SalesHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	fingerprint := chi.URLParam(r, "fingerprint")

	table, err := h.service.Table(r.Context(), fingerprint)
	if err != nil {
		h.handleLookupError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   table,
		"count":  table.Len(),
	})
}

// GetChart handles GET /api/sales/{fingerprint}/chart.
func (h *SalesHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	fingerprint := chi.URLParam(r, "fingerprint")

	series, err := h.service.ChartSeries(r.Context(), fingerprint)
	if err != nil {
		h.handleLookupError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   series,
		"count":  len(series.Labels),
	})
}

// GetKPIs handles GET /api/sales/{fingerprint}/kpis.
func (h *SalesHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	fingerprint := chi.URLParam(r, "fingerprint")

	kpis, err := h.service.KPIs(r.Context(), fingerprint)
	if err != nil {
		h.handleLookupError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   kpis,
	})
}

// Export handles GET /api/sales/{fingerprint}/export: the normalized table
// as a UTF-8 CSV download with BOM.
func (h *SalesHandler) Export(w http.ResponseWriter, r *http.Request) {
	fingerprint := chi.URLParam(r, "fingerprint")

	table, err := h.service.Table(r.Context(), fingerprint)
	if err != nil {
		h.handleLookupError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="normalized_sales.csv"`)

	if err := exporter.WriteTable(w, table); err != nil {
		// Headers are already out; log and drop the connection.
		h.logger.ErrorContext(r.Context(), "failed to stream export",
			slog.String("error", err.Error()),
			slog.String("fingerprint", fingerprint),
		)
	}
}

func (h *SalesHandler) handleLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrTableNotFound) {
		h.errorHandler.HandleError(w, r, apierrors.ErrTableNotFound)
		return
	}
	h.errorHandler.HandleError(w, r, err)
}
