package services

import (
	"bytes"
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"salesboard/internal/cache"
	"salesboard/internal/dataprocessing"
	"salesboard/internal/metrics"
)

// LatestFingerprint is accepted anywhere a fingerprint is expected and
// resolves to the most recent upload.
const LatestFingerprint = "latest"

// SalesService owns the normalization pipeline: it runs uploads through
// load → resolve → normalize → derive, caches results by content
// fingerprint, and serves the table projections the dashboard reads.
type SalesService struct {
	logger     *slog.Logger
	normalizer *dataprocessing.Normalizer
	summarizer *dataprocessing.Summarizer
	tables     *cache.TableCache
	tracer     trace.Tracer
}

// UploadResult reports what a processed upload produced.
type UploadResult struct {
	Fingerprint string `json:"fingerprint"`
	Rows        int    `json:"rows"`
	DroppedRows int    `json:"dropped_rows"`
	CacheHit    bool   `json:"cache_hit"`
}

// NewSalesService creates the service with its pipeline components.
func NewSalesService(logger *slog.Logger, tracer trace.Tracer) *SalesService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SalesService{
		logger:     logger.With(slog.String("component", "sales_service")),
		normalizer: dataprocessing.NewNormalizer(logger),
		summarizer: dataprocessing.NewSummarizer(logger),
		tables:     cache.NewTableCache(),
		tracer:     tracer,
	}
}

// ProcessUpload runs the pipeline over raw upload bytes and caches the
// result under the content fingerprint. Re-uploading identical bytes
// returns the cached table without re-running the pipeline.
func (s *SalesService) ProcessUpload(ctx context.Context, data []byte, filename string) (*UploadResult, error) {
	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}

	fingerprint := cache.Fingerprint(data)
	if table, ok := s.tables.Get(fingerprint); ok {
		metrics.CacheHitsTotal.WithLabelValues("hit").Inc()
		s.logger.InfoContext(ctx, "upload served from cache",
			slog.String("fingerprint", fingerprint),
			slog.Int("rows", table.Len()))
		return &UploadResult{
			Fingerprint: fingerprint,
			Rows:        table.Len(),
			DroppedRows: table.DroppedRows,
			CacheHit:    true,
		}, nil
	}
	metrics.CacheHitsTotal.WithLabelValues("miss").Inc()

	ctx, span := s.tracer.Start(ctx, "pipeline.normalize",
		trace.WithAttributes(
			attribute.String("upload.filename", filename),
			attribute.Int("upload.bytes", len(data)),
		))
	defer span.End()

	raw, err := dataprocessing.Load(bytes.NewReader(data), filename)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		metrics.UploadsTotal.WithLabelValues("load_error").Inc()
		return nil, err
	}

	table, err := s.normalizer.Normalize(ctx, raw)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "normalization failed")
		metrics.UploadsTotal.WithLabelValues("missing_columns").Inc()
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("table.rows", table.Len()),
		attribute.Int("table.dropped_rows", table.DroppedRows),
	)
	metrics.UploadsTotal.WithLabelValues("ok").Inc()
	metrics.RowsNormalizedTotal.Add(float64(table.Len()))
	metrics.RowsDroppedTotal.Add(float64(table.DroppedRows))

	s.tables.Put(fingerprint, table)

	return &UploadResult{
		Fingerprint: fingerprint,
		Rows:        table.Len(),
		DroppedRows: table.DroppedRows,
	}, nil
}

// Table returns the cached normalized table for a fingerprint.
func (s *SalesService) Table(ctx context.Context, fingerprint string) (*dataprocessing.NormalizedTable, error) {
	return s.resolve(fingerprint)
}

// ChartSeries returns the parallel-array projection the chart views draw.
func (s *SalesService) ChartSeries(ctx context.Context, fingerprint string) (dataprocessing.ChartSeries, error) {
	table, err := s.resolve(fingerprint)
	if err != nil {
		return dataprocessing.ChartSeries{}, err
	}
	return dataprocessing.BuildChartSeries(table), nil
}

// KPIs returns the scalar aggregates for the KPI strip.
func (s *SalesService) KPIs(ctx context.Context, fingerprint string) (dataprocessing.KPISummary, error) {
	table, err := s.resolve(fingerprint)
	if err != nil {
		return dataprocessing.KPISummary{}, err
	}
	return s.summarizer.Summarize(ctx, table), nil
}

func (s *SalesService) resolve(fingerprint string) (*dataprocessing.NormalizedTable, error) {
	if fingerprint == LatestFingerprint {
		_, table, ok := s.tables.Latest()
		if !ok {
			return nil, ErrTableNotFound
		}
		return table, nil
	}

	table, ok := s.tables.Get(fingerprint)
	if !ok {
		return nil, ErrTableNotFound
	}
	return table, nil
}
