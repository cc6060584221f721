package http

import (
	"context"

	"salesboard/internal/dataprocessing"
	"salesboard/internal/services"
)

// SalesServiceInterface defines what the sales handler needs from the
// service layer, so tests can substitute a stub.
type SalesServiceInterface interface {
	ProcessUpload(ctx context.Context, data []byte, filename string) (*services.UploadResult, error)
	Table(ctx context.Context, fingerprint string) (*dataprocessing.NormalizedTable, error)
	ChartSeries(ctx context.Context, fingerprint string) (dataprocessing.ChartSeries, error)
	KPIs(ctx context.Context, fingerprint string) (dataprocessing.KPISummary, error)
}
