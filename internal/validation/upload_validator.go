// Package validation checks uploaded sales files before they reach the
// pipeline: extension, size, and a cheap content sniff.
package validation

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// xlsxMagic is the ZIP local file header every .xlsx workbook starts with.
var xlsxMagic = []byte{0x50, 0x4B, 0x03, 0x04}

// UploadValidator validates uploaded files against the accepted formats.
type UploadValidator struct {
	logger   *slog.Logger
	maxBytes int64
}

// NewUploadValidator creates a validator with the configured size cap.
func NewUploadValidator(logger *slog.Logger, maxBytes int64) *UploadValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadValidator{
		logger:   logger.With(slog.String("component", "upload_validator")),
		maxBytes: maxBytes,
	}
}

// acceptedExtensions are the upload formats the loader understands.
var acceptedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
}

// Validate checks an upload's name, size, and leading bytes. It returns a
// descriptive error for the 400 response; it never inspects row content,
// which is the pipeline's job.
func (v *UploadValidator) Validate(filename string, data []byte) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !acceptedExtensions[ext] {
		v.logger.Warn("rejected upload with unsupported extension",
			slog.String("filename", filename),
			slog.String("extension", ext))
		return fmt.Errorf("unsupported file type %q: expected .csv or .xlsx", ext)
	}

	if len(data) == 0 {
		return fmt.Errorf("uploaded file %q is empty", filename)
	}
	if v.maxBytes > 0 && int64(len(data)) > v.maxBytes {
		return fmt.Errorf("uploaded file %q exceeds the %d byte limit", filename, v.maxBytes)
	}

	// An .xlsx that is not a ZIP archive will not open; catch it early
	// with a clearer message than the workbook reader produces.
	if ext == ".xlsx" && !bytes.HasPrefix(data, xlsxMagic) {
		return fmt.Errorf("uploaded file %q is not a valid workbook", filename)
	}

	return nil
}
