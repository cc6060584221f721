package services

import "errors"

// Sentinel errors returned by services and mapped to API errors by the
// transport layer.
var (
	// ErrTableNotFound means no normalized table exists for the requested
	// fingerprint (either never uploaded or invalidated by a later upload).
	ErrTableNotFound = errors.New("normalized table not found")

	// ErrEmptyUpload means the uploaded file had no content.
	ErrEmptyUpload = errors.New("uploaded file is empty")
)
