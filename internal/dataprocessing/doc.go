// Package dataprocessing implements the monthly sales normalization
// pipeline: loading raw tabular input, resolving bilingual column aliases
// to canonical fields, permissive numeric coercion, period parsing and row
// filtering, chronological sorting, and derived column computation.
//
// The pipeline is synchronous and request-scoped. Each invocation produces
// a fresh NormalizedTable; the table is never mutated after Normalize
// returns. Rows that fail period or sales coercion are dropped silently,
// with the count retained on the table for observability.
//
// Two coercion paths exist on purpose. Sales and prior-year values go
// through tolerant digit filtering (currency symbols, thousands separators
// and stray text are removed before parsing). The year-over-year rate only
// strips percent signs before parsing. The asymmetry matches the upstream
// data contract and must not be "fixed" silently.
package dataprocessing
