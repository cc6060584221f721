// Package http contains the chi HTTP handlers for the sales dashboard
// API: upload ingestion, normalized table views, chart series, KPIs, and
// the CSV re-export download.
package http
