// Package exporter writes normalized sales tables back out as CSV.
//
// Exports carry a UTF-8 byte-order mark so Excel opens the Korean headers
// correctly, and floats use shortest round-trip formatting so a re-import
// of the export through the pipeline reproduces identical values.
package exporter
