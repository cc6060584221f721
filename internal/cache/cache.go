// Package cache stores normalized tables keyed by a content fingerprint
// of the raw upload. It replaces implicit per-request memoization with an
// addressable store: a new upload invalidates the previous generation, and
// re-uploading identical bytes is a hit. Cached tables are read-only.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"salesboard/internal/dataprocessing"
)

// Fingerprint returns the hex SHA-256 content fingerprint of raw input.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// TableCache holds the current generation of normalized tables. The
// dashboard works on one file at a time, so a new upload with a different
// fingerprint evicts everything before it.
type TableCache struct {
	mu     sync.RWMutex
	tables map[string]*dataprocessing.NormalizedTable
	latest string
}

// NewTableCache creates an empty cache.
func NewTableCache() *TableCache {
	return &TableCache{tables: make(map[string]*dataprocessing.NormalizedTable)}
}

// Put stores a table under its fingerprint and makes it the latest entry.
// Entries from prior uploads are invalidated.
func (c *TableCache) Put(fingerprint string, table *dataprocessing.NormalizedTable) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.tables[fingerprint]; !ok {
		c.tables = map[string]*dataprocessing.NormalizedTable{fingerprint: table}
	}
	c.latest = fingerprint
}

// Get returns the table for a fingerprint, or false when the fingerprint
// is unknown or was invalidated by a later upload.
func (c *TableCache) Get(fingerprint string) (*dataprocessing.NormalizedTable, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	table, ok := c.tables[fingerprint]
	return table, ok
}

// Latest returns the most recently stored table and its fingerprint.
func (c *TableCache) Latest() (string, *dataprocessing.NormalizedTable, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.latest == "" {
		return "", nil, false
	}
	table, ok := c.tables[c.latest]
	return c.latest, table, ok
}

// Len reports the number of cached tables.
func (c *TableCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tables)
}
