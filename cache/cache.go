// Package cache provides a persistent SQLite-backed store for
// terminology service responses, keyed by normalized query parameters
// with TTL-based expiry.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/c360studio/bioalign/align"
)

// DefaultTTL is how long cached lookups stay valid.
const DefaultTTL = 24 * time.Hour

// ErrCache wraps cache storage failures.
var ErrCache = errors.New("cache error")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS lookup_cache (
    key        TEXT PRIMARY KEY,
    query      TEXT NOT NULL,
    service    TEXT NOT NULL,
    data       TEXT NOT NULL,
    created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_lookup_cache_created ON lookup_cache(created_at);
`

// Stats counts cache operations for the run.
type Stats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Sets    int64 `json:"sets"`
	Deletes int64 `json:"deletes"`
	Errors  int64 `json:"errors"`
}

// HitRate returns the fraction of lookups served from cache.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Cache stores candidate term lists per (query, ontologies, service)
// triple. Safe for concurrent use.
type Cache struct {
	db  *sql.DB
	ttl time.Duration

	mu    sync.Mutex
	stats Stats
}

// Open creates or opens the cache database under dir. A zero ttl
// falls back to DefaultTTL; a negative ttl disables expiry.
func Open(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", ErrCache, dir, err)
	}

	path := filepath.Join(dir, "lookups.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrCache, path, err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: init schema: %v", ErrCache, err)
	}

	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Cache{db: db, ttl: ttl}, nil
}

// Key derives the cache key for a lookup: a SHA-256 digest of the
// normalized query, ontology filter, and service name.
func Key(query, ontologies, service string) string {
	normalized := strings.ToLower(strings.TrimSpace(query)) + "|" +
		strings.ToUpper(strings.TrimSpace(ontologies)) + "|" +
		strings.ToLower(service)
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached candidate terms for a lookup, or ok=false on
// a miss or expired entry. Storage errors count as misses.
func (c *Cache) Get(query, ontologies, service string) ([]align.CandidateTerm, bool) {
	key := Key(query, ontologies, service)

	var data string
	var createdAt int64
	err := c.db.QueryRow(
		"SELECT data, created_at FROM lookup_cache WHERE key = ?", key,
	).Scan(&data, &createdAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		c.count(func(s *Stats) { s.Misses++ })
		return nil, false
	case err != nil:
		slog.Warn("cache read failed", "error", err)
		c.count(func(s *Stats) { s.Errors++; s.Misses++ })
		return nil, false
	}

	if c.expired(createdAt) {
		if _, err := c.db.Exec("DELETE FROM lookup_cache WHERE key = ?", key); err == nil {
			c.count(func(s *Stats) { s.Deletes++ })
		}
		c.count(func(s *Stats) { s.Misses++ })
		return nil, false
	}

	var terms []align.CandidateTerm
	if err := json.Unmarshal([]byte(data), &terms); err != nil {
		slog.Warn("cache entry corrupt", "key", key, "error", err)
		c.count(func(s *Stats) { s.Errors++; s.Misses++ })
		return nil, false
	}
	c.count(func(s *Stats) { s.Hits++ })
	return terms, true
}

// Put stores the candidate terms for a lookup, replacing any previous
// entry.
func (c *Cache) Put(query, ontologies, service string, terms []align.CandidateTerm) error {
	data, err := json.Marshal(terms)
	if err != nil {
		c.count(func(s *Stats) { s.Errors++ })
		return fmt.Errorf("%w: encode entry: %v", ErrCache, err)
	}

	_, err = c.db.Exec(
		"INSERT OR REPLACE INTO lookup_cache (key, query, service, data, created_at) VALUES (?, ?, ?, ?, ?)",
		Key(query, ontologies, service), query, service, string(data), time.Now().Unix(),
	)
	if err != nil {
		c.count(func(s *Stats) { s.Errors++ })
		return fmt.Errorf("%w: write entry: %v", ErrCache, err)
	}
	c.count(func(s *Stats) { s.Sets++ })
	return nil
}

// Clear removes every cached entry and returns how many were deleted.
func (c *Cache) Clear() (int64, error) {
	res, err := c.db.Exec("DELETE FROM lookup_cache")
	if err != nil {
		return 0, fmt.Errorf("%w: clear: %v", ErrCache, err)
	}
	n, _ := res.RowsAffected()
	c.count(func(s *Stats) { s.Deletes += n })
	return n, nil
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() (int64, error) {
	var n int64
	if err := c.db.QueryRow("SELECT COUNT(*) FROM lookup_cache").Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: count: %v", ErrCache, err)
	}
	return n, nil
}

// Stats returns a snapshot of the operation counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Close releases the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) expired(createdAt int64) bool {
	if c.ttl < 0 {
		return false
	}
	return time.Since(time.Unix(createdAt, 0)) > c.ttl
}

func (c *Cache) count(update func(*Stats)) {
	c.mu.Lock()
	update(&c.stats)
	c.mu.Unlock()
}
