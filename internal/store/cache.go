package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/DukeRupert/vigil/internal/domain"
	"github.com/DukeRupert/vigil/internal/metrics"
	_ "modernc.org/sqlite"
)

// snapshotKey is the single key under which the full document list lives.
const snapshotKey = "inspections"

// =============================================================================
// SnapshotCache Implementation
// =============================================================================

// SnapshotCache mirrors the full list of inspection documents in a local
// SQLite file under a single key.
//
// Semantics match the original key-value cache: read once at startup,
// rewritten wholesale on every mutation. If a remote write fails after the
// local write succeeded the cache diverges from remote state until the next
// successful sync; callers treat remote as the source of truth.
type SnapshotCache struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSnapshotCache opens (creating if needed) the cache file at path.
func NewSnapshotCache(path string, logger *slog.Logger) (*SnapshotCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot cache: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			key  TEXT PRIMARY KEY,
			data TEXT NOT NULL
		)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init snapshot cache: %w", err)
	}

	logger.Info("snapshot cache ready", "path", path)

	return &SnapshotCache{
		db:     db,
		logger: logger,
	}, nil
}

// Close releases the underlying database handle.
func (c *SnapshotCache) Close() error {
	return c.db.Close()
}

// ReadAll returns the cached document list.
// An absent or unparseable snapshot yields an empty list, never an error
// surfaced to the user: the cache is best-effort by design.
func (c *SnapshotCache) ReadAll(ctx context.Context) []domain.Inspection {
	var data string
	err := c.db.QueryRowContext(ctx,
		`SELECT data FROM snapshots WHERE key = ?`, snapshotKey,
	).Scan(&data)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			c.logger.Warn("snapshot cache read failed", "error", err)
		}
		return nil
	}

	var docs []domain.Inspection
	if err := json.Unmarshal([]byte(data), &docs); err != nil {
		c.logger.Warn("discarding unparseable snapshot cache", "error", err)
		return nil
	}
	return docs
}

// WriteAll replaces the cached document list wholesale.
func (c *SnapshotCache) WriteAll(ctx context.Context, docs []domain.Inspection) error {
	if docs == nil {
		docs = []domain.Inspection{}
	}
	data, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, data) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET data = excluded.data`,
		snapshotKey, string(data),
	)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	metrics.CacheRewrites.Inc()
	c.logger.Debug("snapshot cache rewritten", "documents", len(docs))
	return nil
}
