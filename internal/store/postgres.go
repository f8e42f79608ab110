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
)

// =============================================================================
// PostgresStore Implementation
// =============================================================================

// PostgresStore stores inspection documents as JSONB rows keyed by the
// document id. Writes replace the whole row: whichever save reaches the
// store last wins, with no merge of prior content.
type PostgresStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(db *sql.DB, logger *slog.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: logger,
	}
}

var _ DocumentStore = (*PostgresStore)(nil)

// Save upserts the full document.
func (s *PostgresStore) Save(ctx context.Context, doc domain.Inspection) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return &StoreError{Op: "Save", ID: doc.ID, Err: fmt.Errorf("marshal document: %w", err)}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO inspections (id, owner, ts, data)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET owner = EXCLUDED.owner,
		    ts    = EXCLUDED.ts,
		    data  = EXCLUDED.data`,
		doc.ID, doc.Owner, doc.Timestamp, data,
	)
	if err != nil {
		return &StoreError{Op: "Save", ID: doc.ID, Err: err}
	}

	s.logger.Debug("document saved", "id", doc.ID, "owner", doc.Owner)
	return nil
}

// Load fetches a single full document by id.
func (s *PostgresStore) Load(ctx context.Context, id string) (domain.Inspection, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM inspections WHERE id = $1`, id,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Inspection{}, &StoreError{Op: "Load", ID: id, Err: ErrNotFound}
		}
		return domain.Inspection{}, &StoreError{Op: "Load", ID: id, Err: err}
	}

	var doc domain.Inspection
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Inspection{}, &StoreError{Op: "Load", ID: id, Err: fmt.Errorf("unmarshal document: %w", err)}
	}
	return doc, nil
}

// summaryProbe is used to shape-check listed rows before projecting them.
// ClientInfo stays raw so a missing key is distinguishable from an empty one.
type summaryProbe struct {
	ID         string          `json:"id"`
	ClientInfo json.RawMessage `json:"clientInfo"`
	Timestamp  json.RawMessage `json:"timestamp"`
	Owner      string          `json:"owner"`
}

// List fetches summaries ordered by timestamp descending.
//
// Rows that fail minimal shape validation (missing clientInfo, non-numeric
// timestamp, or unparseable JSON) are skipped with a logged warning; they do
// not abort the rest of the listing.
func (s *PostgresStore) List(ctx context.Context) ([]domain.Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, data FROM inspections ORDER BY ts DESC`,
	)
	if err != nil {
		return nil, &StoreError{Op: "List", Err: err}
	}
	defer rows.Close()

	summaries := make([]domain.Summary, 0)
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, &StoreError{Op: "List", Err: err}
		}

		summary, ok := s.validateRow(id, data)
		if !ok {
			continue
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "List", Err: err}
	}

	return summaries, nil
}

// validateRow shape-checks one listed row and projects its summary.
func (s *PostgresStore) validateRow(id string, data []byte) (domain.Summary, bool) {
	var probe summaryProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		s.skipRow(id, "unparseable document")
		return domain.Summary{}, false
	}
	if len(probe.ClientInfo) == 0 || string(probe.ClientInfo) == "null" {
		s.skipRow(id, "missing clientInfo")
		return domain.Summary{}, false
	}

	var ts int64
	if err := json.Unmarshal(probe.Timestamp, &ts); err != nil {
		s.skipRow(id, "non-numeric timestamp")
		return domain.Summary{}, false
	}

	var info domain.ClientInfo
	if err := json.Unmarshal(probe.ClientInfo, &info); err != nil {
		s.skipRow(id, "malformed clientInfo")
		return domain.Summary{}, false
	}

	return domain.Summary{
		ID:         probe.ID,
		ClientInfo: info,
		Timestamp:  ts,
		Owner:      probe.Owner,
	}, true
}

func (s *PostgresStore) skipRow(id, reason string) {
	s.logger.Warn("skipping malformed document in listing", "id", id, "reason", reason)
	metrics.DocumentsSkipped.Inc()
}

// Delete removes the document by id. Idempotent.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM inspections WHERE id = $1`, id,
	)
	if err != nil {
		return &StoreError{Op: "Delete", ID: id, Err: err}
	}

	s.logger.Debug("document deleted", "id", id)
	return nil
}
