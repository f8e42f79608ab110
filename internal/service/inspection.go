// Package service contains the business logic layer.
//
// Services orchestrate interactions between the document store, the local
// snapshot cache, and domain logic. They are responsible for:
// - Input validation before any I/O is attempted
// - Error translation (store errors -> domain errors)
// - Keeping the snapshot cache mirrored on every mutation
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DukeRupert/vigil/internal/checklist"
	"github.com/DukeRupert/vigil/internal/domain"
	"github.com/DukeRupert/vigil/internal/metrics"
	"github.com/DukeRupert/vigil/internal/store"
)

// =============================================================================
// Interface Definition
// =============================================================================

// InspectionService defines the interface for inspection document operations.
//
// This interface enables:
// - Mocking in unit tests
// - Clear contract definition for handlers
type InspectionService interface {
	// Create produces a new document from the checklist template with a
	// fresh time-based id and empty client-editable fields.
	Create(ctx context.Context, owner string) (*domain.Inspection, error)

	// Save validates required client fields, stamps the save timestamp, and
	// upserts the full document: any existing remote record with the same id
	// is overwritten entirely, no field-level merge. Connectivity and
	// permission failures propagate to the caller.
	// Returns the document as saved (with the stamped timestamp).
	Save(ctx context.Context, doc domain.Inspection) (*domain.Inspection, error)

	// Get fetches a single full document by id.
	// Returns domain.ENOTFOUND when absent.
	Get(ctx context.Context, id string) (*domain.Inspection, error)

	// List fetches document summaries ordered by timestamp descending.
	List(ctx context.Context) ([]domain.Summary, error)

	// Delete removes the document by id, along with any stored report
	// artifacts. Deleting a non-existent id is a no-op, not an error.
	Delete(ctx context.Context, id string) error

	// DeleteMany deletes each id best-effort: a failure on one id does not
	// prevent attempting the rest. Failed ids are collected and returned as
	// a single aggregated error; nil means every delete succeeded.
	DeleteMany(ctx context.Context, ids []string) error

	// Duplicate loads the document, assigns a new id and a fresh timestamp,
	// and saves it as a new record, leaving the original untouched.
	// Returns domain.ENOTFOUND if the source document does not exist.
	Duplicate(ctx context.Context, id string) (*domain.Inspection, error)

	// CachedDocuments returns the locally cached document list read at
	// startup, for instant display before the first remote listing lands.
	CachedDocuments(ctx context.Context) []domain.Inspection
}

// =============================================================================
// Implementation
// =============================================================================

// ArtifactRemover deletes stored artifacts tied to a document.
// Satisfied by ReportService.
type ArtifactRemover interface {
	RemoveArtifacts(ctx context.Context, id string) error
}

// inspectionService implements the InspectionService interface.
type inspectionService struct {
	docs      store.DocumentStore
	cache     *store.SnapshotCache
	artifacts ArtifactRemover
	logger    *slog.Logger
	now       func() time.Time
}

// NewInspectionService creates a new InspectionService.
//
// The cache may be nil, in which case mirroring is disabled (useful in tests
// and degraded startup). The artifact remover may also be nil; deletes then
// skip report cleanup.
func NewInspectionService(
	docs store.DocumentStore,
	cache *store.SnapshotCache,
	artifacts ArtifactRemover,
	logger *slog.Logger,
) InspectionService {
	return &inspectionService{
		docs:      docs,
		cache:     cache,
		artifacts: artifacts,
		logger:    logger,
		now:       time.Now,
	}
}

// =============================================================================
// Create
// =============================================================================

// Create produces a new document from the checklist template.
func (s *inspectionService) Create(ctx context.Context, owner string) (*domain.Inspection, error) {
	now := s.now()
	doc := &domain.Inspection{
		ID:         domain.NewDocumentID(now),
		ClientInfo: domain.ClientInfo{Date: now.Format("2006-01-02")},
		Categories: checklist.Categories(),
		Owner:      owner,
	}

	s.logger.Info("inspection created", "inspection_id", doc.ID, "owner", owner)
	metrics.InspectionsCreated.Inc()

	return doc, nil
}

// =============================================================================
// Save
// =============================================================================

// Save validates, stamps, and upserts the full document.
//
// The snapshot cache is rewritten before the remote write, matching the
// original adapter's ordering: if the remote write then fails, the cache
// diverges until the next successful save. The remote store remains the
// source of truth.
func (s *inspectionService) Save(ctx context.Context, doc domain.Inspection) (*domain.Inspection, error) {
	const op = "inspection.save"

	if doc.ID == "" {
		return nil, domain.Invalid(op, "document id is required")
	}
	if err := doc.ClientInfo.Validate(); err != nil {
		return nil, err
	}

	doc.Timestamp = s.now().UnixMilli()

	s.mirrorUpsert(ctx, doc)

	if err := s.docs.Save(ctx, doc); err != nil {
		return nil, domain.Internal(err, op, "failed to save inspection")
	}

	s.logger.Info("inspection saved",
		"inspection_id", doc.ID,
		"owner", doc.Owner,
		"client_code", doc.ClientInfo.Code,
	)
	metrics.InspectionsSaved.Inc()

	return &doc, nil
}

// =============================================================================
// Get
// =============================================================================

// Get fetches a single full document by id.
func (s *inspectionService) Get(ctx context.Context, id string) (*domain.Inspection, error) {
	const op = "inspection.get"

	doc, err := s.docs.Load(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, domain.NotFound(op, "inspection", id)
		}
		return nil, domain.Internal(err, op, "failed to load inspection")
	}
	return &doc, nil
}

// =============================================================================
// List
// =============================================================================

// List fetches summaries ordered by timestamp descending.
func (s *inspectionService) List(ctx context.Context) ([]domain.Summary, error) {
	const op = "inspection.list"

	summaries, err := s.docs.List(ctx)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list inspections")
	}
	return summaries, nil
}

// =============================================================================
// Delete
// =============================================================================

// Delete removes the document by id.
func (s *inspectionService) Delete(ctx context.Context, id string) error {
	const op = "inspection.delete"

	s.mirrorRemove(ctx, id)

	if err := s.docs.Delete(ctx, id); err != nil {
		return domain.Internal(err, op, "failed to delete inspection")
	}

	// Best-effort: an orphaned report artifact never blocks document
	// deletion.
	if s.artifacts != nil {
		if err := s.artifacts.RemoveArtifacts(ctx, id); err != nil {
			s.logger.Warn("report artifact cleanup failed", "inspection_id", id, "error", err)
		}
	}

	s.logger.Info("inspection deleted", "inspection_id", id)
	metrics.InspectionsDeleted.Inc()

	return nil
}

// DeleteMany deletes each id independently, collecting failures.
func (s *inspectionService) DeleteMany(ctx context.Context, ids []string) error {
	const op = "inspection.delete_many"

	var failed []string
	var errs []error
	for _, id := range ids {
		if err := s.Delete(ctx, id); err != nil {
			s.logger.Warn("bulk delete: id failed", "inspection_id", id, "error", err)
			failed = append(failed, id)
			errs = append(errs, err)
		}
	}
	if len(failed) > 0 {
		return domain.Internal(errors.Join(errs...), op,
			fmt.Sprintf("failed to delete %d of %d inspections: %v", len(failed), len(ids), failed))
	}
	return nil
}

// =============================================================================
// Duplicate
// =============================================================================

// Duplicate saves a copy of the document under a new id.
func (s *inspectionService) Duplicate(ctx context.Context, id string) (*domain.Inspection, error) {
	const op = "inspection.duplicate"

	src, err := s.docs.Load(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, domain.NotFound(op, "inspection", id)
		}
		return nil, domain.Internal(err, op, "failed to load inspection")
	}

	dup := src.Clone()
	dup.ID = domain.NewDocumentID(s.now())
	dup.Timestamp = 0 // reset; Save stamps the real value

	saved, err := s.Save(ctx, dup)
	if err != nil {
		return nil, err
	}

	s.logger.Info("inspection duplicated", "source_id", id, "inspection_id", saved.ID)
	return saved, nil
}

// =============================================================================
// Cache Mirroring
// =============================================================================

// CachedDocuments returns the locally cached document list.
func (s *inspectionService) CachedDocuments(ctx context.Context) []domain.Inspection {
	if s.cache == nil {
		return nil
	}
	return s.cache.ReadAll(ctx)
}

// mirrorUpsert rewrites the snapshot cache with doc upserted into the list.
// Cache failures are logged and swallowed: the cache is best-effort.
func (s *inspectionService) mirrorUpsert(ctx context.Context, doc domain.Inspection) {
	if s.cache == nil {
		return
	}
	docs := s.cache.ReadAll(ctx)
	replaced := false
	for i := range docs {
		if docs[i].ID == doc.ID {
			docs[i] = doc
			replaced = true
			break
		}
	}
	if !replaced {
		docs = append(docs, doc)
	}
	if err := s.cache.WriteAll(ctx, docs); err != nil {
		s.logger.Warn("snapshot cache rewrite failed", "error", err)
	}
}

// mirrorRemove rewrites the snapshot cache with the id filtered out.
func (s *inspectionService) mirrorRemove(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	docs := s.cache.ReadAll(ctx)
	out := docs[:0]
	for _, d := range docs {
		if d.ID != id {
			out = append(out, d)
		}
	}
	if err := s.cache.WriteAll(ctx, out); err != nil {
		s.logger.Warn("snapshot cache rewrite failed", "error", err)
	}
}
