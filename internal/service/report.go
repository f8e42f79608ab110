package service

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/DukeRupert/vigil/internal/domain"
	"github.com/DukeRupert/vigil/internal/metrics"
	"github.com/DukeRupert/vigil/internal/report"
	"github.com/DukeRupert/vigil/internal/storage"
	"github.com/DukeRupert/vigil/internal/store"
)

// =============================================================================
// Interface Definition
// =============================================================================

// ReportResult describes a generated report artifact.
type ReportResult struct {
	// Key is the storage key of the artifact.
	Key string `json:"key"`

	// URL is a download URL for the artifact.
	URL string `json:"url"`

	// Format is the artifact format (e.g., "txt").
	Format string `json:"format"`

	// Size is the artifact size in bytes.
	Size int64 `json:"size"`
}

// ReportService generates downloadable report artifacts from inspection
// documents.
type ReportService interface {
	// Generate loads the document, validates the required client fields,
	// renders the report, uploads it, and returns a download URL.
	// Regenerating overwrites the document's previous artifact.
	// Returns domain.ENOTFOUND when the document does not exist and
	// domain.EINVALID when required client fields are missing.
	Generate(ctx context.Context, id string) (*ReportResult, error)

	// RemoveArtifacts deletes the document's stored report, if any.
	// Removing artifacts for a document that has none is a no-op.
	RemoveArtifacts(ctx context.Context, id string) error
}

// =============================================================================
// Implementation
// =============================================================================

// reportURLExpiry is how long presigned download URLs remain valid.
const reportURLExpiry = 1 * time.Hour

type reportService struct {
	docs      store.DocumentStore
	generator report.Generator
	files     storage.Storage
	logger    *slog.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(
	docs store.DocumentStore,
	generator report.Generator,
	files storage.Storage,
	logger *slog.Logger,
) ReportService {
	return &reportService{
		docs:      docs,
		generator: generator,
		files:     files,
		logger:    logger,
	}
}

// Generate renders and uploads a report for the document.
func (s *reportService) Generate(ctx context.Context, id string) (*ReportResult, error) {
	const op = "report.generate"

	doc, err := s.docs.Load(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, domain.NotFound(op, "inspection", id)
		}
		return nil, domain.Internal(err, op, "failed to load inspection")
	}

	// Same gate as Save: exporting an unnamed document is rejected before
	// any rendering or upload happens.
	if err := doc.ClientInfo.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	size, err := s.generator.Generate(ctx, &doc, &buf)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to render report")
	}

	key := storage.ReportKey(doc.ID, s.generator.Format())
	if err := s.files.Put(ctx, key, &buf, "text/plain; charset=utf-8"); err != nil {
		return nil, domain.Internal(err, op, "failed to upload report")
	}

	url, err := s.files.URL(ctx, key, reportURLExpiry)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to resolve report URL")
	}

	s.logger.Info("report generated",
		"inspection_id", doc.ID,
		"key", key,
		"size", size,
	)
	metrics.ReportsGenerated.Inc()

	return &ReportResult{
		Key:    key,
		URL:    url,
		Format: s.generator.Format(),
		Size:   size,
	}, nil
}

// RemoveArtifacts deletes the document's stored report. The storage backends
// treat deleting an absent key as success, so no existence check is needed.
func (s *reportService) RemoveArtifacts(ctx context.Context, id string) error {
	const op = "report.remove_artifacts"

	key := storage.ReportKey(id, s.generator.Format())
	if err := s.files.Delete(ctx, key); err != nil {
		return domain.Internal(err, op, "failed to delete report artifact")
	}
	return nil
}
