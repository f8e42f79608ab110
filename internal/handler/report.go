package handler

import (
	"log/slog"
	"net/http"

	"github.com/DukeRupert/vigil/internal/service"
)

// =============================================================================
// Handler Definition
// =============================================================================

// ReportHandler handles report generation.
type ReportHandler struct {
	reports service.ReportService
	logger  *slog.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports service.ReportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		logger:  logger,
	}
}

type reportResponse struct {
	Report *service.ReportResult `json:"report"`
}

// Generate handles POST /api/inspections/{id}/report.
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	result, err := h.reports.Generate(r.Context(), id)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, reportResponse{Report: result})
}
