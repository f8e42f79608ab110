// Package handler contains the HTTP layer: request decoding, response
// encoding, and the mapping from domain errors to HTTP statuses. All business
// logic lives in the service layer.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/DukeRupert/vigil/internal/auth"
	"github.com/DukeRupert/vigil/internal/domain"
	"github.com/DukeRupert/vigil/internal/metrics"
	"github.com/DukeRupert/vigil/internal/reducer"
	"github.com/DukeRupert/vigil/internal/service"
)

// =============================================================================
// Handler Definition
// =============================================================================

// InspectionHandler handles the inspection document API.
type InspectionHandler struct {
	inspections service.InspectionService
	logger      *slog.Logger
}

// NewInspectionHandler creates a new InspectionHandler.
func NewInspectionHandler(inspections service.InspectionService, logger *slog.Logger) *InspectionHandler {
	return &InspectionHandler{
		inspections: inspections,
		logger:      logger,
	}
}

// =============================================================================
// Create
// =============================================================================

// Create handles POST /api/inspections: a fresh document from the checklist
// template, owned by the authenticated inspector.
func (h *InspectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUserFromRequest(r)

	doc, err := h.inspections.Create(r.Context(), user.Name)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, doc)
}

// =============================================================================
// List
// =============================================================================

type listResponse struct {
	Inspections []domain.Summary `json:"inspections"`
}

// List handles GET /api/inspections.
func (h *InspectionHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.inspections.List(r.Context())
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	if summaries == nil {
		summaries = []domain.Summary{}
	}
	writeJSON(w, h.logger, http.StatusOK, listResponse{Inspections: summaries})
}

// =============================================================================
// Get
// =============================================================================

// Get handles GET /api/inspections/{id}.
func (h *InspectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	doc, err := h.inspections.Get(r.Context(), id)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, doc)
}

// =============================================================================
// Save
// =============================================================================

// Save handles PUT /api/inspections/{id}: full-document upsert,
// last write wins.
func (h *InspectionHandler) Save(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var doc domain.Inspection
	if err := decodeJSON(r, &doc); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	if doc.ID == "" {
		doc.ID = id
	}
	if doc.ID != id {
		ErrorResponse(w, r, h.logger,
			domain.Invalid("inspection.save", "document id does not match URL"))
		return
	}

	saved, err := h.inspections.Save(r.Context(), doc)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, saved)
}

// =============================================================================
// Delete
// =============================================================================

// Delete handles DELETE /api/inspections/{id}.
func (h *InspectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.inspections.Delete(r.Context(), id); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type deleteManyRequest struct {
	IDs []string `json:"ids"`
}

// DeleteMany handles DELETE /api/inspections with a list of ids in the body.
// Deletion is best-effort per id; the error names ids that failed.
func (h *InspectionHandler) DeleteMany(w http.ResponseWriter, r *http.Request) {
	var req deleteManyRequest
	if err := decodeJSON(r, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	if len(req.IDs) == 0 {
		ErrorResponse(w, r, h.logger,
			domain.Invalid("inspection.delete_many", "ids list is required"))
		return
	}

	if err := h.inspections.DeleteMany(r.Context(), req.IDs); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Duplicate
// =============================================================================

// Duplicate handles POST /api/inspections/{id}/duplicate.
func (h *InspectionHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	doc, err := h.inspections.Duplicate(r.Context(), id)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, doc)
}

// =============================================================================
// Apply
// =============================================================================

// applyRequest carries a document and exactly one update operation.
// Category updates need CategoryID + Update; registry operations use the
// dedicated fields.
type applyRequest struct {
	Document domain.Inspection `json:"document"`

	CategoryID string                 `json:"categoryId,omitempty"`
	Update     *domain.CategoryUpdate `json:"update,omitempty"`

	AddHose            *domain.HoseEntry         `json:"addHose,omitempty"`
	RemoveHose         string                    `json:"removeHose,omitempty"`
	AddExtinguisher    *domain.ExtinguisherEntry `json:"addExtinguisher,omitempty"`
	RemoveExtinguisher string                    `json:"removeExtinguisher,omitempty"`
}

type applyResponse struct {
	Document domain.Inspection `json:"document"`

	// EntryID is the generated id for addHose/addExtinguisher operations.
	EntryID string `json:"entryId,omitempty"`
}

// Apply handles POST /api/inspections/{id}/apply: one update operation run
// against the submitted document. Stateless; the new document is returned
// without being persisted. Callers save via PUT when ready.
func (h *InspectionHandler) Apply(w http.ResponseWriter, r *http.Request) {
	const op = "inspection.apply"

	id := r.PathValue("id")

	var req applyRequest
	if err := decodeJSON(r, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	if req.Document.ID != id {
		ErrorResponse(w, r, h.logger,
			domain.Invalid(op, "document id does not match URL"))
		return
	}

	var (
		resp  applyResponse
		err   error
		label string
	)
	switch {
	case req.Update != nil:
		if req.CategoryID == "" {
			ErrorResponse(w, r, h.logger, domain.Invalid(op, "categoryId is required"))
			return
		}
		resp.Document, err = reducer.Apply(req.Document, req.CategoryID, *req.Update)
		label = string(req.Update.Op)

	case req.AddHose != nil:
		resp.Document, resp.EntryID, err = reducer.AddHose(req.Document, *req.AddHose)
		label = "add_hose"

	case req.RemoveHose != "":
		resp.Document = reducer.RemoveHose(req.Document, req.RemoveHose)
		label = "remove_hose"

	case req.AddExtinguisher != nil:
		resp.Document, resp.EntryID, err = reducer.AddExtinguisher(req.Document, *req.AddExtinguisher)
		label = "add_extinguisher"

	case req.RemoveExtinguisher != "":
		resp.Document = reducer.RemoveExtinguisher(req.Document, req.RemoveExtinguisher)
		label = "remove_extinguisher"

	default:
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "no operation specified"))
		return
	}

	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	metrics.UpdatesApplied.WithLabelValues(label).Inc()
	writeJSON(w, h.logger, http.StatusOK, resp)
}
