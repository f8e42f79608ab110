// This file defines the Inspection aggregate root: the single top-level
// document representing one fire-safety equipment audit, containing all
// nested categories and equipment registries.
package domain

import (
	"strconv"
	"time"
)

// =============================================================================
// Inspection Document
// =============================================================================

// Inspection is the aggregate root for one audit.
//
// Lifecycle: created fresh from the checklist template, mutated field-by-field
// through the reducer as the inspector works, persisted as a whole document on
// save, and replaced wholesale on load. Deletion removes the entire document
// by id; there is no partial delete.
type Inspection struct {
	ID            string              `json:"id"`
	ClientInfo    ClientInfo          `json:"clientInfo"`
	Categories    []Category          `json:"categories"`
	Hoses         []HoseEntry         `json:"hoses"`
	Extinguishers []ExtinguisherEntry `json:"extinguishers"`
	Timestamp     int64               `json:"timestamp"` // unix millis, stamped at save
	Owner         string              `json:"owner"`
}

// NewDocumentID produces a time-based document id, stable for the session.
func NewDocumentID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}

// CategoryIndex returns the index of the category with the given id,
// or -1 if the document has no such category.
func (d *Inspection) CategoryIndex(id string) int {
	for i := range d.Categories {
		if d.Categories[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the document. Every nested slice is
// reallocated so that mutating the copy can never touch the original.
func (d Inspection) Clone() Inspection {
	out := d
	if d.Categories != nil {
		out.Categories = make([]Category, len(d.Categories))
		for i := range d.Categories {
			out.Categories[i] = d.Categories[i].Clone()
		}
	}
	if d.Hoses != nil {
		out.Hoses = make([]HoseEntry, len(d.Hoses))
		copy(out.Hoses, d.Hoses)
	}
	if d.Extinguishers != nil {
		out.Extinguishers = make([]ExtinguisherEntry, len(d.Extinguishers))
		copy(out.Extinguishers, d.Extinguishers)
	}
	return out
}

// =============================================================================
// Summary Projection
// =============================================================================

// Summary is a lightweight projection of a document used for listings:
// enough to render a row without fetching the full content.
type Summary struct {
	ID         string     `json:"id"`
	ClientInfo ClientInfo `json:"clientInfo"`
	Timestamp  int64      `json:"timestamp"`
	Owner      string     `json:"owner"`
}

// Summarize projects the document onto its listing summary.
func (d *Inspection) Summarize() Summary {
	return Summary{
		ID:         d.ID,
		ClientInfo: d.ClientInfo,
		Timestamp:  d.Timestamp,
		Owner:      d.Owner,
	}
}

// =============================================================================
// User Identity
// =============================================================================

// User is the session identity established by the allow-list login.
// Name is the canonical display name from the allow-list.
type User struct {
	Name string `json:"name"`
}
