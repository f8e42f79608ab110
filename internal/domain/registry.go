package domain

import (
	"strconv"
	"strings"
)

// =============================================================================
// Registry Entries
// =============================================================================

// HoseEntry is a user-registered fire hose.
//
// Entries are created via an explicit add action with default quantity "1"
// and empty descriptive fields, removed by id, and never reordered.
type HoseEntry struct {
	ID       string `json:"id"`
	Quantity string `json:"quantity"`
	Length   string `json:"length"`
	Diameter string `json:"diameter"`
	Type     string `json:"type"`
}

// ExtinguisherEntry is a user-registered fire extinguisher.
type ExtinguisherEntry struct {
	ID       string `json:"id"`
	Quantity string `json:"quantity"`
	Type     string `json:"type"`
	Weight   string `json:"weight"`
}

// DefaultQuantity is the quantity assigned to freshly added registry entries.
const DefaultQuantity = "1"

// ValidQuantity reports whether s is a non-negative integer in text form.
// The empty string is not valid; entries always carry a quantity.
func ValidQuantity(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0
}
