// Package domain contains core business types and interfaces.
//
// This file defines the checklist category variants that make up an
// inspection document. A category is one of three kinds, fixed at the
// moment it is instantiated from the checklist configuration:
//
//   - standard: owns an ordered list of sub-items, no direct status
//   - special:  owns a single status/observation pair directly
//   - pressure: owns a numeric-as-text reading and a unit
//
// The kind tag is never changed by user action; only kind-appropriate
// fields are ever mutated (enforced by the reducer).
package domain

// =============================================================================
// Category Kind
// =============================================================================

// CategoryKind identifies the variant of a checklist category.
type CategoryKind string

const (
	// CategoryKindStandard holds an ordered list of sub-items.
	CategoryKindStandard CategoryKind = "standard"

	// CategoryKindSpecial holds a single status/observation pair.
	CategoryKindSpecial CategoryKind = "special"

	// CategoryKindPressure holds a numeric reading and a unit.
	CategoryKindPressure CategoryKind = "pressure"
)

// String returns the string representation of the kind.
func (k CategoryKind) String() string {
	return string(k)
}

// IsValid returns true if the kind is a recognized value.
func (k CategoryKind) IsValid() bool {
	switch k {
	case CategoryKindStandard, CategoryKindSpecial, CategoryKindPressure:
		return true
	}
	return false
}

// =============================================================================
// Item Status
// =============================================================================

// ItemStatus is the compliance status of a checklist item.
// The empty string means the inspector has not yet recorded a value.
type ItemStatus string

const (
	StatusOK            ItemStatus = "OK"  // Compliant
	StatusNotCompliant  ItemStatus = "N/C" // Not compliant
	StatusNotApplicable ItemStatus = "N/A" // Not applicable
	StatusEmpty         ItemStatus = ""    // Not yet recorded
)

// IsValid returns true if the status is a recognized value.
// The empty status is valid: it is the initial state of every item.
func (s ItemStatus) IsValid() bool {
	switch s {
	case StatusOK, StatusNotCompliant, StatusNotApplicable, StatusEmpty:
		return true
	}
	return false
}

// =============================================================================
// Pressure Unit
// =============================================================================

// PressureUnit is the unit of a pressure reading.
type PressureUnit string

const (
	PressureUnitPSI PressureUnit = "psi"
	PressureUnitBar PressureUnit = "bar"
)

// IsValid returns true if the unit is a recognized value.
func (u PressureUnit) IsValid() bool {
	return u == PressureUnitPSI || u == PressureUnitBar
}

// =============================================================================
// Registry Kind
// =============================================================================

// RegistryKind marks a sub-item that carries an equipment registry.
// Empty for sub-items without one.
type RegistryKind string

const (
	RegistryNone          RegistryKind = ""
	RegistryHoses         RegistryKind = "hoses"
	RegistryExtinguishers RegistryKind = "extinguishers"
)

// =============================================================================
// Sub-Item
// =============================================================================

// SubItem is a single line of a standard category's checklist.
//
// ID and Name come from the static checklist configuration and are never
// altered by user action; identity is by ID within the parent category.
type SubItem struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Status          ItemStatus   `json:"status"`
	Observation     string       `json:"observation"`
	ShowObservation bool         `json:"showObservation"`
	Registry        RegistryKind `json:"registry,omitempty"`
}

// =============================================================================
// Category
// =============================================================================

// Category is one section of the inspection checklist.
//
// Kind determines which field group is meaningful. The reducer rejects
// updates that target fields of a different variant.
type Category struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Kind     CategoryKind `json:"type"`
	Expanded bool         `json:"expanded"`

	// Standard variant
	SubItems []SubItem `json:"subItems,omitempty"`

	// Special variant
	Status          ItemStatus `json:"status,omitempty"`
	Observation     string     `json:"observation,omitempty"`
	ShowObservation bool       `json:"showObservation,omitempty"`

	// Pressure variant
	PressureValue string       `json:"pressureValue,omitempty"`
	PressureUnit  PressureUnit `json:"pressureUnit,omitempty"`
}

// SubItemIndex returns the index of the sub-item with the given id,
// or -1 if the category has no such sub-item.
func (c *Category) SubItemIndex(id string) int {
	for i := range c.SubItems {
		if c.SubItems[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the category.
func (c Category) Clone() Category {
	out := c
	if c.SubItems != nil {
		out.SubItems = make([]SubItem, len(c.SubItems))
		copy(out.SubItems, c.SubItems)
	}
	return out
}
