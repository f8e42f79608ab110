// Package checklist holds the static definition of the fire-safety audit
// checklist: the fixed set of categories, their sub-items, and the allowed
// option values for itemized equipment.
//
// This is pure configuration data. Categories() returns a fresh deep copy on
// every call so that callers can never mutate the template through a shared
// slice.
package checklist

import "github.com/DukeRupert/vigil/internal/domain"

// =============================================================================
// Equipment Options
// =============================================================================

// Allowed option values for hose registry entries.
var (
	HoseLengths   = []string{"15m", "20m", "25m", "30m"}
	HoseDiameters = []string{"1 1/2\"", "2 1/2\""}
	HoseTypes     = []string{"Type 1", "Type 2", "Type 3", "Type 4", "Type 5"}
)

// Allowed option values for extinguisher registry entries.
var (
	ExtinguisherTypes   = []string{"H2O", "CO2", "PQS ABC", "PQS BC"}
	ExtinguisherWeights = []string{"4kg", "6kg", "8kg", "10kg", "12kg", "25kg", "50kg"}
)

// ValidOption reports whether value is one of the allowed options.
// The empty string is always valid: entries start with empty fields.
func ValidOption(options []string, value string) bool {
	if value == "" {
		return true
	}
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}

// =============================================================================
// Checklist Template
// =============================================================================

// template is the master checklist. Never handed out directly.
var template = []domain.Category{
	{
		ID:   "extinguishers",
		Name: "Extinguishers",
		Kind: domain.CategoryKindStandard,
		SubItems: []domain.SubItem{
			{ID: "ext-charge", Name: "Charge and pressure gauge"},
			{ID: "ext-seal", Name: "Safety seal and pin"},
			{ID: "ext-signage", Name: "Signage and access"},
			{ID: "ext-service-date", Name: "Service date within validity"},
			{ID: "ext-registry", Name: "Registered units", Registry: domain.RegistryExtinguishers},
		},
	},
	{
		ID:   "fire-doors",
		Name: "Fire doors",
		Kind: domain.CategoryKindStandard,
		SubItems: []domain.SubItem{
			{ID: "door-closing", Name: "Self-closing mechanism"},
			{ID: "door-clearance", Name: "Clearance and obstructions"},
			{ID: "door-panic-bar", Name: "Panic bar operation"},
		},
	},
	{
		ID:   "alarm",
		Name: "Alarm system",
		Kind: domain.CategoryKindStandard,
		SubItems: []domain.SubItem{
			{ID: "alarm-panel", Name: "Control panel status"},
			{ID: "alarm-detectors", Name: "Smoke and heat detectors"},
			{ID: "alarm-manual", Name: "Manual call points"},
			{ID: "alarm-sounders", Name: "Audible and visual sounders"},
		},
	},
	{
		ID:   "lighting",
		Name: "Emergency lighting",
		Kind: domain.CategoryKindStandard,
		SubItems: []domain.SubItem{
			{ID: "light-units", Name: "Luminaire condition"},
			{ID: "light-autonomy", Name: "Battery autonomy test"},
			{ID: "light-exits", Name: "Exit route coverage"},
		},
	},
	{
		ID:   "hydrants",
		Name: "Hydrants and hoses",
		Kind: domain.CategoryKindStandard,
		SubItems: []domain.SubItem{
			{ID: "hyd-cabinet", Name: "Cabinet condition and signage"},
			{ID: "hyd-valve", Name: "Valve operation"},
			{ID: "hyd-hoses", Name: "Registered hoses", Registry: domain.RegistryHoses},
		},
	},
	{
		ID:   "pump",
		Name: "Pump room",
		Kind: domain.CategoryKindSpecial,
	},
	{
		ID:   "pressure",
		Name: "System pressure",
		Kind: domain.CategoryKindPressure,
	},
}

// Categories returns a deep copy of the checklist template with every
// user-editable field at its initial value (empty status, no observations,
// collapsed, no registry entries).
func Categories() []domain.Category {
	out := make([]domain.Category, len(template))
	for i := range template {
		out[i] = template[i].Clone()
	}
	return out
}

// CategoryCount is the number of categories in the template.
// Every freshly created document carries exactly this many.
func CategoryCount() int {
	return len(template)
}
