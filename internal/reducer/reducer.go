// Package reducer implements pure, non-destructive updates against an
// inspection document.
//
// Every function takes a document by value and returns a new document with
// only the targeted field replaced. Containers along the modified path (the
// category list, the category, its sub-item list) are fresh values; untouched
// siblings keep their prior identity so callers can use cheap equality checks
// to decide what changed.
//
// A lookup miss returns the input document unchanged together with an
// ENOTFOUND error; sibling data is never corrupted.
package reducer

import (
	"github.com/DukeRupert/vigil/internal/checklist"
	"github.com/DukeRupert/vigil/internal/domain"
	"github.com/google/uuid"
)

// =============================================================================
// Category Updates
// =============================================================================

// Apply runs one update operation against the category with the given id.
//
// Returns domain.ENOTFOUND if the category (or, for sub-item operations, the
// sub-item) does not exist, and domain.EINVALID if the operation targets
// fields of a different category variant. In both cases the returned document
// equals the input.
func Apply(doc domain.Inspection, categoryID string, u domain.CategoryUpdate) (domain.Inspection, error) {
	const op = "reducer.apply"

	if err := u.Validate(); err != nil {
		return doc, err
	}

	ci := doc.CategoryIndex(categoryID)
	if ci < 0 {
		return doc, domain.NotFound(op, "category", categoryID)
	}

	cat := doc.Categories[ci] // copy; SubItems still shared until cloned below

	switch u.Op {
	case domain.OpToggleExpanded:
		cat.Expanded = !cat.Expanded

	case domain.OpSetStatus:
		if cat.Kind != domain.CategoryKindSpecial {
			return doc, domain.Invalid(op, "status applies only to special categories")
		}
		cat.Status = u.Status

	case domain.OpSetObservation:
		if cat.Kind != domain.CategoryKindSpecial {
			return doc, domain.Invalid(op, "observation applies only to special categories")
		}
		cat.Observation = u.Text

	case domain.OpToggleObservation:
		if cat.Kind != domain.CategoryKindSpecial {
			return doc, domain.Invalid(op, "observation applies only to special categories")
		}
		cat.ShowObservation = !cat.ShowObservation

	case domain.OpSetPressureValue:
		if cat.Kind != domain.CategoryKindPressure {
			return doc, domain.Invalid(op, "pressure value applies only to pressure categories")
		}
		cat.PressureValue = u.Text

	case domain.OpSetPressureUnit:
		if cat.Kind != domain.CategoryKindPressure {
			return doc, domain.Invalid(op, "pressure unit applies only to pressure categories")
		}
		cat.PressureUnit = u.Unit

	case domain.OpSetSubItemStatus, domain.OpSetSubItemObservation, domain.OpToggleSubItemObservation:
		if cat.Kind != domain.CategoryKindStandard {
			return doc, domain.Invalid(op, "sub-item operations apply only to standard categories")
		}
		si := cat.SubItemIndex(u.SubItemID)
		if si < 0 {
			return doc, domain.NotFound(op, "sub-item", u.SubItemID)
		}

		// Fresh sub-item list for the modified category only.
		items := make([]domain.SubItem, len(cat.SubItems))
		copy(items, cat.SubItems)

		switch u.Op {
		case domain.OpSetSubItemStatus:
			items[si].Status = u.Status
		case domain.OpSetSubItemObservation:
			items[si].Observation = u.Text
		case domain.OpToggleSubItemObservation:
			items[si].ShowObservation = !items[si].ShowObservation
		}
		cat.SubItems = items
	}

	return replaceCategory(doc, ci, cat), nil
}

// replaceCategory returns a document whose category list is a fresh slice
// with the category at index ci swapped for cat. Untouched categories keep
// their prior values, including their shared sub-item slices.
func replaceCategory(doc domain.Inspection, ci int, cat domain.Category) domain.Inspection {
	cats := make([]domain.Category, len(doc.Categories))
	copy(cats, doc.Categories)
	cats[ci] = cat
	doc.Categories = cats
	return doc
}

// =============================================================================
// Registry Updates
// =============================================================================

// AddHose appends a hose entry with a freshly generated id. An empty quantity
// defaults to "1"; otherwise it must be a non-negative integer in text form.
// Descriptive fields must be allowed checklist options or empty.
// Returns the new document and the generated entry id; a rejected entry
// returns the input document unchanged with domain.EINVALID.
func AddHose(doc domain.Inspection, entry domain.HoseEntry) (domain.Inspection, string, error) {
	const op = "reducer.add_hose"

	if entry.Quantity == "" {
		entry.Quantity = domain.DefaultQuantity
	}
	if !domain.ValidQuantity(entry.Quantity) {
		return doc, "", domain.Invalid(op, "quantity must be a non-negative whole number")
	}
	if !checklist.ValidOption(checklist.HoseLengths, entry.Length) {
		return doc, "", domain.Invalid(op, "unknown hose length")
	}
	if !checklist.ValidOption(checklist.HoseDiameters, entry.Diameter) {
		return doc, "", domain.Invalid(op, "unknown hose diameter")
	}
	if !checklist.ValidOption(checklist.HoseTypes, entry.Type) {
		return doc, "", domain.Invalid(op, "unknown hose type")
	}

	entry.ID = uuid.NewString()
	hoses := make([]domain.HoseEntry, len(doc.Hoses), len(doc.Hoses)+1)
	copy(hoses, doc.Hoses)
	doc.Hoses = append(hoses, entry)
	return doc, entry.ID, nil
}

// RemoveHose filters out the hose entry with the given id.
// Removing an absent id is a no-op, not an error.
func RemoveHose(doc domain.Inspection, id string) domain.Inspection {
	doc.Hoses = removeHoseByID(doc.Hoses, id)
	return doc
}

// AddExtinguisher appends an extinguisher entry with a freshly generated id.
// Same entry rules as AddHose.
func AddExtinguisher(doc domain.Inspection, entry domain.ExtinguisherEntry) (domain.Inspection, string, error) {
	const op = "reducer.add_extinguisher"

	if entry.Quantity == "" {
		entry.Quantity = domain.DefaultQuantity
	}
	if !domain.ValidQuantity(entry.Quantity) {
		return doc, "", domain.Invalid(op, "quantity must be a non-negative whole number")
	}
	if !checklist.ValidOption(checklist.ExtinguisherTypes, entry.Type) {
		return doc, "", domain.Invalid(op, "unknown extinguisher type")
	}
	if !checklist.ValidOption(checklist.ExtinguisherWeights, entry.Weight) {
		return doc, "", domain.Invalid(op, "unknown extinguisher weight")
	}

	entry.ID = uuid.NewString()
	exts := make([]domain.ExtinguisherEntry, len(doc.Extinguishers), len(doc.Extinguishers)+1)
	copy(exts, doc.Extinguishers)
	doc.Extinguishers = append(exts, entry)
	return doc, entry.ID, nil
}

// RemoveExtinguisher filters out the extinguisher entry with the given id.
func RemoveExtinguisher(doc domain.Inspection, id string) domain.Inspection {
	doc.Extinguishers = removeExtinguisherByID(doc.Extinguishers, id)
	return doc
}

func removeHoseByID(entries []domain.HoseEntry, id string) []domain.HoseEntry {
	out := make([]domain.HoseEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

func removeExtinguisherByID(entries []domain.ExtinguisherEntry, id string) []domain.ExtinguisherEntry {
	out := make([]domain.ExtinguisherEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}
