package domain

// =============================================================================
// Category Update Operations
// =============================================================================

// UpdateOp identifies one of the closed set of in-place category updates.
//
// No operation may change a category's kind tag or a sub-item's static name;
// each carries exactly the data needed to locate its target and the new value.
type UpdateOp string

const (
	// Category-scoped operations
	OpToggleExpanded    UpdateOp = "toggle_expanded"
	OpSetStatus         UpdateOp = "set_status"
	OpSetObservation    UpdateOp = "set_observation"
	OpToggleObservation UpdateOp = "toggle_observation"
	OpSetPressureValue  UpdateOp = "set_pressure_value"
	OpSetPressureUnit   UpdateOp = "set_pressure_unit"

	// Sub-item-scoped operations (require SubItemID)
	OpSetSubItemStatus         UpdateOp = "set_sub_item_status"
	OpSetSubItemObservation    UpdateOp = "set_sub_item_observation"
	OpToggleSubItemObservation UpdateOp = "toggle_sub_item_observation"
)

// IsValid returns true if the operation is a recognized value.
func (op UpdateOp) IsValid() bool {
	switch op {
	case OpToggleExpanded, OpSetStatus, OpSetObservation, OpToggleObservation,
		OpSetPressureValue, OpSetPressureUnit,
		OpSetSubItemStatus, OpSetSubItemObservation, OpToggleSubItemObservation:
		return true
	}
	return false
}

// TargetsSubItem returns true for operations that address a sub-item.
func (op UpdateOp) TargetsSubItem() bool {
	switch op {
	case OpSetSubItemStatus, OpSetSubItemObservation, OpToggleSubItemObservation:
		return true
	}
	return false
}

// CategoryUpdate is one update operation against a category.
//
// Only the fields relevant to Op are consulted: Status for status sets,
// Text for observation and pressure-value sets, Unit for unit sets,
// SubItemID for sub-item-scoped operations.
type CategoryUpdate struct {
	Op        UpdateOp     `json:"op"`
	SubItemID string       `json:"subItemId,omitempty"`
	Status    ItemStatus   `json:"status,omitempty"`
	Text      string       `json:"text,omitempty"`
	Unit      PressureUnit `json:"unit,omitempty"`
}

// Validate checks that the operation is recognized and carries the data it
// needs to locate its target.
func (u CategoryUpdate) Validate() error {
	const op = "update.validate"

	if !u.Op.IsValid() {
		return Invalid(op, "unrecognized operation")
	}
	if u.Op.TargetsSubItem() && u.SubItemID == "" {
		return Invalid(op, "sub-item operation requires a sub-item id")
	}
	if (u.Op == OpSetStatus || u.Op == OpSetSubItemStatus) && !u.Status.IsValid() {
		return Invalid(op, "unrecognized status value")
	}
	if u.Op == OpSetPressureUnit && !u.Unit.IsValid() {
		return Invalid(op, "unrecognized pressure unit")
	}
	return nil
}
