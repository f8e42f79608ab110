package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Client Info
// =============================================================================

func TestValidClientCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"", true}, // presence is checked separately
		{"1", true},
		{"12345", true},
		{"123456", false}, // too long
		{"12a45", false},  // non-digit
		{"12.45", false},
		{"-1234", false},
		{" 1234", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidClientCode(tt.code))
		})
	}
}

func TestClientInfoValidate(t *testing.T) {
	valid := ClientInfo{Location: "Pier 4 warehouse", Code: "00217"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		info ClientInfo
	}{
		{"missing location", ClientInfo{Code: "00217"}},
		{"whitespace location", ClientInfo{Location: "   ", Code: "00217"}},
		{"missing code", ClientInfo{Location: "Pier 4"}},
		{"malformed code", ClientInfo{Location: "Pier 4", Code: "12a45"}},
		{"code too long", ClientInfo{Location: "Pier 4", Code: "123456"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.info.Validate()
			require.Error(t, err)
			assert.Equal(t, EINVALID, ErrorCode(err))
		})
	}
}

// =============================================================================
// Document
// =============================================================================

func TestNewDocumentID(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	assert.Equal(t, "1700000000123", NewDocumentID(now))
}

func TestInspectionClone_IsDeep(t *testing.T) {
	doc := Inspection{
		ID: "1",
		Categories: []Category{
			{
				ID:       "cat",
				Kind:     CategoryKindStandard,
				SubItems: []SubItem{{ID: "a", Name: "A"}},
			},
		},
		Hoses:         []HoseEntry{{ID: "h1", Quantity: "1"}},
		Extinguishers: []ExtinguisherEntry{{ID: "e1", Quantity: "2"}},
	}

	dup := doc.Clone()
	dup.Categories[0].SubItems[0].Status = StatusOK
	dup.Hoses[0].Quantity = "9"
	dup.Extinguishers[0].Quantity = "9"

	assert.Equal(t, StatusEmpty, doc.Categories[0].SubItems[0].Status)
	assert.Equal(t, "1", doc.Hoses[0].Quantity)
	assert.Equal(t, "2", doc.Extinguishers[0].Quantity)
}

func TestSummarize(t *testing.T) {
	doc := Inspection{
		ID:         "42",
		ClientInfo: ClientInfo{Location: "Dock", Code: "7"},
		Timestamp:  1700000000000,
		Owner:      "Dana",
	}
	s := doc.Summarize()
	assert.Equal(t, "42", s.ID)
	assert.Equal(t, "Dock", s.ClientInfo.Location)
	assert.Equal(t, int64(1700000000000), s.Timestamp)
	assert.Equal(t, "Dana", s.Owner)
}

// =============================================================================
// Registry Entries
// =============================================================================

func TestValidQuantity(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"0", true},
		{"1", true},
		{"12", true},
		{" 3 ", true},
		{"", false},
		{"-1", false},
		{"1.5", false},
		{"two", false},
	}

	for _, tt := range tests {
		t.Run(tt.s, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidQuantity(tt.s))
		})
	}
}

// =============================================================================
// Category Update Validation
// =============================================================================

func TestCategoryUpdateValidate(t *testing.T) {
	tests := []struct {
		name    string
		update  CategoryUpdate
		wantErr bool
	}{
		{"valid toggle", CategoryUpdate{Op: OpToggleExpanded}, false},
		{"valid sub-item status", CategoryUpdate{Op: OpSetSubItemStatus, SubItemID: "a", Status: StatusOK}, false},
		{"clearing a status is valid", CategoryUpdate{Op: OpSetStatus, Status: StatusEmpty}, false},
		{"unknown op", CategoryUpdate{Op: "rename"}, true},
		{"sub-item op without id", CategoryUpdate{Op: OpSetSubItemStatus, Status: StatusOK}, true},
		{"unknown status", CategoryUpdate{Op: OpSetStatus, Status: "GOOD"}, true},
		{"unknown unit", CategoryUpdate{Op: OpSetPressureUnit, Unit: "kPa"}, true},
		{"valid unit", CategoryUpdate{Op: OpSetPressureUnit, Unit: PressureUnitBar}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.update.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, EINVALID, ErrorCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// =============================================================================
// Errors
// =============================================================================

func TestErrorCodeAndMessage(t *testing.T) {
	err := NotFound("inspection.get", "inspection", "99")
	assert.Equal(t, ENOTFOUND, ErrorCode(err))
	assert.Contains(t, ErrorMessage(err), "99")
	assert.Equal(t, "inspection.get", ErrorOp(err))

	// Internal errors never leak their message
	internal := Internal(assert.AnError, "x.y", "database exploded")
	assert.Equal(t, EINTERNAL, ErrorCode(internal))
	assert.NotContains(t, ErrorMessage(internal), "exploded")
}
