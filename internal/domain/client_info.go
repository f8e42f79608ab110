package domain

import "strings"

// =============================================================================
// Client Info
// =============================================================================

// MaxClientCodeLength caps the client code at five digits.
const MaxClientCodeLength = 5

// ClientInfo identifies the audited site on an inspection document.
//
// InspectionNumber is stored as received and round-trips with the document;
// nothing derives or rewrites it server-side.
type ClientInfo struct {
	Location         string `json:"clientLocation"`
	Code             string `json:"clientCode"`
	InspectionNumber string `json:"inspectionNumber"`
	Date             string `json:"inspectionDate"`
}

// ValidClientCode reports whether code is digits-only and at most five
// characters. The empty string is accepted here; presence is checked
// separately before save/export.
func ValidClientCode(code string) bool {
	if len(code) > MaxClientCodeLength {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Validate checks that required client fields are present and well-formed.
// It is called before any save or export I/O is attempted.
func (c ClientInfo) Validate() error {
	const op = "client_info.validate"

	if strings.TrimSpace(c.Location) == "" {
		return Invalid(op, "client location is required")
	}
	if strings.TrimSpace(c.Code) == "" {
		return Invalid(op, "client code is required")
	}
	if !ValidClientCode(c.Code) {
		return Invalid(op, "client code must be at most 5 digits")
	}
	return nil
}
