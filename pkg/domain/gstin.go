// Package domain holds shared identifier types used across modules.
package domain

import dErrors "vendorwatch/pkg/domain-errors"

// GSTIN is a 15-character GST registration identifier and the primary key
// of the vendor registry.
// Invariant: 2-digit state code, 10-character PAN, 1-digit entity number
// (1-9), 1 checksum character.
//
// Usage: construct via ParseGSTIN at trust boundaries to enforce the
// structure; direct casting bypasses validation.
type GSTIN string

// ParseGSTIN constructs a GSTIN from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or structurally
// invalid; no other errors are expected.
func ParseGSTIN(s string) (GSTIN, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "gstin cannot be empty")
	}
	if len(s) != 15 {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "gstin must be 15 characters, got %d", len(s))
	}
	if !isDigit(s[0]) || !isDigit(s[1]) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "gstin must start with a 2-digit state code")
	}
	// PAN segment: 5 letters, 4 digits, 1 letter.
	for i := 2; i < 7; i++ {
		if !isUpper(s[i]) {
			return "", dErrors.New(dErrors.CodeInvalidInput, "gstin PAN segment is malformed")
		}
	}
	for i := 7; i < 11; i++ {
		if !isDigit(s[i]) {
			return "", dErrors.New(dErrors.CodeInvalidInput, "gstin PAN segment is malformed")
		}
	}
	if !isUpper(s[11]) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "gstin PAN segment is malformed")
	}
	if s[12] < '1' || s[12] > '9' {
		return "", dErrors.New(dErrors.CodeInvalidInput, "gstin entity number must be 1-9")
	}
	for i := 13; i < 15; i++ {
		if !isUpper(s[i]) && !isDigit(s[i]) {
			return "", dErrors.New(dErrors.CodeInvalidInput, "gstin checksum segment is malformed")
		}
	}
	return GSTIN(s), nil
}

func (g GSTIN) String() string { return string(g) }

// IsZero reports whether the GSTIN is unset.
func (g GSTIN) IsZero() bool { return g == "" }

// StateCode returns the 2-digit jurisdiction prefix.
func (g GSTIN) StateCode() string {
	if len(g) < 2 {
		return ""
	}
	return string(g[:2])
}

// PAN returns the 10-character entity code embedded in the GSTIN.
func (g GSTIN) PAN() string {
	if len(g) != 15 {
		return ""
	}
	return string(g[2:12])
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
