package valueobject

import "strings"

// ScanMode is the kind of scan requested by the client.
type ScanMode struct {
	value string
}

var (
	ScanModeQuick = ScanMode{value: "quick"}
	ScanModeDeep  = ScanMode{value: "deep"}
)

// ScanModeFromString maps a client-supplied mode string to a ScanMode.
// Unknown modes are coerced to quick rather than rejected; clients ship
// ahead of the backend and an unrecognized mode is not worth failing a scan.
func ScanModeFromString(s string) ScanMode {
	switch strings.ToLower(s) {
	case "deep":
		return ScanModeDeep
	default:
		return ScanModeQuick
	}
}

// String returns the string representation.
func (m ScanMode) String() string {
	return m.value
}

// IsZero returns true if the ScanMode has not been set.
func (m ScanMode) IsZero() bool {
	return m.value == ""
}
