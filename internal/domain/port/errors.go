package port

import "errors"

var (
	// ErrScanNotFound covers both "no such scan" and "exists but not yours"
	// outside of completion; the two are deliberately indistinguishable so
	// scan IDs cannot be probed.
	ErrScanNotFound = errors.New("scan session not found")

	// ErrScanForbidden is returned by completion when the scan exists but is
	// owned by a different user.
	ErrScanForbidden = errors.New("scan session does not belong to the caller")

	// ErrDeviceNotFound is returned when a device UUID cannot be resolved
	// for the calling user.
	ErrDeviceNotFound = errors.New("device not found")
)
