package valueobject

import (
	"errors"
	"fmt"
)

// ScanStatus is the lifecycle state of a scan session. Transitions only move
// forward: RUNNING -> COMPLETED or RUNNING -> FAILED. A terminal session is
// immutable.
type ScanStatus struct {
	value string
}

var (
	ScanStatusRunning   = ScanStatus{value: "RUNNING"}
	ScanStatusCompleted = ScanStatus{value: "COMPLETED"}
	ScanStatusFailed    = ScanStatus{value: "FAILED"}
)

// ErrInvalidStatusTransition is returned when a transition would move a
// session backwards or out of a terminal state.
var ErrInvalidStatusTransition = errors.New("invalid scan status transition")

// ScanStatusFromString reconstructs a ScanStatus from its string representation.
func ScanStatusFromString(s string) (ScanStatus, error) {
	switch s {
	case "RUNNING":
		return ScanStatusRunning, nil
	case "COMPLETED":
		return ScanStatusCompleted, nil
	case "FAILED":
		return ScanStatusFailed, nil
	default:
		return ScanStatus{}, fmt.Errorf("invalid scan status: %s", s)
	}
}

// String returns the string representation.
func (s ScanStatus) String() string {
	return s.value
}

// Equal checks equality with another ScanStatus.
func (s ScanStatus) Equal(other ScanStatus) bool {
	return s.value == other.value
}

// IsTerminal reports whether the status is COMPLETED or FAILED.
func (s ScanStatus) IsTerminal() bool {
	return s.value == "COMPLETED" || s.value == "FAILED"
}

// CanTransitionTo reports whether moving to target is a legal forward transition.
func (s ScanStatus) CanTransitionTo(target ScanStatus) bool {
	if s.IsTerminal() {
		return false
	}
	return target.IsTerminal()
}
