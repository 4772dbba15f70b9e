// Package policy implements the per-day task capacity rule.
package policy

import "fmt"

// DayLimit is the maximum number of tasks allowed per owner per calendar
// day. The count includes completed tasks; finishing a task does not free
// its slot.
const DayLimit = 8

// Decision is the outcome of a capacity check.
type Decision struct {
	// Allowed reports whether the proposed addition fits within the limit.
	Allowed bool

	// Free is the number of open slots before the addition (never negative).
	Free int

	// Reason is a human-readable explanation when the addition is denied.
	Reason string
}

// CanAdd decides whether proposed more tasks fit on a day that already has
// existing tasks. Pure; callers must consult it before mutating, never after.
func CanAdd(existing, proposed int) Decision {
	free := SlotsAvailable(existing)
	if existing+proposed <= DayLimit {
		return Decision{Allowed: true, Free: free}
	}
	reason := fmt.Sprintf("task limit of %d reached for this day", DayLimit)
	if free > 0 {
		reason = fmt.Sprintf("only %d of %d task slots left for this day", free, DayLimit)
	}
	return Decision{Free: free, Reason: reason}
}

// SlotsAvailable returns how many tasks can still be added to a day with
// existing tasks, clamped at zero.
func SlotsAvailable(existing int) int {
	if existing >= DayLimit {
		return 0
	}
	return DayLimit - existing
}
