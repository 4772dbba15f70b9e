// Package store owns the in-memory task and scratchpad collections for one
// session and applies the capacity, fallback and write-through rules on
// every mutation.
package store

import (
	"errors"
	"fmt"

	"taskflow/internal/datekey"
	"taskflow/internal/policy"
	"taskflow/internal/service"
)

// ErrValidation is the base error for locally rejected input (empty title,
// bad bucket, malformed date). Checked before any remote call.
var ErrValidation = errors.New("invalid input")

// CapacityError reports a denied addition on a day at or near the task
// limit. It carries the number of free slots (possibly zero).
type CapacityError struct {
	Day  datekey.Key
	Free int
}

func (e *CapacityError) Error() string {
	if e.Free > 0 {
		return fmt.Sprintf("only %d of %d task slots left on %s", e.Free, policy.DayLimit, e.Day)
	}
	return fmt.Sprintf("day %s is at the %d-task limit; delete a task to add more", e.Day, policy.DayLimit)
}

// PartialPromotionError reports a promotion that created the task but could
// not remove the source note. Both records are live; the caller must
// surface this for manual cleanup rather than retry, since a retry would
// create a second task.
type PartialPromotionError struct {
	Task service.Task
	Item service.ScratchpadItem
	Err  error
}

func (e *PartialPromotionError) Error() string {
	return fmt.Sprintf("task created, but the scratchpad note could not be removed: %v", e.Err)
}

func (e *PartialPromotionError) Unwrap() error { return e.Err }
