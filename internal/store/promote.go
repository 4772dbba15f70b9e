package store

import (
	"context"
	"fmt"

	"taskflow/internal/datekey"
	"taskflow/internal/service"
)

// Promote turns a scratchpad note into a task on the given day and bucket.
// Promotion is a move, not a copy: the note is removed only after the task
// is successfully created. If the creation is denied or fails, the note is
// untouched. If the creation succeeds but the removal fails, both records
// are live and the failure is reported as a PartialPromotionError; callers
// must not retry blindly, a retry would create a second task.
func (s *Stores) Promote(ctx context.Context, itemID string, bucket service.Bucket, day datekey.Key) (service.Task, error) {
	item, ok := s.Scratchpad.Get(itemID)
	if !ok {
		return service.Task{}, fmt.Errorf("scratchpad item %s: %w", itemID, service.ErrNotFound)
	}

	task, err := s.Tasks.Add(ctx, item.Title, bucket, day)
	if err != nil {
		return service.Task{}, err
	}

	if _, err := s.Scratchpad.Delete(ctx, item.ID); err != nil {
		return task, &PartialPromotionError{Task: task, Item: item, Err: err}
	}
	return task, nil
}
