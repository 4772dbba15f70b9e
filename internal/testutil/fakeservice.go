// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"taskflow/internal/policy"
	"taskflow/internal/service"
)

// FakeUserID is the owner stamped on records created by the fake.
const FakeUserID = "user-1"

// FakeService is an in-memory implementation of service.Service for
// testing. It enforces the same per-day quota the real API does, counting
// every task on the day regardless of completion.
type FakeService struct {
	mu     sync.Mutex
	nextID int
	tasks  []service.Task
	items  []service.ScratchpadItem

	// Error injection for testing
	TasksErr                error
	CreateTaskErr           error
	UpdateTaskErr           error
	DeleteTaskErr           error
	BatchCreateTasksErr     error
	ScratchpadErr           error
	CreateScratchpadItemErr error
	DeleteScratchpadItemErr error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// SeedTask inserts a task directly, bypassing the quota. Returns its id.
func (f *FakeService) SeedTask(title string, bucket service.Bucket, date string, completed bool) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.newTaskLocked(service.TaskDraft{Title: title, Bucket: bucket, Date: date, Completed: completed})
	f.tasks = append(f.tasks, t)
	return t.ID
}

// SeedItem inserts a scratchpad item directly. Returns its id.
func (f *FakeService) SeedItem(title string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	item := f.newItemLocked(title)
	f.items = append(f.items, item)
	return item.ID
}

// Tasks implements service.Service.
func (f *FakeService) Tasks(ctx context.Context) ([]service.Task, error) {
	if f.TasksErr != nil {
		return nil, f.TasksErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, draft service.TaskDraft) (service.Task, error) {
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.countLocked(draft.Date) >= policy.DayLimit {
		return service.Task{}, fmt.Errorf("%w: task limit reached", service.ErrInvalid)
	}
	t := f.newTaskLocked(draft)
	f.tasks = append(f.tasks, t)
	return t, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, patch service.TaskPatch) (service.Task, error) {
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			if patch.Completed != nil {
				f.tasks[i].Completed = *patch.Completed
			}
			f.tasks[i].UpdatedAt = time.Now()
			return f.tasks[i], nil
		}
	}
	return service.Task{}, service.ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return service.ErrNotFound
}

// BatchCreateTasks implements service.Service. It applies the per-day
// quota independently to each day, admitting candidates in order.
func (f *FakeService) BatchCreateTasks(ctx context.Context, drafts []service.TaskDraft) (service.BatchResult, error) {
	if f.BatchCreateTasksErr != nil {
		return service.BatchResult{}, f.BatchCreateTasksErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	var result service.BatchResult
	skipped := 0
	for _, draft := range drafts {
		if f.countLocked(draft.Date) >= policy.DayLimit {
			skipped++
			continue
		}
		t := f.newTaskLocked(draft)
		f.tasks = append(f.tasks, t)
		result.Tasks = append(result.Tasks, t)
	}
	if skipped > 0 {
		result.Warning = fmt.Sprintf("only migrated %d tasks due to the %d-task day limit; %d skipped",
			len(result.Tasks), policy.DayLimit, skipped)
	}
	return result, nil
}

// Scratchpad implements service.Service.
func (f *FakeService) Scratchpad(ctx context.Context) ([]service.ScratchpadItem, error) {
	if f.ScratchpadErr != nil {
		return nil, f.ScratchpadErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]service.ScratchpadItem, len(f.items))
	copy(out, f.items)
	return out, nil
}

// CreateScratchpadItem implements service.Service.
func (f *FakeService) CreateScratchpadItem(ctx context.Context, title string) (service.ScratchpadItem, error) {
	if f.CreateScratchpadItemErr != nil {
		return service.ScratchpadItem{}, f.CreateScratchpadItemErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	item := f.newItemLocked(title)
	f.items = append(f.items, item)
	return item, nil
}

// DeleteScratchpadItem implements service.Service.
func (f *FakeService) DeleteScratchpadItem(ctx context.Context, id string) error {
	if f.DeleteScratchpadItemErr != nil {
		return f.DeleteScratchpadItemErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, item := range f.items {
		if item.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return service.ErrNotFound
}

func (f *FakeService) countLocked(date string) int {
	n := 0
	for _, t := range f.tasks {
		if t.Date == date {
			n++
		}
	}
	return n
}

func (f *FakeService) newTaskLocked(draft service.TaskDraft) service.Task {
	f.nextID++
	now := time.Now()
	return service.Task{
		ID:        fmt.Sprintf("task-%d", f.nextID),
		UserID:    FakeUserID,
		Title:     draft.Title,
		Bucket:    draft.Bucket,
		Date:      draft.Date,
		Completed: draft.Completed,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (f *FakeService) newItemLocked(title string) service.ScratchpadItem {
	f.nextID++
	return service.ScratchpadItem{
		ID:        fmt.Sprintf("note-%d", f.nextID),
		UserID:    FakeUserID,
		Title:     title,
		CreatedAt: time.Now(),
	}
}
