// Package service defines the backend-agnostic interface for the TaskFlow
// remote API. Stores never speak HTTP directly.
package service

import "time"

// Bucket is the categorical tag on a task.
type Bucket string

const (
	BucketWork     Bucket = "work"
	BucketPersonal Bucket = "personal"
)

// Valid reports whether b is a known bucket.
func (b Bucket) Valid() bool {
	return b == BucketWork || b == BucketPersonal
}

// Task is a scheduled task as persisted and returned on the wire.
type Task struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Bucket    Bucket    `json:"bucket"`
	Date      string    `json:"date"` // YYYY-MM-DD, creator's local day
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// ScratchpadItem is a free-form captured note. It has no date or bucket;
// it acquires them only when promoted into a Task.
type ScratchpadItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskDraft is the payload for creating a task.
type TaskDraft struct {
	Title     string `json:"title"`
	Bucket    Bucket `json:"bucket"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// TaskPatch is a partial update. Nil fields are left unchanged; toggling
// completion sends only the completed flag to keep the payload minimal.
type TaskPatch struct {
	Completed *bool `json:"completed,omitempty"`
}

// BatchResult is the response of a batch task creation. Warning is set when
// the per-day quota forced some candidates to be skipped.
type BatchResult struct {
	Tasks   []Task `json:"tasks"`
	Warning string `json:"warning,omitempty"`
}
