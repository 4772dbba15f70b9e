package service

import (
	"context"
	"errors"
)

// Sentinel errors returned by Service implementations. Backends map their
// transport-level failures onto these so stores can branch without
// inspecting error strings.
var (
	// ErrUnauthorized means the credential is missing, expired or revoked.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound means the record does not exist or is not owned by the
	// caller.
	ErrNotFound = errors.New("not found")

	// ErrInvalid means the server rejected the payload (validation or
	// server-side quota).
	ErrInvalid = errors.New("invalid request")

	// ErrUnavailable means the remote could not be reached (network
	// failure or timeout). Reads may degrade to cached data on this error.
	ErrUnavailable = errors.New("service unavailable")
)

// Service is the remote task/scratchpad API for one authenticated user.
// All calls carry the session's bearer credential.
type Service interface {
	// Tasks returns every task owned by the current user.
	Tasks(ctx context.Context) ([]Task, error)

	// CreateTask creates one task and returns the stored record.
	CreateTask(ctx context.Context, draft TaskDraft) (Task, error)

	// UpdateTask applies a partial update and returns the stored record.
	UpdateTask(ctx context.Context, id string, patch TaskPatch) (Task, error)

	// DeleteTask deletes a task by id.
	DeleteTask(ctx context.Context, id string) error

	// BatchCreateTasks creates several tasks in one call. The server applies
	// the per-day quota independently to each day and reports skipped
	// candidates in the result warning.
	BatchCreateTasks(ctx context.Context, drafts []TaskDraft) (BatchResult, error)

	// Scratchpad returns every scratchpad item owned by the current user.
	Scratchpad(ctx context.Context) ([]ScratchpadItem, error)

	// CreateScratchpadItem captures a note and returns the stored record.
	CreateScratchpadItem(ctx context.Context, title string) (ScratchpadItem, error)

	// DeleteScratchpadItem deletes a note by id.
	DeleteScratchpadItem(ctx context.Context, id string) error
}
