package store

import (
	"context"
	"fmt"

	"taskflow/internal/policy"
	"taskflow/internal/service"
	"taskflow/internal/session"
)

// ImportReport summarizes a bulk migration of locally created tasks into
// the remote store.
type ImportReport struct {
	// Migrated is the number of tasks admitted to the remote store.
	Migrated int

	// Skipped is the number of candidates rejected by the per-day quota.
	Skipped int

	// Warning is a human-readable notice when candidates were skipped.
	Warning string
}

// ImportLocal migrates the device-local task snapshot into the remote
// store. Candidates are grouped by day and admitted against each day's
// free slots independently; overflow is skipped and reported, never
// silently dropped. On success the collection and cache are replaced by
// the merged remote state.
func (s *TaskStore) ImportLocal(ctx context.Context) (ImportReport, error) {
	if !s.sess.Authenticated() {
		return ImportReport{}, service.ErrUnauthorized
	}

	cached, err := s.cache.Tasks()
	if err != nil {
		return ImportReport{}, err
	}
	var candidates []service.Task
	for _, t := range cached {
		if t.UserID == session.LocalOwner {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return ImportReport{}, nil
	}

	existing, err := s.svc.Tasks(ctx)
	if err != nil {
		return ImportReport{}, err
	}
	existingPerDay := make(map[string]int)
	for _, t := range existing {
		existingPerDay[t.Date]++
	}

	// Admit candidates in order, day by day, up to each day's free slots.
	slots := make(map[string]int)
	var drafts []service.TaskDraft
	skipped := 0
	for _, t := range candidates {
		free, ok := slots[t.Date]
		if !ok {
			free = policy.SlotsAvailable(existingPerDay[t.Date])
		}
		if free == 0 {
			skipped++
			slots[t.Date] = 0
			continue
		}
		slots[t.Date] = free - 1
		drafts = append(drafts, service.TaskDraft{
			Title:     t.Title,
			Bucket:    t.Bucket,
			Date:      t.Date,
			Completed: t.Completed,
		})
	}

	report := ImportReport{Migrated: len(drafts), Skipped: skipped}
	if skipped > 0 {
		report.Warning = fmt.Sprintf("only migrated %d tasks due to the %d-task day limit; %d skipped",
			len(drafts), policy.DayLimit, skipped)
	}

	merged := existing
	if len(drafts) > 0 {
		result, err := s.svc.BatchCreateTasks(ctx, drafts)
		if err != nil {
			return ImportReport{}, err
		}
		merged = append(merged, result.Tasks...)
		if result.Warning != "" {
			// The server is the final word on what it admitted.
			report.Warning = result.Warning
		}
	}

	s.replace(merged)
	_ = s.cache.SaveTasks(merged)
	return report, nil
}
