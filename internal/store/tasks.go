package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"taskflow/internal/datekey"
	"taskflow/internal/localcache"
	"taskflow/internal/policy"
	"taskflow/internal/service"
	"taskflow/internal/session"
)

// TaskStore owns the task collection for one session. When the session is
// authenticated the remote store is the authority and every successful
// mutation also rewrites the local cache (write-through); when signed out
// the cache is the only persistence.
type TaskStore struct {
	mu    sync.Mutex
	sess  *session.Session
	svc   service.Service
	cache *localcache.Cache
	tasks []service.Task
}

func newTaskStore(sess *session.Session, svc service.Service, cache *localcache.Cache) *TaskStore {
	return &TaskStore{sess: sess, svc: svc, cache: cache}
}

// Load fills the collection from the current authority. Authenticated
// sessions read the remote store and overwrite the cache with the result;
// if the remote is unreachable the read falls back to the last cached
// snapshot (stale but available). Signed-out sessions read the cache only.
func (s *TaskStore) Load(ctx context.Context) error {
	if !s.sess.Authenticated() {
		tasks, err := s.cache.Tasks()
		if err != nil {
			return err
		}
		s.replace(tasks)
		return nil
	}

	tasks, err := s.svc.Tasks(ctx)
	if err != nil {
		if errors.Is(err, service.ErrUnavailable) {
			cached, cacheErr := s.cache.Tasks()
			if cacheErr != nil {
				return err
			}
			s.replace(cached)
			return nil
		}
		return err
	}
	s.replace(tasks)
	// Remote is authority; keep the cache a faithful snapshot of it.
	_ = s.cache.SaveTasks(tasks)
	return nil
}

// List returns the full collection in insertion order.
func (s *TaskStore) List() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]service.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// OnDay returns the tasks whose date key matches day exactly.
func (s *TaskStore) OnDay(day datekey.Key) []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.onDayLocked(day)
}

func (s *TaskStore) onDayLocked(day datekey.Key) []service.Task {
	var out []service.Task
	for _, t := range s.tasks {
		if t.Date == day.String() {
			out = append(out, t)
		}
	}
	return out
}

// Add validates the input, checks the day's capacity against the latest
// in-memory collection, creates the task (remote when signed in, local
// otherwise) and persists. The capacity check and the remote create are
// not one atomic step: two unsequenced concurrent adds can both pass the
// check against a stale count, the same window the server has.
func (s *TaskStore) Add(ctx context.Context, title string, bucket service.Bucket, day datekey.Key) (service.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return service.Task{}, fmt.Errorf("%w: title required", ErrValidation)
	}
	if !bucket.Valid() {
		return service.Task{}, fmt.Errorf("%w: unknown bucket %q", ErrValidation, bucket)
	}
	if _, err := datekey.Parse(day.String()); err != nil {
		return service.Task{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	s.mu.Lock()
	existing := len(s.onDayLocked(day))
	s.mu.Unlock()

	if d := policy.CanAdd(existing, 1); !d.Allowed {
		return service.Task{}, &CapacityError{Day: day, Free: d.Free}
	}

	draft := service.TaskDraft{Title: title, Bucket: bucket, Date: day.String()}

	if s.sess.Authenticated() {
		task, err := s.svc.CreateTask(ctx, draft)
		if err != nil {
			// No local shadow record: the caller believes they are in
			// authenticated mode, so a failed remote write must stay visible.
			return service.Task{}, err
		}
		s.append(task)
		return task, nil
	}

	now := timeNow()
	task := service.Task{
		ID:        newID(),
		UserID:    s.sess.UserID(),
		Title:     title,
		Bucket:    bucket,
		Date:      day.String(),
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.appendPersist(task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// ToggleComplete flips the completed flag of a task. The remote path sends
// a partial update carrying only the flag; the local path rewrites the
// cached collection.
func (s *TaskStore) ToggleComplete(ctx context.Context, id string) (service.Task, error) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return service.Task{}, fmt.Errorf("task %s: %w", id, service.ErrNotFound)
	}
	flipped := !s.tasks[idx].Completed
	s.mu.Unlock()

	if s.sess.Authenticated() {
		updated, err := s.svc.UpdateTask(ctx, id, service.TaskPatch{Completed: &flipped})
		if err != nil {
			return service.Task{}, err
		}
		s.mu.Lock()
		if idx = s.indexLocked(id); idx >= 0 {
			s.tasks[idx] = updated
		}
		snapshot := s.snapshotLocked()
		s.mu.Unlock()
		_ = s.cache.SaveTasks(snapshot)
		return updated, nil
	}

	s.mu.Lock()
	idx = s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return service.Task{}, fmt.Errorf("task %s: %w", id, service.ErrNotFound)
	}
	s.tasks[idx].Completed = flipped
	s.tasks[idx].UpdatedAt = timeNow()
	updated := s.tasks[idx]
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if err := s.cache.SaveTasks(snapshot); err != nil {
		return service.Task{}, err
	}
	return updated, nil
}

// Delete removes a task. It reports whether a record existed; deleting an
// unknown id is not an error.
func (s *TaskStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	s.mu.Unlock()
	if idx < 0 {
		return false, nil
	}

	if s.sess.Authenticated() {
		if err := s.svc.DeleteTask(ctx, id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				// Already gone remotely; drop the stale local copy.
				s.removePersist(id)
				return false, nil
			}
			return false, err
		}
		s.removePersist(id)
		return true, nil
	}

	s.mu.Lock()
	if idx = s.indexLocked(id); idx < 0 {
		s.mu.Unlock()
		return false, nil
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if err := s.cache.SaveTasks(snapshot); err != nil {
		return false, err
	}
	return true, nil
}

func (s *TaskStore) indexLocked(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskStore) snapshotLocked() []service.Task {
	out := make([]service.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *TaskStore) replace(tasks []service.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
}

// append records a remote-created task in memory and best-effort snapshots
// the collection to the cache. The task already exists remotely, so a cache
// write failure does not fail the operation.
func (s *TaskStore) append(task service.Task) {
	s.mu.Lock()
	s.tasks = append(s.tasks, task)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	_ = s.cache.SaveTasks(snapshot)
}

// appendPersist records a locally created task; here the cache write is the
// persistence, so a failure rolls the task back out of memory.
func (s *TaskStore) appendPersist(task service.Task) error {
	s.mu.Lock()
	s.tasks = append(s.tasks, task)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if err := s.cache.SaveTasks(snapshot); err != nil {
		s.remove(task.ID)
		return err
	}
	return nil
}

func (s *TaskStore) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexLocked(id); idx >= 0 {
		s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	}
}

// removePersist drops a remotely deleted task from memory and best-effort
// snapshots the collection to the cache, mirroring append. Without the
// snapshot a later degraded read would resurrect the deleted task.
func (s *TaskStore) removePersist(id string) {
	s.mu.Lock()
	if idx := s.indexLocked(id); idx >= 0 {
		s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	_ = s.cache.SaveTasks(snapshot)
}
