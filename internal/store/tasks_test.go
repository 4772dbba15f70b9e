package store_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"taskflow/internal/datekey"
	"taskflow/internal/localcache"
	"taskflow/internal/policy"
	"taskflow/internal/service"
	"taskflow/internal/session"
	"taskflow/internal/store"
	"taskflow/internal/testutil"
)

const day = datekey.Key("2024-03-01")

func newLocalStores(t *testing.T) (*store.Stores, *localcache.Cache) {
	t.Helper()
	cache := localcache.New(t.TempDir())
	return store.New(session.Anonymous(), nil, cache), cache
}

func newRemoteStores(t *testing.T, svc *testutil.FakeService) (*store.Stores, *localcache.Cache) {
	t.Helper()
	cache := localcache.New(t.TempDir())
	return store.New(session.Static(testutil.FakeUserID), svc, cache), cache
}

func mustAdd(t *testing.T, st *store.Stores, title string, bucket service.Bucket, d datekey.Key) service.Task {
	t.Helper()
	task, err := st.Tasks.Add(context.Background(), title, bucket, d)
	if err != nil {
		t.Fatalf("Add(%q): %v", title, err)
	}
	return task
}

func TestLocalAddRoundTrip(t *testing.T) {
	st, cache := newLocalStores(t)
	ctx := context.Background()

	task := mustAdd(t, st, "Buy milk", service.BucketPersonal, day)
	if task.ID == "" {
		t.Error("expected a generated id")
	}
	if task.UserID != session.LocalOwner {
		t.Errorf("UserID = %q, want %q", task.UserID, session.LocalOwner)
	}

	got := st.Tasks.OnDay(day)
	if len(got) != 1 || got[0].Title != "Buy milk" {
		t.Errorf("OnDay = %+v", got)
	}

	// A fresh session over the same cache sees the task.
	st2 := store.New(session.Anonymous(), nil, cache)
	if err := st2.Tasks.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := st2.Tasks.OnDay(day); len(got) != 1 || got[0].ID != task.ID {
		t.Errorf("reloaded OnDay = %+v", got)
	}
}

func TestAddValidation(t *testing.T) {
	st, _ := newLocalStores(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		title  string
		bucket service.Bucket
		day    datekey.Key
	}{
		{"empty title", "   ", service.BucketWork, day},
		{"bad bucket", "x", "chores", day},
		{"bad date", "x", service.BucketWork, "01/03/2024"},
		{"impossible date", "x", service.BucketWork, "2024-02-30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := st.Tasks.Add(ctx, tt.title, tt.bucket, tt.day)
			if !errors.Is(err, store.ErrValidation) {
				t.Errorf("got %v, want ErrValidation", err)
			}
		})
	}
}

func TestDayCapacity(t *testing.T) {
	st, _ := newLocalStores(t)
	ctx := context.Background()

	for i := 0; i < policy.DayLimit; i++ {
		mustAdd(t, st, fmt.Sprintf("task %d", i), service.BucketWork, day)
	}

	_, err := st.Tasks.Add(ctx, "one too many", service.BucketWork, day)
	var capErr *store.CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("got %v, want CapacityError", err)
	}
	if capErr.Day != day || capErr.Free != 0 {
		t.Errorf("CapacityError = %+v", capErr)
	}

	// Other days are unaffected.
	mustAdd(t, st, "fine elsewhere", service.BucketWork, day.AddDays(1))
}

func TestCompletedTasksCountAgainstCapacity(t *testing.T) {
	svc := testutil.NewFakeService()
	for i := 0; i < policy.DayLimit; i++ {
		svc.SeedTask(fmt.Sprintf("task %d", i), service.BucketWork, day.String(), true)
	}
	st, _ := newRemoteStores(t, svc)
	ctx := context.Background()

	if err := st.Tasks.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	_, err := st.Tasks.Add(ctx, "no room", service.BucketWork, day)
	var capErr *store.CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("got %v, want CapacityError; done tasks still hold their slot", err)
	}
}

func TestRemoteAddWritesThrough(t *testing.T) {
	svc := testutil.NewFakeService()
	st, cache := newRemoteStores(t, svc)

	task := mustAdd(t, st, "Ship release", service.BucketWork, day)
	if task.UserID != testutil.FakeUserID {
		t.Errorf("UserID = %q, want %q", task.UserID, testutil.FakeUserID)
	}

	cached, err := cache.Tasks()
	if err != nil {
		t.Fatalf("cache.Tasks: %v", err)
	}
	if len(cached) != 1 || cached[0].ID != task.ID {
		t.Errorf("cache after add = %+v", cached)
	}
}

func TestRemoteAddFailureLeavesNoShadow(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateTaskErr = fmt.Errorf("%w: boom", service.ErrUnavailable)
	st, cache := newRemoteStores(t, svc)

	_, err := st.Tasks.Add(context.Background(), "lost", service.BucketWork, day)
	if !errors.Is(err, service.ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
	if got := st.Tasks.List(); len(got) != 0 {
		t.Errorf("failed remote add left a local record: %+v", got)
	}
	if cached, _ := cache.Tasks(); len(cached) != 0 {
		t.Errorf("failed remote add reached the cache: %+v", cached)
	}
}

func TestLoadOverwritesCacheWithRemote(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SeedTask("remote task", service.BucketWork, day.String(), false)
	st, cache := newRemoteStores(t, svc)

	if err := cache.SaveTasks([]service.Task{{ID: "stale", Title: "stale"}}); err != nil {
		t.Fatal(err)
	}
	if err := st.Tasks.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	cached, _ := cache.Tasks()
	if len(cached) != 1 || cached[0].Title != "remote task" {
		t.Errorf("cache after load = %+v", cached)
	}
}

func TestLoadFallsBackToCacheWhenRemoteUnreachable(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.TasksErr = fmt.Errorf("%w: request timed out", service.ErrUnavailable)
	st, cache := newRemoteStores(t, svc)

	if err := cache.SaveTasks([]service.Task{{ID: "c1", Title: "cached", Date: day.String()}}); err != nil {
		t.Fatal(err)
	}
	if err := st.Tasks.Load(context.Background()); err != nil {
		t.Fatalf("Load should degrade to the cache, got %v", err)
	}
	if got := st.Tasks.List(); len(got) != 1 || got[0].ID != "c1" {
		t.Errorf("List after degraded load = %+v", got)
	}
}

func TestLoadSurfacesAuthErrors(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.TasksErr = service.ErrUnauthorized
	st, _ := newRemoteStores(t, svc)

	if err := st.Tasks.Load(context.Background()); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("got %v, want ErrUnauthorized", err)
	}
}

func TestToggleComplete(t *testing.T) {
	st, cache := newLocalStores(t)
	ctx := context.Background()

	task := mustAdd(t, st, "Buy milk", service.BucketWork, day)
	updated, err := st.Tasks.ToggleComplete(ctx, task.ID)
	if err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}
	if !updated.Completed {
		t.Error("expected completed after toggle")
	}

	// Toggling again flips back.
	updated, err = st.Tasks.ToggleComplete(ctx, task.ID)
	if err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}
	if updated.Completed {
		t.Error("expected open after second toggle")
	}

	cached, _ := cache.Tasks()
	if len(cached) != 1 || cached[0].Completed {
		t.Errorf("cache after toggles = %+v", cached)
	}
}

func TestToggleCompleteRemote(t *testing.T) {
	svc := testutil.NewFakeService()
	st, _ := newRemoteStores(t, svc)

	task := mustAdd(t, st, "Ship release", service.BucketWork, day)
	updated, err := st.Tasks.ToggleComplete(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}
	if !updated.Completed {
		t.Error("expected completed after toggle")
	}

	remote, _ := svc.Tasks(context.Background())
	if len(remote) != 1 || !remote[0].Completed {
		t.Errorf("remote state after toggle = %+v", remote)
	}
}

func TestToggleCompleteUnknownID(t *testing.T) {
	st, _ := newLocalStores(t)
	if _, err := st.Tasks.ToggleComplete(context.Background(), "nope"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	st, cache := newLocalStores(t)
	ctx := context.Background()

	task := mustAdd(t, st, "Buy milk", service.BucketWork, day)

	existed, err := st.Tasks.Delete(ctx, task.ID)
	if err != nil || !existed {
		t.Fatalf("Delete = %v, %v", existed, err)
	}
	if got := st.Tasks.List(); len(got) != 0 {
		t.Errorf("List after delete = %+v", got)
	}
	if cached, _ := cache.Tasks(); len(cached) != 0 {
		t.Errorf("cache after delete = %+v", cached)
	}

	// Deleting an unknown id is not an error.
	existed, err = st.Tasks.Delete(ctx, task.ID)
	if err != nil || existed {
		t.Errorf("second Delete = %v, %v", existed, err)
	}
}

func TestRemoteDeleteWritesThrough(t *testing.T) {
	svc := testutil.NewFakeService()
	st, cache := newRemoteStores(t, svc)

	task := mustAdd(t, st, "doomed", service.BucketWork, day)
	if cached, _ := cache.Tasks(); len(cached) != 1 {
		t.Fatalf("cache before delete = %+v", cached)
	}

	existed, err := st.Tasks.Delete(context.Background(), task.ID)
	if err != nil || !existed {
		t.Fatalf("Delete = %v, %v", existed, err)
	}
	// The cache must follow the delete; a stale snapshot would resurrect
	// the task on the next degraded read and re-count its day slot.
	cached, _ := cache.Tasks()
	if len(cached) != 0 {
		t.Errorf("deleted task still in the local cache: %+v", cached)
	}
}

func TestDeleteAlreadyGoneRemotely(t *testing.T) {
	svc := testutil.NewFakeService()
	st, cache := newRemoteStores(t, svc)

	task := mustAdd(t, st, "Ship release", service.BucketWork, day)
	// The record vanishes server-side behind our back.
	if err := svc.DeleteTask(context.Background(), task.ID); err != nil {
		t.Fatal(err)
	}

	existed, err := st.Tasks.Delete(context.Background(), task.ID)
	if err != nil || existed {
		t.Fatalf("Delete = %v, %v; a remotely missing record is not an error", existed, err)
	}
	if got := st.Tasks.List(); len(got) != 0 {
		t.Errorf("stale local copy survived: %+v", got)
	}
	if cached, _ := cache.Tasks(); len(cached) != 0 {
		t.Errorf("stale copy survived in the cache: %+v", cached)
	}
}

func TestListReturnsCopy(t *testing.T) {
	st, _ := newLocalStores(t)
	mustAdd(t, st, "Buy milk", service.BucketWork, day)

	got := st.Tasks.List()
	got[0].Title = "mutated"
	if st.Tasks.List()[0].Title != "Buy milk" {
		t.Error("List exposed internal state")
	}
}
