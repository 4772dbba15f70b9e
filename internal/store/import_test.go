package store_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"taskflow/internal/localcache"
	"taskflow/internal/policy"
	"taskflow/internal/service"
	"taskflow/internal/session"
	"taskflow/internal/testutil"
)

// seedLocal fills a cache with tasks created while signed out.
func seedLocal(t *testing.T, cache *localcache.Cache, perDay map[string]int) {
	t.Helper()
	var tasks []service.Task
	n := 0
	for _, d := range []string{"2024-03-01", "2024-03-02", "2024-03-03"} {
		for i := 0; i < perDay[d]; i++ {
			n++
			tasks = append(tasks, service.Task{
				ID:     fmt.Sprintf("local-%d", n),
				UserID: session.LocalOwner,
				Title:  fmt.Sprintf("local task %d", n),
				Bucket: service.BucketWork,
				Date:   d,
			})
		}
	}
	if err := cache.SaveTasks(tasks); err != nil {
		t.Fatal(err)
	}
}

func TestImportLocalRequiresAuth(t *testing.T) {
	st, _ := newLocalStores(t)
	if _, err := st.Tasks.ImportLocal(context.Background()); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("got %v, want ErrUnauthorized", err)
	}
}

func TestImportLocalNothingToDo(t *testing.T) {
	st, _ := newRemoteStores(t, testutil.NewFakeService())
	report, err := st.Tasks.ImportLocal(context.Background())
	if err != nil {
		t.Fatalf("ImportLocal: %v", err)
	}
	if report.Migrated != 0 || report.Skipped != 0 || report.Warning != "" {
		t.Errorf("report = %+v", report)
	}
}

func TestImportLocal(t *testing.T) {
	svc := testutil.NewFakeService()
	st, cache := newRemoteStores(t, svc)
	seedLocal(t, cache, map[string]int{"2024-03-01": 2, "2024-03-02": 1})

	report, err := st.Tasks.ImportLocal(context.Background())
	if err != nil {
		t.Fatalf("ImportLocal: %v", err)
	}
	if report.Migrated != 3 || report.Skipped != 0 || report.Warning != "" {
		t.Errorf("report = %+v", report)
	}

	// The collection and cache now hold the remote records.
	got := st.Tasks.List()
	if len(got) != 3 {
		t.Fatalf("List after import = %+v", got)
	}
	for _, task := range got {
		if task.UserID != testutil.FakeUserID {
			t.Errorf("migrated task kept local owner: %+v", task)
		}
	}
	cached, _ := cache.Tasks()
	if len(cached) != 3 {
		t.Errorf("cache after import = %+v", cached)
	}
}

func TestImportLocalRespectsDayQuota(t *testing.T) {
	svc := testutil.NewFakeService()
	for i := 0; i < 6; i++ {
		svc.SeedTask(fmt.Sprintf("remote %d", i), service.BucketWork, "2024-03-01", false)
	}
	st, cache := newRemoteStores(t, svc)
	seedLocal(t, cache, map[string]int{"2024-03-01": 5, "2024-03-02": 5})

	report, err := st.Tasks.ImportLocal(context.Background())
	if err != nil {
		t.Fatalf("ImportLocal: %v", err)
	}
	// Day one has 2 free slots, day two is empty: 2+5 migrate, 3 skip.
	if report.Migrated != 7 || report.Skipped != 3 {
		t.Errorf("report = %+v", report)
	}
	if report.Warning == "" {
		t.Error("expected a warning when candidates are skipped")
	}

	remote, _ := svc.Tasks(context.Background())
	perDay := map[string]int{}
	for _, task := range remote {
		perDay[task.Date]++
	}
	if perDay["2024-03-01"] != policy.DayLimit || perDay["2024-03-02"] != 5 {
		t.Errorf("remote per-day counts = %v", perDay)
	}
}

func TestImportLocalIgnoresRemoteOwnedCacheEntries(t *testing.T) {
	svc := testutil.NewFakeService()
	st, cache := newRemoteStores(t, svc)

	// A cached snapshot from an earlier signed-in run is not a candidate.
	if err := cache.SaveTasks([]service.Task{
		{ID: "r1", UserID: testutil.FakeUserID, Title: "already remote", Date: "2024-03-01"},
		{ID: "l1", UserID: session.LocalOwner, Title: "mine", Bucket: service.BucketWork, Date: "2024-03-01"},
	}); err != nil {
		t.Fatal(err)
	}

	report, err := st.Tasks.ImportLocal(context.Background())
	if err != nil {
		t.Fatalf("ImportLocal: %v", err)
	}
	if report.Migrated != 1 {
		t.Errorf("report = %+v", report)
	}
	remote, _ := svc.Tasks(context.Background())
	if len(remote) != 1 || remote[0].Title != "mine" {
		t.Errorf("remote after import = %+v", remote)
	}
}

func TestImportLocalBatchFailure(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.BatchCreateTasksErr = fmt.Errorf("%w: request timed out", service.ErrUnavailable)
	st, cache := newRemoteStores(t, svc)
	seedLocal(t, cache, map[string]int{"2024-03-01": 2})

	if _, err := st.Tasks.ImportLocal(context.Background()); !errors.Is(err, service.ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
	// The local snapshot is untouched and can be retried.
	cached, _ := cache.Tasks()
	if len(cached) != 2 {
		t.Errorf("cache after failed import = %+v", cached)
	}
}
