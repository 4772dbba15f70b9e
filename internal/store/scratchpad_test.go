package store_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"taskflow/internal/service"
	"taskflow/internal/store"
	"taskflow/internal/testutil"
)

func TestScratchpadRequiresAuth(t *testing.T) {
	st, _ := newLocalStores(t)
	ctx := context.Background()

	if _, err := st.Scratchpad.Add(ctx, "idea"); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("Add: got %v, want ErrUnauthorized", err)
	}
	if _, err := st.Scratchpad.Delete(ctx, "n1"); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("Delete: got %v, want ErrUnauthorized", err)
	}
	if err := st.Scratchpad.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := st.Scratchpad.List(); len(got) != 0 {
		t.Errorf("signed-out scratchpad should be empty, got %+v", got)
	}
}

func TestScratchpadAddListDelete(t *testing.T) {
	svc := testutil.NewFakeService()
	st, _ := newRemoteStores(t, svc)
	ctx := context.Background()

	item, err := st.Scratchpad.Add(ctx, "  call the bank  ")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if item.Title != "call the bank" {
		t.Errorf("Title = %q, want trimmed", item.Title)
	}

	got, ok := st.Scratchpad.Get(item.ID)
	if !ok || got.ID != item.ID {
		t.Errorf("Get = %+v, %v", got, ok)
	}

	existed, err := st.Scratchpad.Delete(ctx, item.ID)
	if err != nil || !existed {
		t.Fatalf("Delete = %v, %v", existed, err)
	}
	if got := st.Scratchpad.List(); len(got) != 0 {
		t.Errorf("List after delete = %+v", got)
	}
}

func TestScratchpadAddValidation(t *testing.T) {
	st, _ := newRemoteStores(t, testutil.NewFakeService())
	if _, err := st.Scratchpad.Add(context.Background(), "   "); !errors.Is(err, store.ErrValidation) {
		t.Errorf("got %v, want ErrValidation", err)
	}
}

func TestScratchpadLoadDegradesToEmpty(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SeedItem("unreachable")
	svc.ScratchpadErr = fmt.Errorf("%w: request timed out", service.ErrUnavailable)
	st, _ := newRemoteStores(t, svc)

	if err := st.Scratchpad.Load(context.Background()); err != nil {
		t.Fatalf("Load should degrade to empty, got %v", err)
	}
	if got := st.Scratchpad.List(); len(got) != 0 {
		t.Errorf("degraded scratchpad should be empty, got %+v", got)
	}
}

func TestScratchpadDeleteAlreadyGone(t *testing.T) {
	svc := testutil.NewFakeService()
	id := svc.SeedItem("idea")
	st, _ := newRemoteStores(t, svc)
	ctx := context.Background()

	if err := st.Scratchpad.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteScratchpadItem(ctx, id); err != nil {
		t.Fatal(err)
	}

	existed, err := st.Scratchpad.Delete(ctx, id)
	if err != nil || existed {
		t.Fatalf("Delete = %v, %v; a remotely missing note is not an error", existed, err)
	}
	if _, ok := st.Scratchpad.Get(id); ok {
		t.Error("stale local copy survived")
	}
}
