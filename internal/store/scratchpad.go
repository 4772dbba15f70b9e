package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"taskflow/internal/service"
	"taskflow/internal/session"
)

// ScratchpadStore owns the scratchpad collection for one session. The
// feature is gated behind sign-in, so there is no local-only mode; an
// unreachable remote on read degrades to an empty list instead of failing.
type ScratchpadStore struct {
	mu    sync.Mutex
	sess  *session.Session
	svc   service.Service
	items []service.ScratchpadItem
}

func newScratchpadStore(sess *session.Session, svc service.Service) *ScratchpadStore {
	return &ScratchpadStore{sess: sess, svc: svc}
}

// Load fills the collection from the remote store. An unreachable remote
// yields an empty collection, not an error.
func (s *ScratchpadStore) Load(ctx context.Context) error {
	if !s.sess.Authenticated() {
		s.replace(nil)
		return nil
	}
	items, err := s.svc.Scratchpad(ctx)
	if err != nil {
		if errors.Is(err, service.ErrUnavailable) {
			s.replace(nil)
			return nil
		}
		return err
	}
	s.replace(items)
	return nil
}

// List returns the collection in insertion order.
func (s *ScratchpadStore) List() []service.ScratchpadItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]service.ScratchpadItem, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the item with the given id.
func (s *ScratchpadStore) Get(id string) (service.ScratchpadItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return service.ScratchpadItem{}, false
}

// Add captures a note. Requires an authenticated session.
func (s *ScratchpadStore) Add(ctx context.Context, title string) (service.ScratchpadItem, error) {
	if !s.sess.Authenticated() {
		return service.ScratchpadItem{}, service.ErrUnauthorized
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return service.ScratchpadItem{}, fmt.Errorf("%w: title required", ErrValidation)
	}

	item, err := s.svc.CreateScratchpadItem(ctx, title)
	if err != nil {
		return service.ScratchpadItem{}, err
	}

	s.mu.Lock()
	s.items = append(s.items, item)
	s.mu.Unlock()
	return item, nil
}

// Delete removes a note. It reports whether a record existed.
func (s *ScratchpadStore) Delete(ctx context.Context, id string) (bool, error) {
	if !s.sess.Authenticated() {
		return false, service.ErrUnauthorized
	}

	if err := s.svc.DeleteScratchpadItem(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			s.remove(id)
			return false, nil
		}
		return false, err
	}
	s.remove(id)
	return true, nil
}

func (s *ScratchpadStore) replace(items []service.ScratchpadItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
}

func (s *ScratchpadStore) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}
