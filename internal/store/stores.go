package store

import (
	"time"

	"github.com/google/uuid"

	"taskflow/internal/localcache"
	"taskflow/internal/service"
	"taskflow/internal/session"
)

// Stores bundles the per-session task and scratchpad stores. A Stores is
// built per identity and discarded on sign-in/sign-out; nothing is shared
// across identities.
type Stores struct {
	Session    *session.Session
	Cache      *localcache.Cache
	Tasks      *TaskStore
	Scratchpad *ScratchpadStore
}

// New creates the stores for one session. svc is nil for unauthenticated
// sessions; cache is the device-local persistence for both modes.
func New(sess *session.Session, svc service.Service, cache *localcache.Cache) *Stores {
	return &Stores{
		Session:    sess,
		Cache:      cache,
		Tasks:      newTaskStore(sess, svc, cache),
		Scratchpad: newScratchpadStore(sess, svc),
	}
}

func newID() string { return uuid.NewString() }

// timeNow is a test hook.
var timeNow = func() time.Time { return time.Now() }
