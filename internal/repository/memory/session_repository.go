package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"bid-agent-be/pkg/store"
)

// SessionRepository keeps drafting sessions in process memory for their
// working lifetime. Reads hand out copies; Save is the only writer and is
// serialized per session id through Lock.
type SessionRepository struct {
	cache *cache.Cache

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

var _ store.SessionStore = &SessionRepository{}

func NewSessionRepository() *SessionRepository {
	// Sessions expire an hour after their last write; expired entries are
	// purged every 10 minutes. Durable retention is the archive's job.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
		locks: map[string]*sync.Mutex{},
	}
}

func (r *SessionRepository) Create(rawText, fileName, templateID string) (*store.Session, error) {
	sess := store.NewSession(uuid.NewString(), rawText, fileName, templateID)
	r.cache.Set(sess.ID, sess.Clone(), cache.DefaultExpiration)
	return sess, nil
}

func (r *SessionRepository) Get(id string) (*store.Session, error) {
	x, found := r.cache.Get(id)
	if !found {
		return nil, store.ErrNotFound
	}
	return x.(*store.Session).Clone(), nil
}

func (r *SessionRepository) Save(sess *store.Session) error {
	if !r.Exists(sess.ID) {
		return store.ErrNotFound
	}
	r.cache.Set(sess.ID, sess.Clone(), cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) Exists(id string) bool {
	_, found := r.cache.Get(id)
	return found
}

// Lock claims the per-session mutex. Locks for distinct sessions are
// independent; a run on one session never blocks another.
func (r *SessionRepository) Lock(id string) func() {
	r.mu.Lock()
	m, ok := r.locks[id]
	if !ok {
		m = &sync.Mutex{}
		r.locks[id] = m
	}
	r.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func (r *SessionRepository) Delete(id string) {
	r.cache.Delete(id)
	r.mu.Lock()
	delete(r.locks, id)
	r.mu.Unlock()
}
