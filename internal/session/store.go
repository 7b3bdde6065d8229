package session

import (
	"sync"

	"github.com/documind/documind/internal/metrics"
	"github.com/documind/documind/pkg/logger_i"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Store is the one piece of global mutable state in the system: the mapping
// from session key to ready session. It is bounded - once capacity is
// reached the least recently used session (by last query) is evicted, so
// sustained multi-document usage cannot grow memory without limit.
type Store struct {
	cache  *lru.Cache[string, *Session]
	lockMu sync.Mutex
	locks  map[string]*sync.Mutex
	logger *logger_i.Logger
}

func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = 1
	}
	st := &Store{
		locks:  make(map[string]*sync.Mutex),
		logger: logger_i.NewLogger("Session Store"),
	}
	cache, err := lru.NewWithEvict[string, *Session](capacity, st.onEvict)
	if err != nil {
		// only reachable with a non-positive capacity, which is guarded above
		panic(err)
	}
	st.cache = cache
	return st
}

// onEvict fires for both LRU eviction and explicit Remove. The key's build
// lock goes with the session, otherwise the locks map outlives every evicted
// key and grows without bound.
func (st *Store) onEvict(key string, _ *Session) {
	st.logger.Info("Session evicted", "key", key)

	st.lockMu.Lock()
	delete(st.locks, key)
	st.lockMu.Unlock()

	metrics.DecrementIndexedSessions()
}

// Get returns the session for key and marks it as recently used.
func (st *Store) Get(key string) (*Session, bool) {
	return st.cache.Get(key)
}

// Peek returns the session for key without touching recency.
func (st *Store) Peek(key string) (*Session, bool) {
	return st.cache.Peek(key)
}

func (st *Store) Add(key string, s *Session) {
	st.cache.Add(key, s)
	metrics.IncrementIndexedSessions()
}

// Remove deletes a session. The LRU eviction callback fires for removed
// entries too, so the gauge stays consistent.
func (st *Store) Remove(key string) bool {
	present := st.cache.Remove(key)

	st.lockMu.Lock()
	delete(st.locks, key)
	st.lockMu.Unlock()

	return present
}

// List returns the live sessions without perturbing LRU order.
func (st *Store) List() []*Session {
	keys := st.cache.Keys()
	out := make([]*Session, 0, len(keys))
	for _, k := range keys {
		if s, ok := st.cache.Peek(k); ok {
			out = append(out, s)
		}
	}
	return out
}

func (st *Store) Len() int {
	return st.cache.Len()
}

// BuildLock returns the mutex that serializes the Absent->Ready transition
// for one key, so concurrent uploads of the same document cannot race to
// build two indexes.
func (st *Store) BuildLock(key string) *sync.Mutex {
	st.lockMu.Lock()
	defer st.lockMu.Unlock()
	l, ok := st.locks[key]
	if !ok {
		l = &sync.Mutex{}
		st.locks[key] = l
	}
	return l
}
