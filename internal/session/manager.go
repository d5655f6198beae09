package session

import (
	"container/list"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultIdleTTL   = 30 * time.Minute
	DefaultMaxStores = 10000
)

// ManagerOption tunes the store cache of a Manager.
type ManagerOption func(*Manager)

// WithIdleTTL evicts stores that have not been used for d.
func WithIdleTTL(d time.Duration) ManagerOption {
	return func(m *Manager) {
		if d > 0 {
			m.idleTTL = d
		}
	}
}

// WithMaxStores caps the number of cached stores. The least recently used store goes first.
func WithMaxStores(n int) ManagerOption {
	return func(m *Manager) {
		if n > 0 {
			m.maxStores = n
		}
	}
}

type cachedStore struct {
	clientID string
	store    *Store
	lastSeen time.Time
}

// Manager hands out one Store per client id so each client is restored once while it stays cached.
// Evicted stores are rebuilt from the backend on the next request.
type Manager struct {
	backend   Backend
	logger    *zap.Logger
	idleTTL   time.Duration
	maxStores int
	now       func() time.Time

	mu     sync.Mutex
	order  *list.List
	stores map[string]*list.Element
}

// NewManager constructs a Manager over backend.
func NewManager(backend Backend, logger *zap.Logger, opts ...ManagerOption) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{
		backend:   backend,
		logger:    logger,
		idleTTL:   DefaultIdleTTL,
		maxStores: DefaultMaxStores,
		now:       time.Now,
		order:     list.New(),
		stores:    make(map[string]*list.Element),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Store returns the store of clientID, creating it in the Loading state on first use.
func (m *Manager) Store(clientID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.evictIdle(now)
	if el, ok := m.stores[clientID]; ok {
		entry := el.Value.(*cachedStore)
		entry.lastSeen = now
		m.order.MoveToFront(el)
		return entry.store
	}

	for m.order.Len() >= m.maxStores {
		m.remove(m.order.Back())
	}
	store := NewStore(clientID, m.backend, m.logger)
	m.stores[clientID] = m.order.PushFront(&cachedStore{clientID: clientID, store: store, lastSeen: now})
	return store
}

// Release drops the cached store of clientID unless it holds an authenticated session.
// Anonymous clients and signed out clients keep nothing in memory between requests.
func (m *Manager) Release(clientID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	el, ok := m.stores[clientID]
	if !ok {
		return
	}
	if el.Value.(*cachedStore).store.Current().Authenticated() {
		return
	}
	m.remove(el)
}

// Forget drops the cached store of clientID. The persisted record is left untouched.
func (m *Manager) Forget(clientID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if el, ok := m.stores[clientID]; ok {
		m.remove(el)
	}
}

// Len reports the number of cached stores.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

// evictIdle walks from the least recently used end and stops at the first fresh entry.
func (m *Manager) evictIdle(now time.Time) {
	for el := m.order.Back(); el != nil; el = m.order.Back() {
		if now.Sub(el.Value.(*cachedStore).lastSeen) < m.idleTTL {
			return
		}
		m.remove(el)
	}
}

func (m *Manager) remove(el *list.Element) {
	if el == nil {
		return
	}
	entry := m.order.Remove(el).(*cachedStore)
	delete(m.stores, entry.clientID)
}
