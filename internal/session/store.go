// Package session holds the per client authentication state and its persisted record.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

// StorageKey is the key the session record is persisted under.
const StorageKey = "auth"

// State is the lifecycle stage of a client session.
type State int

const (
	Loading State = iota
	Unauthenticated
	Authenticated
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Unauthenticated:
		return "unauthenticated"
	case Authenticated:
		return "authenticated"
	}
	return "unknown"
}

// Session is an immutable view of a store.
type Session struct {
	State State        `json:"-"`
	User  *models.User `json:"user,omitempty"`
	Role  models.Role  `json:"role,omitempty"`
}

// Authenticated reports whether a user is signed in.
func (s Session) Authenticated() bool {
	return s.State == Authenticated
}

type record struct {
	User models.User `json:"user"`
	Role models.Role `json:"role"`
}

func (r record) valid() bool {
	if _, ok := models.ParseRole(string(r.Role)); !ok {
		return false
	}
	return r.User.ID != ""
}

// Store is the authentication state of one client. It starts in Loading until Restore reads storage.
type Store struct {
	clientID string
	backend  Backend
	logger   *zap.Logger

	mu    sync.RWMutex
	state State
	user  models.User
	role  models.Role
}

// NewStore builds a store for clientID in the Loading state.
func NewStore(clientID string, backend Backend, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{clientID: clientID, backend: backend, logger: logger, state: Loading}
}

// ClientID returns the namespace the store persists to.
func (s *Store) ClientID() string {
	return s.clientID
}

// Current returns the session state.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess := Session{State: s.state}
	if s.state == Authenticated {
		user := s.user
		sess.User = &user
		sess.Role = s.role
	}
	return sess
}

// Restore reads the persisted record once. A record that fails to parse or is incomplete is
// logged, removed and treated as absent. A storage read error leaves the store Loading so the
// next call retries.
func (s *Store) Restore(ctx context.Context) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Loading {
		return s.currentLocked()
	}

	raw, ok, err := s.backend.Get(ctx, s.clientID, StorageKey)
	if err != nil {
		s.logger.Warn("session storage unavailable", zap.String("client_id", s.clientID), zap.Error(err))
		return s.currentLocked()
	}
	if !ok {
		s.state = Unauthenticated
		return s.currentLocked()
	}

	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil || !rec.valid() {
		if err == nil {
			err = fmt.Errorf("incomplete session record")
		}
		s.logger.Error("discarding corrupt session record", zap.String("client_id", s.clientID), zap.Error(err))
		if delErr := s.backend.Delete(ctx, s.clientID, StorageKey); delErr != nil {
			s.logger.Warn("failed to remove corrupt session record", zap.String("client_id", s.clientID), zap.Error(delErr))
		}
		s.state = Unauthenticated
		return s.currentLocked()
	}

	s.user = rec.User
	s.role = rec.Role
	s.state = Authenticated
	return s.currentLocked()
}

// Login persists the user and enters the Authenticated state. Nothing changes when persisting fails.
func (s *Store) Login(ctx context.Context, user models.User) error {
	if _, ok := models.ParseRole(string(user.Role)); !ok || user.ID == "" {
		return fmt.Errorf("session: invalid user")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(ctx, record{User: user, Role: user.Role}); err != nil {
		return err
	}
	s.user = user
	s.role = user.Role
	s.state = Authenticated
	return nil
}

// UpdateUser rewrites the persisted user keeping the role.
func (s *Store) UpdateUser(ctx context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Authenticated {
		return fmt.Errorf("session: not authenticated")
	}
	user.Role = s.role
	if err := s.persist(ctx, record{User: user, Role: s.role}); err != nil {
		return err
	}
	s.user = user
	return nil
}

// Logout removes the persisted record. Calling it without a session is a no-op.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Delete(ctx, s.clientID, StorageKey); err != nil {
		return fmt.Errorf("remove session record: %w", err)
	}
	s.user = models.User{}
	s.role = ""
	s.state = Unauthenticated
	return nil
}

func (s *Store) persist(ctx context.Context, rec record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}
	if err := s.backend.Set(ctx, s.clientID, StorageKey, string(payload)); err != nil {
		return fmt.Errorf("persist session record: %w", err)
	}
	return nil
}

func (s *Store) currentLocked() Session {
	sess := Session{State: s.state}
	if s.state == Authenticated {
		user := s.user
		sess.User = &user
		sess.Role = s.role
	}
	return sess
}
