// Package session owns the current identity and mirrors it to durable
// storage under common.UserInfoKey.
//
// Exactly one identity is current at a time. Listeners registered with
// Subscribe run after every identity change; the file store uses this to
// swap its list.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophcloud/internal/backend"
	"github.com/dmitrijs2005/gophcloud/internal/common"
	"github.com/dmitrijs2005/gophcloud/internal/localstore"
	"github.com/dmitrijs2005/gophcloud/internal/logging"
	"github.com/dmitrijs2005/gophcloud/internal/metrics"
	"github.com/dmitrijs2005/gophcloud/internal/models"
	"github.com/dmitrijs2005/gophcloud/internal/notify"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Listener observes identity changes. identity is nil after logout.
type Listener func(ctx context.Context, identity *models.Identity)

type Store struct {
	kv       localstore.Store
	backend  backend.Backend
	notifier notify.Notifier
	logger   logging.Logger
	metrics  *metrics.Metrics

	mu        sync.RWMutex
	current   *models.Identity
	listeners []Listener
}

func NewStore(kv localstore.Store, b backend.Backend, n notify.Notifier, logger logging.Logger, m *metrics.Metrics) *Store {
	return &Store{
		kv:       kv,
		backend:  b,
		notifier: n,
		logger:   logger.With("module", "session"),
		metrics:  m,
	}
}

// Subscribe registers l to be called after every identity change.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Current returns a copy of the current identity, or nil.
func (s *Store) Current() *models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	id := *s.current
	return &id
}

func (s *Store) IsAuthenticated() bool {
	return s.Current() != nil
}

func (s *Store) setCurrent(ctx context.Context, identity *models.Identity) {
	s.mu.Lock()
	s.current = identity
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l(ctx, s.Current())
	}
}

// Restore loads the persisted identity, if any. A corrupt record is removed
// and the session starts unauthenticated. Restore never fails.
func (s *Store) Restore(ctx context.Context) {
	raw, ok, err := s.kv.Get(ctx, common.UserInfoKey)
	if err != nil {
		s.logger.Error(ctx, "failed to read saved identity", "error", err)
		s.setCurrent(ctx, nil)
		return
	}
	if !ok {
		s.setCurrent(ctx, nil)
		return
	}

	var identity models.Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil || identity.ID == "" {
		s.logger.Warn(ctx, "failed to parse saved identity, discarding", "error", err)
		if err := s.kv.Delete(ctx, common.UserInfoKey); err != nil {
			s.logger.Error(ctx, "failed to discard saved identity", "error", err)
		}
		s.setCurrent(ctx, nil)
		return
	}

	s.logger.Debug(ctx, "session restored", "id", identity.ID)
	s.setCurrent(ctx, &identity)
}

func (s *Store) persist(ctx context.Context, identity models.Identity) error {
	b, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	if err := s.kv.Set(ctx, common.UserInfoKey, string(b)); err != nil {
		return fmt.Errorf("save identity: %w", err)
	}
	return nil
}

// Login authenticates with the backend. On failure the current identity is
// left unchanged.
func (s *Store) Login(ctx context.Context, email string, secret []byte) (models.Identity, error) {
	identity, err := s.login(ctx, email, secret)
	s.metrics.Auth("login", err)
	if err != nil {
		s.logger.Info(ctx, "login failed", "email", email, "error", err)
		s.notifier.Error("Login failed: " + err.Error())
		return models.Identity{}, err
	}

	s.logger.Info(ctx, "logged in", "id", identity.ID)
	s.notifier.Success("Login successful!")
	return identity, nil
}

func (s *Store) login(ctx context.Context, email string, secret []byte) (models.Identity, error) {
	identity, err := s.backend.Login(ctx, email, secret)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return models.Identity{}, ErrInvalidCredentials
		}
		return models.Identity{}, err
	}

	if err := s.persist(ctx, identity); err != nil {
		return models.Identity{}, err
	}

	s.setCurrent(ctx, &identity)
	return identity, nil
}

// Register creates a new identity and makes it current. There is no
// uniqueness check against earlier registrations.
func (s *Store) Register(ctx context.Context, name, email string, secret []byte) (models.Identity, error) {
	identity, err := s.register(ctx, name, email, secret)
	s.metrics.Auth("register", err)
	if err != nil {
		s.logger.Info(ctx, "registration failed", "email", email, "error", err)
		s.notifier.Error("Registration failed: " + err.Error())
		return models.Identity{}, err
	}

	s.logger.Info(ctx, "registered", "id", identity.ID)
	s.notifier.Success("Registration successful!")
	return identity, nil
}

func (s *Store) register(ctx context.Context, name, email string, secret []byte) (models.Identity, error) {
	identity, err := s.backend.Register(ctx, name, email, secret)
	if err != nil {
		return models.Identity{}, err
	}

	if err := s.persist(ctx, identity); err != nil {
		return models.Identity{}, err
	}

	s.setCurrent(ctx, &identity)
	return identity, nil
}

// Logout clears the identity from memory and durable storage. It is
// idempotent.
func (s *Store) Logout(ctx context.Context) {
	if err := s.kv.Delete(ctx, common.UserInfoKey); err != nil {
		s.logger.Error(ctx, "failed to remove saved identity", "error", err)
	}
	s.metrics.Auth("logout", nil)

	s.setCurrent(ctx, nil)
	s.logger.Info(ctx, "logged out")
	s.notifier.Info("You've been logged out")
}
