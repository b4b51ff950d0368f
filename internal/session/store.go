package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"evrental/internal/models"
)

var (
	ErrNotFound   = errors.New("session: not found")
	ErrIncomplete = errors.New("session: token and user must be set together")
)

const (
	ReasonLogout       = "logout"
	ReasonUnauthorized = "unauthorized"
)

// Session binds the backend bearer token to its principal. The two are one
// JSON document under one storage key, so they are set and cleared
// atomically, never one without the other.
type Session struct {
	ID          string      `json:"id"`
	Token       string      `json:"token"`
	User        models.User `json:"user"`
	LandingPage string      `json:"landingPage"`
	CreatedAt   time.Time   `json:"createdAt"`
	ExpiresAt   time.Time   `json:"expiresAt"`
}

// Event announces a session invalidation to every gateway instance sharing
// the storage. This is the cross-tab storage notification.
type Event struct {
	SessionID string `json:"sessionId"`
	Reason    string `json:"reason"`
}

// Storage is the durable store shared by all instances.
type Storage interface {
	Save(ctx context.Context, id string, data []byte, ttl time.Duration) error
	Load(ctx context.Context, id string) ([]byte, error)
	Delete(ctx context.Context, id string) error
	Publish(ctx context.Context, event Event) error
	Subscribe(ctx context.Context) (<-chan Event, error)
}

// Store holds the authenticated principals. A request context is either
// anonymous (no resolvable session) or authenticated; there is no third
// state. The in-memory copy is a cache over Storage, dropped whenever an
// invalidation event arrives.
type Store struct {
	backend    Storage
	logger     *zap.Logger
	defaultTTL time.Duration

	mu    sync.RWMutex
	local map[string]*Session

	onInvalidate func(Event)
}

// NewStore builds a store over the shared storage.
func NewStore(backend Storage, logger *zap.Logger, defaultTTL time.Duration) *Store {
	if defaultTTL <= 0 {
		defaultTTL = 12 * time.Hour
	}
	return &Store{
		backend:    backend,
		logger:     logger,
		defaultTTL: defaultTTL,
		local:      make(map[string]*Session),
	}
}

// OnInvalidate registers the hook notified for every invalidation event,
// local or remote. Must be set before Watch starts.
func (s *Store) OnInvalidate(fn func(Event)) {
	s.onInvalidate = fn
}

// Login transitions to authenticated: one session document is written with
// both token and principal, and the landing page is derived exactly once
// from the normalized role.
func (s *Store) Login(ctx context.Context, token string, user models.User) (*Session, error) {
	if token == "" || user.Role == "" {
		return nil, ErrIncomplete
	}

	now := time.Now().UTC()
	sess := &Session{
		ID:          uuid.NewString(),
		Token:       token,
		User:        user,
		LandingPage: user.Role.LandingPage(),
		CreatedAt:   now,
		ExpiresAt:   now.Add(tokenTTL(token, s.defaultTTL)),
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}
	if err := s.backend.Save(ctx, sess.ID, data, time.Until(sess.ExpiresAt)); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.local[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Info("session established",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)
	return sess, nil
}

// Get resolves a session id, preferring the in-memory copy. Expired or
// missing sessions mean the caller is anonymous.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	s.mu.RLock()
	sess, ok := s.local[id]
	s.mu.RUnlock()
	if ok {
		if time.Now().After(sess.ExpiresAt) {
			s.drop(id)
			return nil, ErrNotFound
		}
		return sess, nil
	}

	data, err := s.backend.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	sess = &Session{}
	if err := json.Unmarshal(data, sess); err != nil {
		return nil, err
	}
	if sess.Token == "" || sess.User.Role == "" {
		// Half a session is no session.
		_ = s.backend.Delete(ctx, id)
		return nil, ErrNotFound
	}

	s.mu.Lock()
	s.local[id] = sess
	s.mu.Unlock()
	return sess, nil
}

// Logout transitions to anonymous: the document is deleted as a whole and
// the invalidation is published so other instances and open tabs reset.
func (s *Store) Logout(ctx context.Context, id string) error {
	return s.invalidate(ctx, id, ReasonLogout)
}

// Invalidate handles a backend 401 observed at a call site: the stored
// token is no longer honored, so the session is torn down the same way a
// logout would. There is no background poller; this is the only other
// trigger besides logout and remote deletion.
func (s *Store) Invalidate(ctx context.Context, id string) error {
	return s.invalidate(ctx, id, ReasonUnauthorized)
}

func (s *Store) invalidate(ctx context.Context, id, reason string) error {
	if err := s.backend.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	s.drop(id)
	if err := s.backend.Publish(ctx, Event{SessionID: id, Reason: reason}); err != nil {
		s.logger.Warn("failed to publish session invalidation", zap.Error(err))
	}
	return nil
}

// Watch consumes invalidation events until ctx is done. An event for a
// session this instance holds forces it back to anonymous even though this
// instance issued no logout itself.
func (s *Store) Watch(ctx context.Context) error {
	events, err := s.backend.Subscribe(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			s.drop(ev.SessionID)
			if s.onInvalidate != nil {
				s.onInvalidate(ev)
			}
		}
	}
}

func (s *Store) drop(id string) {
	s.mu.Lock()
	delete(s.local, id)
	s.mu.Unlock()
}

// Authenticated reports whether the id currently resolves to a session.
func (s *Store) Authenticated(ctx context.Context, id string) bool {
	_, err := s.Get(ctx, id)
	return err == nil
}
