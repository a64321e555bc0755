package server

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-fnaform/pkg/controller"
	"github.com/goliatone/go-fnaform/pkg/prediction"
)

// SessionCookie names the cookie that binds a browser to its form state.
const SessionCookie = "fnaform_session"

// ErrSessionLimit is returned when the store is full and every session has a
// submit in flight.
var ErrSessionLimit = errors.New("server: session limit reached")

type session struct {
	id       string
	ctrl     *controller.Controller
	lastSeen time.Time
}

// sessionStore keeps one controller per visitor in memory. Idle entries are
// swept on access once they exceed ttl; at the limit the least recently
// seen idle session makes room for a new one.
type sessionStore struct {
	mu        sync.Mutex
	sessions  map[string]*session
	ttl       time.Duration
	limit     int
	now       func() time.Time
	predictor prediction.Predictor
	logger    *zap.Logger
}

func newSessionStore(predictor prediction.Predictor, ttl time.Duration, limit int, now func() time.Time, logger *zap.Logger) *sessionStore {
	return &sessionStore{
		sessions:  make(map[string]*session),
		ttl:       ttl,
		limit:     limit,
		now:       now,
		predictor: predictor,
		logger:    logger,
	}
}

// acquire returns the caller's session, creating one and setting the cookie
// when the request carries no live session id.
func (s *sessionStore) acquire(w http.ResponseWriter, r *http.Request) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if sess, ok := s.sessions[cookie.Value]; ok {
			sess.lastSeen = now
			return sess, nil
		}
	}

	if len(s.sessions) >= s.limit && !s.evictOldestLocked() {
		return nil, ErrSessionLimit
	}

	id := uuid.NewString()
	ctrl, err := controller.New(s.predictor, controller.WithLogger(s.logger.With(zap.String("session", id))))
	if err != nil {
		return nil, err
	}
	sess := &session{id: id, ctrl: ctrl, lastSeen: now}
	s.sessions[id] = sess

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl / time.Second),
	})
	s.logger.Debug("session created", zap.String("session", id))
	return sess, nil
}

func (s *sessionStore) sweepLocked(now time.Time) {
	for id, sess := range s.sessions {
		if sess.ctrl.Loading() {
			continue
		}
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
			s.logger.Debug("session expired", zap.String("session", id))
		}
	}
}

// evictOldestLocked drops the least recently seen session without a pending
// submit and reports whether one was found.
func (s *sessionStore) evictOldestLocked() bool {
	var oldest *session
	for _, sess := range s.sessions {
		if sess.ctrl.Loading() {
			continue
		}
		if oldest == nil || sess.lastSeen.Before(oldest.lastSeen) {
			oldest = sess
		}
	}
	if oldest == nil {
		return false
	}
	delete(s.sessions, oldest.id)
	s.logger.Debug("session evicted", zap.String("session", oldest.id))
	return true
}

func (s *sessionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
