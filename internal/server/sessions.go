package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/tildaslashalef/codelens/internal/language"
	"github.com/tildaslashalef/codelens/internal/loggy"
	"github.com/tildaslashalef/codelens/internal/metrics"
	"github.com/tildaslashalef/codelens/internal/review"
	"github.com/tildaslashalef/codelens/internal/ulid"
	"github.com/tildaslashalef/codelens/internal/utils"
)

// SessionCookie holds the browser's session id
const SessionCookie = "codelens_session"

// Session is one browser's review controller
type Session struct {
	ID         string
	Name       string
	Controller *review.Controller

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Sessions keeps controllers in memory, keyed by cookie
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	reviewer review.Reviewer
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewSessions creates an empty store. Idle sessions older than ttl are
// dropped by Run.
func NewSessions(reviewer review.Reviewer, ttl time.Duration, m *metrics.Metrics) *Sessions {
	return &Sessions{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		reviewer: reviewer,
		metrics:  m,
		now:      time.Now,
	}
}

// Lookup returns the session named by the request cookie, if any
func (s *Sessions) Lookup(r *http.Request) (*Session, bool) {
	c, err := r.Cookie(SessionCookie)
	if err != nil || !ulid.Validate(c.Value) {
		return nil, false
	}

	s.mu.Lock()
	sess, ok := s.sessions[c.Value]
	s.mu.Unlock()
	if ok {
		sess.touch(s.now())
	}
	return sess, ok
}

// Get returns the request's session, creating one and setting the cookie
// when there is none.
func (s *Sessions) Get(w http.ResponseWriter, r *http.Request) *Session {
	if sess, ok := s.Lookup(r); ok {
		return sess
	}

	sess := &Session{
		ID:         ulid.SessionID(),
		Name:       utils.GenerateName(),
		Controller: s.NewController(),
		lastSeen:   s.now(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	s.metrics.IncSessions()

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})

	loggy.InfoContext(r.Context(), "Session created", "session_id", sess.ID, "name", sess.Name)
	return sess
}

// NewController builds a controller wired to the shared reviewer and metrics
func (s *Sessions) NewController() *review.Controller {
	return review.NewController(s.reviewer, language.Default(), review.WithObserver(s.metrics))
}

// Len reports how many sessions are held
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Expire drops idle sessions. Sessions with a review in flight are kept.
func (s *Sessions) Expire() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.idleSince(now) < s.ttl || sess.Controller.State().IsLoading {
			continue
		}
		delete(s.sessions, id)
		s.metrics.DecSessions()
		removed++
	}
	if removed > 0 {
		loggy.Debug("Expired idle sessions", "count", removed, "remaining", len(s.sessions))
	}
	return removed
}

// Run expires sessions periodically until ctx is done
func (s *Sessions) Run(ctx context.Context) {
	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Expire()
		}
	}
}
