package server

import (
	"sync"
	"time"

	"github.com/abhisek/datapath/internal/tutor"
)

// session is one API client's tutor state. mu serialises events so a
// session never runs two transitions at once.
type session struct {
	mu       sync.Mutex
	state    *tutor.State
	lastSeen time.Time
}

// registry holds the live API sessions in memory.
type registry struct {
	mu       sync.Mutex
	sessions map[string]*session
	now      func() time.Time
}

// newRegistry creates an empty registry.
func newRegistry() *registry {
	return &registry{sessions: make(map[string]*session), now: time.Now}
}

// Create starts a new session and returns it.
func (r *registry) Create() *session {
	sess := &session{state: tutor.NewState(), lastSeen: r.now()}

	r.mu.Lock()
	r.sessions[sess.state.ID] = sess
	n := len(r.sessions)
	r.mu.Unlock()

	activeSessions.Set(float64(n))
	return sess
}

// Get returns the session with id and marks it as used.
func (r *registry) Get(id string) (*session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[id]
	if ok {
		sess.lastSeen = r.now()
	}
	return sess, ok
}

// Len returns the number of live sessions.
func (r *registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions idle for longer than maxIdle and returns how many
// were removed.
func (r *registry) Sweep(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	removed := 0
	for id, sess := range r.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	n := len(r.sessions)
	r.mu.Unlock()

	activeSessions.Set(float64(n))
	return removed
}
