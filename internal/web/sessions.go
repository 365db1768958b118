package web

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/JonMunkholm/formdesk/internal/form"
)

// sessionCookie names the cookie that carries the page-session id.
const sessionCookie = "formdesk_session"

// pageSession is one browser's form together with its private entry store.
// mu serialises user actions so each runs to completion before the next.
type pageSession struct {
	mu       sync.Mutex
	id       string
	form     *form.Session
	lastSeen time.Time

	// flash is a one-shot notice shown on the next page render.
	flash string
	// alert is a one-shot error shown on the next page render.
	alert *form.UserMessage
}

// takeFlash returns and clears the pending notices. Caller holds mu.
func (ps *pageSession) takeFlash() (string, *form.UserMessage) {
	flash, alert := ps.flash, ps.alert
	ps.flash, ps.alert = "", nil
	return flash, alert
}

// SessionRegistry tracks live page sessions by cookie id.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*pageSession
	idle     time.Duration
	max      int
	now      func() time.Time
	newStore func() *form.Store
	gauge    prometheus.Gauge

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// NewSessionRegistry creates a registry. Sessions unused for longer than idle
// are dropped; at most max live at once (0 means unlimited). gauge may be nil.
func NewSessionRegistry(idle time.Duration, max int, gauge prometheus.Gauge) *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*pageSession),
		idle:     idle,
		max:      max,
		now:      time.Now,
		newStore: func() *form.Store { return form.NewStore() },
		gauge:    gauge,
	}
}

// Acquire returns the session for id, creating a fresh one when id is unknown
// or expired. created reports whether a new id was issued.
func (r *SessionRegistry) Acquire(id string) (ps *pageSession, created bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if ps, ok := r.sessions[id]; ok {
		if now.Sub(ps.lastSeen) <= r.idle {
			ps.lastSeen = now
			return ps, false, nil
		}
		delete(r.sessions, id)
	}

	if r.max > 0 && len(r.sessions) >= r.max {
		r.sweepLocked(now)
		if len(r.sessions) >= r.max {
			r.updateGauge()
			return nil, false, form.ErrSessionLimit
		}
	}

	ps = &pageSession{
		id:       uuid.NewString(),
		form:     form.NewSession(r.newStore()),
		lastSeen: now,
	}
	r.sessions[ps.id] = ps
	r.updateGauge()
	return ps, true, nil
}

// Sweep removes expired sessions and returns how many were dropped.
func (r *SessionRegistry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := r.sweepLocked(r.now())
	r.updateGauge()
	return n
}

func (r *SessionRegistry) sweepLocked(now time.Time) int {
	n := 0
	for id, ps := range r.sessions {
		if now.Sub(ps.lastSeen) > r.idle {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *SessionRegistry) updateGauge() {
	if r.gauge != nil {
		r.gauge.Set(float64(len(r.sessions)))
	}
}

// StartJanitor sweeps expired sessions every interval until Close.
func (r *SessionRegistry) StartJanitor(interval time.Duration) {
	r.mu.Lock()
	if r.stop != nil {
		r.mu.Unlock()
		return
	}
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	r.mu.Unlock()

	go func() {
		defer close(r.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-r.stop:
				return
			case <-ticker.C:
				r.Sweep()
			}
		}
	}()
}

// Close stops the janitor, if running, and waits for it to exit.
func (r *SessionRegistry) Close() {
	r.mu.Lock()
	stop, done := r.stop, r.done
	r.mu.Unlock()
	if stop == nil {
		return
	}
	r.once.Do(func() { close(stop) })
	<-done
}
