// Package timer operates the hoje countdown timer. Timer state is
// ephemeral: it lives in process memory only and is never written
// back to the planner database.
package timer

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/ayoisaiah/hoje/store"
)

// State identifies where the countdown state machine currently is.
type State int

const (
	// Idle means no session exists.
	Idle State = iota
	// Configured means a session exists with its full duration
	// un-elapsed and no tick armed.
	Configured
	// Running means the session is ticking down once per second.
	Running
	// Expired means the countdown reached zero naturally.
	Expired
)

func (s State) String() string {
	switch s {
	case Configured:
		return "configured"
	case Running:
		return "running"
	case Expired:
		return "expired"
	default:
		return "idle"
	}
}

// Session is the ephemeral record of an in-progress countdown, bound
// to exactly one activity at a time.
type Session struct {
	ActivityID string
	Remaining  int
	Total      int
	Running    bool
}

// Tick is delivered to the tick subscriber once per second while a
// countdown is running. Running is false on the tick that reaches
// zero.
type Tick struct {
	ActivityID string
	Remaining  int
	Total      int
	Running    bool
}

// Engine drives a single-activity countdown. At most one session
// exists at any moment; starting a countdown for a new activity
// discards any prior session first.
type Engine struct {
	mu     sync.Mutex
	db     store.DB
	sess   *Session
	stop   chan struct{}
	onTick func(Tick)
}

// New creates a countdown engine. onTick may be nil when no progress
// display is needed.
func New(db store.DB, onTick func(Tick)) *Engine {
	return &Engine{
		db:     db,
		onTick: onTick,
	}
}

// timerSeconds returns the configured countdown length for an
// activity, or 0 when the activity is missing or has no usable timer.
func (e *Engine) timerSeconds(activityID string) (int, error) {
	activity, err := e.db.FindActivity(activityID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, nil
		}

		return 0, err
	}

	if !activity.TimerEnabled() {
		return 0, nil
	}

	return *activity.TimerMinutes * 60, nil
}

// Open prepares a session for the activity whose details view is
// being opened. It resumes an existing session for the same activity,
// and is a no-op for activities without a usable timer.
func (e *Engine) Open(activityID string) (State, error) {
	total, err := e.timerSeconds(activityID)
	if err != nil {
		return e.State(), err
	}

	if total == 0 {
		return e.State(), nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sess != nil {
		if e.sess.ActivityID == activityID {
			return e.stateLocked(), nil
		}

		e.discardLocked()
	}

	e.sess = &Session{
		ActivityID: activityID,
		Remaining:  total,
		Total:      total,
	}

	return Configured, nil
}

// Start arms the full duration for the activity and begins ticking.
// Any session bound to a different activity is discarded first: only
// one countdown may run system-wide. Starting an activity without a
// usable timer is a silent no-op.
func (e *Engine) Start(activityID string) (State, error) {
	total, err := e.timerSeconds(activityID)
	if err != nil {
		return e.State(), err
	}

	if total == 0 {
		return e.State(), nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.discardLocked()

	e.sess = &Session{
		ActivityID: activityID,
		Remaining:  total,
		Total:      total,
		Running:    true,
	}

	e.stop = make(chan struct{})

	go e.run(e.stop)

	return Running, nil
}

// Cancel discards the session unconditionally, stopping any armed
// tick. It corresponds to closing the details view.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.discardLocked()
}

// Complete deletes the activity from the store and forces the bound
// session to Idle regardless of which state the countdown was in.
func (e *Engine) Complete(activityID string) error {
	err := e.db.DeleteActivity(activityID)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sess != nil && e.sess.ActivityID == activityID {
		e.discardLocked()
	}

	return err
}

// State reports the current position of the state machine.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.stateLocked()
}

// Session returns a copy of the current session, reporting false when
// the engine is idle.
func (e *Engine) Session() (Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sess == nil {
		return Session{}, false
	}

	return *e.sess, true
}

func (e *Engine) stateLocked() State {
	switch {
	case e.sess == nil:
		return Idle
	case e.sess.Running:
		return Running
	case e.sess.Remaining == 0:
		return Expired
	default:
		return Configured
	}
}

// discardLocked cancels any armed tick and drops the session.
// Cancellation is cooperative: it stops future ticks from firing but
// does not roll back the seconds already elapsed.
func (e *Engine) discardLocked() {
	if e.stop != nil {
		close(e.stop)
		e.stop = nil
	}

	e.sess = nil
}

// run ticks the session once per second until it expires or the stop
// channel closes.
func (e *Engine) run(stop chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !e.advance() {
				return
			}
		}
	}
}

// advance applies one tick: the remaining seconds decrease by one,
// floored at zero, and the tick subscriber is notified. It reports
// false once the session has expired or disappeared.
func (e *Engine) advance() bool {
	e.mu.Lock()

	sess := e.sess
	if sess == nil || !sess.Running {
		e.mu.Unlock()
		return false
	}

	if sess.Remaining > 0 {
		sess.Remaining--
	}

	expired := sess.Remaining == 0
	if expired {
		sess.Running = false
		e.stop = nil
	}

	tick := Tick{
		ActivityID: sess.ActivityID,
		Remaining:  sess.Remaining,
		Total:      sess.Total,
		Running:    sess.Running,
	}

	fn := e.onTick

	e.mu.Unlock()

	if fn != nil {
		fn(tick)
	}

	return !expired
}

// Progress returns the elapsed fraction of a countdown, clamped to
// [0, 1]. It is recomputed fully on every tick so the visual stays
// consistent with the remaining seconds even if ticks were skipped.
func Progress(remaining, total int) float64 {
	if total <= 0 {
		return 0
	}

	if remaining < 0 {
		remaining = 0
	}

	f := float64(total-remaining) / float64(total)

	return math.Min(1, math.Max(0, f))
}

// Angle maps the progress fraction to the rotation angle of a
// circular progress indicator.
func Angle(remaining, total int) float64 {
	return Progress(remaining, total) * 360
}
