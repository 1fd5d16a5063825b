package timer

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ayoisaiah/hoje/internal/models"
	"github.com/ayoisaiah/hoje/store"
)

func newTestStore(t *testing.T) store.DB {
	t.Helper()

	c, err := store.NewClient(filepath.Join(t.TempDir(), "hoje_test.db"))
	if err != nil {
		t.Fatalf("Error occurred while opening the test database: %v", err)
	}

	t.Cleanup(func() {
		_ = c.Close()
	})

	return c
}

func addTimedActivity(
	t *testing.T,
	db store.DB,
	title string,
	minutes int,
) models.Activity {
	t.Helper()

	activity, err := db.AddActivity(models.Activity{
		Title:        title,
		HasTimer:     true,
		TimerMinutes: &minutes,
	})
	if err != nil {
		t.Fatal(err)
	}

	return activity
}

func TestOpenConfiguresFullDuration(t *testing.T) {
	db := newTestStore(t)
	activity := addTimedActivity(t, db, "Deep work", 10)

	e := New(db, nil)

	state, err := e.Open(activity.ID)
	if err != nil {
		t.Fatal(err)
	}

	if state != Configured {
		t.Fatalf("expected state %v, but got: %v", Configured, state)
	}

	sess, ok := e.Session()
	if !ok {
		t.Fatal("expected a session to exist")
	}

	if sess.Remaining != 600 || sess.Total != 600 {
		t.Errorf(
			"expected 600 seconds remaining of 600, but got: %d of %d",
			sess.Remaining,
			sess.Total,
		)
	}

	if sess.Running {
		t.Error("expected the countdown to not be running yet")
	}
}

func TestOpenWithoutTimerIsANoOp(t *testing.T) {
	db := newTestStore(t)

	activity, err := db.AddActivity(models.Activity{Title: "Untimed"})
	if err != nil {
		t.Fatal(err)
	}

	e := New(db, nil)

	state, err := e.Open(activity.ID)
	if err != nil {
		t.Fatal(err)
	}

	if state != Idle {
		t.Errorf("expected state %v, but got: %v", Idle, state)
	}

	if _, ok := e.Session(); ok {
		t.Error("expected no session to exist")
	}

	// A missing activity behaves the same way
	state, err = e.Open("act_missing")
	if err != nil {
		t.Fatal(err)
	}

	if state != Idle {
		t.Errorf("expected state %v, but got: %v", Idle, state)
	}
}

func TestOpenResumesTheSameActivity(t *testing.T) {
	db := newTestStore(t)
	activity := addTimedActivity(t, db, "Deep work", 10)

	e := New(db, nil)

	if _, err := e.Start(activity.ID); err != nil {
		t.Fatal(err)
	}

	defer e.Cancel()

	state, err := e.Open(activity.ID)
	if err != nil {
		t.Fatal(err)
	}

	if state != Running {
		t.Errorf("expected state %v, but got: %v", Running, state)
	}
}

func TestStartDiscardsOtherSessions(t *testing.T) {
	db := newTestStore(t)
	first := addTimedActivity(t, db, "First", 10)
	second := addTimedActivity(t, db, "Second", 5)

	e := New(db, nil)

	if _, err := e.Start(first.ID); err != nil {
		t.Fatal(err)
	}

	defer e.Cancel()

	state, err := e.Start(second.ID)
	if err != nil {
		t.Fatal(err)
	}

	if state != Running {
		t.Fatalf("expected state %v, but got: %v", Running, state)
	}

	sess, ok := e.Session()
	if !ok {
		t.Fatal("expected a session to exist")
	}

	if sess.ActivityID != second.ID {
		t.Errorf(
			"expected the session to be bound to %s, but got: %s",
			second.ID,
			sess.ActivityID,
		)
	}

	if sess.Remaining != 300 {
		t.Errorf(
			"expected the full duration to be re-armed, but got: %d",
			sess.Remaining,
		)
	}
}

func TestAdvanceCountsDownToExpiry(t *testing.T) {
	db := newTestStore(t)

	var ticks []Tick

	e := New(db, func(tick Tick) {
		ticks = append(ticks, tick)
	})

	e.sess = &Session{
		ActivityID: "act_test",
		Remaining:  3,
		Total:      3,
		Running:    true,
	}

	for i := 0; i < 2; i++ {
		if !e.advance() {
			t.Fatal("expected the countdown to keep going")
		}
	}

	if e.advance() {
		t.Fatal("expected the countdown to report expiry")
	}

	if got := e.State(); got != Expired {
		t.Errorf("expected state %v, but got: %v", Expired, got)
	}

	if len(ticks) != 3 {
		t.Fatalf("expected 3 ticks, but got: %d", len(ticks))
	}

	last := ticks[len(ticks)-1]

	if last.Remaining != 0 || last.Running {
		t.Errorf(
			"expected a final stopped tick at zero, but got: %+v",
			last,
		)
	}

	// Once expired, further ticks are ignored
	if e.advance() {
		t.Error("expected no further progress after expiry")
	}

	if len(ticks) != 3 {
		t.Errorf("expected no further ticks, but got: %d", len(ticks))
	}
}

func TestTenMinuteCountdownRunsToExpiry(t *testing.T) {
	db := newTestStore(t)
	activity := addTimedActivity(t, db, "Deep work", 10)

	var ticks []Tick

	e := New(db, func(tick Tick) {
		ticks = append(ticks, tick)
	})

	state, err := e.Open(activity.ID)
	if err != nil {
		t.Fatal(err)
	}

	if state != Configured {
		t.Fatalf("expected state %v, but got: %v", Configured, state)
	}

	// Drive the ticks directly instead of waiting ten minutes on the
	// wall clock
	e.mu.Lock()
	e.sess.Running = true
	e.mu.Unlock()

	for i := 0; i < 599; i++ {
		if !e.advance() {
			t.Fatalf("expected the countdown to keep going at tick %d", i+1)
		}
	}

	if got := e.State(); got != Running {
		t.Fatalf("expected state %v, but got: %v", Running, got)
	}

	if e.advance() {
		t.Fatal("expected the final tick to report expiry")
	}

	if got := e.State(); got != Expired {
		t.Errorf("expected state %v, but got: %v", Expired, got)
	}

	if len(ticks) != 600 {
		t.Fatalf("expected 600 ticks, but got: %d", len(ticks))
	}

	halfway := ticks[299]

	if got := Progress(halfway.Remaining, halfway.Total); got != 0.5 {
		t.Errorf("expected halfway progress of 0.5, but got: %v", got)
	}

	last := ticks[599]

	if last.Remaining != 0 || last.Running {
		t.Errorf("expected a final stopped tick at zero, but got: %+v", last)
	}

	if got := Angle(last.Remaining, last.Total); got != 360 {
		t.Errorf("expected a full rotation, but got: %v", got)
	}
}

func TestCancelReturnsToIdle(t *testing.T) {
	db := newTestStore(t)
	activity := addTimedActivity(t, db, "Deep work", 10)

	e := New(db, nil)

	if _, err := e.Start(activity.ID); err != nil {
		t.Fatal(err)
	}

	e.Cancel()

	if got := e.State(); got != Idle {
		t.Errorf("expected state %v, but got: %v", Idle, got)
	}
}

func TestCompleteDeletesTheActivity(t *testing.T) {
	db := newTestStore(t)
	activity := addTimedActivity(t, db, "Deep work", 10)

	e := New(db, nil)

	if _, err := e.Start(activity.ID); err != nil {
		t.Fatal(err)
	}

	if err := e.Complete(activity.ID); err != nil {
		t.Fatal(err)
	}

	if got := e.State(); got != Idle {
		t.Errorf("expected state %v, but got: %v", Idle, got)
	}

	if _, err := db.FindActivity(activity.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected the activity to be deleted, but got: %v", err)
	}
}

func TestCompleteLeavesUnrelatedSessionsAlone(t *testing.T) {
	db := newTestStore(t)
	current := addTimedActivity(t, db, "Current", 10)
	other := addTimedActivity(t, db, "Other", 5)

	e := New(db, nil)

	if _, err := e.Start(current.ID); err != nil {
		t.Fatal(err)
	}

	defer e.Cancel()

	if err := e.Complete(other.ID); err != nil {
		t.Fatal(err)
	}

	sess, ok := e.Session()
	if !ok || sess.ActivityID != current.ID {
		t.Error("expected the running session to survive")
	}
}

func TestProgress(t *testing.T) {
	table := []struct {
		remaining int
		total     int
		expected  float64
	}{
		{600, 600, 0},
		{300, 600, 0.5},
		{0, 600, 1},
		{-5, 600, 1},
		{700, 600, 0},
		{100, 0, 0},
	}

	for _, tc := range table {
		got := Progress(tc.remaining, tc.total)

		if got != tc.expected {
			t.Errorf(
				"Progress(%d, %d): expected %v, but got: %v",
				tc.remaining,
				tc.total,
				tc.expected,
				got,
			)
		}
	}
}

func TestAngle(t *testing.T) {
	table := []struct {
		remaining int
		total     int
		expected  float64
	}{
		{600, 600, 0},
		{450, 600, 90},
		{0, 600, 360},
	}

	for _, tc := range table {
		got := Angle(tc.remaining, tc.total)

		if got != tc.expected {
			t.Errorf(
				"Angle(%d, %d): expected %v, but got: %v",
				tc.remaining,
				tc.total,
				tc.expected,
				got,
			)
		}
	}
}
