package loop

import (
	"testing"
	"time"
)

func TestDoRunsSynchronously(t *testing.T) {
	l := New()
	defer l.Close()

	ran := false
	l.Do(func() { ran = true })
	if !ran {
		t.Error("Do should have run the callback before returning")
	}
}

func TestPostPreservesOrder(t *testing.T) {
	l := New()
	defer l.Close()

	var got []int
	for i := 1; i <= 5; i++ {
		i := i
		l.Post(func() { got = append(got, i) })
	}
	l.Do(func() {}) // barrier

	if len(got) != 5 {
		t.Fatalf("got %d callbacks, want 5", len(got))
	}
	for i, v := range got {
		if v != i+1 {
			t.Errorf("callback %d ran out of order: got %d", i, v)
		}
	}
}

func TestNextTickRunsAfterCurrentCallback(t *testing.T) {
	l := New()
	defer l.Close()

	var got []string
	l.Do(func() {
		l.NextTick(func() { got = append(got, "tick") })
		got = append(got, "current")
	})
	l.Do(func() {}) // barrier

	if len(got) != 2 || got[0] != "current" || got[1] != "tick" {
		t.Errorf("got %v, want [current tick]", got)
	}
}

func TestAfterFires(t *testing.T) {
	l := New()
	defer l.Close()

	fired := make(chan struct{})
	l.After(5*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
}

func TestTimerStopCancels(t *testing.T) {
	l := New()
	defer l.Close()

	fired := false
	tm := l.After(10*time.Millisecond, func() { fired = true })
	l.Do(func() { tm.Stop() })

	time.Sleep(50 * time.Millisecond)
	l.Do(func() {}) // barrier
	if fired {
		t.Error("stopped timer should not fire")
	}
}

func TestStopNilTimer(t *testing.T) {
	var tm *Timer
	tm.Stop() // must not panic
}

func TestCloseIsIdempotent(t *testing.T) {
	l := New()
	l.Close()
	l.Close()

	// Post and Do after Close must not block or run.
	ran := false
	l.Post(func() { ran = true })
	l.Do(func() { ran = true })
	if ran {
		t.Error("callbacks must not run after Close")
	}
}
