// Package idle implements the inactivity watchdog that forces a move when
// the player stalls, together with the timer scheduler it runs on.
package idle

import (
	"sort"
	"time"
)

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	// Stop cancels the timer. Stopping an already stopped or fired
	// one-shot timer is a no-op.
	Stop()
}

// Scheduler registers callbacks against a clock.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
	Every(d time.Duration, f func()) Timer
}

// Loop is a cooperative scheduler driven by an explicit clock.
// Nothing happens until the owner calls Advance or AdvanceTo; due callbacks
// then run on the caller's goroutine, one at a time, in deadline order
// (registration order breaks ties). Production code advances it from the
// UI tick with wall time; tests advance it with virtual time.
//
// Loop is not safe for concurrent use.
type Loop struct {
	now    time.Time
	seq    uint64
	timers []*loopTimer
}

type loopTimer struct {
	loop    *Loop
	at      time.Time
	period  time.Duration
	seq     uint64
	fn      func()
	stopped bool
}

func (t *loopTimer) Stop() {
	if t.stopped {
		return
	}
	t.stopped = true
	t.loop.remove(t)
}

// NewLoop creates a scheduler whose clock starts at epoch.
func NewLoop(epoch time.Time) *Loop {
	return &Loop{now: epoch}
}

// Now returns the scheduler's current time.
func (l *Loop) Now() time.Time {
	return l.now
}

// AfterFunc runs f once, d after the current time.
func (l *Loop) AfterFunc(d time.Duration, f func()) Timer {
	return l.add(d, 0, f)
}

// Every runs f every d, starting d after the current time.
// Non-positive periods are rejected with a timer that never fires.
func (l *Loop) Every(d time.Duration, f func()) Timer {
	if d <= 0 {
		return &loopTimer{loop: l, stopped: true}
	}
	return l.add(d, d, f)
}

// Pending returns the number of armed timers.
func (l *Loop) Pending() int {
	return len(l.timers)
}

// Advance moves the clock forward by d, firing every timer that falls due.
func (l *Loop) Advance(d time.Duration) {
	l.AdvanceTo(l.now.Add(d))
}

// AdvanceTo moves the clock forward to t, firing every timer that falls due
// on the way. Each callback observes Now() equal to its own deadline.
// Moving backwards is ignored.
func (l *Loop) AdvanceTo(t time.Time) {
	if t.Before(l.now) {
		return
	}
	for len(l.timers) > 0 && !l.timers[0].at.After(t) {
		next := l.timers[0]
		l.timers = l.timers[1:]
		l.now = next.at

		if next.period > 0 {
			next.at = next.at.Add(next.period)
			l.insert(next)
		} else {
			next.stopped = true
		}
		next.fn()
	}
	l.now = t
}

func (l *Loop) add(d, period time.Duration, f func()) *loopTimer {
	if d < 0 {
		d = 0
	}
	l.seq++
	t := &loopTimer{
		loop:   l,
		at:     l.now.Add(d),
		period: period,
		seq:    l.seq,
		fn:     f,
	}
	l.insert(t)
	return t
}

func (l *Loop) insert(t *loopTimer) {
	i := sort.Search(len(l.timers), func(i int) bool {
		o := l.timers[i]
		if o.at.Equal(t.at) {
			return o.seq > t.seq
		}
		return o.at.After(t.at)
	})
	l.timers = append(l.timers, nil)
	copy(l.timers[i+1:], l.timers[i:])
	l.timers[i] = t
}

func (l *Loop) remove(t *loopTimer) {
	for i, o := range l.timers {
		if o == t {
			l.timers = append(l.timers[:i], l.timers[i+1:]...)
			return
		}
	}
}
