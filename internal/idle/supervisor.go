package idle

import (
	"time"

	"github.com/charmbracelet/log"
)

// Default timings.
const (
	DefaultAfter = 3000 * time.Millisecond
	DefaultPoll  = 250 * time.Millisecond
)

// Target is the game the supervisor punishes.
type Target interface {
	// Stalled reports that a forced move must not happen right now:
	// a move animation is in flight, the game is over, or no move is legal.
	Stalled() bool

	// ForceMove performs one forced move. Implementations are expected to
	// report it back through Touch, like any other committed move.
	ForceMove()
}

// Options configures a Supervisor.
type Options struct {
	After  time.Duration // Inactivity window before a forced move
	Poll   time.Duration // Backstop polling period
	Logger *log.Logger
}

// Supervisor forces a move after a window of inactivity.
//
// Two mechanisms converge on the same forced move: a one-shot deadline that
// is re-armed on every activity, and a fixed-period poll that compares the
// time since the last activity against the window. The poll only matters
// when the deadline callback is late or lost; the shared lastActivity check
// keeps the two from both acting on the same idle window.
type Supervisor struct {
	sched  Scheduler
	target Target
	after  time.Duration
	poll   time.Duration
	logger *log.Logger

	lastActivity time.Time
	deadline     Timer
	poller       Timer
	running      bool
	forced       int
}

// NewSupervisor creates a stopped supervisor. Zero option values fall back
// to DefaultAfter and DefaultPoll.
func NewSupervisor(sched Scheduler, target Target, opts Options) *Supervisor {
	if opts.After <= 0 {
		opts.After = DefaultAfter
	}
	if opts.Poll <= 0 {
		opts.Poll = DefaultPoll
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Supervisor{
		sched:  sched,
		target: target,
		after:  opts.After,
		poll:   opts.Poll,
		logger: opts.Logger,
	}
}

// Start arms both mechanisms, counting the start as activity.
// Starting a running supervisor restarts it.
func (s *Supervisor) Start() {
	s.Stop()
	s.running = true
	s.forced = 0
	s.Touch()
	s.poller = s.sched.Every(s.poll, s.onPoll)
}

// Stop cancels both timers.
func (s *Supervisor) Stop() {
	if s.deadline != nil {
		s.deadline.Stop()
		s.deadline = nil
	}
	if s.poller != nil {
		s.poller.Stop()
		s.poller = nil
	}
	s.running = false
}

// SetLogger replaces the logger. Nil selects the default logger.
func (s *Supervisor) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.Default()
	}
	s.logger = l
}

// Running reports whether the supervisor is armed.
func (s *Supervisor) Running() bool {
	return s.running
}

// Touch records activity now and pushes the deadline a full window out.
// It is a no-op while stopped.
func (s *Supervisor) Touch() {
	if !s.running {
		return
	}
	s.lastActivity = s.sched.Now()
	if s.deadline != nil {
		s.deadline.Stop()
	}
	s.deadline = s.sched.AfterFunc(s.after, s.onDeadline)
}

// LastActivity returns the time of the most recent activity.
func (s *Supervisor) LastActivity() time.Time {
	return s.lastActivity
}

// Idle returns how long the player has been inactive.
func (s *Supervisor) Idle() time.Duration {
	return s.sched.Now().Sub(s.lastActivity)
}

// Remaining returns the time left before the next forced move would be due.
func (s *Supervisor) Remaining() time.Duration {
	left := s.after - s.Idle()
	if left < 0 {
		return 0
	}
	return left
}

// Forced returns the number of forced moves since Start.
func (s *Supervisor) Forced() int {
	return s.forced
}

func (s *Supervisor) onDeadline() {
	if !s.target.Stalled() {
		s.punish("deadline")
	}
	s.Touch()
}

func (s *Supervisor) onPoll() {
	if s.target.Stalled() {
		return
	}
	if s.Idle() < s.after {
		return
	}
	s.punish("poll")
	s.Touch()
}

func (s *Supervisor) punish(source string) {
	s.forced++
	s.logger.Debug("forcing move", "source", source, "idle", s.Idle(), "count", s.forced)
	s.target.ForceMove()
}
