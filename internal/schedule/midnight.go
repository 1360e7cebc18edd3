// Package schedule re-runs the instance processor once per calendar day.
package schedule

import (
	"log/slog"
	"sync"
	"time"

	"daylight/internal/domain"
	"daylight/internal/recurring"
)

// Defaults for the processing window. The lookbehind keeps missed days
// visible for a month; the lookahead matches the sync horizon the app
// materializes upcoming occurrences over.
const (
	DefaultLookBehindDays = 30
	DefaultLookAheadDays  = 14

	defaultPollInterval = time.Minute
)

// Scheduler runs the instance processor immediately on start and again each
// time the civil date changes. It polls coarsely once per minute instead of
// arming a timer for midnight, so a laptop sleeping through midnight catches
// up on the next tick without drift bookkeeping.
//
// The scheduler owns no task state: it pulls the live set through getTasks
// on every run and reports changes through onUpdate, leaving persistence to
// the caller.
type Scheduler struct {
	getTasks func() map[string]*domain.TaskRecord
	onUpdate func(tasks map[string]*domain.TaskRecord, result recurring.Result)

	now          func() time.Time
	pollInterval time.Duration
	lookBehind   int
	lookAhead    int

	mu          sync.Mutex
	stop        chan struct{}
	done        chan struct{}
	lastRunDate domain.Date
}

// Option is a functional option for configuring Scheduler.
type Option func(*Scheduler)

// WithClock injects the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

// WithPollInterval overrides the 60-second poll tick.
func WithPollInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		s.pollInterval = d
	}
}

// WithWindow sets the processing window in days either side of today.
func WithWindow(lookBehindDays, lookAheadDays int) Option {
	return func(s *Scheduler) {
		s.lookBehind = lookBehindDays
		s.lookAhead = lookAheadDays
	}
}

// New creates a stopped scheduler. Both callbacks are required: getTasks
// supplies the live task set and onUpdate receives that set plus the result
// of any run that changed at least one task, so the caller can persist the
// mutated records.
func New(getTasks func() map[string]*domain.TaskRecord, onUpdate func(tasks map[string]*domain.TaskRecord, result recurring.Result), opts ...Option) *Scheduler {
	s := &Scheduler{
		getTasks:     getTasks,
		onUpdate:     onUpdate,
		now:          time.Now,
		pollInterval: defaultPollInterval,
		lookBehind:   DefaultLookBehindDays,
		lookAhead:    DefaultLookAheadDays,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start runs the processor once immediately, then begins polling. Calling
// Start on a running scheduler is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.stop != nil {
		s.mu.Unlock()
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	stop, done := s.stop, s.done
	s.mu.Unlock()

	slog.Info("midnight scheduler started", "poll_interval", s.pollInterval)
	s.runOnce()

	go func() {
		defer close(done)
		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.tick()
			case <-stop:
				slog.Info("midnight scheduler stopped")
				return
			}
		}
	}()
}

// Stop cancels the poll and waits for the loop to exit. Safe to call on a
// stopped scheduler.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// tick re-runs the processor only when the civil date moved past the last
// run's date. Each run is synchronous and short, so nothing is in flight
// when Stop closes the loop.
func (s *Scheduler) tick() {
	s.mu.Lock()
	last := s.lastRunDate
	s.mu.Unlock()

	if domain.DateOf(s.now()) == last {
		return
	}
	s.runOnce()
}

func (s *Scheduler) runOnce() {
	today := domain.DateOf(s.now())

	s.mu.Lock()
	s.lastRunDate = today
	s.mu.Unlock()

	tasks := s.getTasks()
	result := recurring.Process(tasks, today, s.lookBehind, s.lookAhead)
	slog.Info("instance processing complete",
		"today", today,
		"updated", result.UpdatedCount(),
		"errors", len(result.Errors))

	if result.Updated() {
		s.onUpdate(tasks, result)
	}
}
