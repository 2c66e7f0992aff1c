package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

var (
	ErrSweepRunning = errors.New("a sweep of this kind is already running")
	ErrUnknownKind  = errors.New("unknown sweep kind")
)

const (
	// Every day at midnight UTC
	DefaultRecurrenceSchedule = "0 0 * * *"
	// Every six hours, on the hour
	DefaultBudgetSchedule = "0 */6 * * *"
)

// Config holds the configuration for the scheduler. Schedules are
// standard five field cron expressions evaluated in UTC.
type Config struct {
	RecurrenceSchedule string
	BudgetSchedule     string
	RunOnStartup       bool
	SweepTimeout       time.Duration
}

// Scheduler triggers the sweeps periodically. A sweep is never run twice
// at the same time; a trigger that arrives while a sweep of the same kind
// is running is skipped.
type Scheduler struct {
	sweeps  Sweeps
	config  Config
	cron    *cron.Cron
	entries map[Kind]cron.EntryID

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	recurrence sync.Mutex
	budget     sync.Mutex
}

// New creates a new scheduler.
func New(sweeps Sweeps, config Config) (*Scheduler, error) {
	if config.RecurrenceSchedule == "" {
		config.RecurrenceSchedule = DefaultRecurrenceSchedule
	}
	if config.BudgetSchedule == "" {
		config.BudgetSchedule = DefaultBudgetSchedule
	}
	if config.SweepTimeout <= 0 {
		config.SweepTimeout = 5 * time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		sweeps:  sweeps,
		config:  config,
		cron:    cron.New(cron.WithLocation(time.UTC), cron.WithLogger(cronLogger{})),
		entries: make(map[Kind]cron.EntryID),
		ctx:     ctx,
		cancel:  cancel,
	}

	schedules := []struct {
		kind Kind
		spec string
	}{
		{KindRecurrence, config.RecurrenceSchedule},
		{KindBudgetAlerts, config.BudgetSchedule},
	}

	for _, sc := range schedules {
		kind := sc.kind
		id, err := s.cron.AddFunc(sc.spec, func() { s.run(kind) })
		if err != nil {
			cancel()
			return nil, fmt.Errorf("invalid schedule %q for %s sweep: %w", sc.spec, kind, err)
		}
		s.entries[kind] = id
	}

	return s, nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	if s.config.RunOnStartup {
		log.Info().Msg("running sweeps on startup")
		s.TriggerNow(KindRecurrence)
		s.TriggerNow(KindBudgetAlerts)
	}

	s.cron.Start()

	log.Info().
		Str("recurrence", s.config.RecurrenceSchedule).
		Str("budget-alerts", s.config.BudgetSchedule).
		Time("next-recurrence", s.Next(KindRecurrence)).
		Time("next-budget-alerts", s.Next(KindBudgetAlerts)).
		Msg("scheduler started")
}

// Next returns the time of the next scheduled sweep of the given kind. It
// is zero while the scheduler is not started.
func (s *Scheduler) Next(kind Kind) time.Time {
	id, ok := s.entries[kind]
	if !ok {
		return time.Time{}
	}
	return s.cron.Entry(id).Next
}

// run executes a sweep in the background of the scheduler and logs its result.
func (s *Scheduler) run(kind Kind) {
	ctx, cancel := context.WithTimeout(s.ctx, s.config.SweepTimeout)
	defer cancel()

	_, err := s.Run(ctx, kind)
	if errors.Is(err, ErrSweepRunning) {
		log.Debug().Str("kind", string(kind)).Msg("sweep skipped, still running")
	} else if err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Msg("sweep failed")
	}
}

// Run executes a sweep synchronously and returns its result, which is a
// RecurrenceResult or a BudgetResult depending on the kind.
func (s *Scheduler) Run(ctx context.Context, kind Kind) (any, error) {
	switch kind {
	case KindRecurrence:
		if !s.recurrence.TryLock() {
			return nil, ErrSweepRunning
		}
		defer s.recurrence.Unlock()
		return s.sweeps.RunRecurrenceSweep(ctx)

	case KindBudgetAlerts:
		if !s.budget.TryLock() {
			return nil, ErrSweepRunning
		}
		defer s.budget.Unlock()
		return s.sweeps.RunBudgetSweep(ctx)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// TriggerNow runs a sweep immediately without waiting for it.
func (s *Scheduler) TriggerNow(kind Kind) {
	log.Debug().Str("kind", string(kind)).Msg("manual sweep trigger")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(kind)
	}()
}

// Shutdown stops the cron scheduler and waits for running sweeps.
func (s *Scheduler) Shutdown(timeout time.Duration) {
	stopped := s.cron.Stop()
	s.cancel()

	done := make(chan struct{})
	go func() {
		<-stopped.Done()
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info().Msg("scheduler stopped")
	case <-time.After(timeout):
		log.Warn().Msg("timeout waiting for sweeps to stop")
	}
}

// cronLogger writes cron's own messages to zerolog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
