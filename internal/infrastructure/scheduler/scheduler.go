// Package scheduler runs periodic maintenance jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is a unit of periodic work
type Job interface {
	Run(ctx context.Context) error
}

// JobFunc adapts a function to Job
type JobFunc func(ctx context.Context) error

// Run calls f
func (f JobFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Config holds scheduler configuration
type Config struct {
	JobTimeout time.Duration
	Location   *time.Location
}

// JobStatus is the outcome of the last run of a job
type JobStatus struct {
	Name     string
	Schedule string
	LastRun  time.Time
	LastErr  error
	Runs     int
	Next     time.Time
}

type entry struct {
	name     string
	schedule string
	job      Job
	id       cron.EntryID
}

// Scheduler runs registered jobs on their cron schedule. A job still running
// when its next tick comes is skipped for that tick.
type Scheduler struct {
	cron    *cron.Cron
	config  Config
	logger  *zap.Logger
	baseCtx context.Context
	cancel  context.CancelFunc

	mu      sync.Mutex
	entries map[string]*entry
	status  map[string]*JobStatus
	running bool
}

// New creates a stopped scheduler
func New(config Config, logger *zap.Logger) *Scheduler {
	if config.JobTimeout <= 0 {
		config.JobTimeout = 10 * time.Minute
	}
	if config.Location == nil {
		config.Location = time.UTC
	}
	logger = logger.Named("scheduler")
	cronLogger := zapCronLogger{logger}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(config.Location),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		config:  config,
		logger:  logger,
		baseCtx: ctx,
		cancel:  cancel,
		entries: make(map[string]*entry),
		status:  make(map[string]*JobStatus),
	}
}

// Register schedules job under name using a standard 5-field cron expression
// or a descriptor such as "@hourly".
func (s *Scheduler) Register(name, schedule string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateJob, name)
	}
	e := &entry{name: name, schedule: schedule, job: job}
	id, err := s.cron.AddFunc(schedule, func() { _ = s.execute(s.baseCtx, e) })
	if err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidSchedule, schedule, err)
	}
	e.id = id
	s.entries[name] = e
	s.status[name] = &JobStatus{Name: name, Schedule: schedule}
	s.logger.Info("Job registered", zap.String("job", name), zap.String("schedule", schedule))
	return nil
}

// Start begins running jobs in the background
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.cron.Start()
	s.logger.Info("Scheduler started", zap.Int("jobs", len(s.entries)))
}

// Stop cancels running jobs and waits for them to return or ctx to expire
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	s.cancel()
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out")
		return ctx.Err()
	}
}

// RunNow executes a registered job synchronously, outside its schedule
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.Lock()
	e, ok := s.entries[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	return s.execute(ctx, e)
}

// Status returns a snapshot of every registered job
func (s *Scheduler) Status() []JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]JobStatus, 0, len(s.status))
	for name, st := range s.status {
		snapshot := *st
		if e := s.entries[name]; e != nil {
			snapshot.Next = s.cron.Entry(e.id).Next
		}
		out = append(out, snapshot)
	}
	return out
}

func (s *Scheduler) execute(ctx context.Context, e *entry) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	start := time.Now()
	err := e.job.Run(ctx)
	elapsed := time.Since(start)

	s.mu.Lock()
	st := s.status[e.name]
	st.LastRun = start
	st.LastErr = err
	st.Runs++
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("Job failed", zap.String("job", e.name), zap.Duration("elapsed", elapsed), zap.Error(err))
		return err
	}
	s.logger.Info("Job completed", zap.String("job", e.name), zap.Duration("elapsed", elapsed))
	return nil
}

// zapCronLogger adapts zap to cron.Logger
type zapCronLogger struct {
	logger *zap.Logger
}

func (l zapCronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
