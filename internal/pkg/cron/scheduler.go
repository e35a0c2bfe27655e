package cron

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

var ErrJobNotFound = errors.New("scheduled job not found")

// Job is a named periodic task. The executing flag is the overlap guard: a
// tick that fires while the previous run is still executing is skipped, not
// queued.
type Job struct {
	Name     string
	Interval time.Duration
	Fn       func(ctx context.Context) error

	executing atomic.Bool
	active    atomic.Bool

	mu      sync.Mutex
	lastRun *time.Time
	cancel  context.CancelFunc
}

// JobStatus is the operator view of one job.
type JobStatus struct {
	Name            string  `json:"name"`
	Running         bool    `json:"running"`
	Executing       bool    `json:"executing"`
	IntervalSeconds float64 `json:"interval_seconds"`
	LastRun         *string `json:"last_run,omitempty"`
}

// Scheduler manages named background jobs. The registry is created once at
// process start and torn down at process exit; jobs are individually
// startable and stoppable in between.
type Scheduler struct {
	mu     sync.Mutex
	jobs   map[string]*Job
	order  []string
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		jobs:   make(map[string]*Job),
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob registers a job without starting it.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs[name] = &Job{Name: name, Interval: interval, Fn: fn}
	s.order = append(s.order, name)
	slog.Info("Cron job registered", "name", name, "interval", interval)
}

// StartAll starts every registered job.
func (s *Scheduler) StartAll() {
	s.mu.Lock()
	names := make([]string, len(s.order))
	copy(names, s.order)
	s.mu.Unlock()

	for _, name := range names {
		_ = s.StartJob(name)
	}
	slog.Info("Cron scheduler started", "job_count", len(names))
}

// StartJob starts one job's tick loop. Starting an already running job is a
// no-op.
func (s *Scheduler) StartJob(name string) error {
	s.mu.Lock()
	job, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return ErrJobNotFound
	}

	if !job.active.CompareAndSwap(false, true) {
		return nil
	}

	jobCtx, jobCancel := context.WithCancel(s.ctx)
	job.mu.Lock()
	job.cancel = jobCancel
	job.mu.Unlock()

	s.wg.Add(1)
	go s.runJob(jobCtx, job)
	slog.Info("Cron job started", "name", name)
	return nil
}

// StopJob cancels one job's tick loop. A run already in flight finishes.
func (s *Scheduler) StopJob(name string) error {
	s.mu.Lock()
	job, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return ErrJobNotFound
	}

	if !job.active.CompareAndSwap(true, false) {
		return nil
	}

	job.mu.Lock()
	if job.cancel != nil {
		job.cancel()
		job.cancel = nil
	}
	job.mu.Unlock()
	slog.Info("Cron job stopped", "name", name)
	return nil
}

// Stop gracefully stops all jobs and waits for in-flight runs.
func (s *Scheduler) Stop() {
	slog.Info("Stopping cron scheduler...")
	s.cancel()
	s.wg.Wait()
	slog.Info("Cron scheduler stopped")
}

// Status reports every job in registration order.
func (s *Scheduler) Status() []JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	statuses := make([]JobStatus, 0, len(s.order))
	for _, name := range s.order {
		job := s.jobs[name]

		var lastRun *string
		job.mu.Lock()
		if job.lastRun != nil {
			formatted := job.lastRun.UTC().Format(time.RFC3339)
			lastRun = &formatted
		}
		job.mu.Unlock()

		statuses = append(statuses, JobStatus{
			Name:            job.Name,
			Running:         job.active.Load(),
			Executing:       job.executing.Load(),
			IntervalSeconds: job.Interval.Seconds(),
			LastRun:         lastRun,
		})
	}
	return statuses
}

// RunNow executes one job synchronously, outside its normal cadence. Returns
// ran=false when the job is already executing; the overlap is logged and
// skipped, never doubled.
func (s *Scheduler) RunNow(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	job, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return false, ErrJobNotFound
	}
	return s.executeJob(ctx, job), nil
}

// runJob runs a single job on its schedule until its context is cancelled.
func (s *Scheduler) runJob(ctx context.Context, job *Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	// Run immediately on start
	s.executeJob(ctx, job)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Cron job loop exiting", "name", job.Name)
			return
		case <-ticker.C:
			s.executeJob(ctx, job)
		}
	}
}

// executeJob runs the job body once, guarded against overlap. Reports whether
// the body actually ran.
func (s *Scheduler) executeJob(ctx context.Context, job *Job) bool {
	if !job.executing.CompareAndSwap(false, true) {
		slog.Info("Cron job still running, tick skipped", "name", job.Name)
		return false
	}
	defer job.executing.Store(false)

	start := time.Now()
	job.mu.Lock()
	job.lastRun = &start
	job.mu.Unlock()

	if err := job.Fn(ctx); err != nil {
		slog.Error("Cron job failed", "name", job.Name, "error", err, "duration", time.Since(start))
	} else {
		slog.Debug("Cron job completed", "name", job.Name, "duration", time.Since(start))
	}
	return true
}
