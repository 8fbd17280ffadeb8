// internal/app/system/tasks/runner.go
package tasks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrUnknownJob is returned by RunOnce for a name that was never registered.
var ErrUnknownJob = errors.New("tasks: unknown job")

// Job is a periodic background task.
type Job struct {
	Name     string
	Interval time.Duration
	// Delay postpones the first run. Zero runs the job as soon as the runner starts.
	Delay time.Duration
	// Timeout bounds a single run. Zero leaves the run bounded only by shutdown.
	Timeout time.Duration
	Run     func(ctx context.Context) error
}

// Runner runs registered jobs on their intervals until stopped.
type Runner struct {
	logger *zap.Logger
	jobs   []Job
	wg     sync.WaitGroup

	mu     sync.Mutex
	cancel context.CancelFunc
	active map[string]time.Time // job name -> start of the current run
}

// New creates a task runner.
func New(logger *zap.Logger) *Runner {
	return &Runner{
		logger: logger,
		active: make(map[string]time.Time),
	}
}

// Register adds a job. Jobs registered after Start are not scheduled.
func (r *Runner) Register(job Job) {
	r.jobs = append(r.jobs, job)
}

// Start schedules every registered job.
func (r *Runner) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.mu.Lock()
	r.cancel = cancel
	r.mu.Unlock()

	for _, job := range r.jobs {
		r.wg.Add(1)
		go r.loop(ctx, job)
	}

	r.logger.Info("background task runner started", zap.Int("job_count", len(r.jobs)))
}

// Stop cancels the jobs and waits for in-flight runs until ctx is done.
// It returns ctx.Err() when runs are still going at the deadline.
// Calling Stop more than once is safe.
func (r *Runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("background task runner stopped")
		return nil
	case <-ctx.Done():
		r.logger.Warn("background task runner shutdown timed out",
			zap.Strings("jobs_still_running", r.Active()))
		return ctx.Err()
	}
}

// Active returns the names of jobs that are mid-run, sorted.
func (r *Runner) Active() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.active))
	for name := range r.active {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Runner) loop(ctx context.Context, job Job) {
	defer r.wg.Done()

	if job.Delay > 0 {
		t := time.NewTimer(job.Delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}
	}
	r.execute(ctx, job)

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.execute(ctx, job)
		}
	}
}

func (r *Runner) execute(ctx context.Context, job Job) {
	start := time.Now()
	r.mu.Lock()
	r.active[job.Name] = start
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		delete(r.active, job.Name)
		r.mu.Unlock()
	}()

	err := runGuarded(ctx, job)
	switch {
	case err == nil:
		r.logger.Debug("job completed",
			zap.String("job", job.Name),
			zap.Duration("duration", time.Since(start)))
	case ctx.Err() != nil:
		// Shutdown, not a failure.
		r.logger.Debug("job cancelled", zap.String("job", job.Name))
	default:
		r.logger.Error("job failed",
			zap.String("job", job.Name),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
	}
}

// runGuarded applies the job timeout and converts a panic into an error.
func runGuarded(ctx context.Context, job Job) (err error) {
	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("job %s panicked: %v", job.Name, p)
		}
	}()
	return job.Run(ctx)
}

// RunOnce runs the named job immediately on the caller's goroutine.
func (r *Runner) RunOnce(ctx context.Context, name string) error {
	for _, job := range r.jobs {
		if job.Name == name {
			return runGuarded(ctx, job)
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownJob, name)
}
