// internal/app/system/tasks/scheduler.go
package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Job is a named unit of periodic work.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler runs jobs on gocron. Each run gets its own timeout and a job
// never overlaps with itself.
type Scheduler struct {
	cron    *gocron.Scheduler
	log     *zap.Logger
	timeout time.Duration

	mu      sync.Mutex
	started bool
}

// NewScheduler creates a scheduler. timeout bounds a single run.
func NewScheduler(logger *zap.Logger, timeout time.Duration) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = time.Minute
	}
	cron := gocron.NewScheduler(time.UTC)
	cron.SingletonModeAll()
	return &Scheduler{cron: cron, log: logger, timeout: timeout}
}

// Add registers a job. The first run happens one interval after Start.
func (s *Scheduler) Add(j Job) error {
	if j.Name == "" || j.Run == nil || j.Interval <= 0 {
		return fmt.Errorf("tasks: invalid job %q", j.Name)
	}
	_, err := s.cron.Every(j.Interval).WaitForSchedule().Tag(j.Name).Do(s.wrap(j))
	if err != nil {
		return fmt.Errorf("tasks: schedule %s: %w", j.Name, err)
	}
	return nil
}

func (s *Scheduler) wrap(j Job) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		start := time.Now()
		if err := j.Run(ctx); err != nil {
			s.log.Warn("job failed", zap.String("job", j.Name), zap.Error(err))
			return
		}
		s.log.Debug("job finished", zap.String("job", j.Name), zap.Duration("took", time.Since(start)))
	}
}

// RunNow executes the named job immediately, outside the schedule.
func (s *Scheduler) RunNow(name string) error {
	return s.cron.RunByTag(name)
}

// Jobs returns the tags of all registered jobs.
func (s *Scheduler) Jobs() []string {
	var names []string
	for _, j := range s.cron.Jobs() {
		names = append(names, j.Tags()...)
	}
	return names
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.cron.StartAsync()
	s.log.Info("task scheduler started", zap.Strings("jobs", s.Jobs()))
}

// Stop halts the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.cron.Stop()
	s.log.Info("task scheduler stopped")
}
