// internal/service/listening/refresh.go

package listening

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	"sentilytics/pkg/logger"
)

// Scheduler runs keyed periodic tasks
type Scheduler interface {
	// Every runs task every interval until Cancel is called with key.
	// Scheduling an existing key replaces its task.
	Every(key string, interval time.Duration, task func()) error

	// Cancel stops the task registered under key. Unknown keys are ignored.
	Cancel(key string) error
}

// RefreshScheduler is a Scheduler backed by gocron. A task never overlaps
// with itself; a tick that arrives while the previous run is still going is
// rescheduled.
type RefreshScheduler struct {
	scheduler gocron.Scheduler
	log       logger.Logger

	mu   sync.Mutex
	jobs map[string]uuid.UUID
}

// NewRefreshScheduler creates and starts a gocron backed scheduler
func NewRefreshScheduler(log logger.Logger) (*RefreshScheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	s.Start()

	return &RefreshScheduler{
		scheduler: s,
		log:       log.WithComponent("RefreshScheduler"),
		jobs:      make(map[string]uuid.UUID),
	}, nil
}

// Every implements Scheduler
func (r *RefreshScheduler) Every(key string, interval time.Duration, task func()) error {
	if interval <= 0 {
		return fmt.Errorf("invalid refresh interval %s", interval)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.jobs[key]; ok {
		if err := r.scheduler.RemoveJob(id); err != nil {
			r.log.Warn("Failed to remove previous refresh job", "key", key, "error", err)
		}
		delete(r.jobs, key)
	}

	job, err := r.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName("refresh:"+key),
		gocron.WithTags(key),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}

	r.jobs[key] = job.ID()
	r.log.Info("Auto refresh scheduled", "key", key, "interval", interval)
	return nil
}

// Cancel implements Scheduler
func (r *RefreshScheduler) Cancel(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.jobs[key]
	if !ok {
		return nil
	}
	delete(r.jobs, key)

	if err := r.scheduler.RemoveJob(id); err != nil {
		return fmt.Errorf("failed to cancel refresh: %w", err)
	}
	r.log.Info("Auto refresh cancelled", "key", key)
	return nil
}

// Shutdown stops all jobs
func (r *RefreshScheduler) Shutdown() error {
	return r.scheduler.Shutdown()
}
