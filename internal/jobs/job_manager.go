package jobs

import (
	"fmt"
	"log/slog"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs    []Job
	started []Job
	logger  *slog.Logger
}

// NewJobManager creates a job manager. Nil jobs are ignored, so optional
// jobs can be passed unconditionally.
func NewJobManager(logger *slog.Logger, jobs ...Job) *JobManager {
	jm := &JobManager{logger: logger.With("component", "job_manager")}
	for _, job := range jobs {
		if job != nil {
			jm.jobs = append(jm.jobs, job)
		}
	}
	return jm
}

// StartAll starts all scheduled jobs.
// If one fails to start, the jobs already started are stopped again.
func (jm *JobManager) StartAll() error {
	for i, job := range jm.jobs {
		if err := job.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start job %d (%T): %w", i, job, err)
		}
		jm.started = append(jm.started, job)
	}
	return nil
}

// StopAll stops started jobs in reverse start order.
func (jm *JobManager) StopAll() {
	for i := len(jm.started) - 1; i >= 0; i-- {
		jm.started[i].Stop()
	}
	jm.started = nil
}

// Len reports how many jobs are managed.
func (jm *JobManager) Len() int {
	return len(jm.jobs)
}
