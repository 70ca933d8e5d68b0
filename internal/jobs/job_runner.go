package jobs

import (
	"context"
	"time"

	"toolrental/internal/config"
	"toolrental/internal/logger"
)

// CacheWarmer reloads a cached view of the inventory
type CacheWarmer interface {
	Warm(ctx context.Context) (int, error)
}

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	warmer  CacheWarmer
	config  *config.Config
	timeout time.Duration
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(warmer CacheWarmer, cfg *config.Config) *JobRunner {
	return &JobRunner{
		warmer:  warmer,
		config:  cfg,
		timeout: 30 * time.Second,
	}
}

// Config returns the configuration the jobs were built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.WarmInventoryCache()
}
