package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolrental/internal/config"
	"toolrental/internal/jobs"
)

type countingWarmer struct{ calls int }

func (w *countingWarmer) Warm(ctx context.Context) (int, error) {
	w.calls++
	return 0, nil
}

func TestNewScheduler(t *testing.T) {
	t.Run("Registers the cache warming job", func(t *testing.T) {
		cfg := config.Default()
		s, err := NewScheduler(jobs.NewJobRunner(&countingWarmer{}, cfg))
		require.NoError(t, err)
		assert.True(t, s.IsRunning())
		assert.Len(t, s.cron.Entries(), 1)

		s.Start()
		s.Stop()
	})

	t.Run("Bad schedule", func(t *testing.T) {
		cfg := config.Default()
		cfg.Scheduler.WarmInventoryCache = "every now and then"
		_, err := NewScheduler(jobs.NewJobRunner(&countingWarmer{}, cfg))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "every now and then")
	})
}
