package jobs

import (
	"context"

	"toolrental/internal/logger"
)

// WarmInventoryCache reloads the tool cache from the backing inventory so
// checkouts keep resolving tools from memory.
func (jr *JobRunner) WarmInventoryCache() {
	jr.runWithRecovery("WarmInventoryCache", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jr.timeout)
		defer cancel()

		count, err := jr.warmer.Warm(ctx)
		if err != nil {
			logger.Error("Failed to warm inventory cache", "error", err)
			return
		}
		logger.Info("Inventory cache warmed", "tools", count)
	})
}
