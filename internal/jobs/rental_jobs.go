package jobs

import (
	"context"
	"time"

	"rentals-service/internal/logger"
)

// jobTimeout bounds a single job run
const jobTimeout = 2 * time.Minute

// ExpireStaleBookings cancels PENDING rentals whose window ended more than
// the configured grace period ago and were never picked up.
func (jr *JobRunner) ExpireStaleBookings() {
	jr.runWithRecovery("ExpireStaleBookings", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		grace := jr.config.PendingGrace()
		count, err := jr.services.Rental.ExpireStaleBookings(ctx, jr.now().UTC(), grace)
		if err != nil {
			logger.Error("Failed to expire stale bookings", "error", err, "cancelled", count)
			return
		}

		logger.Info("Expired stale bookings", "count", count, "grace_hours", grace.Hours())
	})
}
