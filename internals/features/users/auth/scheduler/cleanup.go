package scheduler

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"emptrack_backend/internals/configs"
	authRepo "emptrack_backend/internals/features/users/auth/repository"
)

const cleanupBatch = 500

// StartBlacklistCleanupScheduler purges blacklisted tokens once a day until ctx is done.
// Rows are kept TOKEN_BLACKLIST_TTL_DAYS (default 7) past their expiry.
func StartBlacklistCleanupScheduler(ctx context.Context, db *gorm.DB) {
	ttlDays := configs.GetEnvInt("TOKEN_BLACKLIST_TTL_DAYS", 7)

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for {
			runCleanup(ctx, db, ttlDays)

			select {
			case <-ctx.Done():
				log.Println("[CLEANUP] token_blacklist scheduler stopped")
				return
			case <-ticker.C:
			}
		}
	}()
}

func runCleanup(ctx context.Context, db *gorm.DB, ttlDays int) {
	before := time.Now().UTC().Add(-time.Duration(ttlDays) * 24 * time.Hour)

	var total int64
	for {
		n, err := authRepo.CleanupExpiredBlacklist(ctx, db, before, cleanupBatch)
		if err != nil {
			log.Printf("[CLEANUP ERROR] token_blacklist: %v", err)
			return
		}
		total += n
		if n < cleanupBatch {
			break
		}
	}
	if total > 0 {
		log.Printf("[CLEANUP] %d expired tokens removed", total)
	}
}
