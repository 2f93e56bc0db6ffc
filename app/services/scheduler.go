package services

import (
	"database/sql"
	"log"
	"time"

	"school-gate/app/database"
)

// StartScheduler runs background housekeeping: expired OTP challenges are
// purged hourly. Verification re-checks expiry itself, so this only keeps
// the table from accumulating dead rows.
func StartScheduler(db *sql.DB) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			purged, err := database.PurgeExpiredOTPChallenges(db)
			if err != nil {
				log.Printf("Error purging expired OTP challenges: %v", err)
				continue
			}
			if purged > 0 {
				log.Printf("Purged %d expired OTP challenges", purged)
			}
		}
	}()
}
