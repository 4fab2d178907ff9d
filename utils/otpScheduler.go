package utils

import (
	"log"
	"time"

	"roomly/database"
	"roomly/models"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// StartOtpCleanup schedules a daily purge of OTP rows whose expiry is more
// than 30 days past. Active and recently verified challenges are untouched.
func StartOtpCleanup() *cron.Cron {
	c := cron.New()

	c.AddFunc("@daily", func() {
		cutoff := now.BeginningOfDay().AddDate(0, 0, -30)
		res := database.Database.Db.
			Unscoped().
			Where("expires_at < ?", cutoff).
			Delete(&models.Otp{})
		if res.Error != nil {
			log.Printf("[OTP-CLEANUP %s] purge failed: %v", time.Now().Format(time.RFC3339), res.Error)
			return
		}
		if res.RowsAffected > 0 {
			log.Printf("[OTP-CLEANUP %s] purged %d expired challenges", time.Now().Format(time.RFC3339), res.RowsAffected)
		}
	})

	c.Start()
	return c
}
