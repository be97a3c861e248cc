package utils

import (
	"log"
	"time"

	"lms/config"
	"lms/database"
	courseModels "lms/models/course"

	"github.com/robfig/cron/v3"
)

// InitializeDigestScheduler sets up the daily activity digest job.
func InitializeDigestScheduler() {
	c := cron.New()

	if _, err := c.AddFunc(config.AppConfig.DigestCron, RunDailyDigest); err != nil {
		log.Printf("[DIGEST-SCHEDULER] Invalid schedule %q: %v", config.AppConfig.DigestCron, err)
		return
	}

	c.Start()
	log.Printf("[DIGEST-SCHEDULER] Digest scheduler started (%s)", config.AppConfig.DigestCron)
}

// RunDailyDigest counts enrollments and certificates created in the last
// 24 hours, logs the digest and emails it to the admin when configured.
func RunDailyDigest() {
	db := database.Database.Db
	since := time.Now().Add(-24 * time.Hour)

	var enrollments int64
	if err := db.Model(&courseModels.Enrollment{}).
		Where("created_at >= ?", since).
		Count(&enrollments).Error; err != nil {
		log.Printf("[DIGEST-SCHEDULER] Error counting enrollments: %v", err)
		return
	}

	var certificates int64
	if err := db.Model(&courseModels.Certificate{}).
		Where("created_at >= ?", since).
		Count(&certificates).Error; err != nil {
		log.Printf("[DIGEST-SCHEDULER] Error counting certificates: %v", err)
		return
	}

	log.Printf("[DIGEST-SCHEDULER] Last 24h: %d enrollments, %d certificates", enrollments, certificates)

	if config.AppConfig.AdminEmail != "" {
		SendDigestEmail(config.AppConfig.AdminEmail, enrollments, certificates)
	}
}
