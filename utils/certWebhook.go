package utils

import (
	"log"
	"time"

	"lms/config"
	courseModels "lms/models/course"

	"github.com/go-resty/resty/v2"
)

// NotifyCertificateIssued posts the issued certificate to the configured
// webhook. Failures are logged, never surfaced to the caller.
func NotifyCertificateIssued(cert courseModels.Certificate) {
	webhookURL := config.AppConfig.CertWebhookURL
	if webhookURL == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)

	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"event":              "certificate.issued",
			"certificate_id":     cert.ID,
			"certificate_number": cert.CertificateNumber,
			"user_id":            cert.UserID,
			"course_id":          cert.CourseID,
			"enrollment_id":      cert.EnrollmentID,
			"issue_date":         cert.IssueDate,
		}).
		Post(webhookURL)
	if err != nil {
		log.Printf("[CERT-WEBHOOK] Error notifying webhook: %v", err)
		return
	}
	if resp.IsError() {
		log.Printf("[CERT-WEBHOOK] Webhook returned status %d", resp.StatusCode())
	}
}
