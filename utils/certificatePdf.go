package utils

import (
	"fmt"
	"protrack/config"
	"protrack/models"
	"protrack/models/training"
	"time"

	"github.com/go-resty/resty/v2"
)

// RenderAndStoreCertificate asks the external renderer service for the
// certificate PDF and uploads it to the certificate bucket. Returns the
// stored public URL. Callers treat failures as best-effort.
func RenderAndStoreCertificate(cert *training.Certificate, user *models.User, course *training.TrainingCourse) (string, error) {
	rendererURL := config.AppConfig.PdfRendererURL
	if rendererURL == "" {
		return "", fmt.Errorf("PDF renderer not configured")
	}

	payload := map[string]interface{}{
		"certificate_number": cert.CertificateNumber,
		"recipient_name":     user.Name,
		"course_title":       course.Title,
		"instructor":         course.Instructor,
		"duration_hours":     course.DurationHours,
		"issue_date":         time.Now().Format("2006-01-02"),
	}
	if cert.ExpiryDate != nil {
		payload["expiry_date"] = cert.ExpiryDate.Format("2006-01-02")
	}

	client := resty.New().SetTimeout(60 * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(rendererURL)
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("renderer returned status %d: %s", resp.StatusCode(), resp.String())
	}

	storage := NewStorageClient()
	path := fmt.Sprintf("certificates/%s.pdf", cert.CertificateNumber)
	return storage.Upload(resp.Body(), "application/pdf", config.AppConfig.CertificateBucket, path)
}
