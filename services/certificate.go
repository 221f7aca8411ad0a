package services

import (
	"fmt"
	"log"
	"protrack/config"
	"protrack/models"
	"protrack/models/training"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RenderCertificatePDF renders and stores the certificate artifact
// through the external renderer service, returning the stored URL. main
// wires it; when nil (or failing) issuance proceeds without an artifact.
var RenderCertificatePDF func(cert *training.Certificate, user *models.User, course *training.TrainingCourse) (string, error)

// GenerateCertificateNumber builds a certificate number of the form
// CERT-<enrollmentID>-<year>-<suffix>. Uniqueness rides on the random
// suffix; there is no retry loop.
func GenerateCertificateNumber(enrollmentID uint) string {
	prefix := "CERT"
	if config.AppConfig != nil && config.AppConfig.CertificatePrefix != "" {
		prefix = config.AppConfig.CertificatePrefix
	}
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s-%d-%d-%s", prefix, enrollmentID, time.Now().Year(), suffix)
}

// EnsureDraftCertificate get-or-creates the draft certificate for a
// completed enrollment. At most one certificate ever exists per
// enrollment; calling this again returns the existing row untouched.
func EnsureDraftCertificate(db *gorm.DB, enrollmentID uint) (*training.Certificate, error) {
	var cert training.Certificate
	err := db.Where("enrollment_id = ? AND is_deleted = ?", enrollmentID, false).First(&cert).Error
	if err == nil {
		return &cert, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	cert = training.Certificate{
		EnrollmentID:      enrollmentID,
		CertificateNumber: GenerateCertificateNumber(enrollmentID),
		Status:            training.CertDraft,
	}
	if err := db.Create(&cert).Error; err != nil {
		return nil, err
	}
	return &cert, nil
}

// ApproveCertificate moves a draft certificate to issued. Admin-only
// (enforced at the route); stamps issued_by and the optional expiry,
// renders the PDF best-effort and fires the certificate notification.
func ApproveCertificate(db *gorm.DB, adminID, certificateID uint, expiry *time.Time) (*training.Certificate, error) {
	var cert training.Certificate
	if err := db.Where("id = ? AND is_deleted = ?", certificateID, false).First(&cert).Error; err != nil {
		return nil, err
	}

	if cert.Status != training.CertDraft {
		return nil, ErrNotDraft
	}

	now := time.Now()
	cert.Status = training.CertIssued
	cert.IssueDate = &now
	cert.ExpiryDate = expiry
	cert.IssuedBy = &adminID

	if err := db.Save(&cert).Error; err != nil {
		return nil, err
	}

	var enrollment training.Enrollment
	if err := db.Where("id = ?", cert.EnrollmentID).First(&enrollment).Error; err != nil {
		return &cert, nil
	}

	var user models.User
	var course training.TrainingCourse
	db.Where("id = ?", enrollment.UserID).First(&user)
	db.Where("id = ?", enrollment.CourseID).First(&course)

	// PDF generation is best-effort: a renderer or storage failure is
	// logged and the issuance stands without an artifact.
	if RenderCertificatePDF != nil {
		url, err := RenderCertificatePDF(&cert, &user, &course)
		if err != nil {
			log.Printf("[CERTIFICATE] PDF generation for %s failed: %v", cert.CertificateNumber, err)
		} else {
			cert.CertificateURL = url
			if err := db.Save(&cert).Error; err != nil {
				log.Printf("[CERTIFICATE] failed to store PDF URL for %s: %v", cert.CertificateNumber, err)
			}
		}
	}

	result := Dispatch(db, enrollment.UserID, Event{
		Type:          models.NotifyCertificate,
		Title:         "Certificate Issued: " + course.Title,
		Message:       fmt.Sprintf("Your certificate %s for \"%s\" has been issued.", cert.CertificateNumber, course.Title),
		Link:          "/certifications/",
		EnrollmentID:  &cert.EnrollmentID,
		CertificateID: &cert.ID,
	})
	logDispatch(enrollment.UserID, result)

	return &cert, nil
}

// RevokeCertificate flips a certificate to revoked. No other side
// effects are attached to revocation.
func RevokeCertificate(db *gorm.DB, certificateID uint) (*training.Certificate, error) {
	var cert training.Certificate
	if err := db.Where("id = ? AND is_deleted = ?", certificateID, false).First(&cert).Error; err != nil {
		return nil, err
	}

	cert.Status = training.CertRevoked
	if err := db.Save(&cert).Error; err != nil {
		return nil, err
	}
	return &cert, nil
}
