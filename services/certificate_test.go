package services

import (
	"fmt"
	"protrack/models"
	"protrack/models/training"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func completeCourse(t *testing.T, db *gorm.DB, user *models.User, course *training.TrainingCourse, material *training.TrainingMaterial) *training.Enrollment {
	t.Helper()

	_, err := EnrollUser(db, user.ID, course.ID)
	require.NoError(t, err)
	enrollment, err := CompleteMaterial(db, user.ID, course.ID, material.ID)
	require.NoError(t, err)
	require.Equal(t, training.StatusCompleted, enrollment.Status)
	return enrollment
}

func TestCertificateNumberFormat(t *testing.T) {
	number := GenerateCertificateNumber(42)
	year := time.Now().Year()

	pattern := fmt.Sprintf(`^CERT-42-%d-[0-9A-F]{8}$`, year)
	assert.Regexp(t, regexp.MustCompile(pattern), number)

	// Random suffix makes consecutive numbers differ
	assert.NotEqual(t, number, GenerateCertificateNumber(42))
}

func TestEnsureDraftCertificateGetOrCreate(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "student@example.com")
	course := createTestCourse(t, db, 30)
	material := createTestMaterial(t, db, course.ID, true)
	enrollment := completeCourse(t, db, user, course, material)

	var first training.Certificate
	require.NoError(t, db.Where("enrollment_id = ?", enrollment.ID).First(&first).Error)
	assert.Equal(t, training.CertDraft, first.Status)
	assert.Nil(t, first.IssueDate)

	// A second call returns the same row
	second, err := EnsureDraftCertificate(db, enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&training.Certificate{}).Where("enrollment_id = ?", enrollment.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestApproveCertificate(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin@example.com")
	user := createTestUser(t, db, "student@example.com")
	course := createTestCourse(t, db, 30)
	material := createTestMaterial(t, db, course.ID, true)
	enrollment := completeCourse(t, db, user, course, material)

	var draft training.Certificate
	require.NoError(t, db.Where("enrollment_id = ?", enrollment.ID).First(&draft).Error)

	expiry := time.Now().AddDate(1, 0, 0)
	cert, err := ApproveCertificate(db, admin.ID, draft.ID, &expiry)
	require.NoError(t, err)
	assert.Equal(t, training.CertIssued, cert.Status)
	require.NotNil(t, cert.IssueDate)
	require.NotNil(t, cert.ExpiryDate)
	require.NotNil(t, cert.IssuedBy)
	assert.Equal(t, admin.ID, *cert.IssuedBy)

	// Approving twice fails; issued is not draft
	_, err = ApproveCertificate(db, admin.ID, draft.ID, nil)
	assert.ErrorIs(t, err, ErrNotDraft)
}

func TestApproveCertificateSurvivesPDFFailure(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin@example.com")
	user := createTestUser(t, db, "student@example.com")
	course := createTestCourse(t, db, 30)
	material := createTestMaterial(t, db, course.ID, true)
	enrollment := completeCourse(t, db, user, course, material)

	prev := RenderCertificatePDF
	RenderCertificatePDF = func(*training.Certificate, *models.User, *training.TrainingCourse) (string, error) {
		return "", fmt.Errorf("renderer unavailable")
	}
	t.Cleanup(func() { RenderCertificatePDF = prev })

	var draft training.Certificate
	require.NoError(t, db.Where("enrollment_id = ?", enrollment.ID).First(&draft).Error)

	cert, err := ApproveCertificate(db, admin.ID, draft.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, training.CertIssued, cert.Status)
	assert.Empty(t, cert.CertificateURL)
}

func TestRevokeCertificate(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin@example.com")
	user := createTestUser(t, db, "student@example.com")
	course := createTestCourse(t, db, 30)
	material := createTestMaterial(t, db, course.ID, true)
	enrollment := completeCourse(t, db, user, course, material)

	var draft training.Certificate
	require.NoError(t, db.Where("enrollment_id = ?", enrollment.ID).First(&draft).Error)

	issued, err := ApproveCertificate(db, admin.ID, draft.ID, nil)
	require.NoError(t, err)

	revoked, err := RevokeCertificate(db, issued.ID)
	require.NoError(t, err)
	assert.Equal(t, training.CertRevoked, revoked.Status)

	// Revocation leaves the enrollment completed
	assert.Equal(t, training.StatusCompleted, reloadEnrollment(t, db, enrollment.ID).Status)
}
