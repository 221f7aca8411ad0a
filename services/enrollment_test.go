package services

import (
	"protrack/models/training"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollUserCapacity(t *testing.T) {
	db := setupTestDB(t)
	course := createTestCourse(t, db, 2)

	u1 := createTestUser(t, db, "one@example.com")
	u2 := createTestUser(t, db, "two@example.com")
	u3 := createTestUser(t, db, "three@example.com")

	_, err := EnrollUser(db, u1.ID, course.ID)
	require.NoError(t, err)
	_, err = EnrollUser(db, u2.ID, course.ID)
	require.NoError(t, err)

	// Third enrollment bumps into max_participants
	_, err = EnrollUser(db, u3.ID, course.ID)
	assert.ErrorIs(t, err, ErrCourseFull)

	// A cancellation frees the seat
	var enrollment training.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", u1.ID, course.ID).First(&enrollment).Error)
	_, err = CancelEnrollment(db, enrollment.ID, u1.ID, false)
	require.NoError(t, err)

	_, err = EnrollUser(db, u3.ID, course.ID)
	require.NoError(t, err)
}

func TestEnrollUserDuplicateBlocked(t *testing.T) {
	db := setupTestDB(t)
	course := createTestCourse(t, db, 30)
	user := createTestUser(t, db, "student@example.com")

	_, err := EnrollUser(db, user.ID, course.ID)
	require.NoError(t, err)

	_, err = EnrollUser(db, user.ID, course.ID)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	var count int64
	db.Model(&training.Enrollment{}).Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestEnrollUserInactiveCourse(t *testing.T) {
	db := setupTestDB(t)
	course := createTestCourse(t, db, 30)
	course.Status = training.CourseInactive
	require.NoError(t, db.Save(course).Error)

	user := createTestUser(t, db, "student@example.com")
	_, err := EnrollUser(db, user.ID, course.ID)
	assert.ErrorIs(t, err, ErrCourseNotActive)
}

func TestCancelAndReEnrollReusesRow(t *testing.T) {
	db := setupTestDB(t)
	course := createTestCourse(t, db, 30)
	user := createTestUser(t, db, "student@example.com")

	m1 := createTestMaterial(t, db, course.ID, true)
	createTestMaterial(t, db, course.ID, true)

	first, err := EnrollUser(db, user.ID, course.ID)
	require.NoError(t, err)

	// Make some progress, then cancel
	_, err = CompleteMaterial(db, user.ID, course.ID, m1.ID)
	require.NoError(t, err)
	_, err = CancelEnrollment(db, first.ID, user.ID, false)
	require.NoError(t, err)

	// Re-enrolling reactivates the same row with progress reset
	second, err := EnrollUser(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, training.StatusEnrolled, second.Status)
	assert.Equal(t, 0, second.ProgressPercentage)
	assert.Nil(t, second.Score)
	assert.Nil(t, second.CompletionDate)

	// The stale completion no longer counts; finishing one material
	// again lands at 50, not 100
	enrollment, err := CompleteMaterial(db, user.ID, course.ID, m1.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, enrollment.ProgressPercentage)
}

func TestCancelEnrollmentGuards(t *testing.T) {
	db := setupTestDB(t)
	course := createTestCourse(t, db, 30)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	material := createTestMaterial(t, db, course.ID, true)

	enrollment, err := EnrollUser(db, owner.ID, course.ID)
	require.NoError(t, err)

	// Only the owner (or an admin) may cancel
	_, err = CancelEnrollment(db, enrollment.ID, other.ID, false)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = CancelEnrollment(db, enrollment.ID, other.ID, true)
	require.NoError(t, err)

	// Completed enrollments are final
	second, err := EnrollUser(db, owner.ID, course.ID)
	require.NoError(t, err)
	_, err = CompleteMaterial(db, owner.ID, course.ID, material.ID)
	require.NoError(t, err)
	_, err = CancelEnrollment(db, second.ID, owner.ID, false)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
}

func TestReEnrollBlockedWhileCertificateHeld(t *testing.T) {
	db := setupTestDB(t)
	course := createTestCourse(t, db, 30)
	user := createTestUser(t, db, "student@example.com")
	material := createTestMaterial(t, db, course.ID, true)

	enrollment, err := EnrollUser(db, user.ID, course.ID)
	require.NoError(t, err)
	_, err = CompleteMaterial(db, user.ID, course.ID, material.ID)
	require.NoError(t, err)

	// Completion drafted a certificate, so re-enrolling is blocked
	_, err = EnrollUser(db, user.ID, course.ID)
	assert.ErrorIs(t, err, ErrCertificateHeld)

	// Revoking the certificate releases the hold
	var cert training.Certificate
	require.NoError(t, db.Where("enrollment_id = ?", enrollment.ID).First(&cert).Error)
	_, err = RevokeCertificate(db, cert.ID)
	require.NoError(t, err)

	again, err := EnrollUser(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, enrollment.ID, again.ID)
	assert.Equal(t, training.StatusEnrolled, again.Status)
}

func TestAssignUserBypassesEnrollGates(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin@example.com")
	user := createTestUser(t, db, "student@example.com")

	// Full and inactive, so self-service enrollment would be rejected
	course := createTestCourse(t, db, 1)
	other := createTestUser(t, db, "seat@example.com")
	_, err := EnrollUser(db, other.ID, course.ID)
	require.NoError(t, err)
	course.Status = training.CourseInactive
	require.NoError(t, db.Save(course).Error)

	enrollment, err := AssignUser(db, admin.ID, user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, training.StatusEnrolled, enrollment.Status)
	require.NotNil(t, enrollment.AssignedBy)
	assert.Equal(t, admin.ID, *enrollment.AssignedBy)

	// The duplicate check still applies to assignment
	_, err = AssignUser(db, admin.ID, user.ID, course.ID)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
}

func TestEnrollmentNotificationFanOut(t *testing.T) {
	db := setupTestDB(t)
	course := createTestCourse(t, db, 30)
	user := createTestUser(t, db, "student@example.com")

	enrollment, err := EnrollUser(db, user.ID, course.ID)
	require.NoError(t, err)

	var notifications []struct {
		NotificationType string
		EnrollmentID     *uint
	}
	require.NoError(t, db.Table("notifications").
		Where("user_id = ?", user.ID).
		Scan(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, "enrollment", notifications[0].NotificationType)
	require.NotNil(t, notifications[0].EnrollmentID)
	assert.Equal(t, enrollment.ID, *notifications[0].EnrollmentID)
}
