package services

import (
	"protrack/models/training"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteMaterialProgression(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "student@example.com")
	course := createTestCourse(t, db, 30)

	m1 := createTestMaterial(t, db, course.ID, true)
	m2 := createTestMaterial(t, db, course.ID, true)
	m3 := createTestMaterial(t, db, course.ID, true)
	optional := createTestMaterial(t, db, course.ID, false)

	enrollment, err := EnrollUser(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, training.StatusEnrolled, enrollment.Status)
	assert.Equal(t, 0, enrollment.ProgressPercentage)

	// Optional materials do not move the needle
	enrollment, err = CompleteMaterial(db, user.ID, course.ID, optional.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, enrollment.ProgressPercentage)
	assert.Equal(t, training.StatusEnrolled, enrollment.Status)

	// 1/3 required -> 33%, in progress
	enrollment, err = CompleteMaterial(db, user.ID, course.ID, m1.ID)
	require.NoError(t, err)
	assert.Equal(t, 33, enrollment.ProgressPercentage)
	assert.Equal(t, training.StatusInProgress, enrollment.Status)

	// 2/3 -> 67%
	enrollment, err = CompleteMaterial(db, user.ID, course.ID, m2.ID)
	require.NoError(t, err)
	assert.Equal(t, 67, enrollment.ProgressPercentage)

	// 3/3 -> 100%, completed with a completion date and a draft cert
	enrollment, err = CompleteMaterial(db, user.ID, course.ID, m3.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, enrollment.ProgressPercentage)
	assert.Equal(t, training.StatusCompleted, enrollment.Status)
	require.NotNil(t, enrollment.CompletionDate)

	var cert training.Certificate
	require.NoError(t, db.Where("enrollment_id = ?", enrollment.ID).First(&cert).Error)
	assert.Equal(t, training.CertDraft, cert.Status)
}

func TestCompleteMaterialIdempotent(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "student@example.com")
	course := createTestCourse(t, db, 30)

	m1 := createTestMaterial(t, db, course.ID, true)
	createTestMaterial(t, db, course.ID, true)

	_, err := EnrollUser(db, user.ID, course.ID)
	require.NoError(t, err)

	enrollment, err := CompleteMaterial(db, user.ID, course.ID, m1.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, enrollment.ProgressPercentage)

	// Completing the same material again changes nothing
	enrollment, err = CompleteMaterial(db, user.ID, course.ID, m1.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, enrollment.ProgressPercentage)

	var completions int64
	db.Model(&training.MaterialCompletion{}).
		Where("enrollment_id = ? AND is_deleted = ?", enrollment.ID, false).
		Count(&completions)
	assert.EqualValues(t, 1, completions)
}

func TestCompleteMaterialGuards(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "student@example.com")
	course := createTestCourse(t, db, 30)
	material := createTestMaterial(t, db, course.ID, true)

	// Not enrolled
	_, err := CompleteMaterial(db, user.ID, course.ID, material.ID)
	assert.ErrorIs(t, err, ErrNotEnrolled)

	enrollment, err := EnrollUser(db, user.ID, course.ID)
	require.NoError(t, err)

	// Unknown material
	_, err = CompleteMaterial(db, user.ID, course.ID, material.ID+999)
	assert.ErrorIs(t, err, ErrMaterialNotFound)

	// Cancelled enrollment rejects completions
	_, err = CancelEnrollment(db, enrollment.ID, user.ID, false)
	require.NoError(t, err)
	_, err = CompleteMaterial(db, user.ID, course.ID, material.ID)
	assert.ErrorIs(t, err, ErrEnrollmentInactive)
}

func TestRecomputeProgressZeroRequiredMaterials(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "student@example.com")
	course := createTestCourse(t, db, 30)
	createTestMaterial(t, db, course.ID, false)

	enrollment, err := EnrollUser(db, user.ID, course.ID)
	require.NoError(t, err)

	// With no required materials the prior value stays; nothing jumps
	// to 100 and the enrollment never auto-completes
	require.NoError(t, RecomputeProgress(db, enrollment))
	assert.Equal(t, 0, enrollment.ProgressPercentage)
	assert.Equal(t, training.StatusEnrolled, enrollment.Status)

	var certCount int64
	db.Model(&training.Certificate{}).Where("enrollment_id = ?", enrollment.ID).Count(&certCount)
	assert.EqualValues(t, 0, certCount)
}

func TestRecomputeProgressCompletionFiresOnce(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "student@example.com")
	course := createTestCourse(t, db, 30)
	material := createTestMaterial(t, db, course.ID, true)

	enrollment, err := EnrollUser(db, user.ID, course.ID)
	require.NoError(t, err)

	enrollment, err = CompleteMaterial(db, user.ID, course.ID, material.ID)
	require.NoError(t, err)
	assert.Equal(t, training.StatusCompleted, enrollment.Status)
	firstCompletion := *enrollment.CompletionDate

	// Replaying the recompute on an already-completed enrollment neither
	// duplicates the certificate nor moves the completion date
	require.NoError(t, RecomputeProgress(db, enrollment))
	assert.Equal(t, firstCompletion.Unix(), enrollment.CompletionDate.Unix())

	var certCount int64
	db.Model(&training.Certificate{}).Where("enrollment_id = ?", enrollment.ID).Count(&certCount)
	assert.EqualValues(t, 1, certCount)
}
