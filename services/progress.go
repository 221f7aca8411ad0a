package services

import (
	"fmt"
	"math"
	"protrack/models"
	"protrack/models/training"
	"time"

	"gorm.io/gorm"
)

// CompleteMaterial records a completed material for the user's enrollment
// and recomputes progress. Idempotent: completing the same material twice
// changes nothing. Both the manual mark-complete endpoint and quiz-pass
// submission funnel through here so completion behaves identically from
// either path.
func CompleteMaterial(db *gorm.DB, userID, courseID, materialID uint) (*training.Enrollment, error) {
	var enrollment training.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return nil, ErrNotEnrolled
	}
	if enrollment.Status == training.StatusCancelled {
		return nil, ErrEnrollmentInactive
	}

	var material training.TrainingMaterial
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", materialID, courseID, false).First(&material).Error; err != nil {
		return nil, ErrMaterialNotFound
	}

	var existing training.MaterialCompletion
	err := db.Where("enrollment_id = ? AND material_id = ? AND is_deleted = ?", enrollment.ID, materialID, false).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		completion := training.MaterialCompletion{
			EnrollmentID: enrollment.ID,
			MaterialID:   materialID,
		}
		if err := db.Create(&completion).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if err := RecomputeProgress(db, &enrollment); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// RecomputeProgress recalculates progress_percentage over the course's
// required materials and applies status transitions. Reaching 100 on a
// course with at least one required material completes the enrollment,
// stamps the completion date, drafts the certificate and fans out the
// completion event.
func RecomputeProgress(db *gorm.DB, enrollment *training.Enrollment) error {
	var totalRequired int64
	db.Model(&training.TrainingMaterial{}).
		Where("course_id = ? AND is_required = ? AND is_deleted = ?", enrollment.CourseID, true, false).
		Count(&totalRequired)

	// Zero required materials: leave the prior explicit value, never
	// divide by zero.
	if totalRequired > 0 {
		var completedRequired int64
		db.Model(&training.MaterialCompletion{}).
			Joins("JOIN training_materials ON training_materials.id = material_completions.material_id").
			Where("material_completions.enrollment_id = ? AND material_completions.is_deleted = ?", enrollment.ID, false).
			Where("training_materials.is_required = ? AND training_materials.is_deleted = ?", true, false).
			Count(&completedRequired)

		enrollment.ProgressPercentage = int(math.Round(float64(completedRequired) / float64(totalRequired) * 100))
	}

	completing := enrollment.ProgressPercentage >= 100 && enrollment.Status != training.StatusCompleted

	if completing {
		now := time.Now()
		enrollment.Status = training.StatusCompleted
		enrollment.CompletionDate = &now
	} else if enrollment.ProgressPercentage > 0 && enrollment.Status == training.StatusEnrolled {
		enrollment.Status = training.StatusInProgress
	}

	if err := db.Save(enrollment).Error; err != nil {
		return err
	}

	if completing {
		if _, err := EnsureDraftCertificate(db, enrollment.ID); err != nil {
			return err
		}

		var course training.TrainingCourse
		db.Where("id = ?", enrollment.CourseID).First(&course)

		result := Dispatch(db, enrollment.UserID, Event{
			Type:         models.NotifyCompletion,
			Title:        "Course Completed: " + course.Title,
			Message:      fmt.Sprintf("Congratulations! You have completed \"%s\". Your certificate is pending approval.", course.Title),
			Link:         fmt.Sprintf("/training/course/%d/", course.ID),
			EnrollmentID: &enrollment.ID,
		})
		logDispatch(enrollment.UserID, result)
	}

	return nil
}
