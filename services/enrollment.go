package services

import (
	"fmt"
	"protrack/models"
	"protrack/models/training"

	"gorm.io/gorm"
)

// EnrollUser performs self-service enrollment: the course must be active,
// below capacity, and the user must not hold an active enrollment for it.
// A cancelled (or admin-failed) enrollment is reactivated in place rather
// than duplicated; a completed one stays final while a draft or issued
// certificate exists for it.
func EnrollUser(db *gorm.DB, userID, courseID uint) (*training.Enrollment, error) {
	var course training.TrainingCourse
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return nil, err
	}
	if course.Status != training.CourseActive {
		return nil, ErrCourseNotActive
	}

	existing, err := findEnrollment(db, userID, courseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.IsActive() {
			return nil, ErrAlreadyEnrolled
		}
		if existing.Status == training.StatusCompleted {
			held, err := certificateHeld(db, existing.ID)
			if err != nil {
				return nil, err
			}
			if held {
				return nil, ErrCertificateHeld
			}
		}
		if course.IsFull(db) {
			return nil, ErrCourseFull
		}
		if err := reactivate(db, existing, nil); err != nil {
			return nil, err
		}
		notifyEnrollment(db, userID, &course, existing)
		return existing, nil
	}

	// Capacity is a soft constraint, checked at enroll time only
	if course.IsFull(db) {
		return nil, ErrCourseFull
	}

	enrollment := training.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   training.StatusEnrolled,
	}
	if err := db.Create(&enrollment).Error; err != nil {
		return nil, err
	}

	notifyEnrollment(db, userID, &course, &enrollment)
	return &enrollment, nil
}

// AssignUser enrolls a user on behalf of an administrator. The duplicate
// check still applies but the active-course and capacity gates do not,
// and assigned_by is stamped.
func AssignUser(db *gorm.DB, adminID, userID, courseID uint) (*training.Enrollment, error) {
	var course training.TrainingCourse
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return nil, err
	}

	existing, err := findEnrollment(db, userID, courseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.IsActive() {
			return nil, ErrAlreadyEnrolled
		}
		if existing.Status == training.StatusCompleted {
			held, err := certificateHeld(db, existing.ID)
			if err != nil {
				return nil, err
			}
			if held {
				return nil, ErrCertificateHeld
			}
		}
		if err := reactivate(db, existing, &adminID); err != nil {
			return nil, err
		}
		notifyEnrollment(db, userID, &course, existing)
		return existing, nil
	}

	enrollment := training.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		Status:     training.StatusEnrolled,
		AssignedBy: &adminID,
	}
	if err := db.Create(&enrollment).Error; err != nil {
		return nil, err
	}

	notifyEnrollment(db, userID, &course, &enrollment)
	return &enrollment, nil
}

// CancelEnrollment cancels an active enrollment. Owners may cancel their
// own; admins may cancel any. Completed enrollments are final.
func CancelEnrollment(db *gorm.DB, enrollmentID, actorID uint, isAdmin bool) (*training.Enrollment, error) {
	var enrollment training.Enrollment
	if err := db.Where("id = ? AND is_deleted = ?", enrollmentID, false).First(&enrollment).Error; err != nil {
		return nil, err
	}

	if !isAdmin && enrollment.UserID != actorID {
		return nil, ErrNotOwner
	}
	if enrollment.Status == training.StatusCompleted {
		return nil, ErrAlreadyCompleted
	}

	enrollment.Status = training.StatusCancelled
	if err := db.Save(&enrollment).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// findEnrollment loads the unique (user, course) row, nil when absent
func findEnrollment(db *gorm.DB, userID, courseID uint) (*training.Enrollment, error) {
	var enrollment training.Enrollment
	err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// certificateHeld reports whether a draft or issued certificate exists
// for the enrollment
func certificateHeld(db *gorm.DB, enrollmentID uint) (bool, error) {
	var count int64
	err := db.Model(&training.Certificate{}).
		Where("enrollment_id = ? AND status IN ? AND is_deleted = ?", enrollmentID, []string{training.CertDraft, training.CertIssued}, false).
		Count(&count).Error
	return count > 0, err
}

// reactivate resets a dead enrollment row back to enrolled with zero
// progress and clears its stale material completions
func reactivate(db *gorm.DB, enrollment *training.Enrollment, assignedBy *uint) error {
	if err := db.Model(&training.MaterialCompletion{}).
		Where("enrollment_id = ?", enrollment.ID).
		Update("is_deleted", true).Error; err != nil {
		return err
	}

	enrollment.Status = training.StatusEnrolled
	enrollment.ProgressPercentage = 0
	enrollment.Score = nil
	enrollment.CompletionDate = nil
	enrollment.AssignedBy = assignedBy
	return db.Save(enrollment).Error
}

// notifyEnrollment fires the enrollment fan-out, best-effort
func notifyEnrollment(db *gorm.DB, userID uint, course *training.TrainingCourse, enrollment *training.Enrollment) {
	result := Dispatch(db, userID, Event{
		Type:         models.NotifyEnrollment,
		Title:        "Enrolled: " + course.Title,
		Message:      fmt.Sprintf("You have been enrolled in \"%s\". Complete all required materials to earn your certificate.", course.Title),
		Link:         fmt.Sprintf("/training/course/%d/", course.ID),
		EnrollmentID: &enrollment.ID,
	})
	logDispatch(userID, result)
}
