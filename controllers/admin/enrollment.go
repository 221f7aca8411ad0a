package controllers

import (
	"log"
	"protrack/database"
	"protrack/middleware"
	"protrack/models"
	"protrack/models/training"
	"protrack/services"
	adminValidator "protrack/validators/admin"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// recomputeCourseProgress replays the progress engine for every live
// enrollment on a course after the required material set changed
func recomputeCourseProgress(courseID uint) {
	var enrollments []training.Enrollment
	if err := database.Database.Db.Where("course_id = ? AND status IN ? AND is_deleted = ?",
		courseID, training.ActiveStatuses, false).Find(&enrollments).Error; err != nil {
		log.Printf("[ADMIN] failed to load enrollments for course %d recompute: %v", courseID, err)
		return
	}

	for i := range enrollments {
		if err := services.RecomputeProgress(database.Database.Db, &enrollments[i]); err != nil {
			log.Printf("[ADMIN] progress recompute for enrollment %d failed: %v", enrollments[i].ID, err)
		}
	}
}

// AssignEnrollment enrolls a user into a course on the admin's behalf
func AssignEnrollment(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedAssignment").(*adminValidator.AssignEnrollmentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.UserID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	enrollment, err := services.AssignUser(database.Database.Db, adminID, reqData.UserID, reqData.CourseID)
	if err != nil {
		switch err {
		case gorm.ErrRecordNotFound:
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		case services.ErrAlreadyEnrolled:
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "User is already enrolled in this course!", nil)
		case services.ErrCertificateHeld:
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already completed this course and holds a certificate for it!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign enrollment!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User enrolled successfully!", enrollment)
}

// UpdateEnrollmentStatus is the direct admin override of an enrollment.
// It bypasses the normal state machine and is the only way to set the
// failed status.
func UpdateEnrollmentStatus(c *fiber.Ctx) error {
	enrollmentID := c.Locals("enrollmentID").(int)

	reqData, ok := c.Locals("validatedStatus").(*adminValidator.EnrollmentStatusRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
	}

	var enrollment training.Enrollment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", enrollmentID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	enrollment.Status = reqData.Status
	if reqData.Score != nil {
		enrollment.Score = reqData.Score
	}
	if reqData.Notes != "" {
		enrollment.Notes = reqData.Notes
	}

	if err := database.Database.Db.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update enrollment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment updated successfully!", enrollment)
}

// ListEnrollments lists enrollments across users with optional course
// and status filters
func ListEnrollments(c *fiber.Ctx) error {
	page := c.Locals("page").(int)
	limit := c.Locals("limit").(int)
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&training.Enrollment{}).Where("is_deleted = ?", false).Preload("Course")

	if courseID := c.Query("course_id"); courseID != "" {
		db = db.Where("course_id = ?", courseID)
	}
	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	db.Count(&total)

	var enrollments []training.Enrollment
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetStudentProgress returns one user's full training history
func GetStudentProgress(c *fiber.Ctx) error {
	userID := c.Locals("targetUserID").(int)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var enrollments []training.Enrollment
	database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Preload("Course").Order("created_at desc").Find(&enrollments)

	var certificates []training.Certificate
	database.Database.Db.
		Joins("JOIN enrollments ON enrollments.id = certificates.enrollment_id").
		Where("enrollments.user_id = ? AND certificates.is_deleted = ?", userID, false).
		Find(&certificates)

	completedCount := 0
	for _, enrollment := range enrollments {
		if enrollment.Status == training.StatusCompleted {
			completedCount++
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student progress fetched successfully!", fiber.Map{
		"user":         user,
		"enrollments":  enrollments,
		"certificates": certificates,
		"summary": fiber.Map{
			"total_enrollments": len(enrollments),
			"completed":         completedCount,
			"certificates":      len(certificates),
		},
	})
}
