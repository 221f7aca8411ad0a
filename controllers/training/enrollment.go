package controllers

import (
	"protrack/database"
	"protrack/middleware"
	"protrack/models"
	"protrack/models/training"
	"protrack/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	enrollment, err := services.EnrollUser(database.Database.Db, userID, uint(courseID))
	if err != nil {
		switch err {
		case gorm.ErrRecordNotFound:
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		case services.ErrCourseNotActive:
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course is not open for enrollment!", nil)
		case services.ErrCourseFull:
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course is full!", nil)
		case services.ErrAlreadyEnrolled:
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course!", nil)
		case services.ErrCertificateHeld:
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "You already completed this course and hold a certificate for it!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

func CancelEnrollment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)
	role, _ := c.Locals("userRole").(string)

	enrollment, err := services.CancelEnrollment(database.Database.Db, uint(enrollmentID), userID, role == models.RoleAdmin)
	if err != nil {
		switch err {
		case gorm.ErrRecordNotFound:
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
		case services.ErrNotOwner:
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only cancel your own enrollments!", nil)
		case services.ErrAlreadyCompleted:
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Completed enrollments cannot be cancelled!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to cancel enrollment!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment cancelled successfully!", enrollment)
}

// GetMyTraining lists the caller's enrollments with their courses
func GetMyTraining(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db.Model(&training.Enrollment{}).
		Where("user_id = ? AND is_deleted = ?", userID, false).Preload("Course")

	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var enrollments []training.Enrollment
	if err := db.Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}

// GetProgress returns one enrollment with its per-material completion
// breakdown
func GetProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment training.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		Preload("Course").First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "You are not enrolled in this course!", nil)
	}

	var materials []training.TrainingMaterial
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&materials)

	var completions []training.MaterialCompletion
	database.Database.Db.Where("enrollment_id = ? AND is_deleted = ?", enrollment.ID, false).Find(&completions)
	completed := make(map[uint]bool, len(completions))
	for _, completion := range completions {
		completed[completion.MaterialID] = true
	}

	breakdown := make([]fiber.Map, 0, len(materials))
	for _, material := range materials {
		breakdown = append(breakdown, fiber.Map{
			"material":    material,
			"is_complete": completed[material.ID],
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment": enrollment,
		"materials":  breakdown,
	})
}
