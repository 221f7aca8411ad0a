package controllers

import (
	"protrack/database"
	"protrack/middleware"
	"protrack/models/training"
	"protrack/services"

	"github.com/gofiber/fiber/v2"
)

// GetMaterial returns one material for an enrolled user
func GetMaterial(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	materialID := c.Locals("materialID").(int)

	var enrollment training.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	var material training.TrainingMaterial
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", materialID, courseID, false).First(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Material not found!", nil)
	}

	var isComplete bool
	var completion training.MaterialCompletion
	if err := database.Database.Db.Where("enrollment_id = ? AND material_id = ? AND is_deleted = ?", enrollment.ID, material.ID, false).First(&completion).Error; err == nil {
		isComplete = true
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Material fetched successfully!", fiber.Map{
		"material":    material,
		"is_complete": isComplete,
	})
}

// MarkMaterialComplete records a material completion and returns the
// recomputed enrollment. Safe to call repeatedly.
func MarkMaterialComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	materialID := c.Locals("materialID").(int)

	enrollment, err := services.CompleteMaterial(database.Database.Db, userID, uint(courseID), uint(materialID))
	if err != nil {
		switch err {
		case services.ErrNotEnrolled:
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
		case services.ErrEnrollmentInactive:
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Your enrollment in this course is cancelled!", nil)
		case services.ErrMaterialNotFound:
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Material not found!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark material as complete!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Material marked as complete!", enrollment)
}
