package controllers

import (
	"protrack/config"
	"protrack/database"
	"protrack/middleware"
	"protrack/models/training"
	"protrack/utils"
	adminValidator "protrack/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// UploadMaterial stores an uploaded file in the material bucket and
// creates the material row. The file part is optional; link-only
// materials (e.g. external videos) send metadata only.
func UploadMaterial(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedMaterial").(*adminValidator.MaterialMetaRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
	}

	var course training.TrainingCourse
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	material := training.TrainingMaterial{
		CourseID:    course.ID,
		Title:       reqData.Title,
		Description: reqData.Description,
		IsRequired:  reqData.IsRequired,
		OrderIndex:  reqData.OrderIndex,
		UploadedBy:  &adminID,
	}
	if reqData.MaterialType != "" {
		material.MaterialType = reqData.MaterialType
	}

	if file, err := c.FormFile("file"); err == nil {
		// 50 MB cap for course materials
		if file.Size > 50*1024*1024 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File too large! Maximum size is 50MB.", nil)
		}

		storage := utils.NewStorageClient()
		url, err := storage.UploadMultipart(file, config.AppConfig.MaterialBucket, "materials")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload material file!", nil)
		}
		material.FileURL = url
		material.FileName = file.Filename
		material.FileSize = file.Size
	}

	if err := database.Database.Db.Create(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create material!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Material created successfully!", material)
}

// UpdateMaterial edits material metadata. Flipping is_required changes
// what counts toward progress, so every enrollment on the course is
// recomputed afterwards.
func UpdateMaterial(c *fiber.Ctx) error {
	materialID := c.Locals("materialID").(int)

	reqData, ok := c.Locals("validatedMaterial").(*adminValidator.MaterialMetaRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
	}

	var material training.TrainingMaterial
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", materialID, false).First(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Material not found!", nil)
	}

	requiredChanged := material.IsRequired != reqData.IsRequired

	material.Title = reqData.Title
	material.Description = reqData.Description
	material.IsRequired = reqData.IsRequired
	material.OrderIndex = reqData.OrderIndex
	if reqData.MaterialType != "" {
		material.MaterialType = reqData.MaterialType
	}

	if err := database.Database.Db.Save(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update material!", nil)
	}

	if requiredChanged {
		recomputeCourseProgress(material.CourseID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Material updated successfully!", material)
}

// DeleteMaterial soft-deletes a material and recomputes progress for the
// course's enrollments since the required set may have shrunk
func DeleteMaterial(c *fiber.Ctx) error {
	materialID := c.Locals("materialID").(int)

	var material training.TrainingMaterial
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", materialID, false).First(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Material not found!", nil)
	}

	material.IsDeleted = true
	if err := database.Database.Db.Save(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete material!", nil)
	}

	if material.IsRequired {
		recomputeCourseProgress(material.CourseID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Material deleted successfully!", nil)
}
