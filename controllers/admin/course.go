package controllers

import (
	"protrack/database"
	"protrack/middleware"
	"protrack/models/training"
	adminValidator "protrack/validators/admin"
	"time"

	"github.com/gofiber/fiber/v2"
)

func applyCourseRequest(course *training.TrainingCourse, reqData *adminValidator.CourseRequest) {
	course.Title = reqData.Title
	course.Description = reqData.Description
	course.CategoryID = reqData.CategoryID
	course.Instructor = reqData.Instructor
	course.DurationHours = reqData.DurationHours
	course.Prerequisites = reqData.Prerequisites
	course.LearningOutcomes = reqData.LearningOutcomes
	course.MaxParticipants = reqData.MaxParticipants
	if reqData.Level != "" {
		course.Level = reqData.Level
	}
	if reqData.Status != "" {
		course.Status = reqData.Status
	}
}

func CreateCourse(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*adminValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
	}

	course := training.TrainingCourse{CreatedBy: &adminID}
	applyCourseRequest(&course, reqData)

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedCourse").(*adminValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
	}

	var course training.TrainingCourse
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	applyCourseRequest(&course, reqData)

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// ListAllCourses lists every non-deleted course regardless of status
func ListAllCourses(c *fiber.Ctx) error {
	page := c.Locals("page").(int)
	limit := c.Locals("limit").(int)
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&training.TrainingCourse{}).Where("is_deleted = ?", false)

	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		db = db.Where("title LIKE ?", "%"+search+"%")
	}

	var total int64
	db.Count(&total)

	var courses []training.TrainingCourse
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// ArchiveCourse hides a course from the catalog. Existing enrollments
// keep progressing; archiving blocks new enrollments only.
func ArchiveCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course training.TrainingCourse
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.Status = training.CourseArchived
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to archive course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course archived successfully!", course)
}

// RestoreCourse brings an archived course back as inactive so an admin
// can review it before reactivating
func RestoreCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course training.TrainingCourse
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.Status != training.CourseArchived {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course is not archived!", nil)
	}

	course.Status = training.CourseInactive
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to restore course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course restored successfully!", course)
}

func DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course training.TrainingCourse
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var activeCount int64
	database.Database.Db.Model(&training.Enrollment{}).
		Where("course_id = ? AND status IN ? AND is_deleted = ?", course.ID, training.ActiveStatuses, false).
		Count(&activeCount)
	if activeCount > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course has active enrollments! Archive it instead.", nil)
	}

	course.IsDeleted = true
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// CreateSession schedules a session for a course
func CreateSession(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedSession").(*adminValidator.SessionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
	}

	var course training.TrainingCourse
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	startDate, _ := time.Parse("2006-01-02", reqData.StartDate)
	endDate, _ := time.Parse("2006-01-02", reqData.EndDate)
	if endDate.Before(startDate) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "End date must not be before start date!", nil)
	}

	session := training.TrainingSession{
		CourseID:    course.ID,
		SessionName: reqData.SessionName,
		StartDate:   startDate,
		EndDate:     endDate,
		StartTime:   reqData.StartTime,
		EndTime:     reqData.EndTime,
		Location:    reqData.Location,
		IsOnline:    reqData.IsOnline,
		Notes:       reqData.Notes,
	}
	if err := database.Database.Db.Create(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Session created successfully!", session)
}

func UpdateSession(c *fiber.Ctx) error {
	sessionID := c.Locals("sessionID").(int)

	reqData, ok := c.Locals("validatedSession").(*adminValidator.SessionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
	}

	var session training.TrainingSession
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", sessionID, false).First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Session not found!", nil)
	}

	startDate, _ := time.Parse("2006-01-02", reqData.StartDate)
	endDate, _ := time.Parse("2006-01-02", reqData.EndDate)
	if endDate.Before(startDate) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "End date must not be before start date!", nil)
	}

	session.SessionName = reqData.SessionName
	session.StartDate = startDate
	session.EndDate = endDate
	session.StartTime = reqData.StartTime
	session.EndTime = reqData.EndTime
	session.Location = reqData.Location
	session.IsOnline = reqData.IsOnline
	session.Notes = reqData.Notes

	if err := database.Database.Db.Save(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session updated successfully!", session)
}

func DeleteSession(c *fiber.Ctx) error {
	sessionID := c.Locals("sessionID").(int)

	var session training.TrainingSession
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", sessionID, false).First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Session not found!", nil)
	}

	session.IsDeleted = true
	if err := database.Database.Db.Save(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session deleted successfully!", nil)
}

func CreateCategory(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCategory").(*adminValidator.CategoryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
	}

	category := training.TrainingCategory{
		Name:        reqData.Name,
		Description: reqData.Description,
	}
	if reqData.Icon != "" {
		category.Icon = reqData.Icon
	}

	if err := database.Database.Db.Create(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Failed to create category! Name may already exist.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully!", category)
}

func DeleteCategory(c *fiber.Ctx) error {
	categoryID := c.Locals("categoryID").(int)

	var category training.TrainingCategory
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", categoryID, false).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	// Courses keep working without a category
	database.Database.Db.Model(&training.TrainingCourse{}).
		Where("category_id = ?", category.ID).Update("category_id", nil)

	category.IsDeleted = true
	if err := database.Database.Db.Save(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category deleted successfully!", nil)
}
