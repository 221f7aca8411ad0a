package controllers

import (
	"protrack/database"
	"protrack/middleware"
	"protrack/models/training"

	"github.com/gofiber/fiber/v2"
)

// ListCourses returns the active course catalog with optional category,
// level and search filters
func ListCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	page := c.Locals("page").(int)
	limit := c.Locals("limit").(int)
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&training.TrainingCourse{}).
		Where("is_deleted = ? AND status = ?", false, training.CourseActive)

	if category := c.Query("category"); category != "" {
		db = db.Where("category_id = ?", category)
	}
	if level := c.Query("level"); level != "" {
		db = db.Where("level = ?", level)
	}
	if search := c.Query("search"); search != "" {
		db = db.Where("title LIKE ? OR description LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	db.Count(&total)

	var courses []training.TrainingCourse
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	// Flag courses the user already has an active enrollment in
	var enrolled []training.Enrollment
	database.Database.Db.Where("user_id = ? AND status IN ? AND is_deleted = ?", userID, training.ActiveStatuses, false).Find(&enrolled)
	enrolledCourses := make(map[uint]bool, len(enrolled))
	for _, e := range enrolled {
		enrolledCourses[e.CourseID] = true
	}

	list := make([]fiber.Map, 0, len(courses))
	for i := range courses {
		course := courses[i]
		list = append(list, fiber.Map{
			"course":         course,
			"enrolled_count": course.EnrolledCount(database.Database.Db),
			"is_full":        course.IsFull(database.Database.Db),
			"is_enrolled":    enrolledCourses[course.ID],
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": list,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// ListCategories returns the course categories for catalog filters
func ListCategories(c *fiber.Ctx) error {
	var categories []training.TrainingCategory
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("name asc").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", categories)
}

// GetCourseDetails returns one course with its materials, sessions and
// the caller's enrollment state
func GetCourseDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course training.TrainingCourse
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND status <> ?", courseID, false, training.CourseArchived).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var materials []training.TrainingMaterial
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&materials)

	var sessions []training.TrainingSession
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("start_date asc").Find(&sessions)

	var enrollment training.Enrollment
	isEnrolled := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error == nil

	// Completed material ids for progress display
	completedMaterials := []uint{}
	if isEnrolled {
		var completions []training.MaterialCompletion
		database.Database.Db.Where("enrollment_id = ? AND is_deleted = ?", enrollment.ID, false).Find(&completions)
		for _, completion := range completions {
			completedMaterials = append(completedMaterials, completion.MaterialID)
		}
	}

	response := fiber.Map{
		"course":              course,
		"materials":           materials,
		"sessions":            sessions,
		"enrolled_count":      course.EnrolledCount(database.Database.Db),
		"is_full":             course.IsFull(database.Database.Db),
		"is_enrolled":         isEnrolled,
		"completed_materials": completedMaterials,
	}
	if isEnrolled {
		response["enrollment"] = enrollment
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", response)
}
