package controllers

import (
	"protrack/database"
	"protrack/middleware"
	"protrack/models"
	"protrack/models/training"

	"github.com/gofiber/fiber/v2"
)

// GetCourseReport breaks one course's enrollments down by status
func GetCourseReport(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course training.TrainingCourse
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	byStatus := fiber.Map{}
	for _, status := range []string{
		training.StatusPending, training.StatusEnrolled, training.StatusInProgress,
		training.StatusCompleted, training.StatusCancelled, training.StatusFailed,
	} {
		var count int64
		database.Database.Db.Model(&training.Enrollment{}).
			Where("course_id = ? AND status = ? AND is_deleted = ?", course.ID, status, false).
			Count(&count)
		byStatus[status] = count
	}

	var avgProgress float64
	database.Database.Db.Model(&training.Enrollment{}).
		Where("course_id = ? AND is_deleted = ?", course.ID, false).
		Select("COALESCE(AVG(progress_percentage), 0)").
		Scan(&avgProgress)

	var issuedCertificates int64
	database.Database.Db.Model(&training.Certificate{}).
		Joins("JOIN enrollments ON enrollments.id = certificates.enrollment_id").
		Where("enrollments.course_id = ? AND certificates.status = ? AND certificates.is_deleted = ?",
			course.ID, training.CertIssued, false).
		Count(&issuedCertificates)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course report fetched successfully!", fiber.Map{
		"course":              course,
		"by_status":           byStatus,
		"average_progress":    avgProgress,
		"issued_certificates": issuedCertificates,
		"enrolled_count":      course.EnrolledCount(database.Database.Db),
		"max_participants":    course.MaxParticipants,
	})
}

// GetDashboardStats returns the admin overview counters
func GetDashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalUsers, activeUsers int64
	db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&totalUsers)
	db.Model(&models.User{}).Where("is_deleted = ? AND is_active = ?", false, true).Count(&activeUsers)

	var totalCourses, activeCourses int64
	db.Model(&training.TrainingCourse{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&training.TrainingCourse{}).Where("is_deleted = ? AND status = ?", false, training.CourseActive).Count(&activeCourses)

	var totalEnrollments, activeEnrollments, completedEnrollments int64
	db.Model(&training.Enrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)
	db.Model(&training.Enrollment{}).Where("is_deleted = ? AND status IN ?", false, training.ActiveStatuses).Count(&activeEnrollments)
	db.Model(&training.Enrollment{}).Where("is_deleted = ? AND status = ?", false, training.StatusCompleted).Count(&completedEnrollments)

	var pendingCertificates, issuedCertificates int64
	db.Model(&training.Certificate{}).Where("is_deleted = ? AND status = ?", false, training.CertDraft).Count(&pendingCertificates)
	db.Model(&training.Certificate{}).Where("is_deleted = ? AND status = ?", false, training.CertIssued).Count(&issuedCertificates)

	completionRate := 0.0
	if totalEnrollments > 0 {
		completionRate = float64(completedEnrollments) / float64(totalEnrollments) * 100
	}

	// Top courses by active enrollment
	type courseRow struct {
		CourseID uint   `json:"course_id"`
		Title    string `json:"title"`
		Count    int64  `json:"count"`
	}
	var topCourses []courseRow
	db.Model(&training.Enrollment{}).
		Select("enrollments.course_id, training_courses.title, count(*) as count").
		Joins("JOIN training_courses ON training_courses.id = enrollments.course_id").
		Where("enrollments.is_deleted = ? AND enrollments.status IN ?", false, training.ActiveStatuses).
		Group("enrollments.course_id, training_courses.title").
		Order("count desc").
		Limit(5).
		Scan(&topCourses)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"users": fiber.Map{
			"total":  totalUsers,
			"active": activeUsers,
		},
		"courses": fiber.Map{
			"total":  totalCourses,
			"active": activeCourses,
		},
		"enrollments": fiber.Map{
			"total":           totalEnrollments,
			"active":          activeEnrollments,
			"completed":       completedEnrollments,
			"completion_rate": completionRate,
		},
		"certificates": fiber.Map{
			"pending": pendingCertificates,
			"issued":  issuedCertificates,
		},
		"top_courses": topCourses,
	})
}
