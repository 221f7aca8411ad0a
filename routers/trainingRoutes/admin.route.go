package trainingRoutes

import (
	adminControllers "protrack/controllers/admin"
	"protrack/middleware"
	adminValidators "protrack/validators/admin"
	trainingValidators "protrack/validators/training"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireAdmin())

	adminGroup.Get("/dashboard", adminControllers.GetDashboardStats)

	// Courses
	adminGroup.Get("/courses", trainingValidators.Pagination(), adminControllers.ListAllCourses)
	adminGroup.Post("/course", adminValidators.CreateCourse(), adminControllers.CreateCourse)
	adminGroup.Put("/course/:id", trainingValidators.CourseID(), adminValidators.CreateCourse(), adminControllers.UpdateCourse)
	adminGroup.Delete("/course/:id", trainingValidators.CourseID(), adminControllers.DeleteCourse)
	adminGroup.Patch("/course/:id/archive", trainingValidators.CourseID(), adminControllers.ArchiveCourse)
	adminGroup.Patch("/course/:id/restore", trainingValidators.CourseID(), adminControllers.RestoreCourse)
	adminGroup.Get("/course/:id/report", trainingValidators.CourseID(), adminControllers.GetCourseReport)

	// Sessions and categories
	adminGroup.Post("/course/:id/session", trainingValidators.CourseID(), adminValidators.CreateSession(), adminControllers.CreateSession)
	adminGroup.Put("/session/:id", trainingValidators.IDParam("id", "sessionID"), adminValidators.CreateSession(), adminControllers.UpdateSession)
	adminGroup.Delete("/session/:id", trainingValidators.IDParam("id", "sessionID"), adminControllers.DeleteSession)
	adminGroup.Post("/category", adminValidators.UpsertCategory(), adminControllers.CreateCategory)
	adminGroup.Delete("/category/:id", trainingValidators.IDParam("id", "categoryID"), adminControllers.DeleteCategory)

	// Materials
	adminGroup.Post("/course/:id/material", trainingValidators.CourseID(), adminValidators.UploadMaterial(), adminControllers.UploadMaterial)
	adminGroup.Put("/material/:id", trainingValidators.IDParam("id", "materialID"), adminValidators.UploadMaterial(), adminControllers.UpdateMaterial)
	adminGroup.Delete("/material/:id", trainingValidators.IDParam("id", "materialID"), adminControllers.DeleteMaterial)

	// Quizzes
	adminGroup.Put("/material/:id/quiz", trainingValidators.IDParam("id", "materialID"), adminValidators.UpsertQuiz(), adminControllers.UpsertQuiz)
	adminGroup.Post("/quiz/:id/question", trainingValidators.IDParam("id", "quizID"), adminValidators.CreateQuestion(), adminControllers.CreateQuestion)
	adminGroup.Delete("/question/:id", trainingValidators.IDParam("id", "questionID"), adminControllers.DeleteQuestion)
	adminGroup.Get("/quiz/:id/attempts", trainingValidators.IDParam("id", "quizID"), trainingValidators.Pagination(), adminControllers.ListQuizAttempts)

	// Users
	adminGroup.Get("/users", trainingValidators.Pagination(), adminControllers.ListUsers)
	adminGroup.Post("/user", adminValidators.UpsertUser(), adminControllers.CreateUser)
	adminGroup.Put("/user/:id", trainingValidators.IDParam("id", "targetUserID"), adminValidators.UpsertUser(), adminControllers.UpdateUser)
	adminGroup.Patch("/user/:id/toggle-active", trainingValidators.IDParam("id", "targetUserID"), adminControllers.ToggleUserActive)
	adminGroup.Delete("/user/:id", trainingValidators.IDParam("id", "targetUserID"), adminControllers.DeleteUser)
	adminGroup.Get("/user/:id/progress", trainingValidators.IDParam("id", "targetUserID"), adminControllers.GetStudentProgress)

	// Enrollments
	adminGroup.Get("/enrollments", trainingValidators.Pagination(), adminControllers.ListEnrollments)
	adminGroup.Post("/enrollment/assign", adminValidators.AssignEnrollment(), adminControllers.AssignEnrollment)
	adminGroup.Patch("/enrollment/:id/status", trainingValidators.EnrollmentID(), adminValidators.UpdateEnrollmentStatus(), adminControllers.UpdateEnrollmentStatus)

	// Certificates
	adminGroup.Get("/certificates", trainingValidators.Pagination(), adminControllers.ListCertificates)
	adminGroup.Patch("/certificate/:id/approve", trainingValidators.IDParam("id", "certificateID"), adminValidators.ApproveCertificate(), adminControllers.ApproveCertificate)
	adminGroup.Patch("/certificate/:id/revoke", trainingValidators.IDParam("id", "certificateID"), adminControllers.RevokeCertificate)
}
