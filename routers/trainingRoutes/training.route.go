package trainingRoutes

import (
	trainingControllers "protrack/controllers/training"
	"protrack/middleware"
	trainingValidators "protrack/validators/training"

	"github.com/gofiber/fiber/v2"
)

func SetupTrainingRoutes(app *fiber.App) {
	trainingGroup := app.Group("/training")

	// Catalog
	trainingGroup.Get("/courses", trainingValidators.Pagination(), middleware.JWTMiddleware, trainingControllers.ListCourses)
	trainingGroup.Get("/categories", middleware.JWTMiddleware, trainingControllers.ListCategories)
	trainingGroup.Get("/course/:id", trainingValidators.CourseID(), middleware.JWTMiddleware, trainingControllers.GetCourseDetails)

	// Enrollment lifecycle
	trainingGroup.Post("/course/:id/enroll", trainingValidators.CourseID(), middleware.JWTMiddleware, trainingControllers.EnrollInCourse)
	trainingGroup.Get("/course/:id/progress", trainingValidators.CourseID(), middleware.JWTMiddleware, trainingControllers.GetProgress)
	trainingGroup.Post("/enrollment/:id/cancel", trainingValidators.EnrollmentID(), middleware.JWTMiddleware, trainingControllers.CancelEnrollment)
	trainingGroup.Get("/my", middleware.JWTMiddleware, trainingControllers.GetMyTraining)

	// Materials and quizzes
	trainingGroup.Get("/course/:course_id/material/:material_id", trainingValidators.MaterialParams(), middleware.JWTMiddleware, trainingControllers.GetMaterial)
	trainingGroup.Post("/course/:course_id/material/:material_id/complete", trainingValidators.MaterialParams(), middleware.JWTMiddleware, trainingControllers.MarkMaterialComplete)
	trainingGroup.Get("/course/:course_id/material/:material_id/quiz", trainingValidators.MaterialParams(), middleware.JWTMiddleware, trainingControllers.GetQuiz)
	trainingGroup.Post("/course/:course_id/quiz/:quiz_id/submit", trainingValidators.SubmitQuiz(), middleware.JWTMiddleware, trainingControllers.SubmitQuiz)
	trainingGroup.Get("/quiz/:quiz_id/attempts", trainingValidators.IDParam("quiz_id", "quizID"), middleware.JWTMiddleware, trainingControllers.GetMyAttempts)

	// Certificates
	trainingGroup.Get("/certificates", middleware.JWTMiddleware, trainingControllers.GetMyCertificates)
	trainingGroup.Get("/certificate/verify/:number", trainingControllers.VerifyCertificate)
}
