package controllers

import (
	"protrack/database"
	"protrack/middleware"
	"protrack/models/training"
	"protrack/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetQuiz returns the quiz for a material with its questions and
// choices. Correct answers are never serialized.
func GetQuiz(c *fiber.Ctx) error {
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

	var quiz training.Quiz
	if err := database.Database.Db.Where("material_id = ? AND is_deleted = ?", material.ID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "This material has no quiz!", nil)
	}

	var questions []training.QuizQuestion
	database.Database.Db.Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).Order("order_index asc").Find(&questions)

	questionList := make([]fiber.Map, 0, len(questions))
	for _, question := range questions {
		entry := fiber.Map{
			"question": question,
		}
		if question.QuestionType == training.QuestionMultipleChoice {
			var choices []training.QuizChoice
			database.Database.Db.Where("question_id = ? AND is_deleted = ?", question.ID, false).Order("order_index asc").Find(&choices)
			entry["choices"] = choices
		}
		questionList = append(questionList, entry)
	}

	var bestAttempt training.QuizAttempt
	hasAttempt := database.Database.Db.Where("quiz_id = ? AND user_id = ? AND is_deleted = ?", quiz.ID, userID, false).
		Order("percentage desc").First(&bestAttempt).Error == nil

	response := fiber.Map{
		"quiz":      quiz,
		"questions": questionList,
	}
	if hasAttempt {
		response["best_attempt"] = bestAttempt
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", response)
}

// SubmitQuiz grades the submission and returns the attempt. Passing
// marks the quiz's material complete and may finish the course.
func SubmitQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	quizID := c.Locals("quizID").(int)
	answers := c.Locals("quizAnswers").(map[uint]string)

	attempt, err := services.SubmitQuiz(database.Database.Db, userID, uint(courseID), uint(quizID), answers)
	if err != nil {
		switch err {
		case gorm.ErrRecordNotFound:
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
		case services.ErrNotEnrolled:
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
		case services.ErrEnrollmentInactive:
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Your enrollment in this course is cancelled!", nil)
		case services.ErrMaterialNotFound:
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found in this course!", nil)
		case services.ErrQuizEmpty:
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This quiz has no questions yet!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz!", nil)
		}
	}

	message := "Quiz submitted. Keep practicing and try again!"
	if attempt.Passed {
		message = "Congratulations, you passed the quiz!"
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, attempt)
}

// GetMyAttempts lists the caller's attempts for a quiz, newest first
func GetMyAttempts(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(int)

	var attempts []training.QuizAttempt
	if err := database.Database.Db.Where("quiz_id = ? AND user_id = ? AND is_deleted = ?", quizID, userID, false).
		Order("created_at desc").Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", attempts)
}
