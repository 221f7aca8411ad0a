package controllers

import (
	"protrack/database"
	"protrack/middleware"
	"protrack/models/training"
	adminValidator "protrack/validators/admin"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UpsertQuiz creates or updates the quiz attached to a material. One
// quiz per material.
func UpsertQuiz(c *fiber.Ctx) error {
	materialID := c.Locals("materialID").(int)

	reqData, ok := c.Locals("validatedQuiz").(*adminValidator.QuizRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
	}

	var material training.TrainingMaterial
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", materialID, false).First(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Material not found!", nil)
	}

	var quiz training.Quiz
	err := database.Database.Db.Where("material_id = ? AND is_deleted = ?", material.ID, false).First(&quiz).Error
	if err == gorm.ErrRecordNotFound {
		quiz = training.Quiz{MaterialID: material.ID}
	} else if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load quiz!", nil)
	}

	quiz.Title = reqData.Title
	quiz.Instructions = reqData.Instructions
	quiz.PassMark = reqData.PassMark

	if err := database.Database.Db.Save(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz saved successfully!", quiz)
}

// CreateQuestion adds a question (with choices for multiple choice) to
// a quiz
func CreateQuestion(c *fiber.Ctx) error {
	quizID := c.Locals("quizID").(int)

	reqData, ok := c.Locals("validatedQuestion").(*adminValidator.QuestionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
	}

	var quiz training.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	question := training.QuizQuestion{
		QuizID:        quiz.ID,
		QuestionText:  reqData.QuestionText,
		QuestionType:  reqData.QuestionType,
		CorrectAnswer: reqData.CorrectAnswer,
		Points:        reqData.Points,
		OrderIndex:    reqData.OrderIndex,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&question).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	for _, choice := range reqData.Choices {
		row := training.QuizChoice{
			QuestionID: question.ID,
			ChoiceText: choice.ChoiceText,
			IsCorrect:  choice.IsCorrect,
			OrderIndex: choice.OrderIndex,
		}
		if err := tx.Create(&row).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question choices!", nil)
		}
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question created successfully!", question)
}

func DeleteQuestion(c *fiber.Ctx) error {
	questionID := c.Locals("questionID").(int)

	var question training.QuizQuestion
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	question.IsDeleted = true
	if err := database.Database.Db.Save(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	database.Database.Db.Model(&training.QuizChoice{}).
		Where("question_id = ?", question.ID).Update("is_deleted", true)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully!", nil)
}

// ListQuizAttempts lists attempts for a quiz, newest first
func ListQuizAttempts(c *fiber.Ctx) error {
	quizID := c.Locals("quizID").(int)

	page := c.Locals("page").(int)
	limit := c.Locals("limit").(int)
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&training.QuizAttempt{}).
		Where("quiz_id = ? AND is_deleted = ?", quizID, false)

	var total int64
	db.Count(&total)

	var attempts []training.QuizAttempt
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", fiber.Map{
		"attempts": attempts,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
