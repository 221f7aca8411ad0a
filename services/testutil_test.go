package services

import (
	"fmt"
	"protrack/database"
	"protrack/models"
	"protrack/models/training"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database with the production
// schema applied
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := models.User{
		Name:     "Test User",
		Email:    email,
		Password: "hashed",
		Role:     models.RoleStudent,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestCourse(t *testing.T, db *gorm.DB, maxParticipants int) *training.TrainingCourse {
	t.Helper()

	course := training.TrainingCourse{
		Title:           "Workplace Safety",
		Description:     "Safety fundamentals",
		Instructor:      "J. Cruz",
		DurationHours:   8,
		Status:          training.CourseActive,
		MaxParticipants: maxParticipants,
	}
	require.NoError(t, db.Create(&course).Error)
	return &course
}

func createTestMaterial(t *testing.T, db *gorm.DB, courseID uint, required bool) *training.TrainingMaterial {
	t.Helper()

	material := training.TrainingMaterial{
		CourseID:   courseID,
		Title:      "Module",
		IsRequired: required,
	}
	require.NoError(t, db.Create(&material).Error)
	return &material
}

func createTestQuiz(t *testing.T, db *gorm.DB, materialID uint, passMark float64) *training.Quiz {
	t.Helper()

	quiz := training.Quiz{
		MaterialID: materialID,
		Title:      "Checkpoint Quiz",
		PassMark:   passMark,
	}
	require.NoError(t, db.Create(&quiz).Error)
	return &quiz
}

func createTextQuestion(t *testing.T, db *gorm.DB, quizID uint, answer string) *training.QuizQuestion {
	t.Helper()

	question := training.QuizQuestion{
		QuizID:        quizID,
		QuestionText:  "Question",
		QuestionType:  training.QuestionIdentification,
		CorrectAnswer: answer,
		Points:        1,
	}
	require.NoError(t, db.Create(&question).Error)
	return &question
}

func reloadEnrollment(t *testing.T, db *gorm.DB, id uint) *training.Enrollment {
	t.Helper()

	var enrollment training.Enrollment
	require.NoError(t, db.Where("id = ?", id).First(&enrollment).Error)
	return &enrollment
}
