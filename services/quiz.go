package services

import (
	"encoding/json"
	"math"
	"protrack/models/training"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// SubmitQuiz grades a submission against the quiz's questions, records
// the attempt, and on a pass marks the quiz's owning material complete
// (which drives the progress engine). A fail leaves the enrollment
// untouched; there is no attempt cap.
func SubmitQuiz(db *gorm.DB, userID, courseID, quizID uint, answers map[uint]string) (*training.QuizAttempt, error) {
	var enrollment training.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return nil, ErrNotEnrolled
	}
	if enrollment.Status == training.StatusCancelled {
		return nil, ErrEnrollmentInactive
	}

	var quiz training.Quiz
	if err := db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return nil, err
	}

	var material training.TrainingMaterial
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", quiz.MaterialID, courseID, false).First(&material).Error; err != nil {
		return nil, ErrMaterialNotFound
	}

	var questions []training.QuizQuestion
	if err := db.Where("quiz_id = ? AND is_deleted = ?", quizID, false).Order("order_index asc").Find(&questions).Error; err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrQuizEmpty
	}

	correct := 0
	for _, question := range questions {
		submitted, answered := answers[question.ID]
		if !answered {
			// Unanswered questions count toward the denominator only
			continue
		}
		ok, err := answerIsCorrect(db, &question, submitted)
		if err != nil {
			return nil, err
		}
		if ok {
			correct++
		}
	}

	total := len(questions)
	percentage := math.Round(float64(correct)/float64(total)*100*100) / 100
	passed := percentage >= quiz.PassMark

	var attemptCount int64
	db.Model(&training.QuizAttempt{}).
		Where("quiz_id = ? AND user_id = ? AND is_deleted = ?", quizID, userID, false).
		Count(&attemptCount)

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}

	attempt := training.QuizAttempt{
		QuizID:        quizID,
		UserID:        userID,
		EnrollmentID:  enrollment.ID,
		Answers:       answersJSON,
		Correct:       correct,
		Total:         total,
		Percentage:    percentage,
		Passed:        passed,
		AttemptNumber: int(attemptCount) + 1,
	}
	if err := db.Create(&attempt).Error; err != nil {
		return nil, err
	}

	if passed {
		if _, err := CompleteMaterial(db, userID, courseID, quiz.MaterialID); err != nil {
			return nil, err
		}
		if err := recordScore(db, enrollment.ID, percentage); err != nil {
			return nil, err
		}
	}

	return &attempt, nil
}

// answerIsCorrect applies the type-specific comparison rules: exact
// choice-id match for multiple choice, case-insensitive trimmed equality
// for everything else.
func answerIsCorrect(db *gorm.DB, question *training.QuizQuestion, submitted string) (bool, error) {
	if question.QuestionType == training.QuestionMultipleChoice {
		var choice training.QuizChoice
		err := db.Where("question_id = ? AND is_correct = ? AND is_deleted = ?", question.ID, true, false).First(&choice).Error
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		submittedID, err := strconv.ParseUint(strings.TrimSpace(submitted), 10, 64)
		if err != nil {
			return false, nil
		}
		return uint(submittedID) == choice.ID, nil
	}

	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(question.CorrectAnswer)), nil
}

// recordScore keeps the enrollment's best quiz score
func recordScore(db *gorm.DB, enrollmentID uint, percentage float64) error {
	var enrollment training.Enrollment
	if err := db.Where("id = ?", enrollmentID).First(&enrollment).Error; err != nil {
		return err
	}
	if enrollment.Score == nil || *enrollment.Score < percentage {
		enrollment.Score = &percentage
		return db.Save(&enrollment).Error
	}
	return nil
}
