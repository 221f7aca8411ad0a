package services

import (
	"protrack/models/training"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitQuizPassCompletesMaterial(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "student@example.com")
	course := createTestCourse(t, db, 30)
	material := createTestMaterial(t, db, course.ID, true)
	quiz := createTestQuiz(t, db, material.ID, 70)

	q1 := createTextQuestion(t, db, quiz.ID, "alpha")
	q2 := createTextQuestion(t, db, quiz.ID, "beta")
	q3 := createTextQuestion(t, db, quiz.ID, "gamma")
	q4 := createTextQuestion(t, db, quiz.ID, "delta")

	enrollment, err := EnrollUser(db, user.ID, course.ID)
	require.NoError(t, err)

	// 3 of 4 correct = 75%, above the 70 pass mark
	attempt, err := SubmitQuiz(db, user.ID, course.ID, quiz.ID, map[uint]string{
		q1.ID: "alpha",
		q2.ID: "beta",
		q3.ID: "gamma",
		q4.ID: "wrong",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempt.Correct)
	assert.Equal(t, 4, attempt.Total)
	assert.Equal(t, 75.0, attempt.Percentage)
	assert.True(t, attempt.Passed)
	assert.Equal(t, 1, attempt.AttemptNumber)

	// Passing completed the quiz's material; it was the only required one
	enrollment = reloadEnrollment(t, db, enrollment.ID)
	assert.Equal(t, training.StatusCompleted, enrollment.Status)
	assert.Equal(t, 100, enrollment.ProgressPercentage)
	require.NotNil(t, enrollment.Score)
	assert.Equal(t, 75.0, *enrollment.Score)
}

func TestSubmitQuizFailLeavesEnrollmentUntouched(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "student@example.com")
	course := createTestCourse(t, db, 30)
	material := createTestMaterial(t, db, course.ID, true)
	quiz := createTestQuiz(t, db, material.ID, 70)

	q1 := createTextQuestion(t, db, quiz.ID, "alpha")
	q2 := createTextQuestion(t, db, quiz.ID, "beta")
	q3 := createTextQuestion(t, db, quiz.ID, "gamma")
	q4 := createTextQuestion(t, db, quiz.ID, "delta")

	enrollment, err := EnrollUser(db, user.ID, course.ID)
	require.NoError(t, err)

	attempt, err := SubmitQuiz(db, user.ID, course.ID, quiz.ID, map[uint]string{
		q1.ID: "alpha",
		q2.ID: "beta",
		q3.ID: "nope",
		q4.ID: "nope",
	})
	require.NoError(t, err)
	assert.Equal(t, 50.0, attempt.Percentage)
	assert.False(t, attempt.Passed)

	// No completion, no progress, no score
	enrollment = reloadEnrollment(t, db, enrollment.ID)
	assert.Equal(t, training.StatusEnrolled, enrollment.Status)
	assert.Equal(t, 0, enrollment.ProgressPercentage)
	assert.Nil(t, enrollment.Score)

	// Retrying increments the attempt number; there is no cap
	attempt, err = SubmitQuiz(db, user.ID, course.ID, quiz.ID, map[uint]string{
		q1.ID: "alpha",
		q2.ID: "beta",
		q3.ID: "gamma",
		q4.ID: "delta",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempt.AttemptNumber)
	assert.True(t, attempt.Passed)
}

func TestSubmitQuizUnansweredCountInDenominator(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "student@example.com")
	course := createTestCourse(t, db, 30)
	material := createTestMaterial(t, db, course.ID, false)
	quiz := createTestQuiz(t, db, material.ID, 70)

	q1 := createTextQuestion(t, db, quiz.ID, "alpha")
	createTextQuestion(t, db, quiz.ID, "beta")
	createTextQuestion(t, db, quiz.ID, "gamma")

	_, err := EnrollUser(db, user.ID, course.ID)
	require.NoError(t, err)

	attempt, err := SubmitQuiz(db, user.ID, course.ID, quiz.ID, map[uint]string{
		q1.ID: "alpha",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, attempt.Correct)
	assert.Equal(t, 3, attempt.Total)
	assert.Equal(t, 33.33, attempt.Percentage)
	assert.False(t, attempt.Passed)
}

func TestSubmitQuizTextMatchingIsLenient(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "student@example.com")
	course := createTestCourse(t, db, 30)
	material := createTestMaterial(t, db, course.ID, false)
	quiz := createTestQuiz(t, db, material.ID, 100)
	question := createTextQuestion(t, db, quiz.ID, "Photosynthesis")

	_, err := EnrollUser(db, user.ID, course.ID)
	require.NoError(t, err)

	// Case and surrounding whitespace are ignored for text answers
	attempt, err := SubmitQuiz(db, user.ID, course.ID, quiz.ID, map[uint]string{
		question.ID: "  photosynthesis ",
	})
	require.NoError(t, err)
	assert.True(t, attempt.Passed)
}

func TestSubmitQuizMultipleChoiceMatchesChoiceID(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "student@example.com")
	course := createTestCourse(t, db, 30)
	material := createTestMaterial(t, db, course.ID, false)
	quiz := createTestQuiz(t, db, material.ID, 100)

	question := training.QuizQuestion{
		QuizID:       quiz.ID,
		QuestionText: "Pick one",
		QuestionType: training.QuestionMultipleChoice,
		Points:       1,
	}
	require.NoError(t, db.Create(&question).Error)

	wrong := training.QuizChoice{QuestionID: question.ID, ChoiceText: "No"}
	require.NoError(t, db.Create(&wrong).Error)
	right := training.QuizChoice{QuestionID: question.ID, ChoiceText: "Yes", IsCorrect: true}
	require.NoError(t, db.Create(&right).Error)

	_, err := EnrollUser(db, user.ID, course.ID)
	require.NoError(t, err)

	// Wrong choice id
	attempt, err := SubmitQuiz(db, user.ID, course.ID, quiz.ID, map[uint]string{
		question.ID: strconv.Itoa(int(wrong.ID)),
	})
	require.NoError(t, err)
	assert.False(t, attempt.Passed)

	// Non-numeric submission is simply incorrect, not an error
	attempt, err = SubmitQuiz(db, user.ID, course.ID, quiz.ID, map[uint]string{
		question.ID: "Yes",
	})
	require.NoError(t, err)
	assert.False(t, attempt.Passed)

	// Correct choice id
	attempt, err = SubmitQuiz(db, user.ID, course.ID, quiz.ID, map[uint]string{
		question.ID: strconv.Itoa(int(right.ID)),
	})
	require.NoError(t, err)
	assert.True(t, attempt.Passed)
}

func TestSubmitQuizGuards(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "student@example.com")
	course := createTestCourse(t, db, 30)
	material := createTestMaterial(t, db, course.ID, false)
	quiz := createTestQuiz(t, db, material.ID, 70)

	// Not enrolled
	_, err := SubmitQuiz(db, user.ID, course.ID, quiz.ID, map[uint]string{1: "x"})
	assert.ErrorIs(t, err, ErrNotEnrolled)

	_, err = EnrollUser(db, user.ID, course.ID)
	require.NoError(t, err)

	// Quiz with no questions cannot be graded
	_, err = SubmitQuiz(db, user.ID, course.ID, quiz.ID, map[uint]string{1: "x"})
	assert.ErrorIs(t, err, ErrQuizEmpty)

	// Quiz belonging to another course is not reachable through this one
	otherCourse := createTestCourse(t, db, 30)
	otherMaterial := createTestMaterial(t, db, otherCourse.ID, false)
	otherQuiz := createTestQuiz(t, db, otherMaterial.ID, 70)
	createTextQuestion(t, db, otherQuiz.ID, "alpha")

	_, err = SubmitQuiz(db, user.ID, course.ID, otherQuiz.ID, map[uint]string{1: "x"})
	assert.ErrorIs(t, err, ErrMaterialNotFound)
}

func TestRecordScoreKeepsBest(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "student@example.com")
	course := createTestCourse(t, db, 30)
	material := createTestMaterial(t, db, course.ID, false)
	quiz := createTestQuiz(t, db, material.ID, 50)

	q1 := createTextQuestion(t, db, quiz.ID, "alpha")
	q2 := createTextQuestion(t, db, quiz.ID, "beta")

	enrollment, err := EnrollUser(db, user.ID, course.ID)
	require.NoError(t, err)

	// First pass at 100
	_, err = SubmitQuiz(db, user.ID, course.ID, quiz.ID, map[uint]string{q1.ID: "alpha", q2.ID: "beta"})
	require.NoError(t, err)

	// Second pass at 50 must not lower the recorded score
	_, err = SubmitQuiz(db, user.ID, course.ID, quiz.ID, map[uint]string{q1.ID: "alpha", q2.ID: "wrong"})
	require.NoError(t, err)

	enrollment = reloadEnrollment(t, db, enrollment.ID)
	require.NotNil(t, enrollment.Score)
	assert.Equal(t, 100.0, *enrollment.Score)
}
