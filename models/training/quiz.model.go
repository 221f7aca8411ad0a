package training

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question types
const (
	QuestionMultipleChoice = "multiple_choice"
	QuestionTrueFalse      = "true_false"
	QuestionFillBlank      = "fill_blank"
	QuestionIdentification = "identification"
)

// Quiz belongs to a quiz-type material. Passing the quiz marks the
// material complete.
type Quiz struct {
	gorm.Model
	MaterialID   uint    `json:"material_id" gorm:"uniqueIndex;not null"`
	Title        string  `json:"title"`
	Instructions string  `json:"instructions" gorm:"type:text"`
	PassMark     float64 `json:"pass_mark" gorm:"default:70"` // percentage required to pass
	IsDeleted    bool    `json:"-" gorm:"default:false"`
}

type QuizQuestion struct {
	gorm.Model
	QuizID        uint   `json:"quiz_id" gorm:"index;not null"`
	QuestionText  string `json:"question_text" gorm:"type:text"`
	QuestionType  string `json:"question_type" gorm:"default:'multiple_choice'"`
	CorrectAnswer string `json:"-"` // answer text for non-choice types
	Points        int    `json:"points" gorm:"default:1"`
	OrderIndex    int    `json:"order_index" gorm:"default:0"`
	IsDeleted     bool   `json:"-" gorm:"default:false"`
}

// QuizChoice is an option for a multiple-choice question
type QuizChoice struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	ChoiceText string `json:"choice_text"`
	IsCorrect  bool   `json:"-" gorm:"default:false"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `json:"-" gorm:"default:false"`
}

// QuizAttempt records one submission. Answers is a JSON object mapping
// question id to the submitted value (choice id for multiple choice,
// free text otherwise).
type QuizAttempt struct {
	gorm.Model
	QuizID        uint           `json:"quiz_id" gorm:"index;not null"`
	UserID        uint           `json:"user_id" gorm:"index;not null"`
	EnrollmentID  uint           `json:"enrollment_id" gorm:"index;not null"`
	Answers       datatypes.JSON `json:"answers"`
	Correct       int            `json:"correct"`
	Total         int            `json:"total"`
	Percentage    float64        `json:"percentage"`
	Passed        bool           `json:"passed" gorm:"default:false"`
	AttemptNumber int            `json:"attempt_number" gorm:"default:1"`
	IsDeleted     bool           `json:"-" gorm:"default:false"`
}
