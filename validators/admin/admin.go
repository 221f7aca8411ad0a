package adminValidator

import (
	"protrack/middleware"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func structErrors(err error) map[string]string {
	errors := make(map[string]string)
	for _, fieldErr := range err.(validator.ValidationErrors) {
		errors[strings.ToLower(fieldErr.Field())] = "Invalid value for " + fieldErr.Field() + " (" + fieldErr.Tag() + ")"
	}
	return errors
}

// CourseRequest is the admin create/update course payload
type CourseRequest struct {
	Title            string  `json:"title" validate:"required,min=3"`
	Description      string  `json:"description" validate:"required,min=5"`
	CategoryID       *uint   `json:"category_id"`
	Instructor       string  `json:"instructor" validate:"required"`
	DurationHours    float64 `json:"duration_hours" validate:"gte=0.5"`
	Level            string  `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	MaxParticipants  int     `json:"max_participants" validate:"gte=1"`
	Prerequisites    string  `json:"prerequisites"`
	LearningOutcomes string  `json:"learning_outcomes"`
	Status           string  `json:"status" validate:"omitempty,oneof=active inactive archived"`
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, structErrors(err))
		}
		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// SessionRequest is the admin session payload
type SessionRequest struct {
	SessionName string `json:"session_name" validate:"required"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time" validate:"required"`
	Location    string `json:"location" validate:"required"`
	IsOnline    bool   `json:"is_online"`
	Notes       string `json:"notes"`
}

func CreateSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SessionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, structErrors(err))
		}
		c.Locals("validatedSession", reqData)
		return c.Next()
	}
}

// MaterialMetaRequest carries the material metadata alongside the upload
type MaterialMetaRequest struct {
	Title        string `json:"title" form:"title" validate:"required"`
	Description  string `json:"description" form:"description"`
	MaterialType string `json:"material_type" form:"material_type" validate:"omitempty,oneof=document video presentation quiz other"`
	IsRequired   bool   `json:"is_required" form:"is_required"`
	OrderIndex   int    `json:"order_index" form:"order_index"`
}

func UploadMaterial() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(MaterialMetaRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, structErrors(err))
		}
		c.Locals("validatedMaterial", reqData)
		return c.Next()
	}
}

// QuizRequest creates or updates a quiz on a material
type QuizRequest struct {
	Title        string  `json:"title" validate:"required"`
	Instructions string  `json:"instructions"`
	PassMark     float64 `json:"pass_mark" validate:"gte=0,lte=100"`
}

func UpsertQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(QuizRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, structErrors(err))
		}
		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

// QuestionRequest adds a question to a quiz
type QuestionRequest struct {
	QuestionText  string   `json:"question_text" validate:"required"`
	QuestionType  string   `json:"question_type" validate:"required,oneof=multiple_choice true_false fill_blank identification"`
	CorrectAnswer string   `json:"correct_answer"`
	Points        int      `json:"points" validate:"gte=1"`
	OrderIndex    int      `json:"order_index"`
	Choices       []Choice `json:"choices" validate:"dive"`
}

// Choice is one multiple-choice option
type Choice struct {
	ChoiceText string `json:"choice_text" validate:"required"`
	IsCorrect  bool   `json:"is_correct"`
	OrderIndex int    `json:"order_index"`
}

func CreateQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(QuestionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, structErrors(err))
		}

		errors := make(map[string]string)
		if reqData.QuestionType == "multiple_choice" {
			if len(reqData.Choices) < 2 {
				errors["choices"] = "Multiple choice questions need at least 2 choices!"
			} else {
				correct := 0
				for _, choice := range reqData.Choices {
					if choice.IsCorrect {
						correct++
					}
				}
				if correct != 1 {
					errors["choices"] = "Multiple choice questions need exactly 1 correct choice!"
				}
			}
		} else if strings.TrimSpace(reqData.CorrectAnswer) == "" {
			errors["correct_answer"] = "Correct answer is required for this question type!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}

// AssignEnrollmentRequest enrolls a user on behalf of an admin
type AssignEnrollmentRequest struct {
	UserID   uint `json:"user_id" validate:"required"`
	CourseID uint `json:"course_id" validate:"required"`
}

func AssignEnrollment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AssignEnrollmentRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, structErrors(err))
		}
		c.Locals("validatedAssignment", reqData)
		return c.Next()
	}
}

// EnrollmentStatusRequest is the direct admin status edit. This is the
// only path that can set the failed status.
type EnrollmentStatusRequest struct {
	Status string   `json:"status" validate:"required,oneof=pending enrolled in_progress completed cancelled failed"`
	Score  *float64 `json:"score" validate:"omitempty,gte=0,lte=100"`
	Notes  string   `json:"notes"`
}

func UpdateEnrollmentStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(EnrollmentStatusRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, structErrors(err))
		}
		c.Locals("validatedStatus", reqData)
		return c.Next()
	}
}

// ApproveCertificateRequest carries the optional expiry date
type ApproveCertificateRequest struct {
	ExpiryDate string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	Notes      string `json:"notes"`
}

func ApproveCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ApproveCertificateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, structErrors(err))
		}
		c.Locals("validatedApproval", reqData)
		return c.Next()
	}
}

// UserRequest is the admin create/update user payload
type UserRequest struct {
	Name       string `json:"name" validate:"required,min=2"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"omitempty,min=8"`
	Role       string `json:"role" validate:"omitempty,oneof=STUDENT EMPLOYEE ADMIN"`
	Program    string `json:"program"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

func UpsertUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UserRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, structErrors(err))
		}
		c.Locals("validatedUser", reqData)
		return c.Next()
	}
}

// CategoryRequest is the admin category payload
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func UpsertCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CategoryRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, structErrors(err))
		}
		c.Locals("validatedCategory", reqData)
		return c.Next()
	}
}
