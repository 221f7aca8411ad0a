package trainingValidator

import (
	"protrack/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// IDParam validates a positive integer path parameter and stores it in
// Locals under localKey
func IDParam(param, localKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params(param))
		if raw == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, param+" is required!", nil)
		}

		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+"!", nil)
		}

		c.Locals(localKey, id)
		return c.Next()
	}
}

func CourseID() fiber.Handler     { return IDParam("id", "courseID") }
func EnrollmentID() fiber.Handler { return IDParam("id", "enrollmentID") }

// Pagination validates optional page/limit query params
func Pagination() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `query:"page"`
			Limit *int `query:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && (*reqData.Limit < 1 || *reqData.Limit > 100) {
			errors["limit"] = "Limit must be between 1 and 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		page := 1
		limit := 10
		if reqData.Page != nil {
			page = *reqData.Page
		}
		if reqData.Limit != nil {
			limit = *reqData.Limit
		}

		c.Locals("page", page)
		c.Locals("limit", limit)
		return c.Next()
	}
}

// MaterialParams validates course and material path params
func MaterialParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := strconv.Atoi(strings.TrimSpace(c.Params("course_id")))
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course_id!", nil)
		}
		materialID, err := strconv.Atoi(strings.TrimSpace(c.Params("material_id")))
		if err != nil || materialID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid material_id!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("materialID", materialID)
		return c.Next()
	}
}

// SubmitQuiz validates the quiz path params and answers body
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := strconv.Atoi(strings.TrimSpace(c.Params("course_id")))
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course_id!", nil)
		}
		quizID, err := strconv.Atoi(strings.TrimSpace(c.Params("quiz_id")))
		if err != nil || quizID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz_id!", nil)
		}

		reqData := new(struct {
			Answers map[string]string `json:"answers"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if len(reqData.Answers) == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please answer at least one question!", nil)
		}

		answers := make(map[uint]string, len(reqData.Answers))
		for key, value := range reqData.Answers {
			questionID, err := strconv.ParseUint(key, 10, 64)
			if err != nil || questionID == 0 {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id: "+key, nil)
			}
			answers[uint(questionID)] = value
		}

		c.Locals("courseID", courseID)
		c.Locals("quizID", quizID)
		c.Locals("quizAnswers", answers)
		return c.Next()
	}
}

// UpdatePreferences validates the notification preference toggle body
func UpdatePreferences() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			NotifyOnEnrollment  *bool `json:"notify_on_enrollment"`
			NotifyOnCompletion  *bool `json:"notify_on_completion"`
			NotifyOnCertificate *bool `json:"notify_on_certificate"`
			NotifyOnReminder    *bool `json:"notify_on_reminder"`
			EmailOnEnrollment   *bool `json:"email_on_enrollment"`
			EmailOnCompletion   *bool `json:"email_on_completion"`
			EmailOnCertificate  *bool `json:"email_on_certificate"`
			EmailOnReminder     *bool `json:"email_on_reminder"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedPreferences", reqData)
		return c.Next()
	}
}
