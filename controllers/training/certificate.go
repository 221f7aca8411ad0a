package controllers

import (
	"protrack/database"
	"protrack/middleware"
	"protrack/models/training"

	"github.com/gofiber/fiber/v2"
)

// GetMyCertificates lists the caller's certificates with their courses
func GetMyCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var certificates []training.Certificate
	if err := database.Database.Db.
		Joins("JOIN enrollments ON enrollments.id = certificates.enrollment_id").
		Where("enrollments.user_id = ? AND certificates.is_deleted = ?", userID, false).
		Preload("Enrollment.Course").
		Order("certificates.created_at desc").
		Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", certificates)
}

// VerifyCertificate looks a certificate up by number. Public endpoint
// for third-party verification.
func VerifyCertificate(c *fiber.Ctx) error {
	number := c.Params("number")
	if number == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate number is required!", nil)
	}

	var cert training.Certificate
	if err := database.Database.Db.Where("certificate_number = ? AND is_deleted = ?", number, false).
		Preload("Enrollment.Course").First(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	response := fiber.Map{
		"certificate_number": cert.CertificateNumber,
		"status":             cert.Status,
		"issue_date":         cert.IssueDate,
		"expiry_date":        cert.ExpiryDate,
	}
	if cert.Enrollment != nil && cert.Enrollment.Course != nil {
		response["course"] = cert.Enrollment.Course
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate verified!", response)
}
