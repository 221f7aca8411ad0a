package controllers

import (
	"protrack/database"
	"protrack/middleware"
	"protrack/models/training"
	"protrack/services"
	adminValidator "protrack/validators/admin"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ListCertificates lists certificates with optional status filter.
// Defaults to pending drafts, the admin approval queue.
func ListCertificates(c *fiber.Ctx) error {
	page := c.Locals("page").(int)
	limit := c.Locals("limit").(int)
	offset := (page - 1) * limit

	status := c.Query("status", training.CertDraft)

	db := database.Database.Db.Model(&training.Certificate{}).Where("is_deleted = ?", false).
		Preload("Enrollment.Course")
	if status != "all" {
		db = db.Where("status = ?", status)
	}

	var total int64
	db.Count(&total)

	var certificates []training.Certificate
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certificates,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// ApproveCertificate issues a draft certificate, with an optional
// expiry date
func ApproveCertificate(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certificateID := c.Locals("certificateID").(int)

	reqData, ok := c.Locals("validatedApproval").(*adminValidator.ApproveCertificateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
	}

	var expiry *time.Time
	if reqData.ExpiryDate != "" {
		parsed, err := time.Parse("2006-01-02", reqData.ExpiryDate)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid expiry date!", nil)
		}
		expiry = &parsed
	}

	cert, err := services.ApproveCertificate(database.Database.Db, adminID, uint(certificateID), expiry)
	if err != nil {
		switch err {
		case gorm.ErrRecordNotFound:
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
		case services.ErrNotDraft:
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Only draft certificates can be approved!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve certificate!", nil)
		}
	}

	if reqData.Notes != "" {
		cert.Notes = reqData.Notes
		database.Database.Db.Save(cert)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate approved successfully!", cert)
}

func RevokeCertificate(c *fiber.Ctx) error {
	certificateID := c.Locals("certificateID").(int)

	cert, err := services.RevokeCertificate(database.Database.Db, uint(certificateID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to revoke certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate revoked successfully!", cert)
}
