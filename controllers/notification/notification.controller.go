package controllers

import (
	"protrack/database"
	"protrack/middleware"
	"protrack/models"
	"protrack/services"

	"github.com/gofiber/fiber/v2"
)

// ListNotifications returns the caller's notifications, newest first
func ListNotifications(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	page := c.Locals("page").(int)
	limit := c.Locals("limit").(int)
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Notification{}).
		Where("user_id = ? AND is_deleted = ?", userID, false)

	if c.Query("unread") == "true" {
		db = db.Where("is_read = ?", false)
	}

	var total int64
	db.Count(&total)

	var notifications []models.Notification
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&notifications).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched successfully!", fiber.Map{
		"notifications": notifications,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// UnreadCount is the lightweight poll endpoint for the notification badge
func UnreadCount(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var count int64
	database.Database.Db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ? AND is_deleted = ?", userID, false, false).
		Count(&count)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unread count fetched successfully!", fiber.Map{
		"unread": count,
	})
}

func MarkNotificationRead(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	notificationID := c.Locals("notificationID").(int)

	var notification models.Notification
	if err := database.Database.Db.Where("id = ? AND user_id = ? AND is_deleted = ?", notificationID, userID, false).First(&notification).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found!", nil)
	}

	notification.IsRead = true
	if err := database.Database.Db.Save(&notification).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update notification!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification marked as read!", notification)
}

func MarkAllNotificationsRead(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if err := database.Database.Db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ? AND is_deleted = ?", userID, false, false).
		Update("is_read", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "All notifications marked as read!", nil)
}

func DeleteNotification(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	notificationID := c.Locals("notificationID").(int)

	var notification models.Notification
	if err := database.Database.Db.Where("id = ? AND user_id = ? AND is_deleted = ?", notificationID, userID, false).First(&notification).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found!", nil)
	}

	notification.IsDeleted = true
	if err := database.Database.Db.Save(&notification).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete notification!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification deleted!", nil)
}

// GetPreferences returns the caller's notification preference flags,
// creating the default row on first call
func GetPreferences(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	prefs, err := services.EnsurePreferences(database.Database.Db, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch preferences!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Preferences fetched successfully!", prefs)
}

// UpdatePreferences applies the submitted toggles; omitted fields keep
// their current value
func UpdatePreferences(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedPreferences").(*struct {
		NotifyOnEnrollment  *bool `json:"notify_on_enrollment"`
		NotifyOnCompletion  *bool `json:"notify_on_completion"`
		NotifyOnCertificate *bool `json:"notify_on_certificate"`
		NotifyOnReminder    *bool `json:"notify_on_reminder"`
		EmailOnEnrollment   *bool `json:"email_on_enrollment"`
		EmailOnCompletion   *bool `json:"email_on_completion"`
		EmailOnCertificate  *bool `json:"email_on_certificate"`
		EmailOnReminder     *bool `json:"email_on_reminder"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
	}

	prefs, err := services.EnsurePreferences(database.Database.Db, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch preferences!", nil)
	}

	if reqData.NotifyOnEnrollment != nil {
		prefs.NotifyOnEnrollment = *reqData.NotifyOnEnrollment
	}
	if reqData.NotifyOnCompletion != nil {
		prefs.NotifyOnCompletion = *reqData.NotifyOnCompletion
	}
	if reqData.NotifyOnCertificate != nil {
		prefs.NotifyOnCertificate = *reqData.NotifyOnCertificate
	}
	if reqData.NotifyOnReminder != nil {
		prefs.NotifyOnReminder = *reqData.NotifyOnReminder
	}
	if reqData.EmailOnEnrollment != nil {
		prefs.EmailOnEnrollment = *reqData.EmailOnEnrollment
	}
	if reqData.EmailOnCompletion != nil {
		prefs.EmailOnCompletion = *reqData.EmailOnCompletion
	}
	if reqData.EmailOnCertificate != nil {
		prefs.EmailOnCertificate = *reqData.EmailOnCertificate
	}
	if reqData.EmailOnReminder != nil {
		prefs.EmailOnReminder = *reqData.EmailOnReminder
	}

	if err := database.Database.Db.Save(prefs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update preferences!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Preferences updated successfully!", prefs)
}
