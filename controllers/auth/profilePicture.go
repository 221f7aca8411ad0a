package controllers

import (
	"protrack/config"
	"protrack/database"
	"protrack/middleware"
	"protrack/models"
	"protrack/utils"

	"github.com/gofiber/fiber/v2"
)

// UploadProfilePicture stores the uploaded image in the profile bucket
// and saves its public URL on the user
func UploadProfilePicture(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	file, err := c.FormFile("profile_picture")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No file uploaded!", nil)
	}

	// 5 MB cap for profile pictures
	if file.Size > 5*1024*1024 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File too large! Maximum size is 5MB.", nil)
	}

	storage := utils.NewStorageClient()
	url, err := storage.UploadMultipart(file, config.AppConfig.ProfileBucket, "profiles")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload profile picture!", nil)
	}

	user.ProfilePictureURL = url
	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save profile picture!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile picture uploaded successfully!", fiber.Map{
		"profile_picture_url": url,
	})
}
