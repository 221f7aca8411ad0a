package controllers

import (
	"log"
	"protrack/config"
	"protrack/database"
	"protrack/middleware"
	"protrack/models"
	"protrack/services"
	adminValidator "protrack/validators/admin"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// ListUsers lists users with optional role and search filters
func ListUsers(c *fiber.Ctx) error {
	page := c.Locals("page").(int)
	limit := c.Locals("limit").(int)
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.User{}).Where("is_deleted = ?", false)

	if role := c.Query("role"); role != "" {
		db = db.Where("role = ?", role)
	}
	if search := c.Query("search"); search != "" {
		db = db.Where("name LIKE ? OR email LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	db.Count(&total)

	var users []models.User
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// CreateUser creates an account on a user's behalf. Unlike signup this
// may create any role, including admins.
func CreateUser(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUser").(*adminValidator.UserRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
	}
	if reqData.Password == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Password is required!", nil)
	}

	var existing models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email already registered!", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create user!", nil)
	}

	role := reqData.Role
	if role == "" {
		role = models.RoleStudent
	}

	user := models.User{
		Name:       reqData.Name,
		Email:      reqData.Email,
		Password:   string(hashed),
		Role:       role,
		Program:    reqData.Program,
		Department: reqData.Department,
		Position:   reqData.Position,
	}
	if err := database.Database.Db.Create(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create user!", nil)
	}

	if _, err := services.EnsurePreferences(database.Database.Db, user.ID); err != nil {
		log.Printf("[ADMIN] failed to create preferences for user %d: %v", user.ID, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User created successfully!", user)
}

func UpdateUser(c *fiber.Ctx) error {
	userID := c.Locals("targetUserID").(int)

	reqData, ok := c.Locals("validatedUser").(*adminValidator.UserRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if reqData.Email != user.Email {
		var existing models.User
		if err := database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&existing).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email already registered!", nil)
		}
	}

	user.Name = reqData.Name
	user.Email = reqData.Email
	user.Program = reqData.Program
	user.Department = reqData.Department
	user.Position = reqData.Position
	if reqData.Role != "" {
		user.Role = reqData.Role
	}
	if reqData.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
		}
		user.Password = string(hashed)
	}

	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated successfully!", user)
}

// ToggleUserActive flips the account on or off. Deactivated users fail
// the role middleware's active check on their next request.
func ToggleUserActive(c *fiber.Ctx) error {
	adminID, _ := c.Locals("userId").(uint)
	userID := c.Locals("targetUserID").(int)

	if uint(userID) == adminID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot deactivate your own account!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.IsActive = !user.IsActive
	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	message := "User deactivated successfully!"
	if user.IsActive {
		message = "User activated successfully!"
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, user)
}

func DeleteUser(c *fiber.Ctx) error {
	adminID, _ := c.Locals("userId").(uint)
	userID := c.Locals("targetUserID").(int)

	if uint(userID) == adminID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot delete your own account!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.IsDeleted = true
	user.IsActive = false
	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully!", nil)
}
