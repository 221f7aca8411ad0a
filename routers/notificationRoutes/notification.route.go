package notificationRoutes

import (
	notificationControllers "protrack/controllers/notification"
	"protrack/middleware"
	trainingValidators "protrack/validators/training"

	"github.com/gofiber/fiber/v2"
)

func SetupNotificationRoutes(app *fiber.App) {
	notificationGroup := app.Group("/notifications", middleware.JWTMiddleware)

	notificationGroup.Get("", trainingValidators.Pagination(), notificationControllers.ListNotifications)
	notificationGroup.Get("/unread-count", notificationControllers.UnreadCount)
	notificationGroup.Patch("/read-all", notificationControllers.MarkAllNotificationsRead)
	notificationGroup.Patch("/:id/read", trainingValidators.IDParam("id", "notificationID"), notificationControllers.MarkNotificationRead)
	notificationGroup.Delete("/:id", trainingValidators.IDParam("id", "notificationID"), notificationControllers.DeleteNotification)

	notificationGroup.Get("/preferences", notificationControllers.GetPreferences)
	notificationGroup.Put("/preferences", trainingValidators.UpdatePreferences(), notificationControllers.UpdatePreferences)
}
