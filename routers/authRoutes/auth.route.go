package authRoutes

import (
	authControllers "protrack/controllers/auth"
	"protrack/middleware"
	authValidators "protrack/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)

	authGroup.Get("/profile", middleware.JWTMiddleware, authControllers.GetProfile)
	authGroup.Patch("/profile", middleware.JWTMiddleware, authControllers.UpdateProfile)
	authGroup.Post("/profile/picture", middleware.JWTMiddleware, authControllers.UploadProfilePicture)
}
