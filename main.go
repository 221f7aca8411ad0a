package main

import (
	"protrack/config"
	"protrack/database"
	authRoutes "protrack/routers/authRoutes"
	notificationRoutes "protrack/routers/notificationRoutes"
	trainingRoutes "protrack/routers/trainingRoutes"
	"protrack/services"
	"protrack/utils"

	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	// Wire the notification and certificate side effects. Services stay
	// import-free of the transport implementations.
	services.SendMail = utils.SendEmail
	services.RenderCertificatePDF = utils.RenderAndStoreCertificate

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	trainingRoutes.SetupTrainingRoutes(app)
	trainingRoutes.SetupAdminRoutes(app)
	notificationRoutes.SetupNotificationRoutes(app)

	if config.AppConfig.EnableReminderCron {
		utils.StartReminderScheduler()
	}

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
