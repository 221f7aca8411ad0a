package database

import (
	"fmt"
	"log"
	"os"
	"protrack/config"
	"protrack/models"
	"protrack/models/training"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes a connection to PostgreSQL
func ConnectDb() {
	cfg := config.AppConfig

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		os.Exit(2)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	runMigrations(db)

	// Save database instance globally
	Database = DbInstance{Db: db}
}

// runMigrations performs database migrations
func runMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	if err := db.AutoMigrate(Models()...); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully.")
}

// Models lists every persisted model. Shared with the test helpers so
// the SQLite test schema stays in sync with production migrations.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Notification{},
		&models.NotificationPreference{},
		&training.TrainingCategory{},
		&training.TrainingCourse{},
		&training.TrainingSession{},
		&training.TrainingMaterial{},
		&training.MaterialCompletion{},
		&training.Enrollment{},
		&training.Certificate{},
		&training.Quiz{},
		&training.QuizQuestion{},
		&training.QuizChoice{},
		&training.QuizAttempt{},
	}
}
