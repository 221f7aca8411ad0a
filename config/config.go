package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	EmailSender    string
	SendGridApiKey string
	EmailBackend   string // "sendgrid" or "console"

	SupabaseURL        string
	SupabaseKey        string
	ProfileBucket      string
	MaterialBucket     string
	CertificateBucket  string
	PdfRendererURL     string
	CertificatePrefix  string
	ReminderCronSpec   string
	ReminderAfterDays  int
	EnableReminderCron bool
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "protrack"),
		DBPort:     getEnv("DB_PORT", "5432"),

		EmailSender:    getEnv("EMAIL_SENDER", "noreply@protrack.local"),
		SendGridApiKey: getEnv("SENDGRID_API_KEY", ""),
		EmailBackend:   getEnv("EMAIL_BACKEND", "console"),

		SupabaseURL:       getEnv("SUPABASE_URL", ""),
		SupabaseKey:       getEnv("SUPABASE_KEY", ""),
		ProfileBucket:     getEnv("SUPABASE_PROFILE_BUCKET", "profilepic"),
		MaterialBucket:    getEnv("SUPABASE_MATERIAL_BUCKET", "Uploadfiles"),
		CertificateBucket: getEnv("SUPABASE_CERTIFICATE_BUCKET", "certificates"),
		PdfRendererURL:    getEnv("PDF_RENDERER_URL", ""),
		CertificatePrefix: getEnv("CERTIFICATE_PREFIX", "CERT"),

		ReminderCronSpec:   getEnv("REMINDER_CRON", "0 9 * * *"),
		ReminderAfterDays:  getEnvInt("REMINDER_AFTER_DAYS", 7),
		EnableReminderCron: getEnv("ENABLE_REMINDER_CRON", "true") == "true",
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.EmailBackend == "sendgrid" && AppConfig.SendGridApiKey == "" {
		log.Println("Warning: EMAIL_BACKEND=sendgrid but SENDGRID_API_KEY is empty.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
