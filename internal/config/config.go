package config

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	Port    string
	GinMode string

	JWTSecret    string
	OpenAIAPIKey string

	StorageBackend string // "s3" or "local"
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3PublicURL    string
	LocalMediaDir  string
	LocalMediaURL  string

	LogLevel string
}

// Load reads configuration from the environment. A .env file is honored
// when present so local development does not need exported variables.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, relying on environment variables")
	}

	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "mysql"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "reviewuser"),
		DBPassword: getEnv("DB_PASSWORD", "reviewpassword"),
		DBName:     getEnv("DB_NAME", "creator_review"),

		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		JWTSecret:    getEnv("JWT_SECRET", "default-secret-key-change-me"),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),

		StorageBackend: getEnv("STORAGE_BACKEND", "local"),
		S3Bucket:       getEnv("S3_BUCKET", ""),
		S3Region:       getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:     getEnv("S3_ENDPOINT", ""),
		S3PublicURL:    getEnv("S3_PUBLIC_URL", ""),
		LocalMediaDir:  getEnv("LOCAL_MEDIA_DIR", "./media"),
		LocalMediaURL:  getEnv("LOCAL_MEDIA_URL", "/media"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
