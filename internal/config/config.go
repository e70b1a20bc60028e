package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	AppEnv         string
	MongoURI       string
	MongoDB        string
	JWTSecret      string
	JWTExpireHours int
	FrontendURL    string

	// Identity provider session-exchange endpoint.
	AuthProviderURL string

	// Home scope for the dashboard's local/global partition.
	HomeCity    string
	HomeCountry string
	HomeLat     float64
	HomeLng     float64

	// Dashboard polling cadence and per-request budget.
	RefreshInterval time.Duration
	RequestTimeout  time.Duration

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		AppEnv:         getEnv("APP_ENV", "development"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "crisiswatch"),
		JWTSecret:      getEnv("JWT_SECRET", "secret"),
		JWTExpireHours: getEnvInt("JWT_EXPIRE_HOURS", 24),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000"),

		AuthProviderURL: getEnv("AUTH_PROVIDER_URL", "https://demobackend.emergentagent.com/auth/v1/env/oauth/session-data"),

		HomeCity:    getEnv("HOME_CITY", ""),
		HomeCountry: getEnv("HOME_COUNTRY", ""),
		HomeLat:     getEnvFloat("HOME_LAT", 0),
		HomeLng:     getEnvFloat("HOME_LNG", 0),

		RefreshInterval: getEnvDuration("DASHBOARD_REFRESH_INTERVAL", 30*time.Second),
		RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),

		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		CloudinaryFolder:    getEnv("CLOUDINARY_FOLDER", "crisiswatch"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
