package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries all runtime configuration, read once at startup.
type Config struct {
	ServerPort string

	// MySQL
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// Redis (optional; the server degrades to DB-only when unreachable)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Rate limiting for answer submission
	SubmitRateLimit int
	SubmitBurst     int

	Environment string
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present (local dev).
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8090"),
		DBUser:          getEnv("DB_USER", "polluser"),
		DBPassword:      getEnv("DB_PASSWORD", "pollpassword"),
		DBHost:          getEnv("DB_HOST", "mysql"),
		DBPort:          getEnv("DB_PORT", "3306"),
		DBName:          getEnv("DB_NAME", "pollsdb"),
		RedisAddr:       getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		SubmitRateLimit: getEnvInt("SUBMIT_RATE_LIMIT", 50),
		SubmitBurst:     getEnvInt("SUBMIT_BURST", 100),
		Environment:     getEnv("ENVIRONMENT", "development"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, fallback)
		return fallback
	}
	return n
}
