package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the server configuration read from the environment.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	DatabaseURL    string
	DBMaxConns     int
	MigrateOnStart bool

	JWTSecret string
	JWTTTL    time.Duration

	MediaBackend   string
	MediaRoot      string
	GCSBucket      string
	GCSCredentials string
	QRLogoPath     string
	PublicBaseURL  string

	RedisAddr         string
	RedisPassword     string
	FeedbackMarkerTTL time.Duration

	KafkaBrokers    []string
	KafkaTopic      string
	KafkaCodesTopic string

	CORSOrigins []string

	PhoneVerification bool
}

func loadConfig() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return Config{
		Port:     getEnv("APP_PORT", "8080"),
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL:    mustEnv("DATABASE_URL"),
		DBMaxConns:     getEnvInt("DB_MAX_CONNS", 10),
		MigrateOnStart: getEnvBool("MIGRATE_ON_START", false),

		JWTSecret: getEnv("JWT_SECRET", "change-me-in-production"),
		JWTTTL:    getEnvDuration("JWT_TTL", 24*time.Hour),

		MediaBackend:   getEnv("MEDIA_BACKEND", "local"),
		MediaRoot:      getEnv("MEDIA_ROOT", "./media"),
		GCSBucket:      getEnv("GCS_BUCKET", ""),
		GCSCredentials: getEnv("GCS_CREDENTIALS_FILE", ""),
		QRLogoPath:     getEnv("QR_LOGO_PATH", ""),
		PublicBaseURL:  strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),

		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		FeedbackMarkerTTL: getEnvDuration("FEEDBACK_MARKER_TTL", 30*24*time.Hour),

		KafkaBrokers:    getEnvList("KAFKA_BROKERS"),
		KafkaTopic:      getEnv("KAFKA_TOPIC", ""),
		KafkaCodesTopic: getEnv("KAFKA_CODES_TOPIC", ""),

		CORSOrigins: getEnvList("CORS_ORIGINS"),

		PhoneVerification: getEnvBool("PHONE_VERIFICATION_ENABLED", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
