package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/srgjo27/reservation_engine/internal/platform/database"
)

type Config struct {
	Port          string
	Storage       string
	Database      database.Config
	RedisAddr     string
	NATSURL       string
	JWTSecret     string
	PublicBaseURL string

	QRWindow        time.Duration
	DefaultTimezone string
	ResetHour       int
	StorageTimeout  time.Duration

	ReconcileCron   string
	AgingInterval   time.Duration
	RetentionMonths int

	LogFile string
}

// Load reads .env when present, then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("level=warn msg=\"failed to read .env\" err=%v", err)
	}

	return Config{
		Port:    readString("PORT", "8080"),
		Storage: strings.ToLower(readString("STORAGE", "postgres")),
		Database: database.Config{
			Host:     readString("DB_HOST", "localhost"),
			Port:     readString("DB_PORT", "5432"),
			User:     readString("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   readString("DB_NAME", "reservation_engine"),
			SSLMode:  os.Getenv("DB_SSLMODE"),
		},
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		NATSURL:       os.Getenv("NATS_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		PublicBaseURL: readString("PUBLIC_BASE_URL", "http://localhost:8080"),

		QRWindow:        readDuration("QR_WINDOW", 12*time.Hour),
		DefaultTimezone: readString("DEFAULT_TIMEZONE", "America/Guayaquil"),
		ResetHour:       readInt("BUSINESS_DAY_RESET_HOUR", 4),
		StorageTimeout:  readDuration("STORAGE_TIMEOUT", 2*time.Second),

		ReconcileCron:   readString("RECONCILE_CRON", "30 4 * * *"),
		AgingInterval:   readDuration("AGING_INTERVAL", 15*time.Minute),
		RetentionMonths: readInt("RETENTION_MONTHS", 0),

		LogFile: os.Getenv("LOG_FILE"),
	}
}

// Location falls back to UTC when the configured zone is unknown.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DefaultTimezone)
	if err != nil {
		log.Printf("level=warn msg=\"unknown timezone, using UTC\" timezone=%q", c.DefaultTimezone)
		return time.UTC
	}
	return loc
}

func readString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
