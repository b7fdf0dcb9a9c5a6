package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const dateOnlyLayout = "2006-01-02"

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	HTTPAddr string

	DBType     string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	Report ReportConfig

	SeedDemoData bool
}

// ReportConfig carries the report parameters that used to be literals in the
// original query set: the fixed reporting year, the recent-sales window, and
// an optional frozen reference date for that window.
type ReportConfig struct {
	DefaultYear   int
	WindowDays    int
	ReferenceDate *time.Time
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:     getenv("APP_SERVICE", "retailscope"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		DBType:      getenv("DATABASE_TYPE", "postgres"),
		DBHost:      getenv("DATABASE_HOST", "localhost"),
		DBPort:      getenv("DATABASE_PORT", "5432"),
		DBName:      getenv("DATABASE_NAME", "retailscope"),
		DBUser:      getenv("DATABASE_USER", "postgres"),
		DBPassword:  getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:   getenv("DATABASE_SSLMODE", "disable"),
		Report: ReportConfig{
			DefaultYear:   getenvInt("REPORT_DEFAULT_YEAR", 2013),
			WindowDays:    getenvInt("REPORT_WINDOW_DAYS", 30),
			ReferenceDate: getenvDate("REPORT_REFERENCE_DATE"),
		},
		SeedDemoData: getenvBool("SEED_DEMO_DATA", false),
	}

	return cfg
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvDate(key string) *time.Time {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(dateOnlyLayout, value)
	if err != nil {
		return nil
	}
	parsed = parsed.UTC()
	return &parsed
}
