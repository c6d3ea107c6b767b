package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/workpoint-hq/attendance-console/internal/domain/attendance"
	"github.com/workpoint-hq/attendance-console/internal/domain/timecode"
)

type Config struct {
	App    AppConfig
	HRAPI  HRAPIConfig
	Policy PolicyConfig
	CORS   CORSConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// HRAPIConfig holds the upstream HR API connection settings
type HRAPIConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// PolicyConfig holds the attendance policy knobs
type PolicyConfig struct {
	OfficialStart string
	GraceMinutes  int
	OffStatuses   []string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// .env is a development convenience; in deployment the environment is real
	_ = godotenv.Load()

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// HR API configuration
	timeout, err := time.ParseDuration(getEnv("HR_API_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HR_API_TIMEOUT: %w", err)
	}

	config.HRAPI = HRAPIConfig{
		BaseURL: getEnv("HR_API_BASE_URL", ""),
		Token:   getEnv("HR_API_TOKEN", ""),
		Timeout: timeout,
	}

	// Policy configuration
	graceMinutes, err := strconv.Atoi(getEnv("GRACE_MINUTES", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid GRACE_MINUTES: %w", err)
	}

	config.Policy = PolicyConfig{
		OfficialStart: getEnv("OFFICIAL_START", "09:00"),
		GraceMinutes:  graceMinutes,
		OffStatuses:   getEnvSlice("OFF_STATUSES"),
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}
	if len(config.CORS.AllowedOrigins) == 0 {
		config.CORS.AllowedOrigins = []string{"http://localhost:5173"}
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.HRAPI.BaseURL == "" {
		return fmt.Errorf("HR_API_BASE_URL is required")
	}
	if _, ok := timecode.Parse(c.Policy.OfficialStart); !ok {
		return fmt.Errorf("OFFICIAL_START must be a valid HH:MM time")
	}
	if c.Policy.GraceMinutes < 0 {
		return fmt.Errorf("GRACE_MINUTES must not be negative")
	}
	for _, s := range c.Policy.OffStatuses {
		if !attendance.IsKnownStatus(attendance.Status(s)) {
			return fmt.Errorf("OFF_STATUSES contains unknown status %q", s)
		}
	}
	return nil
}

// OfficialStartTime returns the configured official start as a parsed time.
func (c *Config) OfficialStartTime() timecode.TimeCode {
	start, _ := timecode.Parse(c.Policy.OfficialStart)
	return start
}

// OffStatusSet returns the configured off statuses, or the default set when
// none are configured.
func (c *Config) OffStatusSet() attendance.OffStatusSet {
	if len(c.Policy.OffStatuses) == 0 {
		return nil
	}
	statuses := make([]attendance.Status, 0, len(c.Policy.OffStatuses))
	for _, s := range c.Policy.OffStatuses {
		statuses = append(statuses, attendance.Status(s))
	}
	return attendance.NewOffStatusSet(statuses...)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return nil
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
