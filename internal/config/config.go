package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"pdf-book-reader/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort        string
	MaxFileSize       int64
	LogLevel          string
	PageTurnPreDelay  time.Duration
	PageTurnPostDelay time.Duration
	LoadTimeout       time.Duration
	RenderDPI         float64
	AllowedOrigins    []string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:        getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		MaxFileSize:       getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		LogLevel:          getEnvOrDefault("LOG_LEVEL", "info"),
		PageTurnPreDelay:  getEnvDurationOrDefault("PAGE_TURN_PRE_DELAY", 200*time.Millisecond),
		PageTurnPostDelay: getEnvDurationOrDefault("PAGE_TURN_POST_DELAY", 300*time.Millisecond),
		LoadTimeout:       getEnvDurationOrDefault("LOAD_TIMEOUT", 10*time.Second),
		RenderDPI:         getEnvFloatOrDefault("RENDER_DPI", 96),
		AllowedOrigins: getEnvListOrDefault("ALLOWED_ORIGINS", []string{
			"http://localhost:5173",
			"http://localhost:4173",
			"http://localhost:3000",
		}),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetMaxFileSize returns the maximum allowed file size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetPageTurnPreDelay returns how long a page turn animates before the viewer jumps
func (c *AppConfig) GetPageTurnPreDelay() time.Duration {
	return c.PageTurnPreDelay
}

// GetPageTurnPostDelay returns how long a page turn settles after the jump
func (c *AppConfig) GetPageTurnPostDelay() time.Duration {
	return c.PageTurnPostDelay
}

// GetLoadTimeout returns how long the viewer may take to report a page count
func (c *AppConfig) GetLoadTimeout() time.Duration {
	return c.LoadTimeout
}

// GetRenderDPI returns the resolution used for page images
func (c *AppConfig) GetRenderDPI() float64 {
	return c.RenderDPI
}

// GetAllowedOrigins returns the CORS origin allow-list
func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Durations accept Go syntax ("250ms") or a bare number of milliseconds.
func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d >= 0 {
		return d
	}
	if ms, err := strconv.ParseInt(value, 10, 64); err == nil && ms >= 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
