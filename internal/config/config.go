package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	CORS     CORSConfig
	Mail     MailConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// CORSConfig lists the exact origins allowed to call the checkout endpoint
// cross-origin. Origins not in the list get no CORS grant at all.
type CORSConfig struct {
	AllowedOrigins []string
}

// MailConfig describes the upstream transactional-email API and the fixed
// identities used on every message. The recipient and sender come from
// configuration, never from the submission.
type MailConfig struct {
	APIURL    string
	To        string
	FromEmail string
	FromName  string
}

// Load reads configuration from environment variables.
// A local .env file is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{
				"https://limitless-llc.us",
				"https://sallamin.github.io",
				"http://localhost:3000",
				"http://localhost:5000",
			}),
		},
		Mail: MailConfig{
			APIURL:    getEnv("MAIL_API_URL", "https://api.mailchannels.net/tx/v1/send"),
			To:        getEnv("MAIL_TO", "orders@limitless-llc.us"),
			FromEmail: getEnv("MAIL_FROM_EMAIL", "no-reply@limitless-llc.us"),
			FromName:  getEnv("MAIL_FROM_NAME", "Limitless Parts Checkout"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin must be configured")
	}

	if c.Mail.APIURL == "" {
		return fmt.Errorf("MAIL_API_URL is required")
	}

	if c.Mail.To == "" {
		return fmt.Errorf("MAIL_TO is required")
	}

	if c.Mail.FromEmail == "" {
		return fmt.Errorf("MAIL_FROM_EMAIL is required")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
