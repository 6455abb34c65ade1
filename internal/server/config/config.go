package config

import (
	"os"
	"strconv"
)

// Config holds every environment-sourced setting. It is built once at
// startup and passed explicitly into each component; nothing re-reads the
// environment or mutates it per request.
type Config struct {
	Port string

	UploadDir     string
	MaxUploadSize string // parsed by the body-limit middleware; "10Mi" is 10 MiB ("10M" would be 10^7 bytes)
	NamingScheme  string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	RateLimitRPS   float64
	RateLimitBurst int
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "3000"),
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadSize: getEnv("MAX_UPLOAD_SIZE", "10Mi"),
		NamingScheme:  getEnv("STORAGE_NAMING", "timestamp"),

		// The SMTP defaults are non-functional placeholders, not working
		// credentials. Deployments must set all four.
		SMTPHost: getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort: getEnvInt("SMTP_PORT", 587),
		SMTPUser: getEnv("SMTP_USER", "your-email@gmail.com"),
		SMTPPass: getEnv("SMTP_PASS", "your-app-password"),

		RateLimitRPS:   getEnvFloat64("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 20),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat64(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}
