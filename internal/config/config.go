package config

import (
	"fmt"
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL connection and pool settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
	MinConns int
	MaxConns int
}

// URL returns the database connection string.
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// MailConfig holds SMTP relay settings for transactional email.
type MailConfig struct {
	Host       string
	Port       int
	User       string
	Password   string
	SenderName string
}

// Config holds all application configuration.
type Config struct {
	Database       DatabaseConfig
	Mail           MailConfig
	AMQPURL        string
	HTTPPort       string
	MigrationsPath string
}

// Load reads configuration from the environment. Call godotenv.Load()
// first if a .env file should be honored.
func Load() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			Name:     getEnv("DB_NAME", "omi_stitch"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MinConns: getEnvInt("DB_MIN_CONN", 1),
			MaxConns: getEnvInt("DB_MAX_CONN", 10),
		},
		Mail: MailConfig{
			Host:       getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:       getEnvInt("SMTP_PORT", 587),
			User:       getEnv("SMTP_USER", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SENDER_NAME", "OMI Global Productions"),
		},
		AMQPURL:        getEnv("AMQP_URL", ""),
		HTTPPort:       getEnv("PORT", "8080"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
