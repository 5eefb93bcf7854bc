package config

import (
	"fmt"
	"os"
)

// Config holds application configuration
type Config struct {
	Port     string
	DBConn   string
	LogLevel string
	APIToken string
}

// NewConfig loads configuration from environment variables. DB_CONN wins when
// set; otherwise the connection string is assembled from the individual
// DB_HOST/DB_PORT/DB_USER/DB_PASSWORD/DB_NAME variables (Docker friendly).
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		DBConn:   os.Getenv("DB_CONN"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		APIToken: getEnv("API_TOKEN", "dev-token"),
	}

	if cfg.DBConn == "" {
		host := getEnv("DB_HOST", "localhost")
		port := getEnv("DB_PORT", "5432")
		user := getEnv("DB_USER", "postgres")
		password := getEnv("DB_PASSWORD", "postgres")
		dbname := getEnv("DB_NAME", "balancecal")

		cfg.DBConn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, password, dbname)
	}

	if cfg.APIToken == "" {
		return nil, fmt.Errorf("API_TOKEN is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
