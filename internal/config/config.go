package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the server configuration read from the environment.
type Config struct {
	DatabaseURL  string
	Port         string
	TemplateDir  string
	StaticDir    string
	SecureCookie bool
}

// Load reads configuration from the environment, consulting a .env file if
// one is present. DATABASE_URL is required; everything else has defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL environment variable is not set")
	}

	return &Config{
		DatabaseURL:  databaseURL,
		Port:         getEnv("PORT", "8080"),
		TemplateDir:  getEnv("TEMPLATE_DIR", "web/templates"),
		StaticDir:    getEnv("STATIC_DIR", "web/static"),
		SecureCookie: os.Getenv("SECURE_COOKIE") == "true",
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}
