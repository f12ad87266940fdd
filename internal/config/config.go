// Package config provides application configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/agrismart/internal/domain"
	"github.com/alexanderramin/agrismart/internal/llm"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	DBPath          string
	HTTPAddr        string
	CORSOrigins     []string
	SessionTTL      time.Duration
	DefaultLanguage domain.Language
	LLM             llm.LLMConfig
}

// LoadDotEnv loads variables from the given .env files (default ./.env)
// without overriding ones already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	dbPath := getEnv("AGRISMART_DB", "")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".agrismart", "agrismart.db")
	}

	cfg := &Config{
		DBPath:      dbPath,
		HTTPAddr:    getEnv("AGRISMART_HTTP_ADDR", ":8080"),
		CORSOrigins: splitList(getEnv("AGRISMART_CORS_ORIGINS", "*")),
		SessionTTL:  time.Duration(getEnvInt("AGRISMART_SESSION_TTL_MIN", 60)) * time.Minute,
		LLM:         llm.LoadConfig(),
	}

	lang, err := domain.ParseLanguage(getEnv("AGRISMART_LANG", "en"))
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: AGRISMART_LANG: %w", err)
	}
	cfg.DefaultLanguage = lang

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("AGRISMART_DB cannot be empty")
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("AGRISMART_HTTP_ADDR cannot be empty")
	}
	if len(c.CORSOrigins) == 0 {
		return fmt.Errorf("AGRISMART_CORS_ORIGINS cannot be empty")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("AGRISMART_SESSION_TTL_MIN must be > 0")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
