// Package config loads the service configuration from a YAML file with
// environment-variable overrides. A missing file is not an error; the
// defaults run a demo instance with the seeded menu and no LLM key.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	SeedMenu    bool   `yaml:"seed_menu"`
	OpenAIKey   string `yaml:"openai_key"`
	LLMModel    string `yaml:"llm_model"`
	LogLevel    string `yaml:"log_level"`
}

// Default returns the configuration used when no file or env is present.
func Default() Config {
	return Config{
		Port:        8080,
		MetricsPort: 9090,
		SeedMenu:    true,
		LLMModel:    "gpt-4o-mini",
		LogLevel:    "info",
	}
}

// Load reads the YAML file at path, then applies environment overrides.
// Environment values are also picked up from a .env file when one exists.
func Load(path string) (Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("failed to read config file: %w", err)
			}
			log.Printf("config file %s not found, using defaults", path)
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.Port = getIntEnv("TABLESIDE_PORT", cfg.Port)
	cfg.MetricsPort = getIntEnv("TABLESIDE_METRICS_PORT", cfg.MetricsPort)
	cfg.OpenAIKey = getEnvOrDefault("OPENAI_API_KEY", cfg.OpenAIKey)
	cfg.LLMModel = getEnvOrDefault("TABLESIDE_LLM_MODEL", cfg.LLMModel)
	cfg.LogLevel = getEnvOrDefault("TABLESIDE_LOG_LEVEL", cfg.LogLevel)

	if cfg.Port <= 0 || cfg.MetricsPort <= 0 {
		return cfg, fmt.Errorf("ports must be positive, got %d and %d", cfg.Port, cfg.MetricsPort)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
