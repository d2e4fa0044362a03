package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// BackendConfig holds the Mattermost connection settings.
type BackendConfig struct {
	Name         string
	APIURL       string
	WSURL        string
	Token        string
	DebugChannel string
}

// IsConfigured returns true if all required backend configuration is present
func (c BackendConfig) IsConfigured() bool {
	return c.APIURL != "" &&
		c.WSURL != "" &&
		c.Token != "" &&
		c.DebugChannel != ""
	// Note: Name is optional, it only decorates the startup announcement
}

type AppConfig struct {
	// Core configuration (always required)
	DatabaseURL    string
	DatabaseSchema string

	// Port for the status endpoint; empty disables the HTTP surface
	Port string

	// TriggerRepeatDelay is the per-[channel, trigger] anti-spam window
	TriggerRepeatDelay time.Duration

	BackendConfig BackendConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	databaseURL, err := getEnvRequired("DB_URL")
	if err != nil {
		return nil, err
	}

	databaseSchema, err := getEnvRequired("DB_SCHEMA")
	if err != nil {
		return nil, err
	}

	repeatDelaySeconds, err := strconv.Atoi(getEnvWithDefault("TRIGGER_REPEAT_DELAY_SECONDS", "120"))
	if err != nil {
		return nil, fmt.Errorf("TRIGGER_REPEAT_DELAY_SECONDS must be a number: %w", err)
	}

	config := &AppConfig{
		DatabaseURL:        databaseURL,
		DatabaseSchema:     databaseSchema,
		Port:               getEnvWithDefault("PORT", ""),
		TriggerRepeatDelay: time.Duration(repeatDelaySeconds) * time.Second,

		BackendConfig: BackendConfig{
			Name:         getEnvWithDefault("BOT_NAME", "mmbot"),
			APIURL:       os.Getenv("BOT_API_URL"),
			WSURL:        os.Getenv("BOT_WS_URL"),
			Token:        os.Getenv("BOT_TOKEN"),
			DebugChannel: os.Getenv("BOT_DEBUG_CHAN"),
		},
	}

	if !config.BackendConfig.IsConfigured() {
		return nil, fmt.Errorf(
			"backend is not fully configured (need BOT_API_URL, BOT_WS_URL, BOT_TOKEN, BOT_DEBUG_CHAN)",
		)
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
