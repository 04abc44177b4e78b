package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort    string
	TemplatesPath string

	// Azure Speech credentials; both are mandatory and never defaulted
	AzureSpeechKey    string
	AzureSpeechRegion string
	SpeechVoice       string

	// SessionSecret signs session cookies. Generated per boot when unset,
	// which also invalidates old cookies, matching the in-memory sessions.
	SessionSecret []byte
	SessionIdle   time.Duration

	// AttemptRateLimit caps assessment submissions per client per minute
	AttemptRateLimit int
}

// Load reads configuration from a .env file (if present) and the
// environment. It errors rather than half-starting when the speech
// credentials are missing: without them no session is usable.
func Load() (*Config, error) {
	// .env is a development convenience; absence is not an error
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:        getEnv("PORT", "8080"),
		TemplatesPath:     getEnv("TEMPLATES_PATH", "./internal/templates"),
		AzureSpeechKey:    os.Getenv("AZURE_SPEECH_KEY"),
		AzureSpeechRegion: os.Getenv("AZURE_SPEECH_REGION"),
		SpeechVoice:       getEnv("SPEECH_VOICE", ""),
		SessionIdle:       24 * time.Hour,
		AttemptRateLimit:  getEnvInt("ATTEMPT_RATE_LIMIT", 20),
	}

	if cfg.AzureSpeechKey == "" {
		return nil, fmt.Errorf("AZURE_SPEECH_KEY is not set")
	}
	if cfg.AzureSpeechRegion == "" {
		return nil, fmt.Errorf("AZURE_SPEECH_REGION is not set")
	}

	if secret := os.Getenv("SESSION_SECRET"); secret != "" {
		cfg.SessionSecret = []byte(secret)
	} else {
		generated := make([]byte, 32)
		if _, err := rand.Read(generated); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
		cfg.SessionSecret = []byte(hex.EncodeToString(generated))
		log.Println("SESSION_SECRET not set, generated one for this run")
	}

	return cfg, nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
