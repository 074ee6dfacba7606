package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DataDir      string // diary files live here
	GeminiAPIKey string
	GeminiModel  string
	LLMTimeout   time.Duration
	SESEmail     string // verified SES sender; empty disables email
	SummaryTime  string // "HH:MM" local time for the daily summary job
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found, using environment as-is")
	}

	cfg := &Config{
		Port:         getenv("PORT", "8080"),
		DataDir:      getenv("DATA_DIR", "data"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getenv("GEMINI_MODEL", "gemini-2.5-pro"),
		LLMTimeout:   time.Duration(getenvInt("LLM_TIMEOUT_SECONDS", 120)) * time.Second,
		SESEmail:     os.Getenv("SES_EMAIL"),
		SummaryTime:  getenv("SUMMARY_TIME", "20:00"),
	}

	// A missing key degrades chat to an error message; it must not crash
	// the service. The diary and summaries work without it.
	if cfg.GeminiAPIKey == "" {
		log.Printf("GEMINI_API_KEY not set: chat and image analysis will be unavailable")
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
