package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	LLM       LLMConfig
	YouTube   YouTubeConfig
	RateLimit RateLimitConfig
	Session   SessionConfig
	Janitor   JanitorConfig
	TestMode  bool
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
	TemplateGlob string
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LLMConfig selects the language model backend for the process lifetime.
type LLMConfig struct {
	Provider  string // "openai" or "google"/"gemini"
	Model     string // backend model name; empty uses the provider default
	OpenAIKey string
	GoogleKey string
}

// YouTubeConfig holds video source settings.
type YouTubeConfig struct {
	APIKey         string // Data API key; when empty, metadata comes from yt-dlp
	YtDlpPath      string
	AudioDir       string
	CallTimeoutSec int // timeout per yt-dlp invocation and caption fetch
}

// RateLimitConfig throttles the summarize endpoint and the whole surface.
type RateLimitConfig struct {
	SummarizePerMinute int // per-caller limit on POST /summarize
	GlobalRPS          float64
	GlobalBurst        int
}

// SessionConfig holds session record retention settings.
type SessionConfig struct {
	TTLMinutes int
}

// JanitorConfig controls cleanup of downloaded audio files.
type JanitorConfig struct {
	SweepIntervalMin int
	MaxAgeMin        int
}

// Load reads configuration from environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvInt("READ_TIMEOUT_SEC", 30),
			WriteTimeout: getEnvInt("WRITE_TIMEOUT_SEC", 120),
			TemplateGlob: getEnv("TEMPLATE_GLOB", "web/templates/*.html"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		LLM: LLMConfig{
			Provider:  getEnv("LLM_PROVIDER", "openai"),
			Model:     getEnv("LLM_MODEL", ""),
			OpenAIKey: getEnv("OPENAI_API_KEY", ""),
			GoogleKey: getEnv("GOOGLE_API_KEY", ""),
		},
		YouTube: YouTubeConfig{
			APIKey:         getEnv("YOUTUBE_API_KEY", ""),
			YtDlpPath:      getEnv("YTDLP_PATH", "yt-dlp"),
			AudioDir:       getEnv("AUDIO_DIR", "audio"),
			CallTimeoutSec: getEnvInt("YOUTUBE_CALL_TIMEOUT_SEC", 120),
		},
		RateLimit: RateLimitConfig{
			SummarizePerMinute: getEnvInt("SUMMARIZE_PER_MINUTE", 3),
			GlobalRPS:          getEnvFloat("GLOBAL_RPS", 5),
			GlobalBurst:        getEnvInt("GLOBAL_BURST", 10),
		},
		Session: SessionConfig{
			TTLMinutes: getEnvInt("SESSION_TTL_MIN", 60),
		},
		Janitor: JanitorConfig{
			SweepIntervalMin: getEnvInt("AUDIO_SWEEP_INTERVAL_MIN", 30),
			MaxAgeMin:        getEnvInt("AUDIO_MAX_AGE_MIN", 120),
		},
		TestMode: getEnv("TEST_MODE", "") == "true",
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the process cannot run with. Provider name
// validity is checked by the llm factory at startup.
func (c *Config) Validate() error {
	if c.TestMode {
		return nil // canned backend, no credentials or binaries needed
	}
	if c.LLM.Provider == "" {
		return fmt.Errorf("LLM_PROVIDER is required")
	}
	if c.YouTube.YtDlpPath == "" {
		return fmt.Errorf("YTDLP_PATH is required")
	}
	if c.YouTube.AudioDir == "" {
		return fmt.Errorf("AUDIO_DIR is required")
	}
	if c.RateLimit.SummarizePerMinute <= 0 {
		return fmt.Errorf("SUMMARIZE_PER_MINUTE must be positive")
	}
	if c.Session.TTLMinutes <= 0 {
		return fmt.Errorf("SESSION_TTL_MIN must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
