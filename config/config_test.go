package config

import (
	"testing"
)

func TestValidate(t *testing.T) {
	valid := Config{
		LLM:       LLMConfig{Provider: "openai"},
		YouTube:   YouTubeConfig{YtDlpPath: "yt-dlp", AudioDir: "audio"},
		RateLimit: RateLimitConfig{SummarizePerMinute: 3},
		Session:   SessionConfig{TTLMinutes: 60},
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing provider",
			mutate:  func(c *Config) { c.LLM.Provider = "" },
			wantErr: true,
		},
		{
			name:    "missing yt-dlp path",
			mutate:  func(c *Config) { c.YouTube.YtDlpPath = "" },
			wantErr: true,
		},
		{
			name:    "missing audio dir",
			mutate:  func(c *Config) { c.YouTube.AudioDir = "" },
			wantErr: true,
		},
		{
			name:    "zero summarize limit",
			mutate:  func(c *Config) { c.RateLimit.SummarizePerMinute = 0 },
			wantErr: true,
		},
		{
			name:    "zero session ttl",
			mutate:  func(c *Config) { c.Session.TTLMinutes = 0 },
			wantErr: true,
		},
		{
			name: "test mode skips checks",
			mutate: func(c *Config) {
				c.TestMode = true
				c.LLM.Provider = ""
				c.YouTube.YtDlpPath = ""
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TEST_MODE", "true")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.LLM.Provider != "openai" {
		t.Errorf("Provider = %q, want openai", cfg.LLM.Provider)
	}
	if cfg.RateLimit.SummarizePerMinute != 3 {
		t.Errorf("SummarizePerMinute = %d, want 3", cfg.RateLimit.SummarizePerMinute)
	}
	if !cfg.TestMode {
		t.Error("TestMode = false, want true")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "google")
	t.Setenv("LLM_MODEL", "gemini-1.5-flash")
	t.Setenv("SUMMARIZE_PER_MINUTE", "7")
	t.Setenv("AUDIO_DIR", "/tmp/vidbrief-audio")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LLM.Provider != "google" {
		t.Errorf("Provider = %q, want google", cfg.LLM.Provider)
	}
	if cfg.LLM.Model != "gemini-1.5-flash" {
		t.Errorf("Model = %q", cfg.LLM.Model)
	}
	if cfg.RateLimit.SummarizePerMinute != 7 {
		t.Errorf("SummarizePerMinute = %d, want 7", cfg.RateLimit.SummarizePerMinute)
	}
	if cfg.YouTube.AudioDir != "/tmp/vidbrief-audio" {
		t.Errorf("AudioDir = %q", cfg.YouTube.AudioDir)
	}
}
