package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		AI: AIConfig{
			Provider: "gemini",
			Model:    "gemini-2.5-flash",
			Timeout:  120 * time.Second,
			APIKey:   "test-key",
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: "8080",
		},
		App: AppConfig{
			LogLevel:         "info",
			DefaultFormat:    "text",
			SupportedFormats: []string{"json", "text", "markdown"},
			MaxFileSize:      10 * 1024 * 1024,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid config",
			mutate:      func(c *Config) {},
			expectError: false,
		},
		{
			name:        "missing API key",
			mutate:      func(c *Config) { c.AI.APIKey = "" },
			expectError: true,
			errorMsg:    "HIREAI_AI_APIKEY",
		},
		{
			name:        "non-positive timeout",
			mutate:      func(c *Config) { c.AI.Timeout = 0 },
			expectError: true,
			errorMsg:    "timeout must be positive",
		},
		{
			name:        "missing port",
			mutate:      func(c *Config) { c.Server.Port = "" },
			expectError: true,
			errorMsg:    "server port is required",
		},
		{
			name:        "unsupported default format",
			mutate:      func(c *Config) { c.App.DefaultFormat = "yaml" },
			expectError: true,
			errorMsg:    "invalid default format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTLSConfig(t *testing.T) {
	tests := []struct {
		name        string
		tls         TLSConfig
		expectError bool
		errorMsg    string
	}{
		{
			name:        "empty mode",
			tls:         TLSConfig{},
			expectError: false,
		},
		{
			name:        "disabled mode",
			tls:         TLSConfig{Mode: "disabled"},
			expectError: false,
		},
		{
			name: "server mode valid",
			tls: TLSConfig{
				Mode:     "server",
				CertFile: "/path/to/cert.pem",
				KeyFile:  "/path/to/key.pem",
			},
			expectError: false,
		},
		{
			name:        "server mode missing cert",
			tls:         TLSConfig{Mode: "server", KeyFile: "/path/to/key.pem"},
			expectError: true,
			errorMsg:    "requires certFile and keyFile",
		},
		{
			name:        "unsupported mode",
			tls:         TLSConfig{Mode: "mutual"},
			expectError: true,
			errorMsg:    "unsupported TLS mode",
		},
		{
			name: "bad min version",
			tls: TLSConfig{
				Mode:       "server",
				CertFile:   "/path/to/cert.pem",
				KeyFile:    "/path/to/key.pem",
				MinVersion: "1.0",
			},
			expectError: true,
			errorMsg:    "unsupported TLS minimum version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Server.TLS = tt.tls
			err := cfg.ValidateTLSConfig()

			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyOperationDefaults(t *testing.T) {
	screenTimeout := 30 * time.Second
	screenTemp := float32(0.7)
	noSystemPrompts := false

	cfg := validConfig()
	cfg.AI.Temperature = 0.2
	cfg.AI.UseSystemPrompts = true
	cfg.AI.Screen = OperationAIConfig{
		Model:            "gemini-2.5-pro",
		Timeout:          &screenTimeout,
		Temperature:      &screenTemp,
		UseSystemPrompts: &noSystemPrompts,
	}

	screen := cfg.GetScreenConfig()
	assert.Equal(t, "gemini", screen.Provider, "provider falls through to global")
	assert.Equal(t, "gemini-2.5-pro", screen.Model)
	assert.Equal(t, screenTimeout, screen.Timeout)
	assert.Equal(t, screenTemp, screen.Temperature)
	assert.False(t, screen.UseSystemPrompts)
	assert.Equal(t, "test-key", screen.APIKey)

	// Draft block is untouched and inherits everything
	draft := cfg.GetDraftConfig()
	assert.Equal(t, "gemini-2.5-flash", draft.Model)
	assert.Equal(t, 120*time.Second, draft.Timeout)
	assert.Equal(t, float32(0.2), draft.Temperature)
	assert.True(t, draft.UseSystemPrompts)
}

func TestMergePrompts(t *testing.T) {
	global := PromptConfig{
		SystemPrompts: SystemPrompts{
			ScreenResume: "global screen system",
			DraftEmail:   "global draft system",
		},
		UserPrompts: UserPrompts{
			ScreenResume: "global screen user",
		},
	}
	op := PromptConfig{
		SystemPrompts: SystemPrompts{
			ScreenResume: "op screen system",
		},
	}

	merged := mergePrompts(global, op)
	assert.Equal(t, "op screen system", merged.SystemPrompts.ScreenResume)
	assert.Equal(t, "global draft system", merged.SystemPrompts.DraftEmail)
	assert.Equal(t, "global screen user", merged.UserPrompts.ScreenResume)
}
