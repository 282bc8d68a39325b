package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "http://backend.local")
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Backend.Timeout != 10*time.Second {
		t.Errorf("Backend.Timeout = %v, want 10s", cfg.Backend.Timeout)
	}
	if cfg.Audit.QueueSize != 64 {
		t.Errorf("Audit.QueueSize = %d, want 64", cfg.Audit.QueueSize)
	}
	if cfg.Security.RateLimitRPS != 100 {
		t.Errorf("Security.RateLimitRPS = %d, want 100", cfg.Security.RateLimitRPS)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "http://backend.local")
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("PORT", "9090")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1,10.0.0.2")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.Backend.Timeout != 3*time.Second {
		t.Errorf("Backend.Timeout = %v, want 3s", cfg.Backend.Timeout)
	}
	if len(cfg.Security.TrustedProxies) != 2 {
		t.Errorf("TrustedProxies = %v, want two entries", cfg.Security.TrustedProxies)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "Missing backend base URL",
			env:  map[string]string{"SESSION_SECRET": "0123456789abcdef0123456789abcdef"},
		},
		{
			name: "Missing session secret",
			env:  map[string]string{"BACKEND_BASE_URL": "http://backend.local"},
		},
		{
			name: "Invalid port",
			env: map[string]string{
				"BACKEND_BASE_URL": "http://backend.local",
				"SESSION_SECRET":   "0123456789abcdef0123456789abcdef",
				"PORT":             "70000",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BACKEND_BASE_URL", "")
			t.Setenv("SESSION_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := LoadConfig(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
