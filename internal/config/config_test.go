package config

import (
	"strings"
	"testing"
	"time"
)

func setValidSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("AUTH_ACCESS_TOKEN_SECRET", strings.Repeat("a", MinSecretLength))
	t.Setenv("AUTH_REFRESH_TOKEN_SECRET", strings.Repeat("r", MinSecretLength))
}

func TestLoadDefaults(t *testing.T) {
	setValidSecrets(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.App.Port)
	}
	if cfg.Auth.AccessTokenTTL != 24*time.Hour {
		t.Errorf("AccessTokenTTL = %v, want 24h", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Auth.RefreshTokenTTL != 14*24*time.Hour {
		t.Errorf("RefreshTokenTTL = %v, want 336h", cfg.Auth.RefreshTokenTTL)
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.Auth.BcryptCost)
	}
}

func TestLoadRejectsMissingSecret(t *testing.T) {
	t.Setenv("AUTH_ACCESS_TOKEN_SECRET", "")
	t.Setenv("AUTH_REFRESH_TOKEN_SECRET", strings.Repeat("r", MinSecretLength))

	if _, err := Load(); err == nil {
		t.Fatal("missing access secret accepted")
	}
}

func TestLoadRejectsShortSecret(t *testing.T) {
	t.Setenv("AUTH_ACCESS_TOKEN_SECRET", "short")
	t.Setenv("AUTH_REFRESH_TOKEN_SECRET", strings.Repeat("r", MinSecretLength))

	if _, err := Load(); err == nil {
		t.Fatal("short access secret accepted")
	}
}

func TestLoadRejectsSharedSecret(t *testing.T) {
	shared := strings.Repeat("s", MinSecretLength)
	t.Setenv("AUTH_ACCESS_TOKEN_SECRET", shared)
	t.Setenv("AUTH_REFRESH_TOKEN_SECRET", shared)

	if _, err := Load(); err == nil {
		t.Fatal("identical secrets accepted")
	}
}

func TestLoadTTLOverrides(t *testing.T) {
	setValidSecrets(t)
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_HOURS", "1")
	t.Setenv("AUTH_REFRESH_TOKEN_TTL_HOURS", "48")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.AccessTokenTTL != time.Hour {
		t.Errorf("AccessTokenTTL = %v, want 1h", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Auth.RefreshTokenTTL != 48*time.Hour {
		t.Errorf("RefreshTokenTTL = %v, want 48h", cfg.Auth.RefreshTokenTTL)
	}
}
