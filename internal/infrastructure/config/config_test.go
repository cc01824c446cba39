package config

import (
	"testing"
	"time"
)

func baseConfig() *Config {
	return &Config{
		JWTSecret: "a-real-secret",
		TokenTTL:  24 * time.Hour,
	}
}

func TestValidate_AcceptsProperSecret(t *testing.T) {
	if err := baseConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidate_RejectsMissingSecret(t *testing.T) {
	cfg := baseConfig()
	cfg.JWTSecret = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("empty JWT_SECRET must be rejected")
	}
}

func TestValidate_RejectsLegacyDefaultSecret(t *testing.T) {
	cfg := baseConfig()
	cfg.JWTSecret = "your-secret-key"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("the known insecure default must be rejected")
	}
}

func TestValidate_RejectsNonPositiveTTL(t *testing.T) {
	cfg := baseConfig()
	cfg.TokenTTL = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("zero TOKEN_TTL must be rejected")
	}
}

func TestProduction(t *testing.T) {
	cfg := baseConfig()
	if cfg.Production() {
		t.Fatalf("empty env should not be production")
	}
	cfg.Env = "production"
	if !cfg.Production() {
		t.Fatalf("production env not detected")
	}
}
