package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("CORS_ORIGINS", "http://localhost:4200")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ClampEngagement {
		t.Fatalf("expected engagement to be unbounded by default")
	}
	if cfg.DispatchChannelTimeout != 10*time.Second {
		t.Fatalf("expected 10s channel timeout, got %s", cfg.DispatchChannelTimeout)
	}
	if cfg.GetAgencyProfile().Currency != "GYD" {
		t.Fatalf("expected default currency GYD, got %q", cfg.GetAgencyProfile().Currency)
	}
	if cfg.GetPhoneRegion() != "GY" {
		t.Fatalf("expected default phone region GY, got %q", cfg.GetPhoneRegion())
	}
	if cfg.GetPushRedisURL() != cfg.RedisURL {
		t.Fatalf("expected push redis url to fall back to REDIS_URL")
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when JWT_ACCESS_SECRET is empty")
	}
}

func TestLoadRejectsAsyncDispatchWithoutRedis(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("DISPATCH_ASYNC", "true")
	t.Setenv("REDIS_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when async dispatch has no redis")
	}
}

func TestParseAgencyProfile(t *testing.T) {
	profile, err := ParseAgencyProfile([]byte("agency_name: Savannah Homes\ncurrency: usd\n"))
	if err != nil {
		t.Fatalf("ParseAgencyProfile returned error: %v", err)
	}
	if profile.Currency != "USD" {
		t.Fatalf("expected USD, got %q", profile.Currency)
	}
	if len(profile.Signature) != 2 || profile.Signature[1] != "Savannah Homes" {
		t.Fatalf("expected signature to name the agency, got %v", profile.Signature)
	}
}

func TestLoadAgencyProfileFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agency.yaml")
	doc := "signature:\n  - Warm regards,\n  - Jane Wanjiru\n  - Savannah Homes\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write profile: %v", err)
	}

	profile, err := LoadAgencyProfile(path)
	if err != nil {
		t.Fatalf("LoadAgencyProfile returned error: %v", err)
	}
	if len(profile.Signature) != 3 || profile.Signature[0] != "Warm regards," {
		t.Fatalf("expected custom signature, got %v", profile.Signature)
	}
	if profile.AgencyName != "Property Team" {
		t.Fatalf("expected default agency name to survive, got %q", profile.AgencyName)
	}
}

func TestParseAgencyProfileRejectsInvalidYAML(t *testing.T) {
	if _, err := ParseAgencyProfile([]byte("signature: [unterminated")); err == nil {
		t.Fatalf("expected parse error")
	}
}
