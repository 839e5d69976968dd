package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("ADMIN_EMAILS", "")
	t.Setenv("UPLOAD_DIR", "")
	t.Setenv("BASE_URL", "")

	cfg := Load()
	if cfg.Port != "5000" {
		t.Errorf("Port = %q, want 5000", cfg.Port)
	}
	if cfg.Production() {
		t.Error("Production() = true with no ENV set")
	}
	if cfg.BaseURL != "http://localhost:5000" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.UploadDir != "uploads" {
		t.Errorf("UploadDir = %q", cfg.UploadDir)
	}
	if cfg.IsAdmin("anyone@example.com") {
		t.Error("IsAdmin = true with no admins configured")
	}
}

func TestAdminList(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", "Admin@Example.com , second@example.com,")

	cfg := Load()
	if len(cfg.AdminEmails) != 2 {
		t.Fatalf("AdminEmails = %v", cfg.AdminEmails)
	}
	// Matching is case-insensitive.
	if !cfg.IsAdmin("admin@example.com") || !cfg.IsAdmin("SECOND@EXAMPLE.COM") {
		t.Error("configured admins not recognized")
	}
	if cfg.IsAdmin("other@example.com") {
		t.Error("unlisted email recognized as admin")
	}
}

func TestRateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	if cfg := Load(); cfg.RateLimitRPS != 2.5 {
		t.Errorf("RateLimitRPS = %v, want 2.5", cfg.RateLimitRPS)
	}

	t.Setenv("RATE_LIMIT_RPS", "not-a-number")
	if cfg := Load(); cfg.RateLimitRPS != 0 {
		t.Errorf("RateLimitRPS = %v, want 0 on bad input", cfg.RateLimitRPS)
	}
}
