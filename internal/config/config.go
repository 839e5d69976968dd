package config

import (
	"os"
	"strconv"
	"strings"
)

// Config is the full set of environment inputs, resolved once at startup and
// passed to components at construction.
type Config struct {
	Port                string
	Env                 string
	DatabaseURL         string
	FirebaseCredentials string
	BaseURL             string
	AllowedOrigins      []string
	AdminEmails         []string
	NewsAPIKey          string
	UploadDir           string
	RateLimitRPS        float64

	admins map[string]bool
}

func Load() *Config {
	cfg := &Config{
		Port:                getenv("PORT", "5000"),
		Env:                 getenv("ENV", "development"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		FirebaseCredentials: os.Getenv("FIREBASE_CREDENTIALS"),
		AllowedOrigins:      splitList(os.Getenv("ALLOWED_ORIGINS")),
		AdminEmails:         splitList(os.Getenv("ADMIN_EMAILS")),
		NewsAPIKey:          os.Getenv("NEWS_API_KEY"),
		UploadDir:           getenv("UPLOAD_DIR", "uploads"),
	}
	cfg.BaseURL = getenv("BASE_URL", "http://localhost:"+cfg.Port)

	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if rps, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimitRPS = rps
		}
	}

	cfg.admins = make(map[string]bool, len(cfg.AdminEmails))
	for _, e := range cfg.AdminEmails {
		cfg.admins[strings.ToLower(e)] = true
	}
	return cfg
}

func (c *Config) Production() bool { return c.Env == "production" }

// IsAdmin reports whether the email belongs to a configured administrator.
func (c *Config) IsAdmin(email string) bool {
	return c.admins[strings.ToLower(email)]
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
