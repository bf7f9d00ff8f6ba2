package config

import (
	"os"
	"strings"
	"time"

	"clinic-backend/utils"
)

// SiteConfig carries everything handlers and services need from the
// environment. It is built once in main and passed down; nothing reads
// these settings ambiently afterwards.
type SiteConfig struct {
	SiteName string
	BaseURL  string

	// Canonical-host redirect: requests arriving on any RedirectHosts
	// entry get a 301 to https://CanonicalHost.
	CanonicalHost string
	RedirectHosts []string

	// Outbound mail.
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFromName string
	EmailFrom    string
	AdminEmails  []string

	// Console auth and the cookie session.
	JWTSecret     string
	SessionSecret string

	// Blog page cache TTL when Redis is configured.
	CacheTTL time.Duration
}

// LoadSiteConfig reads the site configuration from environment variables.
func LoadSiteConfig() SiteConfig {
	cfg := SiteConfig{
		SiteName: utils.EnvOrDefault("SITE_NAME", "Spektrum Umysłu"),
		BaseURL:  utils.EnvOrDefault("SITE_BASE_URL", "http://localhost:8080"),

		CanonicalHost: strings.TrimSpace(os.Getenv("CANONICAL_HOST")),
		RedirectHosts: splitList(os.Getenv("REDIRECT_HOSTS")),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     os.Getenv("SMTP_PORT"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFromName: utils.EnvOrDefault("SMTP_FROM_NAME", "Spektrum Umysłu"),
		EmailFrom:    utils.EnvOrDefault("EMAIL_FROM", os.Getenv("SMTP_USERNAME")),
		AdminEmails:  splitList(os.Getenv("ADMIN_EMAILS")),

		JWTSecret:     utils.EnvOrDefault("JWT_SECRET", "dev-secret-change-me"),
		SessionSecret: utils.EnvOrDefault("SESSION_SECRET", "dev-session-secret"),

		CacheTTL: 5 * time.Minute,
	}

	if raw := strings.TrimSpace(os.Getenv("CACHE_TTL")); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.CacheTTL = d
		}
	}

	// Staff notifications fall back to the sender identity so they are
	// never silently dropped for lack of configuration.
	if len(cfg.AdminEmails) == 0 && cfg.EmailFrom != "" {
		cfg.AdminEmails = []string{cfg.EmailFrom}
	}

	return cfg
}

// Mailer builds the outbound mail sender from the SMTP settings.
func (c SiteConfig) Mailer() *utils.Mailer {
	return &utils.Mailer{
		Host:     c.SMTPHost,
		Port:     c.SMTPPort,
		Username: c.SMTPUsername,
		Password: c.SMTPPassword,
		FromName: c.SMTPFromName,
		From:     c.EmailFrom,
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
