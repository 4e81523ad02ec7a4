// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Once loaded, configuration is read-only and passed to components through
their constructors. No global variable holds it.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Quillpad API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required,notEmpty"`

	// Token signing
	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"168h"`

	// Bootstrap superadmin, seeded once when no supreme account exists.
	SuperadminName     string `env:"SUPERADMIN_NAME"     envDefault:"Superadmin"`
	SuperadminEmail    string `env:"SUPERADMIN_EMAIL"    envDefault:"superadmin@quillpad.app"`
	SuperadminPassword string `env:"SUPERADMIN_PASSWORD,required,notEmpty"`

	// Outbound mail. Notifications are only logged when SMTP_HOST is empty.
	SMTPHost          string        `env:"SMTP_HOST"`
	SMTPPort          int           `env:"SMTP_PORT"           envDefault:"587"`
	SMTPUsername      string        `env:"SMTP_USERNAME"`
	SMTPPassword      string        `env:"SMTP_PASSWORD"`
	MailFrom          string        `env:"MAIL_FROM"           envDefault:"no-reply@quillpad.app"`
	NotifyQueueSize   int           `env:"NOTIFY_QUEUE_SIZE"   envDefault:"256"`
	NotifySendTimeout time.Duration `env:"NOTIFY_SEND_TIMEOUT" envDefault:"10s"`

	// Object Storage (MinIO / S3-compatible). Media upload is disabled when S3_ENDPOINT is empty.
	S3Endpoint     string `env:"S3_ENDPOINT"`
	S3AccessKey    string `env:"S3_ACCESS_KEY"`
	S3SecretKey    string `env:"S3_SECRET_KEY"`
	S3Bucket       string `env:"S3_BUCKET"        envDefault:"quillpad-media"`
	S3UseSSL       bool   `env:"S3_USE_SSL"       envDefault:"false"`
	MediaPublicURL string `env:"MEDIA_PUBLIC_URL"`

	// Cross-Origin Resource Sharing
	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX" envDefault:"quillpad.app"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	// Fails if any field marked 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	cfg.SuperadminEmail = strings.ToLower(strings.TrimSpace(cfg.SuperadminEmail))

	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("config: JWT_SECRET must be at least 32 bytes")
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// OriginSuffix returns the domain suffix accepted by CORS outside development.
func (c *Config) OriginSuffix() string {
	return c.AllowedOriginSuffix
}

// MailEnabled reports whether an SMTP relay is configured.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != ""
}

// StorageEnabled reports whether object storage is configured.
func (c *Config) StorageEnabled() bool {
	return c.S3Endpoint != ""
}
