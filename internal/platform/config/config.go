// Copyright (c) 2026 Yomira. All rights reserved.
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

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, mailer) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the YaMDb API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	Database Database

	// Key-Value Store (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// SecretKey seeds the confirmation code signing key.
	SecretKey string `env:"SECRET_KEY,required,notEmpty"`

	// Cryptographic keys for access token signing
	Signing Signing

	// Confirmation code lifecycle
	ConfirmationCodeTTL time.Duration `env:"CONFIRMATION_CODE_TTL" envDefault:"72h"`

	// TokenResponseEnabled makes POST /auth/token return the signed JWT.
	// Disabled by default: the endpoint answers 201 with an empty body.
	TokenResponseEnabled bool `env:"TOKEN_RESPONSE_ENABLED" envDefault:"false"`

	// Outbound mail
	Mail Mail

	// Cross-Origin Resource Sharing
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// TrustedProxies lists the peer addresses whose forwarding headers are
	// believed. Empty means the socket address is the client.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	// Throttling of the unauthenticated auth endpoints
	AuthRateLimit  int           `env:"AUTH_RATE_LIMIT"  envDefault:"10"`
	AuthRateWindow time.Duration `env:"AUTH_RATE_WINDOW" envDefault:"1m"`
}

// Database groups the PostgreSQL settings shared by the server and the CLI.
type Database struct {
	URL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`
}

// Signing locates the RSA key pair used for access tokens.
type Signing struct {
	PrivateKeyPath string        `env:"JWT_PRIVATE_KEY_PATH,required"`
	PublicKeyPath  string        `env:"JWT_PUBLIC_KEY_PATH,required"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"24h"`
}

// Mail configures confirmation-code delivery. An empty Host selects the
// log-only sender.
type Mail struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT"     envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"MAIL_FROM"     envDefault:"noreply@yamdb.local"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDatabase parses only the database section. The CLI uses it so that
// maintenance commands do not require Redis or signing keys.
func LoadDatabase() (*Database, error) {
	database := &Database{}
	if err := env.Parse(database); err != nil {
		return nil, fmt.Errorf("config: failed to parse database environment: %w", err)
	}
	return database, nil
}

// LoadSigning parses only the token signing section, for yamdbctl token.
func LoadSigning() (*Signing, error) {
	signing := &Signing{}
	if err := env.Parse(signing); err != nil {
		return nil, fmt.Errorf("config: failed to parse signing environment: %w", err)
	}
	if signing.AccessTokenTTL <= 0 {
		return nil, fmt.Errorf("config: ACCESS_TOKEN_TTL must be positive")
	}
	return signing, nil
}

// validate checks cross-field constraints that struct tags cannot express.
func (c *Config) validate() error {
	if c.ConfirmationCodeTTL <= 0 {
		return fmt.Errorf("config: CONFIRMATION_CODE_TTL must be positive")
	}
	if c.Signing.AccessTokenTTL <= 0 {
		return fmt.Errorf("config: ACCESS_TOKEN_TTL must be positive")
	}
	if c.AuthRateLimit <= 0 || c.AuthRateWindow <= 0 {
		return fmt.Errorf("config: AUTH_RATE_LIMIT and AUTH_RATE_WINDOW must be positive")
	}
	// The log sender would leave codes in the logs instead of the inbox.
	if c.IsProduction() && c.Mail.Host == "" {
		return fmt.Errorf("config: SMTP_HOST is required in production")
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the CORS allow-list. Development accepts any origin.
func (c *Config) AllowedOrigins() []string {
	if c.IsDevelopment() && len(c.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}

	origins := make([]string, 0, len(c.CORSAllowedOrigins))
	for _, origin := range c.CORSAllowedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
