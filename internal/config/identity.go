package config

import (
	"fmt"
	"os"
	"strconv"
)

// IdentityConfig holds the settings for verifying bearer tokens issued by
// the identity provider.
type IdentityConfig struct {
	Secret   string
	Issuer   string
	TTLHours int // lifetime of development tokens minted by the CLI
}

// NewIdentityConfig creates the identity configuration from environment variables.
// It reads AUTH_TOKEN_SECRET (required), AUTH_TOKEN_ISSUER (optional) and
// AUTH_TOKEN_TTL_HOURS (default: 24).
func NewIdentityConfig() (*IdentityConfig, error) {
	secret := os.Getenv("AUTH_TOKEN_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("AUTH_TOKEN_SECRET is required but not set")
	}

	ttlStr := os.Getenv("AUTH_TOKEN_TTL_HOURS")
	if ttlStr == "" {
		ttlStr = "24" // default
	}

	ttl, err := strconv.Atoi(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_TOKEN_TTL_HOURS: %v", err)
	}

	config := &IdentityConfig{
		Secret:   secret,
		Issuer:   os.Getenv("AUTH_TOKEN_ISSUER"),
		TTLHours: ttl,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *IdentityConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("AUTH_TOKEN_SECRET cannot be empty")
	}
	if len(c.Secret) < 16 {
		return fmt.Errorf("AUTH_TOKEN_SECRET must be at least 16 characters")
	}
	if c.TTLHours < 1 {
		return fmt.Errorf("AUTH_TOKEN_TTL_HOURS must be at least 1 hour, got: %d", c.TTLHours)
	}
	return nil
}
