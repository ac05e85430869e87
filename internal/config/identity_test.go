package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIdentityConfig_DefaultValues(t *testing.T) {
	t.Setenv("AUTH_TOKEN_SECRET", "test-secret-key-long-enough")
	t.Setenv("AUTH_TOKEN_TTL_HOURS", "")
	t.Setenv("AUTH_TOKEN_ISSUER", "")

	cfg, err := NewIdentityConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-secret-key-long-enough", cfg.Secret)
	assert.Equal(t, 24, cfg.TTLHours, "should use default lifetime of 24 hours")
	assert.Empty(t, cfg.Issuer)
}

func TestNewIdentityConfig_Variants(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		ttl     string
		issuer  string
		wantErr string
	}{
		{"custom ttl and issuer", "test-secret-key-long-enough", "48", "https://id.example.com", ""},
		{"missing secret", "", "", "", "AUTH_TOKEN_SECRET is required"},
		{"short secret", "short", "", "", "at least 16 characters"},
		{"non numeric ttl", "test-secret-key-long-enough", "abc", "", "invalid AUTH_TOKEN_TTL_HOURS"},
		{"zero ttl", "test-secret-key-long-enough", "0", "", "at least 1 hour"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AUTH_TOKEN_SECRET", tt.secret)
			t.Setenv("AUTH_TOKEN_TTL_HOURS", tt.ttl)
			t.Setenv("AUTH_TOKEN_ISSUER", tt.issuer)

			cfg, err := NewIdentityConfig()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 48, cfg.TTLHours)
			assert.Equal(t, tt.issuer, cfg.Issuer)
		})
	}
}
