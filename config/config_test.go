package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setProduction skips .env loading so only the variables set by the test apply.
func setProduction(t *testing.T) {
	t.Helper()
	t.Setenv("GO_ENV", "production")
	for _, k := range []string{
		"PORT", "STORE_BACKEND", "DATABASE_URL", "DYNAMODB_ENDPOINT", "DYNAMODB_TABLE_PREFIX",
		"EMAIL_PROVIDER", "SMTP_PORT", "SES_INSECURE_SKIP_VERIFY", "REQUEST_TIMEOUT",
		"JWT_SECRET", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setProduction(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreMemory, cfg.StoreBackend)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.Equal(t, 587, cfg.Email.SMTPPort)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Empty(t, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.JWTSecret)
}

func TestLoad_Overrides(t *testing.T) {
	setProduction(t)
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_BACKEND", "DynamoDB")
	t.Setenv("DYNAMODB_ENDPOINT", "http://localhost:8000")
	t.Setenv("DYNAMODB_TABLE_PREFIX", "dev_")
	t.Setenv("EMAIL_PROVIDER", "smtp")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SES_INSECURE_SKIP_VERIFY", "true")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, StoreDynamoDB, cfg.StoreBackend)
	assert.Equal(t, "http://localhost:8000", cfg.DynamoDB.Endpoint)
	assert.Equal(t, "dev_", cfg.DynamoDB.TablePrefix)
	assert.Equal(t, "smtp", cfg.Email.Provider)
	assert.Equal(t, 2525, cfg.Email.SMTPPort)
	assert.True(t, cfg.Email.SESInsecureSkipVerify)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
}

func TestLoad_PostgresDefaultURL(t *testing.T) {
	setProduction(t)
	t.Setenv("STORE_BACKEND", "postgres")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Contains(t, cfg.DBUrl, "/eventcrm")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"STORE_BACKEND", "mongodb"},
		{"SMTP_PORT", "smtp"},
		{"REQUEST_TIMEOUT", "ten seconds"},
		{"SES_INSECURE_SKIP_VERIFY", "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			setProduction(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
