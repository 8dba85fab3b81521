package config

import (
	"testing"
	"time"

	"github.com/gatewaylabs/orbital-client/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	t.Setenv("ORBITAL_MERCHANT_ID", "700000123456")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.MetricsPort)
	assert.Equal(t, "sandbox", cfg.Gateway.Environment)
	assert.Equal(t, "700000123456", cfg.Gateway.MerchantID)
	assert.Equal(t, 30*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, 3, cfg.Gateway.MaxRetries)
	assert.False(t, cfg.Gateway.Debug)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8443")
	t.Setenv("ORBITAL_ENVIRONMENT", "production")
	t.Setenv("ORBITAL_MERCHANT_ID", "700000123456")
	t.Setenv("ORBITAL_BIN", "000002")
	t.Setenv("ORBITAL_TIMEOUT", "10")
	t.Setenv("ORBITAL_MAX_RETRIES", "1")
	t.Setenv("ORBITAL_DEBUG", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 8443, cfg.Server.Port)
	assert.Equal(t, "production", cfg.Gateway.Environment)
	assert.Equal(t, "000002", cfg.Gateway.BIN)
	assert.Equal(t, 10*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, 1, cfg.Gateway.MaxRetries)
	assert.True(t, cfg.Gateway.Debug)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadFromEnvRequiresMerchantOrBackend(t *testing.T) {
	t.Setenv("ORBITAL_MERCHANT_ID", "")
	t.Setenv("SECRETS_BACKEND", "")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ORBITAL_MERCHANT_ID")
	assert.Equal(t, domain.ErrorCodeConfigMissing, domain.GetErrorCode(err))
}

func TestLoadFromEnvSecretsBackendSatisfiesMerchant(t *testing.T) {
	t.Setenv("ORBITAL_MERCHANT_ID", "")
	t.Setenv("SECRETS_BACKEND", "local")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Secrets.Backend)
	assert.Equal(t, "orbital/merchants/default/credentials", cfg.Secrets.CredentialsPath)
}

func TestLoadFromEnvVaultRequiresAddress(t *testing.T) {
	t.Setenv("SECRETS_BACKEND", "vault")
	t.Setenv("VAULT_ADDR", "")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VAULT_ADDR")
	assert.Equal(t, domain.ErrorCodeConfigMissing, domain.GetErrorCode(err))
}

func TestLoadFromEnvVaultAppRole(t *testing.T) {
	t.Setenv("SECRETS_BACKEND", "vault")
	t.Setenv("VAULT_ADDR", "https://vault.example.com:8200")
	t.Setenv("VAULT_AUTH_METHOD", "approle")
	t.Setenv("VAULT_ROLE_ID", "role-1")
	t.Setenv("VAULT_SECRET_ID", "secret-1")
	t.Setenv("VAULT_NAMESPACE", "payments")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "approle", cfg.Secrets.VaultAuthMethod)
	assert.Equal(t, "role-1", cfg.Secrets.VaultRoleID)
	assert.Equal(t, "secret-1", cfg.Secrets.VaultSecretID)
	assert.Equal(t, "payments", cfg.Secrets.VaultNamespace)
}

func TestLoadFromEnvVaultAuthMethodDefaultsToToken(t *testing.T) {
	t.Setenv("SECRETS_BACKEND", "vault")
	t.Setenv("VAULT_ADDR", "https://vault.example.com:8200")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "token", cfg.Secrets.VaultAuthMethod)
}

func TestGetEnvAsIntInvalidFallsBack(t *testing.T) {
	t.Setenv("ORBITAL_MERCHANT_ID", "700000123456")
	t.Setenv("SERVER_PORT", "not-a-number")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}
