package secrets

import (
	"testing"

	vault "github.com/hashicorp/vault/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVaultClient(t *testing.T) *vault.Client {
	t.Helper()
	client, err := vault.NewClient(vault.DefaultConfig())
	require.NoError(t, err)
	return client
}

func TestAuthenticateVaultToken(t *testing.T) {
	client := newVaultClient(t)
	cfg := DefaultVaultConfig("https://vault.example.com:8200")
	cfg.Token = "s.test-token"

	require.NoError(t, authenticateVault(client, cfg))
	assert.Equal(t, "s.test-token", client.Token())
}

func TestAuthenticateVaultTokenMissing(t *testing.T) {
	client := newVaultClient(t)
	cfg := DefaultVaultConfig("https://vault.example.com:8200")

	err := authenticateVault(client, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token is required")
}

func TestAuthenticateVaultAppRoleRequiresCredentials(t *testing.T) {
	client := newVaultClient(t)
	cfg := DefaultVaultConfig("https://vault.example.com:8200")
	cfg.AuthMethod = "approle"
	cfg.RoleID = "role-1"

	err := authenticateVault(client, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "role_id and secret_id")
}

func TestAuthenticateVaultUnsupportedMethod(t *testing.T) {
	client := newVaultClient(t)
	cfg := DefaultVaultConfig("https://vault.example.com:8200")
	cfg.AuthMethod = "kerberos"

	err := authenticateVault(client, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported auth method")
}
