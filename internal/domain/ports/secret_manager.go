package ports

import (
	"context"
)

// Secret represents a retrieved secret with metadata
type Secret struct {
	Value     string            // The secret value (e.g., merchant credentials JSON)
	Version   string            // Secret version identifier
	Metadata  map[string]string // Additional secret metadata
	CreatedAt string            // When this version was created
}

// SecretManager defines the port for retrieving merchant credentials from a
// secret management service. Supported backends: AWS Secrets Manager,
// HashiCorp Vault, local filesystem (development only).
// Implementations are responsible for authentication with the backing
// service and for failing fast when it is unreachable.
type SecretManager interface {
	// GetSecret retrieves a secret by its path/name.
	// Path format depends on implementation:
	//   - AWS: "orbital/merchants/{merchant_id}/credentials"
	//   - Vault: "secret/data/orbital/merchants/{merchant_id}"
	//   - Local: relative file path under the configured base directory
	// Returns an error if the secret does not exist, permissions are
	// insufficient, or the service is unavailable.
	GetSecret(ctx context.Context, path string) (*Secret, error)

	// PutSecret creates or updates a secret and returns the new version
	// identifier. Used by provisioning tooling, not by the submit path.
	PutSecret(ctx context.Context, path string, value string, metadata map[string]string) (version string, err error)
}
