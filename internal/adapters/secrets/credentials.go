package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gatewaylabs/orbital-client/internal/domain/ports"
)

// MerchantCredentials is the payload stored per merchant in the secret
// backend, as a JSON document
type MerchantCredentials struct {
	MerchantID string `json:"merchant_id"`
	BIN        string `json:"bin"`
}

// LoadMerchantCredentials fetches and parses the credentials for a merchant
// from the given secret manager
func LoadMerchantCredentials(ctx context.Context, sm ports.SecretManager, path string) (*MerchantCredentials, error) {
	secret, err := sm.GetSecret(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load merchant credentials: %w", err)
	}

	var creds MerchantCredentials
	if err := json.Unmarshal([]byte(secret.Value), &creds); err != nil {
		return nil, fmt.Errorf("merchant credentials are not valid JSON: %w", err)
	}
	if creds.MerchantID == "" {
		return nil, fmt.Errorf("merchant credentials missing merchant_id")
	}

	return &creds, nil
}

// secretCache implements a simple in-memory cache for secrets, safe for
// concurrent use
type secretCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	enabled bool
	ttl     time.Duration
}

type cacheEntry struct {
	secret    *ports.Secret
	expiresAt time.Time
}

func newSecretCache(enabled bool, ttl time.Duration) *secretCache {
	return &secretCache{
		entries: make(map[string]*cacheEntry),
		enabled: enabled,
		ttl:     ttl,
	}
}

func (c *secretCache) get(key string) *ports.Secret {
	if !c.enabled {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil
	}

	if time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil
	}

	return entry.secret
}

func (c *secretCache) set(key string, secret *ports.Secret) {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &cacheEntry{
		secret:    secret,
		expiresAt: time.Now().Add(c.ttl),
	}
}

func (c *secretCache) invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
