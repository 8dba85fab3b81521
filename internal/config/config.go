package config

import (
	"os"
	"strconv"
	"time"

	"github.com/gatewaylabs/orbital-client/internal/domain"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Gateway GatewayConfig
	Secrets SecretsConfig
	Logger  LoggerConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port        int
	Host        string
	MetricsPort int
}

// GatewayConfig holds Orbital gateway configuration
type GatewayConfig struct {
	Environment  string // "sandbox" or "production"
	BaseURL      string // Override for the per-environment default endpoint
	MerchantID   string
	BIN          string // Defaults to "000001" when empty
	TimeZoneCode string // Defaults to "706" when empty
	CurrencyCode string // Defaults to "840" when empty
	Timeout      time.Duration
	MaxRetries   int
	Debug        bool // Enables raw-response debug logging
}

// SecretsConfig selects the merchant-credential backend
type SecretsConfig struct {
	// Backend: "aws", "vault", "local", or "" to use env-provided credentials
	Backend string

	// Path of the merchant credentials secret
	CredentialsPath string

	// AWS settings
	AWSRegion string

	// Vault settings
	VaultAddress    string
	VaultAuthMethod string // "token" or "approle"
	VaultToken      string
	VaultRoleID     string
	VaultSecretID   string
	VaultNamespace  string

	// Local filesystem settings
	LocalPath string
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnvAsInt("SERVER_PORT", 8080),
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			MetricsPort: getEnvAsInt("METRICS_PORT", 9090),
		},
		Gateway: GatewayConfig{
			Environment:  getEnv("ORBITAL_ENVIRONMENT", "sandbox"),
			BaseURL:      getEnv("ORBITAL_BASE_URL", ""),
			MerchantID:   getEnv("ORBITAL_MERCHANT_ID", ""),
			BIN:          getEnv("ORBITAL_BIN", ""),
			TimeZoneCode: getEnv("ORBITAL_TIME_ZONE_CODE", ""),
			CurrencyCode: getEnv("ORBITAL_CURRENCY_CODE", ""),
			Timeout:      time.Duration(getEnvAsInt("ORBITAL_TIMEOUT", 30)) * time.Second,
			MaxRetries:   getEnvAsInt("ORBITAL_MAX_RETRIES", 3),
			Debug:        getEnvAsBool("ORBITAL_DEBUG", false),
		},
		Secrets: SecretsConfig{
			Backend:         getEnv("SECRETS_BACKEND", ""),
			CredentialsPath: getEnv("SECRETS_CREDENTIALS_PATH", "orbital/merchants/default/credentials"),
			AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
			VaultAddress:    getEnv("VAULT_ADDR", ""),
			VaultAuthMethod: getEnv("VAULT_AUTH_METHOD", "token"),
			VaultToken:      getEnv("VAULT_TOKEN", ""),
			VaultRoleID:     getEnv("VAULT_ROLE_ID", ""),
			VaultSecretID:   getEnv("VAULT_SECRET_ID", ""),
			VaultNamespace:  getEnv("VAULT_NAMESPACE", ""),
			LocalPath:       getEnv("SECRETS_LOCAL_PATH", "./secrets"),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
	}

	// A merchant ID must come from somewhere: env directly or a secrets backend
	if cfg.Gateway.MerchantID == "" && cfg.Secrets.Backend == "" {
		return nil, domain.NewDomainError(domain.ErrorCodeConfigMissing,
			"ORBITAL_MERCHANT_ID is required when no secrets backend is configured")
	}
	if cfg.Secrets.Backend == "vault" && cfg.Secrets.VaultAddress == "" {
		return nil, domain.NewDomainError(domain.ErrorCodeConfigMissing,
			"VAULT_ADDR is required for the vault secrets backend")
	}

	return cfg, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
