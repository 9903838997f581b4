package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Store StoreConfig
	Vault VaultConfig
}

// StoreConfig holds record-store configuration. DSN selects the backend:
// a postgres:// URL opens a pgx pool, anything else is treated as a SQLite
// file path.
type StoreConfig struct {
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// VaultConfig holds the key-derivation material for the record cipher.
// All three values come from the environment so that deployments can source
// them from a secret manager instead of baking them into the binary.
type VaultConfig struct {
	Passphrase    string
	KDFSalt       string
	KDFIterations int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Store: StoreConfig{
			DSN:              getEnv("STORE_DSN", "invoices.db"),
			MaxConns:         getEnvAsInt32("STORE_MAX_CONNS", 10),
			MinConns:         getEnvAsInt32("STORE_MIN_CONNS", 1),
			MaxConnLifetime:  getEnvAsDuration("STORE_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime:  getEnvAsDuration("STORE_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:      getEnvAsDuration("STORE_DIAL_TIMEOUT", 3*time.Second),
			StatementTimeout: getEnvAsDuration("STORE_STATEMENT_TIMEOUT", 0),
		},
		Vault: VaultConfig{
			Passphrase:    getEnv("VAULT_PASSPHRASE", ""),
			KDFSalt:       getEnv("VAULT_KDF_SALT", ""),
			KDFIterations: getEnvAsInt("VAULT_KDF_ITERATIONS", 480000),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Store.DSN == "" {
		return NewAppError("CONFIG_ERROR", "STORE_DSN is required", ErrInvalidInput)
	}
	if c.Vault.Passphrase == "" {
		return NewAppError("CONFIG_ERROR", "VAULT_PASSPHRASE is required", ErrInvalidInput)
	}
	if c.Vault.KDFSalt == "" {
		return NewAppError("CONFIG_ERROR", "VAULT_KDF_SALT is required", ErrInvalidInput)
	}
	if c.Vault.KDFIterations < 1 {
		return NewAppError("CONFIG_ERROR", "VAULT_KDF_ITERATIONS must be positive", ErrInvalidInput)
	}
	return nil
}
