package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("FLW_SECRET_HASH", "hash-123")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, "https://api.flutterwave.com", cfg.FlutterwaveBaseURL)
	assert.Equal(t, 10*time.Second, cfg.FlutterwaveTimeout)
	assert.Equal(t, "hash-123", cfg.FlutterwaveSecretHash)
	assert.Equal(t, "wallet:ledger_events", cfg.LedgerEventsQueue)
	assert.Equal(t, "100", cfg.MinTopUpAmount.String())
	assert.Equal(t, time.Duration(0), cfg.PendingPaymentTTL)
	assert.Equal(t, 5*time.Minute, cfg.PendingSweepInterval)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_Overrides(t *testing.T) {
	viper.Reset()
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("FLW_BASE_URL", "http://localhost:9999/")
	t.Setenv("FLW_TIMEOUT", "not-a-duration")
	t.Setenv("PENDING_PAYMENT_TTL", "24h")
	t.Setenv("MIN_TOPUP_AMOUNT", "-5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.ng, https://admin.example.ng")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, "http://localhost:9999", cfg.FlutterwaveBaseURL)
	assert.Equal(t, 10*time.Second, cfg.FlutterwaveTimeout)
	assert.Equal(t, 24*time.Hour, cfg.PendingPaymentTTL)
	assert.Equal(t, "100", cfg.MinTopUpAmount.String())
	assert.Equal(t, []string{"https://app.example.ng", "https://admin.example.ng"}, cfg.CORSAllowedOrigins)
}
