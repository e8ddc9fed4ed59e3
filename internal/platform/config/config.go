package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	StorageDriver string

	JWTSecret string
	JWTIssuer string

	// Flutterwave
	FlutterwaveSecretKey  string
	FlutterwaveSecretHash string // Shared secret sent back in the verif-hash header
	FlutterwaveBaseURL    string
	FlutterwaveTimeout    time.Duration

	// Ledger event queue
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	LedgerEventsQueue string

	RateLimit          string // limiter format, e.g. "100-M"
	CORSAllowedOrigins []string

	MinTopUpAmount       decimal.Decimal
	PendingPaymentTTL    time.Duration // 0 disables expiry
	PendingSweepInterval time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("STORAGE_DRIVER", StoragePostgres)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "wallet-backend")
	viper.SetDefault("FLW_SECRET_KEY", "")
	viper.SetDefault("FLW_SECRET_HASH", "")
	viper.SetDefault("FLW_BASE_URL", "https://api.flutterwave.com")
	viper.SetDefault("FLW_TIMEOUT", "10s")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("LEDGER_EVENTS_QUEUE", "wallet:ledger_events")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("MIN_TOPUP_AMOUNT", "100")
	viper.SetDefault("PENDING_PAYMENT_TTL", "0s")
	viper.SetDefault("PENDING_SWEEP_INTERVAL", "5m")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.StorageDriver = strings.ToLower(viper.GetString("STORAGE_DRIVER"))
	if cfg.StorageDriver != StoragePostgres && cfg.StorageDriver != StorageMemory {
		log.Printf("Warning: Unknown STORAGE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StorageDriver, StoragePostgres)
		cfg.StorageDriver = StoragePostgres
	}
	if cfg.StorageDriver == StoragePostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.FlutterwaveSecretKey = viper.GetString("FLW_SECRET_KEY")
	cfg.FlutterwaveSecretHash = viper.GetString("FLW_SECRET_HASH")
	cfg.FlutterwaveBaseURL = strings.TrimRight(viper.GetString("FLW_BASE_URL"), "/")
	if cfg.FlutterwaveSecretKey == "" {
		log.Println("Warning: FLW_SECRET_KEY not set. Payment verification will fail.")
	}
	if cfg.FlutterwaveSecretHash == "" {
		log.Println("Warning: FLW_SECRET_HASH not set. All webhooks will be rejected.")
	}
	cfg.FlutterwaveTimeout = durationOrDefault("FLW_TIMEOUT", 10*time.Second)

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")
	cfg.LedgerEventsQueue = viper.GetString("LEDGER_EVENTS_QUEUE")

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	minTopUp, err := decimal.NewFromString(viper.GetString("MIN_TOPUP_AMOUNT"))
	if err != nil || !minTopUp.IsPositive() {
		minTopUp = decimal.NewFromInt(100)
		log.Printf("Warning: Invalid value for MIN_TOPUP_AMOUNT ('%s'). Defaulting to %s.\n", viper.GetString("MIN_TOPUP_AMOUNT"), minTopUp)
	}
	cfg.MinTopUpAmount = minTopUp

	cfg.PendingPaymentTTL = durationOrDefault("PENDING_PAYMENT_TTL", 0)
	cfg.PendingSweepInterval = durationOrDefault("PENDING_SWEEP_INTERVAL", 5*time.Minute)
	if cfg.PendingSweepInterval <= 0 {
		cfg.PendingSweepInterval = 5 * time.Minute
	}

	return cfg, nil
}

// durationOrDefault parses a duration key, logging and falling back on bad input.
func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}
