package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	Port     string
	LogLevel string
	PGURL    string // empty disables the month store

	ListedBaseURL  string
	OTCBaseURL     string
	ReferenceStock string

	RequiredDays      int
	MaxLookbackMonths int
	MaxLookbackDays   int

	RequestInterval  time.Duration
	RequestTimeout   time.Duration
	InsecureTLS      bool
	SnapshotCacheTTL time.Duration
}

// Load reads configuration from environment variables, after merging in a .env file if present
func Load() (*Config, error) {
	// A missing .env is fine; the environment alone is enough
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		PGURL:          os.Getenv("PG_URL"),
		ListedBaseURL:  getEnv("TWSE_BASE_URL", "https://www.twse.com.tw"),
		OTCBaseURL:     getEnv("TPEX_BASE_URL", "https://www.tpex.org.tw"),
		ReferenceStock: getEnv("REFERENCE_STOCK", "2330"),
	}

	var err error
	if cfg.RequiredDays, err = getEnvInt("REQUIRED_DAYS", 250); err != nil {
		return nil, err
	}
	if cfg.MaxLookbackMonths, err = getEnvInt("MAX_LOOKBACK_MONTHS", 18); err != nil {
		return nil, err
	}
	if cfg.MaxLookbackDays, err = getEnvInt("MAX_LOOKBACK_DAYS", 10); err != nil {
		return nil, err
	}

	intervalMS, err := getEnvInt("REQUEST_INTERVAL_MS", 300)
	if err != nil {
		return nil, err
	}
	cfg.RequestInterval = time.Duration(intervalMS) * time.Millisecond

	timeoutSec, err := getEnvInt("REQUEST_TIMEOUT_SEC", 10)
	if err != nil {
		return nil, err
	}
	cfg.RequestTimeout = time.Duration(timeoutSec) * time.Second

	ttlMin, err := getEnvInt("SNAPSHOT_CACHE_TTL_MIN", 60)
	if err != nil {
		return nil, err
	}
	cfg.SnapshotCacheTTL = time.Duration(ttlMin) * time.Minute

	if cfg.InsecureTLS, err = getEnvBool("INSECURE_TLS", true); err != nil {
		return nil, err
	}

	if cfg.RequiredDays <= 0 {
		return nil, fmt.Errorf("REQUIRED_DAYS must be positive, got %d", cfg.RequiredDays)
	}
	if cfg.MaxLookbackMonths <= 0 {
		return nil, fmt.Errorf("MAX_LOOKBACK_MONTHS must be positive, got %d", cfg.MaxLookbackMonths)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, v)
	}
	return b, nil
}
