// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage types accepted by DatabaseType
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
	StorageMemory   = "memory"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	BackendURL    string
	LoginPassword string
	CSRFKey       string
	SecureCookies bool
	Timeout       time.Duration
	ViewIdleTTL   time.Duration
}

// ParseFlags validates flags and falls back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("merrymix", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (sqlite file, postgres DSN or redis address)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Storage type (sqlite, postgres, redis or memory)")
	fs.StringVar(&cfg.BackendURL, "backend", "", "Nominations backend base URL")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.LoginPassword, "password", "", "Shared login password (prefer env)")
	fs.StringVar(&cfg.CSRFKey, "csrf-key", "", "CSRF signing key (prefer env)")

	fs.BoolVar(&cfg.SecureCookies, "secure-cookies", false, "Mark cookies Secure (serve behind TLS)")
	fs.DurationVar(&cfg.Timeout, "timeout", 0, "Backend request timeout")
	fs.DurationVar(&cfg.ViewIdleTTL, "idle", 0, "Evict in-memory views idle for this long")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3000 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = StorageSQLite
		}
	}
	switch cfg.DatabaseType {
	case StorageSQLite, StoragePostgres, StorageRedis, StorageMemory:
	default:
		return Config{}, fmt.Errorf("unknown DATABASE_TYPE %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		switch cfg.DatabaseType {
		case StorageSQLite:
			cfg.DatabaseURL = "file:merrymix.db"
		case StorageMemory:
		default:
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	}

	if cfg.BackendURL == "" {
		cfg.BackendURL = os.Getenv("BACKEND_URL")
		if cfg.BackendURL == "" {
			cfg.BackendURL = "http://localhost:8081"
		}
	}
	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")

	// Secrets - MUST be provided
	if cfg.LoginPassword == "" {
		cfg.LoginPassword = os.Getenv("LOGIN_PASSWORD")
	}
	if cfg.LoginPassword == "" {
		return Config{}, errors.New("LOGIN_PASSWORD required")
	}

	if cfg.CSRFKey == "" {
		cfg.CSRFKey = os.Getenv("CSRF_KEY")
	}
	if cfg.CSRFKey == "" {
		return Config{}, errors.New("CSRF_KEY required")
	}

	if !set["secure-cookies"] {
		if v := os.Getenv("SECURE_COOKIES"); v != "" {
			secure, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, errors.New("invalid SECURE_COOKIES env variable")
			}
			cfg.SecureCookies = secure
		}
	}

	var err error
	if cfg.Timeout, err = durationOrEnv(cfg.Timeout, "BACKEND_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ViewIdleTTL, err = durationOrEnv(cfg.ViewIdleTTL, "VIEW_IDLE_TTL", 2*time.Hour); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func durationOrEnv(v time.Duration, key string, def time.Duration) (time.Duration, error) {
	if v > 0 {
		return v, nil
	}
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return d, nil
}
