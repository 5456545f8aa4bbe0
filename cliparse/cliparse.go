package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort         = 3318
	DefaultSQLiteURL    = "file:campus-ballot.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	DefaultTokenTTL     = 24 * time.Hour
	DefaultStoreTimeout = 5 * time.Second
)

type Config struct {
	Port            int
	DatabaseURL     string
	DatabaseType    string
	JWTSecret       string
	IPHashSalt      string
	TokenTTL        time.Duration
	StoreTimeout    time.Duration
	AdminStudentIDs []string
}

// IsAdminStudent reports whether studentID is in the bootstrap admin list
func (c Config) IsAdminStudent(studentID string) bool {
	for _, id := range c.AdminStudentIDs {
		if strings.EqualFold(id, studentID) {
			return true
		}
	}
	return false
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile, adminIDs string

	fs := flag.NewFlagSet("campus-ballot", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&envFile, "env", "", "Path to a .env file (default .env if present)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "Token signing secret (prefer env)")
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "IP hash salt (prefer env)")

	fs.DurationVar(&cfg.TokenTTL, "token-ttl", 0, "Session token lifetime")
	fs.DurationVar(&cfg.StoreTimeout, "store-timeout", 0, "Per-operation storage timeout")
	fs.StringVar(&adminIDs, "admins", "", "Comma separated admin student IDs")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q (sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType != "sqlite" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = DefaultSQLiteURL
	}

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}
	if cfg.IPHashSalt == "" {
		return Config{}, errors.New("IP_HASH_SALT required")
	}

	var err error
	if cfg.TokenTTL, err = durationOr(cfg.TokenTTL, "TOKEN_TTL", DefaultTokenTTL); err != nil {
		return Config{}, err
	}
	if cfg.StoreTimeout, err = durationOr(cfg.StoreTimeout, "STORE_TIMEOUT", DefaultStoreTimeout); err != nil {
		return Config{}, err
	}

	if adminIDs == "" {
		adminIDs = os.Getenv("ADMIN_STUDENT_IDS")
	}
	for _, id := range strings.Split(adminIDs, ",") {
		if id = strings.TrimSpace(id); id != "" {
			cfg.AdminStudentIDs = append(cfg.AdminStudentIDs, strings.ToUpper(id))
		}
	}

	return cfg, nil
}

// loadEnvFile never overrides variables that are already set.
// A missing default .env is not an error, a missing explicit one is.
func loadEnvFile(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

func durationOr(flagValue time.Duration, env string, def time.Duration) (time.Duration, error) {
	if flagValue > 0 {
		return flagValue, nil
	}
	s := os.Getenv(env)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s env variable", env)
	}
	return d, nil
}
