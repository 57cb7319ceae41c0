// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	AdminIdentity string
	CallerKeySalt string
	VoteRate      float64
	VoteBurst     int
	LogLevel      slog.Level
}

// ParseFlags reads flags, then a .env file, then the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile, logLevel string

	fs := flag.NewFlagSet("election-ledger", flag.ContinueOnError)

	// Network and storage (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (empty keeps state in memory)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&envFile, "env", ".env", "Optional dotenv file")

	// Identity and secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminIdentity, "admin", "", "Admin identity")
	fs.StringVar(&cfg.CallerKeySalt, "caller-salt", "", "Caller key salt (prefer env)")

	// Throttling and logging
	fs.Float64Var(&cfg.VoteRate, "vote-rate", 0, "Votes per second allowed per caller")
	fs.IntVar(&cfg.VoteBurst, "vote-burst", 0, "Vote burst allowed per caller")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// godotenv never overrides variables that are already set
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, iofs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
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
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	cfg.DatabaseType = strings.ToLower(cfg.DatabaseType)
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	// Admin identity and salt - MUST be provided
	if cfg.AdminIdentity == "" {
		cfg.AdminIdentity = os.Getenv("ADMIN_IDENTITY")
	}
	if strings.TrimSpace(cfg.AdminIdentity) == "" {
		return Config{}, errors.New("ADMIN_IDENTITY required")
	}

	if cfg.CallerKeySalt == "" {
		cfg.CallerKeySalt = os.Getenv("CALLER_KEY_SALT")
	}
	if cfg.CallerKeySalt == "" {
		return Config{}, errors.New("CALLER_KEY_SALT required")
	}

	if cfg.VoteRate == 0 {
		if rateStr := os.Getenv("VOTE_RATE"); rateStr != "" {
			r, err := strconv.ParseFloat(rateStr, 64)
			if err != nil {
				return Config{}, errors.New("invalid VOTE_RATE env variable")
			}
			cfg.VoteRate = r
		} else {
			cfg.VoteRate = 5
		}
	}
	if cfg.VoteRate <= 0 {
		return Config{}, errors.New("vote rate must be positive")
	}

	if cfg.VoteBurst == 0 {
		if burstStr := os.Getenv("VOTE_BURST"); burstStr != "" {
			b, err := strconv.Atoi(burstStr)
			if err != nil {
				return Config{}, errors.New("invalid VOTE_BURST env variable")
			}
			cfg.VoteBurst = b
		} else {
			cfg.VoteBurst = 10
		}
	}
	if cfg.VoteBurst < 1 {
		return Config{}, errors.New("vote burst must be at least 1")
	}

	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
	}
	if logLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
			return Config{}, fmt.Errorf("invalid log level %q", logLevel)
		}
	}

	return cfg, nil
}
