package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        int
	DatabaseURL string

	// Secrets
	AdminToken  string
	VisitorSalt string

	// Campaign tuning
	PeriodDays  int
	SelectCount int
}

// ParseFlags validates flags and fills in environment fallbacks.
func ParseFlags(args []string) (Config, error) {
	// A local .env is optional; system environment always works.
	_ = godotenv.Load()

	var cfg Config

	fs := flag.NewFlagSet("kindly-fund", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminToken, "admin-token", "", "Admin bearer token (prefer env)")
	fs.StringVar(&cfg.VisitorSalt, "visitor-salt", "", "Visitor identity salt (prefer env)")

	// Campaign tuning
	fs.IntVar(&cfg.PeriodDays, "period-days", 0, "Voting period length in days")
	fs.IntVar(&cfg.SelectCount, "select-count", 0, "Default number of applications selected per period")

	if err := fs.Parse(args); err != nil {
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
			cfg.Port = 3319 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	// Secrets - MUST be provided
	if cfg.AdminToken == "" {
		cfg.AdminToken = os.Getenv("ADMIN_TOKEN")
	}
	if cfg.AdminToken == "" {
		return Config{}, errors.New("ADMIN_TOKEN required")
	}

	if cfg.VisitorSalt == "" {
		cfg.VisitorSalt = os.Getenv("VISITOR_SALT")
	}
	if cfg.VisitorSalt == "" {
		return Config{}, errors.New("VISITOR_SALT required")
	}

	if cfg.PeriodDays == 0 {
		cfg.PeriodDays = envInt("PERIOD_DAYS", 30)
	}
	if cfg.PeriodDays < 1 {
		return Config{}, errors.New("period days must be positive")
	}

	if cfg.SelectCount == 0 {
		cfg.SelectCount = envInt("SELECT_COUNT", 5)
	}
	if cfg.SelectCount < 1 {
		return Config{}, errors.New("select count must be positive")
	}

	return cfg, nil
}

func envInt(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return fallback
}
