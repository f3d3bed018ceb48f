// Package config handles server configuration: defaults, environment
// overlay, then command-line flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/secondchance/secondchance/internal/auth"
	"github.com/secondchance/secondchance/internal/flagx"
)

// Engine names accepted by DBEngine.
const (
	EngineSQLite = "sqlite"
	EngineBolt   = "bolt"
)

// Config holds runtime settings for the SecondChance credential server.
type Config struct {
	Address         string        // HTTP bind address
	DBEngine        string        // "sqlite" or "bolt"
	DBPath          string        // database file path
	JWTSecret       string        // HMAC secret for signing bearer tokens; required
	TokenTTL        time.Duration // bearer token lifetime
	RateLimit       int           // requests per window per client on auth routes
	RateLimitWindow time.Duration
	ShutdownTimeout time.Duration
}

// LoadDefaults populates Config with development defaults. The JWT secret has
// no default on purpose: the server must not start without one.
func (c *Config) LoadDefaults() {
	c.Address = ":3060"
	c.DBEngine = EngineSQLite
	c.DBPath = "secondchance.db"
	c.TokenTTL = auth.DefaultTokenTTL
	c.RateLimit = 30
	c.RateLimitWindow = time.Minute
	c.ShutdownTimeout = 10 * time.Second
}

// Load builds a Config from defaults, environment variables, then flags.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.parseEnv()
	cfg.parseFlags(os.Args[1:])

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) parseEnv() {
	if v := os.Getenv("ADDRESS"); v != "" {
		c.Address = v
	}
	if v := os.Getenv("DB_ENGINE"); v != "" {
		c.DBEngine = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.TokenTTL = d
		}
	}
}

func (c *Config) parseFlags(args []string) {
	// Only look at the flags this package owns; cmd packages parse their own.
	args = flagx.FilterArgs(args, []string{"-a", "-e", "-d", "-s", "-t"})

	fs := flag.NewFlagSet("config", flag.ContinueOnError)

	fs.StringVar(&c.Address, "a", c.Address, "address and port to run server")
	fs.StringVar(&c.DBEngine, "e", c.DBEngine, "storage engine: sqlite or bolt")
	fs.StringVar(&c.DBPath, "d", c.DBPath, "database file path")
	fs.StringVar(&c.JWTSecret, "s", c.JWTSecret, "JWT signing secret")
	fs.DurationVar(&c.TokenTTL, "t", c.TokenTTL, "bearer token lifetime")

	_ = fs.Parse(args)
}

// validate enforces the startup-class invariants. A missing JWT secret is a
// configuration error and must prevent boot, not surface per request.
func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return auth.ErrNoSecret
	}

	if c.DBEngine != EngineSQLite && c.DBEngine != EngineBolt {
		return fmt.Errorf("unknown storage engine %q (want %q or %q)", c.DBEngine, EngineSQLite, EngineBolt)
	}

	return nil
}
