// Package config holds the runtime settings of the API server and the
// management CLI. Values are resolved in order: defaults, .env file,
// process environment, command-line flags.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultDatabaseURL is used when DATABASE_URL is not set.
const DefaultDatabaseURL = "sqlite:////tmp/test.db"

type Config struct {
	Addr        string
	DatabaseURL string
	Debug       bool
	JWTSecret   string
	AccessTTL   time.Duration
	StaticDir   string
	CORSOrigins []string

	DBMaxOpen     int
	DBMaxIdle     int
	DBMaxLifetime time.Duration
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = ":3001"
	c.DatabaseURL = DefaultDatabaseURL
	c.Debug = false
	c.JWTSecret = "super_secret"
	c.AccessTTL = 15 * time.Minute
	c.StaticDir = "public"
	c.CORSOrigins = []string{"*"}
	c.DBMaxOpen = 25
	c.DBMaxIdle = 25
	c.DBMaxLifetime = 300 * time.Second
}

// Load builds a Config from defaults, the optional .env file, the
// environment and finally args (usually os.Args[1:]).
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.LoadDefaults()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.parseFlags(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Development reports whether the server runs in development mode.
func (c *Config) Development() bool {
	return c.Debug
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Addr = ":" + v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	c.Debug = os.Getenv("FLASK_DEBUG") == "1"
	if v := os.Getenv("JWT_SECRET_KEY"); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv("ACCESS_TTL"); v != "" {
		ttl, err := ParseTTL(v)
		if err != nil {
			return err
		}
		c.AccessTTL = ttl
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		c.StaticDir = v
	}
	if v := os.Getenv("CORS_ORIGIN"); v != "" {
		c.CORSOrigins = splitOrigins(v)
	}

	var err error
	if c.DBMaxOpen, err = envInt("DB_MAX_OPEN", c.DBMaxOpen); err != nil {
		return err
	}
	if c.DBMaxIdle, err = envInt("DB_MAX_IDLE", c.DBMaxIdle); err != nil {
		return err
	}
	lifetime, err := envInt("DB_MAX_LIFETIME", int(c.DBMaxLifetime.Seconds()))
	if err != nil {
		return err
	}
	c.DBMaxLifetime = time.Duration(lifetime) * time.Second
	return nil
}

// parseFlags overlays values given on the command line.
//
//	-a string   listen address (e.g. ":3001")
//	-d string   database URL
//	-s string   static bundle directory
func (c *Config) parseFlags(args []string) error {
	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	fs.StringVar(&c.Addr, "a", c.Addr, "address and port to run server")
	fs.StringVar(&c.DatabaseURL, "d", c.DatabaseURL, "database URL")
	fs.StringVar(&c.StaticDir, "s", c.StaticDir, "static files directory")
	return fs.Parse(args)
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

// allow comma-separated list of origins
func splitOrigins(v string) []string {
	var origins []string
	for _, p := range strings.Split(v, ",") {
		if o := strings.TrimRight(strings.TrimSpace(p), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// ParseTTL parses TTLs such as "15m", "1h", "20s" or "30" (minutes).
func ParseTTL(ttlStr string) (time.Duration, error) {
	if ttlStr == "" {
		return 15 * time.Minute, nil
	}

	if strings.HasSuffix(ttlStr, "m") ||
		strings.HasSuffix(ttlStr, "h") ||
		strings.HasSuffix(ttlStr, "s") {
		return time.ParseDuration(ttlStr)
	}

	// fallback: minutes
	min, err := strconv.Atoi(ttlStr)
	if err != nil {
		return 0, err
	}
	return time.Duration(min) * time.Minute, nil
}
