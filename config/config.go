package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const (
	DefaultMongoURI = "mongodb://localhost:27017/plantsDatabase"
	DefaultDatabase = "plantsDatabase"
)

type Config struct {
	Addr            string
	MongoURI        string
	Database        string
	LogLevel        string
	RateLimit       float64
	RateBurst       int
	CORSOrigins     []string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	// EnvFileLoaded reports whether a .env file was found.
	EnvFileLoaded bool
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	loaded := true
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
		loaded = false
	}

	cfg, err := FromEnv(os.Getenv)
	if err != nil {
		return nil, err
	}
	cfg.EnvFileLoaded = loaded
	return cfg, nil
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Addr:     get("ADDR", ":5000"),
		MongoURI: get("MONGODB_URI", DefaultMongoURI),
		LogLevel: get("LOG_LEVEL", "info"),
	}

	cs, err := connstring.ParseAndValidate(cfg.MongoURI)
	if err != nil {
		return nil, fmt.Errorf("MONGODB_URI: %w", err)
	}
	dbDefault := DefaultDatabase
	if cs.Database != "" {
		dbDefault = cs.Database
	}
	cfg.Database = get("MONGODB_DATABASE", dbDefault)

	if cfg.RateLimit, err = strconv.ParseFloat(get("RATE_LIMIT", "5"), 64); err != nil {
		return nil, fmt.Errorf("RATE_LIMIT: %w", err)
	}
	if cfg.RateBurst, err = strconv.Atoi(get("RATE_BURST", "10")); err != nil {
		return nil, fmt.Errorf("RATE_BURST: %w", err)
	}
	if cfg.RequestTimeout, err = time.ParseDuration(get("REQUEST_TIMEOUT", "5s")); err != nil {
		return nil, fmt.Errorf("REQUEST_TIMEOUT: %w", err)
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(get("SHUTDOWN_TIMEOUT", "10s")); err != nil {
		return nil, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}

	for _, origin := range strings.Split(get("CORS_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	return cfg, nil
}
