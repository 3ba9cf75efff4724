package cli

import (
	"context"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/matzehuels/techradar/pkg/cache"
	"github.com/matzehuels/techradar/pkg/errors"
	"github.com/matzehuels/techradar/pkg/store"
)

// Cache backends selectable with TECHRADAR_CACHE.
const (
	cacheFile  = "file"
	cacheRedis = "redis"
	cacheNone  = "none"
)

const (
	defaultAddr    = ":8080"
	defaultMongoDB = "techradar"
	redisKeyPrefix = appName + ":"
)

// Config is the environment-derived configuration shared by all commands.
type Config struct {
	Cache    string // file, redis or none
	RedisURL string
	MongoURI string // Empty selects the file store
	MongoDB  string
	Addr     string
}

// LoadEnv loads variables from the given .env files, or from ./.env when
// none are given. Missing files are ignored; variables already set in the
// environment win.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// ConfigFromEnv reads the TECHRADAR_* variables.
func ConfigFromEnv() Config {
	return Config{
		Cache:    strings.ToLower(firstNonEmpty(env("CACHE"), cacheFile)),
		RedisURL: env("REDIS_URL"),
		MongoURI: env("MONGO_URI"),
		MongoDB:  firstNonEmpty(env("MONGO_DB"), defaultMongoDB),
		Addr:     firstNonEmpty(env("ADDR"), defaultAddr),
	}
}

func env(name string) string {
	return strings.TrimSpace(os.Getenv("TECHRADAR_" + name))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// openCache returns the configured cache backend. Redis keys are prefixed
// so the instance can be shared.
func (cfg Config) openCache(ctx context.Context, disabled bool) (cache.Cache, error) {
	if disabled {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache {
	case cacheNone:
		return cache.NewNullCache(), nil
	case cacheRedis:
		if cfg.RedisURL == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "TECHRADAR_CACHE=redis requires TECHRADAR_REDIS_URL")
		}
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return cache.Scoped(rc, redisKeyPrefix), nil
	case cacheFile, "":
		dir, err := cache.DefaultDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (want file, redis or none)", cfg.Cache)
}

// openStore returns MongoDB when TECHRADAR_MONGO_URI is set and the file
// store otherwise.
func (cfg Config) openStore(ctx context.Context) (store.Store, error) {
	if cfg.MongoURI != "" {
		return store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDB)
	}
	return store.NewFileStore("")
}
