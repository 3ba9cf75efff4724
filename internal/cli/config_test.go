package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/techradar/pkg/cache"
	"github.com/matzehuels/techradar/pkg/errors"
	"github.com/matzehuels/techradar/pkg/store"
)

func TestConfigFromEnvDefaults(t *testing.T) {
	for _, name := range []string{"CACHE", "REDIS_URL", "MONGO_URI", "MONGO_DB", "ADDR"} {
		t.Setenv("TECHRADAR_"+name, "")
	}
	cfg := ConfigFromEnv()
	want := Config{Cache: cacheFile, MongoDB: defaultMongoDB, Addr: defaultAddr}
	if cfg != want {
		t.Errorf("ConfigFromEnv() = %+v, want %+v", cfg, want)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("TECHRADAR_CACHE", " Redis ")
	t.Setenv("TECHRADAR_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("TECHRADAR_MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("TECHRADAR_MONGO_DB", "radars")
	t.Setenv("TECHRADAR_ADDR", ":9000")

	cfg := ConfigFromEnv()
	if cfg.Cache != cacheRedis || cfg.RedisURL != "redis://localhost:6379/0" ||
		cfg.MongoURI != "mongodb://localhost:27017" || cfg.MongoDB != "radars" || cfg.Addr != ":9000" {
		t.Errorf("ConfigFromEnv() = %+v", cfg)
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "TECHRADAR_ADDR=:7070\nTECHRADAR_MONGO_DB=fromfile\n"
	if err := os.WriteFile(envFile, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TECHRADAR_ADDR", "")
	os.Unsetenv("TECHRADAR_ADDR")
	t.Setenv("TECHRADAR_MONGO_DB", "fromenv")

	if err := LoadEnv(envFile, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if got := os.Getenv("TECHRADAR_ADDR"); got != ":7070" {
		t.Errorf("TECHRADAR_ADDR = %q, want value from file", got)
	}
	if got := os.Getenv("TECHRADAR_MONGO_DB"); got != "fromenv" {
		t.Errorf("TECHRADAR_MONGO_DB = %q, environment should win", got)
	}
}

func TestLoadEnvMissingFile(t *testing.T) {
	if err := LoadEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("LoadEnv(missing) = %v", err)
	}
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	tests := []struct {
		name     string
		cfg      Config
		disabled bool
		check    func(t *testing.T, c cache.Cache, err error)
	}{
		{
			name:     "disabled",
			cfg:      Config{Cache: cacheFile},
			disabled: true,
			check: func(t *testing.T, c cache.Cache, err error) {
				if _, ok := c.(*cache.NullCache); !ok || err != nil {
					t.Errorf("got %T, %v; want NullCache", c, err)
				}
			},
		},
		{
			name: "none",
			cfg:  Config{Cache: cacheNone},
			check: func(t *testing.T, c cache.Cache, err error) {
				if _, ok := c.(*cache.NullCache); !ok || err != nil {
					t.Errorf("got %T, %v; want NullCache", c, err)
				}
			},
		},
		{
			name: "file",
			cfg:  Config{Cache: cacheFile},
			check: func(t *testing.T, c cache.Cache, err error) {
				fc, ok := c.(*cache.FileCache)
				if !ok || err != nil {
					t.Fatalf("got %T, %v; want FileCache", c, err)
				}
				if filepath.Base(fc.Dir()) != appName {
					t.Errorf("Dir() = %q", fc.Dir())
				}
			},
		},
		{
			name: "redis without url",
			cfg:  Config{Cache: cacheRedis},
			check: func(t *testing.T, c cache.Cache, err error) {
				if !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Errorf("err = %v, want INVALID_INPUT", err)
				}
			},
		},
		{
			name: "unknown",
			cfg:  Config{Cache: "memcached"},
			check: func(t *testing.T, c cache.Cache, err error) {
				if !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Errorf("err = %v, want INVALID_INPUT", err)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.cfg.openCache(ctx, tt.disabled)
			tt.check(t, c, err)
			if c != nil {
				c.Close()
			}
		})
	}
}

func TestOpenStoreDefaultsToFiles(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	st, err := Config{}.openStore(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close(context.Background())

	fs, ok := st.(*store.FileStore)
	if !ok {
		t.Fatalf("openStore() = %T, want *store.FileStore", st)
	}
	if want := filepath.Join(dir, appName, "radars"); fs.Path() != want {
		t.Errorf("Path() = %q, want %q", fs.Path(), want)
	}
}
