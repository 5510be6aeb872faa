package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("NOTEWORX_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DATABASE", "noteworx_test")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6379")

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	require.Equal(t, StoreMongo, cfg.Store.Driver)
	require.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	require.Equal(t, "noteworx_test", cfg.MongoDB.Database)
	require.Equal(t, "notes", cfg.MongoDB.Collection)
	require.Equal(t, 10*time.Second, cfg.MongoDB.Timeout)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr())
	require.Equal(t, "noteworx", cfg.MinIO.Bucket)
}

func TestLoadConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("NOTEWORX_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("LOG_LEVEL", "warn")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("store", "", "")
	fs.String("log-level", "", "")
	require.NoError(t, fs.Parse([]string{"--store", "memory"}))

	cfg, err := LoadConfig(fs)
	require.NoError(t, err)
	require.Equal(t, StoreMemory, cfg.Store.Driver)
	// unset flag keeps the environment value
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadConfigReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("MONGODB_COLLECTION=from_file\n"), 0o600))
	t.Setenv("NOTEWORX_ENV_FILE", envFile)
	defer os.Unsetenv("MONGODB_COLLECTION")

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	require.Equal(t, "from_file", cfg.MongoDB.Collection)
}

func TestLoadConfigUnknownStore(t *testing.T) {
	t.Setenv("NOTEWORX_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("STORE_DRIVER", "postgres")

	_, err := LoadConfig(nil)
	require.Error(t, err)
}
