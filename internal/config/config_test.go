package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoad(t *testing.T) {
	t.Run("Reads the file and fills defaults", func(t *testing.T) {
		// Given: a config file with only a few keys
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("http-port: \"8080\"\nsql:\n  driver: postgres\n  dsn: postgres://localhost/resobingo\n"), 0o600))

		// When: loading it
		conf := MustLoad(path)

		// Then: file values win and the rest uses defaults
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, "postgres", conf.SQL.Driver)
		assert.Equal(t, "postgres://localhost/resobingo", conf.SQL.DSN)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.True(t, conf.CloudSync.Enabled)
		assert.Equal(t, 10*time.Second, conf.CloudSync.Timeout)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("log-level: info\n"), 0o600))
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("CLOUD_SYNC_ENABLED", "false")

		conf := MustLoad(path)

		assert.Equal(t, "debug", conf.LogLevel)
		assert.False(t, conf.CloudSync.Enabled)
	})

	t.Run("Panics on a missing file", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
		})
	})
}
