package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadEDefaults(t *testing.T) {
	c, err := LoadE(writeYAML(t, "app:\n  name: registry\n"))
	require.NoError(t, err)

	assert.Equal(t, "registry", c.App.Name)
	assert.Equal(t, "/api/v1/persons", c.App.BasePath)
	assert.Equal(t, 8080, c.App.HTTP.Port)
	assert.Equal(t, "memory", c.DB.Driver)
	assert.Equal(t, "none", c.Cache.Driver)
	assert.Equal(t, time.Minute, c.Cache.TTL())
	assert.Equal(t, "log", c.Notify.Driver)
	assert.Equal(t, 5*time.Second, c.Notify.Timeout())
	assert.Equal(t, uint32(5), c.Notify.Breaker.MaxFailures)
	assert.Equal(t, int64(1<<20), c.Limits.MaxBodyBytes)
}

func TestLoadEFileAndEnv(t *testing.T) {
	path := writeYAML(t, `
db:
  driver: postgres
  dsn: host=db user=app dbname=people
cache:
  driver: redis
  ttlSec: 30
notify:
  driver: kafka
  brokers: ["k1:9092", "k2:9092"]
  topic: persons
`)
	t.Setenv("APP_DB_DSN", "host=override")
	t.Setenv("APP_LIMITS_RPS", "5")

	c, err := LoadE(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", c.DB.Driver)
	assert.Equal(t, "host=override", c.DB.DSN)
	assert.Equal(t, 30*time.Second, c.Cache.TTL())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.Notify.Brokers)
	assert.Equal(t, "persons", c.Notify.Topic)
	assert.Equal(t, float64(5), c.Limits.RPS)
}

func TestLoadEErrors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		_, err := LoadE(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	cases := map[string]string{
		"db driver":     "db:\n  driver: oracle\n",
		"cache driver":  "cache:\n  driver: disk\n",
		"notify driver": "notify:\n  driver: smtp\n",
		"kafka brokers": "notify:\n  driver: kafka\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadE(writeYAML(t, body))
			require.Error(t, err)
		})
	}
}
