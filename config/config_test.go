package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
http:
  address: ":8081"
database:
  host: db
  user: skylink
  password: secret
  name: skylink
kafka:
  brokers: ["kafka:9092"]
  notifications_topic: notifications
orders:
  lock_ttl_seconds: 5
seed:
  enabled: true
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.HTTP.Address)
	assert.Equal(t, ":9090", cfg.GRPC.Address)
	assert.Equal(t, "host=db port=5432 user=skylink password=secret dbname=skylink sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, []string{"kafka:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "orders", cfg.Kafka.OrderTopic)
	assert.Equal(t, 5*time.Second, cfg.Orders.LockTTL())
	assert.Equal(t, time.Minute, cfg.Orders.CatalogCacheTTL())
	assert.True(t, cfg.Seed.Enabled)
	assert.Equal(t, "1000.00", cfg.Seed.WalletBalance)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "pg.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("JWT_SECRET", "s3cr3t")

	cfg, err := LoadConfig(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "pg.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "s3cr3t", cfg.Auth.JWTSecret)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	_, err = LoadConfig(writeConfig(t, "http: ["))
	assert.ErrorContains(t, err, "failed to parse config")

	t.Setenv("DB_PORT", "five")
	_, err = LoadConfig(writeConfig(t, sample))
	assert.ErrorContains(t, err, "invalid DB_PORT")
}
