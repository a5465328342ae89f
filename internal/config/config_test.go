package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
database:
  host: db.local
  port: 5433
  user: chickkart
  password: pw
  database: chickkart

rabbitmq:
  host: mq.local
  user: guest
  password: guest
  vhost: "/orders"

redis:
  host: cache.local

http:
  storefront_port: 8080

admin:
  username: admin
  password: chickkart123

payment:
  merchant_vpa: chickkart@upi
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "mq.local", cfg.RabbitMQ.Host)
	assert.Equal(t, 5672, cfg.RabbitMQ.Port)
	assert.Equal(t, "/orders", cfg.RabbitMQ.VHost)
	assert.Equal(t, "cache.local", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 8080, cfg.HTTP.StorefrontPort)
	assert.Equal(t, 3001, cfg.HTTP.AdminPort)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, 24, cfg.Admin.TokenTTLHours)
	assert.Equal(t, "chickkart@upi", cfg.Payment.MerchantVPA)
	assert.Equal(t, "ChickKart", cfg.Payment.MerchantName)
}

func TestLoadIncomplete(t *testing.T) {
	path := writeConfig(t, `
database:
  host: db.local

rabbitmq:
  host: mq.local
  user: guest

redis:
  host: cache.local
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
