package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := defaultConfig()

	assert.Equal(t, "civilregistry-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "civilregistry", cfg.Database.DBName)
	assert.Equal(t, "22:30", cfg.Signature.WindowStart)
	assert.Equal(t, "23:30", cfg.Signature.WindowEnd)
	assert.Equal(t, 30*time.Second, cfg.Timestamp.Timeout)
	assert.Equal(t, "mentions-archive", cfg.Storage.Bucket)
	assert.Equal(t, 8.27, cfg.Render.PaperWidth)
}

func TestApplyDefaultsPreservesExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Database.Host = "db.internal"
	cfg.Signature.WindowStart = "21:00"
	applyDefaults(cfg)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "21:00", cfg.Signature.WindowStart)
	assert.Equal(t, "23:30", cfg.Signature.WindowEnd)
}

func TestValidateConnectionPool(t *testing.T) {
	cfg := defaultConfig()
	cfg.Database.MaxIdleConns = 50
	cfg.Database.MaxOpenConns = 10

	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_idle_conns")
}

func TestValidateSignatureWindowBounds(t *testing.T) {
	cfg := defaultConfig()
	cfg.Signature.WindowEnd = "25:99"

	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "25:99")
}

func TestValidateProductionRequirements(t *testing.T) {
	cfg := defaultConfig()
	cfg.App.Env = "production"
	cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
	cfg.Database.Password = "secret"
	cfg.Database.SSLMode = "require"
	cfg.Storage.AccessKeyID = "AKIA"
	cfg.Storage.SecretAccessKey = "s3cr3t"

	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timestamp.base_url")

	cfg.Timestamp.BaseURL = "https://tsa.internal"
	require.NoError(t, cfg.validate())
}

func TestDSNEscapesCredentials(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "registry",
		Password: "p@ss:word/1",
		DBName:   "civilregistry",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "p%40ss%3Aword%2F1")
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", r.Addr())
}
