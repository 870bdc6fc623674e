package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "s3cr3t")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL())
	assert.Equal(t, "0.0.0.0:4000", cfg.HTTP.Addr())
	assert.True(t, cfg.Ledger.Atomic)
	assert.True(t, cfg.Ledger.Reconcile)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 30*time.Second, cfg.Redis.ReportCacheTTL)
}

func TestFromViper_ValoresComoString(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "s3cr3t")
	v.Set("STORAGE_DRIVER", "MEMORY")
	v.Set("LEDGER_ATOMIC", "false")
	v.Set("HTTP_PORT", "8081")
	v.Set("REDIS_ADDR", "localhost:6379")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.False(t, cfg.Ledger.Atomic)
	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.True(t, cfg.Redis.Enabled())
}

func TestFromViper_SinSecretFalla(t *testing.T) {
	_, err := fromViper(viper.New())
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestFromViper_DriverDesconocido(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "s3cr3t")
	v.Set("STORAGE_DRIVER", "mongo")

	_, err := fromViper(v)
	assert.ErrorContains(t, err, "STORAGE_DRIVER")
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "pedidos", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/pedidos?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otra"
	assert.Equal(t, "postgres://otra", c.ConnectionString())
}
