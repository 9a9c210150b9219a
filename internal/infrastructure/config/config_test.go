package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "tradelink-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "filesystem", cfg.Invoice.Storage)
	assert.Equal(t, 30*time.Second, cfg.Invoice.RenderTimeout)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("defaults pass in development", func(t *testing.T) {
		assert.NoError(t, base().validate())
	})

	t.Run("idle conns cannot exceed open conns", func(t *testing.T) {
		cfg := base()
		cfg.Database.MaxIdleConns = 50
		assert.Error(t, cfg.validate())
	})

	t.Run("unknown invoice storage rejected", func(t *testing.T) {
		cfg := base()
		cfg.Invoice.Storage = "ftp"
		assert.Error(t, cfg.validate())
	})

	t.Run("s3 storage requires bucket", func(t *testing.T) {
		cfg := base()
		cfg.Invoice.Storage = "s3"
		assert.Error(t, cfg.validate())

		cfg.Invoice.S3Bucket = "invoices"
		assert.NoError(t, cfg.validate())
	})

	t.Run("production requires strong jwt secret and db password", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		assert.Error(t, cfg.validate())

		cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
		cfg.Database.Password = "pw"
		cfg.Database.SSLMode = "require"
		assert.NoError(t, cfg.validate())
	})
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "app",
		Password: "p@ss/word",
		DBName:   "tradelink",
		SSLMode:  "require",
	}

	dsn := d.DSN()
	require.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters must be escaped, not passed through raw
	assert.NotContains(t, dsn, "p@ss/word")
}
