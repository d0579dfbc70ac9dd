package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("fails without a JWT secret", func(t *testing.T) {
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("applies development defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "OptiStock", cfg.App.Name)
		assert.Equal(t, "3000", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "public/uploads", cfg.Upload.Dir)
		assert.Equal(t, "/uploads", cfg.Upload.PublicPath)
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("APP_PORT", "8080")
		t.Setenv("DATABASE_HOST", "db.internal")
		t.Setenv("LOG_FORMAT", "json")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "json", cfg.Log.Format)
	})
}

func TestDatabaseConfigDSN(t *testing.T) {
	t.Run("builds the DSN from parts", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "secret",
			DBName:   "optistock",
			SSLMode:  "disable",
		}
		assert.Equal(t,
			"host=localhost user=postgres password=secret dbname=optistock port=5432 sslmode=disable",
			cfg.DSN(),
		)
	})

	t.Run("a full URL wins over parts", func(t *testing.T) {
		cfg := DatabaseConfig{
			URL:  "postgres://u:p@host:5432/db",
			Host: "ignored",
		}
		assert.Equal(t, "postgres://u:p@host:5432/db", cfg.DSN())
	})
}
