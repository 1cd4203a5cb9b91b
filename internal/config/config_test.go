package config_test

import (
	"testing"
	"time"

	"gudang/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env here
	t.Setenv("APP_ENV", "dev")
	t.Setenv("JWT_SECRET", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, 60*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "@every 1h", cfg.PurgeSchedule)
	assert.True(t, cfg.JWTSecretGenerated)
	assert.Len(t, cfg.JWTSecret, 2*config.MinJWTSecretLength)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "prod")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("DATABASE_DSN", "host=db user=gudang dbname=gudang sslmode=disable")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("API_PREFIX", "/api/")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.False(t, cfg.JWTSecretGenerated)
}

func TestLoad_RejectsShortSecretOutsideDev(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "prod")
	t.Setenv("JWT_SECRET", "short")

	_, err := config.Load()
	assert.ErrorContains(t, err, "JWT_SECRET is too short")
}

func TestValidate(t *testing.T) {
	valid := config.Config{
		Env: "dev", AppPort: ":8080", DatabaseDriver: "memory",
		JWTSecret: "secret", TokenTTL: time.Minute,
	}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.DatabaseDriver = "mysql"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.TokenTTL = 0
	assert.Error(t, bad.Validate())

	bad = valid
	bad.DatabaseDriver = "sqlite"
	bad.DatabaseDSN = ""
	assert.Error(t, bad.Validate())
}
