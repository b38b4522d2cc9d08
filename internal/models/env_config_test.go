package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestReadEnvConfig(t *testing.T) {
	require := require.New(t)
	t.Setenv("DAILYREPORT_DATABASE_URL", "postgres://localhost/reports")
	t.Setenv("DAILYREPORT_PORT", "")
	t.Setenv("DAILYREPORT_SESSION_TTL", "90m")
	t.Setenv("DAILYREPORT_DEBUG", "true")
	t.Setenv("DAILYREPORT_BCRYPT_COST", "")

	config := ReadEnvConfig()
	require.Equal("postgres://localhost/reports", config.DatabaseURL)
	require.Equal("23495", config.Port)
	require.Equal(90*time.Minute, config.SessionTTL)
	require.True(config.Debug)
	require.Equal(bcrypt.MinCost, config.BcryptCost)
	require.Equal("file://migrations", config.MigrationsURL)
}

func TestReadEnvConfigDefaults(t *testing.T) {
	require := require.New(t)
	t.Setenv("DAILYREPORT_SESSION_TTL", "nonsense")
	t.Setenv("DAILYREPORT_DEBUG", "")
	t.Setenv("DAILYREPORT_BCRYPT_COST", "12")

	config := ReadEnvConfig()
	require.Equal(24*time.Hour, config.SessionTTL)
	require.False(config.Debug)
	require.Equal(12, config.BcryptCost)
}
