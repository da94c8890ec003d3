package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "Uroki Islama API", cfg.AppName)
	require.Equal(t, "8080", cfg.AppPort)
	require.False(t, cfg.UsePostgres)
	require.Equal(t, 30*time.Minute, cfg.TokenTTL)
	require.Equal(t, 5*time.Minute, cfg.StatsCacheTTL)
	require.Equal(t, "uploads", cfg.UploadDir)
	require.Equal(t, "admin123", cfg.AdminPasswords["admin"])
	require.Equal(t, "197724", cfg.AdminPasswords["miftahulum"])
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("UROKI_APP_PORT", "9090")
	t.Setenv("UROKI_USE_POSTGRES", "true")
	t.Setenv("UROKI_DATABASE_URL", "postgresql://db.example.com/uroki")
	t.Setenv("UROKI_SUPABASE_URL", "https://project.supabase.co/")
	t.Setenv("UROKI_ADMIN_PASSWORDS", "root:changeme, second:pw")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "9090", cfg.AppPort)
	require.True(t, cfg.UsePostgres)
	require.Equal(t, "postgresql://db.example.com/uroki", cfg.DatabaseURL)
	require.Equal(t, "https://project.supabase.co", cfg.SupabaseURL)
	require.Equal(t, map[string]string{"root": "changeme", "second": "pw"}, cfg.AdminPasswords)
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("UROKI_TOKEN_TTL", "not a duration")

	_, err := Load()
	require.Error(t, err)
}

func TestHTTPAddress(t *testing.T) {
	require.Equal(t, ":8080", Config{AppPort: "8080"}.HTTPAddress())
	require.Equal(t, ":9090", Config{AppPort: ":9090"}.HTTPAddress())
}

func TestParsePasswordMap(t *testing.T) {
	parsed := parsePasswordMap("a:1,b:2:with:colons, :skipped,broken")
	require.Equal(t, "1", parsed["a"])
	require.Equal(t, "2:with:colons", parsed["b"])
	require.NotContains(t, parsed, "")
	require.NotContains(t, parsed, "broken")
}
