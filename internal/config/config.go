package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName        string
	AppEnv         string
	AppPort        string
	UsePostgres    bool
	DatabaseURL    string
	SupabaseURL    string
	SupabaseKey    string
	JWTSecret      string
	TokenTTL       time.Duration
	UploadDir      string
	RedisURL       string
	StatsCacheTTL  time.Duration
	SeedCommand    string
	AdminPasswords map[string]string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("UROKI")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Uroki Islama API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("use.postgres", false)
	v.SetDefault("jwt.secret", "uroki-islama-secret-key-2024")
	v.SetDefault("token.ttl", "30m")
	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("stats.cache_ttl", "5m")

	ttl, err := time.ParseDuration(v.GetString("token.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid token ttl: %w", err)
	}

	statsTTL, err := time.ParseDuration(v.GetString("stats.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid stats cache ttl: %w", err)
	}

	cfg := Config{
		AppName:       v.GetString("app.name"),
		AppEnv:        v.GetString("app.env"),
		AppPort:       v.GetString("app.port"),
		UsePostgres:   v.GetBool("use.postgres"),
		DatabaseURL:   v.GetString("database.url"),
		SupabaseURL:   strings.TrimRight(v.GetString("supabase.url"), "/"),
		SupabaseKey:   v.GetString("supabase.anon_key"),
		JWTSecret:     v.GetString("jwt.secret"),
		TokenTTL:      ttl,
		UploadDir:     v.GetString("upload.dir"),
		RedisURL:      v.GetString("redis.url"),
		StatsCacheTTL: statsTTL,
		SeedCommand:   v.GetString("seed.command"),
		AdminPasswords: map[string]string{
			"admin":      "admin123",
			"miftahulum": "197724",
		},
	}

	if override := v.GetString("admin.passwords"); override != "" {
		cfg.AdminPasswords = parsePasswordMap(override)
	}

	return cfg, nil
}

// parsePasswordMap parses "user:pass,user2:pass2" pairs.
func parsePasswordMap(raw string) map[string]string {
	passwords := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), ":", 2)
		if len(parts) == 2 && parts[0] != "" {
			passwords[parts[0]] = parts[1]
		}
	}
	return passwords
}
