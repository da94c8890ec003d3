package storage

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/urokiislama/uroki-api/internal/config"
)

// Constructors are indirected so selection logic stays testable without
// live backends.
var (
	connectPostgres = NewPostgres
	connectSupabase = NewSupabase
)

// Select binds exactly one storage backend for the process lifetime.
// Direct PostgreSQL wins when it is both preferred and configured; the
// Supabase API is the fallback. With neither configured startup must fail.
func Select(cfg config.Config, logger zerolog.Logger) (Client, error) {
	if cfg.UsePostgres && cfg.DatabaseURL != "" {
		client, err := connectPostgres(cfg.DatabaseURL, logger)
		if err != nil {
			return nil, fmt.Errorf("postgres backend selected but unreachable: %w", err)
		}
		logger.Info().Msg("using direct PostgreSQL connection")
		return client, nil
	}

	if cfg.SupabaseURL != "" && cfg.SupabaseKey != "" {
		client, err := connectSupabase(cfg.SupabaseURL, cfg.SupabaseKey, logger)
		if err != nil {
			return nil, fmt.Errorf("supabase backend selected but unreachable: %w", err)
		}
		logger.Info().Msg("using Supabase API")
		return client, nil
	}

	return nil, ErrNoBackend
}
