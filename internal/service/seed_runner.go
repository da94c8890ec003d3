package service

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const seedTimeout = 30 * time.Second

// SeedRunner shells out to the configured seed command at startup. Seeding
// is best effort: failures are logged and never abort process start.
type SeedRunner struct {
	command string
	logger  zerolog.Logger
}

// NewSeedRunner constructs a seed runner for the given shell command.
func NewSeedRunner(command string, logger zerolog.Logger) *SeedRunner {
	return &SeedRunner{
		command: command,
		logger:  logger.With().Str("component", "seed_runner").Logger(),
	}
}

// Run executes the seed command with a bounded timeout.
func (r *SeedRunner) Run(ctx context.Context) {
	if strings.TrimSpace(r.command) == "" {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, seedTimeout)
	defer cancel()

	parts := strings.Fields(r.command)
	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		r.logger.Warn().Err(err).Str("output", string(output)).Msg("seed command failed")
		return
	}

	r.logger.Info().Msg("seed command completed")
}
