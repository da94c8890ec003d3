package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/urokiislama/uroki-api/internal/models"
	"github.com/urokiislama/uroki-api/internal/repository"
)

const statusListLimit = 1000

// StatusService records and lists client health-check pings.
type StatusService interface {
	Create(ctx context.Context, clientName string) (models.StatusCheck, error)
	List(ctx context.Context) ([]models.StatusCheck, error)
}

type statusService struct {
	repo   repository.StatusCheckRepository
	logger zerolog.Logger
}

// NewStatusService constructs a status service.
func NewStatusService(repo repository.StatusCheckRepository, logger zerolog.Logger) StatusService {
	return &statusService{
		repo:   repo,
		logger: logger.With().Str("component", "status_service").Logger(),
	}
}

func (s *statusService) Create(ctx context.Context, clientName string) (models.StatusCheck, error) {
	return s.repo.Create(ctx, models.StatusCheck{
		ClientName: clientName,
		Timestamp:  time.Now().UTC(),
	})
}

func (s *statusService) List(ctx context.Context) ([]models.StatusCheck, error) {
	return s.repo.List(ctx, statusListLimit)
}
