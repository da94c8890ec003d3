package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/urokiislama/uroki-api/internal/dto"
	"github.com/urokiislama/uroki-api/internal/models"
	"github.com/urokiislama/uroki-api/internal/repository"
	"github.com/urokiislama/uroki-api/internal/storage"
)

// TeamService manages the public team page entries.
type TeamService interface {
	ListPublic(ctx context.Context) ([]models.TeamMember, error)
	ListAll(ctx context.Context) ([]models.TeamMember, error)
	Create(ctx context.Context, req dto.TeamMemberCreateRequest) (models.TeamMember, error)
	Update(ctx context.Context, id string, req dto.TeamMemberUpdateRequest) (models.TeamMember, error)
	Delete(ctx context.Context, id string) error
}

type teamService struct {
	repo   repository.TeamMemberRepository
	logger zerolog.Logger
}

// NewTeamService constructs a team service.
func NewTeamService(repo repository.TeamMemberRepository, logger zerolog.Logger) TeamService {
	return &teamService{
		repo:   repo,
		logger: logger.With().Str("component", "team_service").Logger(),
	}
}

func (s *teamService) ListPublic(ctx context.Context) ([]models.TeamMember, error) {
	return s.repo.List(ctx, true)
}

func (s *teamService) ListAll(ctx context.Context) ([]models.TeamMember, error) {
	return s.repo.List(ctx, false)
}

func (s *teamService) Create(ctx context.Context, req dto.TeamMemberCreateRequest) (models.TeamMember, error) {
	now := time.Now().UTC()
	return s.repo.Create(ctx, models.TeamMember{
		Name:      req.Name,
		Role:      req.Role,
		ImageURL:  req.ImageURL,
		IsActive:  req.IsActive,
		Order:     req.Order,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *teamService) Update(ctx context.Context, id string, req dto.TeamMemberUpdateRequest) (models.TeamMember, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return models.TeamMember{}, err
	}

	patch := storage.Record{}
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.Role != nil {
		patch["role"] = *req.Role
	}
	if req.ImageURL != nil {
		patch["image_url"] = *req.ImageURL
	}
	if req.IsActive != nil {
		patch["is_active"] = *req.IsActive
	}
	if req.Order != nil {
		patch["order"] = *req.Order
	}
	patch["updated_at"] = repository.NowTimestamp()

	return s.repo.Update(ctx, id, patch)
}

func (s *teamService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return repository.ErrNotFound
	}
	return nil
}
