package service

import (
	"context"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/urokiislama/uroki-api/internal/dto"
	"github.com/urokiislama/uroki-api/internal/models"
	"github.com/urokiislama/uroki-api/internal/repository"
	"github.com/urokiislama/uroki-api/internal/storage"
)

// CourseService manages course content.
type CourseService interface {
	ListPublic(ctx context.Context) ([]models.Course, error)
	ListAll(ctx context.Context) ([]models.Course, error)
	Get(ctx context.Context, id string) (models.Course, error)
	Create(ctx context.Context, req dto.CourseCreateRequest) (models.Course, error)
	Update(ctx context.Context, id string, req dto.CourseUpdateRequest) (models.Course, error)
	Delete(ctx context.Context, id string) error
}

type courseService struct {
	repo      repository.CourseRepository
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewCourseService constructs a course service.
func NewCourseService(repo repository.CourseRepository, logger zerolog.Logger) CourseService {
	return &courseService{
		repo:      repo,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "course_service").Logger(),
	}
}

func (s *courseService) ListPublic(ctx context.Context) ([]models.Course, error) {
	return s.repo.List(ctx, true)
}

func (s *courseService) ListAll(ctx context.Context) ([]models.Course, error) {
	return s.repo.List(ctx, false)
}

func (s *courseService) Get(ctx context.Context, id string) (models.Course, error) {
	return s.repo.Get(ctx, id)
}

func (s *courseService) Create(ctx context.Context, req dto.CourseCreateRequest) (models.Course, error) {
	status := req.Status
	if status == "" {
		status = models.CourseStatusDraft
	}

	now := time.Now().UTC()
	return s.repo.Create(ctx, models.Course{
		Title:       req.Title,
		Description: s.sanitizer.Sanitize(req.Description),
		Status:      status,
		Order:       req.Order,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *courseService) Update(ctx context.Context, id string, req dto.CourseUpdateRequest) (models.Course, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return models.Course{}, err
	}

	patch := storage.Record{}
	if req.Title != nil {
		patch["title"] = *req.Title
	}
	if req.Description != nil {
		patch["description"] = s.sanitizer.Sanitize(*req.Description)
	}
	if req.Status != nil {
		patch["status"] = *req.Status
	}
	if req.Order != nil {
		patch["order"] = *req.Order
	}
	patch["updated_at"] = repository.NowTimestamp()

	return s.repo.Update(ctx, id, patch)
}

func (s *courseService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return repository.ErrNotFound
	}
	return nil
}
