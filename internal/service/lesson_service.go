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
	"github.com/urokiislama/uroki-api/internal/utils"
)

// LessonService manages lesson content. Video URLs are normalized to the
// embeddable YouTube form on every write.
type LessonService interface {
	ListByCourse(ctx context.Context, courseID string, publishedOnly bool) ([]models.Lesson, error)
	Get(ctx context.Context, id string) (models.Lesson, error)
	Create(ctx context.Context, req dto.LessonCreateRequest) (models.Lesson, error)
	Update(ctx context.Context, id string, req dto.LessonUpdateRequest) (models.Lesson, error)
	Delete(ctx context.Context, id string) error
}

type lessonService struct {
	repo      repository.LessonRepository
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewLessonService constructs a lesson service.
func NewLessonService(repo repository.LessonRepository, logger zerolog.Logger) LessonService {
	return &lessonService{
		repo:      repo,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "lesson_service").Logger(),
	}
}

func (s *lessonService) ListByCourse(ctx context.Context, courseID string, publishedOnly bool) ([]models.Lesson, error) {
	return s.repo.ListByCourse(ctx, courseID, publishedOnly)
}

func (s *lessonService) Get(ctx context.Context, id string) (models.Lesson, error) {
	return s.repo.Get(ctx, id)
}

func (s *lessonService) Create(ctx context.Context, req dto.LessonCreateRequest) (models.Lesson, error) {
	now := time.Now().UTC()
	return s.repo.Create(ctx, models.Lesson{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: s.sanitizer.Sanitize(req.Description),
		VideoURL:    utils.ConvertToEmbedURL(req.VideoURL),
		IsPublished: req.IsPublished,
		Order:       req.Order,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *lessonService) Update(ctx context.Context, id string, req dto.LessonUpdateRequest) (models.Lesson, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return models.Lesson{}, err
	}

	patch := storage.Record{}
	if req.Title != nil {
		patch["title"] = *req.Title
	}
	if req.Description != nil {
		patch["description"] = s.sanitizer.Sanitize(*req.Description)
	}
	if req.VideoURL != nil {
		patch["video_url"] = utils.ConvertToEmbedURL(*req.VideoURL)
	}
	if req.IsPublished != nil {
		patch["is_published"] = *req.IsPublished
	}
	if req.Order != nil {
		patch["order"] = *req.Order
	}
	patch["updated_at"] = repository.NowTimestamp()

	return s.repo.Update(ctx, id, patch)
}

func (s *lessonService) Delete(ctx context.Context, id string) error {
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
