package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/urokiislama/uroki-api/internal/models"
	"github.com/urokiislama/uroki-api/internal/storage"
)

// LessonRepository provides access to lesson records.
type LessonRepository interface {
	ListByCourse(ctx context.Context, courseID string, publishedOnly bool) ([]models.Lesson, error)
	Get(ctx context.Context, id string) (models.Lesson, error)
	Create(ctx context.Context, lesson models.Lesson) (models.Lesson, error)
	Update(ctx context.Context, id string, patch storage.Record) (models.Lesson, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type lessonRepository struct {
	client storage.Client
}

// NewLessonRepository constructs a lesson repository.
func NewLessonRepository(client storage.Client) LessonRepository {
	return &lessonRepository{client: client}
}

func (r *lessonRepository) ListByCourse(ctx context.Context, courseID string, publishedOnly bool) ([]models.Lesson, error) {
	filters := storage.Filters{"course_id": courseID}
	if publishedOnly {
		filters["is_published"] = true
	}

	records, err := r.client.GetRecords(ctx, TableLessons, storage.QueryOptions{
		Filters: filters,
		OrderBy: "order",
	})
	if err != nil {
		return nil, err
	}

	lessons := make([]models.Lesson, 0, len(records))
	for _, record := range records {
		lessons = append(lessons, lessonFromRecord(record))
	}
	return lessons, nil
}

func (r *lessonRepository) Get(ctx context.Context, id string) (models.Lesson, error) {
	record, err := r.client.GetRecord(ctx, TableLessons, "id", id)
	if err != nil {
		return models.Lesson{}, err
	}
	if record == nil {
		return models.Lesson{}, ErrNotFound
	}
	return lessonFromRecord(record), nil
}

func (r *lessonRepository) Create(ctx context.Context, lesson models.Lesson) (models.Lesson, error) {
	if lesson.ID == "" {
		lesson.ID = uuid.NewString()
	}

	record := storage.Record{
		"id":           lesson.ID,
		"course_id":    lesson.CourseID,
		"title":        lesson.Title,
		"description":  lesson.Description,
		"video_url":    lesson.VideoURL,
		"is_published": lesson.IsPublished,
		"order":        lesson.Order,
		"created_at":   timestamp(lesson.CreatedAt),
		"updated_at":   timestamp(lesson.UpdatedAt),
	}

	created, err := r.client.CreateRecord(ctx, TableLessons, record)
	if err != nil {
		return models.Lesson{}, err
	}
	return lessonFromRecord(created), nil
}

func (r *lessonRepository) Update(ctx context.Context, id string, patch storage.Record) (models.Lesson, error) {
	updated, err := r.client.UpdateRecord(ctx, TableLessons, "id", id, patch)
	if err != nil {
		return models.Lesson{}, err
	}
	if updated == nil {
		return models.Lesson{}, ErrNotFound
	}
	return lessonFromRecord(updated), nil
}

func (r *lessonRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.client.DeleteRecord(ctx, TableLessons, "id", id)
}

func lessonFromRecord(record storage.Record) models.Lesson {
	return models.Lesson{
		ID:          recordString(record, "id"),
		CourseID:    recordString(record, "course_id"),
		Title:       recordString(record, "title"),
		Description: recordString(record, "description"),
		VideoURL:    recordString(record, "video_url"),
		IsPublished: recordBool(record, "is_published"),
		Order:       recordInt(record, "order"),
		CreatedAt:   recordTime(record, "created_at"),
		UpdatedAt:   recordTime(record, "updated_at"),
	}
}
