package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/urokiislama/uroki-api/internal/models"
	"github.com/urokiislama/uroki-api/internal/storage"
)

// CourseRepository provides access to course records.
type CourseRepository interface {
	List(ctx context.Context, publishedOnly bool) ([]models.Course, error)
	Get(ctx context.Context, id string) (models.Course, error)
	Create(ctx context.Context, course models.Course) (models.Course, error)
	Update(ctx context.Context, id string, patch storage.Record) (models.Course, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type courseRepository struct {
	client storage.Client
}

// NewCourseRepository constructs a course repository.
func NewCourseRepository(client storage.Client) CourseRepository {
	return &courseRepository{client: client}
}

func (r *courseRepository) List(ctx context.Context, publishedOnly bool) ([]models.Course, error) {
	opts := storage.QueryOptions{OrderBy: "order"}
	if publishedOnly {
		opts.Filters = storage.Filters{"status": models.CourseStatusPublished}
	}

	records, err := r.client.GetRecords(ctx, TableCourses, opts)
	if err != nil {
		return nil, err
	}

	courses := make([]models.Course, 0, len(records))
	for _, record := range records {
		courses = append(courses, courseFromRecord(record))
	}
	return courses, nil
}

func (r *courseRepository) Get(ctx context.Context, id string) (models.Course, error) {
	record, err := r.client.GetRecord(ctx, TableCourses, "id", id)
	if err != nil {
		return models.Course{}, err
	}
	if record == nil {
		return models.Course{}, ErrNotFound
	}
	return courseFromRecord(record), nil
}

func (r *courseRepository) Create(ctx context.Context, course models.Course) (models.Course, error) {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}

	record := storage.Record{
		"id":          course.ID,
		"title":       course.Title,
		"description": course.Description,
		"status":      course.Status,
		"order":       course.Order,
		"created_at":  timestamp(course.CreatedAt),
		"updated_at":  timestamp(course.UpdatedAt),
	}

	created, err := r.client.CreateRecord(ctx, TableCourses, record)
	if err != nil {
		return models.Course{}, err
	}
	return courseFromRecord(created), nil
}

func (r *courseRepository) Update(ctx context.Context, id string, patch storage.Record) (models.Course, error) {
	updated, err := r.client.UpdateRecord(ctx, TableCourses, "id", id, patch)
	if err != nil {
		return models.Course{}, err
	}
	if updated == nil {
		return models.Course{}, ErrNotFound
	}
	return courseFromRecord(updated), nil
}

func (r *courseRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.client.DeleteRecord(ctx, TableCourses, "id", id)
}

func courseFromRecord(record storage.Record) models.Course {
	return models.Course{
		ID:          recordString(record, "id"),
		Title:       recordString(record, "title"),
		Description: recordString(record, "description"),
		Status:      recordString(record, "status"),
		Order:       recordInt(record, "order"),
		CreatedAt:   recordTime(record, "created_at"),
		UpdatedAt:   recordTime(record, "updated_at"),
	}
}
