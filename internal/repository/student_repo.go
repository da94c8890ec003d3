package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/urokiislama/uroki-api/internal/models"
	"github.com/urokiislama/uroki-api/internal/storage"
)

// StudentRepository provides access to student records.
type StudentRepository interface {
	FindByEmail(ctx context.Context, email string) (models.Student, error)
	Create(ctx context.Context, student models.Student) (models.Student, error)
	TouchActivity(ctx context.Context, email string) error
}

type studentRepository struct {
	client storage.Client
}

// NewStudentRepository constructs a student repository.
func NewStudentRepository(client storage.Client) StudentRepository {
	return &studentRepository{client: client}
}

func (r *studentRepository) FindByEmail(ctx context.Context, email string) (models.Student, error) {
	record, err := r.client.FindOne(ctx, TableStudents, storage.Filters{"email": email})
	if err != nil {
		return models.Student{}, err
	}
	if record == nil {
		return models.Student{}, ErrNotFound
	}
	return studentFromRecord(record), nil
}

func (r *studentRepository) Create(ctx context.Context, student models.Student) (models.Student, error) {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}

	record := storage.Record{
		"id":                student.ID,
		"name":              student.Name,
		"email":             student.Email,
		"total_score":       student.TotalScore,
		"is_active":         student.IsActive,
		"current_level":     student.CurrentLevel,
		"completed_courses": encodeStringSlice(student.CompletedCourses),
		"created_at":        timestamp(student.CreatedAt),
		"last_activity":     timestamp(student.LastActivity),
	}

	created, err := r.client.CreateRecord(ctx, TableStudents, record)
	if err != nil {
		return models.Student{}, err
	}
	return studentFromRecord(created), nil
}

func (r *studentRepository) TouchActivity(ctx context.Context, email string) error {
	_, err := r.client.UpdateRecord(ctx, TableStudents, "email", email, storage.Record{
		"last_activity": NowTimestamp(),
	})
	return err
}

func studentFromRecord(record storage.Record) models.Student {
	return models.Student{
		ID:               recordString(record, "id"),
		Name:             recordString(record, "name"),
		Email:            recordString(record, "email"),
		TotalScore:       recordInt(record, "total_score"),
		IsActive:         recordBool(record, "is_active"),
		CurrentLevel:     recordString(record, "current_level"),
		CompletedCourses: recordStringSlice(record, "completed_courses"),
		CreatedAt:        recordTime(record, "created_at"),
		LastActivity:     recordTime(record, "last_activity"),
	}
}
