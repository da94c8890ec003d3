package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/urokiislama/uroki-api/internal/dto"
	"github.com/urokiislama/uroki-api/internal/models"
	"github.com/urokiislama/uroki-api/internal/repository"
	"github.com/urokiislama/uroki-api/internal/storage"
)

type memoryLessonRepo struct {
	lessons map[string]models.Lesson
	patches map[string]storage.Record
}

func newMemoryLessonRepo() *memoryLessonRepo {
	return &memoryLessonRepo{
		lessons: make(map[string]models.Lesson),
		patches: make(map[string]storage.Record),
	}
}

func (m *memoryLessonRepo) ListByCourse(ctx context.Context, courseID string, publishedOnly bool) ([]models.Lesson, error) {
	lessons := make([]models.Lesson, 0)
	for _, lesson := range m.lessons {
		if lesson.CourseID != courseID {
			continue
		}
		if publishedOnly && !lesson.IsPublished {
			continue
		}
		lessons = append(lessons, lesson)
	}
	return lessons, nil
}

func (m *memoryLessonRepo) Get(ctx context.Context, id string) (models.Lesson, error) {
	if lesson, ok := m.lessons[id]; ok {
		return lesson, nil
	}
	return models.Lesson{}, repository.ErrNotFound
}

func (m *memoryLessonRepo) Create(ctx context.Context, lesson models.Lesson) (models.Lesson, error) {
	if lesson.ID == "" {
		lesson.ID = uuid.NewString()
	}
	m.lessons[lesson.ID] = lesson
	return lesson, nil
}

func (m *memoryLessonRepo) Update(ctx context.Context, id string, patch storage.Record) (models.Lesson, error) {
	lesson, ok := m.lessons[id]
	if !ok {
		return models.Lesson{}, repository.ErrNotFound
	}
	m.patches[id] = patch
	if title, ok := patch["title"].(string); ok {
		lesson.Title = title
	}
	if videoURL, ok := patch["video_url"].(string); ok {
		lesson.VideoURL = videoURL
	}
	if description, ok := patch["description"].(string); ok {
		lesson.Description = description
	}
	m.lessons[id] = lesson
	return lesson, nil
}

func (m *memoryLessonRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := m.lessons[id]; !ok {
		return false, nil
	}
	delete(m.lessons, id)
	return true, nil
}

func TestLessonCreateNormalizesVideoURL(t *testing.T) {
	repo := newMemoryLessonRepo()
	svc := NewLessonService(repo, zerolog.Nop())

	lesson, err := svc.Create(context.Background(), dto.LessonCreateRequest{
		CourseID: "c1",
		Title:    "Intro",
		VideoURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	})
	require.NoError(t, err)
	require.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", lesson.VideoURL)
}

func TestLessonCreateSanitizesDescription(t *testing.T) {
	repo := newMemoryLessonRepo()
	svc := NewLessonService(repo, zerolog.Nop())

	lesson, err := svc.Create(context.Background(), dto.LessonCreateRequest{
		CourseID:    "c1",
		Title:       "Intro",
		Description: `<p>Welcome</p><script>alert("x")</script>`,
	})
	require.NoError(t, err)
	require.Contains(t, lesson.Description, "<p>Welcome</p>")
	require.NotContains(t, lesson.Description, "<script>")
}

func TestLessonUpdateOnlyPatchesProvidedFields(t *testing.T) {
	repo := newMemoryLessonRepo()
	repo.lessons["l1"] = models.Lesson{ID: "l1", CourseID: "c1", Title: "Old", VideoURL: "https://example.com/v.mp4"}

	svc := NewLessonService(repo, zerolog.Nop())

	title := "New title"
	_, err := svc.Update(context.Background(), "l1", dto.LessonUpdateRequest{Title: &title})
	require.NoError(t, err)

	patch := repo.patches["l1"]
	require.Equal(t, "New title", patch["title"])
	require.NotContains(t, patch, "video_url")
	require.NotContains(t, patch, "description")
	require.Contains(t, patch, "updated_at")
}

func TestLessonUpdateMissing(t *testing.T) {
	svc := NewLessonService(newMemoryLessonRepo(), zerolog.Nop())

	title := "New"
	_, err := svc.Update(context.Background(), "missing", dto.LessonUpdateRequest{Title: &title})
	require.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestLessonDeleteMissing(t *testing.T) {
	svc := NewLessonService(newMemoryLessonRepo(), zerolog.Nop())

	err := svc.Delete(context.Background(), "missing")
	require.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestLessonListByCoursePublishedOnly(t *testing.T) {
	repo := newMemoryLessonRepo()
	repo.lessons["l1"] = models.Lesson{ID: "l1", CourseID: "c1", IsPublished: true}
	repo.lessons["l2"] = models.Lesson{ID: "l2", CourseID: "c1", IsPublished: false}
	repo.lessons["l3"] = models.Lesson{ID: "l3", CourseID: "c2", IsPublished: true}

	svc := NewLessonService(repo, zerolog.Nop())

	published, err := svc.ListByCourse(context.Background(), "c1", true)
	require.NoError(t, err)
	require.Len(t, published, 1)
	require.Equal(t, "l1", published[0].ID)
}
