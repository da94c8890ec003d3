package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/urokiislama/uroki-api/internal/models"
	"github.com/urokiislama/uroki-api/internal/storage"
)

func TestCourseRepositoryListPublishedOnly(t *testing.T) {
	client := newMemoryClient()
	client.seed(TableCourses,
		storage.Record{"id": "c1", "title": "Tajweed", "status": models.CourseStatusPublished, "order": 2},
		storage.Record{"id": "c2", "title": "Fiqh", "status": models.CourseStatusDraft, "order": 1},
		storage.Record{"id": "c3", "title": "Aqidah", "status": models.CourseStatusPublished, "order": 1},
	)

	repo := NewCourseRepository(client)

	published, err := repo.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, published, 2)
	require.Equal(t, "Aqidah", published[0].Title)
	require.Equal(t, "Tajweed", published[1].Title)

	all, err := repo.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestCourseRepositoryCreateAssignsID(t *testing.T) {
	repo := NewCourseRepository(newMemoryClient())

	created, err := repo.Create(context.Background(), models.Course{Title: "Seerah", Status: models.CourseStatusDraft})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Seerah", created.Title)

	fetched, err := repo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, fetched.ID)
}

func TestCourseRepositoryGetNotFound(t *testing.T) {
	repo := NewCourseRepository(newMemoryClient())

	_, err := repo.Get(context.Background(), "missing")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestCourseRepositoryUpdatePatchesFields(t *testing.T) {
	client := newMemoryClient()
	client.seed(TableCourses, storage.Record{"id": "c1", "title": "Old", "status": models.CourseStatusDraft, "order": 1})

	repo := NewCourseRepository(client)

	updated, err := repo.Update(context.Background(), "c1", storage.Record{"title": "New"})
	require.NoError(t, err)
	require.Equal(t, "New", updated.Title)
	require.Equal(t, models.CourseStatusDraft, updated.Status)

	_, err = repo.Update(context.Background(), "missing", storage.Record{"title": "New"})
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestAdminUserRepositoryLookups(t *testing.T) {
	client := newMemoryClient()
	client.seed(TableAdminUsers, storage.Record{
		"id":       "a1",
		"username": "admin",
		"email":    "admin@urokiislama.ru",
		"role":     models.RoleSuperAdmin,
	})

	repo := NewAdminUserRepository(client)

	byUsername, err := repo.FindByUsername(context.Background(), "admin")
	require.NoError(t, err)
	require.True(t, byUsername.IsSuperAdmin())

	byEmail, err := repo.FindByEmail(context.Background(), "admin@urokiislama.ru")
	require.NoError(t, err)
	require.Equal(t, "a1", byEmail.ID)

	_, err = repo.FindByUsername(context.Background(), "ghost")
	require.True(t, errors.Is(err, ErrNotFound))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestAdminUserRepositoryTouchLastLogin(t *testing.T) {
	client := newMemoryClient()
	client.seed(TableAdminUsers, storage.Record{"id": "a1", "username": "admin"})

	repo := NewAdminUserRepository(client)
	require.NoError(t, repo.TouchLastLogin(context.Background(), "username", "admin"))

	admin, err := repo.FindByUsername(context.Background(), "admin")
	require.NoError(t, err)
	require.NotNil(t, admin.LastLogin)
}
