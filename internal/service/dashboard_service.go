package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/urokiislama/uroki-api/internal/dto"
	"github.com/urokiislama/uroki-api/internal/storage"
)

// DashboardService aggregates the admin dashboard counters.
type DashboardService interface {
	Stats(ctx context.Context) (dto.DashboardStats, error)
}

type dashboardService struct {
	client storage.Client
	logger zerolog.Logger
}

// NewDashboardService constructs a dashboard service.
func NewDashboardService(client storage.Client, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		client: client,
		logger: logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func (s *dashboardService) Stats(ctx context.Context) (dto.DashboardStats, error) {
	stats := dto.DashboardStats{}

	counts := []struct {
		target  *int64
		table   string
		filters storage.Filters
	}{
		{&stats.TotalStudents, "students", nil},
		{&stats.TotalCourses, "courses", nil},
		{&stats.TotalLessons, "lessons", nil},
		{&stats.TotalTests, "tests", nil},
		{&stats.TotalTeachers, "teachers", nil},
		{&stats.ActiveStudents, "students", storage.Filters{"is_active": true}},
		{&stats.PendingApplications, "applications", storage.Filters{"status": "pending"}},
	}

	for _, entry := range counts {
		count, err := s.client.CountRecords(ctx, entry.table, entry.filters)
		if err != nil {
			return dto.DashboardStats{}, err
		}
		*entry.target = count
	}

	midnight := time.Now().UTC().Truncate(24 * time.Hour)
	completedToday, err := s.client.CountRecords(ctx, "test_attempts", storage.Filters{
		"completed_at": map[string]any{"$gte": midnight.Format(time.RFC3339)},
	})
	if err != nil {
		return dto.DashboardStats{}, err
	}
	stats.CompletedTestsToday = completedToday

	return stats, nil
}
