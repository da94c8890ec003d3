package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/urokiislama/uroki-api/internal/models"
	"github.com/urokiislama/uroki-api/internal/storage"
)

// StatusCheckRepository provides access to health-check records.
type StatusCheckRepository interface {
	List(ctx context.Context, limit int) ([]models.StatusCheck, error)
	Create(ctx context.Context, check models.StatusCheck) (models.StatusCheck, error)
}

type statusCheckRepository struct {
	client storage.Client
}

// NewStatusCheckRepository constructs a status check repository.
func NewStatusCheckRepository(client storage.Client) StatusCheckRepository {
	return &statusCheckRepository{client: client}
}

func (r *statusCheckRepository) List(ctx context.Context, limit int) ([]models.StatusCheck, error) {
	records, err := r.client.GetRecords(ctx, TableStatusChecks, storage.QueryOptions{Limit: limit})
	if err != nil {
		return nil, err
	}

	checks := make([]models.StatusCheck, 0, len(records))
	for _, record := range records {
		checks = append(checks, models.StatusCheck{
			ID:         recordString(record, "id"),
			ClientName: recordString(record, "client_name"),
			Timestamp:  recordTime(record, "timestamp"),
		})
	}
	return checks, nil
}

func (r *statusCheckRepository) Create(ctx context.Context, check models.StatusCheck) (models.StatusCheck, error) {
	if check.ID == "" {
		check.ID = uuid.NewString()
	}

	record := storage.Record{
		"id":          check.ID,
		"client_name": check.ClientName,
		"timestamp":   timestamp(check.Timestamp),
	}

	created, err := r.client.CreateRecord(ctx, TableStatusChecks, record)
	if err != nil {
		return models.StatusCheck{}, err
	}

	return models.StatusCheck{
		ID:         recordString(created, "id"),
		ClientName: recordString(created, "client_name"),
		Timestamp:  recordTime(created, "timestamp"),
	}, nil
}
