package repository

import (
	"context"

	"github.com/urokiislama/uroki-api/internal/models"
	"github.com/urokiislama/uroki-api/internal/storage"
)

// AdminUserRepository provides access to administrator records.
type AdminUserRepository interface {
	FindByUsername(ctx context.Context, username string) (models.AdminUser, error)
	FindByEmail(ctx context.Context, email string) (models.AdminUser, error)
	TouchLastLogin(ctx context.Context, keyField, keyValue string) error
	Count(ctx context.Context) (int64, error)
}

type adminUserRepository struct {
	client storage.Client
}

// NewAdminUserRepository constructs an admin user repository.
func NewAdminUserRepository(client storage.Client) AdminUserRepository {
	return &adminUserRepository{client: client}
}

func (r *adminUserRepository) FindByUsername(ctx context.Context, username string) (models.AdminUser, error) {
	record, err := r.client.FindOne(ctx, TableAdminUsers, storage.Filters{"username": username})
	if err != nil {
		return models.AdminUser{}, err
	}
	if record == nil {
		return models.AdminUser{}, ErrNotFound
	}
	return AdminUserFromRecord(record), nil
}

func (r *adminUserRepository) FindByEmail(ctx context.Context, email string) (models.AdminUser, error) {
	record, err := r.client.FindOne(ctx, TableAdminUsers, storage.Filters{"email": email})
	if err != nil {
		return models.AdminUser{}, err
	}
	if record == nil {
		return models.AdminUser{}, ErrNotFound
	}
	return AdminUserFromRecord(record), nil
}

func (r *adminUserRepository) TouchLastLogin(ctx context.Context, keyField, keyValue string) error {
	_, err := r.client.UpdateRecord(ctx, TableAdminUsers, keyField, keyValue, storage.Record{
		"last_login": NowTimestamp(),
	})
	return err
}

func (r *adminUserRepository) Count(ctx context.Context) (int64, error) {
	return r.client.CountRecords(ctx, TableAdminUsers, nil)
}

// AdminUserFromRecord maps a generic storage record onto the admin model.
func AdminUserFromRecord(record storage.Record) models.AdminUser {
	return models.AdminUser{
		ID:        recordString(record, "id"),
		Username:  recordString(record, "username"),
		Email:     recordString(record, "email"),
		FullName:  recordString(record, "full_name"),
		Role:      recordString(record, "role"),
		LastLogin: recordTimePtr(record, "last_login"),
		CreatedAt: recordTime(record, "created_at"),
	}
}
