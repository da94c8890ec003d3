package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/urokiislama/uroki-api/internal/models"
	"github.com/urokiislama/uroki-api/internal/storage"
)

// TeamMemberRepository provides access to team member records.
type TeamMemberRepository interface {
	List(ctx context.Context, activeOnly bool) ([]models.TeamMember, error)
	Get(ctx context.Context, id string) (models.TeamMember, error)
	Create(ctx context.Context, member models.TeamMember) (models.TeamMember, error)
	Update(ctx context.Context, id string, patch storage.Record) (models.TeamMember, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type teamMemberRepository struct {
	client storage.Client
}

// NewTeamMemberRepository constructs a team member repository.
func NewTeamMemberRepository(client storage.Client) TeamMemberRepository {
	return &teamMemberRepository{client: client}
}

func (r *teamMemberRepository) List(ctx context.Context, activeOnly bool) ([]models.TeamMember, error) {
	opts := storage.QueryOptions{OrderBy: "order"}
	if activeOnly {
		opts.Filters = storage.Filters{"is_active": true}
	}

	records, err := r.client.GetRecords(ctx, TableTeamMembers, opts)
	if err != nil {
		return nil, err
	}

	members := make([]models.TeamMember, 0, len(records))
	for _, record := range records {
		members = append(members, teamMemberFromRecord(record))
	}
	return members, nil
}

func (r *teamMemberRepository) Get(ctx context.Context, id string) (models.TeamMember, error) {
	record, err := r.client.GetRecord(ctx, TableTeamMembers, "id", id)
	if err != nil {
		return models.TeamMember{}, err
	}
	if record == nil {
		return models.TeamMember{}, ErrNotFound
	}
	return teamMemberFromRecord(record), nil
}

func (r *teamMemberRepository) Create(ctx context.Context, member models.TeamMember) (models.TeamMember, error) {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}

	record := storage.Record{
		"id":         member.ID,
		"name":       member.Name,
		"role":       member.Role,
		"image_url":  member.ImageURL,
		"is_active":  member.IsActive,
		"order":      member.Order,
		"created_at": timestamp(member.CreatedAt),
		"updated_at": timestamp(member.UpdatedAt),
	}

	created, err := r.client.CreateRecord(ctx, TableTeamMembers, record)
	if err != nil {
		return models.TeamMember{}, err
	}
	return teamMemberFromRecord(created), nil
}

func (r *teamMemberRepository) Update(ctx context.Context, id string, patch storage.Record) (models.TeamMember, error) {
	updated, err := r.client.UpdateRecord(ctx, TableTeamMembers, "id", id, patch)
	if err != nil {
		return models.TeamMember{}, err
	}
	if updated == nil {
		return models.TeamMember{}, ErrNotFound
	}
	return teamMemberFromRecord(updated), nil
}

func (r *teamMemberRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.client.DeleteRecord(ctx, TableTeamMembers, "id", id)
}

func teamMemberFromRecord(record storage.Record) models.TeamMember {
	return models.TeamMember{
		ID:        recordString(record, "id"),
		Name:      recordString(record, "name"),
		Role:      recordString(record, "role"),
		ImageURL:  recordString(record, "image_url"),
		IsActive:  recordBool(record, "is_active"),
		Order:     recordInt(record, "order"),
		CreatedAt: recordTime(record, "created_at"),
		UpdatedAt: recordTime(record, "updated_at"),
	}
}
