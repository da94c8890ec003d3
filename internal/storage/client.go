package storage

import (
	"context"
	"errors"
)

// Record is a flat field to value mapping representing one row in a named table.
type Record map[string]any

// Filters maps field names to exact-match values or to comparison
// sub-mappings such as {"$gte": value}.
type Filters map[string]any

// QueryOptions narrows a GetRecords call.
type QueryOptions struct {
	Filters Filters
	OrderBy string
	Limit   int
	Offset  int
}

// Kind identifies which backend a client talks to.
type Kind string

// Supported backend kinds.
const (
	KindPostgres Kind = "postgres"
	KindSupabase Kind = "supabase"
)

var (
	// ErrNoBackend indicates no storage backend could be bound at startup.
	ErrNoBackend = errors.New("no database client available")
	// ErrRawSQLUnsupported indicates the bound backend cannot execute raw SQL.
	ErrRawSQLUnsupported = errors.New("raw SQL is not supported by this backend")
)

// Client is the storage contract implemented by both backends. Lookups
// return a nil Record (and nil error) when no row matches.
type Client interface {
	Kind() Kind
	GetRecord(ctx context.Context, table, keyField, keyValue string) (Record, error)
	GetRecords(ctx context.Context, table string, opts QueryOptions) ([]Record, error)
	CountRecords(ctx context.Context, table string, filters Filters) (int64, error)
	FindOne(ctx context.Context, table string, filters Filters) (Record, error)
	CreateRecord(ctx context.Context, table string, data Record) (Record, error)
	UpdateRecord(ctx context.Context, table, keyField, keyValue string, patch Record) (Record, error)
	DeleteRecord(ctx context.Context, table, keyField, keyValue string) (bool, error)
	ExecuteRawSQL(ctx context.Context, query string) ([]Record, error)
	Close() error
}
