package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/urokiislama/uroki-api/internal/storage"
)

// memoryClient is an in-memory storage.Client used across the repository tests.
type memoryClient struct {
	tables map[string][]storage.Record
}

func newMemoryClient() *memoryClient {
	return &memoryClient{tables: make(map[string][]storage.Record)}
}

func (m *memoryClient) seed(table string, records ...storage.Record) {
	m.tables[table] = append(m.tables[table], records...)
}

func (m *memoryClient) Kind() storage.Kind {
	return storage.KindPostgres
}

func (m *memoryClient) GetRecord(ctx context.Context, table, keyField, keyValue string) (storage.Record, error) {
	return m.FindOne(ctx, table, storage.Filters{keyField: keyValue})
}

func (m *memoryClient) GetRecords(ctx context.Context, table string, opts storage.QueryOptions) ([]storage.Record, error) {
	matched := make([]storage.Record, 0)
	for _, record := range m.tables[table] {
		if matchesFilters(record, opts.Filters) {
			matched = append(matched, cloneRecord(record))
		}
	}

	if opts.OrderBy != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			return fmt.Sprint(matched[i][opts.OrderBy]) < fmt.Sprint(matched[j][opts.OrderBy])
		})
	}
	if opts.Offset > 0 {
		if opts.Offset >= len(matched) {
			return []storage.Record{}, nil
		}
		matched = matched[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(matched) {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

func (m *memoryClient) CountRecords(ctx context.Context, table string, filters storage.Filters) (int64, error) {
	records, err := m.GetRecords(ctx, table, storage.QueryOptions{Filters: filters})
	if err != nil {
		return 0, err
	}
	return int64(len(records)), nil
}

func (m *memoryClient) FindOne(ctx context.Context, table string, filters storage.Filters) (storage.Record, error) {
	records, err := m.GetRecords(ctx, table, storage.QueryOptions{Filters: filters, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

func (m *memoryClient) CreateRecord(ctx context.Context, table string, data storage.Record) (storage.Record, error) {
	m.tables[table] = append(m.tables[table], cloneRecord(data))
	return cloneRecord(data), nil
}

func (m *memoryClient) UpdateRecord(ctx context.Context, table, keyField, keyValue string, patch storage.Record) (storage.Record, error) {
	for i, record := range m.tables[table] {
		if fmt.Sprint(record[keyField]) == keyValue {
			for field, value := range patch {
				m.tables[table][i][field] = value
			}
			return cloneRecord(m.tables[table][i]), nil
		}
	}
	return nil, nil
}

func (m *memoryClient) DeleteRecord(ctx context.Context, table, keyField, keyValue string) (bool, error) {
	for i, record := range m.tables[table] {
		if fmt.Sprint(record[keyField]) == keyValue {
			m.tables[table] = append(m.tables[table][:i], m.tables[table][i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryClient) ExecuteRawSQL(ctx context.Context, query string) ([]storage.Record, error) {
	return nil, storage.ErrRawSQLUnsupported
}

func (m *memoryClient) Close() error {
	return nil
}

func matchesFilters(record storage.Record, filters storage.Filters) bool {
	for field, expected := range filters {
		switch ops := expected.(type) {
		case map[string]any:
			actual := fmt.Sprint(record[field])
			for op, operand := range ops {
				bound := fmt.Sprint(operand)
				switch op {
				case "$gt":
					if !(actual > bound) {
						return false
					}
				case "$gte":
					if actual < bound {
						return false
					}
				case "$lt":
					if !(actual < bound) {
						return false
					}
				case "$lte":
					if actual > bound {
						return false
					}
				}
			}
		default:
			if fmt.Sprint(record[field]) != fmt.Sprint(expected) {
				return false
			}
		}
	}
	return true
}

func cloneRecord(record storage.Record) storage.Record {
	clone := make(storage.Record, len(record))
	for field, value := range record {
		clone[field] = value
	}
	return clone
}
