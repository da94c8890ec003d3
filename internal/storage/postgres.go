package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type postgresClient struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// NewPostgres opens a pooled connection to PostgreSQL using the provided DSN.
func NewPostgres(dsn string, logger zerolog.Logger) (Client, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn must not be empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return &postgresClient{
		db:     db,
		logger: logger.With().Str("component", "postgres_client").Logger(),
	}, nil
}

func (c *postgresClient) Kind() Kind {
	return KindPostgres
}

func (c *postgresClient) GetRecord(ctx context.Context, table, keyField, keyValue string) (Record, error) {
	return c.FindOne(ctx, table, Filters{keyField: keyValue})
}

func (c *postgresClient) GetRecords(ctx context.Context, table string, opts QueryOptions) ([]Record, error) {
	tx := applyFilters(c.db.WithContext(ctx).Table(quoteIdent(table)), opts.Filters)
	if opts.OrderBy != "" {
		tx = tx.Order(quoteIdent(opts.OrderBy) + " ASC")
	}
	if opts.Limit > 0 {
		tx = tx.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		tx = tx.Offset(opts.Offset)
	}

	var rows []map[string]interface{}
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}

	return toRecords(rows), nil
}

func (c *postgresClient) CountRecords(ctx context.Context, table string, filters Filters) (int64, error) {
	var count int64
	tx := applyFilters(c.db.WithContext(ctx).Table(quoteIdent(table)), filters)
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (c *postgresClient) FindOne(ctx context.Context, table string, filters Filters) (Record, error) {
	records, err := c.GetRecords(ctx, table, QueryOptions{Filters: filters, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

func (c *postgresClient) CreateRecord(ctx context.Context, table string, data Record) (Record, error) {
	payload := map[string]interface{}(data)
	if err := c.db.WithContext(ctx).Table(quoteIdent(table)).Create(&payload).Error; err != nil {
		return nil, err
	}

	if id, ok := data["id"].(string); ok && id != "" {
		created, err := c.GetRecord(ctx, table, "id", id)
		if err != nil {
			return nil, err
		}
		if created != nil {
			return created, nil
		}
	}

	return data, nil
}

func (c *postgresClient) UpdateRecord(ctx context.Context, table, keyField, keyValue string, patch Record) (Record, error) {
	existing, err := c.GetRecord(ctx, table, keyField, keyValue)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	tx := c.db.WithContext(ctx).Table(quoteIdent(table)).
		Where(quoteIdent(keyField)+" = ?", keyValue).
		Updates(map[string]interface{}(patch))
	if tx.Error != nil {
		return nil, tx.Error
	}

	return c.GetRecord(ctx, table, keyField, keyValue)
}

func (c *postgresClient) DeleteRecord(ctx context.Context, table, keyField, keyValue string) (bool, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", quoteIdent(table), quoteIdent(keyField))
	tx := c.db.WithContext(ctx).Exec(query, keyValue)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (c *postgresClient) ExecuteRawSQL(ctx context.Context, query string) ([]Record, error) {
	var rows []map[string]interface{}
	if err := c.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toRecords(rows), nil
}

func (c *postgresClient) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func applyFilters(tx *gorm.DB, filters Filters) *gorm.DB {
	for field, value := range filters {
		column := quoteIdent(field)
		if ops, ok := comparisonOps(value); ok {
			for op, operand := range ops {
				switch op {
				case "$gt":
					tx = tx.Where(column+" > ?", operand)
				case "$gte":
					tx = tx.Where(column+" >= ?", operand)
				case "$lt":
					tx = tx.Where(column+" < ?", operand)
				case "$lte":
					tx = tx.Where(column+" <= ?", operand)
				}
			}
			continue
		}
		tx = tx.Where(column+" = ?", value)
	}
	return tx
}

func comparisonOps(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case Filters:
		return v, true
	default:
		return nil, false
	}
}

// quoteIdent quotes a table or column name so reserved words such as
// "order" stay usable. Anything outside [A-Za-z0-9_.] is stripped.
func quoteIdent(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r == '_' || r == '.' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if strings.Contains(cleaned, ".") {
		parts := strings.SplitN(cleaned, ".", 2)
		return fmt.Sprintf("%q.%q", parts[0], parts[1])
	}
	return fmt.Sprintf("%q", cleaned)
}

func toRecords(rows []map[string]interface{}) []Record {
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, Record(row))
	}
	return records
}
