package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/urokiislama/uroki-api/internal/config"
	"github.com/urokiislama/uroki-api/internal/dto"
	"github.com/urokiislama/uroki-api/internal/models"
	"github.com/urokiislama/uroki-api/internal/observability"
	"github.com/urokiislama/uroki-api/internal/repository"
	"github.com/urokiislama/uroki-api/internal/storage"
)

var (
	// ErrQueryEmpty indicates the query text was blank.
	ErrQueryEmpty = errors.New("query cannot be empty")
	// ErrQueryForbidden indicates the caller's role does not permit the query.
	ErrQueryForbidden = errors.New("query forbidden")
	// ErrLastAdmin guards the final remaining admin account.
	ErrLastAdmin = errors.New("cannot delete the last admin user")
	// ErrSelfDelete guards the acting admin's own account.
	ErrSelfDelete = errors.New("cannot delete your own admin account")
	// ErrInvalidTableName rejects table names that are not plain identifiers.
	ErrInvalidTableName = errors.New("invalid table name")
)

// dangerousKeywords escalate a query to super admin when found outside a
// leading SELECT. This is a textual guard only, not a SQL parser.
var dangerousKeywords = []string{"DROP", "DELETE", "TRUNCATE", "ALTER", "CREATE"}

var identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// knownTables enumerates the tables probed when the hosted backend cannot
// introspect the schema. Absent tables are expected and skipped.
var knownTables = []string{
	"courses", "lessons", "tests", "test_questions", "test_attempts",
	"students", "admin_users", "teachers", "team_members",
	"qa_questions", "qa_categories", "applications", "status_checks",
}

// statsTables pairs table names with their display labels for the stats report.
var statsTables = []struct {
	Table string
	Label string
}{
	{"students", "Студенты"},
	{"courses", "Курсы"},
	{"lessons", "Уроки"},
	{"tests", "Тесты"},
	{"test_attempts", "Попытки тестов"},
	{"admin_users", "Администраторы"},
	{"team_members", "Команда"},
	{"qa_questions", "Вопросы Q&A"},
}

// backupTables lists the tables included in a backup export.
var backupTables = []string{
	"courses", "lessons", "tests", "test_questions",
	"students", "admin_users", "team_members", "qa_questions",
}

const (
	backupRecordCap = 10000
	statsCacheKey   = "admin:database:stats"
)

// AdminDatabaseService exposes generic database exploration operations for
// the admin console.
type AdminDatabaseService interface {
	ListTables(ctx context.Context) ([]dto.TableInfo, error)
	BrowseTable(ctx context.Context, table string, limit, offset int) (dto.TableData, error)
	ExecuteQuery(ctx context.Context, query string, actor models.AdminUser) (dto.QueryResult, error)
	Stats(ctx context.Context) (dto.DatabaseStats, error)
	Backup(ctx context.Context) (dto.BackupResult, error)
	ConnectionInfo(actor models.AdminUser) dto.ConnectionInfo
	CreateRecord(ctx context.Context, table string, data storage.Record) (dto.RecordMutation, error)
	UpdateRecord(ctx context.Context, table, recordID string, patch storage.Record) (dto.RecordMutation, error)
	DeleteRecord(ctx context.Context, table, recordID string, actor models.AdminUser) (dto.RecordMutation, error)
}

type adminDatabaseService struct {
	client   storage.Client
	cfg      config.Config
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewAdminDatabaseService constructs the admin database console service.
// The redis client is optional; without it stats reports are uncached.
func NewAdminDatabaseService(client storage.Client, cfg config.Config, cache *redis.Client, logger zerolog.Logger) AdminDatabaseService {
	return &adminDatabaseService{
		client:   client,
		cfg:      cfg,
		cache:    cache,
		cacheTTL: cfg.StatsCacheTTL,
		logger:   logger.With().Str("component", "admin_db_service").Logger(),
	}
}

func (s *adminDatabaseService) ListTables(ctx context.Context) ([]dto.TableInfo, error) {
	if s.client.Kind() == storage.KindPostgres {
		return s.listTablesPostgres(ctx)
	}
	return s.listTablesProbe(ctx), nil
}

func (s *adminDatabaseService) listTablesPostgres(ctx context.Context) ([]dto.TableInfo, error) {
	rows, err := s.client.ExecuteRawSQL(ctx, `
		SELECT table_name, table_type
		FROM information_schema.tables
		WHERE table_schema = 'public'
		ORDER BY table_name;`)
	if err != nil {
		return nil, err
	}

	tables := make([]dto.TableInfo, 0, len(rows))
	for _, row := range rows {
		name, _ := row["table_name"].(string)
		if name == "" {
			continue
		}
		tableType, _ := row["table_type"].(string)
		if tableType == "" {
			tableType = "BASE TABLE"
		}

		var count int64
		countRows, err := s.client.ExecuteRawSQL(ctx, fmt.Sprintf("SELECT COUNT(*) AS count FROM %q;", name))
		if err != nil {
			s.logger.Warn().Err(err).Str("table", name).Msg("failed to count table records")
		} else if len(countRows) > 0 {
			count = toInt64(countRows[0]["count"])
		}

		tables = append(tables, dto.TableInfo{Name: name, Type: tableType, RecordCount: count})
	}
	return tables, nil
}

func (s *adminDatabaseService) listTablesProbe(ctx context.Context) []dto.TableInfo {
	tables := make([]dto.TableInfo, 0, len(knownTables))
	for _, name := range knownTables {
		count, err := s.client.CountRecords(ctx, name, nil)
		if err != nil {
			// Table absence is expected on a partially provisioned project.
			continue
		}
		tables = append(tables, dto.TableInfo{Name: name, Type: "BASE TABLE", RecordCount: count})
	}
	return tables
}

func (s *adminDatabaseService) BrowseTable(ctx context.Context, table string, limit, offset int) (dto.TableData, error) {
	if !identPattern.MatchString(table) {
		return dto.TableData{}, ErrInvalidTableName
	}
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var (
		records   []storage.Record
		total     int64
		structure []dto.ColumnInfo
		err       error
	)

	if s.client.Kind() == storage.KindPostgres {
		records, err = s.client.ExecuteRawSQL(ctx, fmt.Sprintf("SELECT * FROM %q LIMIT %d OFFSET %d;", table, limit, offset))
		if err != nil {
			return dto.TableData{}, err
		}

		countRows, err := s.client.ExecuteRawSQL(ctx, fmt.Sprintf("SELECT COUNT(*) AS count FROM %q;", table))
		if err != nil {
			return dto.TableData{}, err
		}
		if len(countRows) > 0 {
			total = toInt64(countRows[0]["count"])
		}

		structureRows, err := s.client.ExecuteRawSQL(ctx, fmt.Sprintf(`
			SELECT column_name, data_type, is_nullable, column_default
			FROM information_schema.columns
			WHERE table_name = '%s' AND table_schema = 'public'
			ORDER BY ordinal_position;`, table))
		if err != nil {
			return dto.TableData{}, err
		}
		for _, row := range structureRows {
			structure = append(structure, dto.ColumnInfo{
				ColumnName:    recordStringValue(row["column_name"]),
				DataType:      recordStringValue(row["data_type"]),
				IsNullable:    recordStringValue(row["is_nullable"]),
				ColumnDefault: row["column_default"],
			})
		}
	} else {
		records, err = s.client.GetRecords(ctx, table, storage.QueryOptions{Limit: limit, Offset: offset})
		if err != nil {
			return dto.TableData{}, err
		}

		total, err = s.client.CountRecords(ctx, table, nil)
		if err != nil {
			return dto.TableData{}, err
		}

		structure = inferStructure(records)
	}

	if records == nil {
		records = []storage.Record{}
	}

	return dto.TableData{
		TableName:   table,
		Records:     records,
		TotalCount:  total,
		CurrentPage: offset/limit + 1,
		PerPage:     limit,
		Structure:   structure,
	}, nil
}

// inferStructure approximates column types from the first returned record.
// Types may be wrong when the first record carries null or missing fields.
func inferStructure(records []storage.Record) []dto.ColumnInfo {
	if len(records) == 0 {
		return nil
	}

	structure := make([]dto.ColumnInfo, 0, len(records[0]))
	for key, value := range records[0] {
		structure = append(structure, dto.ColumnInfo{
			ColumnName: key,
			DataType:   valueTypeName(value),
			IsNullable: "YES",
		})
	}
	return structure
}

func (s *adminDatabaseService) ExecuteQuery(ctx context.Context, query string, actor models.AdminUser) (dto.QueryResult, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return dto.QueryResult{}, ErrQueryEmpty
	}

	upper := strings.ToUpper(trimmed)
	isSelect := strings.HasPrefix(upper, "SELECT")

	if !actor.IsSuperAdmin() && !isSelect {
		return dto.QueryResult{}, fmt.Errorf("%w: only SELECT queries are allowed for regular admins", ErrQueryForbidden)
	}

	for _, keyword := range dangerousKeywords {
		if strings.Contains(upper, keyword) && !isSelect && !actor.IsSuperAdmin() {
			return dto.QueryResult{}, fmt.Errorf("%w: '%s' operations require super admin privileges", ErrQueryForbidden, keyword)
		}
	}

	result, err := s.client.ExecuteRawSQL(ctx, trimmed)
	if err != nil {
		s.logger.Error().Err(err).Msg("raw query execution failed")
		observability.RawQueries().WithLabelValues("error").Inc()
		return dto.QueryResult{
			Success: false,
			Query:   trimmed,
			Result:  []storage.Record{},
			Error:   err.Error(),
		}, nil
	}

	if result == nil {
		result = []storage.Record{}
	}

	observability.RawQueries().WithLabelValues("ok").Inc()
	return dto.QueryResult{
		Success:  true,
		Query:    trimmed,
		Result:   result,
		RowCount: len(result),
	}, nil
}

func (s *adminDatabaseService) Stats(ctx context.Context) (dto.DatabaseStats, error) {
	if cached, ok := s.cachedStats(ctx); ok {
		return cached, nil
	}

	stats := make(map[string]dto.StatsEntry, len(statsTables)+2)
	for _, entry := range statsTables {
		count, err := s.client.CountRecords(ctx, entry.Table, nil)
		if err != nil {
			count = 0
		}
		stats[entry.Table] = dto.StatsEntry{Name: entry.Label, Count: count}
	}

	if activeStudents, err := s.client.CountRecords(ctx, "students", storage.Filters{"is_active": true}); err == nil {
		stats["active_students"] = dto.StatsEntry{Name: "Активные студенты", Count: activeStudents}
	}
	if publishedCourses, err := s.client.CountRecords(ctx, "courses", storage.Filters{"status": models.CourseStatusPublished}); err == nil {
		stats["published_courses"] = dto.StatsEntry{Name: "Опубликованные курсы", Count: publishedCourses}
	}

	report := dto.DatabaseStats{
		DatabaseType:     s.databaseType(),
		ConnectionStatus: "connected",
		Stats:            stats,
		LastUpdated:      time.Now().UTC().Format(time.RFC3339),
	}

	s.storeStats(ctx, report)
	return report, nil
}

func (s *adminDatabaseService) cachedStats(ctx context.Context) (dto.DatabaseStats, bool) {
	if s.cache == nil {
		return dto.DatabaseStats{}, false
	}

	payload, err := s.cache.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		return dto.DatabaseStats{}, false
	}

	var report dto.DatabaseStats
	if err := json.Unmarshal(payload, &report); err != nil {
		return dto.DatabaseStats{}, false
	}
	return report, true
}

func (s *adminDatabaseService) storeStats(ctx context.Context, report dto.DatabaseStats) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, statsCacheKey, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to cache database stats")
	}
}

func (s *adminDatabaseService) Backup(ctx context.Context) (dto.BackupResult, error) {
	backupData := make(map[string][]storage.Record, len(backupTables))
	backedUp := make([]string, 0, len(backupTables))
	totalRecords := 0

	for _, table := range backupTables {
		records, err := s.client.GetRecords(ctx, table, storage.QueryOptions{Limit: backupRecordCap})
		if err != nil {
			s.logger.Warn().Err(err).Str("table", table).Msg("could not backup table")
			observability.BackupTables().WithLabelValues("skipped").Inc()
			continue
		}
		backupData[table] = records
		backedUp = append(backedUp, table)
		totalRecords += len(records)
		observability.BackupTables().WithLabelValues("ok").Inc()
	}

	filename := fmt.Sprintf("database_backup_%s.json", time.Now().Format("20060102_150405"))
	path := filepath.Join(s.cfg.UploadDir, filename)

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return dto.BackupResult{}, fmt.Errorf("failed to prepare backup directory: %w", err)
	}

	payload, err := json.MarshalIndent(backupData, "", "  ")
	if err != nil {
		return dto.BackupResult{}, fmt.Errorf("failed to serialize backup: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return dto.BackupResult{}, fmt.Errorf("failed to write backup file: %w", err)
	}

	return dto.BackupResult{
		Success:        true,
		BackupFile:     filename,
		BackupPath:     path,
		TablesBackedUp: backedUp,
		TotalRecords:   totalRecords,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (s *adminDatabaseService) ConnectionInfo(actor models.AdminUser) dto.ConnectionInfo {
	supabaseURL := s.cfg.SupabaseURL
	if supabaseURL == "" {
		supabaseURL = "Not set"
	}

	info := dto.ConnectionInfo{
		DatabaseType:     s.databaseType(),
		UsePostgres:      s.cfg.UsePostgres,
		SupabaseURL:      supabaseURL,
		HasSupabaseKey:   s.cfg.SupabaseKey != "",
		HasDatabaseURL:   s.cfg.DatabaseURL != "",
		ConnectionStatus: "connected",
		ClientsAvailable: map[string]bool{
			"postgres": s.cfg.DatabaseURL != "",
			"supabase": s.cfg.SupabaseURL != "" && s.cfg.SupabaseKey != "",
		},
	}

	if actor.IsSuperAdmin() {
		info.SupabaseKeyPreview = preview(s.cfg.SupabaseKey, 20)
		info.DatabaseURLPreview = preview(s.cfg.DatabaseURL, 50)
	}

	return info
}

func (s *adminDatabaseService) CreateRecord(ctx context.Context, table string, data storage.Record) (dto.RecordMutation, error) {
	if data == nil {
		data = storage.Record{}
	}
	if _, ok := data["id"]; !ok {
		data["id"] = uuid.NewString()
	}
	if _, ok := data["created_at"]; !ok {
		data["created_at"] = repository.NowTimestamp()
	}

	created, err := s.client.CreateRecord(ctx, table, data)
	if err != nil {
		return dto.RecordMutation{}, err
	}

	return dto.RecordMutation{
		Success:       true,
		TableName:     table,
		CreatedRecord: created,
	}, nil
}

func (s *adminDatabaseService) UpdateRecord(ctx context.Context, table, recordID string, patch storage.Record) (dto.RecordMutation, error) {
	keyField := "id"
	if table == repository.TableAdminUsers {
		keyField = s.resolveAdminKeyField(ctx, recordID)
	}

	updated, err := s.client.UpdateRecord(ctx, table, keyField, recordID, patch)
	if err != nil {
		return dto.RecordMutation{}, err
	}
	if updated == nil {
		return dto.RecordMutation{}, repository.ErrNotFound
	}

	return dto.RecordMutation{
		Success:       true,
		TableName:     table,
		RecordID:      recordID,
		UpdatedRecord: updated,
	}, nil
}

// resolveAdminKeyField tries id, then email, then username, returning
// whichever field actually matches an existing admin record.
func (s *adminDatabaseService) resolveAdminKeyField(ctx context.Context, recordID string) string {
	for _, field := range []string{"id", "email", "username"} {
		record, err := s.client.GetRecord(ctx, repository.TableAdminUsers, field, recordID)
		if err == nil && record != nil {
			return field
		}
	}
	return "id"
}

func (s *adminDatabaseService) DeleteRecord(ctx context.Context, table, recordID string, actor models.AdminUser) (dto.RecordMutation, error) {
	if table == repository.TableAdminUsers {
		count, err := s.client.CountRecords(ctx, repository.TableAdminUsers, nil)
		if err != nil {
			return dto.RecordMutation{}, err
		}
		if count <= 1 {
			return dto.RecordMutation{}, ErrLastAdmin
		}
		if actor.ID == recordID || actor.Email == recordID {
			return dto.RecordMutation{}, ErrSelfDelete
		}
	}

	deleted, err := s.client.DeleteRecord(ctx, table, "id", recordID)
	if err != nil {
		return dto.RecordMutation{}, err
	}
	if !deleted {
		return dto.RecordMutation{}, repository.ErrNotFound
	}

	return dto.RecordMutation{
		Success:   true,
		TableName: table,
		RecordID:  recordID,
		Message:   fmt.Sprintf("Record %s deleted from %s", recordID, table),
	}, nil
}

func (s *adminDatabaseService) databaseType() string {
	if s.client.Kind() == storage.KindPostgres {
		return "PostgreSQL via Supabase"
	}
	return "Supabase API"
}

func preview(value string, max int) string {
	if value == "" {
		return ""
	}
	if len(value) > max {
		value = value[:max]
	}
	return value + "..."
}

func valueTypeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "str"
	case bool:
		return "bool"
	case float64, float32:
		return "float"
	case int, int32, int64:
		return "int"
	case map[string]any:
		return "dict"
	case []any:
		return "list"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func recordStringValue(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

func toInt64(value any) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case float64:
		return int64(v)
	case json.Number:
		if parsed, err := v.Int64(); err == nil {
			return parsed
		}
	}
	return 0
}
