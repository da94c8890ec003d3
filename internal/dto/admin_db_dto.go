package dto

import "github.com/urokiislama/uroki-api/internal/storage"

// TableInfo summarises one database table for the admin console.
type TableInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	RecordCount int64  `json:"record_count"`
}

// ColumnInfo describes one column of a browsed table. For the hosted
// backend the description is inferred from values and may be approximate.
type ColumnInfo struct {
	ColumnName    string `json:"column_name"`
	DataType      string `json:"data_type"`
	IsNullable    string `json:"is_nullable"`
	ColumnDefault any    `json:"column_default"`
}

// TableData is one page of a browsed table plus its structure.
type TableData struct {
	TableName   string           `json:"table_name"`
	Records     []storage.Record `json:"records"`
	TotalCount  int64            `json:"total_count"`
	CurrentPage int              `json:"current_page"`
	PerPage     int              `json:"per_page"`
	Structure   []ColumnInfo     `json:"structure"`
}

// QueryRequest carries raw SQL text for the admin console.
type QueryRequest struct {
	Query string `json:"query" validate:"required"`
}

// QueryResult reports the outcome of a raw SQL execution. Failures are
// carried in the payload instead of an error status so the console always
// gets a renderable response.
type QueryResult struct {
	Success  bool             `json:"success"`
	Query    string           `json:"query"`
	Result   []storage.Record `json:"result"`
	RowCount int              `json:"row_count"`
	Error    string           `json:"error,omitempty"`
}

// StatsEntry is one per-table counter in the database stats report.
type StatsEntry struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// DatabaseStats is the aggregate stats report for the admin console.
type DatabaseStats struct {
	DatabaseType     string                `json:"database_type"`
	ConnectionStatus string                `json:"connection_status"`
	Stats            map[string]StatsEntry `json:"stats"`
	LastUpdated      string                `json:"last_updated"`
}

// BackupResult reports which tables made it into a backup file.
type BackupResult struct {
	Success        bool     `json:"success"`
	BackupFile     string   `json:"backup_file"`
	BackupPath     string   `json:"backup_path"`
	TablesBackedUp []string `json:"tables_backed_up"`
	TotalRecords   int      `json:"total_records"`
	CreatedAt      string   `json:"created_at"`
}

// ConnectionInfo describes the bound backend. Credential previews are only
// populated for super admins.
type ConnectionInfo struct {
	DatabaseType       string          `json:"database_type"`
	UsePostgres        bool            `json:"use_postgres"`
	SupabaseURL        string          `json:"supabase_url"`
	HasSupabaseKey     bool            `json:"has_supabase_key"`
	HasDatabaseURL     bool            `json:"has_database_url"`
	ConnectionStatus   string          `json:"connection_status"`
	ClientsAvailable   map[string]bool `json:"clients_available"`
	SupabaseKeyPreview string          `json:"supabase_key_preview,omitempty"`
	DatabaseURLPreview string          `json:"database_url_preview,omitempty"`
}

// RecordMutation reports the outcome of a generic record operation.
type RecordMutation struct {
	Success       bool           `json:"success"`
	TableName     string         `json:"table_name"`
	RecordID      string         `json:"record_id,omitempty"`
	CreatedRecord storage.Record `json:"created_record,omitempty"`
	UpdatedRecord storage.Record `json:"updated_record,omitempty"`
	Message       string         `json:"message,omitempty"`
}

// DashboardStats aggregates the admin dashboard counters.
type DashboardStats struct {
	TotalStudents       int64 `json:"total_students"`
	TotalCourses        int64 `json:"total_courses"`
	TotalLessons        int64 `json:"total_lessons"`
	TotalTests          int64 `json:"total_tests"`
	TotalTeachers       int64 `json:"total_teachers"`
	ActiveStudents      int64 `json:"active_students"`
	PendingApplications int64 `json:"pending_applications"`
	CompletedTestsToday int64 `json:"completed_tests_today"`
}
