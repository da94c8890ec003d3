package repository

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/urokiislama/uroki-api/internal/storage"
)

// ErrNotFound indicates the requested record does not exist in storage.
var ErrNotFound = errors.New("record not found")

// Table names for the typed repositories.
const (
	TableAdminUsers   = "admin_users"
	TableStudents     = "students"
	TableCourses      = "courses"
	TableLessons      = "lessons"
	TableTeamMembers  = "team_members"
	TableStatusChecks = "status_checks"
)

func recordString(record storage.Record, field string) string {
	if value, ok := record[field].(string); ok {
		return value
	}
	return ""
}

func recordInt(record storage.Record, field string) int {
	switch v := record[field].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if parsed, err := v.Int64(); err == nil {
			return int(parsed)
		}
	}
	return 0
}

func recordBool(record storage.Record, field string) bool {
	if value, ok := record[field].(bool); ok {
		return value
	}
	return false
}

// recordTime accepts both native timestamps (direct backend) and the
// RFC3339 strings the hosted API returns.
func recordTime(record storage.Record, field string) time.Time {
	switch v := record[field].(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

func recordTimePtr(record storage.Record, field string) *time.Time {
	parsed := recordTime(record, field)
	if parsed.IsZero() {
		return nil
	}
	return &parsed
}

func recordStringSlice(record storage.Record, field string) []string {
	switch v := record[field].(type) {
	case []string:
		return v
	case []any:
		values := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				values = append(values, s)
			}
		}
		return values
	case string:
		var values []string
		if err := json.Unmarshal([]byte(v), &values); err == nil {
			return values
		}
	}
	return []string{}
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// NowTimestamp returns the canonical storage representation of the current time.
func NowTimestamp() string {
	return timestamp(time.Now())
}

func encodeStringSlice(values []string) string {
	if values == nil {
		values = []string{}
	}
	encoded, _ := json.Marshal(values)
	return string(encoded)
}
