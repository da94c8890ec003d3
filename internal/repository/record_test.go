package repository

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/urokiislama/uroki-api/internal/storage"
)

func TestRecordIntCoercion(t *testing.T) {
	record := storage.Record{
		"as_int":     3,
		"as_int64":   int64(4),
		"as_float":   float64(5),
		"as_number":  json.Number("6"),
		"as_garbage": "nope",
	}

	require.Equal(t, 3, recordInt(record, "as_int"))
	require.Equal(t, 4, recordInt(record, "as_int64"))
	require.Equal(t, 5, recordInt(record, "as_float"))
	require.Equal(t, 6, recordInt(record, "as_number"))
	require.Equal(t, 0, recordInt(record, "as_garbage"))
	require.Equal(t, 0, recordInt(record, "missing"))
}

func TestRecordTimeAcceptsStringAndNative(t *testing.T) {
	native := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	record := storage.Record{
		"native":    native,
		"rfc3339":   "2024-05-01T12:30:00Z",
		"naive":     "2024-05-01T12:30:00",
		"malformed": "yesterday",
	}

	require.Equal(t, native, recordTime(record, "native"))
	require.True(t, recordTime(record, "rfc3339").Equal(native))
	require.Equal(t, 2024, recordTime(record, "naive").Year())
	require.True(t, recordTime(record, "malformed").IsZero())
	require.Nil(t, recordTimePtr(record, "malformed"))
	require.NotNil(t, recordTimePtr(record, "rfc3339"))
}

func TestRecordStringSlice(t *testing.T) {
	record := storage.Record{
		"typed":   []string{"a", "b"},
		"generic": []any{"c", 1, "d"},
		"encoded": `["e","f"]`,
		"broken":  "{not json",
	}

	require.Equal(t, []string{"a", "b"}, recordStringSlice(record, "typed"))
	require.Equal(t, []string{"c", "d"}, recordStringSlice(record, "generic"))
	require.Equal(t, []string{"e", "f"}, recordStringSlice(record, "encoded"))
	require.Empty(t, recordStringSlice(record, "broken"))
	require.Empty(t, recordStringSlice(record, "missing"))
}

func TestEncodeStringSlice(t *testing.T) {
	require.Equal(t, `["a","b"]`, encodeStringSlice([]string{"a", "b"}))
	require.Equal(t, `[]`, encodeStringSlice(nil))
}
