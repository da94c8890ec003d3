package storage

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewPostgresRequiresDSN(t *testing.T) {
	_, err := NewPostgres("", zerolog.Nop())
	require.Error(t, err)
}

func TestQuoteIdent(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain identifier", input: "students", expected: `"students"`},
		{name: "reserved word", input: "order", expected: `"order"`},
		{name: "schema qualified", input: "public.courses", expected: `"public"."courses"`},
		{name: "injection stripped", input: `students"; DROP TABLE x; --`, expected: `"studentsDROPTABLEx"`},
		{name: "spaces stripped", input: "created at", expected: `"createdat"`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, quoteIdent(tc.input))
		})
	}
}

func TestComparisonOps(t *testing.T) {
	ops, ok := comparisonOps(map[string]any{"$gte": "2024-01-01"})
	require.True(t, ok)
	require.Equal(t, "2024-01-01", ops["$gte"])

	ops, ok = comparisonOps(Filters{"$lt": 10})
	require.True(t, ok)
	require.Equal(t, 10, ops["$lt"])

	_, ok = comparisonOps("plain value")
	require.False(t, ok)

	_, ok = comparisonOps(42)
	require.False(t, ok)
}

func TestSupabaseParamsFromComparisonFilters(t *testing.T) {
	params := supabaseParams(Filters{
		"is_active":    true,
		"total_score":  map[string]any{"$gt": 10},
		"completed_at": map[string]any{"$lte": "2024-06-01T00:00:00Z"},
	})

	require.Equal(t, "eq.true", params.Get("is_active"))
	require.Equal(t, "gt.10", params.Get("total_score"))
	require.Equal(t, "lte.2024-06-01T00:00:00Z", params.Get("completed_at"))
}
