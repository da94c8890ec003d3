package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

type supabaseClient struct {
	http   *resty.Client
	logger zerolog.Logger
}

// NewSupabase configures a stateless client for the Supabase REST API.
func NewSupabase(baseURL, anonKey string, logger zerolog.Logger) (Client, error) {
	if baseURL == "" || anonKey == "" {
		return nil, fmt.Errorf("supabase url and key must not be empty")
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/") + "/rest/v1").
		SetHeader("apikey", anonKey).
		SetHeader("Authorization", "Bearer "+anonKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)

	return &supabaseClient{
		http:   httpClient,
		logger: logger.With().Str("component", "supabase_client").Logger(),
	}, nil
}

func (c *supabaseClient) Kind() Kind {
	return KindSupabase
}

func (c *supabaseClient) GetRecord(ctx context.Context, table, keyField, keyValue string) (Record, error) {
	return c.FindOne(ctx, table, Filters{keyField: keyValue})
}

func (c *supabaseClient) GetRecords(ctx context.Context, table string, opts QueryOptions) ([]Record, error) {
	params := supabaseParams(opts.Filters)
	if opts.OrderBy != "" {
		params.Set("order", opts.OrderBy+".asc")
	}

	// The REST API does not honor offsets reliably, so pagination is
	// emulated by fetching the full ordered result and slicing.
	if opts.Offset <= 0 && opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		Get("/" + table)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("supabase request failed: %s: %s", resp.Status(), resp.String())
	}

	var records []Record
	if err := json.Unmarshal(resp.Body(), &records); err != nil {
		return nil, fmt.Errorf("failed to decode supabase response: %w", err)
	}

	if opts.Offset > 0 {
		if opts.Offset >= len(records) {
			return []Record{}, nil
		}
		records = records[opts.Offset:]
		if opts.Limit > 0 && opts.Limit < len(records) {
			records = records[:opts.Limit]
		}
	}

	return records, nil
}

func (c *supabaseClient) CountRecords(ctx context.Context, table string, filters Filters) (int64, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(supabaseParams(filters)).
		SetQueryParam("select", "id").
		SetHeader("Prefer", "count=exact").
		SetHeader("Range", "0-0").
		Get("/" + table)
	if err != nil {
		return 0, err
	}
	if resp.IsError() {
		return 0, fmt.Errorf("supabase count failed: %s: %s", resp.Status(), resp.String())
	}

	return parseContentRangeTotal(resp.Header().Get("Content-Range"))
}

func (c *supabaseClient) FindOne(ctx context.Context, table string, filters Filters) (Record, error) {
	records, err := c.GetRecords(ctx, table, QueryOptions{Filters: filters, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

func (c *supabaseClient) CreateRecord(ctx context.Context, table string, data Record) (Record, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(data).
		Post("/" + table)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("supabase insert failed: %s: %s", resp.Status(), resp.String())
	}

	return firstRecord(resp.Body(), data)
}

func (c *supabaseClient) UpdateRecord(ctx context.Context, table, keyField, keyValue string, patch Record) (Record, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam(keyField, "eq."+keyValue).
		SetHeader("Prefer", "return=representation").
		SetBody(patch).
		Patch("/" + table)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("supabase update failed: %s: %s", resp.Status(), resp.String())
	}

	var records []Record
	if err := json.Unmarshal(resp.Body(), &records); err != nil {
		return nil, fmt.Errorf("failed to decode supabase response: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

func (c *supabaseClient) DeleteRecord(ctx context.Context, table, keyField, keyValue string) (bool, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam(keyField, "eq."+keyValue).
		SetHeader("Prefer", "return=representation").
		Delete("/" + table)
	if err != nil {
		return false, err
	}
	if resp.IsError() {
		return false, fmt.Errorf("supabase delete failed: %s: %s", resp.Status(), resp.String())
	}

	var records []Record
	if err := json.Unmarshal(resp.Body(), &records); err != nil {
		return false, fmt.Errorf("failed to decode supabase response: %w", err)
	}
	return len(records) > 0, nil
}

func (c *supabaseClient) ExecuteRawSQL(ctx context.Context, query string) ([]Record, error) {
	return nil, ErrRawSQLUnsupported
}

func (c *supabaseClient) Close() error {
	return nil
}

func supabaseParams(filters Filters) url.Values {
	params := url.Values{}
	for field, value := range filters {
		if ops, ok := comparisonOps(value); ok {
			for op, operand := range ops {
				switch op {
				case "$gt":
					params.Set(field, "gt."+formatFilterValue(operand))
				case "$gte":
					params.Set(field, "gte."+formatFilterValue(operand))
				case "$lt":
					params.Set(field, "lt."+formatFilterValue(operand))
				case "$lte":
					params.Set(field, "lte."+formatFilterValue(operand))
				}
			}
			continue
		}
		params.Set(field, "eq."+formatFilterValue(value))
	}
	return params
}

func formatFilterValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// parseContentRangeTotal extracts the total from headers like "0-0/57" or "*/57".
func parseContentRangeTotal(header string) (int64, error) {
	idx := strings.LastIndex(header, "/")
	if idx < 0 || idx == len(header)-1 {
		return 0, fmt.Errorf("missing total in content range %q", header)
	}
	total := header[idx+1:]
	if total == "*" {
		return 0, nil
	}
	return strconv.ParseInt(total, 10, 64)
}

func firstRecord(body []byte, fallback Record) (Record, error) {
	var records []Record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to decode supabase response: %w", err)
	}
	if len(records) == 0 {
		return fallback, nil
	}
	return records[0], nil
}
