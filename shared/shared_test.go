package shared_test

import (
	"reflect"
	"testing"
	"time"

	"minka/shared"
	"minka/shared/constant"
	"minka/shared/dto"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{
			name:     "empty string returns nil",
			input:    "",
			expected: nil,
		},
		{
			name:     "valid true string",
			input:    "true",
			expected: boolPtr(true),
		},
		{
			name:     "valid false string",
			input:    "false",
			expected: boolPtr(false),
		},
		{
			name:     "valid 1 string",
			input:    "1",
			expected: boolPtr(true),
		},
		{
			name:     "valid 0 string",
			input:    "0",
			expected: boolPtr(false),
		},
		{
			name:     "invalid string returns nil",
			input:    "invalid",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shared.ConvertStringToBool(tt.input)

			if tt.expected == nil {
				if got != nil {
					t.Errorf("expected nil, got %v", *got)
				}
			} else if got == nil || *got != *tt.expected {
				t.Errorf("expected %v, got %v", *tt.expected, got)
			}
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{
			name:     "zero total returns one page",
			total:    0,
			limit:    10,
			expected: 1,
		},
		{
			name:     "zero limit returns one page",
			total:    25,
			limit:    0,
			expected: 1,
		},
		{
			name:     "exact division",
			total:    20,
			limit:    10,
			expected: 2,
		},
		{
			name:     "rounds up",
			total:    21,
			limit:    10,
			expected: 3,
		},
		{
			name:     "single partial page",
			total:    3,
			limit:    5,
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shared.CalculateTotalPage(tt.total, tt.limit); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestTransformFields(t *testing.T) {
	type updateRequest struct {
		Name    string `db:"name"`
		Address string `db:"address"`
		Price   int    `db:"price"`
		Ignored string
	}

	req := updateRequest{
		Name:    "Lakeside Cottage",
		Price:   12000,
		Ignored: "skipped",
	}

	fields := shared.TransformFields(req, "user-1")

	if fields["name"] != "Lakeside Cottage" {
		t.Errorf("expected name to be set, got %v", fields["name"])
	}

	if fields["price"] != 12000 {
		t.Errorf("expected price to be set, got %v", fields["price"])
	}

	if _, ok := fields["address"]; ok {
		t.Error("expected zero-valued address to be excluded")
	}

	if fields[constant.FieldModifiedBy] != "user-1" {
		t.Errorf("expected modified_by to be user-1, got %v", fields[constant.FieldModifiedBy])
	}

	if _, ok := fields[constant.FieldModifiedAt].(time.Time); !ok {
		t.Error("expected modified_at to be a time.Time")
	}
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("house-1", "id", "houses")

	expected := dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    "id",
				Value:    "house-1",
				Operator: dto.FilterOperatorEq,
				Table:    "houses",
			},
		},
	}

	if !reflect.DeepEqual(filter, expected) {
		t.Errorf("expected %+v, got %+v", expected, filter)
	}
}

func TestBuildCacheKey(t *testing.T) {
	if got := shared.BuildCacheKey("house", "get", "house-1"); got != "house:get:house-1" {
		t.Errorf("expected 'house:get:house-1', got %s", got)
	}
}

func TestBuildCacheKeyWithQuery_Deterministic(t *testing.T) {
	params := dto.QueryParams{Page: 2, Limit: 10, SortBy: "price", SortDir: dto.SortDirAsc}
	filter := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "price", Operator: dto.FilterOperatorLessEq, Value: 10000, Table: "houses"},
		},
	}

	first := shared.BuildCacheKeyWithQuery("house:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("house:gets", params, filter)

	if first != second {
		t.Errorf("expected deterministic cache keys, got %s and %s", first, second)
	}

	other := shared.BuildCacheKeyWithQuery("house:gets", dto.QueryParams{Page: 3, Limit: 10}, filter)
	if first == other {
		t.Error("expected different pages to produce different cache keys")
	}
}

func boolPtr(b bool) *bool {
	return &b
}
