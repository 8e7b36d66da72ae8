package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"minka/shared/dto"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name: "eq operator with table",
			filter: dto.Filter{
				Field:    "id",
				Value:    "house-1",
				Operator: dto.FilterOperatorEq,
				Table:    "houses",
			},
			wantWhere: "houses.id = :id",
			wantArgs:  map[string]any{"id": "house-1"},
		},
		{
			name: "like operator wraps value",
			filter: dto.Filter{
				Field:    "address",
				Value:    "tokyo",
				Operator: dto.FilterOperatorLike,
				Table:    "houses",
			},
			wantWhere: "LOWER(houses.address) LIKE LOWER(:address) ",
			wantArgs:  map[string]any{"address": "%tokyo%"},
		},
		{
			name: "less-eq operator",
			filter: dto.Filter{
				Field:    "price",
				Value:    10000,
				Operator: dto.FilterOperatorLessEq,
				Table:    "houses",
			},
			wantWhere: "houses.price <= :price",
			wantArgs:  map[string]any{"price": 10000},
		},
		{
			name: "custom arg name",
			filter: dto.Filter{
				ArgName:  "keyword_name",
				Field:    "name",
				Value:    "lake",
				Operator: dto.FilterOperatorLike,
				Table:    "houses",
			},
			wantWhere: "LOWER(houses.name) LIKE LOWER(:keyword_name) ",
			wantArgs:  map[string]any{"keyword_name": "%lake%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorOr,
		Filters: []any{
			dto.Filter{ArgName: "keyword_name", Field: "name", Value: "lake", Operator: dto.FilterOperatorLike, Table: "houses"},
			dto.Filter{ArgName: "keyword_address", Field: "address", Value: "lake", Operator: dto.FilterOperatorLike, Table: "houses"},
		},
	}

	where, args := group.GetWhereClause()

	assert.Contains(t, where, " OR ")
	assert.Len(t, args, 2)
	assert.Equal(t, "%lake%", args["keyword_name"])
	assert.Equal(t, "%lake%", args["keyword_address"])
}

func TestFilterGroup_Empty(t *testing.T) {
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	where, args := group.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestFilterGroup_Nested(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "house_id", Value: "house-1", Operator: dto.FilterOperatorEq, Table: "reviews"},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{ArgName: "kw_name", Field: "name", Value: "lake", Operator: dto.FilterOperatorLike, Table: "houses"},
					dto.Filter{ArgName: "kw_address", Field: "address", Value: "lake", Operator: dto.FilterOperatorLike, Table: "houses"},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Contains(t, where, " AND ")
	assert.Contains(t, where, " OR ")
	assert.Len(t, args, 3)
}
