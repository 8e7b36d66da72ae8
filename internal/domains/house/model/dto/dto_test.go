package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"minka/internal/domains/house/model/dto"
	gDto "minka/shared/dto"
)

func intPtr(v int) *int {
	return &v
}

func TestSearchHousesRequest_ToQuery(t *testing.T) {
	tests := []struct {
		name        string
		req         dto.SearchHousesRequest
		wantSortBy  string
		wantSortDir string
		wantFilters int
		wantOp      string
	}{
		{
			name:        "no filters newest first",
			req:         dto.SearchHousesRequest{Page: 1, Limit: 10},
			wantSortBy:  "created_at",
			wantSortDir: "DESC",
			wantFilters: 0,
		},
		{
			name:        "no filters price ascending",
			req:         dto.SearchHousesRequest{Order: "priceAsc", Page: 1, Limit: 10},
			wantSortBy:  "price",
			wantSortDir: "ASC",
			wantFilters: 0,
		},
		{
			name:        "keyword matches name or address",
			req:         dto.SearchHousesRequest{Keyword: "lake", Page: 1, Limit: 10},
			wantSortBy:  "created_at",
			wantSortDir: "DESC",
			wantFilters: 2,
			wantOp:      gDto.FilterGroupOperatorOr,
		},
		{
			name:        "area filters address",
			req:         dto.SearchHousesRequest{Area: "tokyo", Page: 1, Limit: 10},
			wantSortBy:  "created_at",
			wantSortDir: "DESC",
			wantFilters: 1,
		},
		{
			name:        "max price filter with price ordering",
			req:         dto.SearchHousesRequest{MaxPrice: intPtr(10000), Order: "priceAsc", Page: 1, Limit: 10},
			wantSortBy:  "price",
			wantSortDir: "ASC",
			wantFilters: 1,
		},
		{
			name:        "keyword wins over area and price",
			req:         dto.SearchHousesRequest{Keyword: "lake", Area: "tokyo", MaxPrice: intPtr(8000), Page: 1, Limit: 10},
			wantSortBy:  "created_at",
			wantSortDir: "DESC",
			wantFilters: 2,
			wantOp:      gDto.FilterGroupOperatorOr,
		},
		{
			name:        "area wins over price",
			req:         dto.SearchHousesRequest{Area: "tokyo", MaxPrice: intPtr(8000), Page: 1, Limit: 10},
			wantSortBy:  "created_at",
			wantSortDir: "DESC",
			wantFilters: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, filter := tt.req.ToQuery()

			assert.Equal(t, tt.wantSortBy, params.SortBy)
			assert.Equal(t, tt.wantSortDir, params.SortDir)
			assert.Equal(t, tt.req.Page, params.Page)
			assert.Equal(t, tt.req.Limit, params.Limit)
			assert.Len(t, filter.Filters, tt.wantFilters)

			if tt.wantOp != "" {
				assert.Equal(t, tt.wantOp, filter.Operator)
			}
		})
	}
}

func TestSearchHousesRequest_KeywordFilterMatchesNameAndAddress(t *testing.T) {
	req := dto.SearchHousesRequest{Keyword: "lake", Page: 1, Limit: 10}

	_, filter := req.ToQuery()

	where, args := filter.GetWhereClause()

	assert.Contains(t, where, " OR ")
	assert.Equal(t, "%lake%", args["keyword_name"])
	assert.Equal(t, "%lake%", args["keyword_address"])
}

func TestCreateHouseRequest_ToModel(t *testing.T) {
	imageURL := "https://cdn.example.com/house/house.png"
	req := dto.CreateHouseRequest{
		Name:        "Lakeside Cabin",
		Description: "A quiet cabin by the lake",
		Price:       12000,
		Capacity:    4,
		PostalCode:  "100-0001",
		Address:     "Chiyoda, Tokyo",
		PhoneNumber: "03-1234-5678",
	}

	mod := req.ToModel("admin-1", &imageURL)

	assert.NotEmpty(t, mod.ID)
	assert.Equal(t, "Lakeside Cabin", mod.Name)
	assert.Equal(t, &imageURL, mod.ImageURL)
	assert.Equal(t, 12000, mod.Price)
	assert.Equal(t, 4, mod.Capacity)
	assert.Equal(t, "admin-1", mod.CreatedBy)
}
