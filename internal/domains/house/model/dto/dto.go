package dto

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"minka/internal/domains/house/model"
	reviewDto "minka/internal/domains/review/model/dto"
	"minka/shared"
	"minka/shared/constant"
	gDto "minka/shared/dto"
	gModel "minka/shared/model"
	"minka/shared/timezone"
)

type CreateHouseRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=255"`
	Description string `json:"description" validate:"required,notblank"`
	Price       int    `json:"price" validate:"required,min=1"`
	Capacity    int    `json:"capacity" validate:"required,min=1"`
	PostalCode  string `json:"postal_code" validate:"required,max=10"`
	Address     string `json:"address" validate:"required,max=255"`
	PhoneNumber string `json:"phone_number" validate:"required,max=20"`
	Image       string `json:"image" validate:"omitempty,mimetypes=image/jpeg image/png,maxfilesize=5"`
}

func (c *CreateHouseRequest) ToModel(user string, imageURL *string) model.House {
	return model.House{
		ID:          uuid.NewString(),
		Name:        c.Name,
		ImageURL:    imageURL,
		Description: c.Description,
		Price:       c.Price,
		Capacity:    c.Capacity,
		PostalCode:  c.PostalCode,
		Address:     c.Address,
		PhoneNumber: c.PhoneNumber,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateHouseRequest struct {
	Name        string `db:"name" json:"name" validate:"omitempty,notblank,max=255"`
	Description string `db:"description" json:"description" validate:"omitempty,notblank"`
	Price       int    `db:"price" json:"price" validate:"omitempty,min=1"`
	Capacity    int    `db:"capacity" json:"capacity" validate:"omitempty,min=1"`
	PostalCode  string `db:"postal_code" json:"postal_code" validate:"omitempty,max=10"`
	Address     string `db:"address" json:"address" validate:"omitempty,max=255"`
	PhoneNumber string `db:"phone_number" json:"phone_number" validate:"omitempty,max=20"`
	Image       string `json:"image" validate:"omitempty,mimetypes=image/jpeg image/png,maxfilesize=5"`
}

type HouseResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	ImageURL    *string `json:"image_url"`
	Description string  `json:"description"`
	Price       int     `json:"price"`
	Capacity    int     `json:"capacity"`
	PostalCode  string  `json:"postal_code"`
	Address     string  `json:"address"`
	PhoneNumber string  `json:"phone_number"`
	gDto.Metadata
}

func (r *HouseResponse) FromModel(model model.House) {
	r.ID = model.ID
	r.Name = model.Name
	r.ImageURL = model.ImageURL
	r.Description = model.Description
	r.Price = model.Price
	r.Capacity = model.Capacity
	r.PostalCode = model.PostalCode
	r.Address = model.Address
	r.PhoneNumber = model.PhoneNumber
	r.Metadata.FromModel(model.Metadata)
}

type GetHousesResponse struct {
	Houses    []HouseResponse `json:"houses"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetHousesResponse) FromModels(models []model.House, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Houses = make([]HouseResponse, len(models))
	for i, mod := range models {
		r.Houses[i].FromModel(mod)
	}
}

// SearchHousesRequest holds the browse filters. When several filters are
// supplied at once, keyword wins over area, and area over max price.
type SearchHousesRequest struct {
	Keyword  string
	Area     string
	MaxPrice *int
	Order    string
	Page     int
	Limit    int
}

func (r *SearchHousesRequest) FromRequest(req *http.Request) {
	query := req.URL.Query()

	r.Keyword = query.Get(constant.RequestParamKeyword)
	r.Area = query.Get(constant.RequestParamArea)
	r.Order = query.Get(constant.RequestParamOrder)

	if price := query.Get(constant.RequestParamPrice); price != "" {
		if priceInt, err := strconv.Atoi(price); err == nil && priceInt >= 0 {
			r.MaxPrice = &priceInt
		}
	}

	var params gDto.QueryParams
	params.FromRequest(req, true)

	r.Page = params.Page
	r.Limit = params.Limit
}

// ToQuery translates the search request into pagination, ordering, and a
// filter group for the house repository.
func (r *SearchHousesRequest) ToQuery() (gDto.QueryParams, gDto.FilterGroup) {
	params := gDto.QueryParams{
		Page:    r.Page,
		Limit:   r.Limit,
		SortBy:  constant.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}

	if r.Order == constant.OrderPriceAsc {
		params.SortBy = model.FieldPrice
		params.SortDir = gDto.SortDirAsc
	}

	var filter gDto.FilterGroup

	switch {
	case r.Keyword != "":
		filter = gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{
					ArgName:  "keyword_name",
					Field:    model.FieldName,
					Operator: gDto.FilterOperatorLike,
					Value:    r.Keyword,
					Table:    model.TableName,
				},
				gDto.Filter{
					ArgName:  "keyword_address",
					Field:    model.FieldAddress,
					Operator: gDto.FilterOperatorLike,
					Value:    r.Keyword,
					Table:    model.TableName,
				},
			},
		}
	case r.Area != "":
		filter = gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{
					Field:    model.FieldAddress,
					Operator: gDto.FilterOperatorLike,
					Value:    r.Area,
					Table:    model.TableName,
				},
			},
		}
	case r.MaxPrice != nil:
		filter = gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{
					Field:    model.FieldPrice,
					Operator: gDto.FilterOperatorLessEq,
					Value:    *r.MaxPrice,
					Table:    model.TableName,
				},
			},
		}
	}

	return params, filter
}

// HouseDetailResponse assembles the house detail page: the house, one page of
// reviews, and the acting user's own review with form defaults when present.
type HouseDetailResponse struct {
	House      HouseResponse                `json:"house"`
	Reviews    reviewDto.GetReviewsResponse `json:"reviews"`
	OwnReview  *reviewDto.ReviewResponse    `json:"own_review,omitempty"`
	ReviewForm *reviewDto.ReviewFormResponse `json:"review_form,omitempty"`
}
