package dto

import (
	"strings"

	"github.com/google/uuid"

	"minka/internal/domains/review/model"
	"minka/shared"
	gDto "minka/shared/dto"
	gModel "minka/shared/model"
	"minka/shared/timezone"
)

const maxStars = 5

// RenderStars renders a rating as filled and hollow star runes. Ratings
// outside [0,5] are clamped before rendering.
func RenderStars(rating int) string {
	filled := rating
	if filled < 0 {
		filled = 0
	}

	if filled > maxStars {
		filled = maxStars
	}

	return strings.Repeat("★", filled) + strings.Repeat("☆", maxStars-filled)
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,notblank,max=500"`
}

func (c *CreateReviewRequest) ToModel(houseID, userID string) model.Review {
	return model.Review{
		ID:      uuid.NewString(),
		HouseID: houseID,
		UserID:  userID,
		Rating:  c.Rating,
		Comment: c.Comment,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

type UpdateReviewRequest struct {
	Rating  int    `db:"rating" json:"rating" validate:"required,min=1,max=5"`
	Comment string `db:"comment" json:"comment" validate:"required,notblank,max=500"`
}

type ReviewResponse struct {
	ID           string `json:"id"`
	HouseID      string `json:"house_id"`
	Rating       int    `json:"rating"`
	Stars        string `json:"stars"`
	Comment      string `json:"comment"`
	ReviewerName string `json:"reviewer_name"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(model model.Review) {
	r.ID = model.ID
	r.HouseID = model.HouseID
	r.Rating = model.Rating
	r.Stars = RenderStars(model.Rating)
	r.Comment = model.Comment
	r.ReviewerName = model.ReviewerName
	r.Metadata.FromModel(model.Metadata)
}

type GetReviewsResponse struct {
	Reviews   []ReviewResponse `json:"reviews"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetReviewsResponse) FromModels(models []model.Review, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reviews = make([]ReviewResponse, len(models))
	for i, mod := range models {
		r.Reviews[i].FromModel(mod)
	}
}

// ReviewFormResponse carries defaults for the review form on the house detail
// page, prefilled from the acting user's existing review when there is one.
type ReviewFormResponse struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (r *ReviewFormResponse) FromModel(model model.Review) {
	r.Rating = model.Rating
	r.Comment = model.Comment
}
