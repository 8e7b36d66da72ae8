package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"minka/internal/domains/review/model"
	"minka/internal/domains/review/model/dto"
)

func TestRenderStars(t *testing.T) {
	tests := []struct {
		name   string
		rating int
		want   string
	}{
		{name: "zero rating", rating: 0, want: "☆☆☆☆☆"},
		{name: "one star", rating: 1, want: "★☆☆☆☆"},
		{name: "three stars", rating: 3, want: "★★★☆☆"},
		{name: "full rating", rating: 5, want: "★★★★★"},
		{name: "negative rating clamps to zero", rating: -2, want: "☆☆☆☆☆"},
		{name: "rating above five clamps to five", rating: 9, want: "★★★★★"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dto.RenderStars(tt.rating))
		})
	}
}

func TestCreateReviewRequest_ToModel(t *testing.T) {
	req := dto.CreateReviewRequest{Rating: 4, Comment: "quiet and clean"}

	mod := req.ToModel("house-1", "user-1")

	assert.NotEmpty(t, mod.ID)
	assert.Equal(t, "house-1", mod.HouseID)
	assert.Equal(t, "user-1", mod.UserID)
	assert.Equal(t, 4, mod.Rating)
	assert.Equal(t, "quiet and clean", mod.Comment)
	assert.Equal(t, "user-1", mod.CreatedBy)
}

func TestReviewResponse_FromModel(t *testing.T) {
	mod := model.Review{
		ID:           "review-1",
		HouseID:      "house-1",
		UserID:       "user-1",
		Rating:       2,
		Comment:      "noisy street",
		ReviewerName: "Taro Yamada",
	}

	var res dto.ReviewResponse
	res.FromModel(mod)

	assert.Equal(t, "review-1", res.ID)
	assert.Equal(t, "★★☆☆☆", res.Stars)
	assert.Equal(t, "Taro Yamada", res.ReviewerName)
}

func TestGetReviewsResponse_FromModels(t *testing.T) {
	models := []model.Review{
		{ID: "review-1", Rating: 5},
		{ID: "review-2", Rating: 1},
	}

	var res dto.GetReviewsResponse
	res.FromModels(models, 12, 5)

	assert.Len(t, res.Reviews, 2)
	assert.Equal(t, 12, res.TotalData)
	assert.Equal(t, 3, res.TotalPage)
	assert.Equal(t, "★★★★★", res.Reviews[0].Stars)
}
