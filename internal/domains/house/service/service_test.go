package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"minka/config"
	"minka/infras/otel/mocks"
	s3Mocks "minka/infras/s3/mocks"
	houseMocks "minka/internal/domains/house/mocks"
	"minka/internal/domains/house/model"
	"minka/internal/domains/house/model/dto"
	"minka/internal/domains/house/service"
	reviewMocks "minka/internal/domains/review/mocks"
	reviewModel "minka/internal/domains/review/model"
	cacheMocks "minka/shared/cache/mocks"
	"minka/shared/constant"
	gDto "minka/shared/dto"
	"minka/shared/failure"
)

type houseFixture struct {
	repo       *houseMocks.MockHouse
	reviewRepo *reviewMocks.MockReview
	cache      *cacheMocks.MockRedisCache
	s3         *s3Mocks.MockS3
	svc        service.House
}

func newFixture(t *testing.T) houseFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := houseMocks.NewMockHouse(ctrl)
	reviewRepo := reviewMocks.NewMockReview(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	return houseFixture{
		repo:       repo,
		reviewRepo: reviewRepo,
		cache:      mockCache,
		s3:         mockS3,
		svc:        service.New(repo, reviewRepo, cfg, mockCache, mockOtel, mockS3),
	}
}

func TestHouseService_Create(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	req := dto.CreateHouseRequest{
		Name:        "Lakeside Cabin",
		Description: "A quiet cabin by the lake",
		Price:       12000,
		Capacity:    4,
		PostalCode:  "100-0001",
		Address:     "Chiyoda, Tokyo",
		PhoneNumber: "03-1234-5678",
	}

	t.Run("without image", func(t *testing.T) {
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, mod model.House) error {
				assert.Equal(t, "Lakeside Cabin", mod.Name)
				assert.Nil(t, mod.ImageURL)

				return nil
			})

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
		assert.NoError(t, f.svc.Create(ctx, req))
	})

	t.Run("with image", func(t *testing.T) {
		withImage := req
		withImage.Image = "data:image/png;base64,aVZCT1J3MEtHZ28="

		f.s3.EXPECT().
			UploadFileBytes(gomock.Any(), model.EntityName, gomock.Any(), "image/png", gomock.Any()).
			Return("https://cdn.example.com/house/img.png", nil)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, mod model.House) error {
				assert.NotNil(t, mod.ImageURL)
				assert.Equal(t, "https://cdn.example.com/house/img.png", *mod.ImageURL)

				return nil
			})

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
		assert.NoError(t, f.svc.Create(ctx, withImage))
	})

	t.Run("upload failure", func(t *testing.T) {
		withImage := req
		withImage.Image = "data:image/png;base64,aVZCT1J3MEtHZ28="

		f.s3.EXPECT().
			UploadFileBytes(gomock.Any(), model.EntityName, gomock.Any(), "image/png", gomock.Any()).
			Return("", errors.New("s3 unavailable"))

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
		assert.Error(t, f.svc.Create(ctx, withImage))
	})

	time.Sleep(10 * time.Millisecond)
}

func TestHouseService_Search(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	houses := []model.House{
		{ID: "house-2", Name: "Lakeside Cabin", Price: 8000},
		{ID: "house-1", Name: "Lake View Lodge", Price: 12000},
	}

	f.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(2, nil)

	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.House, error) {
			assert.Equal(t, "created_at", params.SortBy)
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			_, args := filter.GetWhereClause()
			assert.Equal(t, "%lake%", args["keyword_name"])

			return houses, nil
		})

	res, err := f.svc.Search(context.Background(), dto.SearchHousesRequest{Keyword: "lake", Page: 1, Limit: 10})

	assert.NoError(t, err)
	assert.Len(t, res.Houses, 2)
	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)

	time.Sleep(10 * time.Millisecond)
}

func TestHouseService_Get(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	t.Run("found", func(t *testing.T) {
		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.House{ID: "house-1", Name: "Lakeside Cabin"}, nil)

		res, err := f.svc.Get(context.Background(), "house-1")

		assert.NoError(t, err)
		assert.Equal(t, "Lakeside Cabin", res.Name)
	})

	t.Run("not found", func(t *testing.T) {
		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.House{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	time.Sleep(10 * time.Millisecond)
}

func TestHouseService_GetDetail(t *testing.T) {
	f := newFixture(t)

	house := model.House{ID: "house-1", Name: "Lakeside Cabin", Price: 12000, Capacity: 4}

	reviews := []reviewModel.Review{
		{ID: "review-2", HouseID: "house-1", Rating: 5, ReviewerName: "Hanako"},
		{ID: "review-1", HouseID: "house-1", Rating: 3, ReviewerName: "Taro"},
	}

	t.Run("anonymous user gets reviews but no form", func(t *testing.T) {
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(house, nil)
		f.reviewRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(8, nil)
		f.reviewRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]reviewModel.Review, error) {
				assert.Equal(t, constant.DefaultValueReviewSize, params.Limit)
				assert.Equal(t, "reviews.created_at", params.SortBy)
				assert.Equal(t, gDto.SortDirDesc, params.SortDir)

				return reviews, nil
			})

		res, err := f.svc.GetDetail(context.Background(), "house-1", gDto.QueryParams{})

		assert.NoError(t, err)
		assert.Equal(t, "Lakeside Cabin", res.House.Name)
		assert.Len(t, res.Reviews.Reviews, 2)
		assert.Equal(t, 8, res.Reviews.TotalData)
		assert.Nil(t, res.OwnReview)
		assert.Nil(t, res.ReviewForm)
	})

	t.Run("logged-in user with own review gets prefilled form", func(t *testing.T) {
		own := reviewModel.Review{ID: "review-1", HouseID: "house-1", UserID: "user-1", Rating: 3, Comment: "decent"}

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(house, nil)
		f.reviewRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(8, nil)
		f.reviewRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(reviews, nil)
		f.reviewRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(own, nil)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")
		res, err := f.svc.GetDetail(ctx, "house-1", gDto.QueryParams{})

		assert.NoError(t, err)
		assert.NotNil(t, res.OwnReview)
		assert.Equal(t, "★★★☆☆", res.OwnReview.Stars)
		assert.NotNil(t, res.ReviewForm)
		assert.Equal(t, 3, res.ReviewForm.Rating)
		assert.Equal(t, "decent", res.ReviewForm.Comment)
	})

	t.Run("logged-in user without review gets empty form", func(t *testing.T) {
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(house, nil)
		f.reviewRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(8, nil)
		f.reviewRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(reviews, nil)
		f.reviewRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reviewModel.Review{}, nil)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-2")
		res, err := f.svc.GetDetail(ctx, "house-1", gDto.QueryParams{})

		assert.NoError(t, err)
		assert.Nil(t, res.OwnReview)
		assert.NotNil(t, res.ReviewForm)
		assert.Zero(t, res.ReviewForm.Rating)
		assert.Empty(t, res.ReviewForm.Comment)
	})

	t.Run("house not found", func(t *testing.T) {
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.House{}, nil)

		_, err := f.svc.GetDetail(context.Background(), "missing", gDto.QueryParams{})

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestHouseService_Delete(t *testing.T) {
	f := newFixture(t)

	imageURL := "https://cdn.example.com/house/img.png"

	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.s3.EXPECT().GetObjectNameFromURL(imageURL).Return("house/img.png").AnyTimes()
	f.s3.EXPECT().DeleteFile(gomock.Any(), model.EntityName, "house/img.png").Return(nil).AnyTimes()

	t.Run("successful delete", func(t *testing.T) {
		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.House{ID: "house-1", ImageURL: &imageURL}, nil)

		f.repo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		assert.NoError(t, f.svc.Delete(context.Background(), "house-1"))
	})

	t.Run("not found", func(t *testing.T) {
		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.House{}, nil)

		err := f.svc.Delete(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	time.Sleep(20 * time.Millisecond)
}
