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
	houseMocks "minka/internal/domains/house/mocks"
	reviewMocks "minka/internal/domains/review/mocks"
	"minka/internal/domains/review/model"
	"minka/internal/domains/review/model/dto"
	"minka/internal/domains/review/service"
	cacheMocks "minka/shared/cache/mocks"
	"minka/shared/constant"
	gDto "minka/shared/dto"
	"minka/shared/failure"
)

func userContext(userID string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
}

func TestReviewService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reviewMocks.NewMockReview(ctrl)
	mockHouseRepo := houseMocks.NewMockHouse(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	svc := service.New(mockRepo, mockHouseRepo, cfg, mockCache, mockOtel)

	req := dto.CreateReviewRequest{Rating: 4, Comment: "great stay"}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			setupMock: func() {
				mockHouseRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					InsertUnique(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr: false,
		},
		{
			name: "house not found",
			setupMock: func() {
				mockHouseRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "duplicate review conflicts",
			setupMock: func() {
				mockHouseRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					InsertUnique(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "insert error",
			setupMock: func() {
				mockHouseRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					InsertUnique(gomock.Any(), gomock.Any()).
					Return(false, errors.New("db error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Create(userContext("user-1"), "house-1", req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}

	time.Sleep(10 * time.Millisecond)
}

func TestReviewService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reviewMocks.NewMockReview(ctrl)
	mockHouseRepo := houseMocks.NewMockHouse(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	svc := service.New(mockRepo, mockHouseRepo, cfg, mockCache, mockOtel)

	ownedReview := model.Review{
		ID:      "review-1",
		HouseID: "house-1",
		UserID:  "user-1",
		Rating:  3,
		Comment: "decent",
	}

	req := dto.UpdateReviewRequest{Rating: 5, Comment: "even better the second time"}

	tests := []struct {
		name      string
		houseID   string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name:    "successful update",
			houseID: "house-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedReview, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:    "review not owned by user",
			houseID: "house-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Review{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:    "house id mismatch",
			houseID: "house-2",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedReview, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Update(userContext("user-1"), tt.houseID, "review-1", req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}

	time.Sleep(10 * time.Millisecond)
}

func TestReviewService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reviewMocks.NewMockReview(ctrl)
	mockHouseRepo := houseMocks.NewMockHouse(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	svc := service.New(mockRepo, mockHouseRepo, cfg, mockCache, mockOtel)

	ownedReview := model.Review{
		ID:      "review-1",
		HouseID: "house-1",
		UserID:  "user-1",
	}

	tests := []struct {
		name      string
		houseID   string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name:    "successful delete",
			houseID: "house-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedReview, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:    "review not found",
			houseID: "house-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Review{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:    "house id mismatch rejected even for owner",
			houseID: "house-9",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedReview, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(userContext("user-1"), tt.houseID, "review-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}

	time.Sleep(10 * time.Millisecond)
}

func TestReviewService_GetAllByHouse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reviewMocks.NewMockReview(ctrl)
	mockHouseRepo := houseMocks.NewMockHouse(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	svc := service.New(mockRepo, mockHouseRepo, cfg, mockCache, mockOtel)

	reviews := []model.Review{
		{ID: "review-2", HouseID: "house-1", Rating: 5, ReviewerName: "Hanako"},
		{ID: "review-1", HouseID: "house-1", Rating: 3, ReviewerName: "Taro"},
	}

	mockRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(7, nil)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Review, error) {
			assert.Equal(t, "reviews.created_at", params.SortBy)
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			return reviews, nil
		})

	res, err := svc.GetAllByHouse(userContext("user-1"), "house-1", gDto.QueryParams{Page: 1, Limit: 5})

	assert.NoError(t, err)
	assert.Len(t, res.Reviews, 2)
	assert.Equal(t, 7, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Equal(t, "★★★★★", res.Reviews[0].Stars)

	time.Sleep(10 * time.Millisecond)
}

func TestReviewService_GetOwnByHouse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reviewMocks.NewMockReview(ctrl)
	mockHouseRepo := houseMocks.NewMockHouse(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	svc := service.New(mockRepo, mockHouseRepo, cfg, mockCache, mockOtel)

	t.Run("own review found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Review{ID: "review-1", HouseID: "house-1", UserID: "user-1", Rating: 4}, nil)

		res, err := svc.GetOwnByHouse(userContext("user-1"), "house-1")

		assert.NoError(t, err)
		assert.Equal(t, "review-1", res.ID)
		assert.Equal(t, "★★★★☆", res.Stars)
	})

	t.Run("no review yet", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Review{}, nil)

		_, err := svc.GetOwnByHouse(userContext("user-1"), "house-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
