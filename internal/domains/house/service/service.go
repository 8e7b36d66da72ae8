package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"minka/config"
	"minka/infras/otel"
	"minka/infras/s3"
	"minka/internal/domains/house/model"
	"minka/internal/domains/house/model/dto"
	"minka/internal/domains/house/repository"
	reviewDto "minka/internal/domains/review/model/dto"
	reviewRepository "minka/internal/domains/review/repository"
	"minka/shared"
	"minka/shared/base64"
	"minka/shared/cache"
	"minka/shared/constant"
	gDto "minka/shared/dto"
	"minka/shared/failure"
)

const (
	cacheGetHouse    = "house:get"
	cacheGetAllHouse = "house:get_all"
	cacheCountHouse  = "house:count"
)

type House interface {
	Create(ctx context.Context, req dto.CreateHouseRequest) error
	Search(ctx context.Context, req dto.SearchHousesRequest) (dto.GetHousesResponse, error)
	Get(ctx context.Context, id string) (dto.HouseResponse, error)
	GetDetail(ctx context.Context, id string, params gDto.QueryParams) (dto.HouseDetailResponse, error)
	Update(ctx context.Context, req dto.UpdateHouseRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.House
	reviewRepo reviewRepository.Review
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	s3         s3.S3
}

func New(repo repository.House, reviewRepo reviewRepository.Review, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) House {
	return &serviceImpl{
		repo:       repo,
		reviewRepo: reviewRepo,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		s3:         s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateHouseRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateHouse")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var imageURL *string

	if req.Image != constant.Empty {
		url, err := s.uploadImage(ctx, req.Image)
		if err != nil {
			return err
		}

		imageURL = &url
	}

	if err = s.repo.Insert(ctx, req.ToModel(user, imageURL)); err != nil {
		log.Error().Err(err).Msg("failed to create house")

		return fmt.Errorf("failed to create house: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllHouse)
		shared.InvalidateCaches(c, s.cache, cacheCountHouse)
	}()

	return nil
}

func (s *serviceImpl) Search(ctx context.Context, req dto.SearchHousesRequest) (res dto.GetHousesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SearchHouses")
	defer scope.End()
	defer scope.TraceIfError(err)

	params, filter := req.ToQuery()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllHouse, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for houses")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count houses")

		return res, fmt.Errorf("failed to count houses: %w", err)
	}

	houses, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get houses")

		return res, fmt.Errorf("failed to get houses: %w", err)
	}

	res.FromModels(houses, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save houses to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.HouseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetHouse")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetHouse, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for house")

		return res, nil
	}

	house, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get house")

		return res, fmt.Errorf("failed to get house: %w", err)
	}

	if house.ID == constant.Empty {
		return res, failure.NotFound("house not found")
	}

	res.FromModel(house)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save house to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetDetail(ctx context.Context, id string, params gDto.QueryParams) (res dto.HouseDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetHouseDetail")
	defer scope.End()
	defer scope.TraceIfError(err)

	house, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get house")

		return res, fmt.Errorf("failed to get house: %w", err)
	}

	if house.ID == constant.Empty {
		return res, failure.NotFound("house not found")
	}

	res.House.FromModel(house)

	if params.Page == 0 {
		params.Page = constant.DefaultValuePage
	}

	if params.Limit == 0 {
		params.Limit = constant.DefaultValueReviewSize
	}

	params.SortBy = reviewRepository.SortByCreatedAt
	params.SortDir = gDto.SortDirDesc

	reviewFilter := reviewRepository.FilterByHouse(id)

	total, err := s.reviewRepo.Count(ctx, reviewFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reviews for house detail")

		return res, fmt.Errorf("failed to count reviews: %w", err)
	}

	reviews, err := s.reviewRepo.GetAll(ctx, params, reviewFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reviews for house detail")

		return res, fmt.Errorf("failed to get reviews: %w", err)
	}

	res.Reviews.FromModels(reviews, total, params.Limit)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == constant.Empty {
		return res, nil
	}

	own, err := s.reviewRepo.Get(ctx, reviewRepository.FilterByHouseAndUser(id, userID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get own review for house detail")

		return res, fmt.Errorf("failed to get own review: %w", err)
	}

	form := &reviewDto.ReviewFormResponse{}

	if own.ID != constant.Empty {
		ownRes := &reviewDto.ReviewResponse{}
		ownRes.FromModel(own)

		res.OwnReview = ownRes
		form.FromModel(own)
	}

	res.ReviewForm = form

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateHouseRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateHouse")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	house, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get house")

		return fmt.Errorf("failed to get house: %w", err)
	}

	if house.ID == constant.Empty {
		return failure.NotFound("house not found")
	}

	updatedFields := shared.TransformFields(req, user)

	if req.Image != constant.Empty {
		url, err := s.uploadImage(ctx, req.Image)
		if err != nil {
			return err
		}

		updatedFields[model.FieldImageURL] = url
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update house")

		return fmt.Errorf("failed to update house: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetHouse, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete house cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllHouse)
		shared.InvalidateCaches(c, s.cache, cacheCountHouse)

		if req.Image != constant.Empty && house.ImageURL != nil {
			s.deleteImage(c, *house.ImageURL)
		}
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteHouse")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	house, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get house for deletion")

		return fmt.Errorf("failed to get house: %w", err)
	}

	if house.ID == constant.Empty {
		return failure.NotFound("house not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete house")

		return fmt.Errorf("failed to delete house: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetHouse, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete house cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllHouse)
		shared.InvalidateCaches(c, s.cache, cacheCountHouse)

		if house.ImageURL != nil {
			s.deleteImage(c, *house.ImageURL)
		}
	}()

	return nil
}

func (s *serviceImpl) uploadImage(ctx context.Context, image string) (url string, err error) {
	contentType := base64.GetContentType(image)

	data, err := base64.GetContent(image)
	if err != nil {
		return constant.Empty, failure.BadRequestFromString("image must be a base64 data URI")
	}

	fileName := uuid.NewString() + imageExtension(contentType)

	url, err = s.s3.UploadFileBytes(ctx, model.EntityName, fileName, contentType, data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload house image")

		return constant.Empty, fmt.Errorf("failed to upload house image: %w", err)
	}

	return url, nil
}

func (s *serviceImpl) deleteImage(ctx context.Context, imageURL string) {
	objectName := s.s3.GetObjectNameFromURL(imageURL)
	if objectName == constant.Empty {
		log.Warn().Str("url", imageURL).Msg("failed to extract object name from URL")

		return
	}

	if err := s.s3.DeleteFile(ctx, model.EntityName, objectName); err != nil {
		log.Error().Err(err).Str("objectName", objectName).Msg("failed to delete house image from S3")
	}
}

func imageExtension(contentType string) string {
	if contentType == "image/png" {
		return ".png"
	}

	return ".jpg"
}
