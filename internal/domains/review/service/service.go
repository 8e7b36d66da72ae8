package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"minka/config"
	"minka/infras/otel"
	houseModel "minka/internal/domains/house/model"
	houseRepo "minka/internal/domains/house/repository"
	"minka/internal/domains/review/model"
	"minka/internal/domains/review/model/dto"
	"minka/internal/domains/review/repository"
	"minka/shared"
	"minka/shared/cache"
	"minka/shared/constant"
	gDto "minka/shared/dto"
	"minka/shared/failure"
)

const (
	cacheGetAllReview = "review:get_all"
	cacheCountReview  = "review:count"
)

type Review interface {
	Create(ctx context.Context, houseID string, req dto.CreateReviewRequest) error
	Update(ctx context.Context, houseID, reviewID string, req dto.UpdateReviewRequest) error
	Delete(ctx context.Context, houseID, reviewID string) error
	GetAllByHouse(ctx context.Context, houseID string, params gDto.QueryParams) (dto.GetReviewsResponse, error)
	GetOwnByHouse(ctx context.Context, houseID string) (dto.ReviewResponse, error)
}

type serviceImpl struct {
	repo      repository.Review
	houseRepo houseRepo.House
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.Review, houseRepo houseRepo.House, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Review {
	return &serviceImpl{
		repo:      repo,
		houseRepo: houseRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, houseID string, req dto.CreateReviewRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateReview")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	houseExists, err := s.houseRepo.Exist(ctx, shared.FilterByID(houseID, houseModel.FieldID, houseModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check house existence")

		return fmt.Errorf("failed to check house existence: %w", err)
	}

	if !houseExists {
		return failure.NotFound("house not found")
	}

	created, err := s.repo.InsertUnique(ctx, req.ToModel(houseID, userID))
	if err != nil {
		log.Error().Err(err).Msg("failed to create review")

		return fmt.Errorf("failed to create review: %w", err)
	}

	if !created {
		return failure.Conflict("you have already reviewed this house")
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllReview)
		shared.InvalidateCaches(c, s.cache, cacheCountReview)
	}()

	return nil
}

// findOwned loads the review by id and acting user. Ownership failures and
// missing reviews are indistinguishable to the caller.
func (s *serviceImpl) findOwned(ctx context.Context, reviewID, userID string) (model.Review, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    reviewID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
		},
	}

	review, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get review")

		return review, fmt.Errorf("failed to get review: %w", err)
	}

	if review.ID == constant.Empty {
		return review, failure.NotFound("review not found")
	}

	return review, nil
}

func (s *serviceImpl) Update(ctx context.Context, houseID, reviewID string, req dto.UpdateReviewRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateReview")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	review, err := s.findOwned(ctx, reviewID, userID)
	if err != nil {
		return err
	}

	if review.HouseID != houseID {
		return failure.BadRequestFromString("review does not belong to the specified house")
	}

	updatedFields := shared.TransformFields(req, userID)
	filter := shared.FilterByID(reviewID, model.FieldID, model.TableName)

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update review")

		return fmt.Errorf("failed to update review: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllReview)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, houseID, reviewID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteReview")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	review, err := s.findOwned(ctx, reviewID, userID)
	if err != nil {
		return err
	}

	if review.HouseID != houseID {
		return failure.BadRequestFromString("review does not belong to the specified house")
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(reviewID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete review")

		return fmt.Errorf("failed to delete review: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllReview)
		shared.InvalidateCaches(c, s.cache, cacheCountReview)
	}()

	return nil
}

func (s *serviceImpl) GetAllByHouse(ctx context.Context, houseID string, params gDto.QueryParams) (res dto.GetReviewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetReviewsByHouse")
	defer scope.End()
	defer scope.TraceIfError(err)

	if params.SortBy == constant.Empty {
		params.SortBy = repository.SortByCreatedAt
		params.SortDir = gDto.SortDirDesc
	}

	filter := repository.FilterByHouse(houseID)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReview, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reviews")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reviews")

		return res, fmt.Errorf("failed to count reviews: %w", err)
	}

	reviews, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reviews")

		return res, fmt.Errorf("failed to get reviews: %w", err)
	}

	res.FromModels(reviews, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reviews to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetOwnByHouse(ctx context.Context, houseID string) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetOwnReview")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	review, err := s.repo.Get(ctx, repository.FilterByHouseAndUser(houseID, userID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get own review")

		return res, fmt.Errorf("failed to get own review: %w", err)
	}

	if review.ID == constant.Empty {
		return res, failure.NotFound("review not found")
	}

	res.FromModel(review)

	return res, nil
}
