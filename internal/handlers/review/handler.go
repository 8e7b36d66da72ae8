package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"minka/infras/otel"
	"minka/internal/domains/review/model/dto"
	"minka/internal/domains/review/service"
	"minka/shared/constant"
	gDto "minka/shared/dto"
	"minka/shared/validator"
	"minka/transport/http/response"
)

type Handler struct {
	service service.Review
	otel    otel.Otel
}

func New(service service.Review, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/houses/{houseId}/reviews", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetReviews)
		routerGroup.Post("/", handler.CreateReview)
		routerGroup.Get("/mine", handler.GetOwnReview)
		routerGroup.Patch("/{reviewId}", handler.UpdateReview)
		routerGroup.Delete("/{reviewId}", handler.DeleteReview)
	})
}

// GetReviews lists the reviews of a house, newest first.
func (handler *Handler) GetReviews(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReviews")
	defer scope.End()

	houseID := chi.URLParam(request, constant.RequestParamHouseID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	reviews, err := handler.service.GetAllByHouse(ctx, houseID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reviews")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Reviews retrieved successfully")

	response.WithJSON(writer, http.StatusOK, reviews)
}

// CreateReview posts the authenticated user's review of a house. A user can
// review each house once.
func (handler *Handler) CreateReview(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReview")
	defer scope.End()

	houseID := chi.URLParam(request, constant.RequestParamHouseID)

	req := dto.CreateReviewRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, houseID, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create review")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Review created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Review created successfully")
}

// GetOwnReview returns the authenticated user's review of a house.
func (handler *Handler) GetOwnReview(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOwnReview")
	defer scope.End()

	houseID := chi.URLParam(request, constant.RequestParamHouseID)

	review, err := handler.service.GetOwnByHouse(ctx, houseID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get own review")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Own review retrieved successfully")

	response.WithJSON(writer, http.StatusOK, review)
}

// UpdateReview edits the authenticated user's review of a house.
func (handler *Handler) UpdateReview(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReview")
	defer scope.End()

	houseID := chi.URLParam(request, constant.RequestParamHouseID)
	reviewID := chi.URLParam(request, constant.RequestParamReviewID)

	req := dto.UpdateReviewRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, houseID, reviewID, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update review")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Review updated successfully by user " + user)

	response.WithMessage(writer, http.StatusOK, "Review updated successfully")
}

// DeleteReview removes the authenticated user's review of a house.
func (handler *Handler) DeleteReview(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReview")
	defer scope.End()

	houseID := chi.URLParam(request, constant.RequestParamHouseID)
	reviewID := chi.URLParam(request, constant.RequestParamReviewID)

	if err := handler.service.Delete(ctx, houseID, reviewID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete review")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Review deleted successfully by user " + user)

	response.WithMessage(writer, http.StatusOK, "Review deleted successfully")
}
