package house

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"minka/infras/otel"
	"minka/internal/domains/house/model/dto"
	"minka/internal/domains/house/service"
	"minka/shared/constant"
	gDto "minka/shared/dto"
	"minka/shared/validator"
	"minka/transport/http/response"
)

type Handler struct {
	service service.House
	otel    otel.Otel
}

func New(service service.House, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/houses", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.SearchHouses)
		routerGroup.Post("/", handler.CreateHouse)
		routerGroup.Get("/{id}", handler.GetHouse)
		routerGroup.Get("/{id}/detail", handler.GetHouseDetail)
		routerGroup.Patch("/{id}", handler.UpdateHouse)
		routerGroup.Delete("/{id}", handler.DeleteHouse)
	})
}

// SearchHouses lists houses matching the optional keyword, area and price
// filters, ordered by the requested sort.
func (handler *Handler) SearchHouses(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchHouses")
	defer scope.End()

	req := dto.SearchHousesRequest{}
	req.FromRequest(request)

	houses, err := handler.service.Search(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search houses")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Houses retrieved successfully")

	response.WithJSON(writer, http.StatusOK, houses)
}

// CreateHouse registers a new house listing.
func (handler *Handler) CreateHouse(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateHouse")
	defer scope.End()

	req := dto.CreateHouseRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create house")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("House created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "House created successfully")
}

// GetHouse returns a single house listing.
func (handler *Handler) GetHouse(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHouse")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	house, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get house")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("House retrieved successfully")

	response.WithJSON(writer, http.StatusOK, house)
}

// GetHouseDetail returns a house together with its latest reviews and, for
// an authenticated caller, their own review and a prefilled review form.
func (handler *Handler) GetHouseDetail(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHouseDetail")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, false)

	detail, err := handler.service.GetDetail(ctx, id, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get house detail")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("House detail retrieved successfully")

	response.WithJSON(writer, http.StatusOK, detail)
}

// UpdateHouse updates an existing house listing.
func (handler *Handler) UpdateHouse(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateHouse")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateHouseRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update house")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("House updated successfully by user " + user)

	response.WithMessage(writer, http.StatusOK, "House updated successfully")
}

// DeleteHouse removes a house listing.
func (handler *Handler) DeleteHouse(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteHouse")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete house")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("House deleted successfully by user " + user)

	response.WithMessage(writer, http.StatusOK, "House deleted successfully")
}
