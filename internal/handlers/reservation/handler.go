package reservation

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"minka/infras/otel"
	"minka/internal/domains/reservation/model/dto"
	"minka/internal/domains/reservation/service"
	"minka/shared/constant"
	gDto "minka/shared/dto"
	"minka/shared/failure"
	"minka/shared/validator"
	"minka/transport/http/response"
)

type Handler struct {
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/houses/{houseId}/reservations", func(routerGroup chi.Router) {
		routerGroup.Post("/quote", handler.QuoteReservation)
		routerGroup.Post("/", handler.ConfirmReservation)
	})

	router.Get("/reservations", handler.GetMyReservations)
	router.Post("/webhooks/stripe", handler.PaymentWebhook)
}

// QuoteReservation prices a stay without starting a payment.
func (handler *Handler) QuoteReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".QuoteReservation")
	defer scope.End()

	houseID := chi.URLParam(request, constant.RequestParamHouseID)

	req := dto.InputReservationRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	quote, err := handler.service.Quote(ctx, houseID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to quote reservation")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Reservation quoted successfully")

	response.WithJSON(writer, http.StatusOK, quote)
}

// ConfirmReservation creates a checkout session for the stay and returns the
// hosted payment page URL.
func (handler *Handler) ConfirmReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmReservation")
	defer scope.End()

	houseID := chi.URLParam(request, constant.RequestParamHouseID)

	req := dto.InputReservationRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Confirm(ctx, houseID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to confirm reservation")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Checkout session created for user " + user)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetMyReservations lists the authenticated user's reservations, newest first.
func (handler *Handler) GetMyReservations(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyReservations")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	reservations, err := handler.service.GetMy(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Reservations retrieved successfully for user " + userID)

	response.WithJSON(writer, http.StatusOK, reservations)
}

// PaymentWebhook receives signed events from the payment provider and stores
// the reservation once its checkout session completes.
func (handler *Handler) PaymentWebhook(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PaymentWebhook")
	defer scope.End()

	payload, err := io.ReadAll(io.LimitReader(request.Body, constant.RequestMaxMemory))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read webhook payload")

		response.WithError(writer, failure.BadRequestFromString("failed to read webhook payload"))

		return
	}

	signature := request.Header.Get(constant.RequestHeaderStripeSignature)

	if err := handler.service.HandlePaymentWebhook(ctx, payload, signature); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to handle payment webhook")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Payment webhook processed successfully")

	response.WithMessage(writer, http.StatusOK, "Webhook processed successfully")
}
