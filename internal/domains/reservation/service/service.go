package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"minka/config"
	"minka/infras/kafka"
	"minka/infras/otel"
	"minka/infras/payment"
	houseModel "minka/internal/domains/house/model"
	houseRepo "minka/internal/domains/house/repository"
	"minka/internal/domains/reservation/model"
	"minka/internal/domains/reservation/model/dto"
	"minka/internal/domains/reservation/repository"
	"minka/shared"
	"minka/shared/cache"
	"minka/shared/constant"
	gDto "minka/shared/dto"
	"minka/shared/failure"
)

const (
	cacheGetAllReservation = "reservation:get_all"
	cacheCountReservation  = "reservation:count"
)

type Reservation interface {
	// Quote prices a stay without creating anything.
	Quote(ctx context.Context, houseID string, req dto.InputReservationRequest) (dto.QuoteReservationResponse, error)
	// Confirm creates a hosted checkout session for the stay. The reservation
	// itself is stored once the payment provider reports the session paid.
	Confirm(ctx context.Context, houseID string, req dto.InputReservationRequest) (dto.ConfirmReservationResponse, error)
	HandlePaymentWebhook(ctx context.Context, payload []byte, signature string) error
	GetMy(ctx context.Context, params gDto.QueryParams) (dto.GetReservationsResponse, error)
}

type serviceImpl struct {
	repo      repository.Reservation
	houseRepo houseRepo.House
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	payment   payment.Gateway
	broker    kafka.Client
}

func New(
	repo repository.Reservation,
	houseRepo houseRepo.House,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	payment payment.Gateway,
	broker kafka.Client,
) Reservation {
	return &serviceImpl{
		repo:      repo,
		houseRepo: houseRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		payment:   payment,
		broker:    broker,
	}
}

// stay is a validated and priced reservation request.
type stay struct {
	house    houseModel.House
	checkin  time.Time
	checkout time.Time
	amount   int
}

func (s *serviceImpl) validateStay(ctx context.Context, houseID string, req dto.InputReservationRequest) (stay, error) {
	var result stay

	house, err := s.houseRepo.Get(ctx, shared.FilterByID(houseID, houseModel.FieldID, houseModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get house for reservation")

		return result, fmt.Errorf("failed to get house: %w", err)
	}

	if house.ID == constant.Empty {
		return result, failure.NotFound("house not found")
	}

	checkin, checkout, err := req.ParseDates()
	if err != nil {
		return result, err
	}

	if !IsWithinCapacity(req.NumberOfPeople, house.Capacity) {
		return result, failure.Validation(failure.FieldError{
			Field:   dto.MetadataKeyNumberOfPeople,
			Message: fmt.Sprintf("this house sleeps at most %d people", house.Capacity),
		})
	}

	amount, err := CalculateAmount(checkin, checkout, house.Price)
	if err != nil {
		return result, err
	}

	return stay{house: house, checkin: checkin, checkout: checkout, amount: amount}, nil
}

func (s *serviceImpl) Quote(ctx context.Context, houseID string, req dto.InputReservationRequest) (res dto.QuoteReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".QuoteReservation")
	defer scope.End()
	defer scope.TraceIfError(err)

	result, err := s.validateStay(ctx, houseID, req)
	if err != nil {
		return res, err
	}

	res.Nights = CountNights(result.checkin, result.checkout)
	res.Amount = result.amount

	return res, nil
}

func (s *serviceImpl) Confirm(ctx context.Context, houseID string, req dto.InputReservationRequest) (res dto.ConfirmReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConfirmReservation")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	result, err := s.validateStay(ctx, houseID, req)
	if err != nil {
		return res, err
	}

	session, err := s.payment.CreateCheckoutSession(ctx, payment.CheckoutInput{
		Description: fmt.Sprintf("Stay at %s (%s to %s)", result.house.Name, req.CheckinDate, req.CheckoutDate),
		Amount:      int64(result.amount),
		Metadata:    req.ToMetadata(houseID, userID, result.amount),
	})
	if err != nil {
		log.Error().Err(err).Str("houseID", houseID).Msg("failed to create checkout session")

		return res, failure.BadGateway("failed to start payment session")
	}

	res.SessionID = session.ID
	res.PaymentURL = session.URL
	res.Amount = result.amount

	return res, nil
}

func (s *serviceImpl) HandlePaymentWebhook(ctx context.Context, payload []byte, signature string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HandlePaymentWebhook")
	defer scope.End()
	defer scope.TraceIfError(err)

	event, err := s.payment.VerifyWebhook(payload, signature)
	if err != nil {
		log.Warn().Err(err).Msg("rejected payment webhook with invalid signature")

		return failure.BadRequestFromString("invalid webhook signature")
	}

	if event.Type != payment.EventCheckoutCompleted {
		log.Info().Str("type", event.Type).Msg("ignoring payment webhook event")

		return nil
	}

	// Providers redeliver webhooks, so a session already persisted is a no-op.
	exists, err := s.repo.Exist(ctx, repository.FilterBySession(event.SessionID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check existing reservation")

		return fmt.Errorf("failed to check existing reservation: %w", err)
	}

	if exists {
		log.Info().Str("sessionID", event.SessionID).Msg("reservation already stored for session")

		return nil
	}

	reservation, err := dto.FromMetadata(event.SessionID, event.Metadata)
	if err != nil {
		log.Error().Err(err).Str("sessionID", event.SessionID).Msg("failed to decode reservation from session metadata")

		return failure.BadRequest(err)
	}

	if err = s.repo.Insert(ctx, reservation); err != nil {
		log.Error().Err(err).Msg("failed to store reservation")

		return fmt.Errorf("failed to store reservation: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.publishConfirmed(c, reservation)

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
	}()

	return nil
}

func (s *serviceImpl) publishConfirmed(ctx context.Context, reservation model.Reservation) {
	event := dto.ReservationConfirmedEvent{}
	event.FromModel(reservation)

	err := s.broker.SendMessages(ctx, constant.KafkaTopicReservationConfirmed, kafka.Message{
		Key:   reservation.ID,
		Value: event,
	})
	if err != nil {
		log.Error().Err(err).Str("reservationID", reservation.ID).Msg("failed to publish reservation confirmed event")
	}
}

func (s *serviceImpl) GetMy(ctx context.Context, params gDto.QueryParams) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMyReservations")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if params.SortBy == constant.Empty {
		params.SortBy = repository.SortByCreatedAt
		params.SortDir = gDto.SortDirDesc
	}

	filter := repository.FilterByUser(userID)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	reservations, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(reservations, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}
