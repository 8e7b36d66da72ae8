//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"minka/config"
	"minka/infras/jwt"
	"minka/infras/kafka"
	"minka/infras/otel"
	"minka/infras/payment"
	"minka/infras/postgres"
	"minka/infras/redis"
	"minka/infras/s3"
	"minka/internal/events"
	"minka/permissions"
	"minka/shared/cache"
	"minka/transport/http"
	"minka/transport/http/middleware"
	"minka/transport/http/router"

	authService "minka/internal/domains/auth/service"
	houseRepository "minka/internal/domains/house/repository"
	houseService "minka/internal/domains/house/service"
	reservationRepository "minka/internal/domains/reservation/repository"
	reservationService "minka/internal/domains/reservation/service"
	reviewRepository "minka/internal/domains/review/repository"
	reviewService "minka/internal/domains/review/service"
	userRepository "minka/internal/domains/user/repository"
	authHandler "minka/internal/handlers/auth"
	houseHandler "minka/internal/handlers/house"
	reservationHandler "minka/internal/handlers/reservation"
	reviewHandler "minka/internal/handlers/review"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	payment.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var houseDomain = wire.NewSet(
	houseRepository.New,
	houseService.New,
)

var reviewDomain = wire.NewSet(
	reviewRepository.New,
	reviewService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var domains = wire.NewSet(
	authDomain,
	houseDomain,
	reviewDomain,
	reservationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	houseHandler.New,
	reviewHandler.New,
	reservationHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeReservationConsumer() *events.ReservationConsumer {
	wire.Build(
		config.Get,
		otel.New,
		kafka.New,
		events.NewReservationConsumer,
	)

	return &events.ReservationConsumer{}
}
