//go:build wireinject
// +build wireinject

package di

import (
	"hotelbooker/config"
	"hotelbooker/infras/broker"
	"hotelbooker/infras/cashfree"
	"hotelbooker/infras/jwt"
	"hotelbooker/infras/mailer"
	"hotelbooker/infras/otel"
	"hotelbooker/infras/postgres"
	"hotelbooker/infras/redis"
	"hotelbooker/infras/s3"
	"hotelbooker/internal/jobs"
	"hotelbooker/permissions"
	"hotelbooker/shared/cache"
	"hotelbooker/transport/http"
	"hotelbooker/transport/http/middleware"
	"hotelbooker/transport/http/router"

	adminRepository "hotelbooker/internal/domains/admin/repository"
	adminService "hotelbooker/internal/domains/admin/service"
	authService "hotelbooker/internal/domains/auth/service"
	bookingRepository "hotelbooker/internal/domains/booking/repository"
	bookingService "hotelbooker/internal/domains/booking/service"
	hotelRepository "hotelbooker/internal/domains/hotel/repository"
	hotelService "hotelbooker/internal/domains/hotel/service"
	hotelUserRepository "hotelbooker/internal/domains/hoteluser/repository"
	hotelUserService "hotelbooker/internal/domains/hoteluser/service"
	notificationService "hotelbooker/internal/domains/notification/service"
	paymentService "hotelbooker/internal/domains/payment/service"

	adminHandler "hotelbooker/internal/handlers/admin"
	authHandler "hotelbooker/internal/handlers/auth"
	bookingHandler "hotelbooker/internal/handlers/booking"
	healthHandler "hotelbooker/internal/handlers/health"
	hotelHandler "hotelbooker/internal/handlers/hotel"
	hotelUserHandler "hotelbooker/internal/handlers/hoteluser"
	paymentHandler "hotelbooker/internal/handlers/payment"

	"github.com/google/wire"
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
	s3.New,
	cashfree.New,
	mailer.New,
	broker.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var hotelDomain = wire.NewSet(
	hotelRepository.New,
	hotelService.New,
)

var hotelUserDomain = wire.NewSet(
	hotelUserRepository.New,
	hotelUserService.New,
)

var adminDomain = wire.NewSet(
	adminRepository.New,
	adminService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
	notificationService.New,
	paymentService.New,
)

var domains = wire.NewSet(
	hotelDomain,
	hotelUserDomain,
	adminDomain,
	authDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	hotelHandler.New,
	hotelUserHandler.New,
	adminHandler.New,
	bookingHandler.New,
	paymentHandler.New,
	healthHandler.New,
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
		jobs.New,
		http.New,
	)

	return &http.HTTP{}
}
