package router

import (
	"hotelbooker/config"
	_ "hotelbooker/docs" // swagger spec registration
	"hotelbooker/internal/handlers/admin"
	"hotelbooker/internal/handlers/auth"
	"hotelbooker/internal/handlers/booking"
	"hotelbooker/internal/handlers/health"
	"hotelbooker/internal/handlers/hotel"
	"hotelbooker/internal/handlers/hoteluser"
	"hotelbooker/internal/handlers/payment"
	"hotelbooker/transport/http/middleware"
	"hotelbooker/transport/http/response"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Auth      auth.Handler
	Hotel     hotel.Handler
	HotelUser hoteluser.Handler
	Admin     admin.Handler
	Booking   booking.Handler
	Payment   payment.Handler
	Health    health.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	App            middleware.AppMiddleware
	AuthRole       middleware.AuthRole
	Config         *config.Config
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Recoverer)

	if r.Config.App.CORS.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   r.Config.App.CORS.AllowedOrigins,
			AllowedMethods:   r.Config.App.CORS.AllowedMethods,
			AllowedHeaders:   r.Config.App.CORS.AllowedHeaders,
			AllowCredentials: r.Config.App.CORS.AllowCredentials,
			MaxAge:           r.Config.App.CORS.MaxAgeSeconds,
		}))
	}

	router.Use(chiMiddleware.Timeout(time.Minute))

	r.DomainHandlers.Health.Router(router)

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/api", func(routerGroup chi.Router) {
		routerGroup.Use(r.App.Tracing)
		routerGroup.Use(r.App.RateLimit())
		routerGroup.Use(r.AuthRole.APIKey)
		routerGroup.Use(r.AuthRole.Auth)
		routerGroup.Use(r.AuthRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Hotel.Router(routerGroup)
		r.DomainHandlers.HotelUser.Router(routerGroup)
		r.DomainHandlers.Admin.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
	})

	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.WithMessage(w, http.StatusNotFound, "route not found")
	})
}

func New(domainHandlers DomainHandlers, app middleware.AppMiddleware, authRole middleware.AuthRole, cfg *config.Config) Router {
	return Router{
		DomainHandlers: domainHandlers,
		App:            app,
		AuthRole:       authRole,
		Config:         cfg,
	}
}
