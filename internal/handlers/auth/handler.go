package auth

import (
	"hotelbooker/infras/otel"
	"hotelbooker/internal/domains/auth/model/dto"
	"hotelbooker/internal/domains/auth/service"
	"hotelbooker/shared/constant"
	"hotelbooker/shared/validator"
	"hotelbooker/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/hotel/login", handler.HotelLogin)
		r.Post("/admin/login", handler.AdminLogin)
		r.Post("/refresh-token", handler.RefreshToken)
	})
}

// HotelLogin handles hotel staff login
// @Summary Hotel staff login
// @Description Authenticate a hotel user and issue tokens bound to their hotel.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.HotelLoginRequest true "Hotel Login Request"
// @Success 200 {object} response.Data[dto.HotelLoginResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/auth/hotel/login [post]
func (handler *Handler) HotelLogin(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".HotelLogin")
	defer scope.End()

	req := dto.HotelLoginRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.HotelLogin(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to login hotel user")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hotel user logged in successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// AdminLogin handles administrator login
// @Summary Admin login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.AdminLoginRequest true "Admin Login Request"
// @Success 200 {object} response.Data[dto.AdminLoginResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/auth/admin/login [post]
func (handler *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AdminLogin")
	defer scope.End()

	req := dto.AdminLoginRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.AdminLogin(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to login admin")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Admin logged in successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// RefreshToken handles token refresh
// @Summary Refresh tokens
// @Description Exchange a refresh token for a new token pair.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token Request"
// @Success 200 {object} response.Data[dto.RefreshTokenResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /api/auth/refresh-token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshToken")
	defer scope.End()

	req := dto.RefreshTokenRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.RefreshToken(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to refresh token")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
