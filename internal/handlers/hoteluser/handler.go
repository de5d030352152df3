package hoteluser

import (
	"hotelbooker/infras/otel"
	"hotelbooker/internal/domains/hoteluser/model/dto"
	"hotelbooker/internal/domains/hoteluser/service"
	"hotelbooker/shared/constant"
	"hotelbooker/shared/validator"
	"hotelbooker/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.HotelUser
	otel    otel.Otel
}

func New(service service.HotelUser, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/hotel-users", handler.CreateHotelUser)
}

// CreateHotelUser registers a staff or manager account for a hotel.
// @Summary Create a hotel user
// @Tags HotelUser
// @Accept json
// @Produce json
// @Param request body dto.CreateHotelUserRequest true "Create Hotel User Request"
// @Success 201 {object} response.Data[dto.HotelUserResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/hotel-users [post]
// @Security BearerAuth
func (handler *Handler) CreateHotelUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateHotelUser")
	defer scope.End()

	req := dto.CreateHotelUserRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	user, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create hotel user")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, user)
}
