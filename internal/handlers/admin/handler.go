package admin

import (
	"hotelbooker/infras/otel"
	"hotelbooker/internal/domains/admin/model/dto"
	"hotelbooker/internal/domains/admin/service"
	"hotelbooker/shared/constant"
	"hotelbooker/shared/validator"
	"hotelbooker/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Admin
	otel    otel.Otel
}

func New(service service.Admin, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/admins", handler.CreateAdmin)
}

// CreateAdmin creates another administrator account.
// @Summary Create an admin
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.CreateAdminRequest true "Create Admin Request"
// @Success 201 {object} response.Data[dto.AdminResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/admins [post]
// @Security BearerAuth
func (handler *Handler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAdmin")
	defer scope.End()

	req := dto.CreateAdminRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	admin, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create admin")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, admin)
}
