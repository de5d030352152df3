package health

import (
	"hotelbooker/infras/postgres"
	"hotelbooker/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	db *postgres.Connection
}

func New(db *postgres.Connection) Handler {
	return Handler{db: db}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.Health)
}

type Report struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Health reports liveness and database reachability.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Data[Report]
// @Failure 503 {object} response.Message
// @Router /health [get]
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := handler.db.Read.PingContext(r.Context()); err != nil {
		response.WithUnhealthy(w)

		return
	}

	response.WithJSON(w, http.StatusOK, Report{Status: "ok", Database: "up"})
}
