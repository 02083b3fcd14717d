package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/verdane/esgpulse/internal/api/handlers"
	"github.com/verdane/esgpulse/pkg/logger"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Health     *handlers.HealthHandler
	Assessment *handlers.AssessmentHandler
}

// NewRouter builds the HTTP route table
func NewRouter(h Handlers, log *logger.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))

	router.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/surveys/{surveyID}/scores", h.Assessment.GetScores).Methods(http.MethodGet)
	api.HandleFunc("/surveys/{surveyID}/matrix", h.Assessment.GetMatrix).Methods(http.MethodGet)
	api.HandleFunc("/surveys/{surveyID}/ranking", h.Assessment.GetRanking).Methods(http.MethodGet)

	return router
}
