package api

import (
	"net/http"
	"time"

	"github.com/alexivanou/field-translations/internal/service"
	"github.com/alexivanou/field-translations/internal/stats"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NewRouter creates a new HTTP router
func NewRouter(service service.ServiceInterface, statsCollector *stats.Collector, logger *zap.Logger) *mux.Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	handler := NewHandler(service, logger)
	statsHandler := NewStatsHandler(statsCollector, logger)

	router := mux.NewRouter()
	router.Use(requestLogger(logger))

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1
	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/languages", handler.ListLanguages).Methods("GET")
	v1.HandleFunc("/languages", handler.CreateLanguage).Methods("POST")
	v1.HandleFunc("/languages/{code}", handler.DeleteLanguage).Methods("DELETE")
	v1.HandleFunc("/countries", handler.ListCountries).Methods("GET")
	v1.HandleFunc("/countries", handler.CreateCountry).Methods("POST")

	v1.HandleFunc("/translations/{type}/{id:[0-9]+}", handler.GetOwnerTranslations).Methods("GET")
	v1.HandleFunc("/translations/{type}/{id:[0-9]+}", handler.DeleteOwnerTranslations).Methods("DELETE")
	v1.HandleFunc("/translations/{type}/{id:[0-9]+}/{field}", handler.GetFieldTranslation).Methods("GET")
	v1.HandleFunc("/translations/{type}/{id:[0-9]+}/{field}", handler.SetFieldTranslation).Methods("PUT")
	v1.HandleFunc("/translations/{type}/{id:[0-9]+}/{field}/all", handler.GetFieldTranslations).Methods("GET")

	v1.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")

	return router
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func requestLogger(logger *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
