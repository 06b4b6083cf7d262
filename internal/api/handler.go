package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/alexivanou/field-translations/internal/model"
	"github.com/alexivanou/field-translations/internal/service"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Handler handles HTTP requests
type Handler struct {
	service service.ServiceInterface
	logger  *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(service service.ServiceInterface, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// ListLanguages handles GET /api/v1/languages
func (h *Handler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	languages, err := h.service.ListLanguages(r.Context())
	if err != nil {
		h.fail(w, "Error listing languages", err)
		return
	}

	h.respond(w, http.StatusOK, model.LanguagesResponse{
		Languages: languages,
		Count:     len(languages),
	})
}

// CreateLanguage handles POST /api/v1/languages
func (h *Handler) CreateLanguage(w http.ResponseWriter, r *http.Request) {
	var req model.CreateLanguageRequest
	if !h.decode(w, r, &req) {
		return
	}

	language, err := h.service.CreateLanguage(r.Context(), req)
	if err != nil {
		h.fail(w, "Error creating language", err)
		return
	}

	h.respond(w, http.StatusCreated, language)
}

// DeleteLanguage handles DELETE /api/v1/languages/{code}
func (h *Handler) DeleteLanguage(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	if err := h.service.DeleteLanguage(r.Context(), code); err != nil {
		h.fail(w, "Error deleting language", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListCountries handles GET /api/v1/countries
func (h *Handler) ListCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.service.ListCountries(r.Context())
	if err != nil {
		h.fail(w, "Error listing countries", err)
		return
	}

	h.respond(w, http.StatusOK, model.CountriesResponse{
		Countries: countries,
		Count:     len(countries),
	})
}

// CreateCountry handles POST /api/v1/countries
func (h *Handler) CreateCountry(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCountryRequest
	if !h.decode(w, r, &req) {
		return
	}

	country, err := h.service.CreateCountry(r.Context(), req)
	if err != nil {
		h.fail(w, "Error creating country", err)
		return
	}

	h.respond(w, http.StatusCreated, country)
}

// GetFieldTranslation handles GET /api/v1/translations/{type}/{id}/{field}
func (h *Handler) GetFieldTranslation(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	field := mux.Vars(r)["field"]
	lang := r.URL.Query().Get("lang")

	response, err := h.service.GetFieldTranslation(r.Context(), owner, field, lang)
	if err != nil {
		h.fail(w, "Error getting translation", err)
		return
	}

	h.respond(w, http.StatusOK, response)
}

// SetFieldTranslation handles PUT /api/v1/translations/{type}/{id}/{field}
func (h *Handler) SetFieldTranslation(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	field := mux.Vars(r)["field"]
	lang := r.URL.Query().Get("lang")

	var req model.SetTranslationRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.service.SetFieldTranslation(r.Context(), owner, field, lang, req.Value); err != nil {
		h.fail(w, "Error setting translation", err)
		return
	}

	response, err := h.service.GetFieldTranslation(r.Context(), owner, field, lang)
	if err != nil {
		h.fail(w, "Error getting translation", err)
		return
	}

	h.respond(w, http.StatusOK, response)
}

// GetFieldTranslations handles GET /api/v1/translations/{type}/{id}/{field}/all
func (h *Handler) GetFieldTranslations(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	response, err := h.service.GetFieldTranslations(r.Context(), owner, mux.Vars(r)["field"])
	if err != nil {
		h.fail(w, "Error getting translations", err)
		return
	}

	h.respond(w, http.StatusOK, response)
}

// GetOwnerTranslations handles GET /api/v1/translations/{type}/{id}
func (h *Handler) GetOwnerTranslations(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	response, err := h.service.GetOwnerTranslations(r.Context(), owner, r.URL.Query().Get("lang"))
	if err != nil {
		h.fail(w, "Error getting owner translations", err)
		return
	}

	h.respond(w, http.StatusOK, response)
}

// DeleteOwnerTranslations handles DELETE /api/v1/translations/{type}/{id}
func (h *Handler) DeleteOwnerTranslations(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteOwner(r.Context(), owner); err != nil {
		h.fail(w, "Error deleting owner translations", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func ownerFromRequest(w http.ResponseWriter, r *http.Request) (model.OwnerRef, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid owner id", http.StatusBadRequest)
		return model.OwnerRef{}, false
	}
	return model.OwnerRef{Type: vars["type"], ID: id}, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) respond(w http.ResponseWriter, status int, body interface{}) {
	writeJSON(w, h.logger, status, body)
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Error encoding response", zap.Error(err))
	}
}

// fail maps service errors to status codes. Only unexpected errors are logged.
func (h *Handler) fail(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrNotTranslatable):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrInvalidLanguage):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrAlreadyExists):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		h.logger.Error(msg, zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
