package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/omniora/omniora-api/internal/api/shared"
	"github.com/omniora/omniora-api/internal/domain"
	"github.com/omniora/omniora-api/internal/service"
)

// ContentHandler handles content generation and library HTTP requests
type ContentHandler struct {
	contentService service.ContentService
	validator      *validator.Validate
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(contentService service.ContentService) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		validator:      validator.New(),
	}
}

// GenerateConcept handles POST /api/concepts/generate requests
func (h *ContentHandler) GenerateConcept(w http.ResponseWriter, r *http.Request) {
	var req GenerateConceptRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	concept, err := h.contentService.GenerateConcept(r.Context(), req.Domain, req.Topic, req.Extended)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, concept)
}

// DiscoverTopics handles GET /api/topics/discover requests.
// The domain is passed as the "domain" query parameter.
func (h *ContentHandler) DiscoverTopics(w http.ResponseWriter, r *http.Request) {
	conceptDomain := r.URL.Query().Get("domain")
	if conceptDomain == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing domain query parameter")
		return
	}

	topics, err := h.contentService.DiscoverTopics(r.Context(), conceptDomain)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TopicsResponse{
		Domain: conceptDomain,
		Topics: topics,
	})
}

// GetRecommendation handles GET /api/recommendation requests
func (h *ContentHandler) GetRecommendation(w http.ResponseWriter, r *http.Request) {
	rec, err := h.contentService.DailyRecommendation(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, rec)
}

// Admin content library endpoints.

// SaveConcept handles POST /api/admin/concepts requests
func (h *ContentHandler) SaveConcept(w http.ResponseWriter, r *http.Request) {
	var concept domain.Concept
	if err := shared.DecodeJSON(r, &concept); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.contentService.SaveConcept(r.Context(), &concept); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, concept)
}

// ListConcepts handles GET /api/admin/concepts requests
func (h *ContentHandler) ListConcepts(w http.ResponseWriter, r *http.Request) {
	concepts, err := h.contentService.ListConcepts(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, concepts)
}

// GetConcept handles GET /api/admin/concepts/{id} requests
func (h *ContentHandler) GetConcept(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	concept, err := h.contentService.GetConcept(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, concept)
}

// DeleteConcept handles DELETE /api/admin/concepts/{id} requests
func (h *ContentHandler) DeleteConcept(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.contentService.DeleteConcept(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
