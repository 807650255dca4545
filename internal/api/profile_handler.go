package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/omniora/omniora-api/internal/api/shared"
	"github.com/omniora/omniora-api/internal/domain"
	"github.com/omniora/omniora-api/internal/service"
)

// ProfileHandler handles profile-related HTTP requests
type ProfileHandler struct {
	progressionService service.ProgressionService
	validator          *validator.Validate
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(progressionService service.ProgressionService) *ProfileHandler {
	return &ProfileHandler{
		progressionService: progressionService,
		validator:          validator.New(),
	}
}

// GetProfile handles GET /api/profile requests. The response decorates
// the profile with the current and next level thresholds so clients can
// render progress without re-deriving the leveling curve.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.progressionService.GetProfile(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ProfileLevelingResponse{
		UserProfile:      profile,
		CurrentThreshold: h.progressionService.Threshold(profile.Level),
		NextThreshold:    h.progressionService.Threshold(profile.Level + 1),
	})
}

// GetMastery handles GET /api/profile/mastery requests
func (h *ProfileHandler) GetMastery(w http.ResponseWriter, r *http.Request) {
	mastery, detailed, err := h.progressionService.MasteryByDomain(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MasteryResponse{
		Mastery:         mastery,
		DetailedMastery: detailed,
	})
}

// GetAnalytics handles GET /api/profile/analytics requests
func (h *ProfileHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.progressionService.Analytics(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, analytics)
}

// SetLanguage handles POST /api/profile/language requests
func (h *ProfileHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req SetLanguageRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	profile, err := h.progressionService.SetLanguage(r.Context(), domain.Language(req.Language))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}

// SetNotifications handles POST /api/profile/notifications requests
func (h *ProfileHandler) SetNotifications(w http.ResponseWriter, r *http.Request) {
	var req SetNotificationsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	profile, err := h.progressionService.SetNotificationsEnabled(r.Context(), *req.Enabled)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}

// AwardXP handles POST /api/xp/award requests. Clients use it for
// awards that do not come from a finished lesson, such as streak
// bonuses computed on the client.
func (h *ProfileHandler) AwardXP(w http.ResponseWriter, r *http.Request) {
	var req AwardXPRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	profile, err := h.progressionService.AwardXP(r.Context(), *req.Amount)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}

// CheckStreak handles POST /api/streak/check requests. Clients call it
// once at session start; the engine decides whether the streak extends,
// resets, or stays.
func (h *ProfileHandler) CheckStreak(w http.ResponseWriter, r *http.Request) {
	profile, err := h.progressionService.CheckStreak(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}
