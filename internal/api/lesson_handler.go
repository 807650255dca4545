package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/omniora/omniora-api/internal/api/shared"
	"github.com/omniora/omniora-api/internal/service"
)

// LessonHandler handles lesson session HTTP requests
type LessonHandler struct {
	progressionService service.ProgressionService
	contentService     service.ContentService
	validator          *validator.Validate
}

// NewLessonHandler creates a new LessonHandler
func NewLessonHandler(
	progressionService service.ProgressionService,
	contentService service.ContentService,
) *LessonHandler {
	return &LessonHandler{
		progressionService: progressionService,
		contentService:     contentService,
		validator:          validator.New(),
	}
}

// FinishLesson handles POST /api/lessons/finish requests.
//
// The concept is resolved from the content library rather than accepted
// inline, so the XP reward and quiz length driving the award are the
// stored ones and cannot be inflated by the client.
func (h *LessonHandler) FinishLesson(w http.ResponseWriter, r *http.Request) {
	var req FinishLessonRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	concept, err := h.contentService.GetConcept(r.Context(), req.ConceptID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	outcome, err := h.progressionService.FinishLesson(r.Context(), concept, req.Score)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, FinishLessonResponse{
		Profile:   outcome.Profile,
		XPEarned:  outcome.XPEarned,
		LeveledUp: outcome.LeveledUp,
		Entry:     outcome.Entry,
	})
}
