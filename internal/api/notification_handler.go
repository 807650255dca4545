package api

import (
	"net/http"
	"time"

	"github.com/omniora/omniora-api/internal/api/shared"
	"github.com/omniora/omniora-api/internal/service"
)

// NotificationHandler handles engagement notification HTTP requests
type NotificationHandler struct {
	engagementService service.EngagementService
	now               func() time.Time
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(engagementService service.EngagementService) *NotificationHandler {
	return &NotificationHandler{
		engagementService: engagementService,
		now:               time.Now,
	}
}

// GetDaily handles GET /api/notifications/daily requests.
//
// Returns 200 with the notification when one is produced, 204 when the
// daily gates are closed (notifications disabled or already sent today).
func (h *NotificationHandler) GetDaily(w http.ResponseWriter, r *http.Request) {
	notification, err := h.engagementService.MaybeNotify(r.Context(), h.now())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if notification == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, notification)
}
