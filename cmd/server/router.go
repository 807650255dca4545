package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/omniora/omniora-api/internal/api"
	apiMiddleware "github.com/omniora/omniora-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	profileHandler := api.NewProfileHandler(app.progressionService)
	lessonHandler := api.NewLessonHandler(app.progressionService, app.contentService)
	notificationHandler := api.NewNotificationHandler(app.engagementService)
	contentHandler := api.NewContentHandler(app.contentService)

	r.Route("/api", func(r chi.Router) {
		// Profile and progression
		r.Get("/profile", profileHandler.GetProfile)
		r.Get("/profile/mastery", profileHandler.GetMastery)
		r.Get("/profile/analytics", profileHandler.GetAnalytics)
		r.Post("/profile/language", profileHandler.SetLanguage)
		r.Post("/profile/notifications", profileHandler.SetNotifications)
		r.Post("/streak/check", profileHandler.CheckStreak)
		r.Post("/xp/award", profileHandler.AwardXP)

		// Lessons
		r.Post("/lessons/finish", lessonHandler.FinishLesson)

		// Engagement
		r.Get("/notifications/daily", notificationHandler.GetDaily)

		// Content generation
		r.Post("/concepts/generate", contentHandler.GenerateConcept)
		r.Get("/topics/discover", contentHandler.DiscoverTopics)
		r.Get("/recommendation", contentHandler.GetRecommendation)

		// Content library administration
		r.Route("/admin/concepts", func(r chi.Router) {
			r.Post("/", contentHandler.SaveConcept)
			r.Get("/", contentHandler.ListConcepts)
			r.Get("/{id}", contentHandler.GetConcept)
			r.Delete("/{id}", contentHandler.DeleteConcept)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
