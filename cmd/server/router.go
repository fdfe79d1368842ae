package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/lumina-api/internal/api"
	apiMiddleware "github.com/phrazzld/lumina-api/internal/api/middleware"
)

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	online := app.assistant.Online()
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	studyPlanHandler := api.NewStudyPlanHandler(app.studyPlanService, app.logger)
	tutorHandler := api.NewTutorHandler(app.assistant, online, app.logger)
	contactHandler := api.NewContactHandler(app.messagingService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Route("/study-plans", func(r chi.Router) {
			r.Post("/", studyPlanHandler.Generate)
			r.Get("/", studyPlanHandler.List)
			r.Get("/{id}", studyPlanHandler.Get)
			r.Delete("/{id}", studyPlanHandler.Delete)
			r.Patch("/{id}/tasks/{taskID}", studyPlanHandler.UpdateTaskStatus)
		})

		r.Post("/tutor/messages", tutorHandler.SendMessage)
		r.Get("/tutor/greeting", tutorHandler.Greeting)

		r.Get("/contacts", contactHandler.List)
		r.Get("/contacts/{id}/messages", contactHandler.History)
		r.Post("/contacts/{id}/messages", contactHandler.Send)
	})

	r.Get("/health", api.HealthHandler(online))

	return r
}
