package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Route("/api/v1", func(api chi.Router) {
		api.Get("/health", h.health)

		// routes without authorization
		api.Group(func(r chi.Router) {
			r.Post("/auth/register", h.register)
			r.Post("/auth/login", h.login)
			r.Post("/auth/refresh", h.refresh)
			r.Post("/auth/logout", h.logout)
		})

		// routes guarded by the access token
		api.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/auth/me", h.profile)
			r.Patch("/auth/me/avatar", h.updateAvatar)

			r.Get("/workouts", h.listWorkouts)
			r.Post("/workouts", h.createWorkout)
			r.Get("/workouts/history", h.history)
			r.Get("/workouts/{workoutID}", h.getWorkout)
			r.Put("/workouts/{workoutID}", h.updateWorkout)
			r.Delete("/workouts/{workoutID}", h.deleteWorkout)
			r.Patch("/workouts/{workoutID}/complete", h.completeWorkout)
			r.Post("/workouts/{workoutID}/exercises", h.addExercise)
			r.Patch("/workouts/{workoutID}/exercises/{exerciseID}", h.updateExercise)
			r.Patch("/workouts/{workoutID}/exercises/{exerciseID}/toggle", h.toggleExercise)

			r.Get("/shopping-items", h.listShoppingItems)
			r.Post("/shopping-items", h.createShoppingItem)
			r.Put("/shopping-items/{itemID}", h.updateShoppingItem)
			r.Patch("/shopping-items/{itemID}/toggle", h.toggleShoppingItem)
			r.Delete("/shopping-items/{itemID}", h.deleteShoppingItem)

			r.Get("/preferences", h.getPreferences)
			r.Put("/preferences", h.replacePreferences)
		})
	})

	return router
}
