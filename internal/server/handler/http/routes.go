package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/atinyakov/PatoApp/internal/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves
// the PatoApp API. All routes live under /api.
//
// Routes:
//
//	POST   /api/register          → authHandler.Register
//	POST   /api/login             → authHandler.Login
//	POST   /api/logout            → authHandler.Logout
//	GET    /api/plans             → planHandler.Plans
//	GET    /api/me                → authHandler.Me         (session)
//	PUT    /api/plan              → authHandler.UpdatePlan (session)
//	POST   /api/checkout          → planHandler.Pay        (session)
//	GET    /api/patos             → patoHandler.List       (session)
//	GET    /api/patos/groups      → patoHandler.Groups     (session)
//	GET    /api/patos/{id}        → patoHandler.Get        (session)
//	GET    /api/patos/{id}/sound  → patoHandler.Sound      (session)
//	POST   /api/patos             → patoHandler.Create     (admin)
//	PATCH  /api/patos/{id}        → patoHandler.Update     (admin)
//	DELETE /api/patos/{id}        → patoHandler.Delete     (admin)
//
// Guarded routes need the token issued by login, sent as the session
// cookie or as a bearer token.
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") rejects non-JSON bodies
//  2. WithRequestLogging(logger) logs each request
//  3. WithSessions(sessions) exposes the session to the guards
func NewRouter(
	authHandler *AuthHandler,
	patoHandler *PatoHandler,
	planHandler *PlanHandler,
	sessions middleware.SessionSource,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.WithSessions(sessions))

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/plans", planHandler.Plans)

		// Requires an active session
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)
			r.Get("/me", authHandler.Me)
			r.Put("/plan", authHandler.UpdatePlan)
			r.Post("/checkout", planHandler.Pay)
			r.Get("/patos", patoHandler.List)
			r.Get("/patos/groups", patoHandler.Groups)
			r.Get("/patos/{id}", patoHandler.Get)
			r.Get("/patos/{id}/sound", patoHandler.Sound)

			// Requires the admin role
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/patos", patoHandler.Create)
				r.Patch("/patos/{id}", patoHandler.Update)
				r.Delete("/patos/{id}", patoHandler.Delete)
			})
		})
	})

	return r
}
